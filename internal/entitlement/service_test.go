package entitlement

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"igpt/internal/domain"
)

type memoryRepo struct {
	rows      map[string]Entitlement
	saves     int
	conflicts int
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{rows: make(map[string]Entitlement)}
}

func (m *memoryRepo) GetOrCreate(_ context.Context, userID string, freeCredits int) (Entitlement, error) {
	if e, ok := m.rows[userID]; ok {
		return e, nil
	}
	e := Entitlement{UserID: userID, FreeCredits: freeCredits, Subscription: SubscriptionFree, Version: 1}
	m.rows[userID] = e
	return e, nil
}

func (m *memoryRepo) Save(_ context.Context, e Entitlement) (Entitlement, error) {
	if m.conflicts > 0 {
		m.conflicts--
		stored := m.rows[e.UserID]
		stored.Version++
		m.rows[e.UserID] = stored
		return Entitlement{}, domain.ErrConcurrentUpdate
	}
	if m.rows[e.UserID].Version != e.Version {
		return Entitlement{}, domain.ErrConcurrentUpdate
	}
	m.saves++
	e.Version++
	m.rows[e.UserID] = e
	return e, nil
}

func TestServiceSeedsFreeCredits(t *testing.T) {
	svc := NewService(newMemoryRepo(), 2, zerolog.Nop())
	e, err := svc.Get(context.Background(), "u")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if e.FreeCredits != 2 || e.Subscription != SubscriptionFree {
		t.Fatalf("Get() = %+v", e)
	}
}

func TestServiceConsume(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 1, zerolog.Nop())
	ctx := context.Background()

	e, err := svc.Consume(ctx, "u")
	if err != nil {
		t.Fatalf("Consume() error = %v", err)
	}
	if e.FreeCredits != 0 || e.Version != 2 {
		t.Fatalf("Consume() = %+v", e)
	}
	if _, err := svc.Consume(ctx, "u"); !errors.Is(err, domain.ErrInsufficientCredits) {
		t.Fatalf("second Consume() error = %v", err)
	}
	if repo.saves != 1 {
		t.Fatalf("saves = %d, want 1 (no write on empty balance)", repo.saves)
	}
}

func TestServiceUnlimitedDoesNotWrite(t *testing.T) {
	repo := newMemoryRepo()
	svc := NewService(repo, 0, zerolog.Nop())
	ctx := context.Background()
	if _, err := svc.Subscribe(ctx, "u", SubscriptionUnlimited); err != nil {
		t.Fatalf("Subscribe() error = %v", err)
	}
	saves := repo.saves
	for i := 0; i < 3; i++ {
		if _, err := svc.Consume(ctx, "u"); err != nil {
			t.Fatalf("Consume() error = %v", err)
		}
	}
	if repo.saves != saves {
		t.Fatalf("unlimited consume wrote to storage")
	}
}

func TestServiceRetriesConcurrentUpdate(t *testing.T) {
	repo := newMemoryRepo()
	repo.conflicts = 2
	svc := NewService(repo, 0, zerolog.Nop())
	e, err := svc.Grant(context.Background(), "u", 5)
	if err != nil {
		t.Fatalf("Grant() error = %v", err)
	}
	if e.PaidCredits != 5 || e.Subscription != SubscriptionCredits {
		t.Fatalf("Grant() = %+v", e)
	}

	repo.conflicts = maxSaveAttempts
	if _, err := svc.Grant(context.Background(), "u", 1); !errors.Is(err, domain.ErrConcurrentUpdate) {
		t.Fatalf("Grant() error = %v, want ErrConcurrentUpdate", err)
	}
}

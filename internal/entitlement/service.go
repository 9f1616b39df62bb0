package entitlement

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"igpt/internal/domain"
)

// DefaultFreeCredits seeds new entitlements when FREE_CREDITS is unset.
const DefaultFreeCredits = 3

const maxSaveAttempts = 3

// Repository persists entitlements. Save must fail with
// domain.ErrConcurrentUpdate when e.Version no longer matches the stored row,
// and returns the row with its new version otherwise.
type Repository interface {
	GetOrCreate(ctx context.Context, userID string, freeCredits int) (Entitlement, error)
	Save(ctx context.Context, e Entitlement) (Entitlement, error)
}

// Service applies gate transitions to stored entitlements.
type Service struct {
	repo        Repository
	freeCredits int
	logger      zerolog.Logger
}

func NewService(repo Repository, freeCredits int, logger zerolog.Logger) *Service {
	if freeCredits < 0 {
		freeCredits = DefaultFreeCredits
	}
	return &Service{repo: repo, freeCredits: freeCredits, logger: logger}
}

// Get loads the user's entitlement, seeding it with the free allowance on first use.
func (s *Service) Get(ctx context.Context, userID string) (Entitlement, error) {
	return s.repo.GetOrCreate(ctx, userID, s.freeCredits)
}

// Consume charges one download. It fails with domain.ErrInsufficientCredits,
// without touching storage, when the balance is empty.
func (s *Service) Consume(ctx context.Context, userID string) (Entitlement, error) {
	return s.update(ctx, userID, "consume", func(e Entitlement) (Entitlement, error) {
		if !CanConsume(e) {
			return e, fmt.Errorf("user %s: %w", userID, domain.ErrInsufficientCredits)
		}
		return Consume(e)
	})
}

// Grant adds purchased credits, typically from a billing balance update.
func (s *Service) Grant(ctx context.Context, userID string, paid int) (Entitlement, error) {
	return s.update(ctx, userID, "grant", func(e Entitlement) (Entitlement, error) {
		return Grant(e, paid)
	})
}

// Subscribe changes the user's plan.
func (s *Service) Subscribe(ctx context.Context, userID string, plan Subscription) (Entitlement, error) {
	return s.update(ctx, userID, "subscribe", func(e Entitlement) (Entitlement, error) {
		return Subscribe(e, plan)
	})
}

func (s *Service) update(ctx context.Context, userID, op string, fn func(Entitlement) (Entitlement, error)) (Entitlement, error) {
	var lastErr error
	for attempt := 0; attempt < maxSaveAttempts; attempt++ {
		current, err := s.repo.GetOrCreate(ctx, userID, s.freeCredits)
		if err != nil {
			return Entitlement{}, err
		}
		next, err := fn(current)
		if err != nil {
			return current, err
		}
		if next == current {
			return current, nil
		}
		saved, err := s.repo.Save(ctx, next)
		if err == nil {
			s.logger.Info().
				Str("user_id", userID).
				Str("op", op).
				Int("free_credits", saved.FreeCredits).
				Int("paid_credits", saved.PaidCredits).
				Str("subscription", string(saved.Subscription)).
				Msg("entitlement updated")
			return saved, nil
		}
		if !errors.Is(err, domain.ErrConcurrentUpdate) {
			return Entitlement{}, err
		}
		lastErr = err
		s.logger.Debug().Str("user_id", userID).Int("attempt", attempt+1).Msg("entitlement: retrying after concurrent update")
	}
	return Entitlement{}, fmt.Errorf("entitlement %s after %d attempts: %w", op, maxSaveAttempts, lastErr)
}

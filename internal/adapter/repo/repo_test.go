package repo

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"igpt/internal/domain"
	"igpt/internal/entitlement"
	"igpt/internal/sqlinline"
)

type stubRow struct {
	values []any
	err    error
}

func (r stubRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != len(r.values) {
		return errors.New("column count mismatch")
	}
	for i, v := range r.values {
		switch d := dest[i].(type) {
		case *string:
			*d = v.(string)
		case *int:
			*d = v.(int)
		case *int64:
			*d = v.(int64)
		case *[]byte:
			*d = v.([]byte)
		case *time.Time:
			*d = v.(time.Time)
		default:
			return errors.New("unsupported destination")
		}
	}
	return nil
}

type stubExecutor struct {
	row       stubRow
	queued    []stubRow
	rowCalls  int
	execQuery string
	execArgs  []any
	rowQuery  string
	rowArgs   []any
}

func (s *stubExecutor) Exec(_ context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	s.execQuery = query
	s.execArgs = args
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func (s *stubExecutor) QueryRow(_ context.Context, query string, args ...any) pgx.Row {
	s.rowQuery = query
	s.rowArgs = args
	s.rowCalls++
	if len(s.queued) > 0 {
		row := s.queued[0]
		s.queued = s.queued[1:]
		return row
	}
	return s.row
}

func (s *stubExecutor) Query(context.Context, string, ...any) (pgx.Rows, error) {
	return nil, errors.New("not implemented")
}

func TestAssetSaveEncodesMetadata(t *testing.T) {
	exec := &stubExecutor{}
	repo := NewAssetRepository(exec)
	asset := domain.AssetReference{
		ID:         "11111111-1111-1111-1111-111111111111",
		UserID:     "user-1",
		Kind:       domain.MediaKindImage,
		URL:        "http://localhost/static/a.png",
		Prompt:     "a lake",
		Dimensions: domain.MustDimensions("1080x1920"),
		Metadata:   domain.GenerationMetadata{CategoryID: "social_post", SubformatID: "instagram_story"},
	}
	if err := repo.Save(context.Background(), asset); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if exec.execQuery != sqlinline.QInsertGeneratedAsset {
		t.Fatalf("unexpected query")
	}
	if exec.execArgs[7] != 1080 || exec.execArgs[8] != 1920 {
		t.Fatalf("dimensions args = %v, %v", exec.execArgs[7], exec.execArgs[8])
	}
	var meta domain.GenerationMetadata
	if err := json.Unmarshal(exec.execArgs[10].([]byte), &meta); err != nil {
		t.Fatalf("metadata arg: %v", err)
	}
	if meta.SubformatID != "instagram_story" {
		t.Fatalf("metadata = %+v", meta)
	}
}

func TestAssetGetForUser(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	exec := &stubExecutor{row: stubRow{values: []any{
		"a1", "user-1", "", "video", "https://cdn/v.mp4", "video/mp4", "waves",
		1280, 720, "runway:veo3", []byte(`{"category_id":"video_clip","media_kind":"video"}`), created,
	}}}
	asset, err := NewAssetRepository(exec).GetForUser(context.Background(), "a1", "user-1")
	if err != nil {
		t.Fatalf("GetForUser() error = %v", err)
	}
	if asset.Kind != domain.MediaKindVideo || asset.Dimensions.String() != "1280x720" || asset.Metadata.CategoryID != "video_clip" {
		t.Fatalf("asset = %+v", asset)
	}
	if exec.rowArgs[1] != "user-1" {
		t.Fatalf("query not scoped to user: %v", exec.rowArgs)
	}
}

func TestAssetGetForUserNotFound(t *testing.T) {
	exec := &stubExecutor{row: stubRow{err: pgx.ErrNoRows}}
	if _, err := NewAssetRepository(exec).GetForUser(context.Background(), "a1", "u"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetForUser() error = %v, want ErrNotFound", err)
	}
}

func TestEntitlementGetOrCreate(t *testing.T) {
	now := time.Now()
	exec := &stubExecutor{row: stubRow{values: []any{"u", 3, 0, "free", int64(1), now}}}
	e, err := NewEntitlementRepository(exec).GetOrCreate(context.Background(), "u", 3)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if e.FreeCredits != 3 || e.Subscription != entitlement.SubscriptionFree || e.Version != 1 {
		t.Fatalf("entitlement = %+v", e)
	}
	if exec.rowQuery != sqlinline.QSelectOrSeedEntitlement || exec.rowArgs[1] != 3 {
		t.Fatalf("unexpected query args %v", exec.rowArgs)
	}
}

func TestEntitlementSaveVersionConflict(t *testing.T) {
	exec := &stubExecutor{row: stubRow{err: pgx.ErrNoRows}}
	_, err := NewEntitlementRepository(exec).Save(context.Background(), entitlement.Entitlement{UserID: "u", Version: 4})
	if !errors.Is(err, domain.ErrConcurrentUpdate) {
		t.Fatalf("Save() error = %v, want ErrConcurrentUpdate", err)
	}
	if exec.rowArgs[4] != int64(4) {
		t.Fatalf("version arg = %v", exec.rowArgs[4])
	}
}

func TestEntitlementGetOrCreateRetriesLostSeedRace(t *testing.T) {
	now := time.Now()
	exec := &stubExecutor{queued: []stubRow{
		{err: pgx.ErrNoRows},
		{values: []any{"u", 3, 0, "free", int64(1), now}},
	}}
	e, err := NewEntitlementRepository(exec).GetOrCreate(context.Background(), "u", 3)
	if err != nil {
		t.Fatalf("GetOrCreate() error = %v", err)
	}
	if e.UserID != "u" || e.FreeCredits != 3 || exec.rowCalls != 2 {
		t.Fatalf("entitlement = %+v after %d queries", e, exec.rowCalls)
	}
}

func TestEntitlementGetOrCreateGivesUpAfterRetry(t *testing.T) {
	exec := &stubExecutor{row: stubRow{err: pgx.ErrNoRows}}
	_, err := NewEntitlementRepository(exec).GetOrCreate(context.Background(), "u", 3)
	if !errors.Is(err, pgx.ErrNoRows) {
		t.Fatalf("GetOrCreate() error = %v, want ErrNoRows", err)
	}
	if exec.rowCalls != 2 {
		t.Fatalf("queries = %d, want 2", exec.rowCalls)
	}
}

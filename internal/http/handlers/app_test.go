package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"igpt/internal/catalog"
	"igpt/internal/domain"
	"igpt/internal/entitlement"
	"igpt/internal/middleware"
	"igpt/internal/selection"
)

type stubDispatcher struct {
	mu      sync.Mutex
	calls   []domain.GenerationRequest
	err     error
	release chan struct{}
	started chan struct{}
}

func (s *stubDispatcher) Dispatch(ctx context.Context, req domain.GenerationRequest) (domain.AssetReference, error) {
	s.mu.Lock()
	s.calls = append(s.calls, req)
	n := len(s.calls)
	s.mu.Unlock()
	if s.started != nil {
		s.started <- struct{}{}
	}
	if s.release != nil {
		select {
		case <-s.release:
		case <-ctx.Done():
			return domain.AssetReference{}, ctx.Err()
		}
	}
	if s.err != nil {
		return domain.AssetReference{}, s.err
	}
	return domain.AssetReference{
		ID:         "asset-" + string(rune('0'+n)),
		Kind:       req.Metadata.MediaKind,
		URL:        "http://assets.test/a.png",
		MIME:       "image/png",
		Prompt:     req.Prompt,
		Dimensions: req.Dimensions,
		Metadata:   req.Metadata,
		Provider:   "stub",
		CreatedAt:  time.Now().UTC(),
	}, nil
}

func (s *stubDispatcher) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

type memoryAssets struct {
	mu    sync.Mutex
	items map[string]domain.AssetReference
}

func newMemoryAssets() *memoryAssets {
	return &memoryAssets{items: make(map[string]domain.AssetReference)}
}

func (m *memoryAssets) Save(_ context.Context, asset domain.AssetReference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[asset.ID] = asset
	return nil
}

func (m *memoryAssets) GetForUser(_ context.Context, id, userID string) (*domain.AssetReference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.items[id]
	if !ok || a.UserID != userID {
		return nil, domain.ErrNotFound
	}
	return &a, nil
}

func (m *memoryAssets) ListByUser(_ context.Context, userID string, limit, offset int) ([]domain.AssetReference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.AssetReference
	for _, a := range m.items {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

type memoryEntitlements struct {
	mu   sync.Mutex
	rows map[string]entitlement.Entitlement
}

func (m *memoryEntitlements) GetOrCreate(_ context.Context, userID string, freeCredits int) (entitlement.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[userID]; ok {
		return e, nil
	}
	e := entitlement.Entitlement{UserID: userID, FreeCredits: freeCredits, Subscription: entitlement.SubscriptionFree, Version: 1}
	m.rows[userID] = e
	return e, nil
}

func (m *memoryEntitlements) Save(_ context.Context, e entitlement.Entitlement) (entitlement.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.rows[e.UserID].Version != e.Version {
		return entitlement.Entitlement{}, domain.ErrConcurrentUpdate
	}
	e.Version++
	m.rows[e.UserID] = e
	return e, nil
}

type testEnv struct {
	app        *App
	dispatcher *stubDispatcher
	assets     *memoryAssets
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	d := &stubDispatcher{}
	assets := newMemoryAssets()
	ents := entitlement.NewService(&memoryEntitlements{rows: make(map[string]entitlement.Entitlement)}, 3, zerolog.Nop())
	app := &App{
		Catalog:         catalog.Default(),
		Sessions:        selection.NewStore(catalog.Default(), time.Hour),
		Dispatcher:      d,
		Assets:          assets,
		Entitlements:    ents,
		Logger:          zerolog.Nop(),
		DispatchTimeout: 5 * time.Second,
	}
	return &testEnv{app: app, dispatcher: d, assets: assets}
}

// call invokes handler as userID with the given chi URL params and JSON body.
func call(t *testing.T, handler http.HandlerFunc, method, userID string, body any, params ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, "/", &buf)
	rctx := chi.NewRouteContext()
	for i := 0; i+1 < len(params); i += 2 {
		rctx.URLParams.Add(params[i], params[i+1])
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID != "" {
		ctx = middleware.ContextWithIdentity(ctx, domain.Identity{UserID: userID, Role: domain.UserRoleUser})
	}
	ctx = middleware.ContextWithLocale(ctx, "en")
	rec := httptest.NewRecorder()
	handler(rec, req.WithContext(ctx))
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type errorEnvelope struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func newSession(t *testing.T, env *testEnv, userID string) string {
	t.Helper()
	rec := call(t, env.app.CreateSession, http.MethodPost, userID, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session status = %d", rec.Code)
	}
	return decodeBody[selection.SessionView](t, rec).ID
}

package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"igpt/internal/catalog"
	"igpt/internal/dispatch"
	"igpt/internal/domain"
	"igpt/internal/entitlement"
	"igpt/internal/http/handlers"
	"igpt/internal/middleware"
	"igpt/internal/providers"
	"igpt/internal/providers/image"
	"igpt/internal/providers/video"
	"igpt/internal/selection"
	"igpt/internal/storage"
)

const testSecret = "integration-secret"

type memoryAssets struct {
	mu    sync.Mutex
	items []domain.AssetReference
}

func (m *memoryAssets) Save(_ context.Context, a domain.AssetReference) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, a)
	return nil
}

func (m *memoryAssets) GetForUser(_ context.Context, id, userID string) (*domain.AssetReference, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.items {
		if a.ID == id && a.UserID == userID {
			return &a, nil
		}
	}
	return nil, domain.ErrNotFound
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
	return out, nil
}

type memoryEntitlements struct {
	mu   sync.Mutex
	rows map[string]entitlement.Entitlement
}

func (m *memoryEntitlements) GetOrCreate(_ context.Context, userID string, free int) (entitlement.Entitlement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.rows[userID]; ok {
		return e, nil
	}
	e := entitlement.Entitlement{UserID: userID, FreeCredits: free, Subscription: entitlement.SubscriptionFree, Version: 1}
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

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	files, err := storage.NewFileStore(t.TempDir(), "http://example.test/static")
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	gens := map[domain.MediaKind]providers.Generator{
		domain.MediaKindImage: image.NewSynthetic(0),
		domain.MediaKindVideo: video.NewSynthetic(0),
	}
	cat := catalog.Default()
	app := &handlers.App{
		Catalog:         cat,
		Sessions:        selection.NewStore(cat, time.Hour),
		Dispatcher:      dispatch.New(gens, files, zerolog.Nop()),
		Assets:          &memoryAssets{},
		Entitlements:    entitlement.NewService(&memoryEntitlements{rows: map[string]entitlement.Entitlement{}}, 1, zerolog.Nop()),
		Logger:          zerolog.Nop(),
		DispatchTimeout: 10 * time.Second,
	}
	return NewRouter(app, Options{
		JWTSecret:       testSecret,
		AllowedOrigins:  []string{"http://localhost:5173"},
		RateLimitPerMin: 1000,
		DefaultLocale:   "fr",
		Static:          files.Handler(),
		Logger:          zerolog.Nop(),
	})
}

func newToken(t *testing.T, userID, role string) string {
	t.Helper()
	token, err := middleware.SignJWT(testSecret, middleware.TokenClaims{
		Sub:      userID,
		Role:     role,
		Exp:      time.Now().Add(time.Hour).Unix(),
		Issuer:   "integration-test",
		Audience: "client-test",
	})
	if err != nil {
		t.Fatalf("sign jwt: %v", err)
	}
	return token
}

func do(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Accept-Language", "en-US")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestPublicCatalogNeedsNoToken(t *testing.T) {
	h := newTestRouter(t)
	rec := do(t, h, http.MethodGet, "/v1/catalog", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("catalog = %d", rec.Code)
	}
	if rec.Header().Get("Content-Language") != "en" || rec.Header().Get("X-Request-ID") == "" {
		t.Fatalf("headers = %v", rec.Header())
	}
	if rec := do(t, h, http.MethodPost, "/v1/sessions", "", nil); rec.Code != http.StatusUnauthorized {
		t.Fatalf("sessions without token = %d", rec.Code)
	}
}

func TestGenerateAndDownloadFlow(t *testing.T) {
	h := newTestRouter(t)
	user := newToken(t, "user-1", "")

	rec := do(t, h, http.MethodPost, "/v1/sessions", user, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create session = %d", rec.Code)
	}
	var sess selection.SessionView
	_ = json.Unmarshal(rec.Body.Bytes(), &sess)

	base := "/v1/sessions/" + sess.ID
	for _, step := range []struct{ path, id string }{
		{"/category", "social_post"},
		{"/subformat", "instagram_story"},
		{"/palette", "ocean"},
	} {
		if rec := do(t, h, http.MethodPut, base+step.path, user, map[string]string{"id": step.id}); rec.Code != http.StatusOK {
			t.Fatalf("PUT %s = %d %s", step.path, rec.Code, rec.Body.String())
		}
	}

	rec = do(t, h, http.MethodPost, base+"/generate", user, map[string]string{"text": "summer sale"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("generate = %d %s", rec.Code, rec.Body.String())
	}
	var gen struct {
		Asset domain.AssetReference `json:"asset"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &gen)
	if gen.Asset.Dimensions != (domain.Dimensions{Width: 1080, Height: 1920}) {
		t.Fatalf("dimensions = %v", gen.Asset.Dimensions)
	}
	if !strings.HasPrefix(gen.Asset.URL, "http://example.test/static/image/") {
		t.Fatalf("asset url = %q", gen.Asset.URL)
	}

	staticPath := strings.TrimPrefix(gen.Asset.URL, "http://example.test")
	if rec := do(t, h, http.MethodGet, staticPath, "", nil); rec.Code != http.StatusOK {
		t.Fatalf("static file = %d", rec.Code)
	}

	download := "/v1/assets/" + gen.Asset.ID + "/download"
	if rec := do(t, h, http.MethodPost, download, user, nil); rec.Code != http.StatusOK {
		t.Fatalf("first download = %d", rec.Code)
	}
	if rec := do(t, h, http.MethodPost, download, user, nil); rec.Code != http.StatusPaymentRequired {
		t.Fatalf("second download = %d", rec.Code)
	}

	if rec := do(t, h, http.MethodPost, download, newToken(t, "user-2", ""), nil); rec.Code != http.StatusNotFound {
		t.Fatalf("other user download = %d", rec.Code)
	}
}

func TestAdminRoutesRequireRole(t *testing.T) {
	h := newTestRouter(t)
	body := map[string]int{"credits": 5}

	if rec := do(t, h, http.MethodPost, "/v1/admin/entitlements/user-1/credits", newToken(t, "user-1", "user"), body); rec.Code != http.StatusForbidden {
		t.Fatalf("user grant = %d", rec.Code)
	}
	rec := do(t, h, http.MethodPost, "/v1/admin/entitlements/user-1/credits", newToken(t, "root", "admin"), body)
	if rec.Code != http.StatusOK {
		t.Fatalf("admin grant = %d %s", rec.Code, rec.Body.String())
	}

	rec = do(t, h, http.MethodGet, "/v1/me/entitlement", newToken(t, "user-1", ""), nil)
	if !strings.Contains(rec.Body.String(), `"balance":6`) {
		t.Fatalf("entitlement after grant = %s", rec.Body.String())
	}
}

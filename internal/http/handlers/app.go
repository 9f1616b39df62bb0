package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"igpt/internal/catalog"
	"igpt/internal/domain"
	"igpt/internal/entitlement"
	"igpt/internal/middleware"
	"igpt/internal/selection"
)

const (
	defaultDispatchTimeout = 3 * time.Minute
	maxBodyBytes           = 64 << 10
)

// Dispatcher sends a composed request to the media provider.
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.GenerationRequest) (domain.AssetReference, error)
}

// Entitlements is the credit gate as seen by the HTTP layer.
type Entitlements interface {
	Get(ctx context.Context, userID string) (entitlement.Entitlement, error)
	Consume(ctx context.Context, userID string) (entitlement.Entitlement, error)
	Grant(ctx context.Context, userID string, paid int) (entitlement.Entitlement, error)
	Subscribe(ctx context.Context, userID string, plan entitlement.Subscription) (entitlement.Entitlement, error)
}

// Pinger reports database health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	Catalog         *catalog.Catalog
	Sessions        *selection.Store
	Dispatcher      Dispatcher
	Assets          domain.AssetRepository
	Entitlements    Entitlements
	DB              Pinger
	Logger          zerolog.Logger
	DispatchTimeout time.Duration
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]any{
		"error": map[string]string{"code": errCode, "message": message},
	})
}

// decode reads a JSON body into v. An empty body leaves v untouched.
func (a *App) decode(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) dispatchTimeout() time.Duration {
	if a.DispatchTimeout > 0 {
		return a.DispatchTimeout
	}
	return defaultDispatchTimeout
}

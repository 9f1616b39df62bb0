package credentials

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"igpt/internal/infra"
	"igpt/internal/sqlinline"
)

const (
	ProviderGemini = "gemini"
	ProviderRunway = "runway"
)

// KnownProviders lists the integrations whose keys may be stored.
var KnownProviders = []string{ProviderGemini, ProviderRunway}

// Store keeps provider API keys in integration_tokens for deployments that do
// not inject them through the environment.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

// Token returns the stored key for provider, or "" when none is stored.
func (s *Store) Token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

// SetToken stores key for a known provider.
func (s *Store) SetToken(ctx context.Context, provider, key string) error {
	provider = strings.ToLower(strings.TrimSpace(provider))
	if !known(provider) {
		return fmt.Errorf("unknown provider %q", provider)
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%s api key is required", provider)
	}
	return s.upsert(ctx, provider, key, map[string]any{"set_at": time.Now().UTC().Format(time.RFC3339)})
}

// Entry describes a stored key without revealing it.
type Entry struct {
	Provider  string
	UpdatedAt time.Time
}

// List returns the providers that have a stored key.
func (s *Store) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.sql.Query(ctx, sqlinline.QListIntegrationProviders)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.Provider, &e.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// Resolve prefers the environment value and falls back to the stored key.
func Resolve(ctx context.Context, store *Store, provider, fromEnv string) (string, error) {
	if v := strings.TrimSpace(fromEnv); v != "" {
		return v, nil
	}
	if store == nil {
		return "", nil
	}
	return store.Token(ctx, provider)
}

func (s *Store) upsert(ctx context.Context, provider, token string, props map[string]any) error {
	payload := props
	if payload == nil {
		payload = map[string]any{}
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, provider, token, raw)
	return err
}

func known(provider string) bool {
	for _, p := range KnownProviders {
		if p == provider {
			return true
		}
	}
	return false
}

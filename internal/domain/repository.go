package domain

import "context"

// AssetRepository persists generated assets.
type AssetRepository interface {
	Save(ctx context.Context, asset AssetReference) error
	GetForUser(ctx context.Context, id, userID string) (*AssetReference, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]AssetReference, error)
}

// CredentialStore resolves provider API keys kept outside the environment.
type CredentialStore interface {
	Token(ctx context.Context, provider string) (string, error)
}

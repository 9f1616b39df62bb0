package repo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"igpt/internal/domain"
	"igpt/internal/infra"
	"igpt/internal/sqlinline"
)

const maxListLimit = 100

// AssetRepositoryPG implements domain.AssetRepository using PostgreSQL.
type AssetRepositoryPG struct {
	sql infra.SQLExecutor
}

// NewAssetRepository constructs a new asset repository instance.
func NewAssetRepository(sql infra.SQLExecutor) *AssetRepositoryPG {
	return &AssetRepositoryPG{sql: sql}
}

// Save inserts a generated asset together with its generation metadata.
func (r *AssetRepositoryPG) Save(ctx context.Context, asset domain.AssetReference) error {
	props, err := json.Marshal(asset.Metadata)
	if err != nil {
		return fmt.Errorf("encode asset metadata: %w", err)
	}
	createdAt := asset.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err = r.sql.Exec(ctx, sqlinline.QInsertGeneratedAsset,
		asset.ID,
		asset.UserID,
		asset.SessionID,
		string(asset.Kind),
		asset.URL,
		asset.MIME,
		asset.Prompt,
		asset.Dimensions.Width,
		asset.Dimensions.Height,
		asset.Provider,
		props,
		createdAt,
	)
	if err != nil {
		return fmt.Errorf("insert asset: %w", err)
	}
	return nil
}

// GetForUser returns the asset only when it belongs to userID.
func (r *AssetRepositoryPG) GetForUser(ctx context.Context, id, userID string) (*domain.AssetReference, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QSelectAssetForUser, id, userID)
	asset, err := scanAsset(row)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, fmt.Errorf("asset %s: %w", id, domain.ErrNotFound)
		}
		return nil, err
	}
	return asset, nil
}

// ListByUser returns the user's assets, newest first.
func (r *AssetRepositoryPG) ListByUser(ctx context.Context, userID string, limit, offset int) ([]domain.AssetReference, error) {
	if limit <= 0 || limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.sql.Query(ctx, sqlinline.QListAssetsByUser, userID, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	assets := make([]domain.AssetReference, 0)
	for rows.Next() {
		asset, err := scanAsset(rows)
		if err != nil {
			return nil, err
		}
		assets = append(assets, *asset)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return assets, nil
}

func scanAsset(row pgx.Row) (*domain.AssetReference, error) {
	var (
		asset  domain.AssetReference
		kind   string
		width  int
		height int
		props  []byte
	)
	if err := row.Scan(
		&asset.ID,
		&asset.UserID,
		&asset.SessionID,
		&kind,
		&asset.URL,
		&asset.MIME,
		&asset.Prompt,
		&width,
		&height,
		&asset.Provider,
		&props,
		&asset.CreatedAt,
	); err != nil {
		return nil, err
	}
	asset.Kind = domain.MediaKind(kind)
	asset.Dimensions = domain.Dimensions{Width: width, Height: height}
	if len(props) > 0 {
		if err := json.Unmarshal(props, &asset.Metadata); err != nil {
			return nil, fmt.Errorf("decode asset metadata: %w", err)
		}
	}
	return &asset, nil
}

var _ domain.AssetRepository = (*AssetRepositoryPG)(nil)

package repo

import (
	"context"
	"fmt"

	"igpt/internal/domain"
	"igpt/internal/entitlement"
	"igpt/internal/infra"
	"igpt/internal/sqlinline"
)

// EntitlementRepositoryPG stores credit balances with optimistic versioning.
type EntitlementRepositoryPG struct {
	sql infra.SQLExecutor
}

func NewEntitlementRepository(sql infra.SQLExecutor) *EntitlementRepositoryPG {
	return &EntitlementRepositoryPG{sql: sql}
}

// GetOrCreate loads the user's row, inserting it with freeCredits on first use.
// When two first uses race, the losing statement sees neither its own insert
// nor the winner's row, so the lookup is repeated once.
func (r *EntitlementRepositoryPG) GetOrCreate(ctx context.Context, userID string, freeCredits int) (entitlement.Entitlement, error) {
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		row := r.sql.QueryRow(ctx, sqlinline.QSelectOrSeedEntitlement, userID, freeCredits)
		var e entitlement.Entitlement
		e, err = scanEntitlement(row.Scan)
		if err == nil {
			return e, nil
		}
		if !infra.IsNoRows(err) {
			break
		}
	}
	return entitlement.Entitlement{}, fmt.Errorf("load entitlement %s: %w", userID, err)
}

// Save writes e if nobody changed the row since it was read.
func (r *EntitlementRepositoryPG) Save(ctx context.Context, e entitlement.Entitlement) (entitlement.Entitlement, error) {
	row := r.sql.QueryRow(ctx, sqlinline.QUpdateEntitlement,
		e.UserID,
		e.FreeCredits,
		e.PaidCredits,
		string(e.Subscription),
		e.Version,
	)
	saved, err := scanEntitlement(row.Scan)
	if err != nil {
		if infra.IsNoRows(err) {
			return entitlement.Entitlement{}, fmt.Errorf("entitlement %s version %d: %w", e.UserID, e.Version, domain.ErrConcurrentUpdate)
		}
		return entitlement.Entitlement{}, fmt.Errorf("save entitlement %s: %w", e.UserID, err)
	}
	return saved, nil
}

func scanEntitlement(scan func(dest ...any) error) (entitlement.Entitlement, error) {
	var (
		e    entitlement.Entitlement
		plan string
	)
	if err := scan(&e.UserID, &e.FreeCredits, &e.PaidCredits, &plan, &e.Version, &e.UpdatedAt); err != nil {
		return entitlement.Entitlement{}, err
	}
	e.Subscription = entitlement.Subscription(plan)
	return e, nil
}

var _ entitlement.Repository = (*EntitlementRepositoryPG)(nil)

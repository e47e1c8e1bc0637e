package exchangerate

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// List returns rates for a tenant, or the system-wide defaults when
	// tenantID is nil.
	List(ctx context.Context, tenantID *uuid.UUID) ([]*ExchangeRate, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ExchangeRate, error)
	// GetLatest returns the most recent rate for a currency pair, scoped to
	// the tenant or system-wide when tenantID is nil.
	GetLatest(ctx context.Context, tenantID *uuid.UUID, baseCode, targetCode string) (*ExchangeRate, error)
	Create(ctx context.Context, actorID uuid.UUID, params CreateParams) (*ExchangeRate, error)
	Update(ctx context.Context, id, actorID uuid.UUID, params UpdateParams) (*ExchangeRate, error)
	// Delete hard-deletes a rate. Exchange rates have no soft-delete flag.
	Delete(ctx context.Context, id uuid.UUID) error
}

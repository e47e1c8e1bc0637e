package account

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Account, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Account, error)
	// ExistsActive reports whether an active account with the given id exists
	// under the tenant. Journal-entry writes resolve their account references
	// through this check.
	ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error)
	Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Account, error)
	Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Account, error)
	Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error
}

package category

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Category, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Category, error)
	// ExistsActive reports whether an active category with the given id
	// exists under the tenant. Transaction writes resolve their category
	// references through this check.
	ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error)
	Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Category, error)
	Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Category, error)
	Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error
}

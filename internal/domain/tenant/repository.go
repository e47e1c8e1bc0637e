package tenant

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*Tenant, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Tenant, error)
	Create(ctx context.Context, actorID uuid.UUID, params CreateParams) (*Tenant, error)
	Update(ctx context.Context, id, actorID uuid.UUID, params UpdateParams) (*Tenant, error)
	Deactivate(ctx context.Context, id, actorID uuid.UUID) error
}

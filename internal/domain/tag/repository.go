package tag

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Tag, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Tag, error)
	Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Tag, error)
	Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Tag, error)
	Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error
}

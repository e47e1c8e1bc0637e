package accounttype

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*AccountType, error)
	GetByID(ctx context.Context, id uuid.UUID) (*AccountType, error)
	// ExistsActive reports whether an active account type with the given id
	// exists. Used to validate references from account writes.
	ExistsActive(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, actorID uuid.UUID, params CreateParams) (*AccountType, error)
	Update(ctx context.Context, id, actorID uuid.UUID, params UpdateParams) (*AccountType, error)
	Deactivate(ctx context.Context, id, actorID uuid.UUID) error
}

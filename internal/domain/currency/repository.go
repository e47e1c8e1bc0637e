package currency

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	List(ctx context.Context) ([]*Currency, error)
	GetByCode(ctx context.Context, code string) (*Currency, error)
	Create(ctx context.Context, actorID uuid.UUID, params CreateParams) (*Currency, error)
	Update(ctx context.Context, code string, actorID uuid.UUID, params UpdateParams) (*Currency, error)
	Deactivate(ctx context.Context, code string, actorID uuid.UUID) error
}

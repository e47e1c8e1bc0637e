package user

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, params CreateParams) (*User, error)
	Update(ctx context.Context, id, actorID uuid.UUID, params UpdateParams) (*User, error)
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

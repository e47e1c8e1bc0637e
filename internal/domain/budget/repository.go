package budget

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Budget, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Budget, error)
	ExistsActive(ctx context.Context, id, tenantID uuid.UUID) (bool, error)
	Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Budget, error)
	Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Budget, error)
	Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error

	ListLineItems(ctx context.Context, budgetID, tenantID uuid.UUID) ([]*LineItem, error)
	GetLineItemByID(ctx context.Context, id, tenantID uuid.UUID) (*LineItem, error)
	CreateLineItem(ctx context.Context, budgetID, actorID uuid.UUID, params CreateLineItemParams) (*LineItem, error)
	UpdateLineItem(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateLineItemParams) (*LineItem, error)
	DeactivateLineItem(ctx context.Context, id, tenantID, actorID uuid.UUID) error
}

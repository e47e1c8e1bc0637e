package budget

import (
	"context"

	"github.com/google/uuid"

	"forge/internal/domain/account"
	"forge/internal/domain/category"
	"forge/internal/shared/apperror"
)

// Service enforces ownership of every entity a budget or line item
// references before touching storage.
type Service struct {
	repo         Repository
	categoryRepo category.Repository
	accountRepo  account.Repository
}

func NewService(repo Repository, categoryRepo category.Repository, accountRepo account.Repository) *Service {
	return &Service{repo: repo, categoryRepo: categoryRepo, accountRepo: accountRepo}
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]*Budget, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *Service) Get(ctx context.Context, id, tenantID uuid.UUID) (*Budget, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

func (s *Service) Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Create(ctx, tenantID, actorID, params)
}

func (s *Service) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Budget, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, tenantID, actorID, params)
}

func (s *Service) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	return s.repo.Deactivate(ctx, id, tenantID, actorID)
}

func (s *Service) ListLineItems(ctx context.Context, budgetID, tenantID uuid.UUID) ([]*LineItem, error) {
	if err := s.checkBudget(ctx, budgetID, tenantID); err != nil {
		return nil, err
	}
	return s.repo.ListLineItems(ctx, budgetID, tenantID)
}

func (s *Service) GetLineItem(ctx context.Context, id, tenantID uuid.UUID) (*LineItem, error) {
	return s.repo.GetLineItemByID(ctx, id, tenantID)
}

func (s *Service) CreateLineItem(ctx context.Context, budgetID, tenantID, actorID uuid.UUID, params CreateLineItemParams) (*LineItem, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkBudget(ctx, budgetID, tenantID); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, tenantID, params.CategoryID, params.AccountID); err != nil {
		return nil, err
	}
	return s.repo.CreateLineItem(ctx, budgetID, actorID, params)
}

func (s *Service) UpdateLineItem(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateLineItemParams) (*LineItem, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkRefs(ctx, tenantID, params.CategoryID, params.AccountID); err != nil {
		return nil, err
	}
	return s.repo.UpdateLineItem(ctx, id, tenantID, actorID, params)
}

func (s *Service) DeactivateLineItem(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	return s.repo.DeactivateLineItem(ctx, id, tenantID, actorID)
}

// checkBudget resolves a budget referenced by a line-item operation.
// A budget that does not exist under the tenant is reported as invalid
// input, not as a missing resource.
func (s *Service) checkBudget(ctx context.Context, budgetID, tenantID uuid.UUID) error {
	ok, err := s.repo.ExistsActive(ctx, budgetID, tenantID)
	if err != nil {
		return err
	}
	if !ok {
		return apperror.Validation("budget ID %s is invalid or inactive", budgetID)
	}
	return nil
}

func (s *Service) checkRefs(ctx context.Context, tenantID uuid.UUID, categoryID, accountID *uuid.UUID) error {
	if categoryID != nil {
		ok, err := s.categoryRepo.ExistsActive(ctx, *categoryID, tenantID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Validation("category ID %s is invalid or inactive", *categoryID)
		}
	}
	if accountID != nil {
		ok, err := s.accountRepo.ExistsActive(ctx, *accountID, tenantID)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Validation("account ID %s is invalid or inactive", *accountID)
		}
	}
	return nil
}

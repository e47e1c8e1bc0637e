package account

import (
	"context"

	"github.com/google/uuid"

	"forge/internal/domain/accounttype"
	"forge/internal/shared/apperror"
)

// Service contains the business logic for account operations.
type Service struct {
	repo     Repository
	typeRepo accounttype.Repository
}

func NewService(repo Repository, typeRepo accounttype.Repository) *Service {
	return &Service{repo: repo, typeRepo: typeRepo}
}

// Create validates the parameters and the referenced account type before
// inserting. An unknown or inactive account type is a validation failure,
// not a not-found: the reference is client-supplied input.
func (s *Service) Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	ok, err := s.typeRepo.ExistsActive(ctx, params.AccountTypeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, apperror.Validation("account type ID %s is invalid or inactive", params.AccountTypeID)
	}

	return s.repo.Create(ctx, tenantID, actorID, params)
}

func (s *Service) Get(ctx context.Context, id, tenantID uuid.UUID) (*Account, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]*Account, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

// Update applies a sparse update. A changed account type reference is
// resolved before the write.
func (s *Service) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Account, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.AccountTypeID != nil {
		ok, err := s.typeRepo.ExistsActive(ctx, *params.AccountTypeID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Validation("account type ID %s is invalid or inactive", *params.AccountTypeID)
		}
	}

	return s.repo.Update(ctx, id, tenantID, actorID, params)
}

func (s *Service) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	return s.repo.Deactivate(ctx, id, tenantID, actorID)
}

package category

import (
	"context"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// maxTreeDepth bounds the parent-chain walk so a corrupted tree cannot make
// a write spin forever.
const maxTreeDepth = 32

// Service contains the business logic for category operations, including
// cycle prevention on the parent tree.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.ParentCategoryID != nil {
		if err := s.checkParentChain(ctx, tenantID, *params.ParentCategoryID, uuid.Nil); err != nil {
			return nil, err
		}
	}

	return s.repo.Create(ctx, tenantID, actorID, params)
}

func (s *Service) Get(ctx context.Context, id, tenantID uuid.UUID) (*Category, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]*Category, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *Service) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Category, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.ParentCategoryID != nil {
		if *params.ParentCategoryID == id {
			return nil, apperror.Validation("category cannot be its own parent")
		}
		if err := s.checkParentChain(ctx, tenantID, *params.ParentCategoryID, id); err != nil {
			return nil, err
		}
	}

	return s.repo.Update(ctx, id, tenantID, actorID, params)
}

func (s *Service) Deactivate(ctx context.Context, id, tenantID, actorID uuid.UUID) error {
	return s.repo.Deactivate(ctx, id, tenantID, actorID)
}

// checkParentChain resolves the proposed parent under the tenant and walks
// up its ancestors. Encountering self (the node being written) means the
// assignment would close a cycle. The parent reference is client-supplied
// input, so failures are validation errors.
func (s *Service) checkParentChain(ctx context.Context, tenantID, parentID, selfID uuid.UUID) error {
	current := parentID
	for depth := 0; depth < maxTreeDepth; depth++ {
		parent, err := s.repo.GetByID(ctx, current, tenantID)
		if err != nil {
			if apperror.KindOf(err) == apperror.KindNotFound {
				return apperror.Validation("parent category ID %s is invalid or inactive", current)
			}
			return err
		}
		if selfID != uuid.Nil && parent.ID == selfID {
			return apperror.Validation("parent category ID %s would create a cycle", parentID)
		}
		if parent.ParentCategoryID == nil {
			return nil
		}
		current = *parent.ParentCategoryID
	}
	return apperror.Validation("category tree exceeds maximum depth of %d", maxTreeDepth)
}

package transaction

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"forge/internal/domain/category"
	"forge/internal/shared/apperror"
)

// Service orchestrates the ledger write path: validation, reference
// resolution, the atomic transaction+entries write, and post-commit events.
type Service struct {
	repo         Repository
	categoryRepo category.Repository
	publisher    EventPublisher
}

func NewService(repo Repository, categoryRepo category.Repository, publisher EventPublisher) *Service {
	if publisher == nil {
		publisher = NopPublisher{}
	}
	return &Service{repo: repo, categoryRepo: categoryRepo, publisher: publisher}
}

func (s *Service) List(ctx context.Context, tenantID uuid.UUID) ([]*Transaction, error) {
	return s.repo.ListByTenant(ctx, tenantID)
}

func (s *Service) Get(ctx context.Context, id, tenantID uuid.UUID) (*Transaction, error) {
	return s.repo.GetByID(ctx, id, tenantID)
}

// Create validates the request (field constraints and the debit/credit
// balance invariant), resolves the category reference under the tenant, and
// delegates the atomic write to the repository. Journal-entry account
// references are resolved inside the repository's unit of work so that an
// invalid account rolls back the entire write.
func (s *Service) Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		ok, err := s.categoryRepo.ExistsActive(ctx, *params.CategoryID, tenantID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Validation("category ID %s is invalid or inactive", *params.CategoryID)
		}
	}

	tx, err := s.repo.Create(ctx, tenantID, actorID, params)
	if err != nil {
		return nil, err
	}

	if err := s.publisher.TransactionPosted(ctx, PostedEvent{
		TransactionID: tx.ID,
		TenantID:      tx.TenantID,
		Type:          tx.Type,
		Amount:        tx.Amount,
		CurrencyCode:  tx.CurrencyCode,
		EntryCount:    len(params.JournalEntries),
		OccurredAt:    time.Now().UTC(),
	}); err != nil {
		log.Printf("Failed to publish transaction posted event for %s: %v", tx.ID, err)
	}

	return tx, nil
}

// Update applies a sparse metadata update. Journal entries are left
// untouched; a changed category reference is resolved first.
func (s *Service) Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Transaction, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if params.CategoryID != nil {
		ok, err := s.categoryRepo.ExistsActive(ctx, *params.CategoryID, tenantID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, apperror.Validation("category ID %s is invalid or inactive", *params.CategoryID)
		}
	}

	return s.repo.Update(ctx, id, tenantID, actorID, params)
}

// Delete removes the transaction and its journal entries atomically.
func (s *Service) Delete(ctx context.Context, id, tenantID uuid.UUID) error {
	if err := s.repo.Delete(ctx, id, tenantID); err != nil {
		return err
	}

	if err := s.publisher.TransactionDeleted(ctx, DeletedEvent{
		TransactionID: id,
		TenantID:      tenantID,
		OccurredAt:    time.Now().UTC(),
	}); err != nil {
		log.Printf("Failed to publish transaction deleted event for %s: %v", id, err)
	}

	return nil
}

// ListEntries returns the journal entries of a transaction after verifying
// the transaction belongs to the tenant.
func (s *Service) ListEntries(ctx context.Context, transactionID, tenantID uuid.UUID) ([]*JournalEntry, error) {
	return s.repo.ListEntries(ctx, transactionID, tenantID)
}

// GetEntry returns a single journal entry, tenant-verified through its
// parent transaction.
func (s *Service) GetEntry(ctx context.Context, entryID, tenantID uuid.UUID) (*JournalEntry, error) {
	return s.repo.GetEntryByID(ctx, entryID, tenantID)
}

package transaction

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*Transaction, error)
	GetByID(ctx context.Context, id, tenantID uuid.UUID) (*Transaction, error)
	// Create atomically inserts the transaction row and all journal-entry
	// rows. Each entry's account is resolved under the tenant inside the
	// same unit of work; an invalid account aborts the whole write.
	Create(ctx context.Context, tenantID, actorID uuid.UUID, params CreateParams) (*Transaction, error)
	Update(ctx context.Context, id, tenantID, actorID uuid.UUID, params UpdateParams) (*Transaction, error)
	// Delete removes the journal entries and then the transaction inside one
	// unit of work, rolling back fully when the transaction is not owned by
	// the tenant.
	Delete(ctx context.Context, id, tenantID uuid.UUID) error
	ListEntries(ctx context.Context, transactionID, tenantID uuid.UUID) ([]*JournalEntry, error)
	GetEntryByID(ctx context.Context, entryID, tenantID uuid.UUID) (*JournalEntry, error)
}

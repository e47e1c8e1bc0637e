package transaction

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PostedEvent describes a committed ledger write.
type PostedEvent struct {
	TransactionID uuid.UUID       `json:"transactionId"`
	TenantID      uuid.UUID       `json:"tenantId"`
	Type          Type            `json:"type"`
	Amount        decimal.Decimal `json:"amount"`
	CurrencyCode  string          `json:"currencyCode"`
	EntryCount    int             `json:"entryCount"`
	OccurredAt    time.Time       `json:"occurredAt"`
}

// DeletedEvent describes a committed transaction deletion.
type DeletedEvent struct {
	TransactionID uuid.UUID `json:"transactionId"`
	TenantID      uuid.UUID `json:"tenantId"`
	OccurredAt    time.Time `json:"occurredAt"`
}

// EventPublisher receives ledger events after commit. Implementations must
// not fail the originating request; errors are surfaced to the caller only
// for logging.
type EventPublisher interface {
	TransactionPosted(ctx context.Context, event PostedEvent) error
	TransactionDeleted(ctx context.Context, event DeletedEvent) error
}

// NopPublisher discards all events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) TransactionPosted(context.Context, PostedEvent) error { return nil }
func (NopPublisher) TransactionDeleted(context.Context, DeletedEvent) error { return nil }

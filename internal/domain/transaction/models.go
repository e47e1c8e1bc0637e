package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/currency"
	"forge/internal/shared/apperror"
)

// Type classifies a financial transaction.
type Type string

const (
	TypeIncome         Type = "INCOME"
	TypeExpense        Type = "EXPENSE"
	TypeTransfer       Type = "TRANSFER"
	TypeJournalEntry   Type = "JOURNAL_ENTRY"
	TypeOpeningBalance Type = "OPENING_BALANCE"
	TypeAdjustment     Type = "ADJUSTMENT"
)

// ParseType decodes a stored string code. Unrecognized codes fail explicitly
// rather than defaulting.
func ParseType(s string) (Type, error) {
	switch s {
	case "INCOME":
		return TypeIncome, nil
	case "EXPENSE":
		return TypeExpense, nil
	case "TRANSFER":
		return TypeTransfer, nil
	case "JOURNAL_ENTRY":
		return TypeJournalEntry, nil
	case "OPENING_BALANCE":
		return TypeOpeningBalance, nil
	case "ADJUSTMENT":
		return TypeAdjustment, nil
	default:
		return "", apperror.Validation("'%s' is not a valid transaction type", s)
	}
}

// RequiresBalance reports whether transactions of this type must carry a
// balanced journal-entry set. Adjustments and opening balances may be
// single-sided.
func (t Type) RequiresBalance() bool {
	return t != TypeAdjustment && t != TypeOpeningBalance
}

// EntryType is the side of a journal entry.
type EntryType string

const (
	EntryTypeDebit  EntryType = "DEBIT"
	EntryTypeCredit EntryType = "CREDIT"
)

// ParseEntryType decodes a stored string code.
func ParseEntryType(s string) (EntryType, error) {
	switch s {
	case "DEBIT":
		return EntryTypeDebit, nil
	case "CREDIT":
		return EntryTypeCredit, nil
	default:
		return "", apperror.Validation("'%s' is not a valid journal entry type", s)
	}
}

// Transaction is a financial event owned by a tenant. Its journal entries
// carry the debit/credit legs.
type Transaction struct {
	ID                 uuid.UUID       `json:"id"`
	TenantID           uuid.UUID       `json:"tenantId"`
	TransactionDate    time.Time       `json:"transactionDate"`
	Description        string          `json:"description"`
	Type               Type            `json:"type"`
	CategoryID         *uuid.UUID      `json:"categoryId,omitempty"`
	TagIDs             []uuid.UUID     `json:"tagIds,omitempty"`
	Amount             decimal.Decimal `json:"amount"`
	CurrencyCode       string          `json:"currencyCode"`
	IsReconciled       bool            `json:"isReconciled"`
	ReconciliationDate *time.Time      `json:"reconciliationDate,omitempty"`
	Notes              *string         `json:"notes,omitempty"`
	SourceDocumentURL  *string         `json:"sourceDocumentUrl,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          uuid.UUID       `json:"createdBy"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	UpdatedBy          uuid.UUID       `json:"updatedBy"`
}

// JournalEntry is one debit or credit leg of a transaction. Entries are
// immutable by convention once posted.
type JournalEntry struct {
	ID              uuid.UUID        `json:"id"`
	TransactionID   uuid.UUID        `json:"transactionId"`
	AccountID       uuid.UUID        `json:"accountId"`
	EntryType       EntryType        `json:"entryType"`
	Amount          decimal.Decimal  `json:"amount"`
	CurrencyCode    string           `json:"currencyCode"`
	ExchangeRate    *decimal.Decimal `json:"exchangeRate,omitempty"`
	ConvertedAmount *decimal.Decimal `json:"convertedAmount,omitempty"`
	Memo            *string          `json:"memo,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	CreatedBy       uuid.UUID        `json:"createdBy"`
	UpdatedAt       time.Time        `json:"updatedAt"`
	UpdatedBy       uuid.UUID        `json:"updatedBy"`
}

// CreateEntryParams is one journal-entry leg of a create request.
type CreateEntryParams struct {
	AccountID       uuid.UUID
	EntryType       EntryType
	Amount          decimal.Decimal
	CurrencyCode    string
	ExchangeRate    *decimal.Decimal
	ConvertedAmount *decimal.Decimal
	Memo            *string
}

func (p CreateEntryParams) Validate() error {
	if p.AccountID == uuid.Nil {
		return apperror.Validation("journal entry account ID is required")
	}
	if _, err := ParseEntryType(string(p.EntryType)); err != nil {
		return err
	}
	if p.Amount.IsNegative() {
		return apperror.Validation("journal entry amount must not be negative")
	}
	if !currency.IsValidCode(p.CurrencyCode) {
		return apperror.Validation("journal entry currency code must be a 3-letter ISO 4217 code")
	}
	if p.ExchangeRate != nil && !p.ExchangeRate.IsPositive() {
		return apperror.Validation("journal entry exchange rate must be positive")
	}
	return nil
}

// CreateParams contains parameters for creating a transaction together with
// its journal entries.
type CreateParams struct {
	TransactionDate    time.Time
	Description        string
	Type               Type
	CategoryID         *uuid.UUID
	TagIDs             []uuid.UUID
	Amount             decimal.Decimal
	CurrencyCode       string
	IsReconciled       *bool
	ReconciliationDate *time.Time
	Notes              *string
	SourceDocumentURL  *string
	JournalEntries     []CreateEntryParams
}

func (p CreateParams) Validate() error {
	if p.TransactionDate.IsZero() {
		return apperror.Validation("transaction date is required")
	}
	if p.Description == "" {
		return apperror.Validation("description is required")
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return err
	}
	if !p.Amount.IsPositive() {
		return apperror.Validation("amount must be positive")
	}
	if !currency.IsValidCode(p.CurrencyCode) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	if len(p.JournalEntries) == 0 {
		return apperror.Validation("at least one journal entry is required")
	}
	for i, entry := range p.JournalEntries {
		if err := entry.Validate(); err != nil {
			return apperror.Validation("journal entry %d: %s", i, apperror.Message(err))
		}
	}
	if p.Type.RequiresBalance() {
		return validateBalance(p.JournalEntries)
	}
	return nil
}

// validateBalance enforces the double-entry invariant: per currency, the sum
// of debit amounts must equal the sum of credit amounts.
func validateBalance(entries []CreateEntryParams) error {
	net := make(map[string]decimal.Decimal)
	for _, e := range entries {
		amount := e.Amount
		if e.EntryType == EntryTypeCredit {
			amount = amount.Neg()
		}
		net[e.CurrencyCode] = net[e.CurrencyCode].Add(amount)
	}
	for code, sum := range net {
		if !sum.IsZero() {
			return apperror.Validation("journal entries are unbalanced for currency %s: debits minus credits = %s", code, sum)
		}
	}
	return nil
}

// UpdateParams contains the sparse field set for a transaction update.
// Journal entries are not touched by metadata updates.
type UpdateParams struct {
	TransactionDate    *time.Time
	Description        *string
	Type               *Type
	CategoryID         *uuid.UUID
	TagIDs             []uuid.UUID
	Amount             *decimal.Decimal
	CurrencyCode       *string
	IsReconciled       *bool
	ReconciliationDate *time.Time
	Notes              *string
	SourceDocumentURL  *string
}

func (p UpdateParams) IsEmpty() bool {
	return p.TransactionDate == nil && p.Description == nil && p.Type == nil &&
		p.CategoryID == nil && p.TagIDs == nil && p.Amount == nil &&
		p.CurrencyCode == nil && p.IsReconciled == nil && p.ReconciliationDate == nil &&
		p.Notes == nil && p.SourceDocumentURL == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Description != nil && *p.Description == "" {
		return apperror.Validation("description must not be empty")
	}
	if p.Type != nil {
		if _, err := ParseType(string(*p.Type)); err != nil {
			return err
		}
	}
	if p.Amount != nil && !p.Amount.IsPositive() {
		return apperror.Validation("amount must be positive")
	}
	if p.CurrencyCode != nil && !currency.IsValidCode(*p.CurrencyCode) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	return nil
}

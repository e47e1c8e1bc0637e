package account

import (
	"time"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
	"forge/internal/domain/currency"
)

// Account is a ledger account belonging to exactly one tenant.
type Account struct {
	ID            uuid.UUID `json:"id"`
	TenantID      uuid.UUID `json:"tenantId"`
	AccountTypeID uuid.UUID `json:"accountTypeId"`
	Name          string    `json:"name"`
	AccountCode   *string   `json:"accountCode,omitempty"`
	Description   *string   `json:"description,omitempty"`
	CurrencyCode  string    `json:"currencyCode"`
	IsActive      bool      `json:"isActive"`
	CreatedAt     time.Time `json:"createdAt"`
	CreatedBy     uuid.UUID `json:"createdBy"`
	UpdatedAt     time.Time `json:"updatedAt"`
	UpdatedBy     uuid.UUID `json:"updatedBy"`
}

type CreateParams struct {
	AccountTypeID uuid.UUID
	Name          string
	AccountCode   *string
	Description   *string
	CurrencyCode  string
}

func (p CreateParams) Validate() error {
	if p.AccountTypeID == uuid.Nil {
		return apperror.Validation("account type ID is required")
	}
	if p.Name == "" || len(p.Name) > 255 {
		return apperror.Validation("account name must be 1-255 characters")
	}
	if p.AccountCode != nil && len(*p.AccountCode) > 50 {
		return apperror.Validation("account code must be at most 50 characters")
	}
	if !currency.IsValidCode(p.CurrencyCode) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	return nil
}

type UpdateParams struct {
	AccountTypeID *uuid.UUID
	Name          *string
	AccountCode   *string
	Description   *string
	CurrencyCode  *string
	IsActive      *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.AccountTypeID == nil && p.Name == nil && p.AccountCode == nil &&
		p.Description == nil && p.CurrencyCode == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 255) {
		return apperror.Validation("account name must be 1-255 characters")
	}
	if p.AccountCode != nil && len(*p.AccountCode) > 50 {
		return apperror.Validation("account code must be at most 50 characters")
	}
	if p.CurrencyCode != nil && !currency.IsValidCode(*p.CurrencyCode) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	return nil
}

package budget

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/currency"
	"forge/internal/shared/apperror"
)

// Budget is a tenant-scoped planning period.
type Budget struct {
	ID           uuid.UUID `json:"id"`
	TenantID     uuid.UUID `json:"tenantId"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"startDate"`
	EndDate      time.Time `json:"endDate"`
	CurrencyCode string    `json:"currencyCode"`
	IsActive     bool      `json:"isActive"`
	CreatedAt    time.Time `json:"createdAt"`
	CreatedBy    uuid.UUID `json:"createdBy"`
	UpdatedAt    time.Time `json:"updatedAt"`
	UpdatedBy    uuid.UUID `json:"updatedBy"`
}

// LineItem allocates a budgeted amount to a category, an account, or both.
type LineItem struct {
	ID             uuid.UUID       `json:"id"`
	BudgetID       uuid.UUID       `json:"budgetId"`
	CategoryID     *uuid.UUID      `json:"categoryId,omitempty"`
	AccountID      *uuid.UUID      `json:"accountId,omitempty"`
	BudgetedAmount decimal.Decimal `json:"budgetedAmount"`
	IsActive       bool            `json:"isActive"`
	CreatedAt      time.Time       `json:"createdAt"`
	CreatedBy      uuid.UUID       `json:"createdBy"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	UpdatedBy      uuid.UUID       `json:"updatedBy"`
}

type CreateParams struct {
	Name         string
	StartDate    time.Time
	EndDate      time.Time
	CurrencyCode string
}

func (p CreateParams) Validate() error {
	if p.Name == "" || len(p.Name) > 255 {
		return apperror.Validation("budget name must be 1-255 characters")
	}
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return apperror.Validation("start and end dates are required")
	}
	if p.EndDate.Before(p.StartDate) {
		return apperror.Validation("end date cannot be before start date")
	}
	if !currency.IsValidCode(p.CurrencyCode) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	return nil
}

type UpdateParams struct {
	Name         *string
	StartDate    *time.Time
	EndDate      *time.Time
	CurrencyCode *string
	IsActive     *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.StartDate == nil && p.EndDate == nil &&
		p.CurrencyCode == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 255) {
		return apperror.Validation("budget name must be 1-255 characters")
	}
	if p.StartDate != nil && p.EndDate != nil && p.EndDate.Before(*p.StartDate) {
		return apperror.Validation("end date cannot be before start date")
	}
	if p.CurrencyCode != nil && !currency.IsValidCode(*p.CurrencyCode) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	return nil
}

type CreateLineItemParams struct {
	CategoryID     *uuid.UUID
	AccountID      *uuid.UUID
	BudgetedAmount decimal.Decimal
}

func (p CreateLineItemParams) Validate() error {
	if p.CategoryID == nil && p.AccountID == nil {
		return apperror.Validation("a line item requires a category or an account")
	}
	if p.BudgetedAmount.IsNegative() {
		return apperror.Validation("budgeted amount must not be negative")
	}
	return nil
}

type UpdateLineItemParams struct {
	CategoryID     *uuid.UUID
	AccountID      *uuid.UUID
	BudgetedAmount *decimal.Decimal
	IsActive       *bool
}

func (p UpdateLineItemParams) IsEmpty() bool {
	return p.CategoryID == nil && p.AccountID == nil && p.BudgetedAmount == nil && p.IsActive == nil
}

func (p UpdateLineItemParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.BudgetedAmount != nil && p.BudgetedAmount.IsNegative() {
		return apperror.Validation("budgeted amount must not be negative")
	}
	return nil
}

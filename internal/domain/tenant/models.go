package tenant

import (
	"time"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// Tenant is an isolated customer scope. All ledger data is partitioned by
// tenant id.
type Tenant struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Industry           *string   `json:"industry,omitempty"`
	BaseCurrencyCode   string    `json:"baseCurrencyCode"`
	FiscalYearEndMonth int       `json:"fiscalYearEndMonth"`
	IsActive           bool      `json:"isActive"`
	CreatedAt          time.Time `json:"createdAt"`
	CreatedBy          uuid.UUID `json:"createdBy"`
	UpdatedAt          time.Time `json:"updatedAt"`
	UpdatedBy          uuid.UUID `json:"updatedBy"`
}

// CreateParams contains parameters for creating a new tenant.
type CreateParams struct {
	Name               string
	Industry           *string
	BaseCurrencyCode   string
	FiscalYearEndMonth int
}

func (p CreateParams) Validate() error {
	if p.Name == "" || len(p.Name) > 255 {
		return apperror.Validation("tenant name must be 1-255 characters")
	}
	if p.Industry != nil && len(*p.Industry) > 100 {
		return apperror.Validation("industry must be at most 100 characters")
	}
	if len(p.BaseCurrencyCode) != 3 {
		return apperror.Validation("base currency code must be a 3-letter ISO 4217 code")
	}
	if p.FiscalYearEndMonth < 1 || p.FiscalYearEndMonth > 12 {
		return apperror.Validation("fiscal year end month must be between 1 and 12")
	}
	return nil
}

// UpdateParams contains the sparse field set for a tenant update. Only
// non-nil fields are applied.
type UpdateParams struct {
	Name               *string
	Industry           *string
	BaseCurrencyCode   *string
	FiscalYearEndMonth *int
	IsActive           *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Industry == nil && p.BaseCurrencyCode == nil &&
		p.FiscalYearEndMonth == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 255) {
		return apperror.Validation("tenant name must be 1-255 characters")
	}
	if p.Industry != nil && len(*p.Industry) > 100 {
		return apperror.Validation("industry must be at most 100 characters")
	}
	if p.BaseCurrencyCode != nil && len(*p.BaseCurrencyCode) != 3 {
		return apperror.Validation("base currency code must be a 3-letter ISO 4217 code")
	}
	if p.FiscalYearEndMonth != nil && (*p.FiscalYearEndMonth < 1 || *p.FiscalYearEndMonth > 12) {
		return apperror.Validation("fiscal year end month must be between 1 and 12")
	}
	return nil
}

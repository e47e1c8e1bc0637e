package exchangerate

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"forge/internal/domain/currency"
	"forge/internal/shared/apperror"
)

// ExchangeRate is a dated conversion rate for a currency pair. A nil tenant
// id marks a system-wide default. Rates are historical records: they are
// never soft-deleted, only hard-deleted.
type ExchangeRate struct {
	ID                 uuid.UUID       `json:"id"`
	TenantID           *uuid.UUID      `json:"tenantId,omitempty"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateDate           time.Time       `json:"rateDate"`
	Source             *string         `json:"source,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          uuid.UUID       `json:"createdBy"`
	UpdatedAt          time.Time       `json:"updatedAt"`
	UpdatedBy          uuid.UUID       `json:"updatedBy"`
}

type CreateParams struct {
	TenantID           *uuid.UUID
	BaseCurrencyCode   string
	TargetCurrencyCode string
	Rate               decimal.Decimal
	RateDate           time.Time
	Source             *string
}

func (p CreateParams) Validate() error {
	if !currency.IsValidCode(p.BaseCurrencyCode) {
		return apperror.Validation("base currency code must be a 3-letter ISO 4217 code")
	}
	if !currency.IsValidCode(p.TargetCurrencyCode) {
		return apperror.Validation("target currency code must be a 3-letter ISO 4217 code")
	}
	if p.BaseCurrencyCode == p.TargetCurrencyCode {
		return apperror.Validation("base and target currency codes must differ")
	}
	if !p.Rate.IsPositive() {
		return apperror.Validation("rate must be positive")
	}
	if p.RateDate.IsZero() {
		return apperror.Validation("rate date is required")
	}
	if p.Source != nil && len(*p.Source) > 100 {
		return apperror.Validation("source must be at most 100 characters")
	}
	return nil
}

type UpdateParams struct {
	Rate     *decimal.Decimal
	RateDate *time.Time
	Source   *string
}

func (p UpdateParams) IsEmpty() bool {
	return p.Rate == nil && p.RateDate == nil && p.Source == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Rate != nil && !p.Rate.IsPositive() {
		return apperror.Validation("rate must be positive")
	}
	if p.Source != nil && len(*p.Source) > 100 {
		return apperror.Validation("source must be at most 100 characters")
	}
	return nil
}

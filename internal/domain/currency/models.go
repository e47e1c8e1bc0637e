package currency

import (
	"time"
	"unicode"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// Currency is a global reference entity keyed by its ISO 4217 code.
type Currency struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Symbol    *string   `json:"symbol,omitempty"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy uuid.UUID `json:"createdBy"`
	UpdatedAt time.Time `json:"updatedAt"`
	UpdatedBy uuid.UUID `json:"updatedBy"`
}

// IsValidCode reports whether code is a plausible ISO 4217 code: exactly
// three ASCII letters.
func IsValidCode(code string) bool {
	if len(code) != 3 {
		return false
	}
	for _, r := range code {
		if !unicode.IsLetter(r) || r > unicode.MaxASCII {
			return false
		}
	}
	return true
}

type CreateParams struct {
	Code   string
	Name   string
	Symbol *string
}

func (p CreateParams) Validate() error {
	if !IsValidCode(p.Code) {
		return apperror.Validation("currency code must be a 3-letter ISO 4217 code")
	}
	if p.Name == "" || len(p.Name) > 100 {
		return apperror.Validation("currency name must be 1-100 characters")
	}
	if p.Symbol != nil && len(*p.Symbol) > 10 {
		return apperror.Validation("currency symbol must be at most 10 characters")
	}
	return nil
}

type UpdateParams struct {
	Name     *string
	Symbol   *string
	IsActive *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Symbol == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 100) {
		return apperror.Validation("currency name must be 1-100 characters")
	}
	if p.Symbol != nil && len(*p.Symbol) > 10 {
		return apperror.Validation("currency symbol must be at most 10 characters")
	}
	return nil
}

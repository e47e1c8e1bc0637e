package accounttype

import (
	"time"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// NormalBalance indicates whether increases to accounts of a type are
// recorded as debits or credits.
type NormalBalance string

const (
	NormalBalanceDebit  NormalBalance = "DEBIT"
	NormalBalanceCredit NormalBalance = "CREDIT"
)

// ParseNormalBalance decodes a stored string code. Unrecognized codes fail
// explicitly rather than defaulting.
func ParseNormalBalance(s string) (NormalBalance, error) {
	switch s {
	case "DEBIT":
		return NormalBalanceDebit, nil
	case "CREDIT":
		return NormalBalanceCredit, nil
	default:
		return "", apperror.Validation("'%s' is not a valid normal balance", s)
	}
}

// AccountType is a global (not tenant-scoped) classification for accounts.
type AccountType struct {
	ID            uuid.UUID     `json:"id"`
	Name          string        `json:"name"`
	NormalBalance NormalBalance `json:"normalBalance"`
	IsActive      bool          `json:"isActive"`
	CreatedAt     time.Time     `json:"createdAt"`
	CreatedBy     uuid.UUID     `json:"createdBy"`
	UpdatedAt     time.Time     `json:"updatedAt"`
	UpdatedBy     uuid.UUID     `json:"updatedBy"`
}

type CreateParams struct {
	Name          string
	NormalBalance NormalBalance
}

func (p CreateParams) Validate() error {
	if p.Name == "" || len(p.Name) > 100 {
		return apperror.Validation("account type name must be 1-100 characters")
	}
	if _, err := ParseNormalBalance(string(p.NormalBalance)); err != nil {
		return err
	}
	return nil
}

type UpdateParams struct {
	Name          *string
	NormalBalance *NormalBalance
	IsActive      *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.NormalBalance == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 100) {
		return apperror.Validation("account type name must be 1-100 characters")
	}
	if p.NormalBalance != nil {
		if _, err := ParseNormalBalance(string(*p.NormalBalance)); err != nil {
			return err
		}
	}
	return nil
}

package category

import (
	"time"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// Type classifies a category for reporting purposes.
type Type string

const (
	TypeIncome     Type = "INCOME"
	TypeExpense    Type = "EXPENSE"
	TypeTransfer   Type = "TRANSFER"
	TypeInvestment Type = "INVESTMENT"
	TypeOther      Type = "OTHER"
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
	case "INVESTMENT":
		return TypeInvestment, nil
	case "OTHER":
		return TypeOther, nil
	default:
		return "", apperror.Validation("'%s' is not a valid category type", s)
	}
}

// Category is a tenant-scoped classification node. Categories form a tree
// through ParentCategoryID; cycles are rejected on write.
type Category struct {
	ID               uuid.UUID  `json:"id"`
	TenantID         uuid.UUID  `json:"tenantId"`
	Name             string     `json:"name"`
	Description      *string    `json:"description,omitempty"`
	Type             Type       `json:"type"`
	ParentCategoryID *uuid.UUID `json:"parentCategoryId,omitempty"`
	IsActive         bool       `json:"isActive"`
	CreatedAt        time.Time  `json:"createdAt"`
	CreatedBy        uuid.UUID  `json:"createdBy"`
	UpdatedAt        time.Time  `json:"updatedAt"`
	UpdatedBy        uuid.UUID  `json:"updatedBy"`
}

type CreateParams struct {
	Name             string
	Description      *string
	Type             Type
	ParentCategoryID *uuid.UUID
}

func (p CreateParams) Validate() error {
	if p.Name == "" || len(p.Name) > 255 {
		return apperror.Validation("category name must be 1-255 characters")
	}
	if _, err := ParseType(string(p.Type)); err != nil {
		return err
	}
	return nil
}

type UpdateParams struct {
	Name             *string
	Description      *string
	Type             *Type
	ParentCategoryID *uuid.UUID
	IsActive         *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Type == nil &&
		p.ParentCategoryID == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 255) {
		return apperror.Validation("category name must be 1-255 characters")
	}
	if p.Type != nil {
		if _, err := ParseType(string(*p.Type)); err != nil {
			return err
		}
	}
	return nil
}

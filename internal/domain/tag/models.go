package tag

import (
	"time"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// Tag is a tenant-scoped label attachable to transactions.
type Tag struct {
	ID          uuid.UUID `json:"id"`
	TenantID    uuid.UUID `json:"tenantId"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	IsActive    bool      `json:"isActive"`
	CreatedAt   time.Time `json:"createdAt"`
	CreatedBy   uuid.UUID `json:"createdBy"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UpdatedBy   uuid.UUID `json:"updatedBy"`
}

type CreateParams struct {
	Name        string
	Description *string
}

func (p CreateParams) Validate() error {
	if p.Name == "" || len(p.Name) > 255 {
		return apperror.Validation("tag name must be 1-255 characters")
	}
	return nil
}

type UpdateParams struct {
	Name        *string
	Description *string
	IsActive    *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.Name != nil && (*p.Name == "" || len(*p.Name) > 255) {
		return apperror.Validation("tag name must be 1-255 characters")
	}
	return nil
}

package user

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"forge/internal/shared/apperror"
)

// User is an authenticated principal. PasswordHash never leaves the
// server; handlers serialize users through a DTO without it.
type User struct {
	ID           uuid.UUID  `json:"id"`
	TenantID     uuid.UUID  `json:"tenantId"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	IsActive     bool       `json:"isActive"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

type CreateParams struct {
	TenantID     uuid.UUID
	Email        string
	PasswordHash string
	FirstName    string
	LastName     string
}

func (p CreateParams) Validate() error {
	if p.TenantID == uuid.Nil {
		return apperror.Validation("tenant is required")
	}
	if !isValidEmail(p.Email) {
		return apperror.Validation("a valid email address is required")
	}
	if p.PasswordHash == "" {
		return apperror.Validation("password is required")
	}
	if p.FirstName == "" || p.LastName == "" {
		return apperror.Validation("first and last name are required")
	}
	return nil
}

type UpdateParams struct {
	FirstName *string
	LastName  *string
	IsActive  *bool
}

func (p UpdateParams) IsEmpty() bool {
	return p.FirstName == nil && p.LastName == nil && p.IsActive == nil
}

func (p UpdateParams) Validate() error {
	if p.IsEmpty() {
		return apperror.Validation("no fields provided for update")
	}
	if p.FirstName != nil && *p.FirstName == "" {
		return apperror.Validation("first name must not be empty")
	}
	if p.LastName != nil && *p.LastName == "" {
		return apperror.Validation("last name must not be empty")
	}
	return nil
}

func isValidEmail(email string) bool {
	at := strings.Index(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}
	return strings.Contains(email[at+1:], ".")
}

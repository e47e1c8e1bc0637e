package user

import (
	"testing"

	"github.com/google/uuid"
)

func TestCreateParamsValidate(t *testing.T) {
	valid := CreateParams{
		TenantID:     uuid.New(),
		Email:        "dana@example.com",
		PasswordHash: "$2a$10$hash",
		FirstName:    "Dana",
		LastName:     "Reyes",
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() = %v, want nil", err)
	}

	tests := []struct {
		name   string
		mutate func(*CreateParams)
	}{
		{"Nil Tenant", func(p *CreateParams) { p.TenantID = uuid.Nil }},
		{"Empty Email", func(p *CreateParams) { p.Email = "" }},
		{"Email Without Domain Dot", func(p *CreateParams) { p.Email = "dana@localhost" }},
		{"Email Without Local Part", func(p *CreateParams) { p.Email = "@example.com" }},
		{"Missing Password", func(p *CreateParams) { p.PasswordHash = "" }},
		{"Missing First Name", func(p *CreateParams) { p.FirstName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); err == nil {
				t.Error("Validate() = nil, want error")
			}
		})
	}
}

func TestIsValidEmail(t *testing.T) {
	good := []string{"a@b.co", "first.last@sub.example.com"}
	bad := []string{"", "plain", "a@b", "a@", "@b.co"}

	for _, e := range good {
		if !isValidEmail(e) {
			t.Errorf("isValidEmail(%q) = false, want true", e)
		}
	}
	for _, e := range bad {
		if isValidEmail(e) {
			t.Errorf("isValidEmail(%q) = true, want false", e)
		}
	}
}

package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

func TestJWT_GenerateAndValidate(t *testing.T) {
	j := NewJWT("my-secret-key")

	userID := uuid.New()
	tenantID := uuid.New()
	email := "owner@example.com"

	token, err := j.Generate(userID, tenantID, email)
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate() returned empty token")
	}

	claims, err := j.Validate(token)
	if err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if claims.UserID != userID {
		t.Errorf("Validate() got UserID %s, want %s", claims.UserID, userID)
	}
	if claims.TenantID != tenantID {
		t.Errorf("Validate() got TenantID %s, want %s", claims.TenantID, tenantID)
	}
	if claims.Email != email {
		t.Errorf("Validate() got Email %s, want %s", claims.Email, email)
	}

	// Tampered signature must be rejected
	parts := strings.Split(token, ".")
	tampered := parts[0] + "." + parts[1] + ".invalid-signature"
	if _, err := j.Validate(tampered); err == nil {
		t.Error("Validate() accepted tampered signature")
	}

	// Malformed token must be rejected
	if _, err := j.Validate("invalid.token"); err == nil {
		t.Error("Validate() accepted invalid format")
	}
}

func TestJWT_ExpiredToken(t *testing.T) {
	j := NewJWT("my-secret-key")

	// Build an already-expired token signed with the same secret.
	now := time.Now()
	claims := &Claims{
		UserID:   uuid.New(),
		TenantID: uuid.New(),
		Email:    "expired@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now.Add(-25 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(now.Add(-1 * time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secret)
	if err != nil {
		t.Fatalf("signing expired token: %v", err)
	}

	if _, err := j.Validate(token); err == nil {
		t.Error("Validate() accepted expired token")
	}
}

func TestJWT_WrongSecret(t *testing.T) {
	token, err := NewJWT("secret-a").Generate(uuid.New(), uuid.New(), "a@b.c")
	if err != nil {
		t.Fatalf("Generate() failed: %v", err)
	}

	if _, err := NewJWT("secret-b").Validate(token); err == nil {
		t.Error("Validate() accepted token signed with a different secret")
	}
}

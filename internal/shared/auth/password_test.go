package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "my-secure-password"
	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword() failed: %v", err)
	}
	if hash == "" {
		t.Fatal("HashPassword() returned empty hash")
	}
	if hash == password {
		t.Fatal("HashPassword() returned plaintext password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		t.Errorf("HashPassword() produced invalid bcrypt hash: %v", err)
	}
}

func TestVerifyPassword(t *testing.T) {
	hash, _ := HashPassword("correct-horse")

	if err := VerifyPassword(hash, "correct-horse"); err != nil {
		t.Errorf("VerifyPassword() rejected matching password: %v", err)
	}
	if err := VerifyPassword(hash, "wrong-horse"); err == nil {
		t.Error("VerifyPassword() accepted non-matching password")
	}
}

func TestHashPassword_DifferentHashesForSamePassword(t *testing.T) {
	hash1, _ := HashPassword("same-password")
	hash2, _ := HashPassword("same-password")
	if hash1 == hash2 {
		t.Error("HashPassword() produced identical hashes; salt missing")
	}
}

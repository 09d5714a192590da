package auth

import (
	"strings"
	"testing"
)

func TestHashPassword_ProducesBcryptHash(t *testing.T) {
	h, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(h, "$2") {
		t.Fatalf("expected a bcrypt hash, got %q", h)
	}
	if h == "secret" {
		t.Fatalf("hash must differ from the password")
	}
}

func TestVerifyPassword_Bcrypt(t *testing.T) {
	h, err := HashPassword("secret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !VerifyPassword(h, "secret") {
		t.Fatalf("correct password rejected")
	}
	if VerifyPassword(h, "wrong") {
		t.Fatalf("wrong password accepted")
	}
}

func TestVerifyPassword_LegacyPlaintext(t *testing.T) {
	if !VerifyPassword("secret", "secret") {
		t.Fatalf("matching plaintext rejected")
	}
	if VerifyPassword("secret", "Secret") {
		t.Fatalf("mismatching plaintext accepted")
	}
	if VerifyPassword("", "secret") {
		t.Fatalf("empty stored credential accepted")
	}
}

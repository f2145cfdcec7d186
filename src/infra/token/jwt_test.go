package token

import (
	"testing"
	"time"

	"tradefair/src/core/domain"
)

func TestGenerateValidateRoundTrip(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)

	tok, err := issuer.Generate(42, string(domain.RoleVendor))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	actor, err := issuer.Validate(tok)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if actor.UserID != 42 || actor.Role != domain.RoleVendor {
		t.Errorf("actor = %+v, want user 42 vendor", actor)
	}
	if !actor.Authenticated() {
		t.Error("validated actor must be authenticated")
	}
}

func TestValidateRejectsWrongSecret(t *testing.T) {
	tok, err := NewIssuer("secret-a", time.Hour).Generate(1, string(domain.RoleCustomer))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	actor, err := NewIssuer("secret-b", time.Hour).Validate(tok)
	if err == nil {
		t.Fatal("expected validation failure for wrong secret")
	}
	if actor.Authenticated() {
		t.Error("failed validation must return a guest actor")
	}
}

func TestValidateRejectsExpired(t *testing.T) {
	issuer := NewIssuer("test-secret", -time.Minute)
	tok, err := issuer.Generate(1, string(domain.RoleCustomer))
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if _, err := issuer.Validate(tok); err == nil {
		t.Fatal("expected validation failure for expired token")
	}
}

func TestValidateRejectsGarbage(t *testing.T) {
	issuer := NewIssuer("test-secret", time.Hour)
	if _, err := issuer.Validate("not-a-token"); err == nil {
		t.Fatal("expected validation failure for malformed token")
	}
}

package util

import (
	"testing"
	"time"
)

func TestIssueAndValidateJWT(t *testing.T) {
	token, err := IssueJWT("secret", 42, "shop@example.com", RoleTenant, time.Hour)
	if err != nil {
		t.Fatalf("IssueJWT: %v", err)
	}

	claims, err := ValidateJWT(token, "secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("uid = %d, want 42", claims.UserID)
	}
	if claims.Role != RoleTenant {
		t.Errorf("role = %q, want %q", claims.Role, RoleTenant)
	}
	if claims.Subject != "shop@example.com" {
		t.Errorf("sub = %q", claims.Subject)
	}
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	token, err := IssueJWT("secret", 1, "shop@example.com", RoleTenant, time.Hour)
	if err != nil {
		t.Fatalf("IssueJWT: %v", err)
	}
	if _, err := ValidateJWT(token, "other-secret"); err == nil {
		t.Fatal("token validated with the wrong secret")
	}
}

func TestValidateJWTRejectsExpired(t *testing.T) {
	token, err := IssueJWT("secret", 1, "shop@example.com", RoleTenant, -time.Minute)
	if err != nil {
		t.Fatalf("IssueJWT: %v", err)
	}
	if _, err := ValidateJWT(token, "secret"); err == nil {
		t.Fatal("expired token validated")
	}
}

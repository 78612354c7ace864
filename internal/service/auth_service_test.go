package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/util"
)

func newAuthFixture() (*authService, *fakeUserRepo) {
	users := newFakeUserRepo()
	svc := NewAuthService(users, "test-secret", "admin@example.com", "admin-pass",
		"admin-key", 30, zerolog.Nop()).(*authService)
	return svc, users
}

func TestRegisterStartsTrial(t *testing.T) {
	svc, _ := newAuthFixture()
	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Email:           "shop@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
		FirstName:       "Asha",
		LastName:        "Mushi",
		BusinessName:    "Duka Lako",
		Phone:           "+255700000001",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("no token issued")
	}
	if user.SubscriptionStatus != model.SubscriptionTrial {
		t.Errorf("status = %s, want trial", user.SubscriptionStatus)
	}
	want := now.AddDate(0, 0, 30)
	if user.SubscriptionEnd == nil || !user.SubscriptionEnd.Equal(want) {
		t.Errorf("subscription_end = %v, want %v", user.SubscriptionEnd, want)
	}
	if user.Language != "en" {
		t.Errorf("language = %q, want en default", user.Language)
	}
	if user.PasswordHash == "secret1" {
		t.Error("password stored in the clear")
	}

	claims, err := util.ValidateJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Role != util.RoleTenant || claims.UserID != user.ID {
		t.Errorf("claims = %+v", claims)
	}
}

func TestRegisterRejectsMismatchAndDuplicate(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	_, _, err := svc.Register(ctx, RegisterInput{Email: "shop@example.com", Password: "a", ConfirmPassword: "b"})
	if !errors.Is(err, ErrPasswordMismatch) {
		t.Errorf("err = %v, want ErrPasswordMismatch", err)
	}

	in := RegisterInput{Email: "shop@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	if _, _, err := svc.Register(ctx, in); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestLoginTenant(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	in := RegisterInput{Email: "shop@example.com", Password: "secret1", ConfirmPassword: "secret1"}
	if _, _, err := svc.Register(ctx, in); err != nil {
		t.Fatalf("Register: %v", err)
	}

	user, token, err := svc.Login(ctx, "shop@example.com", "secret1", "")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if user == nil || token == "" {
		t.Fatal("expected user and token")
	}

	if _, _, err := svc.Login(ctx, "shop@example.com", "wrong", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad password err = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@example.com", "secret1", ""); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email err = %v, want ErrInvalidCredentials", err)
	}
}

func TestLoginWithSecretKeyIssuesAdminToken(t *testing.T) {
	svc, _ := newAuthFixture()
	ctx := context.Background()

	user, token, err := svc.Login(ctx, "admin@example.com", "admin-pass", "admin-key")
	if err != nil {
		t.Fatalf("admin Login: %v", err)
	}
	if user != nil {
		t.Error("admin login must not return a tenant user")
	}
	claims, err := util.ValidateJWT(token, "test-secret")
	if err != nil {
		t.Fatalf("ValidateJWT: %v", err)
	}
	if claims.Role != util.RoleAdmin {
		t.Errorf("role = %s, want admin", claims.Role)
	}

	if _, _, err := svc.Login(ctx, "admin@example.com", "wrong", "admin-key"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("bad admin password err = %v, want ErrInvalidCredentials", err)
	}
}

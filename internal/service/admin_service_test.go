package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

func newAdminFixture() (*adminService, *fakeUserRepo, *fakePaymentRepo, *fakeNotifier, *fakeActivityRepo) {
	users := newFakeUserRepo()
	payments := newFakePaymentRepo(users)
	notifier := &fakeNotifier{}
	activity := &fakeActivityRepo{}
	svc := NewAdminService(users, payments, newFakeMessageRepo(), &fakeReportRepo{},
		activity, notifier, 30, zerolog.Nop()).(*adminService)
	return svc, users, payments, notifier, activity
}

func TestSummaryDerivesExpiredCount(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture()
	ctx := context.Background()

	users.Create(ctx, &model.User{Email: "a@x.com", SubscriptionStatus: model.SubscriptionActive})
	users.Create(ctx, &model.User{Email: "b@x.com", SubscriptionStatus: model.SubscriptionTrial})
	users.Create(ctx, &model.User{Email: "c@x.com", SubscriptionStatus: model.SubscriptionTrial})
	users.Create(ctx, &model.User{Email: "d@x.com", SubscriptionStatus: model.SubscriptionSuspended})
	users.Create(ctx, &model.User{Email: "e@x.com", SubscriptionStatus: model.SubscriptionExpired})

	summary, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalUsers != 5 || summary.ActiveSubscriptions != 1 || summary.TrialUsers != 2 {
		t.Errorf("counts = %d/%d/%d", summary.TotalUsers, summary.ActiveSubscriptions, summary.TrialUsers)
	}
	// Everything that is neither active nor trial counts as expired.
	if summary.ExpiredUsers != 2 {
		t.Errorf("expired = %d, want 2", summary.ExpiredUsers)
	}
}

func TestActivateUserGrantsFullWindow(t *testing.T) {
	svc, users, _, notifier, activity := newAdminFixture()
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	user := &model.User{Email: "shop@example.com", Phone: "+255700000001", SubscriptionStatus: model.SubscriptionExpired}
	users.Create(ctx, user)

	activated, err := svc.ActivateUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ActivateUser: %v", err)
	}
	if activated.SubscriptionStatus != model.SubscriptionActive {
		t.Errorf("status = %s, want active", activated.SubscriptionStatus)
	}
	want := now.AddDate(0, 0, 30)
	if activated.SubscriptionEnd == nil || !activated.SubscriptionEnd.Equal(want) {
		t.Errorf("subscription_end = %v, want %v", activated.SubscriptionEnd, want)
	}
	if len(notifier.calls) != 1 {
		t.Errorf("expected activation SMS, got %d calls", len(notifier.calls))
	}
	if len(activity.entries) != 1 || activity.entries[0].Action != "User Activated" {
		t.Errorf("activity = %+v", activity.entries)
	}
}

func TestSuspendUserIsLabelOnly(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture()
	ctx := context.Background()

	end := time.Now().UTC().Add(15 * 24 * time.Hour)
	user := &model.User{Email: "shop@example.com", SubscriptionStatus: model.SubscriptionActive, SubscriptionEnd: &end}
	users.Create(ctx, user)

	suspended, err := svc.SuspendUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("SuspendUser: %v", err)
	}
	if suspended.SubscriptionStatus != model.SubscriptionSuspended {
		t.Errorf("status = %s, want suspended", suspended.SubscriptionStatus)
	}
	// The clock is untouched, so validity still follows the end date.
	if suspended.SubscriptionEnd == nil || !suspended.SubscriptionEnd.Equal(end) {
		t.Errorf("subscription_end = %v, want unchanged %v", suspended.SubscriptionEnd, end)
	}
	if !suspended.SubscriptionValid() {
		t.Error("suspension must not cut the remaining subscription time")
	}
}

func TestExportUsersCSV(t *testing.T) {
	svc, users, _, _, _ := newAdminFixture()
	ctx := context.Background()

	end := time.Now().UTC().Add(5 * 24 * time.Hour)
	users.Create(ctx, &model.User{
		Email:              "shop@example.com",
		BusinessName:       "Duka Lako",
		Phone:              "+255700000001",
		SubscriptionStatus: model.SubscriptionActive,
		SubscriptionEnd:    &end,
	})
	users.Create(ctx, &model.User{Email: "bare@example.com", SubscriptionStatus: model.SubscriptionTrial})

	out, err := svc.ExportUsersCSV(ctx)
	if err != nil {
		t.Fatalf("ExportUsersCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("lines = %d, want header + 2 rows:\n%s", len(lines), out)
	}
	if lines[0] != "Business,Email,Phone,Status,Days Remaining,Joined" {
		t.Errorf("header = %q", lines[0])
	}
	joined := strings.Join(lines[1:], "\n")
	if !strings.Contains(joined, "Duka Lako") {
		t.Errorf("missing business name:\n%s", joined)
	}
	if !strings.Contains(joined, "N/A") {
		t.Errorf("missing N/A placeholders for empty optionals:\n%s", joined)
	}
}

func TestExportPaymentsCSV(t *testing.T) {
	svc, users, payments, _, _ := newAdminFixture()
	ctx := context.Background()

	user := &model.User{Email: "shop@example.com", BusinessName: "Duka Lako"}
	users.Create(ctx, user)
	payments.Create(ctx, &model.Payment{
		UserID:         user.ID,
		Amount:         decimal.NewFromInt(15000),
		TransactionRef: "TX1",
		Status:         model.PaymentPending,
		UserEmail:      user.Email,
		UserBusiness:   user.BusinessName,
	})

	out, err := svc.ExportPaymentsCSV(ctx)
	if err != nil {
		t.Fatalf("ExportPaymentsCSV: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[0] != "Date,Business,Email,Reference,Phone,Amount,Status" {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want header + 1 row:\n%s", len(lines), out)
	}
	if !strings.Contains(lines[1], "15000.00") {
		t.Errorf("amount not fixed to two decimals:\n%s", lines[1])
	}
}

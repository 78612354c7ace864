package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

func TestGetSettingsReturnsDefaultsWhenUnset(t *testing.T) {
	svc := NewSettingsService(newFakeSettingsRepo(), zerolog.Nop())

	settings, err := svc.Get(context.Background(), 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if settings.VATRate != 18.0 {
		t.Errorf("vat_rate = %v, want 18.0", settings.VATRate)
	}
	if settings.PresumptiveTaxRate != 3.0 {
		t.Errorf("presumptive_tax_rate = %v, want 3.0", settings.PresumptiveTaxRate)
	}
	if settings.LowStockThreshold != 10 {
		t.Errorf("low_stock_threshold = %v, want 10", settings.LowStockThreshold)
	}
	if !settings.LowStockAlertEnabled {
		t.Error("low stock alerts should default on")
	}
	if settings.SMSRemindersEnabled {
		t.Error("SMS reminders should default off")
	}
}

func TestSaveThenGetRoundTrips(t *testing.T) {
	repo := newFakeSettingsRepo()
	svc := NewSettingsService(repo, zerolog.Nop())
	ctx := context.Background()

	saved, err := svc.Save(ctx, &model.Settings{UserID: 1, VATRate: 15, LowStockThreshold: 3})
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := svc.Get(ctx, 1)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.VATRate != saved.VATRate || got.LowStockThreshold != saved.LowStockThreshold {
		t.Errorf("got %+v, want %+v", got, saved)
	}
}

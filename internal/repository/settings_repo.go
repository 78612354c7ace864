package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID int64) (*model.Settings, error)
	Upsert(ctx context.Context, s *model.Settings) error
}

type settingsRepo struct {
	db *sql.DB
}

func NewSettingsRepo(db *sql.DB) SettingsRepository {
	return &settingsRepo{db: db}
}

func (r *settingsRepo) GetByUserID(ctx context.Context, userID int64) (*model.Settings, error) {
	query := `SELECT id, user_id, vat_rate, presumptive_tax_rate, low_stock_alert_enabled,
                low_stock_threshold, sms_reminders_enabled, sms_phone_number
              FROM user_settings WHERE user_id=$1`
	var s model.Settings
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&s.ID, &s.UserID, &s.VATRate, &s.PresumptiveTaxRate, &s.LowStockAlertEnabled,
		&s.LowStockThreshold, &s.SMSRemindersEnabled, &s.SMSPhoneNumber)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("fetching settings for user %d: %w", userID, err)
	}
	return &s, nil
}

func (r *settingsRepo) Upsert(ctx context.Context, s *model.Settings) error {
	query := `INSERT INTO user_settings (user_id, vat_rate, presumptive_tax_rate,
                low_stock_alert_enabled, low_stock_threshold, sms_reminders_enabled, sms_phone_number)
              VALUES ($1, $2, $3, $4, $5, $6, $7)
              ON CONFLICT (user_id) DO UPDATE
              SET vat_rate = EXCLUDED.vat_rate,
                  presumptive_tax_rate = EXCLUDED.presumptive_tax_rate,
                  low_stock_alert_enabled = EXCLUDED.low_stock_alert_enabled,
                  low_stock_threshold = EXCLUDED.low_stock_threshold,
                  sms_reminders_enabled = EXCLUDED.sms_reminders_enabled,
                  sms_phone_number = EXCLUDED.sms_phone_number
              RETURNING id`
	err := r.db.QueryRowContext(ctx, query,
		s.UserID, s.VATRate, s.PresumptiveTaxRate, s.LowStockAlertEnabled,
		s.LowStockThreshold, s.SMSRemindersEnabled, s.SMSPhoneNumber).Scan(&s.ID)
	if err != nil {
		return fmt.Errorf("upserting settings for user %d: %w", s.UserID, err)
	}
	return nil
}

package model

// Settings holds per-tenant tax rates and alert preferences. A row is created
// lazily; DefaultSettings is what a tenant sees before saving anything.
type Settings struct {
	ID                   int64   `db:"id" json:"id"`
	UserID               int64   `db:"user_id" json:"user_id"`
	VATRate              float64 `db:"vat_rate" json:"vat_rate"`
	PresumptiveTaxRate   float64 `db:"presumptive_tax_rate" json:"presumptive_tax_rate"`
	LowStockAlertEnabled bool    `db:"low_stock_alert_enabled" json:"low_stock_alert_enabled"`
	LowStockThreshold    int     `db:"low_stock_threshold" json:"low_stock_threshold"`
	SMSRemindersEnabled  bool    `db:"sms_reminders_enabled" json:"sms_reminders_enabled"`
	SMSPhoneNumber       string  `db:"sms_phone_number" json:"sms_phone_number"`
}

func DefaultSettings(userID int64) *Settings {
	return &Settings{
		UserID:               userID,
		VATRate:              18.0,
		PresumptiveTaxRate:   3.0,
		LowStockAlertEnabled: true,
		LowStockThreshold:    10,
	}
}

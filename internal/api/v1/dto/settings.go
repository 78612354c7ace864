package dto

// SettingsDTO is used both for incoming updates and API responses
type SettingsDTO struct {
	VATRate              float64 `json:"vat_rate" validate:"gte=0,lte=100"`
	PresumptiveTaxRate   float64 `json:"presumptive_tax_rate" validate:"gte=0,lte=100"`
	LowStockAlertEnabled bool    `json:"low_stock_alert_enabled"`
	LowStockThreshold    int     `json:"low_stock_threshold" validate:"gte=0"`
	SMSRemindersEnabled  bool    `json:"sms_reminders_enabled"`
	SMSPhoneNumber       string  `json:"sms_phone_number,omitempty"`
}

package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus tracks a claimed mobile-money transfer through operator review.
type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentVerified PaymentStatus = "verified"
	PaymentRejected PaymentStatus = "rejected"
)

// Payment is a tenant's claim of a manual mobile-money transfer. The amount is
// fixed by policy at submission, never taken from tenant input. Only pending
// payments may be verified or rejected; re-review is an error, not a silent
// re-grant of subscription time.
type Payment struct {
	ID             int64           `db:"id" json:"id"`
	UserID         int64           `db:"user_id" json:"user_id"`
	Amount         decimal.Decimal `db:"amount" json:"amount"`
	TransactionRef string          `db:"transaction_ref" json:"transaction_ref"`
	PayerPhone     string          `db:"payer_phone" json:"payer_phone"`
	Status         PaymentStatus   `db:"status" json:"status"`
	CreatedAt      time.Time       `db:"created_at" json:"created_at"`
	VerifiedAt     *time.Time      `db:"verified_at" json:"verified_at"`

	// Joined tenant fields for the operator views; empty outside those.
	UserEmail    string `db:"user_email" json:"user_email,omitempty"`
	UserBusiness string `db:"user_business" json:"user_business,omitempty"`
	UserPhone    string `db:"user_phone" json:"user_phone,omitempty"`
}

package dto

import "time"

// PaymentSubmitDTO is used for incoming payment claims. The amount is set by
// policy server-side; the client only names the transfer.
type PaymentSubmitDTO struct {
	TransactionRef string `json:"transaction_ref" validate:"required"`
	PayerPhone     string `json:"payer_phone" validate:"required"`
}

// PaymentResponseDTO is returned in API responses for payments
type PaymentResponseDTO struct {
	ID             int64      `json:"id"`
	UserID         int64      `json:"user_id"`
	Amount         float64    `json:"amount"`
	TransactionRef string     `json:"transaction_ref"`
	PayerPhone     string     `json:"payer_phone"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	VerifiedAt     *time.Time `json:"verified_at,omitempty"`

	UserEmail    string `json:"user_email,omitempty"`
	UserBusiness string `json:"user_business,omitempty"`
	UserPhone    string `json:"user_phone,omitempty"`
}

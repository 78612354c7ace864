package dto

import "time"

// ExpenseCreateDTO is used for incoming expense creation requests
type ExpenseCreateDTO struct {
	Description string  `json:"description" validate:"required"`
	Category    string  `json:"category,omitempty"`
	Amount      float64 `json:"amount" validate:"required,gt=0"`
}

// ExpenseResponseDTO is returned in API responses for expenses
type ExpenseResponseDTO struct {
	ID          int64     `json:"id"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Amount      float64   `json:"amount"`
	CreatedAt   time.Time `json:"created_at"`
}

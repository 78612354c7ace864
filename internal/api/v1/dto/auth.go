package dto

import "time"

// RegisterDTO is used for incoming registration requests
type RegisterDTO struct {
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
	FirstName       string `json:"first_name" validate:"required"`
	LastName        string `json:"last_name" validate:"required"`
	BusinessName    string `json:"business_name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Language        string `json:"language,omitempty"`
}

// LoginDTO is used for incoming login requests
type LoginDTO struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required"`
	SecretKey string `json:"secret_key,omitempty"`
}

// UserResponseDTO is returned in API responses for users
type UserResponseDTO struct {
	ID                 int64      `json:"id"`
	Email              string     `json:"email"`
	FirstName          string     `json:"first_name"`
	LastName           string     `json:"last_name"`
	BusinessName       string     `json:"business_name"`
	Phone              string     `json:"phone"`
	Language           string     `json:"language"`
	SubscriptionStatus string     `json:"subscription_status"`
	SubscriptionEnd    *time.Time `json:"subscription_end"`
	DaysRemaining      int        `json:"days_remaining"`
	SubscriptionValid  bool       `json:"subscription_valid"`
	CreatedAt          time.Time  `json:"created_at"`
}

// AuthResponseDTO carries the session token. User is nil for operator logins.
type AuthResponseDTO struct {
	Token string           `json:"token"`
	Role  string           `json:"role"`
	User  *UserResponseDTO `json:"user,omitempty"`
}

package dto

import "time"

// SupportMessageDTO is used for incoming tenant support requests
type SupportMessageDTO struct {
	Category string `json:"category,omitempty"`
	Subject  string `json:"subject" validate:"required"`
	Content  string `json:"content" validate:"required"`
}

// AdminMessageDTO is used for operator messages to a single tenant
type AdminMessageDTO struct {
	UserID  int64  `json:"user_id" validate:"required"`
	Subject string `json:"subject,omitempty"`
	Content string `json:"content" validate:"required"`
}

// AnnouncementDTO is used for operator broadcasts
type AnnouncementDTO struct {
	Subject string `json:"subject" validate:"required"`
	Content string `json:"content" validate:"required"`
	SendSMS bool   `json:"send_sms"`
}

// MessageResponseDTO is returned in API responses for messages
type MessageResponseDTO struct {
	ID             int64     `json:"id"`
	UserID         *int64    `json:"user_id,omitempty"`
	Sender         string    `json:"sender"`
	Subject        string    `json:"subject"`
	Content        string    `json:"content"`
	IsAnnouncement bool      `json:"is_announcement"`
	IsRead         bool      `json:"is_read"`
	CreatedAt      time.Time `json:"created_at"`

	UserEmail    string `json:"user_email,omitempty"`
	UserBusiness string `json:"user_business,omitempty"`
}

// NotificationsResponseDTO groups a tenant's mailbox view
type NotificationsResponseDTO struct {
	Messages      []MessageResponseDTO `json:"messages"`
	Announcements []MessageResponseDTO `json:"announcements"`
}

// UnreadCountResponseDTO is the badge count payload
type UnreadCountResponseDTO struct {
	Count         int `json:"count"`
	Announcements int `json:"announcements"`
}

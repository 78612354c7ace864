package model

import "time"

// MessageSender identifies which side of the mailbox wrote a message.
type MessageSender string

const (
	SenderUser  MessageSender = "user"
	SenderAdmin MessageSender = "admin"
)

// Message is either a directed tenant<->operator note (UserID set) or a
// broadcast announcement (IsAnnouncement true, UserID nil). The read flag is a
// single column on the row, so marking an announcement read is shared across
// all tenants viewing it.
type Message struct {
	ID             int64         `db:"id" json:"id"`
	UserID         *int64        `db:"user_id" json:"user_id"`
	Sender         MessageSender `db:"sender" json:"sender"`
	Subject        string        `db:"subject" json:"subject"`
	Content        string        `db:"content" json:"content"`
	IsAnnouncement bool          `db:"is_announcement" json:"is_announcement"`
	IsRead         bool          `db:"is_read" json:"is_read"`
	CreatedAt      time.Time     `db:"created_at" json:"created_at"`

	// Joined tenant fields for the operator inbox; empty outside it.
	UserEmail    string `db:"user_email" json:"user_email,omitempty"`
	UserBusiness string `db:"user_business" json:"user_business,omitempty"`
	UserPhone    string `db:"user_phone" json:"user_phone,omitempty"`
}

package model

import "time"

// ActivityLog is an append-only operator audit row; the system only writes it.
type ActivityLog struct {
	ID          int64     `db:"id" json:"id"`
	Action      string    `db:"action" json:"action"`
	Details     string    `db:"details" json:"details"`
	AdminAction bool      `db:"admin_action" json:"admin_action"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

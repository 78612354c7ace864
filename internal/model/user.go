package model

import "time"

// SubscriptionStatus labels a tenant's subscription for display and audit.
// Access decisions never read it directly; they go through SubscriptionValid,
// because the label is only updated on explicit transitions and can lag the
// time-derived truth (an elapsed trial still reads "trial").
type SubscriptionStatus string

const (
	SubscriptionTrial     SubscriptionStatus = "trial"
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionSuspended SubscriptionStatus = "suspended"
	SubscriptionExpired   SubscriptionStatus = "expired"
)

// User is one registered business (tenant), the unit of data isolation.
type User struct {
	ID                 int64              `db:"id" json:"id"`
	Email              string             `db:"email" json:"email"`
	PasswordHash       string             `db:"password_hash" json:"-"`
	FirstName          string             `db:"first_name" json:"first_name"`
	LastName           string             `db:"last_name" json:"last_name"`
	BusinessName       string             `db:"business_name" json:"business_name"`
	Phone              string             `db:"phone" json:"phone"`
	Language           string             `db:"language" json:"language"`
	SubscriptionStatus SubscriptionStatus `db:"subscription_status" json:"subscription_status"`
	SubscriptionEnd    *time.Time         `db:"subscription_end" json:"subscription_end"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
}

// SubscriptionValid reports whether the tenant may use the product right now.
func (u *User) SubscriptionValid() bool {
	return u.SubscriptionValidAt(time.Now().UTC())
}

// SubscriptionValidAt is SubscriptionValid against an explicit clock.
func (u *User) SubscriptionValidAt(now time.Time) bool {
	return u.SubscriptionEnd != nil && u.SubscriptionEnd.After(now)
}

// DaysRemaining returns the whole days left on the subscription, floored at zero.
func (u *User) DaysRemaining() int {
	return u.DaysRemainingAt(time.Now().UTC())
}

// DaysRemainingAt is DaysRemaining against an explicit clock.
func (u *User) DaysRemainingAt(now time.Time) int {
	if u.SubscriptionEnd == nil {
		return 0
	}
	days := int(u.SubscriptionEnd.Sub(now).Hours() / 24)
	if days < 0 {
		return 0
	}
	return days
}

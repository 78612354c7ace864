package dto

import "time"

// AdminSummaryResponseDTO is the operator dashboard rollup
type AdminSummaryResponseDTO struct {
	TotalUsers          int               `json:"total_users"`
	ActiveSubscriptions int               `json:"active_subscriptions"`
	TrialUsers          int               `json:"trial_users"`
	ExpiredUsers        int               `json:"expired_users"`
	PendingPayments     int               `json:"pending_payments"`
	TodaySales          float64           `json:"today_sales"`
	TodayProfit         float64           `json:"today_profit"`
	TotalRevenue        float64           `json:"total_revenue"`
	RecentUsers         []UserResponseDTO `json:"recent_users"`
	UnreadMessages      int               `json:"unread_messages"`
	GeneratedAt         time.Time         `json:"generated_at"`
}

// ActivityLogResponseDTO is one operator audit row
type ActivityLogResponseDTO struct {
	ID          int64     `json:"id"`
	Action      string    `json:"action"`
	Details     string    `json:"details"`
	AdminAction bool      `json:"admin_action"`
	CreatedAt   time.Time `json:"created_at"`
}

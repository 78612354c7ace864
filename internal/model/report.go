package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DailySales is one grouped row of the weekly/monthly reports: all sales a
// tenant recorded on one calendar date.
type DailySales struct {
	Date   string          `db:"date" json:"date"`
	Sales  decimal.Decimal `db:"sales" json:"sales"`
	Profit decimal.Decimal `db:"profit" json:"profit"`
	Count  int             `db:"count" json:"count"`
}

// CategoryAmount is one row of the expense breakdown.
type CategoryAmount struct {
	Category string          `db:"category" json:"category"`
	Amount   decimal.Decimal `db:"amount" json:"amount"`
}

// TopProduct ranks a product by quantity sold.
type TopProduct struct {
	Name     string `db:"name" json:"name"`
	Quantity int    `db:"quantity" json:"quantity"`
}

// SalesTotals is a period sum of revenue and profit.
type SalesTotals struct {
	Amount decimal.Decimal
	Profit decimal.Decimal
}

// DashboardSummary is the tenant landing view.
type DashboardSummary struct {
	TodaySales      decimal.Decimal
	TodayProfit     decimal.Decimal
	MonthSales      decimal.Decimal
	MonthProfit     decimal.Decimal
	MonthlyExpenses decimal.Decimal
	ProductsCount   int
	LowStock        []Product
	EstimatedVAT    decimal.Decimal
	DaysRemaining   int
	Status          SubscriptionStatus
}

// TaxEstimate is the tenant's rough liability for the current month.
type TaxEstimate struct {
	MonthSales         decimal.Decimal
	VATRate            float64
	EstimatedVAT       decimal.Decimal
	PresumptiveTaxRate float64
	EstimatedTax       decimal.Decimal
}

// AdminSummary is the operator dashboard rollup across all tenants.
type AdminSummary struct {
	TotalUsers          int
	ActiveSubscriptions int
	TrialUsers          int
	ExpiredUsers        int
	PendingPayments     int
	TodaySales          decimal.Decimal
	TodayProfit         decimal.Decimal
	TotalRevenue        decimal.Decimal
	RecentUsers         []User
	UnreadMessages      int
	GeneratedAt         time.Time
}

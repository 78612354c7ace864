package dto

// DashboardResponseDTO is the tenant landing view
type DashboardResponseDTO struct {
	TodaySales      float64              `json:"today_sales"`
	TodayProfit     float64              `json:"today_profit"`
	MonthSales      float64              `json:"month_sales"`
	MonthProfit     float64              `json:"month_profit"`
	MonthlyExpenses float64              `json:"monthly_expenses"`
	ProductsCount   int                  `json:"products_count"`
	LowStock        []ProductResponseDTO `json:"low_stock"`
	EstimatedVAT    float64              `json:"estimated_vat"`
	DaysRemaining   int                  `json:"days_remaining"`
	Status          string               `json:"status"`
}

// DailySalesDTO is one grouped day of the weekly/monthly reports
type DailySalesDTO struct {
	Date   string  `json:"date"`
	Sales  float64 `json:"sales"`
	Profit float64 `json:"profit"`
	Count  int     `json:"count"`
}

// CategoryAmountDTO is one row of the expense breakdown
type CategoryAmountDTO struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

// TopProductDTO ranks a product by quantity sold
type TopProductDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// TaxEstimateResponseDTO is the tenant's rough liability for the current month
type TaxEstimateResponseDTO struct {
	MonthSales         float64 `json:"month_sales"`
	VATRate            float64 `json:"vat_rate"`
	EstimatedVAT       float64 `json:"estimated_vat"`
	PresumptiveTaxRate float64 `json:"presumptive_tax_rate"`
	EstimatedTax       float64 `json:"estimated_tax"`
}

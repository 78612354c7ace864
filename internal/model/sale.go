package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale is an immutable transaction record. Totals are computed from the line
// prices supplied at sale time and persisted redundantly, so later product
// price edits never alter history. Items live in normalized sale_items rows;
// the Items slice is assembled from them at read time.
type Sale struct {
	ID            int64           `db:"id" json:"id"`
	UserID        int64           `db:"user_id" json:"user_id"`
	TotalAmount   decimal.Decimal `db:"total_amount" json:"total_amount"`
	TotalCost     decimal.Decimal `db:"total_cost" json:"total_cost"`
	Profit        decimal.Decimal `db:"profit" json:"profit"`
	PaymentMethod string          `db:"payment_method" json:"payment_method"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`

	Items []SaleItem `json:"items"`
}

// SaleItem is one product/quantity/price line within a sale.
type SaleItem struct {
	ID           int64           `db:"id" json:"id"`
	SaleID       int64           `db:"sale_id" json:"sale_id"`
	ProductID    int64           `db:"product_id" json:"product_id"`
	ProductName  string          `db:"product_name" json:"product_name"`
	Quantity     int             `db:"quantity" json:"quantity"`
	BuyingPrice  decimal.Decimal `db:"buying_price" json:"buying_price"`
	SellingPrice decimal.Decimal `db:"selling_price" json:"selling_price"`
}

// LineTotal is the revenue contribution of this line.
func (i SaleItem) LineTotal() decimal.Decimal {
	return i.SellingPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// LineCost is the cost contribution of this line.
func (i SaleItem) LineCost() decimal.Decimal {
	return i.BuyingPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

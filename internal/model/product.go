package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is one inventory item. Stock is mutated only by the sale workflow
// (relative decrement) and by direct edits (absolute set). It may go negative:
// overselling is visible, not blocked.
type Product struct {
	ID           int64           `db:"id" json:"id"`
	UserID       int64           `db:"user_id" json:"user_id"`
	Name         string          `db:"name" json:"name"`
	ModelNumber  string          `db:"model_number" json:"model_number"`
	Barcode      string          `db:"barcode" json:"barcode"`
	BuyingPrice  decimal.Decimal `db:"buying_price" json:"buying_price"`
	SellingPrice decimal.Decimal `db:"selling_price" json:"selling_price"`
	Stock        int             `db:"stock" json:"stock"`
	Category     string          `db:"category" json:"category"`
	PhotoPath    string          `db:"photo_path" json:"photo_path"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
}

package dto

import "time"

// SaleItemDTO is one line of an incoming sale
type SaleItemDTO struct {
	ProductID    int64   `json:"product_id" validate:"required"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	BuyingPrice  float64 `json:"buying_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
}

// SaleCreateDTO is used for incoming sale creation requests
type SaleCreateDTO struct {
	Items         []SaleItemDTO `json:"items" validate:"required,min=1,dive"`
	PaymentMethod string        `json:"payment_method,omitempty"`
}

// SaleItemResponseDTO is one recorded line of a sale
type SaleItemResponseDTO struct {
	ProductID    int64   `json:"product_id"`
	ProductName  string  `json:"product_name"`
	Quantity     int     `json:"quantity"`
	BuyingPrice  float64 `json:"buying_price"`
	SellingPrice float64 `json:"selling_price"`
	LineTotal    float64 `json:"line_total"`
}

// SaleResponseDTO is returned in API responses for sales
type SaleResponseDTO struct {
	ID            int64                 `json:"id"`
	TotalAmount   float64               `json:"total_amount"`
	Profit        float64               `json:"profit"`
	PaymentMethod string                `json:"payment_method"`
	Items         []SaleItemResponseDTO `json:"items"`
	CreatedAt     time.Time             `json:"created_at"`
}

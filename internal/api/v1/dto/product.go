package dto

import "time"

// ProductCreateDTO is used for incoming product creation requests
type ProductCreateDTO struct {
	Name         string  `json:"name" validate:"required"`
	ModelNumber  string  `json:"model_number,omitempty"`
	Category     string  `json:"category,omitempty"`
	BuyingPrice  float64 `json:"buying_price" validate:"gte=0"`
	SellingPrice float64 `json:"selling_price" validate:"gte=0"`
	Stock        int     `json:"stock"`
	Barcode      string  `json:"barcode,omitempty"`
}

// ProductUpdateDTO is used for incoming product update requests
type ProductUpdateDTO struct {
	Name         *string  `json:"name,omitempty"`
	ModelNumber  *string  `json:"model_number,omitempty"`
	Category     *string  `json:"category,omitempty"`
	BuyingPrice  *float64 `json:"buying_price,omitempty" validate:"omitempty,gte=0"`
	SellingPrice *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	Stock        *int     `json:"stock,omitempty"`
	Barcode      *string  `json:"barcode,omitempty"`
}

// ProductResponseDTO is returned in API responses for products
type ProductResponseDTO struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	ModelNumber  string    `json:"model_number,omitempty"`
	Category     string    `json:"category"`
	BuyingPrice  float64   `json:"buying_price"`
	SellingPrice float64   `json:"selling_price"`
	Stock        int       `json:"stock"`
	Barcode      string    `json:"barcode,omitempty"`
	PhotoPath    string    `json:"photo_path,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// BarcodeLookupResponseDTO is the normalized result of a barcode lookup
type BarcodeLookupResponseDTO struct {
	Name     string `json:"name"`
	Category string `json:"category,omitempty"`
	Brand    string `json:"brand,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
}

// PhotoUploadResponseDTO carries a presigned upload URL for a product photo
type PhotoUploadResponseDTO struct {
	UploadURL string `json:"upload_url"`
	PhotoPath string `json:"photo_path"`
}

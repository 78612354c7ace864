package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// ProductHandler handles inventory endpoints including barcode lookup and
// photo uploads
type ProductHandler struct {
	productService service.ProductService
	barcodeService service.BarcodeService
	validate       *validator.Validate
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService service.ProductService, barcodeService service.BarcodeService, validate *validator.Validate) *ProductHandler {
	return &ProductHandler{productService: productService, barcodeService: barcodeService, validate: validate}
}

// RegisterRoutes mounts product routes
func (h *ProductHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/products", authMw(http.HandlerFunc(h.handleCollection)))
	mux.Handle("/products/", authMw(http.HandlerFunc(h.handleItem)))
}

func (h *ProductHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listProducts(w, r)
	case http.MethodPost:
		h.createProduct(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProductHandler) handleItem(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/products/")

	if code, ok := strings.CutPrefix(rest, "barcode/"); ok {
		if r.Method != http.MethodGet {
			http.NotFound(w, r)
			return
		}
		h.lookupBarcode(w, r, code)
		return
	}

	if id, ok := strings.CutSuffix(rest, "/photo-url"); ok {
		if r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		h.photoUploadURL(w, r, id)
		return
	}

	switch r.Method {
	case http.MethodPut:
		h.updateProduct(w, r, rest)
	case http.MethodDelete:
		h.deleteProduct(w, r, rest)
	default:
		http.NotFound(w, r)
	}
}

func (h *ProductHandler) listProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	products, err := h.productService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list products", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.ProductResponseDTO, 0, len(products))
	for i := range products {
		resp = append(resp, toProductDTO(&products[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ProductHandler) createProduct(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.ProductCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	product := &model.Product{
		UserID:       userID,
		Name:         req.Name,
		ModelNumber:  req.ModelNumber,
		Category:     req.Category,
		BuyingPrice:  decimal.NewFromFloat(req.BuyingPrice),
		SellingPrice: decimal.NewFromFloat(req.SellingPrice),
		Stock:        req.Stock,
		Barcode:      req.Barcode,
	}
	created, err := h.productService.Create(r.Context(), product)
	if err != nil {
		http.Error(w, "Failed to create product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toProductDTO(created))
}

func (h *ProductHandler) updateProduct(w http.ResponseWriter, r *http.Request, rawID string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}
	var req dto.ProductUpdateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	product, err := h.productService.Get(r.Context(), id, userID)
	if errors.Is(err, service.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load product", http.StatusInternalServerError)
		return
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.ModelNumber != nil {
		product.ModelNumber = *req.ModelNumber
	}
	if req.Category != nil {
		product.Category = *req.Category
	}
	if req.BuyingPrice != nil {
		product.BuyingPrice = decimal.NewFromFloat(*req.BuyingPrice)
	}
	if req.SellingPrice != nil {
		product.SellingPrice = decimal.NewFromFloat(*req.SellingPrice)
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if req.Barcode != nil {
		product.Barcode = *req.Barcode
	}

	err = h.productService.Update(r.Context(), product)
	if errors.Is(err, service.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update product", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toProductDTO(product))
}

func (h *ProductHandler) deleteProduct(w http.ResponseWriter, r *http.Request, rawID string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	err = h.productService.Delete(r.Context(), id, userID)
	if errors.Is(err, service.ErrProductNotFound) {
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete product", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ProductHandler) lookupBarcode(w http.ResponseWriter, r *http.Request, code string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	result, err := h.barcodeService.Lookup(r.Context(), userID, code)
	switch {
	case errors.Is(err, service.ErrInvalidBarcode):
		http.Error(w, "Barcode must be 8 to 14 digits", http.StatusUnprocessableEntity)
		return
	case errors.Is(err, service.ErrRateLimited):
		http.Error(w, "Too many barcode lookups, try again later", http.StatusTooManyRequests)
		return
	case errors.Is(err, service.ErrBarcodeNotFound):
		http.Error(w, "Product not found for barcode", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrLookupTimeout):
		http.Error(w, "Barcode lookup timed out", http.StatusGatewayTimeout)
		return
	case err != nil:
		http.Error(w, "Barcode lookup failed", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.BarcodeLookupResponseDTO{
		Name:     result.Name,
		Category: result.Category,
		Brand:    result.Brand,
		ImageURL: result.ImageURL,
	})
}

func (h *ProductHandler) photoUploadURL(w http.ResponseWriter, r *http.Request, rawID string) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid product id", http.StatusBadRequest)
		return
	}

	url, err := h.productService.PhotoUploadURL(r.Context(), id, userID)
	switch {
	case errors.Is(err, service.ErrPhotosDisabled):
		http.Error(w, "Photo storage is not configured", http.StatusNotImplemented)
		return
	case errors.Is(err, service.ErrProductNotFound):
		http.Error(w, "Product not found", http.StatusNotFound)
		return
	case err != nil:
		http.Error(w, "Failed to create upload URL", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, dto.PhotoUploadResponseDTO{
		UploadURL: url,
		PhotoPath: "products/" + strconv.FormatInt(userID, 10) + "/" + rawID + "/photo.jpg",
	})
}

package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// SaleHandler handles sale recording and history endpoints
type SaleHandler struct {
	saleService service.SaleService
	validate    *validator.Validate
}

// NewSaleHandler creates a new SaleHandler
func NewSaleHandler(saleService service.SaleService, validate *validator.Validate) *SaleHandler {
	return &SaleHandler{saleService: saleService, validate: validate}
}

// RegisterRoutes mounts sale routes
func (h *SaleHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/sales", authMw(http.HandlerFunc(h.handleSales)))
}

func (h *SaleHandler) handleSales(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listSales(w, r)
	case http.MethodPost:
		h.createSale(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SaleHandler) createSale(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.SaleCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	lines := make([]service.SaleLine, 0, len(req.Items))
	for _, item := range req.Items {
		lines = append(lines, service.SaleLine{
			ProductID:    item.ProductID,
			Quantity:     item.Quantity,
			BuyingPrice:  decimal.NewFromFloat(item.BuyingPrice),
			SellingPrice: decimal.NewFromFloat(item.SellingPrice),
		})
	}

	sale, err := h.saleService.Create(r.Context(), userID, lines, req.PaymentMethod)
	switch {
	case errors.Is(err, service.ErrNoSaleItems), errors.Is(err, service.ErrBadItemQuantity):
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		http.Error(w, "Failed to record sale", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toSaleDTO(sale))
}

func (h *SaleHandler) listSales(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	sales, err := h.saleService.ListRecent(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list sales", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.SaleResponseDTO, 0, len(sales))
	for i := range sales {
		resp = append(resp, toSaleDTO(&sales[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

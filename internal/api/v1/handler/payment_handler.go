package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// PaymentHandler handles tenant payment submission and history
type PaymentHandler struct {
	paymentService service.PaymentService
	validate       *validator.Validate
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService service.PaymentService, validate *validator.Validate) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService, validate: validate}
}

// RegisterRoutes mounts payment routes
func (h *PaymentHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/payments", authMw(http.HandlerFunc(h.handlePayments)))
}

func (h *PaymentHandler) handlePayments(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listPayments(w, r)
	case http.MethodPost:
		h.submitPayment(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *PaymentHandler) submitPayment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.PaymentSubmitDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	payment, err := h.paymentService.Submit(r.Context(), userID, req.TransactionRef, req.PayerPhone)
	if err != nil {
		http.Error(w, "Failed to submit payment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toPaymentDTO(payment))
}

func (h *PaymentHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	payments, err := h.paymentService.ListOwn(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list payments", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.PaymentResponseDTO, 0, len(payments))
	for i := range payments {
		resp = append(resp, toPaymentDTO(&payments[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

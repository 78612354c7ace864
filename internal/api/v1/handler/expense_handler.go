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

// ExpenseHandler handles expense endpoints
type ExpenseHandler struct {
	expenseService service.ExpenseService
	validate       *validator.Validate
}

// NewExpenseHandler creates a new ExpenseHandler
func NewExpenseHandler(expenseService service.ExpenseService, validate *validator.Validate) *ExpenseHandler {
	return &ExpenseHandler{expenseService: expenseService, validate: validate}
}

// RegisterRoutes mounts expense routes
func (h *ExpenseHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/expenses", authMw(http.HandlerFunc(h.handleCollection)))
	mux.Handle("/expenses/", authMw(http.HandlerFunc(h.deleteExpense)))
}

func (h *ExpenseHandler) handleCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.listExpenses(w, r)
	case http.MethodPost:
		h.createExpense(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ExpenseHandler) createExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.ExpenseCreateDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	expense := &model.Expense{
		UserID:      userID,
		Description: req.Description,
		Category:    req.Category,
		Amount:      decimal.NewFromFloat(req.Amount),
	}
	created, err := h.expenseService.Create(r.Context(), expense)
	if err != nil {
		http.Error(w, "Failed to create expense", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toExpenseDTO(created))
}

func (h *ExpenseHandler) listExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	expenses, err := h.expenseService.List(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list expenses", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.ExpenseResponseDTO, 0, len(expenses))
	for i := range expenses {
		resp = append(resp, toExpenseDTO(&expenses[i]))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ExpenseHandler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	rawID := strings.TrimPrefix(r.URL.Path, "/expenses/")
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid expense id", http.StatusBadRequest)
		return
	}

	err = h.expenseService.Delete(r.Context(), id, userID)
	if errors.Is(err, service.ErrExpenseNotFound) {
		http.Error(w, "Expense not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to delete expense", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func toExpenseDTO(e *model.Expense) dto.ExpenseResponseDTO {
	return dto.ExpenseResponseDTO{
		ID:          e.ID,
		Description: e.Description,
		Category:    e.Category,
		Amount:      e.Amount.InexactFloat64(),
		CreatedAt:   e.CreatedAt,
	}
}

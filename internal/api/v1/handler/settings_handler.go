package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// SettingsHandler handles per-tenant settings endpoints
type SettingsHandler struct {
	settingsService service.SettingsService
	validate        *validator.Validate
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settingsService service.SettingsService, validate *validator.Validate) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService, validate: validate}
}

// RegisterRoutes mounts settings routes
func (h *SettingsHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/settings", authMw(http.HandlerFunc(h.handleSettings)))
}

func (h *SettingsHandler) handleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.getSettings(w, r)
	case http.MethodPut:
		h.saveSettings(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *SettingsHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	settings, err := h.settingsService.Get(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to load settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(settings))
}

func (h *SettingsHandler) saveSettings(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.SettingsDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	settings := &model.Settings{
		UserID:               userID,
		VATRate:              req.VATRate,
		PresumptiveTaxRate:   req.PresumptiveTaxRate,
		LowStockAlertEnabled: req.LowStockAlertEnabled,
		LowStockThreshold:    req.LowStockThreshold,
		SMSRemindersEnabled:  req.SMSRemindersEnabled,
		SMSPhoneNumber:       req.SMSPhoneNumber,
	}
	saved, err := h.settingsService.Save(r.Context(), settings)
	if err != nil {
		http.Error(w, "Failed to save settings", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toSettingsDTO(saved))
}

func toSettingsDTO(s *model.Settings) dto.SettingsDTO {
	return dto.SettingsDTO{
		VATRate:              s.VATRate,
		PresumptiveTaxRate:   s.PresumptiveTaxRate,
		LowStockAlertEnabled: s.LowStockAlertEnabled,
		LowStockThreshold:    s.LowStockThreshold,
		SMSRemindersEnabled:  s.SMSRemindersEnabled,
		SMSPhoneNumber:       s.SMSPhoneNumber,
	}
}

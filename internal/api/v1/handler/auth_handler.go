package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/service"
	"github.com/wysanalytics/takwimu-plus/internal/util"
)

// AuthHandler handles registration, login and profile endpoints
type AuthHandler struct {
	authService service.AuthService
	validate    *validator.Validate
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService service.AuthService, validate *validator.Validate) *AuthHandler {
	return &AuthHandler{authService: authService, validate: validate}
}

// RegisterRoutes mounts auth routes
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.HandleFunc("/auth/register", h.register)
	mux.HandleFunc("/auth/login", h.login)
	mux.Handle("/auth/me", authMw(http.HandlerFunc(h.me)))
}

func (h *AuthHandler) register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.RegisterDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		BusinessName:    req.BusinessName,
		Phone:           req.Phone,
		Language:        req.Language,
	})
	switch {
	case errors.Is(err, service.ErrPasswordMismatch):
		http.Error(w, "Passwords do not match", http.StatusBadRequest)
		return
	case errors.Is(err, service.ErrEmailTaken):
		http.Error(w, "Email already registered", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "Failed to register", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, dto.AuthResponseDTO{
		Token: token,
		Role:  util.RoleTenant,
		User:  toUserDTO(user, time.Now().UTC()),
	})
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.LoginDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	user, token, err := h.authService.Login(r.Context(), req.Email, req.Password, req.SecretKey)
	if errors.Is(err, service.ErrInvalidCredentials) {
		http.Error(w, "Invalid email or password", http.StatusUnauthorized)
		return
	}
	if err != nil {
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	role := util.RoleTenant
	if user == nil {
		role = util.RoleAdmin
	}
	writeJSON(w, http.StatusOK, dto.AuthResponseDTO{
		Token: token,
		Role:  role,
		User:  toUserDTO(user, time.Now().UTC()),
	})
}

func (h *AuthHandler) me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}

	user, err := h.authService.Me(r.Context(), userID)
	if errors.Is(err, service.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to load profile", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user, time.Now().UTC()))
}

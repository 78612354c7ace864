package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// MessageHandler handles the tenant side of the support mailbox
type MessageHandler struct {
	messageService service.MessageService
	validate       *validator.Validate
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService service.MessageService, validate *validator.Validate) *MessageHandler {
	return &MessageHandler{messageService: messageService, validate: validate}
}

// RegisterRoutes mounts tenant message routes
func (h *MessageHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/messages/notifications", authMw(http.HandlerFunc(h.notifications)))
	mux.Handle("/messages/support", authMw(http.HandlerFunc(h.submitSupport)))
	mux.Handle("/messages/sent", authMw(http.HandlerFunc(h.sentMessages)))
	mux.Handle("/messages/unread-count", authMw(http.HandlerFunc(h.unreadCount)))
	mux.Handle("/messages/", authMw(http.HandlerFunc(h.markRead)))
}

func (h *MessageHandler) notifications(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	direct, announcements, err := h.messageService.Notifications(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list notifications", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.NotificationsResponseDTO{
		Messages:      toMessageDTOs(direct),
		Announcements: toMessageDTOs(announcements),
	})
}

func (h *MessageHandler) markRead(w http.ResponseWriter, r *http.Request) {
	rawID, isRead := strings.CutSuffix(strings.TrimPrefix(r.URL.Path, "/messages/"), "/read")
	if !isRead || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		http.Error(w, "Invalid message id", http.StatusBadRequest)
		return
	}

	err = h.messageService.MarkRead(r.Context(), id, userID)
	if errors.Is(err, service.ErrMessageNotFound) {
		http.Error(w, "Message not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to mark message read", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *MessageHandler) submitSupport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	var req dto.SupportMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg, err := h.messageService.SubmitSupport(r.Context(), userID, req.Category, req.Subject, req.Content)
	if err != nil {
		http.Error(w, "Failed to submit support message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toMessageDTO(msg))
}

func (h *MessageHandler) sentMessages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	msgs, err := h.messageService.SentMessages(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to list sent messages", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toMessageDTOs(msgs))
}

func (h *MessageHandler) unreadCount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return
	}
	count, announcements, err := h.messageService.UnreadCount(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to count unread messages", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.UnreadCountResponseDTO{
		Count:         count,
		Announcements: announcements,
	})
}

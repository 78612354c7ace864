package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// AdminHandler handles the operator surface: summary, tenant management,
// payment review, the message inbox, announcements, audit and exports.
type AdminHandler struct {
	adminService   service.AdminService
	paymentService service.PaymentService
	messageService service.MessageService
	validate       *validator.Validate
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService service.AdminService, paymentService service.PaymentService,
	messageService service.MessageService, validate *validator.Validate) *AdminHandler {
	return &AdminHandler{
		adminService:   adminService,
		paymentService: paymentService,
		messageService: messageService,
		validate:       validate,
	}
}

// RegisterRoutes mounts operator routes behind the admin middleware
func (h *AdminHandler) RegisterRoutes(mux *http.ServeMux, adminMw func(http.Handler) http.Handler) {
	mux.Handle("/admin/summary", adminMw(http.HandlerFunc(h.summary)))
	mux.Handle("/admin/users", adminMw(http.HandlerFunc(h.listUsers)))
	mux.Handle("/admin/users/", adminMw(http.HandlerFunc(h.handleUserAction)))
	mux.Handle("/admin/payments", adminMw(http.HandlerFunc(h.listPayments)))
	mux.Handle("/admin/payments/", adminMw(http.HandlerFunc(h.handlePaymentAction)))
	mux.Handle("/admin/messages", adminMw(http.HandlerFunc(h.inbox)))
	mux.Handle("/admin/messages/send", adminMw(http.HandlerFunc(h.sendMessage)))
	mux.Handle("/admin/messages/", adminMw(http.HandlerFunc(h.markMessageRead)))
	mux.Handle("/admin/announcements", adminMw(http.HandlerFunc(h.handleAnnouncements)))
	mux.Handle("/admin/activity", adminMw(http.HandlerFunc(h.activity)))
	mux.Handle("/admin/export/users", adminMw(http.HandlerFunc(h.exportUsers)))
	mux.Handle("/admin/export/payments", adminMw(http.HandlerFunc(h.exportPayments)))
}

func (h *AdminHandler) summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	summary, err := h.adminService.Summary(r.Context())
	if err != nil {
		http.Error(w, "Failed to build summary", http.StatusInternalServerError)
		return
	}

	recent := make([]dto.UserResponseDTO, 0, len(summary.RecentUsers))
	for i := range summary.RecentUsers {
		recent = append(recent, *toUserDTO(&summary.RecentUsers[i], summary.GeneratedAt))
	}
	writeJSON(w, http.StatusOK, dto.AdminSummaryResponseDTO{
		TotalUsers:          summary.TotalUsers,
		ActiveSubscriptions: summary.ActiveSubscriptions,
		TrialUsers:          summary.TrialUsers,
		ExpiredUsers:        summary.ExpiredUsers,
		PendingPayments:     summary.PendingPayments,
		TodaySales:          summary.TodaySales.InexactFloat64(),
		TodayProfit:         summary.TodayProfit.InexactFloat64(),
		TotalRevenue:        summary.TotalRevenue.InexactFloat64(),
		RecentUsers:         recent,
		UnreadMessages:      summary.UnreadMessages,
		GeneratedAt:         summary.GeneratedAt,
	})
}

func (h *AdminHandler) listUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		http.Error(w, "Failed to list users", http.StatusInternalServerError)
		return
	}
	now := time.Now().UTC()
	resp := make([]dto.UserResponseDTO, 0, len(users))
	for i := range users {
		resp = append(resp, *toUserDTO(&users[i], now))
	}
	writeJSON(w, http.StatusOK, resp)
}

// pathAction splits "{id}/{action}" suffixes like "42/activate".
func pathAction(path, prefix string) (int64, string, bool) {
	rest := strings.TrimPrefix(path, prefix)
	rawID, action, found := strings.Cut(rest, "/")
	if !found {
		return 0, "", false
	}
	id, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return 0, "", false
	}
	return id, action, true
}

func (h *AdminHandler) handleUserAction(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathAction(r.URL.Path, "/admin/users/")
	if !ok || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var (
		user *model.User
		err  error
	)
	switch action {
	case "activate":
		user, err = h.adminService.ActivateUser(r.Context(), id)
	case "suspend":
		user, err = h.adminService.SuspendUser(r.Context(), id)
	default:
		http.NotFound(w, r)
		return
	}

	if errors.Is(err, service.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to update user", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toUserDTO(user, time.Now().UTC()))
}

func (h *AdminHandler) listPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	payments, err := h.paymentService.ListAll(r.Context())
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

func (h *AdminHandler) handlePaymentAction(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathAction(r.URL.Path, "/admin/payments/")
	if !ok || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var (
		payment *model.Payment
		err     error
	)
	switch action {
	case "verify":
		payment, err = h.paymentService.Verify(r.Context(), id)
	case "reject":
		payment, err = h.paymentService.Reject(r.Context(), id)
	default:
		http.NotFound(w, r)
		return
	}

	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		http.Error(w, "Payment not found", http.StatusNotFound)
		return
	case errors.Is(err, service.ErrPaymentNotPending):
		http.Error(w, "Payment has already been reviewed", http.StatusConflict)
		return
	case err != nil:
		http.Error(w, "Failed to review payment", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toPaymentDTO(payment))
}

func (h *AdminHandler) inbox(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	msgs, err := h.messageService.Inbox(r.Context())
	if err != nil {
		http.Error(w, "Failed to list inbox", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toMessageDTOs(msgs))
}

func (h *AdminHandler) markMessageRead(w http.ResponseWriter, r *http.Request) {
	id, action, ok := pathAction(r.URL.Path, "/admin/messages/")
	if !ok || action != "read" || r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	err := h.messageService.AdminMarkRead(r.Context(), id)
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

func (h *AdminHandler) sendMessage(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req dto.AdminMessageDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
		return
	}

	msg, err := h.messageService.SendToUser(r.Context(), req.UserID, req.Subject, req.Content)
	if errors.Is(err, service.ErrUserNotFound) {
		http.Error(w, "User not found", http.StatusNotFound)
		return
	}
	if err != nil {
		http.Error(w, "Failed to send message", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, toMessageDTO(msg))
}

func (h *AdminHandler) handleAnnouncements(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		msgs, err := h.messageService.Announcements(r.Context())
		if err != nil {
			http.Error(w, "Failed to list announcements", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusOK, toMessageDTOs(msgs))
	case http.MethodPost:
		var req dto.AnnouncementDTO
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid JSON payload: "+err.Error(), http.StatusBadRequest)
			return
		}
		if err := h.validate.Struct(&req); err != nil {
			http.Error(w, "Validation failed: "+err.Error(), http.StatusBadRequest)
			return
		}
		msg, err := h.messageService.Announce(r.Context(), req.Subject, req.Content, req.SendSMS)
		if err != nil {
			http.Error(w, "Failed to create announcement", http.StatusInternalServerError)
			return
		}
		writeJSON(w, http.StatusCreated, toMessageDTO(msg))
	default:
		http.NotFound(w, r)
	}
}

func (h *AdminHandler) activity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	logs, err := h.adminService.Activity(r.Context())
	if err != nil {
		http.Error(w, "Failed to list activity", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.ActivityLogResponseDTO, 0, len(logs))
	for _, l := range logs {
		resp = append(resp, dto.ActivityLogResponseDTO{
			ID:          l.ID,
			Action:      l.Action,
			Details:     l.Details,
			AdminAction: l.AdminAction,
			CreatedAt:   l.CreatedAt,
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *AdminHandler) exportUsers(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.adminService.ExportUsersCSV(r.Context())
	if err != nil {
		http.Error(w, "Failed to export users", http.StatusInternalServerError)
		return
	}
	writeCSV(w, "users.csv", out)
}

func (h *AdminHandler) exportPayments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	out, err := h.adminService.ExportPaymentsCSV(r.Context())
	if err != nil {
		http.Error(w, "Failed to export payments", http.StatusInternalServerError)
		return
	}
	writeCSV(w, "payments.csv", out)
}

func writeCSV(w http.ResponseWriter, filename string, data []byte) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", "attachment; filename="+filename)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

package handler

import (
	"net/http"

	"github.com/wysanalytics/takwimu-plus/internal/api/v1/dto"
	"github.com/wysanalytics/takwimu-plus/internal/middleware"
	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// ReportHandler handles dashboard, report and tax estimate endpoints
type ReportHandler struct {
	reportService service.ReportService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(reportService service.ReportService) *ReportHandler {
	return &ReportHandler{reportService: reportService}
}

// RegisterRoutes mounts report routes
func (h *ReportHandler) RegisterRoutes(mux *http.ServeMux, authMw func(http.Handler) http.Handler) {
	mux.Handle("/dashboard/summary", authMw(http.HandlerFunc(h.dashboard)))
	mux.Handle("/reports/weekly", authMw(http.HandlerFunc(h.weekly)))
	mux.Handle("/reports/monthly", authMw(http.HandlerFunc(h.monthly)))
	mux.Handle("/reports/expenses", authMw(http.HandlerFunc(h.expenseBreakdown)))
	mux.Handle("/reports/top-products", authMw(http.HandlerFunc(h.topProducts)))
	mux.Handle("/tax/estimate", authMw(http.HandlerFunc(h.taxEstimate)))
}

func tenantID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return 0, false
	}
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Error(w, "Unauthorized: User ID not found in context", http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

func (h *ReportHandler) dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	summary, err := h.reportService.Dashboard(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to build dashboard", http.StatusInternalServerError)
		return
	}

	lowStock := make([]dto.ProductResponseDTO, 0, len(summary.LowStock))
	for i := range summary.LowStock {
		lowStock = append(lowStock, toProductDTO(&summary.LowStock[i]))
	}
	writeJSON(w, http.StatusOK, dto.DashboardResponseDTO{
		TodaySales:      summary.TodaySales.InexactFloat64(),
		TodayProfit:     summary.TodayProfit.InexactFloat64(),
		MonthSales:      summary.MonthSales.InexactFloat64(),
		MonthProfit:     summary.MonthProfit.InexactFloat64(),
		MonthlyExpenses: summary.MonthlyExpenses.InexactFloat64(),
		ProductsCount:   summary.ProductsCount,
		LowStock:        lowStock,
		EstimatedVAT:    summary.EstimatedVAT.InexactFloat64(),
		DaysRemaining:   summary.DaysRemaining,
		Status:          string(summary.Status),
	})
}

func (h *ReportHandler) weekly(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	days, err := h.reportService.Weekly(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to build weekly report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toDailySalesDTOs(days))
}

func (h *ReportHandler) monthly(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	days, err := h.reportService.Monthly(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to build monthly report", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, toDailySalesDTOs(days))
}

func (h *ReportHandler) expenseBreakdown(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	breakdown, err := h.reportService.ExpenseBreakdown(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to build expense breakdown", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.CategoryAmountDTO, 0, len(breakdown))
	for _, row := range breakdown {
		resp = append(resp, dto.CategoryAmountDTO{
			Category: row.Category,
			Amount:   row.Amount.InexactFloat64(),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) topProducts(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	top, err := h.reportService.TopProducts(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to rank products", http.StatusInternalServerError)
		return
	}
	resp := make([]dto.TopProductDTO, 0, len(top))
	for _, row := range top {
		resp = append(resp, dto.TopProductDTO{Name: row.Name, Quantity: row.Quantity})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *ReportHandler) taxEstimate(w http.ResponseWriter, r *http.Request) {
	userID, ok := tenantID(w, r)
	if !ok {
		return
	}
	estimate, err := h.reportService.TaxEstimate(r.Context(), userID)
	if err != nil {
		http.Error(w, "Failed to estimate taxes", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, dto.TaxEstimateResponseDTO{
		MonthSales:         estimate.MonthSales.InexactFloat64(),
		VATRate:            estimate.VATRate,
		EstimatedVAT:       estimate.EstimatedVAT.InexactFloat64(),
		PresumptiveTaxRate: estimate.PresumptiveTaxRate,
		EstimatedTax:       estimate.EstimatedTax.InexactFloat64(),
	})
}

func toDailySalesDTOs(days []model.DailySales) []dto.DailySalesDTO {
	out := make([]dto.DailySalesDTO, 0, len(days))
	for _, d := range days {
		out = append(out, dto.DailySalesDTO{
			Date:   d.Date,
			Sales:  d.Sales.InexactFloat64(),
			Profit: d.Profit.InexactFloat64(),
			Count:  d.Count,
		})
	}
	return out
}

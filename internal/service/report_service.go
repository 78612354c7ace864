package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

type ReportService interface {
	Dashboard(ctx context.Context, userID int64) (*model.DashboardSummary, error)
	Weekly(ctx context.Context, userID int64) ([]model.DailySales, error)
	Monthly(ctx context.Context, userID int64) ([]model.DailySales, error)
	ExpenseBreakdown(ctx context.Context, userID int64) ([]model.CategoryAmount, error)
	TopProducts(ctx context.Context, userID int64) ([]model.TopProduct, error)
	TaxEstimate(ctx context.Context, userID int64) (*model.TaxEstimate, error)
}

type reportService struct {
	reports  repository.ReportRepository
	products repository.ProductRepository
	users    repository.UserRepository
	settings SettingsService
	logger   zerolog.Logger
	now      func() time.Time
}

func NewReportService(reports repository.ReportRepository, products repository.ProductRepository,
	users repository.UserRepository, settings SettingsService, logger zerolog.Logger) ReportService {
	return &reportService{
		reports:  reports,
		products: products,
		users:    users,
		settings: settings,
		logger:   logger.With().Str("service", "ReportService").Logger(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

const topProductsLimit = 5

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func (s *reportService) Dashboard(ctx context.Context, userID int64) (*model.DashboardSummary, error) {
	now := s.now()
	today := startOfDay(now)
	monthStart := startOfMonth(now)
	horizon := now.AddDate(0, 0, 1)

	todayTotals, err := s.reports.SalesTotalsBetween(ctx, userID, today, horizon)
	if err != nil {
		return nil, fmt.Errorf("today totals: %w", err)
	}
	monthTotals, err := s.reports.SalesTotalsBetween(ctx, userID, monthStart, horizon)
	if err != nil {
		return nil, fmt.Errorf("month totals: %w", err)
	}
	expenseTotals, err := s.reports.ExpenseTotalSince(ctx, userID, monthStart)
	if err != nil {
		return nil, fmt.Errorf("month expenses: %w", err)
	}
	productCount, err := s.products.Count(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("counting products: %w", err)
	}

	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	lowStock, err := s.products.ListLowStock(ctx, userID, settings.LowStockThreshold)
	if err != nil {
		return nil, fmt.Errorf("low stock list: %w", err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	vatRate := decimal.NewFromFloat(settings.VATRate).Div(decimal.NewFromInt(100))
	return &model.DashboardSummary{
		TodaySales:      todayTotals.Amount,
		TodayProfit:     todayTotals.Profit,
		MonthSales:      monthTotals.Amount,
		MonthProfit:     monthTotals.Profit,
		MonthlyExpenses: expenseTotals.Amount,
		ProductsCount:   productCount,
		LowStock:        lowStock,
		EstimatedVAT:    monthTotals.Amount.Mul(vatRate),
		DaysRemaining:   user.DaysRemainingAt(now),
		Status:          user.SubscriptionStatus,
	}, nil
}

func (s *reportService) Weekly(ctx context.Context, userID int64) ([]model.DailySales, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -7)
	days, err := s.reports.DailySalesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("weekly report: %w", err)
	}
	return days, nil
}

func (s *reportService) Monthly(ctx context.Context, userID int64) ([]model.DailySales, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -30)
	days, err := s.reports.DailySalesSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("monthly report: %w", err)
	}
	return days, nil
}

func (s *reportService) ExpenseBreakdown(ctx context.Context, userID int64) ([]model.CategoryAmount, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -30)
	breakdown, err := s.reports.ExpenseBreakdownSince(ctx, userID, since)
	if err != nil {
		return nil, fmt.Errorf("expense breakdown: %w", err)
	}
	return breakdown, nil
}

// TopProducts degrades gracefully: a failed or empty join yields an empty
// list, never an error, so the rest of the report page still renders.
func (s *reportService) TopProducts(ctx context.Context, userID int64) ([]model.TopProduct, error) {
	since := startOfDay(s.now()).AddDate(0, 0, -30)
	top, err := s.reports.TopProductsSince(ctx, userID, since, topProductsLimit)
	if err != nil {
		s.logger.Warn().Err(err).Int64("user_id", userID).Msg("Top products query failed, returning empty section")
		return []model.TopProduct{}, nil
	}
	if top == nil {
		top = []model.TopProduct{}
	}
	return top, nil
}

func (s *reportService) TaxEstimate(ctx context.Context, userID int64) (*model.TaxEstimate, error) {
	now := s.now()
	monthTotals, err := s.reports.SalesTotalsBetween(ctx, userID, startOfMonth(now), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("month totals: %w", err)
	}
	settings, err := s.settings.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	hundred := decimal.NewFromInt(100)
	return &model.TaxEstimate{
		MonthSales:         monthTotals.Amount,
		VATRate:            settings.VATRate,
		EstimatedVAT:       monthTotals.Amount.Mul(decimal.NewFromFloat(settings.VATRate)).Div(hundred),
		PresumptiveTaxRate: settings.PresumptiveTaxRate,
		EstimatedTax:       monthTotals.Amount.Mul(decimal.NewFromFloat(settings.PresumptiveTaxRate)).Div(hundred),
	}, nil
}

package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

// ReportRepository holds the read-only rollups. Tenant queries filter on
// user_id; the two *AllTenants methods back the operator dashboard.
type ReportRepository interface {
	SalesTotalsBetween(ctx context.Context, userID int64, from, to time.Time) (*model.SalesTotals, error)
	DailySalesSince(ctx context.Context, userID int64, since time.Time) ([]model.DailySales, error)
	ExpenseTotalSince(ctx context.Context, userID int64, since time.Time) (*model.SalesTotals, error)
	ExpenseBreakdownSince(ctx context.Context, userID int64, since time.Time) ([]model.CategoryAmount, error)
	TopProductsSince(ctx context.Context, userID int64, since time.Time, limit int) ([]model.TopProduct, error)
	SalesTotalsAllTenantsBetween(ctx context.Context, from, to time.Time) (*model.SalesTotals, error)
}

type reportRepo struct {
	db *sql.DB
}

func NewReportRepo(db *sql.DB) ReportRepository {
	return &reportRepo{db: db}
}

func (r *reportRepo) SalesTotalsBetween(ctx context.Context, userID int64, from, to time.Time) (*model.SalesTotals, error) {
	var t model.SalesTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(profit), 0)
         FROM sales WHERE user_id=$1 AND created_at >= $2 AND created_at < $3`,
		userID, from, to).Scan(&t.Amount, &t.Profit)
	if err != nil {
		return nil, fmt.Errorf("summing sales: %w", err)
	}
	return &t, nil
}

func (r *reportRepo) DailySalesSince(ctx context.Context, userID int64, since time.Time) ([]model.DailySales, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT created_at::date::text, COALESCE(SUM(total_amount), 0),
                COALESCE(SUM(profit), 0), COUNT(*)
         FROM sales WHERE user_id=$1 AND created_at >= $2
         GROUP BY created_at::date ORDER BY created_at::date`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("grouping daily sales: %w", err)
	}
	defer rows.Close()

	var days []model.DailySales
	for rows.Next() {
		var d model.DailySales
		if err := rows.Scan(&d.Date, &d.Sales, &d.Profit, &d.Count); err != nil {
			return nil, fmt.Errorf("scanning daily sales: %w", err)
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (r *reportRepo) ExpenseTotalSince(ctx context.Context, userID int64, since time.Time) (*model.SalesTotals, error) {
	var t model.SalesTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM expenses
         WHERE user_id=$1 AND created_at >= $2`, userID, since).Scan(&t.Amount)
	if err != nil {
		return nil, fmt.Errorf("summing expenses: %w", err)
	}
	return &t, nil
}

func (r *reportRepo) ExpenseBreakdownSince(ctx context.Context, userID int64, since time.Time) ([]model.CategoryAmount, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT category, COALESCE(SUM(amount), 0)
         FROM expenses WHERE user_id=$1 AND created_at >= $2
         GROUP BY category ORDER BY SUM(amount) DESC`,
		userID, since)
	if err != nil {
		return nil, fmt.Errorf("grouping expenses: %w", err)
	}
	defer rows.Close()

	var breakdown []model.CategoryAmount
	for rows.Next() {
		var c model.CategoryAmount
		if err := rows.Scan(&c.Category, &c.Amount); err != nil {
			return nil, fmt.Errorf("scanning expense category: %w", err)
		}
		breakdown = append(breakdown, c)
	}
	return breakdown, rows.Err()
}

func (r *reportRepo) TopProductsSince(ctx context.Context, userID int64, since time.Time, limit int) ([]model.TopProduct, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT p.name, COALESCE(SUM(si.quantity), 0)
         FROM sale_items si
         JOIN sales s ON s.id = si.sale_id
         JOIN products p ON p.id = si.product_id
         WHERE s.user_id=$1 AND s.created_at >= $2
         GROUP BY p.id, p.name
         ORDER BY SUM(si.quantity) DESC
         LIMIT $3`,
		userID, since, limit)
	if err != nil {
		return nil, fmt.Errorf("ranking products: %w", err)
	}
	defer rows.Close()

	var top []model.TopProduct
	for rows.Next() {
		var t model.TopProduct
		if err := rows.Scan(&t.Name, &t.Quantity); err != nil {
			return nil, fmt.Errorf("scanning top product: %w", err)
		}
		top = append(top, t)
	}
	return top, rows.Err()
}

func (r *reportRepo) SalesTotalsAllTenantsBetween(ctx context.Context, from, to time.Time) (*model.SalesTotals, error) {
	var t model.SalesTotals
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(total_amount), 0), COALESCE(SUM(profit), 0)
         FROM sales WHERE created_at >= $1 AND created_at < $2`,
		from, to).Scan(&t.Amount, &t.Profit)
	if err != nil {
		return nil, fmt.Errorf("summing sales across tenants: %w", err)
	}
	return &t, nil
}

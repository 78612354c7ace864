package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type ExpenseRepository interface {
	Create(ctx context.Context, e *model.Expense) error
	List(ctx context.Context, userID int64) ([]model.Expense, error)
	Delete(ctx context.Context, id, userID int64) error
}

type expenseRepo struct {
	db *sql.DB
}

func NewExpenseRepo(db *sql.DB) ExpenseRepository {
	return &expenseRepo{db: db}
}

func (r *expenseRepo) Create(ctx context.Context, e *model.Expense) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO expenses (user_id, description, amount, category)
         VALUES ($1, $2, $3, $4) RETURNING id, created_at`,
		e.UserID, e.Description, e.Amount, e.Category,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (r *expenseRepo) List(ctx context.Context, userID int64) ([]model.Expense, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, description, amount, category, created_at
         FROM expenses WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying expenses: %w", err)
	}
	defer rows.Close()

	var expenses []model.Expense
	for rows.Next() {
		var e model.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Description, &e.Amount,
			&e.Category, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

func (r *expenseRepo) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM expenses WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting expense %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

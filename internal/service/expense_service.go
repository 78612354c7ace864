package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseService interface {
	Create(ctx context.Context, e *model.Expense) (*model.Expense, error)
	List(ctx context.Context, userID int64) ([]model.Expense, error)
	Delete(ctx context.Context, id, userID int64) error
}

type expenseService struct {
	repo   repository.ExpenseRepository
	logger zerolog.Logger
}

func NewExpenseService(repo repository.ExpenseRepository, logger zerolog.Logger) ExpenseService {
	return &expenseService{
		repo:   repo,
		logger: logger.With().Str("service", "ExpenseService").Logger(),
	}
}

func (s *expenseService) Create(ctx context.Context, e *model.Expense) (*model.Expense, error) {
	if err := s.repo.Create(ctx, e); err != nil {
		s.logger.Error().Err(err).Int64("user_id", e.UserID).Msg("Failed to create expense")
		return nil, fmt.Errorf("creating expense: %w", err)
	}
	return e, nil
}

func (s *expenseService) List(ctx context.Context, userID int64) ([]model.Expense, error) {
	expenses, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	return expenses, nil
}

func (s *expenseService) Delete(ctx context.Context, id, userID int64) error {
	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrExpenseNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return nil
}

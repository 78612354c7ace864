package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

var (
	ErrPaymentNotFound = errors.New("payment not found")
	// ErrPaymentNotPending guards against re-review: verifying a payment
	// twice must not grant another subscription window.
	ErrPaymentNotPending = errors.New("payment has already been reviewed")
)

type PaymentService interface {
	// Submit records a claimed mobile-money transfer. The amount comes from
	// policy, never from the request.
	Submit(ctx context.Context, userID int64, transactionRef, payerPhone string) (*model.Payment, error)
	ListOwn(ctx context.Context, userID int64) ([]model.Payment, error)
	ListAll(ctx context.Context) ([]model.Payment, error)
	Verify(ctx context.Context, id int64) (*model.Payment, error)
	Reject(ctx context.Context, id int64) (*model.Payment, error)
}

type paymentService struct {
	payments         repository.PaymentRepository
	users            repository.UserRepository
	activity         repository.ActivityLogRepository
	notifier         Notifier
	monthlyPrice     decimal.Decimal
	subscriptionDays int
	logger           zerolog.Logger
	now              func() time.Time
}

func NewPaymentService(payments repository.PaymentRepository, users repository.UserRepository,
	activity repository.ActivityLogRepository, notifier Notifier,
	monthlyPrice decimal.Decimal, subscriptionDays int, logger zerolog.Logger) PaymentService {
	return &paymentService{
		payments:         payments,
		users:            users,
		activity:         activity,
		notifier:         notifier,
		monthlyPrice:     monthlyPrice,
		subscriptionDays: subscriptionDays,
		logger:           logger.With().Str("service", "PaymentService").Logger(),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *paymentService) Submit(ctx context.Context, userID int64, transactionRef, payerPhone string) (*model.Payment, error) {
	payment := &model.Payment{
		UserID:         userID,
		Amount:         s.monthlyPrice,
		TransactionRef: transactionRef,
		PayerPhone:     payerPhone,
		Status:         model.PaymentPending,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to submit payment")
		return nil, fmt.Errorf("submitting payment: %w", err)
	}
	return payment, nil
}

func (s *paymentService) ListOwn(ctx context.Context, userID int64) ([]model.Payment, error) {
	payments, err := s.payments.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing payments: %w", err)
	}
	return payments, nil
}

func (s *paymentService) ListAll(ctx context.Context) ([]model.Payment, error) {
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing all payments: %w", err)
	}
	return payments, nil
}

// Verify applies the payment transition and the subscription activation as one
// unit, then notifies the tenant. The subscription clock resets to a full
// window from now; remaining days are not added.
func (s *paymentService) Verify(ctx context.Context, id int64) (*model.Payment, error) {
	now := s.now()
	payment, prior, err := s.payments.Verify(ctx, id, now, now.AddDate(0, 0, s.subscriptionDays))
	if err != nil {
		return nil, fmt.Errorf("verifying payment %d: %w", id, err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if prior != model.PaymentPending {
		return nil, ErrPaymentNotPending
	}

	s.logActivity(ctx, "Payment Verified", "Verified "+payment.TransactionRef)

	// Best-effort notification; the verification above already committed.
	if user, err := s.users.GetByID(ctx, payment.UserID); err == nil && user != nil {
		s.notifier.NotifyUser(ctx, user.Phone, "Payment Confirmed",
			fmt.Sprintf("Your payment has been verified. Subscription active for %d days.", s.subscriptionDays))
	}
	return payment, nil
}

func (s *paymentService) Reject(ctx context.Context, id int64) (*model.Payment, error) {
	payment, prior, err := s.payments.Reject(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("rejecting payment %d: %w", id, err)
	}
	if payment == nil {
		return nil, ErrPaymentNotFound
	}
	if prior != model.PaymentPending {
		return nil, ErrPaymentNotPending
	}

	s.logActivity(ctx, "Payment Rejected", "Rejected "+payment.TransactionRef)
	return payment, nil
}

func (s *paymentService) logActivity(ctx context.Context, action, details string) {
	err := s.activity.Insert(ctx, &model.ActivityLog{Action: action, Details: details, AdminAction: true})
	if err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("Failed to write activity log")
	}
}

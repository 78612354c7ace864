package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type PaymentRepository interface {
	Create(ctx context.Context, p *model.Payment) error
	GetByID(ctx context.Context, id int64) (*model.Payment, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Payment, error)
	ListAll(ctx context.Context) ([]model.Payment, error)
	CountByStatus(ctx context.Context, status model.PaymentStatus) (int, error)
	VerifiedRevenue(ctx context.Context) (decimal.Decimal, error)

	// Verify flips a pending payment to verified and, in the same
	// transaction, activates the owning tenant's subscription until
	// subscriptionEnd. Returns the payment's pre-transition status so the
	// caller can reject re-verification.
	Verify(ctx context.Context, id int64, verifiedAt, subscriptionEnd time.Time) (*model.Payment, model.PaymentStatus, error)

	// Reject flips a pending payment to rejected. No tenant side effect.
	Reject(ctx context.Context, id int64) (*model.Payment, model.PaymentStatus, error)
}

type paymentRepo struct {
	db *sql.DB
}

func NewPaymentRepo(db *sql.DB) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `p.id, p.user_id, p.amount, p.transaction_ref, p.payer_phone,
        p.status, p.created_at, p.verified_at`

func scanPayment(row interface{ Scan(...any) error }) (*model.Payment, error) {
	var p model.Payment
	err := row.Scan(&p.ID, &p.UserID, &p.Amount, &p.TransactionRef, &p.PayerPhone,
		&p.Status, &p.CreatedAt, &p.VerifiedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *paymentRepo) Create(ctx context.Context, p *model.Payment) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO payments (user_id, amount, transaction_ref, payer_phone, status)
         VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at`,
		p.UserID, p.Amount, p.TransactionRef, p.PayerPhone, p.Status,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting payment: %w", err)
	}
	return nil
}

func (r *paymentRepo) GetByID(ctx context.Context, id int64) (*model.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments p WHERE p.id=$1`
	p, err := scanPayment(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *paymentRepo) ListByUser(ctx context.Context, userID int64) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+` FROM payments p
         WHERE p.user_id=$1 ORDER BY p.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("querying payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, *p)
	}
	return payments, rows.Err()
}

// ListAll is the operator view: every payment joined to its tenant.
func (r *paymentRepo) ListAll(ctx context.Context) ([]model.Payment, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+paymentColumns+`, u.email, u.business_name, u.phone
         FROM payments p
         JOIN users u ON u.id = p.user_id
         ORDER BY p.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("querying all payments: %w", err)
	}
	defer rows.Close()

	var payments []model.Payment
	for rows.Next() {
		var p model.Payment
		if err := rows.Scan(&p.ID, &p.UserID, &p.Amount, &p.TransactionRef, &p.PayerPhone,
			&p.Status, &p.CreatedAt, &p.VerifiedAt,
			&p.UserEmail, &p.UserBusiness, &p.UserPhone); err != nil {
			return nil, fmt.Errorf("scanning payment: %w", err)
		}
		payments = append(payments, p)
	}
	return payments, rows.Err()
}

func (r *paymentRepo) CountByStatus(ctx context.Context, status model.PaymentStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM payments WHERE status=$1`, status).Scan(&n)
	return n, err
}

func (r *paymentRepo) VerifiedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE status=$1`,
		model.PaymentVerified).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("summing verified payments: %w", err)
	}
	return total, nil
}

func (r *paymentRepo) Verify(ctx context.Context, id int64, verifiedAt, subscriptionEnd time.Time) (*model.Payment, model.PaymentStatus, error) {
	return r.transition(ctx, id, model.PaymentVerified, func(tx *sql.Tx, p *model.Payment) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payments SET status=$1, verified_at=$2 WHERE id=$3`,
			model.PaymentVerified, verifiedAt, id); err != nil {
			return fmt.Errorf("marking payment verified: %w", err)
		}
		p.VerifiedAt = &verifiedAt
		if _, err := tx.ExecContext(ctx,
			`UPDATE users SET subscription_status=$1, subscription_end=$2 WHERE id=$3`,
			model.SubscriptionActive, subscriptionEnd, p.UserID); err != nil {
			return fmt.Errorf("activating subscription for user %d: %w", p.UserID, err)
		}
		return nil
	})
}

func (r *paymentRepo) Reject(ctx context.Context, id int64) (*model.Payment, model.PaymentStatus, error) {
	return r.transition(ctx, id, model.PaymentRejected, func(tx *sql.Tx, p *model.Payment) error {
		if _, err := tx.ExecContext(ctx,
			`UPDATE payments SET status=$1 WHERE id=$2`, model.PaymentRejected, id); err != nil {
			return fmt.Errorf("marking payment rejected: %w", err)
		}
		return nil
	})
}

// transition locks the payment row, bails out unless it is still pending, and
// applies fn inside the same transaction.
func (r *paymentRepo) transition(ctx context.Context, id int64, to model.PaymentStatus,
	fn func(tx *sql.Tx, p *model.Payment) error) (*model.Payment, model.PaymentStatus, error) {

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, "", fmt.Errorf("beginning payment transaction: %w", err)
	}
	defer tx.Rollback()

	p, err := scanPayment(tx.QueryRowContext(ctx,
		`SELECT `+paymentColumns+` FROM payments p WHERE p.id=$1 FOR UPDATE`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", fmt.Errorf("locking payment %d: %w", id, err)
	}

	prior := p.Status
	if prior != model.PaymentPending {
		return p, prior, nil
	}

	if err := fn(tx, p); err != nil {
		return nil, prior, err
	}
	if err := tx.Commit(); err != nil {
		return nil, prior, fmt.Errorf("committing payment transition: %w", err)
	}
	p.Status = to
	return p, prior, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type UserRepository interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	ListRecent(ctx context.Context, limit int) ([]model.User, error)
	ListWithPhones(ctx context.Context) ([]model.User, error)
	SetSubscription(ctx context.Context, id int64, status model.SubscriptionStatus, end *time.Time) error
	Count(ctx context.Context) (int, error)
	CountByStatus(ctx context.Context, status model.SubscriptionStatus) (int, error)
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, email, password_hash, first_name, last_name, business_name,
        phone, language, subscription_status, subscription_end, created_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName,
		&u.BusinessName, &u.Phone, &u.Language, &u.SubscriptionStatus,
		&u.SubscriptionEnd, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	query := `INSERT INTO users (email, password_hash, first_name, last_name, business_name,
                phone, language, subscription_status, subscription_end)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.BusinessName,
		u.Phone, u.Language, u.SubscriptionStatus, u.SubscriptionEnd,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, email))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return u, err
}

func (r *userRepo) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC`
	return r.queryUsers(ctx, query)
}

func (r *userRepo) ListRecent(ctx context.Context, limit int) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1`
	return r.queryUsers(ctx, query, limit)
}

func (r *userRepo) ListWithPhones(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE phone <> '' ORDER BY created_at DESC`
	return r.queryUsers(ctx, query)
}

func (r *userRepo) queryUsers(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying users: %w", err)
	}
	defer rows.Close()

	var users []model.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepo) SetSubscription(ctx context.Context, id int64, status model.SubscriptionStatus, end *time.Time) error {
	var err error
	if end != nil {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET subscription_status=$1, subscription_end=$2 WHERE id=$3`,
			status, end, id)
	} else {
		_, err = r.db.ExecContext(ctx,
			`UPDATE users SET subscription_status=$1 WHERE id=$2`, status, id)
	}
	if err != nil {
		return fmt.Errorf("updating subscription for user %d: %w", id, err)
	}
	return nil
}

func (r *userRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *userRepo) CountByStatus(ctx context.Context, status model.SubscriptionStatus) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE subscription_status=$1`, status).Scan(&n)
	return n, err
}

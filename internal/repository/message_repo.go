package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type MessageRepository interface {
	Create(ctx context.Context, m *model.Message) error
	GetByID(ctx context.Context, id int64) (*model.Message, error)
	ListForUser(ctx context.Context, userID int64, sender model.MessageSender) ([]model.Message, error)
	ListAnnouncements(ctx context.Context) ([]model.Message, error)
	ListFromUsers(ctx context.Context) ([]model.Message, error)
	MarkRead(ctx context.Context, id int64) error
	UnreadCountForUser(ctx context.Context, userID int64) (int, error)
	CountAnnouncements(ctx context.Context) (int, error)
	CountUnreadFromUsers(ctx context.Context) (int, error)
}

type messageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) MessageRepository {
	return &messageRepo{db: db}
}

const messageColumns = `m.id, m.user_id, m.sender, m.subject, m.content,
        m.is_announcement, m.is_read, m.created_at`

func scanMessage(row interface{ Scan(...any) error }) (*model.Message, error) {
	var m model.Message
	err := row.Scan(&m.ID, &m.UserID, &m.Sender, &m.Subject, &m.Content,
		&m.IsAnnouncement, &m.IsRead, &m.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *messageRepo) Create(ctx context.Context, m *model.Message) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO messages (user_id, sender, subject, content, is_announcement, is_read)
         VALUES ($1, $2, $3, $4, $5, $6) RETURNING id, created_at`,
		m.UserID, m.Sender, m.Subject, m.Content, m.IsAnnouncement, m.IsRead,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting message: %w", err)
	}
	return nil
}

func (r *messageRepo) GetByID(ctx context.Context, id int64) (*model.Message, error) {
	m, err := scanMessage(r.db.QueryRowContext(ctx,
		`SELECT `+messageColumns+` FROM messages m WHERE m.id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return m, err
}

func (r *messageRepo) ListForUser(ctx context.Context, userID int64, sender model.MessageSender) ([]model.Message, error) {
	return r.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages m
         WHERE m.user_id=$1 AND m.sender=$2 ORDER BY m.created_at DESC`,
		userID, sender)
}

func (r *messageRepo) ListAnnouncements(ctx context.Context) ([]model.Message, error) {
	return r.queryMessages(ctx,
		`SELECT `+messageColumns+` FROM messages m
         WHERE m.is_announcement ORDER BY m.created_at DESC`)
}

// ListFromUsers is the operator inbox: every tenant-authored message with the
// tenant's contact details joined in.
func (r *messageRepo) ListFromUsers(ctx context.Context) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+messageColumns+`, u.email, u.business_name, u.phone
         FROM messages m
         JOIN users u ON u.id = m.user_id
         WHERE m.sender=$1 ORDER BY m.created_at DESC`, model.SenderUser)
	if err != nil {
		return nil, fmt.Errorf("querying inbox: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		if err := rows.Scan(&m.ID, &m.UserID, &m.Sender, &m.Subject, &m.Content,
			&m.IsAnnouncement, &m.IsRead, &m.CreatedAt,
			&m.UserEmail, &m.UserBusiness, &m.UserPhone); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

func (r *messageRepo) queryMessages(ctx context.Context, query string, args ...any) ([]model.Message, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		messages = append(messages, *m)
	}
	return messages, rows.Err()
}

// MarkRead is idempotent. For announcements the flag lives on the shared row,
// so every tenant sees the result.
func (r *messageRepo) MarkRead(ctx context.Context, id int64) error {
	_, err := r.db.ExecContext(ctx, `UPDATE messages SET is_read=TRUE WHERE id=$1`, id)
	if err != nil {
		return fmt.Errorf("marking message %d read: %w", id, err)
	}
	return nil
}

func (r *messageRepo) UnreadCountForUser(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages
         WHERE user_id=$1 AND sender=$2 AND NOT is_read`,
		userID, model.SenderAdmin).Scan(&n)
	return n, err
}

func (r *messageRepo) CountAnnouncements(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE is_announcement`).Scan(&n)
	return n, err
}

func (r *messageRepo) CountUnreadFromUsers(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM messages WHERE sender=$1 AND NOT is_read`,
		model.SenderUser).Scan(&n)
	return n, err
}

package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type ActivityLogRepository interface {
	Insert(ctx context.Context, l *model.ActivityLog) error
	ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error)
}

type activityRepo struct {
	db *sql.DB
}

func NewActivityLogRepo(db *sql.DB) ActivityLogRepository {
	return &activityRepo{db: db}
}

func (r *activityRepo) Insert(ctx context.Context, l *model.ActivityLog) error {
	err := r.db.QueryRowContext(ctx,
		`INSERT INTO activity_logs (action, details, admin_action)
         VALUES ($1, $2, $3) RETURNING id, created_at`,
		l.Action, l.Details, l.AdminAction,
	).Scan(&l.ID, &l.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting activity log: %w", err)
	}
	return nil
}

func (r *activityRepo) ListRecent(ctx context.Context, limit int) ([]model.ActivityLog, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, action, details, admin_action, created_at
         FROM activity_logs ORDER BY created_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying activity logs: %w", err)
	}
	defer rows.Close()

	var logs []model.ActivityLog
	for rows.Next() {
		var l model.ActivityLog
		if err := rows.Scan(&l.ID, &l.Action, &l.Details, &l.AdminAction, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning activity log: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

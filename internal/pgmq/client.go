// Package pgmq is a thin client for the pgmq Postgres extension, used here as
// the outbox for fire-and-forget SMS notifications.
package pgmq

import (
	"context"
	"database/sql"
	"fmt"
)

// Client issues pgmq queue operations over an existing DB handle.
type Client struct {
	db *sql.DB
}

func New(db *sql.DB) *Client {
	return &Client{db: db}
}

// Message is one queued payload as read from a queue.
type Message struct {
	ID   int64
	Data []byte
}

// EnsureQueue creates the queue if it does not exist yet. pgmq.create is
// idempotent, so this is safe to run on every startup.
func (c *Client) EnsureQueue(ctx context.Context, queue string) error {
	if _, err := c.db.ExecContext(ctx, "SELECT pgmq.create($1)", queue); err != nil {
		return fmt.Errorf("pgmq: create %s: %w", queue, err)
	}
	return nil
}

// Send enqueues a JSON payload.
func (c *Client) Send(ctx context.Context, queue string, payload []byte) error {
	if _, err := c.db.ExecContext(ctx, "SELECT pgmq.send($1, $2::jsonb, 0)", queue, string(payload)); err != nil {
		return fmt.Errorf("pgmq: send to %s: %w", queue, err)
	}
	return nil
}

// ReadWithPoll reads up to maxMessages, blocking server-side for up to
// timeoutSec seconds when the queue is empty. Messages stay invisible to
// other readers until deleted or their visibility timeout lapses.
func (c *Client) ReadWithPoll(ctx context.Context, queue string, timeoutSec, maxMessages int) ([]*Message, error) {
	rows, err := c.db.QueryContext(ctx,
		"SELECT msg_id, message FROM pgmq.read_with_poll($1, $2, $3)",
		queue, timeoutSec, maxMessages)
	if err != nil {
		return nil, fmt.Errorf("pgmq: read %s: %w", queue, err)
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		m := &Message{}
		if err := rows.Scan(&m.ID, &m.Data); err != nil {
			return nil, fmt.Errorf("pgmq: scan %s: %w", queue, err)
		}
		msgs = append(msgs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgmq: read %s: %w", queue, err)
	}
	return msgs, nil
}

// Delete removes a processed message from the queue.
func (c *Client) Delete(ctx context.Context, queue string, msgID int64) error {
	if _, err := c.db.ExecContext(ctx, "SELECT pgmq.delete($1, $2::bigint)", queue, msgID); err != nil {
		return fmt.Errorf("pgmq: delete %d from %s: %w", msgID, queue, err)
	}
	return nil
}

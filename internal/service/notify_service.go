package service

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/pgmq"
)

// SMSJob is the queue payload consumed by the notifier worker.
type SMSJob struct {
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// Notifier queues an SMS for a tenant. Best-effort by contract: a failed
// enqueue is logged and swallowed so the triggering workflow always commits.
type Notifier interface {
	NotifyUser(ctx context.Context, phone, subject, content string)
}

type queueNotifier struct {
	queue     *pgmq.Client
	queueName string
	logger    zerolog.Logger
}

func NewNotifier(queue *pgmq.Client, queueName string, logger zerolog.Logger) Notifier {
	return &queueNotifier{
		queue:     queue,
		queueName: queueName,
		logger:    logger.With().Str("service", "Notifier").Logger(),
	}
}

func (n *queueNotifier) NotifyUser(ctx context.Context, phone, subject, content string) {
	if phone == "" {
		return
	}
	if len(content) > 100 {
		content = content[:100]
	}
	job := SMSJob{Phone: phone, Message: "TAKWIMU+: " + subject + "\n" + content}
	payload, err := json.Marshal(job)
	if err != nil {
		n.logger.Error().Err(err).Msg("Failed to marshal SMS job")
		return
	}
	if err := n.queue.Send(ctx, n.queueName, payload); err != nil {
		n.logger.Error().Err(err).Str("to", phone).Msg("Failed to enqueue SMS job")
	}
}

// Package notifier drains the SMS outbox queue and delivers messages through
// the SMS provider, with retry/backoff and a dead-letter queue.
package notifier

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/config"
	"github.com/wysanalytics/takwimu-plus/internal/pgmq"
	"github.com/wysanalytics/takwimu-plus/internal/service"
)

// Run starts the SMS notifier worker loop. It blocks until ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger, client *pgmq.Client, sms service.SMSClient) error {
	queue := cfg.SMSQueueName
	dlq := cfg.SMSDeadLetterQueueName

	if err := client.EnsureQueue(ctx, queue); err != nil {
		return err
	}
	if err := client.EnsureQueue(ctx, dlq); err != nil {
		return err
	}
	logger.Info().Str("queue", queue).Msg("Starting SMS notifier")

	for {
		select {
		case <-ctx.Done():
			logger.Info().Msg("Shutting down SMS notifier")
			return nil
		default:
		}

		msgs, err := client.ReadWithPoll(ctx, queue, cfg.SMSPollTimeoutSec, cfg.SMSPollMaxMsg)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info().Msg("Shutting down SMS notifier")
				return nil
			}
			logger.Error().Err(err).Msg("Error reading SMS queue")
			time.Sleep(time.Second)
			continue
		}
		if len(msgs) == 0 {
			continue
		}

		msg := msgs[0]
		logger.Info().Int64("msg_id", msg.ID).Msg("Received SMS job")

		var job service.SMSJob
		if err := json.Unmarshal(msg.Data, &job); err != nil {
			logger.Error().Err(err).Msg("Failed to unmarshal SMS job; deleting message")
			client.Delete(ctx, queue, msg.ID)
			continue
		}

		// Deliver with exponential backoff.
		backoff := time.Duration(cfg.SMSBackoffInitialSec) * time.Second
		var sendErr error
		for attempt := 1; attempt <= cfg.SMSMaxRetries; attempt++ {
			ctxReq, cancel := context.WithTimeout(ctx, 10*time.Second)
			sendErr = sms.Send(ctxReq, job.Phone, job.Message)
			cancel()

			if sendErr == nil {
				break
			}
			logger.Error().Err(sendErr).Int("attempt", attempt).Str("to", job.Phone).
				Msg("SMS delivery failed, retrying")
			time.Sleep(backoff)
			backoff *= 2
			if max := time.Duration(cfg.SMSBackoffMaxSec) * time.Second; backoff > max {
				backoff = max
			}
		}

		if sendErr != nil {
			if err := client.Send(ctx, dlq, msg.Data); err != nil {
				logger.Error().Err(err).Str("dlq", dlq).Msg("Failed to send job to dead-letter queue")
			}
			if err := client.Delete(ctx, queue, msg.ID); err != nil {
				logger.Error().Err(err).Msg("Error deleting SMS message after failure")
			}
			logger.Warn().
				Int("attempts", cfg.SMSMaxRetries).
				Str("to", job.Phone).
				Err(sendErr).
				Msg("Exhausted all SMS retries; moving job to DLQ")
			continue
		}

		if err := client.Delete(ctx, queue, msg.ID); err != nil {
			logger.Error().Err(err).Msg("Error deleting SMS message")
		}
	}
}

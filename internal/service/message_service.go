package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

var ErrMessageNotFound = errors.New("message not found")

type MessageService interface {
	// Tenant side
	Notifications(ctx context.Context, userID int64) (direct, announcements []model.Message, err error)
	MarkRead(ctx context.Context, id, userID int64) error
	SubmitSupport(ctx context.Context, userID int64, category, subject, content string) (*model.Message, error)
	SentMessages(ctx context.Context, userID int64) ([]model.Message, error)
	UnreadCount(ctx context.Context, userID int64) (direct, announcements int, err error)

	// Operator side
	Inbox(ctx context.Context) ([]model.Message, error)
	AdminMarkRead(ctx context.Context, id int64) error
	SendToUser(ctx context.Context, userID int64, subject, content string) (*model.Message, error)
	Announce(ctx context.Context, subject, content string, sendSMS bool) (*model.Message, error)
	Announcements(ctx context.Context) ([]model.Message, error)
}

type messageService struct {
	messages repository.MessageRepository
	users    repository.UserRepository
	activity repository.ActivityLogRepository
	notifier Notifier
	logger   zerolog.Logger
}

func NewMessageService(messages repository.MessageRepository, users repository.UserRepository,
	activity repository.ActivityLogRepository, notifier Notifier, logger zerolog.Logger) MessageService {
	return &messageService{
		messages: messages,
		users:    users,
		activity: activity,
		notifier: notifier,
		logger:   logger.With().Str("service", "MessageService").Logger(),
	}
}

func (s *messageService) Notifications(ctx context.Context, userID int64) ([]model.Message, []model.Message, error) {
	direct, err := s.messages.ListForUser(ctx, userID, model.SenderAdmin)
	if err != nil {
		return nil, nil, fmt.Errorf("listing notifications: %w", err)
	}
	announcements, err := s.messages.ListAnnouncements(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("listing announcements: %w", err)
	}
	return direct, announcements, nil
}

// MarkRead is idempotent. Direct messages must belong to the caller.
// Announcements carry a single shared flag, so any tenant marking one read
// marks it read for everyone.
func (s *messageService) MarkRead(ctx context.Context, id, userID int64) error {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching message: %w", err)
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	if !msg.IsAnnouncement && (msg.UserID == nil || *msg.UserID != userID) {
		return ErrMessageNotFound
	}
	return s.messages.MarkRead(ctx, id)
}

func (s *messageService) SubmitSupport(ctx context.Context, userID int64, category, subject, content string) (*model.Message, error) {
	if category == "" {
		category = "general"
	}
	msg := &model.Message{
		UserID:  &userID,
		Sender:  model.SenderUser,
		Subject: "[" + strings.ToUpper(category) + "] " + subject,
		Content: content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to submit support message")
		return nil, fmt.Errorf("submitting support message: %w", err)
	}
	return msg, nil
}

func (s *messageService) SentMessages(ctx context.Context, userID int64) ([]model.Message, error) {
	msgs, err := s.messages.ListForUser(ctx, userID, model.SenderUser)
	if err != nil {
		return nil, fmt.Errorf("listing sent messages: %w", err)
	}
	return msgs, nil
}

func (s *messageService) UnreadCount(ctx context.Context, userID int64) (int, int, error) {
	direct, err := s.messages.UnreadCountForUser(ctx, userID)
	if err != nil {
		return 0, 0, fmt.Errorf("counting unread: %w", err)
	}
	announcements, err := s.messages.CountAnnouncements(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("counting announcements: %w", err)
	}
	return direct, announcements, nil
}

func (s *messageService) Inbox(ctx context.Context) ([]model.Message, error) {
	msgs, err := s.messages.ListFromUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing inbox: %w", err)
	}
	return msgs, nil
}

func (s *messageService) AdminMarkRead(ctx context.Context, id int64) error {
	msg, err := s.messages.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("fetching message: %w", err)
	}
	if msg == nil {
		return ErrMessageNotFound
	}
	return s.messages.MarkRead(ctx, id)
}

func (s *messageService) SendToUser(ctx context.Context, userID int64, subject, content string) (*model.Message, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching recipient: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if subject == "" {
		subject = "Message from Admin"
	}

	msg := &model.Message{
		UserID:  &userID,
		Sender:  model.SenderAdmin,
		Subject: subject,
		Content: content,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("sending message: %w", err)
	}

	s.notifier.NotifyUser(ctx, user.Phone, subject, content)
	s.logActivity(ctx, "Message Sent", "To: "+user.Email)
	return msg, nil
}

func (s *messageService) Announce(ctx context.Context, subject, content string, sendSMS bool) (*model.Message, error) {
	msg := &model.Message{
		Sender:         model.SenderAdmin,
		Subject:        subject,
		Content:        content,
		IsAnnouncement: true,
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("creating announcement: %w", err)
	}
	s.logActivity(ctx, "Announcement Sent", subject)

	if sendSMS {
		users, err := s.users.ListWithPhones(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("Failed to list users for announcement SMS fan-out")
			return msg, nil
		}
		for _, u := range users {
			s.notifier.NotifyUser(ctx, u.Phone, subject, content)
		}
	}
	return msg, nil
}

func (s *messageService) Announcements(ctx context.Context) ([]model.Message, error) {
	msgs, err := s.messages.ListAnnouncements(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing announcements: %w", err)
	}
	return msgs, nil
}

func (s *messageService) logActivity(ctx context.Context, action, details string) {
	err := s.activity.Insert(ctx, &model.ActivityLog{Action: action, Details: details, AdminAction: true})
	if err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("Failed to write activity log")
	}
}

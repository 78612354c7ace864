package service

import (
	"context"
	"fmt"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

const (
	recentUsersLimit  = 5
	activityListLimit = 50
)

type AdminService interface {
	Summary(ctx context.Context) (*model.AdminSummary, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ActivateUser(ctx context.Context, userID int64) (*model.User, error)
	SuspendUser(ctx context.Context, userID int64) (*model.User, error)
	Activity(ctx context.Context) ([]model.ActivityLog, error)
	ExportUsersCSV(ctx context.Context) ([]byte, error)
	ExportPaymentsCSV(ctx context.Context) ([]byte, error)
}

type adminService struct {
	users            repository.UserRepository
	payments         repository.PaymentRepository
	messages         repository.MessageRepository
	reports          repository.ReportRepository
	activity         repository.ActivityLogRepository
	notifier         Notifier
	subscriptionDays int
	logger           zerolog.Logger
	now              func() time.Time
}

func NewAdminService(users repository.UserRepository, payments repository.PaymentRepository,
	messages repository.MessageRepository, reports repository.ReportRepository,
	activity repository.ActivityLogRepository, notifier Notifier,
	subscriptionDays int, logger zerolog.Logger) AdminService {
	return &adminService{
		users:            users,
		payments:         payments,
		messages:         messages,
		reports:          reports,
		activity:         activity,
		notifier:         notifier,
		subscriptionDays: subscriptionDays,
		logger:           logger.With().Str("service", "AdminService").Logger(),
		now:              func() time.Time { return time.Now().UTC() },
	}
}

func (s *adminService) Summary(ctx context.Context) (*model.AdminSummary, error) {
	now := s.now()

	totalUsers, err := s.users.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting users: %w", err)
	}
	activeUsers, err := s.users.CountByStatus(ctx, model.SubscriptionActive)
	if err != nil {
		return nil, fmt.Errorf("counting active users: %w", err)
	}
	trialUsers, err := s.users.CountByStatus(ctx, model.SubscriptionTrial)
	if err != nil {
		return nil, fmt.Errorf("counting trial users: %w", err)
	}

	pendingPayments, err := s.payments.CountByStatus(ctx, model.PaymentPending)
	if err != nil {
		return nil, fmt.Errorf("counting pending payments: %w", err)
	}
	revenue, err := s.payments.VerifiedRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("summing verified revenue: %w", err)
	}

	today := startOfDay(now)
	todayTotals, err := s.reports.SalesTotalsAllTenantsBetween(ctx, today, now.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("today platform totals: %w", err)
	}

	recent, err := s.users.ListRecent(ctx, recentUsersLimit)
	if err != nil {
		return nil, fmt.Errorf("listing recent users: %w", err)
	}
	unread, err := s.messages.CountUnreadFromUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting unread messages: %w", err)
	}

	return &model.AdminSummary{
		TotalUsers:          totalUsers,
		ActiveSubscriptions: activeUsers,
		TrialUsers:          trialUsers,
		ExpiredUsers:        totalUsers - activeUsers - trialUsers,
		PendingPayments:     pendingPayments,
		TodaySales:          todayTotals.Amount,
		TodayProfit:         todayTotals.Profit,
		TotalRevenue:        revenue,
		RecentUsers:         recent,
		UnreadMessages:      unread,
		GeneratedAt:         now,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]model.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// ActivateUser grants a full subscription window manually, same effect as a
// verified payment.
func (s *adminService) ActivateUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	end := s.now().AddDate(0, 0, s.subscriptionDays)
	if err := s.users.SetSubscription(ctx, userID, model.SubscriptionActive, &end); err != nil {
		return nil, fmt.Errorf("activating user %d: %w", userID, err)
	}
	user.SubscriptionStatus = model.SubscriptionActive
	user.SubscriptionEnd = &end

	s.logActivity(ctx, "User Activated", "Activated "+user.Email)
	s.notifier.NotifyUser(ctx, user.Phone, "Account Activated",
		fmt.Sprintf("Your account has been activated for %d days.", s.subscriptionDays))
	return user, nil
}

// SuspendUser changes the label only. The subscription end date is left
// untouched, so validity keeps following the clock.
func (s *adminService) SuspendUser(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if err := s.users.SetSubscription(ctx, userID, model.SubscriptionSuspended, user.SubscriptionEnd); err != nil {
		return nil, fmt.Errorf("suspending user %d: %w", userID, err)
	}
	user.SubscriptionStatus = model.SubscriptionSuspended

	s.logActivity(ctx, "User Suspended", "Suspended "+user.Email)
	return user, nil
}

func (s *adminService) Activity(ctx context.Context) ([]model.ActivityLog, error) {
	logs, err := s.activity.ListRecent(ctx, activityListLimit)
	if err != nil {
		return nil, fmt.Errorf("listing activity: %w", err)
	}
	return logs, nil
}

type userExportRow struct {
	Business      string `csv:"Business"`
	Email         string `csv:"Email"`
	Phone         string `csv:"Phone"`
	Status        string `csv:"Status"`
	DaysRemaining int    `csv:"Days Remaining"`
	Joined        string `csv:"Joined"`
}

type paymentExportRow struct {
	Date      string `csv:"Date"`
	Business  string `csv:"Business"`
	Email     string `csv:"Email"`
	Reference string `csv:"Reference"`
	Phone     string `csv:"Phone"`
	Amount    string `csv:"Amount"`
	Status    string `csv:"Status"`
}

func (s *adminService) ExportUsersCSV(ctx context.Context) ([]byte, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing users for export: %w", err)
	}

	now := s.now()
	rows := make([]userExportRow, 0, len(users))
	for _, u := range users {
		business := u.BusinessName
		if business == "" {
			business = "N/A"
		}
		rows = append(rows, userExportRow{
			Business:      business,
			Email:         u.Email,
			Phone:         orNA(u.Phone),
			Status:        string(u.SubscriptionStatus),
			DaysRemaining: u.DaysRemainingAt(now),
			Joined:        u.CreatedAt.Format("2006-01-02"),
		})
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("encoding users csv: %w", err)
	}
	return out, nil
}

func (s *adminService) ExportPaymentsCSV(ctx context.Context) ([]byte, error) {
	payments, err := s.payments.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing payments for export: %w", err)
	}

	rows := make([]paymentExportRow, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, paymentExportRow{
			Date:      p.CreatedAt.Format("2006-01-02 15:04"),
			Business:  orNA(p.UserBusiness),
			Email:     orNA(p.UserEmail),
			Reference: orNA(p.TransactionRef),
			Phone:     orNA(p.PayerPhone),
			Amount:    p.Amount.StringFixed(2),
			Status:    string(p.Status),
		})
	}

	out, err := gocsv.MarshalBytes(&rows)
	if err != nil {
		return nil, fmt.Errorf("encoding payments csv: %w", err)
	}
	return out, nil
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func (s *adminService) logActivity(ctx context.Context, action, details string) {
	err := s.activity.Insert(ctx, &model.ActivityLog{Action: action, Details: details, AdminAction: true})
	if err != nil {
		s.logger.Error().Err(err).Str("action", action).Msg("Failed to write activity log")
	}
}

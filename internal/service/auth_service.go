package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
	"github.com/wysanalytics/takwimu-plus/internal/util"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrUserNotFound       = errors.New("user not found")
)

const tokenTTL = 24 * time.Hour

type RegisterInput struct {
	Email           string
	Password        string
	ConfirmPassword string
	FirstName       string
	LastName        string
	BusinessName    string
	Phone           string
	Language        string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*model.User, string, error)
	// Login authenticates a tenant. When secretKey matches the configured
	// operator secret, the credentials are checked against the operator
	// account instead and an admin token is issued with a nil user.
	Login(ctx context.Context, email, password, secretKey string) (*model.User, string, error)
	Me(ctx context.Context, userID int64) (*model.User, error)
}

type authService struct {
	userRepo       repository.UserRepository
	jwtSecret      string
	adminEmail     string
	adminPassword  string
	adminSecretKey string
	trialDays      int
	logger         zerolog.Logger
	now            func() time.Time
}

func NewAuthService(userRepo repository.UserRepository, jwtSecret, adminEmail, adminPassword, adminSecretKey string, trialDays int, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:       userRepo,
		jwtSecret:      jwtSecret,
		adminEmail:     adminEmail,
		adminPassword:  adminPassword,
		adminSecretKey: adminSecretKey,
		trialDays:      trialDays,
		logger:         logger.With().Str("service", "AuthService").Logger(),
		now:            func() time.Time { return time.Now().UTC() },
	}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*model.User, string, error) {
	if in.Password != in.ConfirmPassword {
		return nil, "", ErrPasswordMismatch
	}

	existing, err := s.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, "", fmt.Errorf("checking email: %w", err)
	}
	if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", fmt.Errorf("hashing password: %w", err)
	}

	language := in.Language
	if language == "" {
		language = "en"
	}

	trialEnd := s.now().AddDate(0, 0, s.trialDays)
	user := &model.User{
		Email:              in.Email,
		PasswordHash:       string(hash),
		FirstName:          in.FirstName,
		LastName:           in.LastName,
		BusinessName:       in.BusinessName,
		Phone:              in.Phone,
		Language:           language,
		SubscriptionStatus: model.SubscriptionTrial,
		SubscriptionEnd:    &trialEnd,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		s.logger.Error().Err(err).Str("email", in.Email).Msg("Failed to create user")
		return nil, "", fmt.Errorf("creating user: %w", err)
	}

	token, err := util.IssueJWT(s.jwtSecret, user.ID, user.Email, util.RoleTenant, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Login(ctx context.Context, email, password, secretKey string) (*model.User, string, error) {
	if secretKey != "" && secretKey == s.adminSecretKey {
		if email != s.adminEmail || password != s.adminPassword {
			return nil, "", ErrInvalidCredentials
		}
		token, err := util.IssueJWT(s.jwtSecret, 0, email, util.RoleAdmin, tokenTTL)
		if err != nil {
			return nil, "", fmt.Errorf("issuing admin token: %w", err)
		}
		return nil, token, nil
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := util.IssueJWT(s.jwtSecret, user.ID, user.Email, util.RoleTenant, tokenTTL)
	if err != nil {
		return nil, "", fmt.Errorf("issuing token: %w", err)
	}
	return user, token, nil
}

func (s *authService) Me(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching user: %w", err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

package service

import (
	"context"
	"errors"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/ratelimit"
)

var (
	ErrInvalidBarcode = errors.New("barcode must be 8 to 14 digits")
	ErrRateLimited    = errors.New("barcode lookup rate limit exceeded")
)

var barcodePattern = regexp.MustCompile(`^[0-9]{8,14}$`)

type BarcodeService interface {
	Lookup(ctx context.Context, userID int64, code string) (*BarcodeResult, error)
}

type barcodeService struct {
	client  BarcodeClient
	limiter *ratelimit.Limiter
	logger  zerolog.Logger
}

func NewBarcodeService(client BarcodeClient, limiter *ratelimit.Limiter, logger zerolog.Logger) BarcodeService {
	return &barcodeService{
		client:  client,
		limiter: limiter,
		logger:  logger.With().Str("service", "BarcodeService").Logger(),
	}
}

// Lookup validates the code format and consumes rate-limit budget before any
// outbound call is made.
func (s *barcodeService) Lookup(ctx context.Context, userID int64, code string) (*BarcodeResult, error) {
	if !barcodePattern.MatchString(code) {
		return nil, ErrInvalidBarcode
	}
	if !s.limiter.Allow(userID) {
		s.logger.Warn().Int64("user_id", userID).Msg("Barcode lookup rate limited")
		return nil, ErrRateLimited
	}

	result, err := s.client.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	return result, nil
}

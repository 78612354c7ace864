package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

var (
	ErrNoSaleItems     = errors.New("a sale needs at least one item")
	ErrBadItemQuantity = errors.New("item quantity must be positive")
)

// SaleLine is one requested line item. Prices are the ones the cashier
// charged; they are trusted as-is so concurrent product price edits never
// alter an in-flight sale.
type SaleLine struct {
	ProductID    int64
	Quantity     int
	BuyingPrice  decimal.Decimal
	SellingPrice decimal.Decimal
}

type SaleService interface {
	Create(ctx context.Context, userID int64, lines []SaleLine, paymentMethod string) (*model.Sale, error)
	ListRecent(ctx context.Context, userID int64) ([]model.Sale, error)
}

type saleService struct {
	repo   repository.SaleRepository
	logger zerolog.Logger
}

func NewSaleService(repo repository.SaleRepository, logger zerolog.Logger) SaleService {
	return &saleService{
		repo:   repo,
		logger: logger.With().Str("service", "SaleService").Logger(),
	}
}

const recentSalesLimit = 50

func (s *saleService) Create(ctx context.Context, userID int64, lines []SaleLine, paymentMethod string) (*model.Sale, error) {
	if len(lines) == 0 {
		return nil, ErrNoSaleItems
	}
	if paymentMethod == "" {
		paymentMethod = "cash"
	}

	totalAmount := decimal.Zero
	totalCost := decimal.Zero
	items := make([]model.SaleItem, 0, len(lines))
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrBadItemQuantity
		}
		item := model.SaleItem{
			ProductID:    line.ProductID,
			Quantity:     line.Quantity,
			BuyingPrice:  line.BuyingPrice,
			SellingPrice: line.SellingPrice,
		}
		totalAmount = totalAmount.Add(item.LineTotal())
		totalCost = totalCost.Add(item.LineCost())
		items = append(items, item)
	}

	sale := &model.Sale{
		UserID:        userID,
		TotalAmount:   totalAmount,
		TotalCost:     totalCost,
		Profit:        totalAmount.Sub(totalCost),
		PaymentMethod: paymentMethod,
	}
	if err := s.repo.CreateSale(ctx, sale, items); err != nil {
		s.logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to record sale")
		return nil, fmt.Errorf("recording sale: %w", err)
	}
	return sale, nil
}

func (s *saleService) ListRecent(ctx context.Context, userID int64) ([]model.Sale, error) {
	sales, err := s.repo.ListRecent(ctx, userID, recentSalesLimit)
	if err != nil {
		return nil, fmt.Errorf("listing sales: %w", err)
	}
	return sales, nil
}

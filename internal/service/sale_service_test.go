package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

func TestCreateSaleTotals(t *testing.T) {
	repo := &fakeSaleRepo{}
	svc := NewSaleService(repo, zerolog.Nop())

	lines := []SaleLine{
		{ProductID: 1, Quantity: 2, BuyingPrice: decimal.NewFromInt(1000), SellingPrice: decimal.NewFromInt(1500)},
		{ProductID: 2, Quantity: 1, BuyingPrice: decimal.NewFromInt(500), SellingPrice: decimal.NewFromInt(800)},
	}
	sale, err := svc.Create(context.Background(), 7, lines, "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if want := decimal.NewFromInt(3800); !sale.TotalAmount.Equal(want) {
		t.Errorf("total_amount = %s, want %s", sale.TotalAmount, want)
	}
	if want := decimal.NewFromInt(2500); !sale.TotalCost.Equal(want) {
		t.Errorf("total_cost = %s, want %s", sale.TotalCost, want)
	}
	if want := decimal.NewFromInt(1300); !sale.Profit.Equal(want) {
		t.Errorf("profit = %s, want %s", sale.Profit, want)
	}
	if sale.PaymentMethod != "cash" {
		t.Errorf("payment_method = %q, want default cash", sale.PaymentMethod)
	}
	if len(sale.Items) != 2 {
		t.Fatalf("items = %d, want 2", len(sale.Items))
	}
}

func TestCreateSaleAdjustsStock(t *testing.T) {
	products := newFakeProductRepo()
	repo := &fakeSaleRepo{products: products}
	svc := NewSaleService(repo, zerolog.Nop())
	ctx := context.Background()

	plenty := &model.Product{UserID: 7, Name: "Soda", Stock: 5}
	scarce := &model.Product{UserID: 7, Name: "Bread", Stock: 1}
	foreign := &model.Product{UserID: 8, Name: "Soap", Stock: 7}
	products.Create(ctx, plenty)
	products.Create(ctx, scarce)
	products.Create(ctx, foreign)

	lines := []SaleLine{
		{ProductID: plenty.ID, Quantity: 3, BuyingPrice: decimal.NewFromInt(300), SellingPrice: decimal.NewFromInt(500)},
		{ProductID: scarce.ID, Quantity: 3, BuyingPrice: decimal.NewFromInt(600), SellingPrice: decimal.NewFromInt(900)},
		{ProductID: foreign.ID, Quantity: 2, BuyingPrice: decimal.NewFromInt(200), SellingPrice: decimal.NewFromInt(400)},
		{ProductID: 999, Quantity: 1, BuyingPrice: decimal.NewFromInt(50), SellingPrice: decimal.NewFromInt(100)},
	}
	sale, err := svc.Create(ctx, 7, lines, "cash")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if len(sale.Items) != 4 {
		t.Fatalf("items = %d, want all 4 lines recorded", len(sale.Items))
	}

	if plenty.Stock != 2 {
		t.Errorf("stock = %d, want 2 after selling 3 of 5", plenty.Stock)
	}
	// Overselling has no floor; the negative stock persists.
	if scarce.Stock != -2 {
		t.Errorf("stock = %d, want -2 after overselling", scarce.Stock)
	}
	// Another tenant's product is left untouched without failing the sale.
	if foreign.Stock != 7 {
		t.Errorf("foreign product stock = %d, want unchanged 7", foreign.Stock)
	}
}

func TestCreateSaleRejectsEmptyAndBadQuantity(t *testing.T) {
	svc := NewSaleService(&fakeSaleRepo{}, zerolog.Nop())
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, nil, "cash"); !errors.Is(err, ErrNoSaleItems) {
		t.Errorf("empty sale err = %v, want ErrNoSaleItems", err)
	}

	lines := []SaleLine{{ProductID: 1, Quantity: 0, SellingPrice: decimal.NewFromInt(100)}}
	if _, err := svc.Create(ctx, 1, lines, "cash"); !errors.Is(err, ErrBadItemQuantity) {
		t.Errorf("zero quantity err = %v, want ErrBadItemQuantity", err)
	}
}

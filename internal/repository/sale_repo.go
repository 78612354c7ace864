package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type SaleRepository interface {
	// CreateSale persists the sale, its line items, and the stock decrements
	// as one transaction. Stock updates for products that do not exist or
	// belong to another tenant match zero rows and are skipped without error.
	CreateSale(ctx context.Context, sale *model.Sale, items []model.SaleItem) error
	ListRecent(ctx context.Context, userID int64, limit int) ([]model.Sale, error)
}

type saleRepo struct {
	db *sql.DB
}

func NewSaleRepo(db *sql.DB) SaleRepository {
	return &saleRepo{db: db}
}

func (r *saleRepo) CreateSale(ctx context.Context, sale *model.Sale, items []model.SaleItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning sale transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO sales (user_id, total_amount, total_cost, profit, payment_method)
         VALUES ($1, $2, $3, $4, $5)
         RETURNING id, created_at`,
		sale.UserID, sale.TotalAmount, sale.TotalCost, sale.Profit, sale.PaymentMethod,
	).Scan(&sale.ID, &sale.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting sale: %w", err)
	}

	for i := range items {
		item := &items[i]
		item.SaleID = sale.ID
		err = tx.QueryRowContext(ctx,
			`INSERT INTO sale_items (sale_id, product_id, quantity, buying_price, selling_price)
             VALUES ($1, $2, $3, $4, $5)
             RETURNING id`,
			item.SaleID, item.ProductID, item.Quantity, item.BuyingPrice, item.SellingPrice,
		).Scan(&item.ID)
		if err != nil {
			return fmt.Errorf("inserting sale item: %w", err)
		}

		// No floor on stock: overselling goes negative on purpose. The
		// user_id filter makes foreign or missing products a no-op.
		_, err = tx.ExecContext(ctx,
			`UPDATE products SET stock = stock - $1 WHERE id = $2 AND user_id = $3`,
			item.Quantity, item.ProductID, sale.UserID)
		if err != nil {
			return fmt.Errorf("decrementing stock for product %d: %w", item.ProductID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing sale: %w", err)
	}
	sale.Items = items
	return nil
}

func (r *saleRepo) ListRecent(ctx context.Context, userID int64, limit int) ([]model.Sale, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, user_id, total_amount, total_cost, profit, payment_method, created_at
         FROM sales WHERE user_id=$1 ORDER BY created_at DESC LIMIT $2`,
		userID, limit)
	if err != nil {
		return nil, fmt.Errorf("querying sales: %w", err)
	}
	defer rows.Close()

	var sales []model.Sale
	index := map[int64]int{}
	var ids []int64
	for rows.Next() {
		var s model.Sale
		if err := rows.Scan(&s.ID, &s.UserID, &s.TotalAmount, &s.TotalCost,
			&s.Profit, &s.PaymentMethod, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning sale: %w", err)
		}
		s.Items = []model.SaleItem{}
		index[s.ID] = len(sales)
		ids = append(ids, s.ID)
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(sales) == 0 {
		return sales, nil
	}

	// Assemble the item snapshots from the normalized rows. The product name
	// comes from a left join so lines whose product was deleted still render.
	itemRows, err := r.db.QueryContext(ctx,
		`SELECT si.id, si.sale_id, si.product_id, COALESCE(p.name, ''),
                si.quantity, si.buying_price, si.selling_price
         FROM sale_items si
         LEFT JOIN products p ON p.id = si.product_id
         WHERE si.sale_id = ANY($1)
         ORDER BY si.id`, ids)
	if err != nil {
		return nil, fmt.Errorf("querying sale items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var item model.SaleItem
		if err := itemRows.Scan(&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.BuyingPrice, &item.SellingPrice); err != nil {
			return nil, fmt.Errorf("scanning sale item: %w", err)
		}
		if i, ok := index[item.SaleID]; ok {
			sales[i].Items = append(sales[i].Items, item)
		}
	}
	return sales, itemRows.Err()
}

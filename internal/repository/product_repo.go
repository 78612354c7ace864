package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/wysanalytics/takwimu-plus/internal/model"
)

type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) error
	GetByID(ctx context.Context, id, userID int64) (*model.Product, error)
	List(ctx context.Context, userID int64) ([]model.Product, error)
	ListLowStock(ctx context.Context, userID int64, threshold int) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	SetPhotoPath(ctx context.Context, id, userID int64, path string) error
	Delete(ctx context.Context, id, userID int64) error
	Count(ctx context.Context, userID int64) (int, error)
}

type productRepo struct {
	db *sql.DB
}

func NewProductRepo(db *sql.DB) ProductRepository {
	return &productRepo{db: db}
}

const productColumns = `id, user_id, name, model_number, barcode, buying_price,
        selling_price, stock, category, photo_path, created_at`

func scanProduct(row interface{ Scan(...any) error }) (*model.Product, error) {
	var p model.Product
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.ModelNumber, &p.Barcode,
		&p.BuyingPrice, &p.SellingPrice, &p.Stock, &p.Category, &p.PhotoPath, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *productRepo) Create(ctx context.Context, p *model.Product) error {
	query := `INSERT INTO products (user_id, name, model_number, barcode, buying_price,
                selling_price, stock, category, photo_path)
              VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
              RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		p.UserID, p.Name, p.ModelNumber, p.Barcode, p.BuyingPrice,
		p.SellingPrice, p.Stock, p.Category, p.PhotoPath,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting product: %w", err)
	}
	return nil
}

func (r *productRepo) GetByID(ctx context.Context, id, userID int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id=$1 AND user_id=$2`
	p, err := scanProduct(r.db.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return p, err
}

func (r *productRepo) List(ctx context.Context, userID int64) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE user_id=$1 ORDER BY created_at DESC`
	return r.queryProducts(ctx, query, userID)
}

func (r *productRepo) ListLowStock(ctx context.Context, userID int64, threshold int) ([]model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
              WHERE user_id=$1 AND stock <= $2 ORDER BY stock ASC`
	return r.queryProducts(ctx, query, userID, threshold)
}

func (r *productRepo) queryProducts(ctx context.Context, query string, args ...any) ([]model.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning product: %w", err)
		}
		products = append(products, *p)
	}
	return products, rows.Err()
}

func (r *productRepo) Update(ctx context.Context, p *model.Product) error {
	query := `UPDATE products
              SET name=$1, model_number=$2, barcode=$3, buying_price=$4,
                  selling_price=$5, stock=$6, category=$7
              WHERE id=$8 AND user_id=$9`
	res, err := r.db.ExecContext(ctx, query,
		p.Name, p.ModelNumber, p.Barcode, p.BuyingPrice,
		p.SellingPrice, p.Stock, p.Category, p.ID, p.UserID)
	if err != nil {
		return fmt.Errorf("updating product %d: %w", p.ID, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *productRepo) SetPhotoPath(ctx context.Context, id, userID int64, path string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET photo_path=$1 WHERE id=$2 AND user_id=$3`, path, id, userID)
	if err != nil {
		return fmt.Errorf("updating photo path for product %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *productRepo) Delete(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM products WHERE id=$1 AND user_id=$2`, id, userID)
	if err != nil {
		return fmt.Errorf("deleting product %d: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *productRepo) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM products WHERE user_id=$1`, userID).Scan(&n)
	return n, err
}

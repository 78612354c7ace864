package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/model"
	"github.com/wysanalytics/takwimu-plus/internal/repository"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrPhotosDisabled  = errors.New("photo storage is not configured")
)

type ProductService interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	Get(ctx context.Context, id, userID int64) (*model.Product, error)
	List(ctx context.Context, userID int64) ([]model.Product, error)
	Update(ctx context.Context, p *model.Product) error
	Delete(ctx context.Context, id, userID int64) error

	// PhotoUploadURL returns a presigned PUT URL the client uploads the
	// product photo to, and records the storage path on the product.
	PhotoUploadURL(ctx context.Context, id, userID int64) (string, error)
}

type productService struct {
	repo          repository.ProductRepository
	presignClient *s3.PresignClient
	bucketName    string
	logger        zerolog.Logger
}

// NewProductService creates a ProductService. s3Client may be nil when photo
// storage is not configured; photo upload then returns ErrPhotosDisabled.
func NewProductService(repo repository.ProductRepository, s3Client *s3.Client, bucketName string, logger zerolog.Logger) ProductService {
	s := &productService{
		repo:       repo,
		bucketName: bucketName,
		logger:     logger.With().Str("service", "ProductService").Logger(),
	}
	if s3Client != nil {
		s.presignClient = s3.NewPresignClient(s3Client)
	}
	return s
}

func (s *productService) Create(ctx context.Context, p *model.Product) (*model.Product, error) {
	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error().Err(err).Int64("user_id", p.UserID).Msg("Failed to create product")
		return nil, fmt.Errorf("creating product: %w", err)
	}
	return p, nil
}

func (s *productService) Get(ctx context.Context, id, userID int64) (*model.Product, error) {
	product, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return nil, fmt.Errorf("fetching product: %w", err)
	}
	if product == nil {
		return nil, ErrProductNotFound
	}
	return product, nil
}

func (s *productService) List(ctx context.Context, userID int64) ([]model.Product, error) {
	products, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	return products, nil
}

func (s *productService) Update(ctx context.Context, p *model.Product) error {
	err := s.repo.Update(ctx, p)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("updating product: %w", err)
	}
	return nil
}

func (s *productService) Delete(ctx context.Context, id, userID int64) error {
	err := s.repo.Delete(ctx, id, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrProductNotFound
	}
	if err != nil {
		return fmt.Errorf("deleting product: %w", err)
	}
	return nil
}

func (s *productService) PhotoUploadURL(ctx context.Context, id, userID int64) (string, error) {
	if s.presignClient == nil {
		return "", ErrPhotosDisabled
	}

	product, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		return "", fmt.Errorf("fetching product: %w", err)
	}
	if product == nil {
		return "", ErrProductNotFound
	}

	storagePath := fmt.Sprintf("products/%d/%d/photo.jpg", userID, id)
	req, err := s.presignClient.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(storagePath),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		s.logger.Error().Err(err).Int64("product_id", id).Msg("Failed to presign photo upload")
		return "", fmt.Errorf("presigning photo upload: %w", err)
	}

	if err := s.repo.SetPhotoPath(ctx, id, userID, storagePath); err != nil {
		return "", fmt.Errorf("recording photo path: %w", err)
	}
	return req.URL, nil
}

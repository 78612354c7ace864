package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var (
	ErrBarcodeNotFound = errors.New("barcode not found")
	ErrLookupTimeout   = errors.New("barcode lookup timed out")
)

// BarcodeResult is what a lookup collaborator knows about a product.
type BarcodeResult struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
	ImageURL string `json:"image_url"`
}

// BarcodeClient resolves a barcode against external catalogs. A timeout is
// surfaced as ErrLookupTimeout, distinct from ErrBarcodeNotFound.
type BarcodeClient interface {
	Lookup(ctx context.Context, code string) (*BarcodeResult, error)
}

// httpBarcodeClient tries the open food database first, then the fallback
// product catalog.
type httpBarcodeClient struct {
	foodBaseURL    string
	catalogBaseURL string
	client         *http.Client
	logger         zerolog.Logger
}

func NewBarcodeClient(foodBaseURL, catalogBaseURL string, timeout time.Duration, logger zerolog.Logger) BarcodeClient {
	return &httpBarcodeClient{
		foodBaseURL:    strings.TrimRight(foodBaseURL, "/"),
		catalogBaseURL: strings.TrimRight(catalogBaseURL, "/"),
		client:         &http.Client{Timeout: timeout},
		logger:         logger.With().Str("service", "BarcodeClient").Logger(),
	}
}

func (c *httpBarcodeClient) Lookup(ctx context.Context, code string) (*BarcodeResult, error) {
	result, err := c.lookupFood(ctx, code)
	if err == nil {
		return result, nil
	}
	if errors.Is(err, ErrLookupTimeout) {
		return nil, err
	}
	if !errors.Is(err, ErrBarcodeNotFound) {
		c.logger.Warn().Err(err).Str("code", code).Msg("Food database lookup failed, trying catalog")
	}
	return c.lookupCatalog(ctx, code)
}

func (c *httpBarcodeClient) lookupFood(ctx context.Context, code string) (*BarcodeResult, error) {
	var payload struct {
		Status  int `json:"status"`
		Product struct {
			ProductName string `json:"product_name"`
			Categories  string `json:"categories"`
			Brands      string `json:"brands"`
			ImageURL    string `json:"image_url"`
		} `json:"product"`
	}
	endpoint := fmt.Sprintf("%s/api/v0/product/%s.json", c.foodBaseURL, code)
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if payload.Status != 1 || payload.Product.ProductName == "" {
		return nil, ErrBarcodeNotFound
	}
	return &BarcodeResult{
		Name:     payload.Product.ProductName,
		Category: firstSegment(payload.Product.Categories),
		Brand:    firstSegment(payload.Product.Brands),
		ImageURL: payload.Product.ImageURL,
	}, nil
}

func (c *httpBarcodeClient) lookupCatalog(ctx context.Context, code string) (*BarcodeResult, error) {
	var payload struct {
		Code  string `json:"code"`
		Items []struct {
			Title    string   `json:"title"`
			Category string   `json:"category"`
			Brand    string   `json:"brand"`
			Images   []string `json:"images"`
		} `json:"items"`
	}
	endpoint := fmt.Sprintf("%s/prod/trial/lookup?upc=%s", c.catalogBaseURL, code)
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}
	if len(payload.Items) == 0 {
		return nil, ErrBarcodeNotFound
	}
	item := payload.Items[0]
	result := &BarcodeResult{
		Name:     item.Title,
		Category: item.Category,
		Brand:    item.Brand,
	}
	if len(item.Images) > 0 {
		result.ImageURL = item.Images[0]
	}
	return result, nil
}

func (c *httpBarcodeClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("creating lookup request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) && urlErr.Timeout() {
			return ErrLookupTimeout
		}
		if errors.Is(err, context.DeadlineExceeded) {
			return ErrLookupTimeout
		}
		return fmt.Errorf("calling lookup endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrBarcodeNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("lookup endpoint returned status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding lookup response: %w", err)
	}
	return nil
}

// firstSegment trims a comma-separated taxonomy down to its first entry.
func firstSegment(s string) string {
	if i := strings.Index(s, ","); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/wysanalytics/takwimu-plus/internal/ratelimit"
)

type recordingBarcodeClient struct {
	calls  int
	result *BarcodeResult
	err    error
}

func (c *recordingBarcodeClient) Lookup(_ context.Context, _ string) (*BarcodeResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.result, nil
}

func TestLookupValidatesFormatBeforeOutboundCall(t *testing.T) {
	tests := []struct {
		name string
		code string
		ok   bool
	}{
		{"too short", "1234567", false},
		{"too long", "123456789012345", false},
		{"letters", "12345abc", false},
		{"eight digits", "12345678", true},
		{"fourteen digits", "12345678901234", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := &recordingBarcodeClient{result: &BarcodeResult{Name: "Soda"}}
			svc := NewBarcodeService(client, ratelimit.New(10, time.Minute), zerolog.Nop())

			_, err := svc.Lookup(context.Background(), 1, tc.code)
			if tc.ok {
				if err != nil {
					t.Fatalf("Lookup(%q): %v", tc.code, err)
				}
				if client.calls != 1 {
					t.Errorf("calls = %d, want 1", client.calls)
				}
				return
			}
			if !errors.Is(err, ErrInvalidBarcode) {
				t.Errorf("Lookup(%q) err = %v, want ErrInvalidBarcode", tc.code, err)
			}
			if client.calls != 0 {
				t.Errorf("malformed code reached the outbound client (%d calls)", client.calls)
			}
		})
	}
}

func TestLookupRateLimitConsumedBeforeOutboundCall(t *testing.T) {
	client := &recordingBarcodeClient{result: &BarcodeResult{Name: "Soda"}}
	svc := NewBarcodeService(client, ratelimit.New(2, time.Minute), zerolog.Nop())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Lookup(ctx, 1, "12345678"); err != nil {
			t.Fatalf("lookup %d: %v", i, err)
		}
	}
	_, err := svc.Lookup(ctx, 1, "12345678")
	if !errors.Is(err, ErrRateLimited) {
		t.Fatalf("err = %v, want ErrRateLimited", err)
	}
	if client.calls != 2 {
		t.Errorf("limited request reached the outbound client (%d calls)", client.calls)
	}

	// Another tenant has its own budget.
	if _, err := svc.Lookup(ctx, 2, "12345678"); err != nil {
		t.Errorf("other tenant lookup: %v", err)
	}
}

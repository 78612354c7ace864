package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// SMSClient delivers a text message. Implementations are fire-and-forget
// collaborators: callers log failures but never surface them.
type SMSClient interface {
	Send(ctx context.Context, phone, message string) error
}

// africasTalkingClient posts to the Africa's Talking messaging API. With no
// API key configured it runs in mock mode and only logs.
type africasTalkingClient struct {
	baseURL  string
	apiKey   string
	username string
	senderID string
	client   *http.Client
	logger   zerolog.Logger
}

func NewSMSClient(baseURL, apiKey, username, senderID string, logger zerolog.Logger) SMSClient {
	return &africasTalkingClient{
		baseURL:  strings.TrimRight(baseURL, "/"),
		apiKey:   apiKey,
		username: username,
		senderID: senderID,
		client:   &http.Client{Timeout: 10 * time.Second},
		logger:   logger.With().Str("service", "SMSClient").Logger(),
	}
}

func (c *africasTalkingClient) Send(ctx context.Context, phone, message string) error {
	if c.apiKey == "" {
		c.logger.Info().Str("to", phone).Str("message", message).Msg("SMS mock mode, not sending")
		return nil
	}

	form := url.Values{}
	form.Set("username", c.username)
	form.Set("to", phone)
	form.Set("message", message)
	form.Set("from", c.senderID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/messaging", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating SMS request: %w", err)
	}
	req.Header.Set("apiKey", c.apiKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("calling SMS provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("SMS provider returned status %d", resp.StatusCode)
	}
	return nil
}

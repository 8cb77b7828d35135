// Package mailer wraps the transactional email provider's HTTP API behind
// the dispatch.Sender capability. It is used both by the newsletter dispatch
// loop and for OTP delivery.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
)

// Config carries all provider settings. It is passed at construction time;
// the client never reads the environment.
type Config struct {
	BaseURL     string
	APIKey      string
	FromAddress string
	FromName    string
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is the transactional email provider adapter.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates an email adapter from an explicit configuration.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: hc}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type sendResponse struct {
	ID string `json:"id"`
}

// Send submits one email. Any transport error or non-2xx provider response is
// a failure; on success the provider's message ID is returned.
func (c *Client) Send(ctx context.Context, target string, msg dispatch.Message) (string, error) {
	payload := sendRequest{
		From:    formatFrom(c.cfg.FromAddress, c.cfg.FromName),
		To:      []string{target},
		Subject: msg.Subject,
		HTML:    msg.Body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+"/emails", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Provider error payloads are preserved opaquely.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("provider returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}

	return result.ID, nil
}

func formatFrom(address, name string) string {
	if name == "" {
		return address
	}
	return name + " <" + address + ">"
}

// Package whatsapp wraps the WhatsApp Cloud API behind the dispatch.Sender
// capability and exposes the registered-number metadata probe used by the
// admin configuration check.
package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
	"unicode"

	"github.com/venturescope/venturescope-backend/internal/dispatch"
)

// Config carries all provider settings, passed at construction time.
type Config struct {
	BaseURL       string
	AccessToken   string
	PhoneNumberID string
	// CountryCode is prepended when a submitted number has exactly 10 digits.
	CountryCode string
	// HTTPClient overrides the default transport, mainly for tests.
	HTTPClient *http.Client
}

// Client is the WhatsApp provider adapter.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// New creates a WhatsApp adapter from an explicit configuration.
func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: hc}
}

// FormatNumber normalizes a raw phone number: every non-digit is stripped and
// the configured country code is prepended to bare 10-digit numbers.
func (c *Client) FormatNumber(raw string) string {
	var digits strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			digits.WriteRune(r)
		}
	}
	number := digits.String()
	if len(number) == 10 {
		return c.cfg.CountryCode + number
	}
	return number
}

type textPayload struct {
	Body string `json:"body"`
}

type sendRequest struct {
	MessagingProduct string      `json:"messaging_product"`
	To               string      `json:"to"`
	Type             string      `json:"type"`
	Text             textPayload `json:"text"`
}

type sendResponse struct {
	Messages []struct {
		ID string `json:"id"`
	} `json:"messages"`
}

// Send submits one text message to the given phone number. Provider errors
// (invalid number, auth failure, template or session policy rejections) come
// back as opaque JSON payloads and are surfaced verbatim in the error.
func (c *Client) Send(ctx context.Context, target string, msg dispatch.Message) (string, error) {
	payload := sendRequest{
		MessagingProduct: "whatsapp",
		To:               c.FormatNumber(target),
		Type:             "text",
		Text:             textPayload{Body: msg.Body},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.cfg.BaseURL, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("provider returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var result sendResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(result.Messages) == 0 {
		return "", fmt.Errorf("provider accepted request but returned no message id")
	}

	return result.Messages[0].ID, nil
}

// PhoneNumberInfo is the provider's registered-number metadata.
type PhoneNumberInfo struct {
	ID                 string `json:"id"`
	VerifiedName       string `json:"verified_name"`
	DisplayPhoneNumber string `json:"display_phone_number"`
	QualityRating      string `json:"quality_rating"`
}

// GetPhoneNumberInfo fetches metadata for the configured sender number. Used
// by the admin configuration-status check, not by the dispatch hot path.
func (c *Client) GetPhoneNumberInfo(ctx context.Context) (*PhoneNumberInfo, error) {
	url := fmt.Sprintf("%s/%s", c.cfg.BaseURL, c.cfg.PhoneNumberID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.cfg.AccessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("provider returned HTTP %d: %s", resp.StatusCode, string(body))
	}

	var info PhoneNumberInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &info, nil
}

// compile-time check that the adapter satisfies the dispatch boundary
var _ dispatch.Sender = (*Client)(nil)

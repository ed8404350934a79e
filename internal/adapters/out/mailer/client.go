// Package mailer implements the notification transport against the mail
// provider's REST API. The client is deliberately thin: it sends one message
// per call and reports provider rejections as errors, leaving retry decisions
// to the dispatcher.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"storefront/internal/core/ports"
)

// DefaultBaseURL is the mail provider's API endpoint.
const DefaultBaseURL = "https://api.mail.storefront.example"

const sendTimeout = 10 * time.Second

// Client is a ports.NotificationTransport over the provider's HTTP API.
type Client struct {
	baseURL string
	apiKey  string
	from    string
	httpc   *http.Client
}

// NewClient creates a transport client. baseURL may be empty to use the
// provider's production endpoint.
func NewClient(baseURL, apiKey, from string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		from:    from,
		httpc:   &http.Client{Timeout: sendTimeout},
	}
}

type sendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
	ReplyTo string   `json:"reply_to,omitempty"`
	Tags    []string `json:"tags,omitempty"`
}

type sendResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// Send implements ports.NotificationTransport.
func (c *Client) Send(ctx context.Context, email ports.OutboundEmail) (string, error) {
	payload, err := json.Marshal(sendRequest{
		From:    c.from,
		To:      email.To,
		Subject: email.Subject,
		HTML:    email.HTML,
		ReplyTo: email.ReplyTo,
		Tags:    email.Tags,
	})
	if err != nil {
		return "", fmt.Errorf("encode send request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/emails", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("mail provider request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("read mail provider response: %w", err)
	}

	var decoded sendResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return "", fmt.Errorf("mail provider returned status %d with unreadable body", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		if decoded.Error != "" {
			return "", fmt.Errorf("mail provider rejected message: %s", decoded.Error)
		}
		return "", fmt.Errorf("mail provider returned status %d", resp.StatusCode)
	}

	if decoded.ID == "" {
		return "", fmt.Errorf("mail provider accepted message without an id")
	}
	return decoded.ID, nil
}

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

type Message struct {
	Content string  `json:"content,omitempty"`
	Embeds  []Embed `json:"embeds"`
}

type Embed struct {
	Type   string       `json:"type"`
	Title  string       `json:"title"`
	Fields []EmbedField `json:"fields"`
}

type EmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// WebhookClient posts booking events to a Discord-compatible webhook.
type WebhookClient interface {
	SendMessage(ctx context.Context, message Message) error
}

type Client struct {
	webhookURL string
	client     *http.Client
}

func NewClient(webhookURL string) *Client {
	return &Client{
		webhookURL: webhookURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

func (c *Client) SendMessage(ctx context.Context, message Message) error {
	if len(strings.TrimSpace(c.webhookURL)) == 0 {
		return errors.New("webhook URL is not configured")
	}

	body, err := json.Marshal(message)

	if err != nil {
		return fmt.Errorf("failed to marshal body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.webhookURL, bytes.NewReader(body))

	if err != nil {
		return fmt.Errorf("failed to create new request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(req)

	if err != nil {
		return fmt.Errorf("failed to post webhook message: %w", err)
	}

	defer res.Body.Close()

	if res.StatusCode >= 300 {
		payload, _ := io.ReadAll(res.Body)
		return fmt.Errorf("webhook responded with %v: %v", res.StatusCode, string(payload))
	}

	return nil
}

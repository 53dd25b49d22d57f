package messaging

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
)

// Client posts messages to a group chat through a bot endpoint.
type Client struct {
	baseURL string
	botID   string
	httpc   *http.Client
}

// New creates a messaging client for the given bot.
func New(baseURL, botID string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		botID:   botID,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// SendMessage posts one text message to the group. Fails on non-2xx status.
func (c *Client) SendMessage(ctx context.Context, text string) error {
	payload, err := json.Marshal(map[string]string{
		"bot_id": c.botID,
		"text":   text,
	})
	if err != nil {
		return fmt.Errorf("encode message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/bots/post", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("send message: status %d: %w", resp.StatusCode, domainErrors.ErrUnexpectedStatus)
	}
	return nil
}

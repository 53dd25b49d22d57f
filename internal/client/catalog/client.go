package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/observability"
	"github.com/vireolabs/ticketcheck/internal/secrets"
	"github.com/vireolabs/ticketcheck/pkg/retry"
)

// Client is a thin typed wrapper over the POS catalog/inventory REST API.
// All methods return an error on non-2xx status or malformed JSON.
type Client struct {
	baseURL  string
	tokens   secrets.TokenSource
	httpc    *http.Client
	retryCfg retry.Config
	logger   zerolog.Logger
	metrics  *observability.Metrics
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// WithRetryConfig replaces the retry policy applied to read operations.
func WithRetryConfig(cfg retry.Config) Option {
	return func(cl *Client) { cl.retryCfg = cfg }
}

// WithLogger attaches a logger.
func WithLogger(l zerolog.Logger) Option {
	return func(cl *Client) { cl.logger = l }
}

// WithMetrics records per-operation request duration and error counts.
func WithMetrics(m *observability.Metrics) Option {
	return func(cl *Client) { cl.metrics = m }
}

// New creates a catalog client for the given base URL and token source.
func New(baseURL string, tokens secrets.TokenSource, opts ...Option) *Client {
	c := &Client{
		baseURL:  baseURL,
		tokens:   tokens,
		httpc:    &http.Client{Timeout: 10 * time.Second},
		retryCfg: retry.DefaultConfig(),
		logger:   zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the configured API base URL, used for deep links.
func (c *Client) BaseURL() string { return c.baseURL }

// GetLineItems fetches all line items of a ticket.
func (c *Client) GetLineItems(ctx context.Context, ticketID int64) ([]Line, error) {
	var lines []Line
	path := fmt.Sprintf("/api/tickets/%d/lines", ticketID)
	start := time.Now()
	err := retry.Do(ctx, c.retryCfg, func() error {
		return c.get(ctx, path, nil, &lines)
	})
	c.observe("get_line_items", start, err)
	if err != nil {
		return nil, fmt.Errorf("get line items for ticket %d: %w", ticketID, err)
	}
	return lines, nil
}

// GetInventoryValues fetches per-location inventory rows for an item.
func (c *Client) GetInventoryValues(ctx context.Context, itemID int64) ([]InventoryValue, error) {
	var values []InventoryValue
	path := fmt.Sprintf("/api/items/%d/inventory", itemID)
	start := time.Now()
	err := retry.Do(ctx, c.retryCfg, func() error {
		return c.get(ctx, path, nil, &values)
	})
	c.observe("get_inventory_values", start, err)
	if err != nil {
		return nil, fmt.Errorf("get inventory values for item %d: %w", itemID, err)
	}
	return values, nil
}

// GetItem fetches a single catalog item.
func (c *Client) GetItem(ctx context.Context, itemID int64) (*Item, error) {
	var item Item
	path := fmt.Sprintf("/api/items/%d", itemID)
	start := time.Now()
	err := retry.Do(ctx, c.retryCfg, func() error {
		return c.get(ctx, path, nil, &item)
	})
	c.observe("get_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", itemID, err)
	}
	return &item, nil
}

// UpdateItem applies a partial update to a catalog item and returns the
// updated record. Updates are not retried.
func (c *Client) UpdateItem(ctx context.Context, itemID int64, fields map[string]any) (*Item, error) {
	var item Item
	path := fmt.Sprintf("/api/items/%d", itemID)
	start := time.Now()
	err := c.do(ctx, http.MethodPut, path, fields, &item)
	c.observe("update_item", start, err)
	if err != nil {
		return nil, fmt.Errorf("update item %d: %w", itemID, err)
	}
	return &item, nil
}

// UpdateItemImage attaches an image to a catalog item by URL.
func (c *Client) UpdateItemImage(ctx context.Context, itemID int64, imageURL string) error {
	path := fmt.Sprintf("/api/items/%d/image", itemID)
	body := map[string]any{"url": imageURL}
	start := time.Now()
	err := c.do(ctx, http.MethodPost, path, body, nil)
	c.observe("update_item_image", start, err)
	if err != nil {
		return fmt.Errorf("update image for item %d: %w", itemID, err)
	}
	return nil
}

// RunReport executes a named report and returns the raw payload.
func (c *Client) RunReport(ctx context.Context, reportType string, params url.Values) (json.RawMessage, error) {
	var payload json.RawMessage
	path := "/api/reports/" + url.PathEscape(reportType)
	start := time.Now()
	err := retry.Do(ctx, c.retryCfg, func() error {
		return c.get(ctx, path, params, &payload)
	})
	c.observe("run_report", start, err)
	if err != nil {
		return nil, fmt.Errorf("run report %q: %w", reportType, err)
	}
	return payload, nil
}

func (c *Client) observe(op string, start time.Time, err error) {
	if c.metrics == nil {
		return
	}
	c.metrics.ClientRequestDuration.WithLabelValues("catalog", op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.metrics.ClientRequestErrors.WithLabelValues("catalog", op).Inc()
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}
	return c.doURL(ctx, http.MethodGet, u, nil, out)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	return c.doURL(ctx, method, c.baseURL+path, body, out)
}

func (c *Client) doURL(ctx context.Context, method, u string, body, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return fmt.Errorf("resolve api token: %w", err)
	}

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Debug().Str("url", u).Int("status", resp.StatusCode).Msg("catalog request rejected")
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", method, u, domainErrors.ErrItemNotFound)
		}
		return fmt.Errorf("%s %s: status %d: %w", method, u, resp.StatusCode, domainErrors.ErrUnexpectedStatus)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s %s: %w: %v", method, u, domainErrors.ErrMalformedPayload, err)
	}
	return nil
}

package catalogref

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/secrets"
)

// RefItem is the catalog-reference view of an item, used to enrich freshly
// created POS items.
type RefItem struct {
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	MSRP        *decimal.Decimal `json:"msrp,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
}

// envelope is the response wrapper the reference API puts around every
// payload. status_code mirrors HTTP semantics regardless of transport status.
type envelope struct {
	StatusCode int             `json:"status_code"`
	Data       json.RawMessage `json:"data"`
}

// Client looks items up in the catalog-reference API. Requests are OAuth1
// signed (HMAC-SHA1, per-request nonce and timestamp).
type Client struct {
	baseURL string
	httpc   *http.Client
	logger  zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the OAuth1-signing HTTP client, used in tests.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpc = c }
}

// New creates a catalog-reference client from OAuth credentials.
func New(baseURL string, creds *secrets.Credentials, timeout time.Duration, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if creds == nil || !creds.HasOAuth() {
		return nil, fmt.Errorf("catalog-reference client: %w", domainErrors.ErrSecretNotFound)
	}

	cfg := oauth1.NewConfig(creds.ConsumerKey, creds.ConsumerSecret)
	token := oauth1.NewToken(creds.OAuthToken, creds.OAuthTokenSecret)
	httpc := cfg.Client(oauth1.NoContext, token)
	httpc.Timeout = timeout

	c := &Client{
		baseURL: baseURL,
		httpc:   httpc,
		logger:  logger.With().Str("client", "catalogref").Logger(),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// GetItem looks up an item by code type and number. The embedded status code
// must indicate success even when the HTTP status is 200.
func (c *Client) GetItem(ctx context.Context, codeType, number string) (*RefItem, error) {
	u := fmt.Sprintf("%s/items/%s/%s", c.baseURL, url.PathEscape(codeType), url.PathEscape(number))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lookup %s %s: %w", codeType, number, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("lookup %s %s: status %d: %w", codeType, number, resp.StatusCode, domainErrors.ErrUnexpectedStatus)
	}

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return nil, fmt.Errorf("lookup %s %s: %w: %v", codeType, number, domainErrors.ErrMalformedPayload, err)
	}
	if env.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("lookup %s %s: %w", codeType, number, domainErrors.ErrItemNotFound)
	}
	if env.StatusCode < 200 || env.StatusCode > 299 {
		return nil, fmt.Errorf("lookup %s %s: embedded status %d: %w", codeType, number, env.StatusCode, domainErrors.ErrUnexpectedStatus)
	}

	var item RefItem
	if err := json.Unmarshal(env.Data, &item); err != nil {
		return nil, fmt.Errorf("lookup %s %s: %w: %v", codeType, number, domainErrors.ErrMalformedPayload, err)
	}
	return &item, nil
}

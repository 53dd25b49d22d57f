package catalogref

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/secrets"
)

const baseURL = "https://ref.example.com"

func oauthCreds() *secrets.Credentials {
	return &secrets.Credentials{
		ConsumerKey:      "ck",
		ConsumerSecret:   "cs",
		OAuthToken:       "tok",
		OAuthTokenSecret: "ts",
	}
}

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	c, err := New(baseURL, oauthCreds(), 5*time.Second, zerolog.Nop(),
		WithHTTPClient(http.DefaultClient))
	require.NoError(t, err)
	return c
}

func TestNew_RequiresOAuthCredentials(t *testing.T) {
	_, err := New(baseURL, nil, 5*time.Second, zerolog.Nop())
	assert.ErrorIs(t, err, domainErrors.ErrSecretNotFound)

	_, err = New(baseURL, &secrets.Credentials{ConsumerKey: "ck"}, 5*time.Second, zerolog.Nop())
	assert.ErrorIs(t, err, domainErrors.ErrSecretNotFound)
}

func TestGetItem_UnwrapsEnvelope(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/items/upc/0123456789",
		httpmock.NewStringResponder(http.StatusOK,
			`{"status_code":200,"data":{"name":"Blue Widget","category":"widgets","msrp":"19.99"}}`))

	item, err := c.GetItem(context.Background(), "upc", "0123456789")
	require.NoError(t, err)
	assert.Equal(t, "Blue Widget", item.Name)
	assert.Equal(t, "widgets", item.Category)
	require.NotNil(t, item.MSRP)
	assert.Equal(t, "19.99", item.MSRP.StringFixed(2))
}

func TestGetItem_EmbeddedNotFound(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/items/upc/0123456789",
		httpmock.NewStringResponder(http.StatusOK, `{"status_code":404,"data":null}`))

	_, err := c.GetItem(context.Background(), "upc", "0123456789")
	assert.ErrorIs(t, err, domainErrors.ErrItemNotFound)
}

func TestGetItem_EmbeddedServerError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/items/upc/0123456789",
		httpmock.NewStringResponder(http.StatusOK, `{"status_code":500,"data":null}`))

	_, err := c.GetItem(context.Background(), "upc", "0123456789")
	assert.ErrorIs(t, err, domainErrors.ErrUnexpectedStatus)
}

func TestGetItem_TransportError(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/items/upc/0123456789",
		httpmock.NewStringResponder(http.StatusBadGateway, ""))

	_, err := c.GetItem(context.Background(), "upc", "0123456789")
	assert.ErrorIs(t, err, domainErrors.ErrUnexpectedStatus)
}

func TestGetItem_MalformedEnvelope(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/items/upc/0123456789",
		httpmock.NewStringResponder(http.StatusOK, "{not json"))

	_, err := c.GetItem(context.Background(), "upc", "0123456789")
	assert.ErrorIs(t, err, domainErrors.ErrMalformedPayload)
}

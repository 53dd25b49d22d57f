package catalog_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/testutil"
	"github.com/vireolabs/ticketcheck/pkg/retry"
)

const baseURL = "https://pos.example.com"

func newTestClient(t *testing.T, opts ...catalog.Option) *catalog.Client {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)

	opts = append([]catalog.Option{
		catalog.WithRetryConfig(retry.Config{MaxAttempts: 3, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}),
	}, opts...)
	return catalog.New(baseURL, &testutil.MockTokenSource{TokenValue: "test-token"}, opts...)
}

func TestGetLineItems_SendsBearerToken(t *testing.T) {
	c := newTestClient(t)

	var gotAuth string
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/tickets/1001/lines",
		func(req *http.Request) (*http.Response, error) {
			gotAuth = req.Header.Get("Authorization")
			return httpmock.NewJsonResponse(http.StatusOK, []map[string]any{
				{"id": 1, "ticket_id": 1001, "type": "item", "item_id": 500},
			})
		})

	lines, err := c.GetLineItems(context.Background(), 1001)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	require.NotNil(t, lines[0].ItemID)
	assert.Equal(t, int64(500), *lines[0].ItemID)
	assert.Equal(t, "Bearer test-token", gotAuth)
}

func TestGetLineItems_RetriesTransientFailures(t *testing.T) {
	c := newTestClient(t)

	calls := 0
	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/tickets/1001/lines",
		func(req *http.Request) (*http.Response, error) {
			calls++
			if calls < 3 {
				return httpmock.NewStringResponse(http.StatusBadGateway, ""), nil
			}
			return httpmock.NewJsonResponse(http.StatusOK, []map[string]any{})
		})

	_, err := c.GetLineItems(context.Background(), 1001)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestGetItem_NotFound(t *testing.T) {
	c := newTestClient(t, catalog.WithRetryConfig(retry.Config{MaxAttempts: 1}))

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/items/500",
		httpmock.NewStringResponder(http.StatusNotFound, ""))

	_, err := c.GetItem(context.Background(), 500)
	assert.ErrorIs(t, err, domainErrors.ErrItemNotFound)
}

func TestGetItem_ServerErrorMapsToUnexpectedStatus(t *testing.T) {
	c := newTestClient(t, catalog.WithRetryConfig(retry.Config{MaxAttempts: 1}))

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/items/500",
		httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := c.GetItem(context.Background(), 500)
	assert.ErrorIs(t, err, domainErrors.ErrUnexpectedStatus)
}

func TestGetInventoryValues_MalformedPayload(t *testing.T) {
	c := newTestClient(t, catalog.WithRetryConfig(retry.Config{MaxAttempts: 1}))

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/items/500/inventory",
		httpmock.NewStringResponder(http.StatusOK, "{not json"))

	_, err := c.GetInventoryValues(context.Background(), 500)
	assert.ErrorIs(t, err, domainErrors.ErrMalformedPayload)
}

func TestUpdateItem_SendsPartialBody(t *testing.T) {
	c := newTestClient(t)

	var gotBody map[string]any
	httpmock.RegisterResponder(http.MethodPut, baseURL+"/api/items/500",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
			return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
				"id": 500, "description": "Blue Widget",
			})
		})

	item, err := c.UpdateItem(context.Background(), 500, map[string]any{"description": "Blue Widget"})
	require.NoError(t, err)
	assert.Equal(t, "Blue Widget", item.Description)
	assert.Equal(t, map[string]any{"description": "Blue Widget"}, gotBody)
}

func TestUpdateItemImage_PostsURL(t *testing.T) {
	c := newTestClient(t)

	var gotBody map[string]any
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/api/items/500/image",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
			return httpmock.NewStringResponse(http.StatusOK, "{}"), nil
		})

	err := c.UpdateItemImage(context.Background(), 500, "https://cdn.example.com/w.jpg")
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"url": "https://cdn.example.com/w.jpg"}, gotBody)
}

func TestRunReport_ForwardsQueryAndReturnsRawPayload(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodGet, baseURL+"/api/reports/sales-summary",
		func(req *http.Request) (*http.Response, error) {
			assert.Equal(t, "2024-05-01", req.URL.Query().Get("date"))
			return httpmock.NewStringResponse(http.StatusOK, `{"rows":[]}`), nil
		})

	payload, err := c.RunReport(context.Background(), "sales-summary", map[string][]string{"date": {"2024-05-01"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rows":[]}`, string(payload))
}

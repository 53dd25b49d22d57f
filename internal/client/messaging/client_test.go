package messaging

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
)

const baseURL = "https://chat.example.com/v3"

func newTestClient(t *testing.T) *Client {
	t.Helper()
	httpmock.Activate()
	t.Cleanup(httpmock.DeactivateAndReset)
	return New(baseURL, "bot-42", 5*time.Second)
}

func TestSendMessage_PostsBotIDAndText(t *testing.T) {
	c := newTestClient(t)

	var gotBody map[string]string
	httpmock.RegisterResponder(http.MethodPost, baseURL+"/bots/post",
		func(req *http.Request) (*http.Response, error) {
			require.NoError(t, json.NewDecoder(req.Body).Decode(&gotBody))
			return httpmock.NewStringResponse(http.StatusCreated, ""), nil
		})

	err := c.SendMessage(context.Background(), "negative inventory on item 500")
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"bot_id": "bot-42",
		"text":   "negative inventory on item 500",
	}, gotBody)
}

func TestSendMessage_NonSuccessStatus(t *testing.T) {
	c := newTestClient(t)

	httpmock.RegisterResponder(http.MethodPost, baseURL+"/bots/post",
		httpmock.NewStringResponder(http.StatusBadRequest, ""))

	err := c.SendMessage(context.Background(), "hello")
	assert.ErrorIs(t, err, domainErrors.ErrUnexpectedStatus)
}

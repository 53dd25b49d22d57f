package controller

import (
	"github.com/vireolabs/ticketcheck/internal/check"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// --- Request DTOs ---
// These DTOs handle HTTP/JSON concerns. The transaction payload stays an
// open map because the POS platform adds fields without notice; the typed
// view is built by transaction.FromMap.

// TransactionWebhookRequest is the body of a transaction webhook delivery.
type TransactionWebhookRequest struct {
	EventID     string         `json:"event_id,omitempty"`
	Event       string         `json:"event,omitempty"`
	Transaction map[string]any `json:"transaction" validate:"required"`
}

// ItemWebhookRequest is the body of an item-created webhook delivery.
type ItemWebhookRequest struct {
	EventID string `json:"event_id,omitempty"`
	Event   string `json:"event,omitempty"`
	ItemID  int64  `json:"item_id" validate:"required,gt=0"`
}

// --- Response DTOs ---

// CheckReportResponse is the aggregated check report for one transaction.
type CheckReportResponse struct {
	TransactionID string         `json:"transaction_id"`
	Kind          string         `json:"kind"`
	Overall       bool           `json:"overall"`
	Checks        []check.Result `json:"checks"`
}

// ItemWebhookResponse acknowledges an item enrichment request.
type ItemWebhookResponse struct {
	ItemID int64  `json:"item_id"`
	Status string `json:"status"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// FromReport converts a check report to an API response.
func FromReport(tx *transaction.Transaction, report check.Report) *CheckReportResponse {
	return &CheckReportResponse{
		TransactionID: tx.IDString(),
		Kind:          string(transaction.Classify(tx)),
		Overall:       report.Overall,
		Checks:        report.Results,
	}
}

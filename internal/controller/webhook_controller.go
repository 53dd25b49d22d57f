package controller

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vireolabs/ticketcheck/internal/check"
	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
	"github.com/vireolabs/ticketcheck/internal/enrich"
)

// WebhookController handles POS webhook deliveries.
type WebhookController struct {
	runner   *check.Runner
	builder  *check.Builder
	enricher *enrich.Enricher
	logger   zerolog.Logger
}

// NewWebhookController creates a new WebhookController. enricher may be nil
// when the catalog-reference API is not configured.
func NewWebhookController(runner *check.Runner, builder *check.Builder, enricher *enrich.Enricher, logger zerolog.Logger) *WebhookController {
	return &WebhookController{
		runner:   runner,
		builder:  builder,
		enricher: enricher,
		logger:   logger.With().Str("component", "webhook").Logger(),
	}
}

// HandleTransaction handles POST /webhooks/transactions. The report is
// always produced for a well-formed payload; individual check failures are
// part of the report, not HTTP errors.
func (h *WebhookController) HandleTransaction(w http.ResponseWriter, r *http.Request) {
	var req TransactionWebhookRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}
	if req.EventID == "" {
		req.EventID = uuid.New().String()
	}

	tx := transaction.FromMap(req.Transaction)
	strategies := h.builder.Strategies(r.Context())
	report := h.runner.Run(r.Context(), tx, strategies)

	h.logger.Info().
		Str("event_id", req.EventID).
		Str("transaction_id", tx.IDString()).
		Bool("overall", report.Overall).
		Int("checks", len(report.Results)).
		Msg("transaction checked")

	writeJSON(w, http.StatusOK, FromReport(tx, report))
}

// HandleItem handles POST /webhooks/items for item-created events.
func (h *WebhookController) HandleItem(w http.ResponseWriter, r *http.Request) {
	var req ItemWebhookRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	if h.enricher == nil {
		writeError(w, domainErrors.NewDomainError("enrichment_disabled", "item enrichment is not configured", nil))
		return
	}

	if err := h.enricher.EnrichItem(r.Context(), req.ItemID); err != nil {
		h.logger.Error().Err(err).Int64("item_id", req.ItemID).Msg("item enrichment failed")
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusAccepted, ItemWebhookResponse{ItemID: req.ItemID, Status: "enriched"})
}

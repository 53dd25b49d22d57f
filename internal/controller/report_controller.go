package controller

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/client/catalog"
)

// ReportController exposes the POS report runner to ops tooling. The raw
// payload is passed through untouched; the spreadsheet export pipeline
// consumes it downstream.
type ReportController struct {
	catalog *catalog.Client
}

// NewReportController creates a new ReportController. client may be nil when
// the catalog API is not configured.
func NewReportController(client *catalog.Client) *ReportController {
	return &ReportController{catalog: client}
}

// RunReport handles POST /api/v1/reports/{type}. Query parameters are
// forwarded to the report endpoint as-is.
func (h *ReportController) RunReport(w http.ResponseWriter, r *http.Request) {
	if h.catalog == nil {
		writeError(w, domainErrors.NewDomainError("reports_disabled", "catalog api is not configured", nil))
		return
	}

	reportType := chi.URLParam(r, "type")
	payload, err := h.catalog.RunReport(r.Context(), reportType, r.URL.Query())
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

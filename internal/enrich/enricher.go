package enrich

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/client/catalogref"
	domainErrors "github.com/vireolabs/ticketcheck/internal/domain/errors"
	"github.com/vireolabs/ticketcheck/internal/lookup"
	"github.com/vireolabs/ticketcheck/internal/observability"
)

// CatalogAPI is the slice of the POS catalog client the enricher consumes.
type CatalogAPI interface {
	GetItem(ctx context.Context, itemID int64) (*catalog.Item, error)
	UpdateItem(ctx context.Context, itemID int64, fields map[string]any) (*catalog.Item, error)
	UpdateItemImage(ctx context.Context, itemID int64, imageURL string) error
}

// ReferenceAPI looks an item up in the catalog-reference service.
type ReferenceAPI interface {
	GetItem(ctx context.Context, codeType, number string) (*catalogref.RefItem, error)
}

// Enricher fills in description, price, category and image on freshly
// created POS items by cross-referencing the catalog-reference API. Only
// blank fields are filled; data entered by staff is never overwritten.
type Enricher struct {
	catalog CatalogAPI
	ref     ReferenceAPI
	table   *lookup.Table
	logger  zerolog.Logger
	metrics *observability.Metrics
}

// New creates an Enricher.
func New(catalogAPI CatalogAPI, ref ReferenceAPI, table *lookup.Table, metrics *observability.Metrics, logger zerolog.Logger) *Enricher {
	return &Enricher{
		catalog: catalogAPI,
		ref:     ref,
		table:   table,
		logger:  logger.With().Str("component", "enricher").Logger(),
		metrics: metrics,
	}
}

// EnrichItem enriches one item by id. Items without a code and items the
// reference API does not know are skipped, not errors. An image attach
// failure after a successful field update is logged and swallowed.
func (e *Enricher) EnrichItem(ctx context.Context, itemID int64) error {
	item, err := e.catalog.GetItem(ctx, itemID)
	if err != nil {
		e.count("error")
		return fmt.Errorf("load item %d: %w", itemID, err)
	}
	if item.Code == "" {
		e.logger.Debug().Int64("item_id", itemID).Msg("item has no code, skipping enrichment")
		e.count("skipped")
		return nil
	}

	codeType := item.CodeType
	if codeType == "" {
		codeType = "upc"
	}

	refItem, err := e.ref.GetItem(ctx, codeType, item.Code)
	if err != nil {
		if errors.Is(err, domainErrors.ErrItemNotFound) {
			e.logger.Info().Int64("item_id", itemID).Str("code", item.Code).Msg("code not in reference catalog")
			e.count("miss")
			return nil
		}
		e.count("error")
		return fmt.Errorf("reference lookup for item %d: %w", itemID, err)
	}

	fields := e.updateFields(item, refItem)
	if len(fields) > 0 {
		if _, err := e.catalog.UpdateItem(ctx, itemID, fields); err != nil {
			e.count("error")
			return fmt.Errorf("update item %d: %w", itemID, err)
		}
	}

	if refItem.ImageURL != "" && item.ImageURL == "" {
		if err := e.catalog.UpdateItemImage(ctx, itemID, refItem.ImageURL); err != nil {
			e.logger.Warn().Err(err).Int64("item_id", itemID).Msg("image attach failed")
		}
	}

	e.logger.Info().Int64("item_id", itemID).Int("fields", len(fields)).Msg("item enriched")
	e.count("enriched")
	return nil
}

// updateFields computes the partial update: blank fields only, with the CSV
// lookup table's category override winning over the reference category.
func (e *Enricher) updateFields(item *catalog.Item, refItem *catalogref.RefItem) map[string]any {
	fields := make(map[string]any)

	if item.Description == "" && refItem.Name != "" {
		fields["description"] = refItem.Name
	}
	if item.MSRP == nil && refItem.MSRP != nil {
		fields["msrp"] = *refItem.MSRP
	}
	if item.Category == "" {
		if category, ok := e.table.Category(item.Code); ok {
			fields["category"] = category
		} else if refItem.Category != "" {
			fields["category"] = refItem.Category
		}
	}
	return fields
}

func (e *Enricher) count(result string) {
	if e.metrics != nil {
		e.metrics.ItemsEnriched.WithLabelValues(result).Inc()
	}
}

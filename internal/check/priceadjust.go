package check

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// priceAdjustedStrategy fails sale tickets containing merchandise lines
// whose unit price was adjusted at the register.
type priceAdjustedStrategy struct {
	api      CatalogAPI
	notifier Notifier
	baseURL  string
	logger   zerolog.Logger
}

// NewPriceAdjustedStrategy creates the price-adjustment check.
func NewPriceAdjustedStrategy(api CatalogAPI, notifier Notifier, baseURL string, logger zerolog.Logger) Strategy {
	return &priceAdjustedStrategy{
		api:      api,
		notifier: notifier,
		baseURL:  baseURL,
		logger:   logger.With().Str("strategy", "price-adjusted-item").Logger(),
	}
}

func (s *priceAdjustedStrategy) Name() string { return "price-adjusted-item" }

func (s *priceAdjustedStrategy) Supports(tx *transaction.Transaction) bool {
	return tx.Type == transaction.TypeSaleTicket && tx.ID != nil
}

func (s *priceAdjustedStrategy) Evaluate(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	lines, err := s.api.GetLineItems(ctx, *tx.ID)
	if err != nil {
		return false, err
	}

	var adjusted []catalog.Line
	for _, l := range lines {
		if !l.IsMerchandise() {
			continue
		}
		if l.AdjustedUnitPrice != nil || len(l.PriceAdjustments) > 0 {
			adjusted = append(adjusted, l)
		}
	}
	if len(adjusted) == 0 {
		return true, nil
	}

	for _, l := range adjusted {
		s.notifier.Notify(ctx, s.Name(), s.adjustmentMessage(tx, l))
	}
	return false, nil
}

// AdjustmentDelta reports the price change on an adjusted line: the sum of
// itemized adjustment deltas when present, else adjusted minus original when
// both are known, else nothing.
func AdjustmentDelta(l catalog.Line) (decimal.Decimal, bool) {
	if len(l.PriceAdjustments) > 0 {
		sum := decimal.Zero
		for _, a := range l.PriceAdjustments {
			sum = sum.Add(a.Delta)
		}
		return sum, true
	}
	if l.AdjustedUnitPrice != nil && l.OriginalUnitPrice != nil {
		return l.AdjustedUnitPrice.Sub(*l.OriginalUnitPrice), true
	}
	return decimal.Decimal{}, false
}

func (s *priceAdjustedStrategy) adjustmentMessage(tx *transaction.Transaction, l catalog.Line) string {
	deltaText := "unknown"
	if delta, ok := AdjustmentDelta(l); ok {
		deltaText = delta.StringFixed(2)
	}

	description := l.Description
	if description == "" && l.ItemID != nil {
		description = fmt.Sprintf("item %d", *l.ItemID)
	}

	return fmt.Sprintf("Price adjusted on ticket %s: %q delta %s (original %s, adjusted %s). %s/tickets/%s",
		tx.IDString(), description, deltaText,
		fmtPrice(l.OriginalUnitPrice), fmtPrice(l.AdjustedUnitPrice),
		s.baseURL, tx.IDString())
}

func fmtPrice(d *decimal.Decimal) string {
	if d == nil {
		return "n/a"
	}
	return d.StringFixed(2)
}

package check

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

var hundred = decimal.NewFromInt(100)

// highDiscountStrategy fails sale tickets whose total discount strictly
// exceeds the configured percentage of the original subtotal. Tickets
// without usable discount data pass; the check cannot evaluate them and
// defaults to non-blocking.
type highDiscountStrategy struct {
	notifier  Notifier
	baseURL   string
	threshold decimal.Decimal
	logger    zerolog.Logger
}

// NewHighDiscountStrategy creates the discount-threshold check. thresholdPct
// is a percentage, e.g. 5 means tickets above 5% fail. Exactly the threshold
// passes.
func NewHighDiscountStrategy(notifier Notifier, baseURL string, thresholdPct float64, logger zerolog.Logger) Strategy {
	return &highDiscountStrategy{
		notifier:  notifier,
		baseURL:   baseURL,
		threshold: decimal.NewFromFloat(thresholdPct),
		logger:    logger.With().Str("strategy", "high-discount-ticket").Logger(),
	}
}

func (s *highDiscountStrategy) Name() string { return "high-discount-ticket" }

func (s *highDiscountStrategy) Supports(tx *transaction.Transaction) bool {
	return tx.Type == transaction.TypeSaleTicket && tx.ID != nil
}

func (s *highDiscountStrategy) Evaluate(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	if tx.OriginalSubtotal == nil || tx.TotalDiscounts == nil || !tx.OriginalSubtotal.IsPositive() {
		return true, nil
	}

	pct := tx.TotalDiscounts.Div(*tx.OriginalSubtotal).Mul(hundred)
	if !pct.GreaterThan(s.threshold) {
		return true, nil
	}

	s.notifier.Notify(ctx, s.Name(), fmt.Sprintf(
		"High discount on ticket %s: %s%% off subtotal %s. %s/tickets/%s",
		tx.IDString(), pct.StringFixed(2), tx.OriginalSubtotal.StringFixed(2),
		s.baseURL, tx.IDString()))
	return false, nil
}

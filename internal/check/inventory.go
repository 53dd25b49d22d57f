package check

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// inventoryNonNegativeStrategy fails a sale or return whose merchandise
// items would end up with negative stock at the transaction's location.
// Inability to verify is treated as failure.
type inventoryNonNegativeStrategy struct {
	api      CatalogAPI
	notifier Notifier
	baseURL  string
	excluded map[int64]struct{}
	logger   zerolog.Logger
}

// NewInventoryNonNegativeStrategy creates the inventory check. The excluded
// set holds item ids that are never checked (consignment and placeholder
// items maintained outside the POS).
func NewInventoryNonNegativeStrategy(api CatalogAPI, notifier Notifier, baseURL string, excluded map[int64]struct{}, logger zerolog.Logger) Strategy {
	if excluded == nil {
		excluded = map[int64]struct{}{}
	}
	return &inventoryNonNegativeStrategy{
		api:      api,
		notifier: notifier,
		baseURL:  baseURL,
		excluded: excluded,
		logger:   logger.With().Str("strategy", "inventory-non-negative").Logger(),
	}
}

func (s *inventoryNonNegativeStrategy) Name() string { return "inventory-non-negative" }

func (s *inventoryNonNegativeStrategy) Supports(tx *transaction.Transaction) bool {
	if tx.ID == nil || tx.SourceLocationID == nil {
		return false
	}
	return tx.Type == transaction.TypeSaleTicket || tx.Type == transaction.TypeReturn
}

type inventoryViolation struct {
	itemID int64
	qty    decimal.Decimal
}

func (s *inventoryNonNegativeStrategy) Evaluate(ctx context.Context, tx *transaction.Transaction) (bool, error) {
	lines, err := s.api.GetLineItems(ctx, *tx.ID)
	if err != nil {
		return false, err
	}

	itemIDs := s.merchandiseItemIDs(lines)
	if len(itemIDs) == 0 {
		return true, nil
	}

	var violations []inventoryViolation
	for _, itemID := range itemIDs {
		values, err := s.api.GetInventoryValues(ctx, itemID)
		if err != nil {
			return false, err
		}
		for _, v := range values {
			// Rows without a location report tenant-wide values and stay in scope.
			if v.LocationID != nil && *v.LocationID != *tx.SourceLocationID {
				continue
			}
			if qty := v.EffectiveQty(); qty.IsNegative() {
				violations = append(violations, inventoryViolation{itemID: itemID, qty: qty})
				break
			}
		}
	}

	if len(violations) == 0 {
		return true, nil
	}

	for _, v := range violations {
		s.notifier.Notify(ctx, s.Name(), s.violationMessage(ctx, tx, v))
	}
	return false, nil
}

// merchandiseItemIDs collects distinct non-excluded item ids from item
// lines, preserving first-seen order.
func (s *inventoryNonNegativeStrategy) merchandiseItemIDs(lines []catalog.Line) []int64 {
	seen := make(map[int64]struct{})
	var ids []int64
	for _, l := range lines {
		if !l.IsMerchandise() || l.ItemID == nil {
			continue
		}
		id := *l.ItemID
		if _, excluded := s.excluded[id]; excluded {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	return ids
}

func (s *inventoryNonNegativeStrategy) violationMessage(ctx context.Context, tx *transaction.Transaction, v inventoryViolation) string {
	description := fmt.Sprintf("item %d", v.itemID)
	if item, err := s.api.GetItem(ctx, v.itemID); err != nil {
		s.logger.Warn().Err(err).Int64("item_id", v.itemID).Msg("could not fetch item for notification")
	} else if item.Description != "" {
		description = item.Description
	}

	return fmt.Sprintf("Negative inventory: %q is at %s at location %d after ticket %s. %s/items/%d",
		description, v.qty.String(), *tx.SourceLocationID, tx.IDString(), s.baseURL, v.itemID)
}

package catalog

import "github.com/shopspring/decimal"

// Line type tags used by the POS platform. Only item lines represent
// merchandise; tax and fee lines are ignored by the checks.
const (
	LineTypeItem = "item"
	LineTypeTax  = "tax"
	LineTypeFee  = "fee"
)

// Line is one line item on a ticket.
type Line struct {
	ID                int64             `json:"id"`
	TicketID          int64             `json:"ticket_id"`
	Type              string            `json:"type"`
	ItemID            *int64            `json:"item_id,omitempty"`
	Description       string            `json:"description"`
	Quantity          *decimal.Decimal  `json:"quantity,omitempty"`
	OriginalUnitPrice *decimal.Decimal  `json:"original_unit_price,omitempty"`
	AdjustedUnitPrice *decimal.Decimal  `json:"adjusted_unit_price,omitempty"`
	PriceAdjustments  []PriceAdjustment `json:"price_adjustments,omitempty"`
}

// IsMerchandise reports whether the line represents a sold or returned
// product rather than tax or fees.
func (l Line) IsMerchandise() bool {
	return l.Type == LineTypeItem
}

// PriceAdjustment is one itemized price change applied to a line.
type PriceAdjustment struct {
	ID     int64           `json:"id"`
	Reason string          `json:"reason,omitempty"`
	Delta  decimal.Decimal `json:"delta"`
}

// InventoryValue is the per-location stock picture for one item. Rows
// without a location id report tenant-wide values.
type InventoryValue struct {
	ItemID       int64            `json:"item_id"`
	LocationID   *int64           `json:"location_id,omitempty"`
	QtyOnHand    *decimal.Decimal `json:"qty_on_hand,omitempty"`
	QtyAvailable *decimal.Decimal `json:"qty_available,omitempty"`
}

// EffectiveQty resolves the quantity the checks act on: available when
// known, else on-hand, else zero.
func (v InventoryValue) EffectiveQty() decimal.Decimal {
	if v.QtyAvailable != nil {
		return *v.QtyAvailable
	}
	if v.QtyOnHand != nil {
		return *v.QtyOnHand
	}
	return decimal.Zero
}

// Item is a catalog item record.
type Item struct {
	ID          int64            `json:"id"`
	Code        string           `json:"code,omitempty"`
	CodeType    string           `json:"code_type,omitempty"`
	Description string           `json:"description,omitempty"`
	Category    string           `json:"category,omitempty"`
	MSRP        *decimal.Decimal `json:"msrp,omitempty"`
	ImageURL    string           `json:"image_url,omitempty"`
}

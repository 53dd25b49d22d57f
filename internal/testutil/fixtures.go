package testutil

import (
	"github.com/shopspring/decimal"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// Int64Ptr returns a pointer to v.
func Int64Ptr(v int64) *int64 { return &v }

// BoolPtr returns a pointer to v.
func BoolPtr(v bool) *bool { return &v }

// StrPtr returns a pointer to v.
func StrPtr(v string) *string { return &v }

// DecPtr returns a pointer to a decimal parsed from s. Panics on bad input;
// fixtures are hardcoded.
func DecPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// SaleTicket builds a sale-ticket transaction with an id and location.
func SaleTicket(id, locationID int64) *transaction.Transaction {
	return &transaction.Transaction{
		ID:               Int64Ptr(id),
		Type:             transaction.TypeSaleTicket,
		SourceLocationID: Int64Ptr(locationID),
		Extra:            map[string]any{},
	}
}

// ItemLine builds a merchandise line for an item.
func ItemLine(lineID, itemID int64) catalog.Line {
	return catalog.Line{
		ID:     lineID,
		Type:   catalog.LineTypeItem,
		ItemID: Int64Ptr(itemID),
	}
}

// TaxLine builds a tax line.
func TaxLine(lineID int64) catalog.Line {
	return catalog.Line{ID: lineID, Type: catalog.LineTypeTax}
}

// InventoryRow builds an inventory value row. Pass nil for locationID to
// build a tenant-wide row.
func InventoryRow(itemID int64, locationID *int64, available string) catalog.InventoryValue {
	return catalog.InventoryValue{
		ItemID:       itemID,
		LocationID:   locationID,
		QtyAvailable: DecPtr(available),
	}
}

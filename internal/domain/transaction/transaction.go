package transaction

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Known transaction type tags emitted by the POS platform.
const (
	TypeSaleTicket = "sale-ticket"
	TypeReturn     = "return"
)

// Transaction is one point-of-sale transaction as delivered by a webhook.
// Fields the checks care about are typed and optional; everything else the
// platform sends is kept verbatim in Extra. Transactions are immutable inputs,
// no field is ever written back.
type Transaction struct {
	ID               *int64
	Type             string
	Total            *decimal.Decimal
	SourceLocationID *int64
	Balance          *decimal.Decimal
	Completed        *bool
	Status           string
	CompletedAt      *string
	LocalCompletedAt *string
	OriginalSubtotal *decimal.Decimal
	TotalDiscounts   *decimal.Decimal
	Extra            map[string]any
}

// Keys recognized by FromMap. Anything else lands in Extra.
const (
	keyID               = "id"
	keyType             = "type"
	keyTotal            = "total"
	keySourceLocationID = "source_location_id"
	keyBalance          = "balance"
	keyCompleted        = "completed"
	keyStatus           = "status"
	keyCompletedAt      = "completed_at"
	keyLocalCompletedAt = "local_completed_at"
	keyOriginalSubtotal = "original_subtotal"
	keyTotalDiscounts   = "total_discounts"
)

// FromMap builds a Transaction from a decoded JSON object. Field values are
// coerced tolerantly: the platform sends numbers as float64, json.Number or
// numeric strings depending on the webhook version. Unparseable values leave
// the typed field nil.
func FromMap(raw map[string]any) *Transaction {
	tx := &Transaction{Extra: make(map[string]any)}

	for k, v := range raw {
		switch k {
		case keyID:
			tx.ID = asInt64(v)
		case keyType:
			tx.Type, _ = v.(string)
		case keyTotal:
			tx.Total = asDecimal(v)
		case keySourceLocationID:
			tx.SourceLocationID = asInt64(v)
		case keyBalance:
			tx.Balance = asDecimal(v)
		case keyCompleted:
			tx.Completed = asBool(v)
		case keyStatus:
			tx.Status, _ = v.(string)
		case keyCompletedAt:
			tx.CompletedAt = asString(v)
		case keyLocalCompletedAt:
			tx.LocalCompletedAt = asString(v)
		case keyOriginalSubtotal:
			tx.OriginalSubtotal = asDecimal(v)
		case keyTotalDiscounts:
			tx.TotalDiscounts = asDecimal(v)
		default:
			tx.Extra[k] = v
			continue
		}
	}
	return tx
}

// IDString renders the transaction id for log fields, "unknown" when absent.
func (t *Transaction) IDString() string {
	if t.ID == nil {
		return "unknown"
	}
	return strconv.FormatInt(*t.ID, 10)
}

func asInt64(v any) *int64 {
	switch n := v.(type) {
	case float64:
		i := int64(n)
		return &i
	case int64:
		return &n
	case int:
		i := int64(n)
		return &i
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return &i
		}
	case string:
		if i, err := strconv.ParseInt(n, 10, 64); err == nil {
			return &i
		}
	}
	return nil
}

func asDecimal(v any) *decimal.Decimal {
	switch n := v.(type) {
	case float64:
		d := decimal.NewFromFloat(n)
		return &d
	case int64:
		d := decimal.NewFromInt(n)
		return &d
	case int:
		d := decimal.NewFromInt(int64(n))
		return &d
	case json.Number:
		if d, err := decimal.NewFromString(n.String()); err == nil {
			return &d
		}
	case string:
		if d, err := decimal.NewFromString(n); err == nil {
			return &d
		}
	}
	return nil
}

func asBool(v any) *bool {
	switch b := v.(type) {
	case bool:
		return &b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return &parsed
		}
	}
	return nil
}

func asString(v any) *string {
	if s, ok := v.(string); ok {
		return &s
	}
	return nil
}

package check

import (
	"context"

	"github.com/vireolabs/ticketcheck/internal/client/catalog"
	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// Strategy is one independently pluggable business rule for "is this
// transaction OK?". Supports is a cheap synchronous gate; Evaluate may do
// network I/O and returns its own failures as errors, which the runner
// converts to a failed check rather than propagating.
//
// Strategies are constructed once per process, hold no per-transaction state
// and are safe to reuse across invocations.
type Strategy interface {
	Name() string
	Supports(tx *transaction.Transaction) bool
	Evaluate(ctx context.Context, tx *transaction.Transaction) (bool, error)
}

// Result records one strategy attempt. Executed false means the strategy did
// not apply to the transaction; such results never affect the overall verdict.
type Result struct {
	Name     string `json:"name"`
	Executed bool   `json:"executed"`
	Passed   bool   `json:"passed"`
}

// Report is the aggregated outcome of running a strategy list against one
// transaction. Overall is the logical AND of all executed results and false
// when nothing executed.
type Report struct {
	Overall bool     `json:"overall"`
	Results []Result `json:"checks"`
}

// CatalogAPI is the slice of the POS catalog client the strategies consume.
type CatalogAPI interface {
	GetLineItems(ctx context.Context, ticketID int64) ([]catalog.Line, error)
	GetInventoryValues(ctx context.Context, itemID int64) ([]catalog.InventoryValue, error)
	GetItem(ctx context.Context, itemID int64) (*catalog.Item, error)
}

// Notifier sends best-effort messages about violations. Implementations must
// never fail the caller.
type Notifier interface {
	Notify(ctx context.Context, source, text string)
}

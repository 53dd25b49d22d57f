package check

import (
	"context"

	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// completedTimestampStrategy passes when either completion timestamp is set.
// Applies only when at least one timestamp field arrived as a non-empty
// string, so an applicable transaction always passes; the check exists to
// flag records where both fields were stripped between systems.
type completedTimestampStrategy struct{}

// NewCompletedTimestampStrategy creates the completion-timestamp check.
func NewCompletedTimestampStrategy() Strategy {
	return completedTimestampStrategy{}
}

func (completedTimestampStrategy) Name() string { return "completed-timestamp" }

func (completedTimestampStrategy) Supports(tx *transaction.Transaction) bool {
	return hasTimestamp(tx)
}

func (completedTimestampStrategy) Evaluate(_ context.Context, tx *transaction.Transaction) (bool, error) {
	return hasTimestamp(tx), nil
}

func hasTimestamp(tx *transaction.Transaction) bool {
	if tx.CompletedAt != nil && *tx.CompletedAt != "" {
		return true
	}
	return tx.LocalCompletedAt != nil && *tx.LocalCompletedAt != ""
}

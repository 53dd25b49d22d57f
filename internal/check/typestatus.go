package check

import (
	"context"
	"strings"

	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// typeStatusStrategy passes when the transaction carries an explicit
// completion flag or a status reading "complete". Applies to everything.
type typeStatusStrategy struct{}

// NewTypeStatusStrategy creates the type/status check.
func NewTypeStatusStrategy() Strategy {
	return typeStatusStrategy{}
}

func (typeStatusStrategy) Name() string { return "type-status" }

func (typeStatusStrategy) Supports(*transaction.Transaction) bool { return true }

func (typeStatusStrategy) Evaluate(_ context.Context, tx *transaction.Transaction) (bool, error) {
	if tx.Completed != nil && *tx.Completed {
		return true, nil
	}
	return strings.EqualFold(tx.Status, "complete"), nil
}

package check

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
)

// balanceTolerance absorbs floating point noise in upstream balance values.
var balanceTolerance = decimal.NewFromFloat(1e-4)

// balanceStrategy passes when the outstanding balance is zero within
// tolerance. Applies only when a balance is present.
type balanceStrategy struct{}

// NewBalanceStrategy creates the zero-balance check.
func NewBalanceStrategy() Strategy {
	return balanceStrategy{}
}

func (balanceStrategy) Name() string { return "balance" }

func (balanceStrategy) Supports(tx *transaction.Transaction) bool {
	return tx.Balance != nil
}

func (balanceStrategy) Evaluate(_ context.Context, tx *transaction.Transaction) (bool, error) {
	return tx.Balance.Abs().LessThan(balanceTolerance), nil
}

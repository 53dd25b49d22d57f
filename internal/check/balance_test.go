package check

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vireolabs/ticketcheck/internal/domain/transaction"
	"github.com/vireolabs/ticketcheck/internal/testutil"
)

func TestBalance_SupportsOnlyWithBalance(t *testing.T) {
	s := NewBalanceStrategy()
	assert.False(t, s.Supports(&transaction.Transaction{}))
	assert.True(t, s.Supports(&transaction.Transaction{Balance: testutil.DecPtr("0")}))
}

func TestBalance_ZeroWithinTolerancePasses(t *testing.T) {
	s := NewBalanceStrategy()

	for _, v := range []string{"0", "0.00005", "-0.00005"} {
		passed, err := s.Evaluate(context.Background(), &transaction.Transaction{Balance: testutil.DecPtr(v)})
		require.NoError(t, err)
		assert.True(t, passed, v)
	}
}

func TestBalance_OutstandingBalanceFails(t *testing.T) {
	s := NewBalanceStrategy()

	for _, v := range []string{"5", "-5", "0.01", "0.0001"} {
		passed, err := s.Evaluate(context.Background(), &transaction.Transaction{Balance: testutil.DecPtr(v)})
		require.NoError(t, err)
		assert.False(t, passed, v)
	}
}

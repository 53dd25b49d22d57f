package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassify_ByType(t *testing.T) {
	assert.Equal(t, KindSale, Classify(&Transaction{Type: "sale-ticket"}))
	assert.Equal(t, KindSale, Classify(&Transaction{Type: "sale"}))
	assert.Equal(t, KindReturn, Classify(&Transaction{Type: "return"}))
}

func TestClassify_ByTotalSign(t *testing.T) {
	pos := decimal.NewFromInt(10)
	neg := decimal.NewFromInt(-10)
	zero := decimal.Zero

	assert.Equal(t, KindSale, Classify(&Transaction{Type: "weird", Total: &pos}))
	assert.Equal(t, KindReturn, Classify(&Transaction{Type: "weird", Total: &neg}))
	assert.Equal(t, KindOther, Classify(&Transaction{Type: "weird", Total: &zero}))
}

func TestClassify_NoTypeNoTotal(t *testing.T) {
	assert.Equal(t, KindOther, Classify(&Transaction{}))
}

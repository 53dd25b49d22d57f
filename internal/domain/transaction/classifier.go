package transaction

import "strings"

// Kind is the coarse classification of a transaction.
type Kind string

const (
	KindSale   Kind = "sale"
	KindReturn Kind = "return"
	KindOther  Kind = "other"
)

// Classify maps a transaction to a coarse kind. The type tag wins when it is
// recognizable; otherwise the sign of the total decides, and a zero or absent
// total classifies as other.
func Classify(tx *Transaction) Kind {
	switch {
	case strings.Contains(tx.Type, "sale"):
		return KindSale
	case strings.Contains(tx.Type, "return"):
		return KindReturn
	}

	if tx.Total == nil {
		return KindOther
	}
	switch tx.Total.Sign() {
	case 1:
		return KindSale
	case -1:
		return KindReturn
	default:
		return KindOther
	}
}

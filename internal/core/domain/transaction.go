package domain

import (
	"strings"
	"time"
)

// TxStatus is the status of a logged transaction.
type TxStatus string

const (
	// TxStatusExecuted is the status of a submitted transaction whose settled
	// amounts are not known (yet).
	TxStatusExecuted TxStatus = "executed"
	// TxStatusReconciled is the status of a transaction updated with the
	// settled amounts read from chain.
	TxStatusReconciled TxStatus = "reconciled"
)

func (s TxStatus) String() string {
	return string(s)
}

// Transaction is the log record of an executed swap.
type Transaction struct {
	TxHash    string
	OrderID   string
	Timestamp time.Time
	Kind      OrderKind
	Status    TxStatus

	FromToken    string
	ToToken      string
	AmountIn     float64
	TriggerPrice *float64

	// ExpectedAmountOut is the estimate at submission time, the settled
	// amount is ActualAmountOut once reconciled.
	ExpectedAmountOut *float64
	ActualAmountOut   *float64
	ExecutionPrice    *float64

	TokenInDenom  string
	TokenOutDenom string
	AmountInRaw   string
	AmountOutRaw  string
	PoolID        string
	MinOutRaw     string
}

// IsSyntheticTxHash returns whether the given hash identifies a record that
// was never submitted to the chain as such, hence can't be reconciled.
func IsSyntheticTxHash(hash string) bool {
	return strings.HasPrefix(hash, OrderIDPrefix) ||
		strings.HasPrefix(hash, SyntheticTxPrefix)
}

// IsSynthetic ...
func (t Transaction) IsSynthetic() bool {
	return IsSyntheticTxHash(t.TxHash)
}

// IsReconciled ...
func (t Transaction) IsReconciled() bool {
	return t.Status == TxStatusReconciled
}

// ExpectedPrice returns the price implied by the expected amount out,
// expressed as quote per base token, if known.
func (t Transaction) ExpectedPrice(dir Direction) *float64 {
	if t.ExpectedAmountOut == nil || *t.ExpectedAmountOut <= 0 || t.AmountIn <= 0 {
		return nil
	}
	price := *t.ExpectedAmountOut / t.AmountIn
	if dir == QuoteToBase {
		price = t.AmountIn / *t.ExpectedAmountOut
	}
	return &price
}

// TransactionPatch is a partial update of a transaction. Nil fields are left
// untouched.
type TransactionPatch struct {
	Status          *TxStatus
	ActualAmountOut *float64
	ExecutionPrice  *float64
	TokenInDenom    *string
	TokenOutDenom   *string
	AmountInRaw     *string
	AmountOutRaw    *string
	PoolID          *string
	MinOutRaw       *string
}

// IsEmpty returns whether the patch doesn't update any field.
func (p TransactionPatch) IsEmpty() bool {
	return p == TransactionPatch{}
}

// Apply merges the patch into the transaction. The settled amount and the
// execution price of a reconciled transaction are never overwritten.
func (t *Transaction) Apply(p TransactionPatch) {
	reconciled := t.IsReconciled()

	if !reconciled {
		if p.ActualAmountOut != nil {
			v := *p.ActualAmountOut
			t.ActualAmountOut = &v
		}
		if p.ExecutionPrice != nil {
			v := *p.ExecutionPrice
			t.ExecutionPrice = &v
		}
	}
	if p.Status != nil && !reconciled {
		t.Status = *p.Status
	}
	if p.TokenInDenom != nil {
		t.TokenInDenom = *p.TokenInDenom
	}
	if p.TokenOutDenom != nil {
		t.TokenOutDenom = *p.TokenOutDenom
	}
	if p.AmountInRaw != nil {
		t.AmountInRaw = *p.AmountInRaw
	}
	if p.AmountOutRaw != nil {
		t.AmountOutRaw = *p.AmountOutRaw
	}
	if p.PoolID != nil {
		t.PoolID = *p.PoolID
	}
	if p.MinOutRaw != nil {
		t.MinOutRaw = *p.MinOutRaw
	}
}

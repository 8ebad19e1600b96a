package ports

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// ErrTxNotFound is returned by a TxQuerier when the requested transaction is
// not (yet) known.
var ErrTxNotFound = errors.New("transaction not found on chain")

// SwapEvent is the outcome of a settled swap transaction.
type SwapEvent struct {
	PoolID   string
	TokenIn  Coin
	TokenOut Coin
	// MinOut is the min amount out, in base units of TokenOut, declared in
	// the swap message, if found.
	MinOut *decimal.Decimal
}

// TxQuerier is the abstraction of the read-only service used to retrieve the
// settled values of a transaction.
type TxQuerier interface {
	// GetSwapEvent returns the swap event emitted by the given transaction,
	// or nil if the transaction contains none.
	GetSwapEvent(ctx context.Context, txHash string) (*SwapEvent, error)
}

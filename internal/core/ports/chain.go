package ports

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Coin is an amount of a denomination expressed in base units.
type Coin struct {
	Denom  string
	Amount decimal.Decimal
}

// String returns the coin in the <amount><denom> format.
func (c Coin) String() string {
	return c.Amount.String() + c.Denom
}

// ParseCoin parses a string in the <amount><denom> format, ie. 1000000uosmo.
func ParseCoin(s string) (Coin, error) {
	s = strings.TrimSpace(s)
	i := strings.IndexFunc(s, func(r rune) bool { return r < '0' || r > '9' })
	if i <= 0 {
		return Coin{}, fmt.Errorf("invalid coin %q", s)
	}
	amount, err := decimal.NewFromString(s[:i])
	if err != nil {
		return Coin{}, fmt.Errorf("invalid coin %q: %w", s, err)
	}
	return Coin{Denom: s[i:], Amount: amount}, nil
}

// ParseCoins parses a comma separated list of coins.
func ParseCoins(s string) ([]Coin, error) {
	coins := make([]Coin, 0)
	for _, c := range strings.Split(s, ",") {
		if strings.TrimSpace(c) == "" {
			continue
		}
		coin, err := ParseCoin(c)
		if err != nil {
			return nil, err
		}
		coins = append(coins, coin)
	}
	return coins, nil
}

// SwapRequest holds the parameters of a swap through a single pool.
type SwapRequest struct {
	PoolID string
	// TokenIn is the amount sold.
	TokenIn Coin
	// TokenOutDenom is the denomination bought.
	TokenOutDenom string
	// MinOut is the min amount of TokenOutDenom accepted, in base units.
	MinOut decimal.Decimal
}

// ChainClient is the abstraction of the Osmosis client used to query the
// wallet and the pools and to submit swaps.
type ChainClient interface {
	// QueryBalances returns the balance of every denomination held by the
	// given address, in base units.
	QueryBalances(ctx context.Context, address string) (map[string]decimal.Decimal, error)
	// EstimateSwapExactAmountIn returns the amount of outDenom received, in
	// base units, by selling tokenIn into the given pool. Failures that are
	// expected to go away by themselves wrap domain.ErrTransientPrice.
	EstimateSwapExactAmountIn(
		ctx context.Context, poolID string, tokenIn Coin, outDenom string,
	) (decimal.Decimal, error)
	// SwapExactAmountIn submits the swap and returns the hash of the
	// transaction, or an empty string if the client didn't report one.
	SwapExactAmountIn(ctx context.Context, req SwapRequest) (string, error)
}

package oracle

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
)

type mockChainClient struct {
	mock.Mock
}

func (m *mockChainClient) QueryBalances(
	ctx context.Context, address string,
) (map[string]decimal.Decimal, error) {
	args := m.Called(ctx, address)

	var res map[string]decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(map[string]decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) EstimateSwapExactAmountIn(
	ctx context.Context, poolID string, tokenIn ports.Coin, outDenom string,
) (decimal.Decimal, error) {
	args := m.Called(ctx, poolID, tokenIn.String(), outDenom)

	var res decimal.Decimal
	if a := args.Get(0); a != nil {
		res = a.(decimal.Decimal)
	}
	return res, args.Error(1)
}

func (m *mockChainClient) SwapExactAmountIn(
	ctx context.Context, req ports.SwapRequest,
) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

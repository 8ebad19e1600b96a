package execution_test

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
	args := m.Called(ctx, poolID, tokenIn, outDenom)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *mockChainClient) SwapExactAmountIn(
	ctx context.Context, req ports.SwapRequest,
) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type mockTxQuerier struct {
	mock.Mock
}

func (m *mockTxQuerier) GetSwapEvent(
	ctx context.Context, txHash string,
) (*ports.SwapEvent, error) {
	args := m.Called(ctx, txHash)

	var res *ports.SwapEvent
	if a := args.Get(0); a != nil {
		res = a.(*ports.SwapEvent)
	}
	return res, args.Error(1)
}

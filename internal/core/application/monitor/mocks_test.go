package monitor_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/osmosis-trader/internal/core/application/execution"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

type mockPriceSource struct {
	mock.Mock
}

func (m *mockPriceSource) GetPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	args := m.Called(ctx, pairName)

	var res *domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.(*domain.PriceQuote)
	}
	return res, args.Error(1)
}

func (m *mockPriceSource) RefreshAll(ctx context.Context) []domain.PriceQuote {
	args := m.Called(ctx)

	var res []domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.([]domain.PriceQuote)
	}
	return res
}

type mockOrderExecutor struct {
	mock.Mock
}

func (m *mockOrderExecutor) ExecuteOrder(
	ctx context.Context, order domain.PendingOrder, decision domain.TriggerDecision,
) (*execution.Result, error) {
	args := m.Called(ctx, order.ID, decision)

	var res *execution.Result
	if a := args.Get(0); a != nil {
		res = a.(*execution.Result)
	}
	return res, args.Error(1)
}

type mockBalanceRefresher struct {
	mock.Mock
}

func (m *mockBalanceRefresher) RefreshBalances(
	ctx context.Context,
) ([]wallet.Balance, error) {
	args := m.Called(ctx)

	var res []wallet.Balance
	if a := args.Get(0); a != nil {
		res = a.([]wallet.Balance)
	}
	return res, args.Error(1)
}

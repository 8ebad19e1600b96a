package trade_test

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/osmosis-trader/internal/core/application/execution"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

type mockOracle struct {
	mock.Mock
}

func (m *mockOracle) GetPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	args := m.Called(ctx, pairName)

	var res *domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.(*domain.PriceQuote)
	}
	return res, args.Error(1)
}

func (m *mockOracle) Refresh(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	args := m.Called(ctx, pairName)

	var res *domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.(*domain.PriceQuote)
	}
	return res, args.Error(1)
}

func (m *mockOracle) RefreshAll(ctx context.Context) []domain.PriceQuote {
	args := m.Called(ctx)

	var res []domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.([]domain.PriceQuote)
	}
	return res
}

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Execute(
	ctx context.Context, req execution.Request,
) (*execution.Result, error) {
	args := m.Called(ctx, req)

	var res *execution.Result
	if a := args.Get(0); a != nil {
		res = a.(*execution.Result)
	}
	return res, args.Error(1)
}

func (m *mockExecutor) Reconcile(ctx context.Context, txHash string) (bool, error) {
	args := m.Called(ctx, txHash)
	return args.Bool(0), args.Error(1)
}

type mockWallet struct {
	mock.Mock
}

func (m *mockWallet) GetBalances(ctx context.Context) ([]wallet.Balance, error) {
	args := m.Called(ctx)

	var res []wallet.Balance
	if a := args.Get(0); a != nil {
		res = a.([]wallet.Balance)
	}
	return res, args.Error(1)
}

func (m *mockWallet) RefreshBalances(ctx context.Context) ([]wallet.Balance, error) {
	args := m.Called(ctx)

	var res []wallet.Balance
	if a := args.Get(0); a != nil {
		res = a.([]wallet.Balance)
	}
	return res, args.Error(1)
}

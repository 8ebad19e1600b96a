package httpinterface_test

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
	"github.com/tdex-network/osmosis-trader/internal/core/application/trade"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

type mockTradeService struct {
	mock.Mock
}

func (m *mockTradeService) PlaceMarketOrder(
	ctx context.Context, order trade.MarketOrder,
) (*domain.Transaction, error) {
	args := m.Called(ctx, order)

	var res *domain.Transaction
	if a := args.Get(0); a != nil {
		res = a.(*domain.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) PlaceLimitOrder(
	ctx context.Context, order trade.LimitOrder,
) (*domain.PendingOrder, error) {
	args := m.Called(ctx, order)

	var res *domain.PendingOrder
	if a := args.Get(0); a != nil {
		res = a.(*domain.PendingOrder)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) PlaceStopLossOrder(
	ctx context.Context, order trade.StopLossOrder,
) (*domain.PendingOrder, error) {
	args := m.Called(ctx, order)

	var res *domain.PendingOrder
	if a := args.Get(0); a != nil {
		res = a.(*domain.PendingOrder)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) CancelOrders(ctx context.Context, ids []string) error {
	args := m.Called(ctx, ids)
	return args.Error(0)
}

func (m *mockTradeService) ListPendingOrders(
	ctx context.Context,
) ([]domain.PendingOrder, error) {
	args := m.Called(ctx)

	var res []domain.PendingOrder
	if a := args.Get(0); a != nil {
		res = a.([]domain.PendingOrder)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) ListTransactions(
	ctx context.Context,
) ([]domain.Transaction, error) {
	args := m.Called(ctx)

	var res []domain.Transaction
	if a := args.Get(0); a != nil {
		res = a.([]domain.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) GetTransaction(
	ctx context.Context, txHash string,
) (*domain.Transaction, error) {
	args := m.Called(ctx, txHash)

	var res *domain.Transaction
	if a := args.Get(0); a != nil {
		res = a.(*domain.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) RefreshTransaction(
	ctx context.Context, txHash string,
) (*domain.Transaction, error) {
	args := m.Called(ctx, txHash)

	var res *domain.Transaction
	if a := args.Get(0); a != nil {
		res = a.(*domain.Transaction)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) ExportTransactionsCSV(
	ctx context.Context, w io.Writer,
) (int, error) {
	args := m.Called(ctx, w)
	if s := args.String(2); s != "" {
		//nolint
		io.WriteString(w, s)
	}
	return args.Int(0), args.Error(1)
}

func (m *mockTradeService) GetPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	args := m.Called(ctx, pairName)

	var res *domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.(*domain.PriceQuote)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) GetPrices(ctx context.Context) []domain.PriceQuote {
	args := m.Called(ctx)

	var res []domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.([]domain.PriceQuote)
	}
	return res
}

func (m *mockTradeService) RefreshPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	args := m.Called(ctx, pairName)

	var res *domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.(*domain.PriceQuote)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) RefreshPrices(ctx context.Context) []domain.PriceQuote {
	args := m.Called(ctx)

	var res []domain.PriceQuote
	if a := args.Get(0); a != nil {
		res = a.([]domain.PriceQuote)
	}
	return res
}

func (m *mockTradeService) GetBalances(ctx context.Context) ([]wallet.Balance, error) {
	args := m.Called(ctx)

	var res []wallet.Balance
	if a := args.Get(0); a != nil {
		res = a.([]wallet.Balance)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) RefreshBalances(
	ctx context.Context,
) ([]wallet.Balance, error) {
	args := m.Called(ctx)

	var res []wallet.Balance
	if a := args.Get(0); a != nil {
		res = a.([]wallet.Balance)
	}
	return res, args.Error(1)
}

func (m *mockTradeService) Pairs() []domain.TradingPair {
	args := m.Called()

	var res []domain.TradingPair
	if a := args.Get(0); a != nil {
		res = a.([]domain.TradingPair)
	}
	return res
}

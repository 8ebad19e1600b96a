package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

func TestTransactionApply(t *testing.T) {
	t.Run("executed", func(t *testing.T) {
		tx := newExecutedTx()
		status := domain.TxStatusReconciled
		actual, price := 29700.0, 59400.0
		denom, raw, pool := "uusdc", "29700000000", "1943"

		tx.Apply(domain.TransactionPatch{
			Status:          &status,
			ActualAmountOut: &actual,
			ExecutionPrice:  &price,
			TokenOutDenom:   &denom,
			AmountOutRaw:    &raw,
			PoolID:          &pool,
		})

		require.True(t, tx.IsReconciled())
		require.Equal(t, 29700.0, *tx.ActualAmountOut)
		require.Equal(t, 59400.0, *tx.ExecutionPrice)
		require.Equal(t, "uusdc", tx.TokenOutDenom)
		require.Equal(t, "29700000000", tx.AmountOutRaw)
		require.Equal(t, "1943", tx.PoolID)
		require.Empty(t, tx.TokenInDenom)
		require.Equal(t, 29750.0, *tx.ExpectedAmountOut)
	})

	t.Run("reconciled", func(t *testing.T) {
		tx := newExecutedTx()
		status := domain.TxStatusReconciled
		actual, price := 29700.0, 59400.0
		tx.Apply(domain.TransactionPatch{
			Status: &status, ActualAmountOut: &actual, ExecutionPrice: &price,
		})

		executed := domain.TxStatusExecuted
		otherActual, otherPrice := 1.0, 2.0
		pool := "1"
		tx.Apply(domain.TransactionPatch{
			Status:          &executed,
			ActualAmountOut: &otherActual,
			ExecutionPrice:  &otherPrice,
			PoolID:          &pool,
		})

		require.True(t, tx.IsReconciled())
		require.Equal(t, 29700.0, *tx.ActualAmountOut)
		require.Equal(t, 59400.0, *tx.ExecutionPrice)
		require.Equal(t, "1", tx.PoolID)
	})

	t.Run("empty_patch", func(t *testing.T) {
		tx := newExecutedTx()
		patch := domain.TransactionPatch{}
		require.True(t, patch.IsEmpty())

		before := *tx
		tx.Apply(patch)
		require.Equal(t, before, *tx)
	})
}

func TestIsSyntheticTxHash(t *testing.T) {
	require.True(t, domain.IsSyntheticTxHash("order-12"))
	require.True(t, domain.IsSyntheticTxHash("synthetic-a1b2c3d4"))
	require.False(t, domain.IsSyntheticTxHash("A1B2C3D4E5F6"))
	require.False(t, domain.IsSyntheticTxHash(""))
}

func TestTransactionExpectedPrice(t *testing.T) {
	tx := newExecutedTx()
	price := tx.ExpectedPrice(domain.BaseToQuote)
	require.NotNil(t, price)
	require.InDelta(t, 59500, *price, 1e-9)

	expected := 0.025
	buy := domain.Transaction{AmountIn: 1000, ExpectedAmountOut: &expected}
	price = buy.ExpectedPrice(domain.QuoteToBase)
	require.NotNil(t, price)
	require.InDelta(t, 40000, *price, 1e-6)

	require.Nil(t, domain.Transaction{AmountIn: 1}.ExpectedPrice(domain.BaseToQuote))
}

func newExecutedTx() *domain.Transaction {
	expected := 29750.0
	trigger := 60000.0
	return &domain.Transaction{
		TxHash:            "A1B2C3D4E5F6",
		OrderID:           "order-1",
		Timestamp:         time.Now(),
		Kind:              domain.OrderKindStopLoss,
		Status:            domain.TxStatusExecuted,
		FromToken:         "BTC",
		ToToken:           "USDC",
		AmountIn:          0.5,
		TriggerPrice:      &trigger,
		ExpectedAmountOut: &expected,
	}
}

package db_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	dbbadger "github.com/tdex-network/osmosis-trader/internal/infrastructure/storage/db/badger"
	dbsqlite "github.com/tdex-network/osmosis-trader/internal/infrastructure/storage/db/sqlite"
	"github.com/thanhpk/randstr"
)

type repoManager struct {
	Name string
	ports.RepoManager
}

func createRepoManagers(t *testing.T) []repoManager {
	badgerRepoManager, err := dbbadger.NewRepoManager("", nil)
	require.NoError(t, err)

	sqliteRepoManager, err := dbsqlite.NewRepoManager(t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() {
		badgerRepoManager.Close()
		sqliteRepoManager.Close()
	})

	return []repoManager{
		{Name: "badger", RepoManager: badgerRepoManager},
		{Name: "sqlite", RepoManager: sqliteRepoManager},
	}
}

var orderCount uint64

func makeRandomPendingOrder(createdAt time.Time) domain.PendingOrder {
	orderCount++
	minOut := 0.0001
	return domain.PendingOrder{
		ID:           domain.FormatOrderID(orderCount),
		CreatedAt:    createdAt.UTC(),
		FromToken:    "BTC",
		ToToken:      "USDC",
		Amount:       0.5,
		Kind:         domain.OrderKindStopLoss,
		TriggerPrice: 60000,
		MinOut:       &minOut,
	}
}

func makeRandomTransaction(orderID string, timestamp time.Time) domain.Transaction {
	expected := 29750.0
	return domain.Transaction{
		TxHash:            randstr.Hex(32),
		OrderID:           orderID,
		Timestamp:         timestamp.UTC(),
		Kind:              domain.OrderKindStopLoss,
		Status:            domain.TxStatusExecuted,
		FromToken:         "BTC",
		ToToken:           "USDC",
		AmountIn:          0.5,
		ExpectedAmountOut: &expected,
	}
}

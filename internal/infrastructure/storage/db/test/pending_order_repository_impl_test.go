package db_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

func TestPendingOrderRepositoryImplementations(t *testing.T) {
	repoManagers := createRepoManagers(t)

	for i := range repoManagers {
		repo := repoManagers[i]

		t.Run(repo.Name, func(t *testing.T) {
			t.Run("testAddAndGetPendingOrders", func(t *testing.T) {
				testAddAndGetPendingOrders(t, repo.PendingOrderRepository())
			})

			t.Run("testRemovePendingOrder", func(t *testing.T) {
				testRemovePendingOrder(t, repo.PendingOrderRepository())
			})

			t.Run("testAddInvalidPendingOrder", func(t *testing.T) {
				testAddInvalidPendingOrder(t, repo.PendingOrderRepository())
			})

			t.Run("testOrderCounter", func(t *testing.T) {
				testOrderCounter(t, repo.OrderCounterRepository())
			})
		})
	}
}

func testAddAndGetPendingOrders(t *testing.T, repo domain.PendingOrderRepository) {
	ctx := context.Background()
	now := time.Now()
	first := makeRandomPendingOrder(now.Add(-time.Minute))
	second := makeRandomPendingOrder(now)
	second.Kind = domain.OrderKindBuyLimit
	second.FromToken, second.ToToken = "USDC", "BTC"
	second.MinOut = nil

	// insert out of order to verify listing is sorted by creation time.
	require.NoError(t, repo.AddPendingOrder(ctx, second))
	require.NoError(t, repo.AddPendingOrder(ctx, first))

	err := repo.AddPendingOrder(ctx, first)
	require.ErrorIs(t, err, domain.ErrOrderAlreadyExists)

	orders, err := repo.GetAllPendingOrders(ctx)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(orders), 2)

	var firstIndex, secondIndex = -1, -1
	for i, o := range orders {
		switch o.ID {
		case first.ID:
			firstIndex = i
		case second.ID:
			secondIndex = i
		}
	}
	require.NotEqual(t, -1, firstIndex)
	require.NotEqual(t, -1, secondIndex)
	require.Less(t, firstIndex, secondIndex)

	order, err := repo.GetPendingOrder(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, second.Kind, order.Kind)
	require.Equal(t, second.FromToken, order.FromToken)
	require.Nil(t, order.MinOut)
	require.True(t, second.CreatedAt.Equal(order.CreatedAt))

	order, err = repo.GetPendingOrder(ctx, first.ID)
	require.NoError(t, err)
	require.NotNil(t, order.MinOut)
	require.Equal(t, *first.MinOut, *order.MinOut)
}

func testRemovePendingOrder(t *testing.T, repo domain.PendingOrderRepository) {
	ctx := context.Background()
	order := makeRandomPendingOrder(time.Now())
	require.NoError(t, repo.AddPendingOrder(ctx, order))

	// concurrent removals of the same order must all succeed.
	wg := &sync.WaitGroup{}
	errs := make(chan error, 5)
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- repo.RemovePendingOrder(ctx, order.ID)
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	_, err := repo.GetPendingOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)

	require.NoError(t, repo.RemovePendingOrder(ctx, "order-999999"))
}

func testAddInvalidPendingOrder(t *testing.T, repo domain.PendingOrderRepository) {
	ctx := context.Background()
	order := makeRandomPendingOrder(time.Now())
	order.Amount = 0

	err := repo.AddPendingOrder(ctx, order)
	require.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = repo.GetPendingOrder(ctx, order.ID)
	require.ErrorIs(t, err, domain.ErrOrderNotFound)
}

func testOrderCounter(t *testing.T, repo domain.OrderCounterRepository) {
	ctx := context.Background()

	value, err := repo.GetOrderCounter(ctx)
	require.NoError(t, err)
	require.Zero(t, value)

	require.NoError(t, repo.SetOrderCounter(ctx, 7))
	require.NoError(t, repo.SetOrderCounter(ctx, 12))

	value, err = repo.GetOrderCounter(ctx)
	require.NoError(t, err)
	require.Equal(t, uint64(12), value)
}

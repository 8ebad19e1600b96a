package trade

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
)

// OrderIDGenerator mints order ids that are strictly greater than any id
// ever stored, across restarts.
type OrderIDGenerator struct {
	repoManager ports.RepoManager

	lock sync.Mutex
	last uint64
}

// NewOrderIDGenerator restores the last minted id. The persisted counter is
// repaired if lower than the highest id found in the stored pending orders
// and transactions.
func NewOrderIDGenerator(
	ctx context.Context, repoManager ports.RepoManager,
) (*OrderIDGenerator, error) {
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}

	counter, err := repoManager.OrderCounterRepository().GetOrderCounter(ctx)
	if err != nil {
		return nil, err
	}
	highest, err := highestStoredOrderID(ctx, repoManager)
	if err != nil {
		return nil, err
	}

	if highest > counter {
		log.Warnf(
			"order counter %d is behind the highest stored order id %d, repairing",
			counter, highest,
		)
		if err := repoManager.OrderCounterRepository().SetOrderCounter(
			ctx, highest,
		); err != nil {
			return nil, err
		}
		counter = highest
	}

	return &OrderIDGenerator{repoManager: repoManager, last: counter}, nil
}

// Next mints and persists a new order id. The in-memory counter advances even
// if persisting fails, so an id is never minted twice within the process
// lifetime. The id that failed to persist is burned.
func (g *OrderIDGenerator) Next(ctx context.Context) (string, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	g.last++
	next := g.last
	if err := g.repoManager.OrderCounterRepository().SetOrderCounter(
		ctx, next,
	); err != nil {
		return "", err
	}

	return domain.FormatOrderID(next), nil
}

func highestStoredOrderID(
	ctx context.Context, repoManager ports.RepoManager,
) (uint64, error) {
	var highest uint64
	observe := func(id string) {
		if n, ok := domain.ParseOrderID(id); ok && n > highest {
			highest = n
		}
	}

	orders, err := repoManager.PendingOrderRepository().GetAllPendingOrders(ctx)
	if err != nil {
		return 0, err
	}
	for _, o := range orders {
		observe(o.ID)
	}

	txs, err := repoManager.TransactionRepository().GetAllTransactions(ctx)
	if err != nil {
		return 0, err
	}
	for _, tx := range txs {
		observe(tx.OrderID)
		// older records are logged with the order id in place of the hash.
		observe(tx.TxHash)
	}

	return highest, nil
}

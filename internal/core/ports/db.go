package ports

import "github.com/tdex-network/osmosis-trader/internal/core/domain"

// RepoManager interface defines the methods for pending orders, transactions
// and the order counter.
type RepoManager interface {
	PendingOrderRepository() domain.PendingOrderRepository
	TransactionRepository() domain.TransactionRepository
	OrderCounterRepository() domain.OrderCounterRepository

	Close()
}

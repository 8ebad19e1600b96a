package domain

import "context"

// PendingOrderRepository is the abstraction for any kind of database intended
// to persist pending orders.
type PendingOrderRepository interface {
	// AddPendingOrder validates and stores a new order. It returns
	// ErrOrderAlreadyExists if an order with the same id is already stored.
	AddPendingOrder(ctx context.Context, order PendingOrder) error
	// RemovePendingOrder deletes the order with the given id, if any. Removing
	// an order that doesn't exist is not an error.
	RemovePendingOrder(ctx context.Context, id string) error
	// GetPendingOrder returns the order with the given id or ErrOrderNotFound.
	GetPendingOrder(ctx context.Context, id string) (*PendingOrder, error)
	// GetAllPendingOrders returns all stored orders sorted by creation time.
	GetAllPendingOrders(ctx context.Context) ([]PendingOrder, error)
}

// TransactionRepository is the abstraction for any kind of database intended
// to persist the log of executed transactions.
type TransactionRepository interface {
	// AddTransaction stores a new transaction. It returns
	// ErrTransactionAlreadyExists if one with the same hash is already stored.
	AddTransaction(ctx context.Context, tx Transaction) error
	// UpdateTransaction merges the given patch into the transaction with the
	// given hash, in a transactional way. It returns ErrTransactionNotFound and
	// changes nothing if no such transaction exists.
	UpdateTransaction(ctx context.Context, txHash string, patch TransactionPatch) error
	// GetTransaction returns the transaction with the given hash or
	// ErrTransactionNotFound.
	GetTransaction(ctx context.Context, txHash string) (*Transaction, error)
	// GetTransactionByOrderID returns the transaction that executed the given
	// order or ErrTransactionNotFound.
	GetTransactionByOrderID(ctx context.Context, orderID string) (*Transaction, error)
	// GetAllTransactions returns all stored transactions sorted by timestamp.
	GetAllTransactions(ctx context.Context) ([]Transaction, error)
}

// OrderCounterRepository persists the counter used to mint order ids.
type OrderCounterRepository interface {
	GetOrderCounter(ctx context.Context) (uint64, error)
	SetOrderCounter(ctx context.Context, value uint64) error
}

package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/dgraph-io/badger/v3"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type transactionRepositoryImpl struct {
	store *badgerhold.Store
}

func NewTransactionRepositoryImpl(
	store *badgerhold.Store,
) domain.TransactionRepository {
	return &transactionRepositoryImpl{store}
}

func (r *transactionRepositoryImpl) AddTransaction(
	ctx context.Context, tx domain.Transaction,
) error {
	if err := r.store.Insert(tx.TxHash, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrTransactionAlreadyExists
		}
		return storeErr(err)
	}
	return nil
}

func (r *transactionRepositoryImpl) UpdateTransaction(
	ctx context.Context, txHash string, patch domain.TransactionPatch,
) error {
	if patch.IsEmpty() {
		_, err := r.GetTransaction(ctx, txHash)
		return err
	}

	err := r.store.Badger().Update(func(txn *badger.Txn) error {
		var tx domain.Transaction
		if err := r.store.TxGet(txn, txHash, &tx); err != nil {
			return err
		}
		tx.Apply(patch)
		return r.store.TxUpdate(txn, txHash, &tx)
	})
	if err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return domain.ErrTransactionNotFound
		}
		return storeErr(err)
	}
	return nil
}

func (r *transactionRepositoryImpl) GetTransaction(
	ctx context.Context, txHash string,
) (*domain.Transaction, error) {
	var tx domain.Transaction
	if err := r.store.Get(txHash, &tx); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrTransactionNotFound
		}
		return nil, storeErr(err)
	}
	return &tx, nil
}

func (r *transactionRepositoryImpl) GetTransactionByOrderID(
	ctx context.Context, orderID string,
) (*domain.Transaction, error) {
	var txs []domain.Transaction
	query := badgerhold.Where("OrderID").Eq(orderID).Limit(1)
	if err := r.store.Find(&txs, query); err != nil {
		return nil, storeErr(err)
	}
	if len(txs) <= 0 {
		return nil, domain.ErrTransactionNotFound
	}
	return &txs[0], nil
}

func (r *transactionRepositoryImpl) GetAllTransactions(
	ctx context.Context,
) ([]domain.Transaction, error) {
	var txs []domain.Transaction
	if err := r.store.Find(&txs, nil); err != nil {
		return nil, storeErr(err)
	}

	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.Before(txs[j].Timestamp)
	})
	return txs, nil
}

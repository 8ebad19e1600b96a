package dbsqlite

import (
	"context"
	"errors"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"gorm.io/gorm"
)

type transactionRepositoryImpl struct {
	db *gorm.DB
}

func NewTransactionRepositoryImpl(db *gorm.DB) domain.TransactionRepository {
	return &transactionRepositoryImpl{db}
}

func (r *transactionRepositoryImpl) AddTransaction(
	ctx context.Context, tx domain.Transaction,
) error {
	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var count int64
		if err := db.Model(&transactionModel{}).
			Where("tx_hash = ?", tx.TxHash).Count(&count).Error; err != nil {
			return storeErr(err)
		}
		if count > 0 {
			return domain.ErrTransactionAlreadyExists
		}

		m := newTransactionModel(tx)
		if err := db.Create(&m).Error; err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (r *transactionRepositoryImpl) UpdateTransaction(
	ctx context.Context, txHash string, patch domain.TransactionPatch,
) error {
	if patch.IsEmpty() {
		_, err := r.GetTransaction(ctx, txHash)
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		var m transactionModel
		err := db.Where("tx_hash = ?", txHash).First(&m).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrTransactionNotFound
		}
		if err != nil {
			return storeErr(err)
		}

		tx := m.toDomain()
		tx.Apply(patch)
		updated := newTransactionModel(tx)
		if err := db.Save(&updated).Error; err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (r *transactionRepositoryImpl) GetTransaction(
	ctx context.Context, txHash string,
) (*domain.Transaction, error) {
	return r.findOne(ctx, "tx_hash = ?", txHash)
}

func (r *transactionRepositoryImpl) GetTransactionByOrderID(
	ctx context.Context, orderID string,
) (*domain.Transaction, error) {
	return r.findOne(ctx, "order_id = ?", orderID)
}

func (r *transactionRepositoryImpl) GetAllTransactions(
	ctx context.Context,
) ([]domain.Transaction, error) {
	var models []transactionModel
	if err := r.db.WithContext(ctx).
		Order("timestamp ASC").Find(&models).Error; err != nil {
		return nil, storeErr(err)
	}

	txs := make([]domain.Transaction, 0, len(models))
	for _, m := range models {
		txs = append(txs, m.toDomain())
	}
	return txs, nil
}

func (r *transactionRepositoryImpl) findOne(
	ctx context.Context, query string, arg string,
) (*domain.Transaction, error) {
	var m transactionModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	tx := m.toDomain()
	return &tx, nil
}

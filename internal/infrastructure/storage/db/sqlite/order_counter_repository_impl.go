package dbsqlite

import (
	"context"
	"errors"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"gorm.io/gorm"
)

// the counter is a single row table.
const orderCounterID = 1

type orderCounterRepositoryImpl struct {
	db *gorm.DB
}

func NewOrderCounterRepositoryImpl(db *gorm.DB) domain.OrderCounterRepository {
	return &orderCounterRepositoryImpl{db}
}

func (r *orderCounterRepositoryImpl) GetOrderCounter(
	ctx context.Context,
) (uint64, error) {
	var m orderCounterModel
	err := r.db.WithContext(ctx).Where("id = ?", orderCounterID).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, storeErr(err)
	}
	return m.Value, nil
}

func (r *orderCounterRepositoryImpl) SetOrderCounter(
	ctx context.Context, value uint64,
) error {
	m := orderCounterModel{ID: orderCounterID, Value: value}
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

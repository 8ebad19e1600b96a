package dbsqlite

import (
	"context"
	"errors"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"gorm.io/gorm"
)

type pendingOrderRepositoryImpl struct {
	db *gorm.DB
}

func NewPendingOrderRepositoryImpl(db *gorm.DB) domain.PendingOrderRepository {
	return &pendingOrderRepositoryImpl{db}
}

func (r *pendingOrderRepositoryImpl) AddPendingOrder(
	ctx context.Context, order domain.PendingOrder,
) error {
	if err := order.Validate(); err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&pendingOrderModel{}).
			Where("id = ?", order.ID).Count(&count).Error; err != nil {
			return storeErr(err)
		}
		if count > 0 {
			return domain.ErrOrderAlreadyExists
		}

		m := newPendingOrderModel(order)
		if err := tx.Create(&m).Error; err != nil {
			return storeErr(err)
		}
		return nil
	})
}

func (r *pendingOrderRepositoryImpl) RemovePendingOrder(
	ctx context.Context, id string,
) error {
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).Delete(&pendingOrderModel{}).Error; err != nil {
		return storeErr(err)
	}
	return nil
}

func (r *pendingOrderRepositoryImpl) GetPendingOrder(
	ctx context.Context, id string,
) (*domain.PendingOrder, error) {
	var m pendingOrderModel
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrOrderNotFound
	}
	if err != nil {
		return nil, storeErr(err)
	}
	order := m.toDomain()
	return &order, nil
}

func (r *pendingOrderRepositoryImpl) GetAllPendingOrders(
	ctx context.Context,
) ([]domain.PendingOrder, error) {
	var models []pendingOrderModel
	if err := r.db.WithContext(ctx).
		Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, storeErr(err)
	}

	orders := make([]domain.PendingOrder, 0, len(models))
	for _, m := range models {
		orders = append(orders, m.toDomain())
	}
	return orders, nil
}

package dbbadger

import (
	"context"
	"errors"
	"sort"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

type pendingOrderRepositoryImpl struct {
	store *badgerhold.Store
}

func NewPendingOrderRepositoryImpl(
	store *badgerhold.Store,
) domain.PendingOrderRepository {
	return &pendingOrderRepositoryImpl{store}
}

func (r *pendingOrderRepositoryImpl) AddPendingOrder(
	ctx context.Context, order domain.PendingOrder,
) error {
	if err := order.Validate(); err != nil {
		return err
	}

	if err := r.store.Insert(order.ID, &order); err != nil {
		if errors.Is(err, badgerhold.ErrKeyExists) {
			return domain.ErrOrderAlreadyExists
		}
		return storeErr(err)
	}
	return nil
}

func (r *pendingOrderRepositoryImpl) RemovePendingOrder(
	ctx context.Context, id string,
) error {
	if err := r.store.Delete(id, domain.PendingOrder{}); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil
		}
		return storeErr(err)
	}
	return nil
}

func (r *pendingOrderRepositoryImpl) GetPendingOrder(
	ctx context.Context, id string,
) (*domain.PendingOrder, error) {
	var order domain.PendingOrder
	if err := r.store.Get(id, &order); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, storeErr(err)
	}
	return &order, nil
}

func (r *pendingOrderRepositoryImpl) GetAllPendingOrders(
	ctx context.Context,
) ([]domain.PendingOrder, error) {
	var orders []domain.PendingOrder
	if err := r.store.Find(&orders, nil); err != nil {
		return nil, storeErr(err)
	}

	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].CreatedAt.Before(orders[j].CreatedAt)
	})
	return orders, nil
}

package dbbadger

import (
	"context"
	"errors"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/timshannon/badgerhold/v4"
)

const orderCounterKey = "order_counter"

type orderCounterRepositoryImpl struct {
	store *badgerhold.Store
}

func NewOrderCounterRepositoryImpl(
	store *badgerhold.Store,
) domain.OrderCounterRepository {
	return &orderCounterRepositoryImpl{store}
}

func (r *orderCounterRepositoryImpl) GetOrderCounter(
	ctx context.Context,
) (uint64, error) {
	var counter domain.OrderCounter
	if err := r.store.Get(orderCounterKey, &counter); err != nil {
		if errors.Is(err, badgerhold.ErrNotFound) {
			return 0, nil
		}
		return 0, storeErr(err)
	}
	return counter.Value, nil
}

func (r *orderCounterRepositoryImpl) SetOrderCounter(
	ctx context.Context, value uint64,
) error {
	if err := r.store.Upsert(
		orderCounterKey, &domain.OrderCounter{Value: value},
	); err != nil {
		return storeErr(err)
	}
	return nil
}

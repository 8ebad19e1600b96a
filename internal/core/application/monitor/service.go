package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/application/execution"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

const (
	DefaultOrderCheckInterval     = 10 * time.Second
	DefaultPriceRefreshInterval   = 30 * time.Second
	DefaultBalanceRefreshInterval = 30 * time.Second
)

// PriceSource is the subset of the price oracle used by the monitor.
type PriceSource interface {
	GetPrice(ctx context.Context, pairName string) (*domain.PriceQuote, error)
	RefreshAll(ctx context.Context) []domain.PriceQuote
}

// OrderExecutor executes triggered orders.
type OrderExecutor interface {
	ExecuteOrder(
		ctx context.Context, order domain.PendingOrder, decision domain.TriggerDecision,
	) (*execution.Result, error)
}

// BalanceRefresher refreshes the balances of the wallet.
type BalanceRefresher interface {
	RefreshBalances(ctx context.Context) ([]wallet.Balance, error)
}

type Config struct {
	OrderCheckInterval     time.Duration
	PriceRefreshInterval   time.Duration
	BalanceRefreshInterval time.Duration
}

func (c Config) withDefaults() Config {
	if c.OrderCheckInterval <= 0 {
		c.OrderCheckInterval = DefaultOrderCheckInterval
	}
	if c.PriceRefreshInterval <= 0 {
		c.PriceRefreshInterval = DefaultPriceRefreshInterval
	}
	if c.BalanceRefreshInterval <= 0 {
		c.BalanceRefreshInterval = DefaultBalanceRefreshInterval
	}
	return c
}

// Service periodically checks the pending orders against the current prices
// and executes those triggered. It also keeps the prices and balances
// up to date in background.
type Service struct {
	orderRepo domain.PendingOrderRepository
	prices    PriceSource
	executor  OrderExecutor
	balances  BalanceRefresher
	cfg       Config

	lock    sync.Mutex
	cancel  context.CancelFunc
	wg      *sync.WaitGroup
	running bool
}

func NewService(
	orderRepo domain.PendingOrderRepository,
	prices PriceSource,
	executor OrderExecutor,
	balances BalanceRefresher,
	cfg Config,
) (*Service, error) {
	if orderRepo == nil {
		return nil, fmt.Errorf("missing pending order repository")
	}
	if prices == nil {
		return nil, fmt.Errorf("missing price source")
	}
	if executor == nil {
		return nil, fmt.Errorf("missing order executor")
	}

	return &Service{
		orderRepo: orderRepo,
		prices:    prices,
		executor:  executor,
		balances:  balances,
		cfg:       cfg.withDefaults(),
		wg:        &sync.WaitGroup{},
	}, nil
}

// Start runs the background loops until Stop is called or the given context
// is canceled. Every loop waits a full interval before its first run.
func (s *Service) Start(ctx context.Context) error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if s.running {
		return fmt.Errorf("monitor is already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.running = true

	s.loop(ctx, "order check", s.cfg.OrderCheckInterval, func(ctx context.Context) {
		if _, err := s.CheckOrders(ctx); err != nil {
			log.WithError(err).Warn("failed to check pending orders")
		}
	})
	s.loop(ctx, "price refresh", s.cfg.PriceRefreshInterval, func(ctx context.Context) {
		s.RefreshPrices(ctx)
	})
	if s.balances != nil {
		s.loop(ctx, "balance refresh", s.cfg.BalanceRefreshInterval, func(ctx context.Context) {
			if _, err := s.balances.RefreshBalances(ctx); err != nil {
				log.WithError(err).Warn("failed to refresh balances")
			}
		})
	}

	log.Info("order monitor started")
	return nil
}

// Stop cancels the background loops and waits for them to return.
func (s *Service) Stop() {
	s.lock.Lock()
	if !s.running {
		s.lock.Unlock()
		return
	}
	s.running = false
	s.cancel()
	s.lock.Unlock()

	s.wg.Wait()
	log.Info("order monitor stopped")
}

// CheckOrders evaluates every pending order against the current price of its
// pair and executes the triggered ones. Orders are never triggered by
// fallback prices. The failure of an order doesn't prevent the others from
// being checked. It returns the number of executed orders.
func (s *Service) CheckOrders(ctx context.Context) (int, error) {
	orders, err := s.orderRepo.GetAllPendingOrders(ctx)
	if err != nil {
		return 0, err
	}
	if len(orders) <= 0 {
		return 0, nil
	}

	quotes := make(map[string]*domain.PriceQuote)
	count := 0
	for _, order := range orders {
		if ctx.Err() != nil {
			return count, ctx.Err()
		}

		pairName := order.PairName()
		quote, ok := quotes[pairName]
		if !ok {
			quote, err = s.prices.GetPrice(ctx, pairName)
			if err != nil {
				log.WithError(err).Warnf("skipping orders on pair %s", pairName)
			}
			quotes[pairName] = quote
		}
		if quote == nil {
			continue
		}
		if quote.IsFallback() {
			log.Debugf(
				"skipping order %s, no market price available for %s",
				order.ID, pairName,
			)
			continue
		}

		decision, triggered := domain.EvaluateTrigger(order, *quote)
		if !triggered {
			continue
		}

		log.WithFields(log.Fields{
			"order": order.ID,
			"kind":  order.Kind,
			"price": decision.Price,
		}).Infof("order triggered, executing")

		res, err := s.executor.ExecuteOrder(ctx, order, decision)
		if err != nil {
			log.WithError(err).Warnf("failed to execute order %s", order.ID)
		}
		if res != nil {
			count++
		}
	}

	return count, nil
}

// RefreshPrices samples the price of every configured pair.
func (s *Service) RefreshPrices(ctx context.Context) []domain.PriceQuote {
	return s.prices.RefreshAll(ctx)
}

func (s *Service) loop(
	ctx context.Context, name string, interval time.Duration,
	tick func(context.Context),
) {
	s.wg.Add(1)

	go func() {
		defer s.wg.Done()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		log.Debugf("%s loop started, interval %s", name, interval)
		for {
			select {
			case <-ctx.Done():
				log.Debugf("%s loop stopped", name)
				return
			case <-ticker.C:
				tick(ctx)
			}
		}
	}()
}

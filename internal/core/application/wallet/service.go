package wallet

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
)

// Balance is the amount of a known token held by the wallet.
type Balance struct {
	Symbol string
	Amount float64
}

// Service keeps track of the balances of the trading wallet.
type Service struct {
	registry *domain.TokenRegistry
	client   ports.ChainClient
	address  string

	lock      sync.RWMutex
	balances  map[string]float64
	updatedAt time.Time
}

func NewService(
	registry *domain.TokenRegistry, client ports.ChainClient, address string,
) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("missing token registry")
	}
	if client == nil {
		return nil, fmt.Errorf("missing chain client")
	}
	if len(address) <= 0 {
		return nil, fmt.Errorf("missing wallet address")
	}

	return &Service{
		registry: registry,
		client:   client,
		address:  address,
		balances: make(map[string]float64),
	}, nil
}

// GetBalances returns the last known balances, fetching them if never done
// before. Every known token is listed, sorted by symbol.
func (s *Service) GetBalances(ctx context.Context) ([]Balance, error) {
	s.lock.RLock()
	fetched := !s.updatedAt.IsZero()
	s.lock.RUnlock()

	if !fetched {
		return s.RefreshBalances(ctx)
	}
	return s.list(), nil
}

// RefreshBalances fetches the balances of the wallet from chain. Denoms not
// matching any known token are ignored.
func (s *Service) RefreshBalances(ctx context.Context) ([]Balance, error) {
	rawBalances, err := s.client.QueryBalances(ctx, s.address)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]float64)
	for denom, amount := range rawBalances {
		token, ok := s.registry.TokenForDenom(denom)
		if !ok {
			log.Debugf("ignoring balance of unknown denom %s", denom)
			continue
		}
		balances[token.Symbol] += token.FromUnits(amount)
	}

	s.lock.Lock()
	s.balances = balances
	s.updatedAt = time.Now()
	s.lock.Unlock()

	return s.list(), nil
}

func (s *Service) list() []Balance {
	s.lock.RLock()
	defer s.lock.RUnlock()

	tokens := s.registry.Tokens()
	list := make([]Balance, 0, len(tokens))
	for _, t := range tokens {
		list = append(list, Balance{Symbol: t.Symbol, Amount: s.balances[t.Symbol]})
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].Symbol < list[j].Symbol
	})
	return list
}

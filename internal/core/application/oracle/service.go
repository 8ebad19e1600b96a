package oracle

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/pkg/stats"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

const (
	// DefaultCacheTTL is how long a sampled quote is served without sampling
	// the pool again.
	DefaultCacheTTL = 15 * time.Second
	// DefaultSampleTimeout bounds a pool sample shared by concurrent callers.
	DefaultSampleTimeout = 30 * time.Second
)

// Config holds the tunables of the price oracle. Zero values are replaced
// with defaults.
type Config struct {
	CacheTTL        time.Duration
	CacheSize       int
	StalenessWindow time.Duration
	SampleTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CacheSize <= 0 {
		c.CacheSize = domain.DefaultPriceCacheSize
	}
	if c.StalenessWindow <= 0 {
		c.StalenessWindow = domain.DefaultPriceStalenessWindow
	}
	if c.SampleTimeout <= 0 {
		c.SampleTimeout = DefaultSampleTimeout
	}
	return c
}

// Service returns the current price of the configured pairs by sampling the
// pools with small swap estimations. When sampling fails, it falls back to a
// cached quote if acceptable, then to the hard-coded price of the pair.
type Service struct {
	registry *domain.TokenRegistry
	client   ports.ChainClient
	cfg      Config
	now      func() time.Time

	lock  sync.RWMutex
	cache map[string]domain.PriceQuote
	group singleflight.Group
}

func NewService(
	registry *domain.TokenRegistry, client ports.ChainClient, cfg Config,
) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("missing token registry")
	}
	if client == nil {
		return nil, fmt.Errorf("missing chain client")
	}

	return &Service{
		registry: registry,
		client:   client,
		cfg:      cfg.withDefaults(),
		now:      time.Now,
		cache:    make(map[string]domain.PriceQuote),
	}, nil
}

// GetPrice returns a quote for the given pair. A cached quote is served as
// long as it's fresh, otherwise the pool is sampled.
func (s *Service) GetPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	pair, err := s.registry.Pair(pairName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPriceUnavailable, err)
	}

	if quote, ok := s.cachedQuote(pair.Name); ok &&
		quote.Age(s.now()) < s.cfg.CacheTTL {
		return s.serve(quote.WithSource(domain.QuoteSourceCached)), nil
	}

	return s.fetch(ctx, pair)
}

// Refresh samples the pool of the given pair regardless of the cache status.
func (s *Service) Refresh(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	pair, err := s.registry.Pair(pairName)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrPriceUnavailable, err)
	}
	return s.fetch(ctx, pair)
}

// RefreshAll samples every configured pair concurrently and returns the
// quotes obtained, in the order of the pairs. Pairs for which no quote could
// be served are logged and skipped.
func (s *Service) RefreshAll(ctx context.Context) []domain.PriceQuote {
	pairs := s.registry.Pairs()
	results := make([]*domain.PriceQuote, len(pairs))

	eg := &errgroup.Group{}
	for i, pair := range pairs {
		i, pair := i, pair
		eg.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			quote, err := s.fetch(ctx, pair)
			if err != nil {
				log.WithError(err).Warnf("failed to refresh price of %s", pair.Name)
				return nil
			}
			results[i] = quote
			return nil
		})
	}
	//nolint
	eg.Wait()

	quotes := make([]domain.PriceQuote, 0, len(pairs))
	for _, quote := range results {
		if quote != nil {
			quotes = append(quotes, *quote)
		}
	}
	return quotes
}

func (s *Service) fetch(
	ctx context.Context, pair domain.TradingPair,
) (*domain.PriceQuote, error) {
	// concurrent samples for the same pair share the result of the first one.
	// The sample outlives the caller that started it, so that canceling one
	// caller doesn't fail the others waiting for the same result.
	ch := s.group.DoChan(pair.Name, func() (interface{}, error) {
		sampleCtx, cancel := context.WithTimeout(
			context.WithoutCancel(ctx), s.cfg.SampleTimeout,
		)
		defer cancel()
		return s.sample(sampleCtx, pair)
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w for %s: %w", domain.ErrPriceUnavailable, pair.Name, ctx.Err())
	case res = <-ch:
	}
	if res.Err == nil {
		quote := res.Val.(domain.PriceQuote)
		return s.serve(&quote), nil
	}

	quote, fallbackErr := s.fallback(pair, res.Err)
	if fallbackErr != nil {
		return nil, fallbackErr
	}
	return s.serve(quote), nil
}

func (s *Service) sample(
	ctx context.Context, pair domain.TradingPair,
) (domain.PriceQuote, error) {
	baseIn := ports.Coin{
		Denom:  pair.Base.Denom,
		Amount: pair.Base.ToUnits(pair.BaseSampleAmount),
	}
	quoteOut, err := s.client.EstimateSwapExactAmountIn(
		ctx, pair.PoolID, baseIn, pair.Quote.Denom,
	)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	quoteIn := ports.Coin{
		Denom:  pair.Quote.Denom,
		Amount: pair.Quote.ToUnits(pair.QuoteSampleAmount),
	}
	baseOut, err := s.client.EstimateSwapExactAmountIn(
		ctx, pair.PoolID, quoteIn, pair.Base.Denom,
	)
	if err != nil {
		return domain.PriceQuote{}, err
	}

	quote := domain.PriceQuote{
		Pair:         pair,
		BasePerQuote: pair.Quote.FromUnits(quoteOut) / pair.BaseSampleAmount,
		QuotePerBase: pair.Base.FromUnits(baseOut) / pair.QuoteSampleAmount,
		CapturedAt:   s.now(),
		Source:       domain.QuoteSourceLive,
	}
	if !quote.IsValid() {
		return domain.PriceQuote{}, fmt.Errorf(
			"invalid quote for %s: base_per_quote %v, quote_per_base %v",
			pair.Name, quote.BasePerQuote, quote.QuotePerBase,
		)
	}

	s.storeQuote(quote)
	return quote, nil
}

func (s *Service) fallback(
	pair domain.TradingPair, sampleErr error,
) (*domain.PriceQuote, error) {
	now := s.now()
	cached, ok := s.cachedQuote(pair.Name)

	if ok && errors.Is(sampleErr, domain.ErrTransientPrice) {
		log.WithError(sampleErr).Debugf(
			"serving cached price of %s captured %s ago",
			pair.Name, cached.Age(now).Round(time.Second),
		)
		return cached.WithSource(domain.QuoteSourceStale), nil
	}

	if ok && cached.Age(now) < s.cfg.StalenessWindow {
		log.WithError(sampleErr).Warnf(
			"failed to sample price of %s, serving cached one captured %s ago",
			pair.Name, cached.Age(now).Round(time.Second),
		)
		return cached.WithSource(domain.QuoteSourceStale), nil
	}

	if quote, ok := domain.NewFallbackQuote(pair, now); ok {
		log.WithError(sampleErr).Warnf(
			"failed to sample price of %s, serving fallback price %v",
			pair.Name, pair.FallbackPrice,
		)
		return quote, nil
	}

	return nil, fmt.Errorf(
		"%w for %s: %w", domain.ErrPriceUnavailable, pair.Name, sampleErr,
	)
}

func (s *Service) serve(quote *domain.PriceQuote) *domain.PriceQuote {
	stats.PriceQuotes.WithLabelValues(
		quote.Pair.Name, string(quote.Source),
	).Inc()
	return quote
}

func (s *Service) cachedQuote(pairName string) (domain.PriceQuote, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	quote, ok := s.cache[pairName]
	return quote, ok
}

// storeQuote adds the quote to the cache and evicts the oldest entries until
// the cache size is within the limit.
func (s *Service) storeQuote(quote domain.PriceQuote) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.cache[quote.Pair.Name] = quote

	for len(s.cache) > s.cfg.CacheSize {
		var oldest string
		var oldestTime time.Time
		for name, q := range s.cache {
			if len(oldest) <= 0 || q.CapturedAt.Before(oldestTime) {
				oldest, oldestTime = name, q.CapturedAt
			}
		}
		delete(s.cache, oldest)
	}
}

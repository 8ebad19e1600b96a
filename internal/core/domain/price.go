package domain

import (
	"time"

	"github.com/tdex-network/osmosis-trader/pkg/mathutil"
)

// QuoteSource tells where a quote served by the price oracle comes from.
type QuoteSource string

const (
	// QuoteSourceLive is a quote just obtained by probing the pool.
	QuoteSourceLive QuoteSource = "live"
	// QuoteSourceCached is a quote served from cache while still fresh.
	QuoteSourceCached QuoteSource = "cached"
	// QuoteSourceStale is a cached quote served because probing failed.
	QuoteSourceStale QuoteSource = "stale"
	// QuoteSourceFallback is the hard-coded last-resort price of a pair.
	QuoteSourceFallback QuoteSource = "fallback"
)

// PriceQuote is the price of a pair in both directions at a given time.
// BasePerQuote is the amount of quote token received for one unit of base
// token (ie. USDC per BTC), QuotePerBase the amount of base token received
// for one unit of quote token. They are measured independently and are not
// expected to be exact reciprocals.
type PriceQuote struct {
	Pair         TradingPair
	BasePerQuote float64
	QuotePerBase float64
	CapturedAt   time.Time
	Source       QuoteSource
}

// NewFallbackQuote returns the last-resort quote of a pair, if any.
func NewFallbackQuote(pair TradingPair, now time.Time) (*PriceQuote, bool) {
	if !mathutil.IsPositive(pair.FallbackPrice) {
		return nil, false
	}
	return &PriceQuote{
		Pair:         pair,
		BasePerQuote: pair.FallbackPrice,
		QuotePerBase: 1 / pair.FallbackPrice,
		CapturedAt:   now,
		Source:       QuoteSourceFallback,
	}, true
}

// IsValid returns whether both prices are finite positive numbers.
func (q PriceQuote) IsValid() bool {
	return mathutil.IsPositive(q.BasePerQuote) && mathutil.IsPositive(q.QuotePerBase)
}

// Age returns how long ago the quote was captured.
func (q PriceQuote) Age(now time.Time) time.Duration {
	return now.Sub(q.CapturedAt)
}

// IsFallback ...
func (q PriceQuote) IsFallback() bool {
	return q.Source == QuoteSourceFallback
}

// WithSource returns a copy of the quote with the given source.
func (q PriceQuote) WithSource(source QuoteSource) *PriceQuote {
	q.Source = source
	return &q
}

// ExpectedOut returns the amount received by swapping amount in the given
// direction at the quoted prices.
func (q PriceQuote) ExpectedOut(amount float64, dir Direction) float64 {
	if dir == QuoteToBase {
		return amount * q.QuotePerBase
	}
	return amount * q.BasePerQuote
}

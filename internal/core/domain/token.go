package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/osmosis-trader/pkg/mathutil"
)

// Token is an asset known to the trader.
type Token struct {
	Symbol   string
	Denom    string
	Decimals int32
	// Pattern, if defined, resolves to this token any denomination ending with
	// it. Tokens without a pattern are matched only by their exact denom.
	Pattern string
}

// ToUnits converts a human readable amount to base units.
func (t Token) ToUnits(amount float64) decimal.Decimal {
	return mathutil.ToUnits(amount, t.Decimals)
}

// FromUnits converts base units to a human readable amount.
func (t Token) FromUnits(units decimal.Decimal) float64 {
	return mathutil.FromUnits(units, t.Decimals)
}

// PairInfo describes a tradable pool in terms of token symbols.
type PairInfo struct {
	PoolID           string
	BaseSymbol       string
	QuoteSymbol      string
	BaseSampleAmount  float64
	QuoteSampleAmount float64
	FallbackPrice    float64
}

// TradingPair is the immutable configuration of a pool pairing a base token
// with a quote token.
type TradingPair struct {
	Name   string
	PoolID string
	Base   Token
	Quote  Token
	// BaseSampleAmount and QuoteSampleAmount are the small notional amounts
	// used to sample the marginal price of the pool.
	BaseSampleAmount  float64
	QuoteSampleAmount float64
	// FallbackPrice is the last-resort base_per_quote price served when no
	// live or cached quote is available. Zero means no fallback.
	FallbackPrice float64
}

// PairName returns the canonical name of a pair, ie. BTC/USDC.
func PairName(base, quote string) string {
	return fmt.Sprintf("%s/%s", base, quote)
}

// Direction tells whether a swap sells the base or the quote token of a pair.
type Direction int

const (
	// BaseToQuote sells the base token for the quote one.
	BaseToQuote Direction = iota
	// QuoteToBase sells the quote token for the base one.
	QuoteToBase
)

func (d Direction) String() string {
	if d == QuoteToBase {
		return "quote->base"
	}
	return "base->quote"
}

// TokenRegistry resolves symbols, denominations and pairs. It's immutable
// once created and therefore safe for concurrent use.
type TokenRegistry struct {
	bySymbol map[string]Token
	byDenom  map[string]Token
	patterns []Token
	pairs    map[string]TradingPair
	names    []string
}

// NewTokenRegistry validates the given tokens and pairs and returns a new
// registry.
func NewTokenRegistry(tokens []Token, pairs []PairInfo) (*TokenRegistry, error) {
	r := &TokenRegistry{
		bySymbol: make(map[string]Token),
		byDenom:  make(map[string]Token),
		pairs:    make(map[string]TradingPair),
	}

	for _, t := range tokens {
		if t.Symbol == "" || t.Denom == "" {
			return nil, fmt.Errorf("token must have both symbol and denom")
		}
		if t.Decimals < 0 || t.Decimals > 18 {
			return nil, fmt.Errorf("token %s: decimals must be in range [0, 18]", t.Symbol)
		}
		if _, ok := r.bySymbol[t.Symbol]; ok {
			return nil, fmt.Errorf("duplicated token symbol %s", t.Symbol)
		}
		if _, ok := r.byDenom[t.Denom]; ok {
			return nil, fmt.Errorf("duplicated token denom %s", t.Denom)
		}
		r.bySymbol[t.Symbol] = t
		r.byDenom[t.Denom] = t
		if t.Pattern != "" {
			r.patterns = append(r.patterns, t)
		}
	}
	// longest patterns first so that the most specific one wins.
	sort.SliceStable(r.patterns, func(i, j int) bool {
		return len(r.patterns[i].Pattern) > len(r.patterns[j].Pattern)
	})

	for _, p := range pairs {
		base, ok := r.bySymbol[p.BaseSymbol]
		if !ok {
			return nil, fmt.Errorf("pair %s: %w %s", p.PoolID, ErrUnknownToken, p.BaseSymbol)
		}
		quote, ok := r.bySymbol[p.QuoteSymbol]
		if !ok {
			return nil, fmt.Errorf("pair %s: %w %s", p.PoolID, ErrUnknownToken, p.QuoteSymbol)
		}
		if p.PoolID == "" {
			return nil, fmt.Errorf("pair %s/%s: missing pool id", base.Symbol, quote.Symbol)
		}
		if !mathutil.IsPositive(p.BaseSampleAmount) || !mathutil.IsPositive(p.QuoteSampleAmount) {
			return nil, fmt.Errorf(
				"pair %s/%s: sample amounts must be positive", base.Symbol, quote.Symbol,
			)
		}
		if p.FallbackPrice < 0 {
			return nil, fmt.Errorf(
				"pair %s/%s: fallback price must not be negative", base.Symbol, quote.Symbol,
			)
		}

		name := PairName(base.Symbol, quote.Symbol)
		if _, ok := r.pairs[name]; ok {
			return nil, fmt.Errorf("duplicated pair %s", name)
		}
		r.pairs[name] = TradingPair{
			Name:             name,
			PoolID:           p.PoolID,
			Base:             base,
			Quote:            quote,
			BaseSampleAmount:  p.BaseSampleAmount,
			QuoteSampleAmount: p.QuoteSampleAmount,
			FallbackPrice:    p.FallbackPrice,
		}
		r.names = append(r.names, name)
	}
	sort.Strings(r.names)

	return r, nil
}

// Pair returns the pair with the given name.
func (r *TokenRegistry) Pair(name string) (TradingPair, error) {
	p, ok := r.pairs[name]
	if !ok {
		return TradingPair{}, fmt.Errorf("%w: %s", ErrUnsupportedPair, name)
	}
	return p, nil
}

// Pairs returns all pairs sorted by name.
func (r *TokenRegistry) Pairs() []TradingPair {
	pairs := make([]TradingPair, 0, len(r.names))
	for _, n := range r.names {
		pairs = append(pairs, r.pairs[n])
	}
	return pairs
}

// PairForTokens returns the pair to swap from one token symbol to the other
// and the direction of the swap.
func (r *TokenRegistry) PairForTokens(from, to string) (TradingPair, Direction, error) {
	if p, ok := r.pairs[PairName(from, to)]; ok {
		return p, BaseToQuote, nil
	}
	if p, ok := r.pairs[PairName(to, from)]; ok {
		return p, QuoteToBase, nil
	}
	return TradingPair{}, 0, fmt.Errorf(
		"%w: no pool for %s to %s", ErrUnsupportedPair, from, to,
	)
}

// Token returns the token with the given symbol.
func (r *TokenRegistry) Token(symbol string) (Token, error) {
	t, ok := r.bySymbol[symbol]
	if !ok {
		return Token{}, fmt.Errorf("%w: %s", ErrUnknownToken, symbol)
	}
	return t, nil
}

// Tokens returns all known tokens sorted by symbol.
func (r *TokenRegistry) Tokens() []Token {
	tokens := make([]Token, 0, len(r.bySymbol))
	for _, t := range r.bySymbol {
		tokens = append(tokens, t)
	}
	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].Symbol < tokens[j].Symbol
	})
	return tokens
}

// TokenForDenom resolves a denomination to a known token. An exact match
// always wins, otherwise the token with the longest pattern the denom ends
// with is returned.
func (r *TokenRegistry) TokenForDenom(denom string) (Token, bool) {
	if t, ok := r.byDenom[denom]; ok {
		return t, true
	}
	for _, t := range r.patterns {
		if strings.HasSuffix(denom, t.Pattern) {
			return t, true
		}
	}
	return Token{}, false
}

// SymbolForDenom returns the symbol of the token matching the given denom, or
// the denom itself if unknown.
func (r *TokenRegistry) SymbolForDenom(denom string) string {
	if t, ok := r.TokenForDenom(denom); ok {
		return t.Symbol
	}
	return denom
}

// HumanAmount converts a raw on-chain amount of the given denom.
func (r *TokenRegistry) HumanAmount(units decimal.Decimal, denom string) (float64, error) {
	t, ok := r.TokenForDenom(denom)
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownDenom, denom)
	}
	return t.FromUnits(units), nil
}

package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

func TestTokenRegistry(t *testing.T) {
	registry := domain.NewDefaultTokenRegistry()

	t.Run("Pairs", func(t *testing.T) {
		pairs := registry.Pairs()
		require.Len(t, pairs, 3)
		require.Equal(t, "BTC/USDC", pairs[0].Name)
		require.Equal(t, "ETH/USDC", pairs[1].Name)
		require.Equal(t, "OSMO/USDC", pairs[2].Name)

		pair, err := registry.Pair("BTC/USDC")
		require.NoError(t, err)
		require.Equal(t, "1943", pair.PoolID)
		require.Equal(t, int32(8), pair.Base.Decimals)

		_, err = registry.Pair("ATOM/USDC")
		require.ErrorIs(t, err, domain.ErrUnsupportedPair)
	})

	t.Run("PairForTokens", func(t *testing.T) {
		tests := []struct {
			from, to string
			pair     string
			dir      domain.Direction
		}{
			{"BTC", "USDC", "BTC/USDC", domain.BaseToQuote},
			{"USDC", "BTC", "BTC/USDC", domain.QuoteToBase},
			{"OSMO", "USDC", "OSMO/USDC", domain.BaseToQuote},
			{"USDC", "ETH", "ETH/USDC", domain.QuoteToBase},
		}
		for _, tt := range tests {
			pair, dir, err := registry.PairForTokens(tt.from, tt.to)
			require.NoError(t, err)
			require.Equal(t, tt.pair, pair.Name)
			require.Equal(t, tt.dir, dir)
		}

		_, _, err := registry.PairForTokens("BTC", "ETH")
		require.ErrorIs(t, err, domain.ErrUnsupportedPair)
	})

	t.Run("TokenForDenom", func(t *testing.T) {
		tests := []struct {
			denom  string
			symbol string
			found  bool
		}{
			{"uosmo", "OSMO", true},
			{domain.DefaultTokens[1].Denom, "USDC", true},
			{domain.DefaultTokens[2].Denom, "BTC", true},
			{"factory/osmo1other/alloyed/allBTC", "BTC", true},
			{"factory/osmo1other/alloyed/allETH", "ETH", true},
			{"ibc/0000000000000000000000000000000000000000000000000000000000000000", "", false},
			{"uatom", "", false},
		}
		for _, tt := range tests {
			token, ok := registry.TokenForDenom(tt.denom)
			require.Equal(t, tt.found, ok, tt.denom)
			require.Equal(t, tt.symbol, token.Symbol)
		}
		require.Equal(t, "uatom", registry.SymbolForDenom("uatom"))
		require.Equal(t, "OSMO", registry.SymbolForDenom("uosmo"))
	})

	t.Run("HumanAmount", func(t *testing.T) {
		amount, err := registry.HumanAmount(decimal.NewFromInt(100000), domain.DefaultTokens[2].Denom)
		require.NoError(t, err)
		require.InDelta(t, 0.001, amount, 1e-12)

		amount, err = registry.HumanAmount(decimal.NewFromInt(29750000000), domain.DefaultTokens[1].Denom)
		require.NoError(t, err)
		require.InDelta(t, 29750, amount, 1e-9)

		_, err = registry.HumanAmount(decimal.NewFromInt(1), "uatom")
		require.ErrorIs(t, err, domain.ErrUnknownDenom)
	})
}

func TestFailingNewTokenRegistry(t *testing.T) {
	tests := []struct {
		name   string
		tokens []domain.Token
		pairs  []domain.PairInfo
	}{
		{
			name:   "missing_denom",
			tokens: []domain.Token{{Symbol: "OSMO", Decimals: 6}},
		},
		{
			name: "duplicated_symbol",
			tokens: []domain.Token{
				{Symbol: "OSMO", Denom: "uosmo", Decimals: 6},
				{Symbol: "OSMO", Denom: "uosmo2", Decimals: 6},
			},
		},
		{
			name:   "invalid_decimals",
			tokens: []domain.Token{{Symbol: "OSMO", Denom: "uosmo", Decimals: 19}},
		},
		{
			name:   "unknown_pair_token",
			tokens: []domain.Token{{Symbol: "OSMO", Denom: "uosmo", Decimals: 6}},
			pairs: []domain.PairInfo{{
				PoolID: "1", BaseSymbol: "OSMO", QuoteSymbol: "USDC",
				BaseSampleAmount: 1, QuoteSampleAmount: 1,
			}},
		},
		{
			name: "zero_sample_amount",
			tokens: []domain.Token{
				{Symbol: "OSMO", Denom: "uosmo", Decimals: 6},
				{Symbol: "USDC", Denom: "uusdc", Decimals: 6},
			},
			pairs: []domain.PairInfo{{
				PoolID: "1", BaseSymbol: "OSMO", QuoteSymbol: "USDC",
				QuoteSampleAmount: 1,
			}},
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			registry, err := domain.NewTokenRegistry(tt.tokens, tt.pairs)
			require.Error(t, err)
			require.Nil(t, registry)
		})
	}
}

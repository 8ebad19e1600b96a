package domain

import "time"

const (
	// ExecutionSlippageBuffer is subtracted from the estimated output of a
	// triggered order to get the min amount accepted by the swap.
	ExecutionSlippageBuffer = 0.003

	// OrderIDPrefix is the prefix of every order id, followed by a counter.
	OrderIDPrefix = "order-"
	// SyntheticTxPrefix is the prefix of ids of transactions whose hash could
	// not be retrieved from the chain client.
	SyntheticTxPrefix = "synthetic-"

	// DefaultPriceStalenessWindow is the max age of a cached quote served when
	// a sample fails for a non transient reason.
	DefaultPriceStalenessWindow = 30 * time.Minute
	// DefaultPriceCacheSize is the soft cap of the price cache.
	DefaultPriceCacheSize = 15
)

const (
	usdcDenom = "ibc/498A0751C798A0D9A389AA3691123DADA57DAA4FE165D5C75894505B876BA6E4"
	btcDenom  = "factory/osmo1z6r6qdknhgsc0zeracktgpcxf43j6sekq07nw8sxduc9lg0qjjlqfu25e3/alloyed/allBTC"
	ethDenom  = "factory/osmo1k6c8jln7ejuqwtqmay3yvzrg3kueaczl96pk067ldg8u835w0yhsw27twm/alloyed/allETH"
)

var (
	// DefaultTokens are the Osmosis assets supported out of the box.
	DefaultTokens = []Token{
		{Symbol: "OSMO", Denom: "uosmo", Decimals: 6},
		{Symbol: "USDC", Denom: usdcDenom, Decimals: 6},
		{Symbol: "BTC", Denom: btcDenom, Decimals: 8, Pattern: "/allBTC"},
		{Symbol: "ETH", Denom: ethDenom, Decimals: 18, Pattern: "/allETH"},
	}

	// DefaultPairs are the Osmosis pools supported out of the box.
	DefaultPairs = []PairInfo{
		{
			PoolID:           "1464",
			BaseSymbol:       "OSMO",
			QuoteSymbol:      "USDC",
			BaseSampleAmount:  1,
			QuoteSampleAmount: 1,
			FallbackPrice:    0.80,
		},
		{
			PoolID:           "1943",
			BaseSymbol:       "BTC",
			QuoteSymbol:      "USDC",
			BaseSampleAmount:  0.001,
			QuoteSampleAmount: 1,
			FallbackPrice:    65000,
		},
		{
			PoolID:           "1948",
			BaseSymbol:       "ETH",
			QuoteSymbol:      "USDC",
			BaseSampleAmount:  0.001,
			QuoteSampleAmount: 1,
			FallbackPrice:    3500,
		},
	}
)

// NewDefaultTokenRegistry returns the registry of the default Osmosis tokens
// and pools.
func NewDefaultTokenRegistry() *TokenRegistry {
	r, err := NewTokenRegistry(DefaultTokens, DefaultPairs)
	if err != nil {
		panic(err)
	}
	return r
}

package domain_test

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

func TestEvaluateTrigger(t *testing.T) {
	registry := domain.NewDefaultTokenRegistry()
	btcPair, _ := registry.Pair("BTC/USDC")

	tests := []struct {
		name           string
		order          domain.PendingOrder
		price          float64
		triggered      bool
		expectedOut    float64
		expectedMinOut float64
	}{
		{
			name:           "stop_loss_below_trigger",
			order:          newOrder(domain.OrderKindStopLoss, "BTC", "USDC", 0.5, 60000, nil),
			price:          59500,
			triggered:      true,
			expectedOut:    29750,
			expectedMinOut: 29660.75,
		},
		{
			name:      "stop_loss_above_trigger",
			order:     newOrder(domain.OrderKindStopLoss, "BTC", "USDC", 0.5, 60000, nil),
			price:     60500,
			triggered: false,
		},
		{
			name:           "sell_limit_at_trigger",
			order:          newOrder(domain.OrderKindSellLimit, "BTC", "USDC", 1, 70000, nil),
			price:          70000,
			triggered:      true,
			expectedOut:    70000,
			expectedMinOut: 69790,
		},
		{
			name:      "sell_limit_below_trigger",
			order:     newOrder(domain.OrderKindSellLimit, "BTC", "USDC", 1, 70000, nil),
			price:     69999,
			triggered: false,
		},
		{
			name:           "buy_limit_below_trigger",
			order:          newOrder(domain.OrderKindBuyLimit, "USDC", "BTC", 1000, 50000, nil),
			price:          40000,
			triggered:      true,
			expectedOut:    0.025,
			expectedMinOut: 0.024925,
		},
		{
			name:      "buy_limit_above_trigger",
			order:     newOrder(domain.OrderKindBuyLimit, "USDC", "BTC", 1000, 50000, nil),
			price:     50001,
			triggered: false,
		},
		{
			name:           "user_min_out_wins",
			order:          newOrder(domain.OrderKindStopLoss, "BTC", "USDC", 0.5, 60000, floatPtr(29700)),
			price:          59500,
			triggered:      true,
			expectedOut:    29750,
			expectedMinOut: 29700,
		},
		{
			name:           "lower_user_min_out_is_ignored",
			order:          newOrder(domain.OrderKindStopLoss, "BTC", "USDC", 0.5, 60000, floatPtr(100)),
			price:          59500,
			triggered:      true,
			expectedOut:    29750,
			expectedMinOut: 29660.75,
		},
		{
			name:      "zero_price",
			order:     newOrder(domain.OrderKindStopLoss, "BTC", "USDC", 0.5, 60000, nil),
			price:     0,
			triggered: false,
		},
		{
			name:      "nan_price",
			order:     newOrder(domain.OrderKindStopLoss, "BTC", "USDC", 0.5, 60000, nil),
			price:     math.NaN(),
			triggered: false,
		},
		{
			name:      "infinite_price",
			order:     newOrder(domain.OrderKindSellLimit, "BTC", "USDC", 0.5, 60000, nil),
			price:     math.Inf(1),
			triggered: false,
		},
		{
			name:      "wrong_direction",
			order:     newOrder(domain.OrderKindStopLoss, "USDC", "BTC", 0.5, 60000, nil),
			price:     59500,
			triggered: false,
		},
		{
			name:      "pair_mismatch",
			order:     newOrder(domain.OrderKindStopLoss, "ETH", "USDC", 0.5, 60000, nil),
			price:     59500,
			triggered: false,
		},
	}

	for i := range tests {
		tt := tests[i]
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			quote := domain.PriceQuote{
				Pair:         btcPair,
				BasePerQuote: tt.price,
				QuotePerBase: 1 / tt.price,
				CapturedAt:   time.Now(),
				Source:       domain.QuoteSourceLive,
			}
			decision, ok := domain.EvaluateTrigger(tt.order, quote)
			require.Equal(t, tt.triggered, ok)
			if !tt.triggered {
				require.Zero(t, decision)
				return
			}
			require.Equal(t, tt.price, decision.Price)
			require.InDelta(t, tt.expectedOut, decision.ExpectedOut, 1e-9)
			require.InDelta(t, tt.expectedMinOut, decision.MinOut, 1e-9)
		})
	}
}

func newOrder(
	kind domain.OrderKind, from, to string, amount, trigger float64, minOut *float64,
) domain.PendingOrder {
	return domain.PendingOrder{
		ID:           domain.FormatOrderID(1),
		CreatedAt:    time.Now(),
		FromToken:    from,
		ToToken:      to,
		Amount:       amount,
		Kind:         kind,
		TriggerPrice: trigger,
		MinOut:       minOut,
	}
}

func floatPtr(f float64) *float64 {
	return &f
}

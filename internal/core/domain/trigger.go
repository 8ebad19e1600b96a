package domain

import "github.com/tdex-network/osmosis-trader/pkg/mathutil"

// TriggerDecision holds the execution parameters of a triggered order.
type TriggerDecision struct {
	// Price is the base_per_quote price the order triggered at.
	Price float64
	// ExpectedOut is the estimated amount received at Price.
	ExpectedOut float64
	// MinOut is the min amount accepted when executing the swap.
	MinOut float64
}

// EvaluateTrigger tells whether the given order must be executed at the given
// quote and with which parameters. It has no side effects.
//
// Sell limit orders trigger when the price rises to or above the trigger,
// buy limit and stop-loss orders when it falls to or below it. Orders whose
// tokens don't match the quoted pair never trigger.
func EvaluateTrigger(order PendingOrder, quote PriceQuote) (TriggerDecision, bool) {
	price := quote.BasePerQuote
	if !mathutil.IsPositive(price) || !mathutil.IsPositive(order.TriggerPrice) {
		return TriggerDecision{}, false
	}
	if err := order.ValidateDirection(quote.Pair); err != nil {
		return TriggerDecision{}, false
	}

	var triggered bool
	var expectedOut float64
	switch order.Kind {
	case OrderKindSellLimit:
		triggered = price >= order.TriggerPrice
		expectedOut = order.Amount * price
	case OrderKindBuyLimit:
		triggered = price <= order.TriggerPrice
		expectedOut = order.Amount / price
	case OrderKindStopLoss:
		triggered = price <= order.TriggerPrice
		expectedOut = order.Amount * price
	}
	if !triggered {
		return TriggerDecision{}, false
	}

	minOut := mathutil.LessPercentage(expectedOut, ExecutionSlippageBuffer)
	if order.MinOut != nil && *order.MinOut > minOut {
		minOut = *order.MinOut
	}

	return TriggerDecision{
		Price:       price,
		ExpectedOut: expectedOut,
		MinOut:      minOut,
	}, true
}

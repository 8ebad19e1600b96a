package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tdex-network/osmosis-trader/pkg/mathutil"
)

// OrderKind is the type of an order.
type OrderKind string

const (
	// OrderKindMarket is executed right away and is never pending.
	OrderKindMarket OrderKind = "market"
	// OrderKindSellLimit sells base for quote when price rises to the trigger.
	OrderKindSellLimit OrderKind = "sell_limit"
	// OrderKindBuyLimit buys base with quote when price falls to the trigger.
	OrderKindBuyLimit OrderKind = "buy_limit"
	// OrderKindStopLoss sells base for quote when price falls to the trigger.
	OrderKindStopLoss OrderKind = "stop_loss"
)

func (k OrderKind) String() string {
	return string(k)
}

// IsConditional returns whether orders of this kind wait for a trigger price.
func (k OrderKind) IsConditional() bool {
	switch k {
	case OrderKindSellLimit, OrderKindBuyLimit, OrderKindStopLoss:
		return true
	default:
		return false
	}
}

// IsValid ...
func (k OrderKind) IsValid() bool {
	return k == OrderKindMarket || k.IsConditional()
}

// Direction returns the direction of the swap executed by orders of this kind.
func (k OrderKind) Direction() Direction {
	if k == OrderKindBuyLimit {
		return QuoteToBase
	}
	return BaseToQuote
}

// PendingOrder is a limit or stop-loss order waiting for its trigger price.
// It's never mutated once created, only removed.
type PendingOrder struct {
	ID           string
	CreatedAt    time.Time
	FromToken    string
	ToToken      string
	Amount       float64
	Kind         OrderKind
	TriggerPrice float64
	MinOut       *float64
}

// NewPendingOrder returns a validated pending order.
func NewPendingOrder(
	id string, kind OrderKind, fromToken, toToken string,
	amount, triggerPrice float64, minOut *float64,
) (*PendingOrder, error) {
	o := &PendingOrder{
		ID:           id,
		CreatedAt:    time.Now().UTC(),
		FromToken:    fromToken,
		ToToken:      toToken,
		Amount:       amount,
		Kind:         kind,
		TriggerPrice: triggerPrice,
		MinOut:       minOut,
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate checks the order is well formed. It's called by every store before
// persisting an order.
func (o PendingOrder) Validate() error {
	if _, ok := ParseOrderID(o.ID); !ok {
		return fmt.Errorf("invalid order id %q", o.ID)
	}
	if !o.Kind.IsConditional() {
		return fmt.Errorf("%w: %q", ErrInvalidOrderKind, o.Kind)
	}
	if o.FromToken == "" || o.ToToken == "" || o.FromToken == o.ToToken {
		return fmt.Errorf(
			"%w: %q -> %q", ErrInvalidOrderDirection, o.FromToken, o.ToToken,
		)
	}
	if !mathutil.IsPositive(o.Amount) {
		return ErrInvalidAmount
	}
	if !mathutil.IsPositive(o.TriggerPrice) {
		return ErrInvalidTriggerPrice
	}
	if o.MinOut != nil && !mathutil.IsPositive(*o.MinOut) {
		return ErrInvalidMinOut
	}
	return nil
}

// ValidateDirection checks that the tokens of the order match the direction
// imposed by its kind for the given pair.
func (o PendingOrder) ValidateDirection(pair TradingPair) error {
	base, quote := pair.Base.Symbol, pair.Quote.Symbol
	var ok bool
	switch o.Kind {
	case OrderKindSellLimit, OrderKindStopLoss:
		ok = o.FromToken == base && o.ToToken == quote
	case OrderKindBuyLimit:
		ok = o.FromToken == quote && o.ToToken == base
	}
	if !ok {
		return fmt.Errorf(
			"%w: %s order from %s to %s on pair %s",
			ErrInvalidOrderDirection, o.Kind, o.FromToken, o.ToToken, pair.Name,
		)
	}
	return nil
}

// PairName returns the name of the pair the order trades on.
func (o PendingOrder) PairName() string {
	if o.Kind.Direction() == QuoteToBase {
		return PairName(o.ToToken, o.FromToken)
	}
	return PairName(o.FromToken, o.ToToken)
}

// FormatOrderID returns the order id for the given counter value.
func FormatOrderID(n uint64) string {
	return fmt.Sprintf("%s%d", OrderIDPrefix, n)
}

// ParseOrderID extracts the counter value from an order id.
func ParseOrderID(id string) (uint64, bool) {
	if !strings.HasPrefix(id, OrderIDPrefix) {
		return 0, false
	}
	n, err := strconv.ParseUint(strings.TrimPrefix(id, OrderIDPrefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// OrderCounter is the persisted value of the last minted order id number.
type OrderCounter struct {
	Value uint64
}

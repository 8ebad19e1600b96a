package domain

import "errors"

var (
	// ErrTransientPrice is returned by the chain client when a price sample
	// fails for a known, temporary reason (ie. the pool reports a negative
	// spread factor charge). Cached prices can be served regardless of their age.
	ErrTransientPrice = errors.New("transient price error")
	// ErrPriceUnavailable is returned when neither a live, cached or fallback
	// price can be served for a pair.
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrExecutionSubmission is returned when the swap transaction could not be
	// submitted to the chain.
	ErrExecutionSubmission = errors.New("swap submission failed")
	// ErrReconciliationTimeout is returned when the settled amounts of a
	// transaction could not be retrieved within the max number of attempts.
	ErrReconciliationTimeout = errors.New("transaction could not be confirmed")
	// ErrStoreIO wraps any failure of the underlying storage.
	ErrStoreIO = errors.New("store i/o error")

	// ErrUnsupportedPair ...
	ErrUnsupportedPair = errors.New("unsupported trading pair")
	// ErrUnknownToken ...
	ErrUnknownToken = errors.New("unknown token")
	// ErrUnknownDenom is returned when converting raw amounts of a denomination
	// that doesn't match any known token.
	ErrUnknownDenom = errors.New("unknown denomination")
	// ErrInvalidAmount ...
	ErrInvalidAmount = errors.New("amount must be a positive number")
	// ErrInvalidTriggerPrice ...
	ErrInvalidTriggerPrice = errors.New("trigger price must be a positive number")
	// ErrInvalidMinOut ...
	ErrInvalidMinOut = errors.New("min out must be a positive number")
	// ErrInvalidSlippage ...
	ErrInvalidSlippage = errors.New("slippage must be a percentage in range (0, 100)")
	// ErrInvalidOrderKind ...
	ErrInvalidOrderKind = errors.New("invalid order kind")
	// ErrInvalidOrderDirection is returned when the tokens of an order don't
	// match the direction required by its kind.
	ErrInvalidOrderDirection = errors.New("invalid tokens for order kind")
	// ErrStopPriceAboveMarket is returned when creating a stop-loss order whose
	// stop price is not below the current price.
	ErrStopPriceAboveMarket = errors.New("stop price must be below current price")
	// ErrOrderAlreadyExists ...
	ErrOrderAlreadyExists = errors.New("order already exists")
	// ErrOrderNotFound ...
	ErrOrderNotFound = errors.New("order not found")
	// ErrTransactionAlreadyExists ...
	ErrTransactionAlreadyExists = errors.New("transaction already exists")
	// ErrTransactionNotFound ...
	ErrTransactionNotFound = errors.New("transaction not found")
	// ErrSyntheticTransaction is returned when trying to reconcile a
	// transaction that was never submitted to the chain.
	ErrSyntheticTransaction = errors.New("synthetic transactions cannot be reconciled")
)

package httpinterface

import (
	"time"

	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

type marketOrderRequest struct {
	From     string   `json:"from"`
	To       string   `json:"to"`
	Amount   float64  `json:"amount"`
	MinOut   *float64 `json:"min_out,omitempty"`
	Slippage *float64 `json:"slippage,omitempty"`
}

type limitOrderRequest struct {
	From   string   `json:"from"`
	To     string   `json:"to"`
	Amount float64  `json:"amount"`
	Price  float64  `json:"price"`
	MinOut *float64 `json:"min_out,omitempty"`
}

type stopLossOrderRequest struct {
	From      string   `json:"from"`
	To        string   `json:"to"`
	Amount    float64  `json:"amount"`
	StopPrice float64  `json:"stop_price"`
	MinOut    *float64 `json:"min_out,omitempty"`
}

type cancelOrdersRequest struct {
	IDs []string `json:"ids"`
}

type pairResponse struct {
	Name          string  `json:"name"`
	PoolID        string  `json:"pool_id"`
	Base          string  `json:"base"`
	Quote         string  `json:"quote"`
	FallbackPrice float64 `json:"fallback_price,omitempty"`
}

type quoteResponse struct {
	Pair         string    `json:"pair"`
	BasePerQuote float64   `json:"base_per_quote"`
	QuotePerBase float64   `json:"quote_per_base"`
	CapturedAt   time.Time `json:"captured_at"`
	Source       string    `json:"source"`
}

type balanceResponse struct {
	Symbol string  `json:"symbol"`
	Amount float64 `json:"amount"`
}

type orderResponse struct {
	ID           string    `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Kind         string    `json:"kind"`
	From         string    `json:"from"`
	To           string    `json:"to"`
	Amount       float64   `json:"amount"`
	TriggerPrice float64   `json:"trigger_price"`
	MinOut       *float64  `json:"min_out,omitempty"`
}

type transactionResponse struct {
	TxHash            string    `json:"tx_hash"`
	OrderID           string    `json:"order_id,omitempty"`
	Timestamp         time.Time `json:"timestamp"`
	Kind              string    `json:"kind"`
	Status            string    `json:"status"`
	From              string    `json:"from"`
	To                string    `json:"to"`
	AmountIn          float64   `json:"amount_in"`
	TriggerPrice      *float64  `json:"trigger_price,omitempty"`
	ExpectedAmountOut *float64  `json:"expected_amount_out,omitempty"`
	ActualAmountOut   *float64  `json:"actual_amount_out,omitempty"`
	ExecutionPrice    *float64  `json:"execution_price,omitempty"`
	PoolID            string    `json:"pool_id,omitempty"`
	AmountInRaw       string    `json:"amount_in_raw,omitempty"`
	AmountOutRaw      string    `json:"amount_out_raw,omitempty"`
	MinOutRaw         string    `json:"min_out_raw,omitempty"`
}

type errorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func newPairResponse(p domain.TradingPair) pairResponse {
	return pairResponse{
		Name:          p.Name,
		PoolID:        p.PoolID,
		Base:          p.Base.Symbol,
		Quote:         p.Quote.Symbol,
		FallbackPrice: p.FallbackPrice,
	}
}

func newQuoteResponse(q domain.PriceQuote) quoteResponse {
	return quoteResponse{
		Pair:         q.Pair.Name,
		BasePerQuote: q.BasePerQuote,
		QuotePerBase: q.QuotePerBase,
		CapturedAt:   q.CapturedAt,
		Source:       string(q.Source),
	}
}

func newQuotesResponse(quotes []domain.PriceQuote) []quoteResponse {
	res := make([]quoteResponse, 0, len(quotes))
	for _, q := range quotes {
		res = append(res, newQuoteResponse(q))
	}
	return res
}

func newBalancesResponse(balances []wallet.Balance) []balanceResponse {
	res := make([]balanceResponse, 0, len(balances))
	for _, b := range balances {
		res = append(res, balanceResponse{Symbol: b.Symbol, Amount: b.Amount})
	}
	return res
}

func newOrderResponse(o domain.PendingOrder) orderResponse {
	return orderResponse{
		ID:           o.ID,
		CreatedAt:    o.CreatedAt,
		Kind:         o.Kind.String(),
		From:         o.FromToken,
		To:           o.ToToken,
		Amount:       o.Amount,
		TriggerPrice: o.TriggerPrice,
		MinOut:       o.MinOut,
	}
}

func newTransactionResponse(tx domain.Transaction) transactionResponse {
	return transactionResponse{
		TxHash:            tx.TxHash,
		OrderID:           tx.OrderID,
		Timestamp:         tx.Timestamp,
		Kind:              tx.Kind.String(),
		Status:            tx.Status.String(),
		From:              tx.FromToken,
		To:                tx.ToToken,
		AmountIn:          tx.AmountIn,
		TriggerPrice:      tx.TriggerPrice,
		ExpectedAmountOut: tx.ExpectedAmountOut,
		ActualAmountOut:   tx.ActualAmountOut,
		ExecutionPrice:    tx.ExecutionPrice,
		PoolID:            tx.PoolID,
		AmountInRaw:       tx.AmountInRaw,
		AmountOutRaw:      tx.AmountOutRaw,
		MinOutRaw:         tx.MinOutRaw,
	}
}

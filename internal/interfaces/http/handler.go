package httpinterface

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/application/trade"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
)

const exportFilename = "osmosis-trades.csv"

var errInvalidBody = errors.New("invalid request body")

type handler struct {
	tradeSvc TradeService
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) listPairs(w http.ResponseWriter, r *http.Request) {
	pairs := h.tradeSvc.Pairs()
	res := make([]pairResponse, 0, len(pairs))
	for _, p := range pairs {
		res = append(res, newPairResponse(p))
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) listPrices(w http.ResponseWriter, r *http.Request) {
	quotes := h.tradeSvc.GetPrices(r.Context())
	respondJSON(w, http.StatusOK, newQuotesResponse(quotes))
}

func (h *handler) refreshPrices(w http.ResponseWriter, r *http.Request) {
	quotes := h.tradeSvc.RefreshPrices(r.Context())
	respondJSON(w, http.StatusOK, newQuotesResponse(quotes))
}

func (h *handler) getPrice(w http.ResponseWriter, r *http.Request) {
	quote, err := h.tradeSvc.GetPrice(r.Context(), pairFromPath(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newQuoteResponse(*quote))
}

func (h *handler) refreshPrice(w http.ResponseWriter, r *http.Request) {
	quote, err := h.tradeSvc.RefreshPrice(r.Context(), pairFromPath(r))
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newQuoteResponse(*quote))
}

func (h *handler) getBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.tradeSvc.GetBalances(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBalancesResponse(balances))
}

func (h *handler) refreshBalances(w http.ResponseWriter, r *http.Request) {
	balances, err := h.tradeSvc.RefreshBalances(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newBalancesResponse(balances))
}

func (h *handler) listOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.tradeSvc.ListPendingOrders(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	res := make([]orderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, newOrderResponse(o))
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) placeMarketOrder(w http.ResponseWriter, r *http.Request) {
	var req marketOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	tx, err := h.tradeSvc.PlaceMarketOrder(r.Context(), trade.MarketOrder{
		FromToken: strings.ToUpper(req.From),
		ToToken:   strings.ToUpper(req.To),
		Amount:    req.Amount,
		MinOut:    req.MinOut,
		Slippage:  req.Slippage,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newTransactionResponse(*tx))
}

func (h *handler) placeLimitOrder(w http.ResponseWriter, r *http.Request) {
	var req limitOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.tradeSvc.PlaceLimitOrder(r.Context(), trade.LimitOrder{
		FromToken: strings.ToUpper(req.From),
		ToToken:   strings.ToUpper(req.To),
		Amount:    req.Amount,
		Price:     req.Price,
		MinOut:    req.MinOut,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newOrderResponse(*order))
}

func (h *handler) placeStopLossOrder(w http.ResponseWriter, r *http.Request) {
	var req stopLossOrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	order, err := h.tradeSvc.PlaceStopLossOrder(r.Context(), trade.StopLossOrder{
		FromToken: strings.ToUpper(req.From),
		ToToken:   strings.ToUpper(req.To),
		Amount:    req.Amount,
		StopPrice: req.StopPrice,
		MinOut:    req.MinOut,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, newOrderResponse(*order))
}

func (h *handler) cancelOrders(w http.ResponseWriter, r *http.Request) {
	var req cancelOrdersRequest
	if err := decodeBody(r, &req); err != nil {
		respondError(w, r, err)
		return
	}
	if len(req.IDs) <= 0 {
		respondError(w, r, fmt.Errorf("%w: missing order ids", errInvalidBody))
		return
	}

	if err := h.tradeSvc.CancelOrders(r.Context(), req.IDs); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"cancelled": req.IDs})
}

func (h *handler) listTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := h.tradeSvc.ListTransactions(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	res := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		res = append(res, newTransactionResponse(tx))
	}
	respondJSON(w, http.StatusOK, res)
}

func (h *handler) getTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.tradeSvc.GetTransaction(r.Context(), mux.Vars(r)["hash"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newTransactionResponse(*tx))
}

func (h *handler) refreshTransaction(w http.ResponseWriter, r *http.Request) {
	tx, err := h.tradeSvc.RefreshTransaction(r.Context(), mux.Vars(r)["hash"])
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newTransactionResponse(*tx))
}

func (h *handler) exportTransactions(w http.ResponseWriter, r *http.Request) {
	// Buffer the whole file so that a failure doesn't result in a truncated
	// export with status 200.
	buf := &bytes.Buffer{}
	count, err := h.tradeSvc.ExportTransactionsCSV(r.Context(), buf)
	if err != nil {
		respondError(w, r, err)
		return
	}

	log.Debugf("exported %d transactions", count)
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set(
		"Content-Disposition", fmt.Sprintf("attachment; filename=%q", exportFilename),
	)
	w.WriteHeader(http.StatusOK)
	//nolint
	w.Write(buf.Bytes())
}

func pairFromPath(r *http.Request) string {
	vars := mux.Vars(r)
	return domain.PairName(strings.ToUpper(vars["base"]), strings.ToUpper(vars["quote"]))
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("%w: %s", errInvalidBody, err)
	}
	return nil
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.WithError(err).Warn("failed to encode http response")
	}
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFromError(err)
	requestID := requestIDFromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.WithError(err).WithField("request_id", requestID).Warnf(
			"%s %s failed", r.Method, r.URL.Path,
		)
	}
	respondJSON(w, status, errorResponse{Error: err.Error(), RequestID: requestID})
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, errInvalidBody),
		errors.Is(err, domain.ErrUnsupportedPair),
		errors.Is(err, domain.ErrUnknownToken),
		errors.Is(err, domain.ErrInvalidAmount),
		errors.Is(err, domain.ErrInvalidTriggerPrice),
		errors.Is(err, domain.ErrInvalidMinOut),
		errors.Is(err, domain.ErrInvalidSlippage),
		errors.Is(err, domain.ErrInvalidOrderKind),
		errors.Is(err, domain.ErrInvalidOrderDirection),
		errors.Is(err, domain.ErrStopPriceAboveMarket),
		errors.Is(err, domain.ErrSyntheticTransaction):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrOrderNotFound),
		errors.Is(err, domain.ErrTransactionNotFound),
		errors.Is(err, ports.ErrTxNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrOrderAlreadyExists),
		errors.Is(err, domain.ErrTransactionAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrExecutionSubmission):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrPriceUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

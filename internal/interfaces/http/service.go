package httpinterface

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/application/trade"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/interfaces"
)

const shutdownTimeout = 10 * time.Second

// TradeService is the application service exposed by the HTTP interface.
type TradeService interface {
	PlaceMarketOrder(ctx context.Context, order trade.MarketOrder) (*domain.Transaction, error)
	PlaceLimitOrder(ctx context.Context, order trade.LimitOrder) (*domain.PendingOrder, error)
	PlaceStopLossOrder(ctx context.Context, order trade.StopLossOrder) (*domain.PendingOrder, error)
	CancelOrders(ctx context.Context, ids []string) error
	ListPendingOrders(ctx context.Context) ([]domain.PendingOrder, error)
	ListTransactions(ctx context.Context) ([]domain.Transaction, error)
	GetTransaction(ctx context.Context, txHash string) (*domain.Transaction, error)
	RefreshTransaction(ctx context.Context, txHash string) (*domain.Transaction, error)
	ExportTransactionsCSV(ctx context.Context, w io.Writer) (int, error)
	GetPrice(ctx context.Context, pairName string) (*domain.PriceQuote, error)
	GetPrices(ctx context.Context) []domain.PriceQuote
	RefreshPrice(ctx context.Context, pairName string) (*domain.PriceQuote, error)
	RefreshPrices(ctx context.Context) []domain.PriceQuote
	GetBalances(ctx context.Context) ([]wallet.Balance, error)
	RefreshBalances(ctx context.Context) ([]wallet.Balance, error)
	Pairs() []domain.TradingPair
}

type service struct {
	address string
	server  *http.Server
}

// NewService returns the HTTP operator interface listening on the given
// port. Cross-origin requests are accepted only from the given origins, and
// are refused if none is given.
func NewService(
	port int, tradeSvc TradeService, allowedOrigins []string,
) (interfaces.Service, error) {
	if port <= 0 {
		return nil, fmt.Errorf("invalid listening port %d", port)
	}
	if tradeSvc == nil {
		return nil, fmt.Errorf("missing trade service")
	}

	handler := NewHandler(tradeSvc)
	if len(allowedOrigins) > 0 {
		handler = cors.New(cors.Options{
			AllowedOrigins: allowedOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
			AllowedHeaders: []string{"Content-Type", requestIDHeader},
			ExposedHeaders: []string{requestIDHeader},
		}).Handler(handler)
	}

	address := fmt.Sprintf(":%d", port)
	return &service{
		address: address,
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

func (s *service) Start() error {
	lis, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	go func() {
		if err := s.server.Serve(lis); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Error("http interface stopped unexpectedly")
		}
	}()

	log.Infof("http interface listening on %s", s.address)
	return nil
}

func (s *service) Stop() {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.server.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("failed to gracefully stop http interface")
	}
	log.Debug("disabled http interface")
}

// NewHandler returns the router of the operator API, metrics included.
func NewHandler(tradeSvc TradeService) http.Handler {
	h := &handler{tradeSvc}

	router := mux.NewRouter()
	router.Use(requestIDMiddleware)

	router.HandleFunc("/health", h.health).Methods(http.MethodGet)
	router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	api := router.PathPrefix("/v1").Subrouter()

	api.HandleFunc("/pairs", h.listPairs).Methods(http.MethodGet)

	api.HandleFunc("/prices", h.listPrices).Methods(http.MethodGet)
	api.HandleFunc("/prices/refresh", h.refreshPrices).Methods(http.MethodPost)
	api.HandleFunc("/prices/{base}/{quote}", h.getPrice).Methods(http.MethodGet)
	api.HandleFunc("/prices/{base}/{quote}/refresh", h.refreshPrice).Methods(http.MethodPost)

	api.HandleFunc("/balances", h.getBalances).Methods(http.MethodGet)
	api.HandleFunc("/balances/refresh", h.refreshBalances).Methods(http.MethodPost)

	api.HandleFunc("/orders", h.listOrders).Methods(http.MethodGet)
	api.HandleFunc("/orders/market", h.placeMarketOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/limit", h.placeLimitOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/stop-loss", h.placeStopLossOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/cancel", h.cancelOrders).Methods(http.MethodPost)

	api.HandleFunc("/transactions", h.listTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions/export", h.exportTransactions).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{hash}", h.getTransaction).Methods(http.MethodGet)
	api.HandleFunc("/transactions/{hash}/refresh", h.refreshTransaction).Methods(http.MethodPost)

	return router
}

package trade

import (
	"context"
	"fmt"
	"sort"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/application/execution"
	"github.com/tdex-network/osmosis-trader/internal/core/application/wallet"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/pkg/mathutil"
)

// DefaultSlippage is the default slippage tolerance, in percentage, of
// market orders without explicit min amount out.
const DefaultSlippage = 1.0

type PriceOracle interface {
	GetPrice(ctx context.Context, pairName string) (*domain.PriceQuote, error)
	Refresh(ctx context.Context, pairName string) (*domain.PriceQuote, error)
	RefreshAll(ctx context.Context) []domain.PriceQuote
}

type Executor interface {
	Execute(ctx context.Context, req execution.Request) (*execution.Result, error)
	Reconcile(ctx context.Context, txHash string) (bool, error)
}

type BalanceService interface {
	GetBalances(ctx context.Context) ([]wallet.Balance, error)
	RefreshBalances(ctx context.Context) ([]wallet.Balance, error)
}

// MarketOrder is a swap executed right away at the current price. If MinOut
// is not defined, it's derived from the current price and the slippage
// tolerance.
type MarketOrder struct {
	FromToken string
	ToToken   string
	Amount    float64
	MinOut    *float64
	// Slippage is the tolerance in percentage, ie. 0.5 for 0.5%.
	Slippage *float64
}

// LimitOrder sells base for quote when the price rises to Price, or buys
// base with quote when it falls to Price.
type LimitOrder struct {
	FromToken string
	ToToken   string
	Amount    float64
	Price     float64
	MinOut    *float64
}

// StopLossOrder sells base for quote when the price falls to StopPrice.
type StopLossOrder struct {
	FromToken string
	ToToken   string
	Amount    float64
	StopPrice float64
	MinOut    *float64
}

// Service is the entry point for placing and managing orders.
type Service struct {
	registry        *domain.TokenRegistry
	repoManager     ports.RepoManager
	oracle          PriceOracle
	executor        Executor
	wallet          BalanceService
	ids             *OrderIDGenerator
	defaultSlippage float64
}

func NewService(
	registry *domain.TokenRegistry,
	repoManager ports.RepoManager,
	oracle PriceOracle,
	executor Executor,
	wallet BalanceService,
	ids *OrderIDGenerator,
	defaultSlippage float64,
) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("missing token registry")
	}
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}
	if oracle == nil {
		return nil, fmt.Errorf("missing price oracle")
	}
	if executor == nil {
		return nil, fmt.Errorf("missing executor")
	}
	if wallet == nil {
		return nil, fmt.Errorf("missing balance service")
	}
	if ids == nil {
		return nil, fmt.Errorf("missing order id generator")
	}
	if defaultSlippage == 0 {
		defaultSlippage = DefaultSlippage
	}
	if err := validateSlippage(defaultSlippage); err != nil {
		return nil, err
	}

	return &Service{
		registry:        registry,
		repoManager:     repoManager,
		oracle:          oracle,
		executor:        executor,
		wallet:          wallet,
		ids:             ids,
		defaultSlippage: defaultSlippage,
	}, nil
}

// PlaceMarketOrder executes the swap right away and returns the logged
// transaction. Failed submissions are not retried.
func (s *Service) PlaceMarketOrder(
	ctx context.Context, order MarketOrder,
) (*domain.Transaction, error) {
	if !mathutil.IsPositive(order.Amount) {
		return nil, domain.ErrInvalidAmount
	}
	if order.MinOut != nil && !mathutil.IsPositive(*order.MinOut) {
		return nil, domain.ErrInvalidMinOut
	}
	slippage := s.defaultSlippage
	if order.Slippage != nil {
		slippage = *order.Slippage
	}
	if err := validateSlippage(slippage); err != nil {
		return nil, err
	}

	pair, dir, err := s.registry.PairForTokens(order.FromToken, order.ToToken)
	if err != nil {
		return nil, err
	}

	var expectedOut *float64
	quote, err := s.oracle.GetPrice(ctx, pair.Name)
	switch {
	case err != nil:
		log.WithError(err).Warnf("no price available for %s", pair.Name)
	case quote.IsFallback():
		err = fmt.Errorf("%w: only fallback price for %s", domain.ErrPriceUnavailable, pair.Name)
	default:
		v := quote.ExpectedOut(order.Amount, dir)
		expectedOut = &v
	}

	minOut := order.MinOut
	if minOut == nil {
		if expectedOut == nil {
			return nil, fmt.Errorf("cannot derive min amount out: %w", err)
		}
		v := mathutil.LessPercentage(*expectedOut, slippage/100)
		minOut = &v
	}

	res, err := s.executor.Execute(ctx, execution.Request{
		Kind:        domain.OrderKindMarket,
		FromToken:   order.FromToken,
		ToToken:     order.ToToken,
		Amount:      order.Amount,
		MinOut:      minOut,
		ExpectedOut: expectedOut,
	})
	if res == nil {
		return nil, err
	}
	tx := res.Transaction
	return &tx, err
}

// PlaceLimitOrder stores a new pending limit order. Its kind is derived from
// the direction of the swap.
func (s *Service) PlaceLimitOrder(
	ctx context.Context, order LimitOrder,
) (*domain.PendingOrder, error) {
	pair, dir, err := s.registry.PairForTokens(order.FromToken, order.ToToken)
	if err != nil {
		return nil, err
	}

	kind := domain.OrderKindSellLimit
	if dir == domain.QuoteToBase {
		kind = domain.OrderKindBuyLimit
	}

	return s.addPendingOrder(ctx, pair, domain.PendingOrder{
		Kind:         kind,
		FromToken:    order.FromToken,
		ToToken:      order.ToToken,
		Amount:       order.Amount,
		TriggerPrice: order.Price,
		MinOut:       order.MinOut,
	})
}

// PlaceStopLossOrder stores a new pending stop-loss order. The stop price
// must be below the current market price of the pair.
func (s *Service) PlaceStopLossOrder(
	ctx context.Context, order StopLossOrder,
) (*domain.PendingOrder, error) {
	pair, dir, err := s.registry.PairForTokens(order.FromToken, order.ToToken)
	if err != nil {
		return nil, err
	}
	if dir != domain.BaseToQuote {
		return nil, fmt.Errorf(
			"%w: stop-loss orders can only sell %s for %s",
			domain.ErrInvalidOrderDirection, pair.Base.Symbol, pair.Quote.Symbol,
		)
	}

	pendingOrder := domain.PendingOrder{
		Kind:         domain.OrderKindStopLoss,
		FromToken:    order.FromToken,
		ToToken:      order.ToToken,
		Amount:       order.Amount,
		TriggerPrice: order.StopPrice,
		MinOut:       order.MinOut,
	}
	if err := validateOrder(pair, pendingOrder); err != nil {
		return nil, err
	}

	quote, err := s.oracle.GetPrice(ctx, pair.Name)
	if err != nil {
		return nil, err
	}
	if quote.IsFallback() {
		return nil, fmt.Errorf(
			"%w: only fallback price for %s", domain.ErrPriceUnavailable, pair.Name,
		)
	}
	if order.StopPrice >= quote.BasePerQuote {
		return nil, fmt.Errorf(
			"%w: stop price %v, current price %v",
			domain.ErrStopPriceAboveMarket, order.StopPrice, quote.BasePerQuote,
		)
	}

	return s.addPendingOrder(ctx, pair, pendingOrder)
}

// CancelOrders removes the given pending orders. Nothing is removed if any
// of them is not found.
func (s *Service) CancelOrders(ctx context.Context, ids []string) error {
	if len(ids) <= 0 {
		return fmt.Errorf("missing order ids")
	}

	repo := s.repoManager.PendingOrderRepository()
	for _, id := range ids {
		if _, err := repo.GetPendingOrder(ctx, id); err != nil {
			return err
		}
	}
	for _, id := range ids {
		if err := repo.RemovePendingOrder(ctx, id); err != nil {
			return err
		}
		log.Infof("order %s cancelled", id)
	}
	return nil
}

// ListPendingOrders returns the pending orders, oldest first.
func (s *Service) ListPendingOrders(
	ctx context.Context,
) ([]domain.PendingOrder, error) {
	return s.repoManager.PendingOrderRepository().GetAllPendingOrders(ctx)
}

// ListTransactions returns the logged transactions, newest first.
func (s *Service) ListTransactions(
	ctx context.Context,
) ([]domain.Transaction, error) {
	txs, err := s.repoManager.TransactionRepository().GetAllTransactions(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(txs, func(i, j int) bool {
		return txs[i].Timestamp.After(txs[j].Timestamp)
	})
	return txs, nil
}

func (s *Service) GetTransaction(
	ctx context.Context, txHash string,
) (*domain.Transaction, error) {
	return s.repoManager.TransactionRepository().GetTransaction(ctx, txHash)
}

// RefreshTransaction makes an attempt to update the given transaction with
// its settled values and returns it.
func (s *Service) RefreshTransaction(
	ctx context.Context, txHash string,
) (*domain.Transaction, error) {
	if domain.IsSyntheticTxHash(txHash) {
		return nil, domain.ErrSyntheticTransaction
	}
	if _, err := s.executor.Reconcile(ctx, txHash); err != nil {
		if execution.IsTxPending(err) {
			return nil, fmt.Errorf("%w: %s not settled yet", ports.ErrTxNotFound, txHash)
		}
		return nil, err
	}
	return s.GetTransaction(ctx, txHash)
}

// GetPrice returns the current quote of the given pair.
func (s *Service) GetPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	return s.oracle.GetPrice(ctx, pairName)
}

// GetPrices returns the current quotes of all pairs. Pairs without any
// available price are skipped.
func (s *Service) GetPrices(ctx context.Context) []domain.PriceQuote {
	pairs := s.registry.Pairs()
	quotes := make([]domain.PriceQuote, 0, len(pairs))
	for _, pair := range pairs {
		quote, err := s.oracle.GetPrice(ctx, pair.Name)
		if err != nil {
			log.WithError(err).Debugf("skipping price of %s", pair.Name)
			continue
		}
		quotes = append(quotes, *quote)
	}
	return quotes
}

// RefreshPrice samples the pool of the given pair.
func (s *Service) RefreshPrice(
	ctx context.Context, pairName string,
) (*domain.PriceQuote, error) {
	return s.oracle.Refresh(ctx, pairName)
}

// RefreshPrices samples the pools of all pairs.
func (s *Service) RefreshPrices(ctx context.Context) []domain.PriceQuote {
	return s.oracle.RefreshAll(ctx)
}

func (s *Service) GetBalances(ctx context.Context) ([]wallet.Balance, error) {
	return s.wallet.GetBalances(ctx)
}

func (s *Service) RefreshBalances(ctx context.Context) ([]wallet.Balance, error) {
	return s.wallet.RefreshBalances(ctx)
}

// Pairs returns the tradable pairs.
func (s *Service) Pairs() []domain.TradingPair {
	return s.registry.Pairs()
}

func (s *Service) addPendingOrder(
	ctx context.Context, pair domain.TradingPair, order domain.PendingOrder,
) (*domain.PendingOrder, error) {
	// ids are minted only for valid orders.
	if err := validateOrder(pair, order); err != nil {
		return nil, err
	}

	id, err := s.ids.Next(ctx)
	if err != nil {
		return nil, err
	}
	newOrder, err := domain.NewPendingOrder(
		id, order.Kind, order.FromToken, order.ToToken,
		order.Amount, order.TriggerPrice, order.MinOut,
	)
	if err != nil {
		return nil, err
	}

	if err := s.repoManager.PendingOrderRepository().AddPendingOrder(
		ctx, *newOrder,
	); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"order":   newOrder.ID,
		"kind":    newOrder.Kind,
		"amount":  newOrder.Amount,
		"trigger": newOrder.TriggerPrice,
	}).Infof("%s order placed on %s", newOrder.Kind, pair.Name)
	return newOrder, nil
}

func validateOrder(pair domain.TradingPair, order domain.PendingOrder) error {
	order.ID = domain.FormatOrderID(0)
	if err := order.Validate(); err != nil {
		return err
	}
	return order.ValidateDirection(pair)
}

func validateSlippage(slippage float64) error {
	if !mathutil.IsPositive(slippage) || slippage >= 100 {
		return domain.ErrInvalidSlippage
	}
	return nil
}

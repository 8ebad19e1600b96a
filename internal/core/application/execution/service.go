package execution

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/pkg/stats"
	"github.com/thanhpk/randstr"
)

const (
	DefaultGracePeriod = 3 * time.Second
	DefaultMaxAttempts = 3
	DefaultBackoff     = 2 * time.Second
)

// Config holds the reconciliation tunables. Zero values are replaced with
// defaults.
type Config struct {
	// GracePeriod is the delay before the first reconciliation attempt.
	GracePeriod time.Duration
	// MaxAttempts is the max number of reconciliation attempts.
	MaxAttempts int
	// Backoff is the delay after the first failed attempt, doubled after
	// each following one.
	Backoff time.Duration
}

func (c Config) withDefaults() Config {
	if c.GracePeriod <= 0 {
		c.GracePeriod = DefaultGracePeriod
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = DefaultMaxAttempts
	}
	if c.Backoff <= 0 {
		c.Backoff = DefaultBackoff
	}
	return c
}

// Request holds the parameters of a swap to execute.
type Request struct {
	// OrderID is the id of the pending order triggering the swap, empty for
	// market orders.
	OrderID      string
	Kind         domain.OrderKind
	FromToken    string
	ToToken      string
	Amount       float64
	MinOut       *float64
	ExpectedOut  *float64
	TriggerPrice *float64
}

// Result is the outcome of a submitted swap.
type Result struct {
	TxHash      string
	Transaction domain.Transaction
}

// Service submits swaps, logs them and reconciles them in background with
// the values settled on chain.
type Service struct {
	registry    *domain.TokenRegistry
	client      ports.ChainClient
	querier     ports.TxQuerier
	repoManager ports.RepoManager
	cfg         Config

	ctx    context.Context
	cancel context.CancelFunc
	wg     *sync.WaitGroup

	lock        sync.Mutex
	closed      bool
	inFlight    map[string]struct{}
	retired     map[string]struct{}
	reconciling map[string]struct{}
}

func NewService(
	registry *domain.TokenRegistry,
	client ports.ChainClient,
	querier ports.TxQuerier,
	repoManager ports.RepoManager,
	cfg Config,
) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("missing token registry")
	}
	if client == nil {
		return nil, fmt.Errorf("missing chain client")
	}
	if querier == nil {
		return nil, fmt.Errorf("missing tx querier")
	}
	if repoManager == nil {
		return nil, fmt.Errorf("missing repo manager")
	}

	ctx, cancel := context.WithCancel(context.Background())
	return &Service{
		registry:    registry,
		client:      client,
		querier:     querier,
		repoManager: repoManager,
		cfg:         cfg.withDefaults(),
		ctx:         ctx,
		cancel:      cancel,
		wg:          &sync.WaitGroup{},
		inFlight:    make(map[string]struct{}),
		retired:     make(map[string]struct{}),
		reconciling: make(map[string]struct{}),
	}, nil
}

// Execute submits the swap and logs the transaction with status executed.
// Nothing is logged if the submission fails.
// If the swap is submitted but the transaction can't be stored, both the
// result and the store error are returned.
func (s *Service) Execute(ctx context.Context, req Request) (*Result, error) {
	pair, _, err := s.registry.PairForTokens(req.FromToken, req.ToToken)
	if err != nil {
		return nil, err
	}
	fromToken, err := s.registry.Token(req.FromToken)
	if err != nil {
		return nil, err
	}
	toToken, err := s.registry.Token(req.ToToken)
	if err != nil {
		return nil, err
	}

	amountIn := fromToken.ToUnits(req.Amount)
	if !amountIn.IsPositive() {
		return nil, domain.ErrInvalidAmount
	}
	// the chain requires a positive min amount out.
	minOut := decimal.NewFromInt(1)
	if req.MinOut != nil {
		if units := toToken.ToUnits(*req.MinOut); units.GreaterThan(minOut) {
			minOut = units
		}
	}

	swap := ports.SwapRequest{
		PoolID:        pair.PoolID,
		TokenIn:       ports.Coin{Denom: fromToken.Denom, Amount: amountIn},
		TokenOutDenom: toToken.Denom,
		MinOut:        minOut,
	}
	txHash, err := s.client.SwapExactAmountIn(ctx, swap)
	if err != nil {
		stats.ExecutionFailures.WithLabelValues(req.Kind.String()).Inc()
		return nil, fmt.Errorf("%w: %w", domain.ErrExecutionSubmission, err)
	}
	stats.OrdersExecuted.WithLabelValues(req.Kind.String()).Inc()

	if len(txHash) <= 0 {
		txHash = domain.SyntheticTxPrefix + randstr.Hex(8)
		log.Warnf(
			"swap of %v %s submitted without tx hash, logging it as %s",
			req.Amount, req.FromToken, txHash,
		)
	}

	tx := domain.Transaction{
		TxHash:            txHash,
		OrderID:           req.OrderID,
		Timestamp:         time.Now().UTC(),
		Kind:              req.Kind,
		Status:            domain.TxStatusExecuted,
		FromToken:         req.FromToken,
		ToToken:           req.ToToken,
		AmountIn:          req.Amount,
		TriggerPrice:      req.TriggerPrice,
		ExpectedAmountOut: req.ExpectedOut,
		TokenInDenom:      fromToken.Denom,
		TokenOutDenom:     toToken.Denom,
		AmountInRaw:       amountIn.String(),
		PoolID:            pair.PoolID,
		MinOutRaw:         minOut.String(),
	}
	res := &Result{TxHash: txHash, Transaction: tx}

	log.WithFields(log.Fields{
		"tx":     txHash,
		"order":  req.OrderID,
		"kind":   req.Kind,
		"amount": req.Amount,
	}).Infof("swapped %s for %s", req.FromToken, req.ToToken)

	if err := s.repoManager.TransactionRepository().AddTransaction(
		ctx, tx,
	); err != nil {
		log.WithError(err).Errorf("failed to log transaction %s", txHash)
		return res, err
	}

	s.ScheduleReconciliation(txHash)
	return res, nil
}

// ExecuteOrder executes a triggered pending order and removes it from the
// store. An order is never executed twice, whether it's still being executed
// or already executed in the past.
func (s *Service) ExecuteOrder(
	ctx context.Context, order domain.PendingOrder, decision domain.TriggerDecision,
) (*Result, error) {
	if !s.acquire(order.ID) {
		log.Debugf("order %s is being or has been executed, skipping", order.ID)
		return nil, nil
	}
	defer s.release(order.ID)

	tx, err := s.repoManager.TransactionRepository().GetTransactionByOrderID(
		ctx, order.ID,
	)
	if err == nil {
		log.Warnf(
			"order %s already executed with tx %s, removing it", order.ID, tx.TxHash,
		)
		return nil, s.removeExecutedOrder(ctx, order.ID)
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return nil, err
	}

	triggerPrice := order.TriggerPrice
	expectedOut := decision.ExpectedOut
	minOut := decision.MinOut
	res, err := s.Execute(ctx, Request{
		OrderID:      order.ID,
		Kind:         order.Kind,
		FromToken:    order.FromToken,
		ToToken:      order.ToToken,
		Amount:       order.Amount,
		MinOut:       &minOut,
		ExpectedOut:  &expectedOut,
		TriggerPrice: &triggerPrice,
	})
	if res == nil {
		return nil, err
	}

	if removeErr := s.removeExecutedOrder(ctx, order.ID); removeErr != nil {
		log.WithError(removeErr).Errorf(
			"failed to remove executed order %s", order.ID,
		)
		if err == nil {
			err = removeErr
		}
	}
	return res, err
}

// removeExecutedOrder deletes an executed order from the store. The order is
// kept retired in memory only until the deletion succeeds, afterwards the
// transaction logged for it prevents any further execution.
func (s *Service) removeExecutedOrder(ctx context.Context, orderID string) error {
	s.retire(orderID)
	err := s.repoManager.PendingOrderRepository().RemovePendingOrder(ctx, orderID)
	if err != nil {
		return err
	}

	s.lock.Lock()
	delete(s.retired, orderID)
	s.lock.Unlock()
	return nil
}

// Close cancels the pending reconciliations and waits for them to return.
func (s *Service) Close() {
	s.lock.Lock()
	s.closed = true
	s.lock.Unlock()

	s.cancel()
	s.wg.Wait()
}

func (s *Service) acquire(orderID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	if _, ok := s.inFlight[orderID]; ok {
		return false
	}
	if _, ok := s.retired[orderID]; ok {
		return false
	}
	s.inFlight[orderID] = struct{}{}
	return true
}

func (s *Service) release(orderID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	delete(s.inFlight, orderID)
}

func (s *Service) retire(orderID string) {
	s.lock.Lock()
	defer s.lock.Unlock()
	s.retired[orderID] = struct{}{}
}

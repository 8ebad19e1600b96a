package execution

import (
	"context"
	"errors"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/pkg/mathutil"
	"github.com/tdex-network/osmosis-trader/pkg/stats"
)

// ErrNoSwapEvent is returned when a transaction found on chain doesn't
// contain any swap yet, ie. because its events are not indexed.
var ErrNoSwapEvent = errors.New("no swap found in transaction")

// ScheduleReconciliation starts a background task that updates the given
// transaction with its settled values. Synthetic transactions are ignored, as
// well as those already being reconciled.
func (s *Service) ScheduleReconciliation(txHash string) {
	if domain.IsSyntheticTxHash(txHash) {
		return
	}

	s.lock.Lock()
	if s.closed {
		s.lock.Unlock()
		return
	}
	if _, ok := s.reconciling[txHash]; ok {
		s.lock.Unlock()
		return
	}
	s.reconciling[txHash] = struct{}{}
	s.wg.Add(1)
	s.lock.Unlock()

	go func() {
		defer s.wg.Done()
		defer func() {
			s.lock.Lock()
			delete(s.reconciling, txHash)
			s.lock.Unlock()
		}()

		s.reconcileWithRetry(txHash)
	}()
}

func (s *Service) reconcileWithRetry(txHash string) {
	if !s.sleep(s.cfg.GracePeriod) {
		return
	}

	delay := s.cfg.Backoff
	for attempt := 1; attempt <= s.cfg.MaxAttempts; attempt++ {
		ok, err := s.Reconcile(s.ctx, txHash)
		if ok {
			stats.Reconciliations.WithLabelValues("success").Inc()
			return
		}
		if s.ctx.Err() != nil {
			return
		}
		if err != nil && isTerminal(err) {
			stats.Reconciliations.WithLabelValues("failure").Inc()
			log.WithError(err).Warnf("could not reconcile tx %s", txHash)
			return
		}
		if IsTxPending(err) {
			log.Debugf(
				"tx %s not found on chain at attempt %d/%d",
				txHash, attempt, s.cfg.MaxAttempts,
			)
		} else if err != nil {
			log.WithError(err).Debugf(
				"reconciliation attempt %d/%d of tx %s failed",
				attempt, s.cfg.MaxAttempts, txHash,
			)
		}

		if attempt < s.cfg.MaxAttempts {
			if !s.sleep(delay) {
				return
			}
			delay *= 2
		}
	}

	stats.Reconciliations.WithLabelValues("timeout").Inc()
	log.WithError(domain.ErrReconciliationTimeout).Warnf(
		"giving up reconciling tx %s after %d attempts", txHash, s.cfg.MaxAttempts,
	)
}

// Reconcile makes a single attempt to update the given transaction with its
// values settled on chain. It returns whether the transaction is reconciled.
// Reconciling an already reconciled transaction is a no-op.
func (s *Service) Reconcile(ctx context.Context, txHash string) (bool, error) {
	if domain.IsSyntheticTxHash(txHash) {
		return false, domain.ErrSyntheticTransaction
	}

	txRepo := s.repoManager.TransactionRepository()
	tx, err := txRepo.GetTransaction(ctx, txHash)
	if err != nil {
		return false, err
	}
	if tx.IsReconciled() {
		return true, nil
	}

	event, err := s.querier.GetSwapEvent(ctx, txHash)
	if err != nil {
		return false, err
	}
	if event == nil {
		return false, ErrNoSwapEvent
	}

	amountIn, err := s.registry.HumanAmount(event.TokenIn.Amount, event.TokenIn.Denom)
	if err != nil {
		return false, err
	}
	amountOut, err := s.registry.HumanAmount(event.TokenOut.Amount, event.TokenOut.Denom)
	if err != nil {
		return false, err
	}

	status := domain.TxStatusReconciled
	tokenInDenom, tokenOutDenom := event.TokenIn.Denom, event.TokenOut.Denom
	amountInRaw, amountOutRaw := event.TokenIn.Amount.String(), event.TokenOut.Amount.String()
	patch := domain.TransactionPatch{
		Status:          &status,
		ActualAmountOut: &amountOut,
		ExecutionPrice:  s.executionPrice(*tx, amountIn, amountOut),
		TokenInDenom:    &tokenInDenom,
		TokenOutDenom:   &tokenOutDenom,
		AmountInRaw:     &amountInRaw,
		AmountOutRaw:    &amountOutRaw,
	}
	if len(event.PoolID) > 0 {
		patch.PoolID = &event.PoolID
	}
	if event.MinOut != nil {
		minOut := event.MinOut.String()
		patch.MinOutRaw = &minOut
	}

	if err := txRepo.UpdateTransaction(ctx, txHash, patch); err != nil {
		return false, err
	}

	log.WithField("tx", txHash).Infof(
		"reconciled swap: %v %s -> %v %s",
		amountIn, s.registry.SymbolForDenom(tokenInDenom),
		amountOut, s.registry.SymbolForDenom(tokenOutDenom),
	)
	return true, nil
}

// executionPrice returns the settled price expressed as quote per base
// token, or nil if it can't be computed.
func (s *Service) executionPrice(
	tx domain.Transaction, amountIn, amountOut float64,
) *float64 {
	if !mathutil.IsPositive(amountIn) || !mathutil.IsPositive(amountOut) {
		return nil
	}
	_, dir, err := s.registry.PairForTokens(tx.FromToken, tx.ToToken)
	if err != nil {
		return nil
	}

	price := amountOut / amountIn
	if dir == domain.QuoteToBase {
		price = amountIn / amountOut
	}
	return &price
}

// sleep waits for the given duration and returns false if the service is
// closed in the meantime.
func (s *Service) sleep(d time.Duration) bool {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-s.ctx.Done():
		return false
	}
}

// isTerminal returns whether retrying the reconciliation can't succeed.
func isTerminal(err error) bool {
	return errors.Is(err, domain.ErrUnknownDenom) ||
		errors.Is(err, domain.ErrSyntheticTransaction) ||
		errors.Is(err, domain.ErrTransactionNotFound)
}

// IsTxPending returns whether the error returned by Reconcile only means the
// transaction or its swap is not (yet) available on chain.
func IsTxPending(err error) bool {
	return errors.Is(err, ports.ErrTxNotFound) || errors.Is(err, ErrNoSwapEvent)
}

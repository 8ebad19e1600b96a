package osmosisd

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"github.com/tdex-network/osmosis-trader/internal/core/domain"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/pkg/circuitbreaker"
	"github.com/tidwall/gjson"
	"go.uber.org/ratelimit"
)

const (
	// spreadFactorErr is reported by concentrated liquidity pools when the
	// current tick makes the spread factor charge negative. It goes away by
	// itself as soon as the pool moves.
	spreadFactorErr = "spread factor charge must be non-negative"

	defaultTimeout = 30 * time.Second
)

var txHashRegexp = regexp.MustCompile(`txhash:\s*([A-Fa-f0-9]+)`)

// Config holds the parameters of the Osmosis client.
type Config struct {
	Binary        string
	WalletName    string
	ChainID       string
	GasAdjustment float64
	GasPrices     string
	// Timeout bounds every single invocation of the client.
	Timeout time.Duration
	// RateLimit is the max number of invocations per second, 0 means
	// unlimited.
	RateLimit int
}

func (c Config) validate() error {
	if len(c.Binary) <= 0 {
		return fmt.Errorf("missing client binary")
	}
	if len(c.WalletName) <= 0 {
		return fmt.Errorf("missing wallet name")
	}
	if len(c.ChainID) <= 0 {
		return fmt.Errorf("missing chain id")
	}
	if c.GasAdjustment <= 0 {
		return fmt.Errorf("gas adjustment must be positive")
	}
	if len(c.GasPrices) <= 0 {
		return fmt.Errorf("missing gas prices")
	}
	if c.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}

type client struct {
	cfg     Config
	runner  CommandRunner
	cb      *gobreaker.CircuitBreaker
	limiter ratelimit.Limiter
}

// NewClient returns a ports.ChainClient that runs the osmosisd command line
// client through the given runner.
func NewClient(cfg Config, runner CommandRunner) (ports.ChainClient, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if runner == nil {
		runner = NewExecRunner()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}

	limiter := ratelimit.NewUnlimited()
	if cfg.RateLimit > 0 {
		limiter = ratelimit.New(cfg.RateLimit)
	}

	return &client{
		cfg:     cfg,
		runner:  runner,
		cb:      circuitbreaker.NewCircuitBreaker("osmosisd"),
		limiter: limiter,
	}, nil
}

func (c *client) QueryBalances(
	ctx context.Context, address string,
) (map[string]decimal.Decimal, error) {
	out, err := c.run(ctx, "query", "bank", "balances", address, "--output", "json")
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	if !gjson.ValidBytes(out) {
		return nil, fmt.Errorf("failed to parse balances: invalid json")
	}

	balances := make(map[string]decimal.Decimal)
	var parseErr error
	gjson.GetBytes(out, "balances").ForEach(func(_, value gjson.Result) bool {
		denom := value.Get("denom").String()
		amount, err := decimal.NewFromString(value.Get("amount").String())
		if err != nil {
			parseErr = fmt.Errorf("invalid amount for %s: %w", denom, err)
			return false
		}
		balances[denom] = amount
		return true
	})
	if parseErr != nil {
		return nil, fmt.Errorf("failed to parse balances: %w", parseErr)
	}
	return balances, nil
}

func (c *client) EstimateSwapExactAmountIn(
	ctx context.Context, poolID string, tokenIn ports.Coin, outDenom string,
) (decimal.Decimal, error) {
	out, err := c.run(
		ctx, "query", "poolmanager", "estimate-single-pool-swap-exact-amount-in",
		poolID, tokenIn.String(), outDenom, "--output", "json",
	)
	if err != nil {
		return decimal.Zero, fmt.Errorf(
			"failed to estimate swap of %s in pool %s: %w", tokenIn, poolID, err,
		)
	}

	res := gjson.GetBytes(out, "token_out_amount")
	if !res.Exists() {
		return decimal.Zero, fmt.Errorf(
			"failed to estimate swap in pool %s: missing token_out_amount", poolID,
		)
	}
	amount, err := decimal.NewFromString(res.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf(
			"failed to estimate swap in pool %s: %w", poolID, err,
		)
	}
	return amount, nil
}

func (c *client) SwapExactAmountIn(
	ctx context.Context, req ports.SwapRequest,
) (string, error) {
	out, err := c.run(
		ctx, "tx", "poolmanager", "swap-exact-amount-in",
		req.TokenIn.String(), req.MinOut.Floor().String(),
		"--swap-route-pool-ids", req.PoolID,
		"--swap-route-denoms", req.TokenOutDenom,
		"--from", c.cfg.WalletName,
		"--chain-id", c.cfg.ChainID,
		"--gas", "auto",
		"--gas-adjustment", decimal.NewFromFloat(c.cfg.GasAdjustment).String(),
		"--gas-prices", c.cfg.GasPrices,
		"--output", "json",
		"-y",
	)
	if err != nil {
		return "", err
	}

	if gjson.ValidBytes(out) {
		if code := gjson.GetBytes(out, "code").Int(); code != 0 {
			return "", fmt.Errorf(
				"transaction rejected with code %d: %s",
				code, gjson.GetBytes(out, "raw_log").String(),
			)
		}
		if hash := gjson.GetBytes(out, "txhash").String(); len(hash) > 0 {
			return hash, nil
		}
	}

	if m := txHashRegexp.FindSubmatch(out); len(m) > 1 {
		return string(m[1]), nil
	}

	log.Warnf("swap submitted but tx hash not found in client output: %s", out)
	return "", nil
}

type cmdResult struct {
	stdout []byte
	err    error
}

// run invokes the client with the given args. Transient failures are returned
// as errors without being counted as failures by the circuit breaker.
func (c *client) run(ctx context.Context, args ...string) ([]byte, error) {
	c.limiter.Take()

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	iRes, err := c.cb.Execute(func() (interface{}, error) {
		stdout, stderr, err := c.runner.Run(ctx, c.cfg.Binary, args...)
		if err != nil {
			cmdErr := commandError(ctx, stderr, err)
			if errors.Is(cmdErr, domain.ErrTransientPrice) {
				return cmdResult{err: cmdErr}, nil
			}
			return nil, cmdErr
		}
		return cmdResult{stdout: stdout}, nil
	})
	if err != nil {
		return nil, err
	}

	res := iRes.(cmdResult)
	return res.stdout, res.err
}

func commandError(ctx context.Context, stderr []byte, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("osmosisd: %w", ctxErr)
	}

	msg := strings.TrimSpace(string(stderr))
	if len(msg) <= 0 {
		msg = err.Error()
	}
	if strings.Contains(msg, spreadFactorErr) {
		return fmt.Errorf("%w: %s", domain.ErrTransientPrice, msg)
	}
	return fmt.Errorf("osmosisd: %s", msg)
}

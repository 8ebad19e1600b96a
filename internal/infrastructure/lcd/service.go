package lcd

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/pkg/util"
	"github.com/tidwall/gjson"
)

const (
	// DefaultURL is the public Osmosis LCD endpoint.
	DefaultURL = "https://lcd.osmosis.zone"

	txPath           = "/cosmos/tx/v1beta1/txs/"
	swapEventType    = "token_swapped"
	swapExactInMsgTy = "/osmosis.poolmanager.v1beta1.MsgSwapExactAmountIn"
)

type service struct {
	baseURL string
	client  *http.Client
}

// NewService returns a ports.TxQuerier that reads transactions from the
// given LCD endpoint.
func NewService(baseURL string, timeout time.Duration) (ports.TxQuerier, error) {
	if len(baseURL) <= 0 {
		baseURL = DefaultURL
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("invalid lcd url %q", baseURL)
	}
	if timeout <= 0 {
		timeout = util.DefaultTimeout
	}

	return &service{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}, nil
}

func (s *service) GetSwapEvent(
	ctx context.Context, txHash string,
) (*ports.SwapEvent, error) {
	url := s.baseURL + txPath + txHash
	status, body, err := util.NewHTTPRequestWithClient(
		ctx, s.client, http.MethodGet, url, "", nil,
	)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNotFound {
		return nil, ports.ErrTxNotFound
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("lcd: unexpected status %d: %s", status, body)
	}
	if !gjson.Valid(body) {
		return nil, fmt.Errorf("lcd: invalid json response")
	}

	return parseSwapEvent(body)
}

func parseSwapEvent(body string) (*ports.SwapEvent, error) {
	var attrs map[string]string
	gjson.Get(body, "tx_response.events").ForEach(func(_, event gjson.Result) bool {
		if event.Get("type").String() != swapEventType {
			return true
		}
		attrs = make(map[string]string)
		event.Get("attributes").ForEach(func(_, attr gjson.Result) bool {
			attrs[attr.Get("key").String()] = attr.Get("value").String()
			return true
		})
		return false
	})
	if attrs == nil {
		return nil, nil
	}

	tokenIn, err := parseSingleCoin(attrs["tokens_in"])
	if err != nil {
		return nil, fmt.Errorf("lcd: tokens_in: %w", err)
	}
	tokenOut, err := parseSingleCoin(attrs["tokens_out"])
	if err != nil {
		return nil, fmt.Errorf("lcd: tokens_out: %w", err)
	}

	event := &ports.SwapEvent{
		PoolID:   attrs["pool_id"],
		TokenIn:  tokenIn,
		TokenOut: tokenOut,
	}

	gjson.Get(body, "tx.body.messages").ForEach(func(_, msg gjson.Result) bool {
		fields := msg.Map()
		if fields["@type"].String() != swapExactInMsgTy {
			return true
		}
		if minOut, err := decimal.NewFromString(
			fields["token_out_min_amount"].String(),
		); err == nil {
			event.MinOut = &minOut
		}
		return false
	})

	return event, nil
}

// parseSingleCoin parses a coins attribute of a swap event, that must hold
// exactly one coin for single pool swaps.
func parseSingleCoin(value string) (ports.Coin, error) {
	coins, err := ports.ParseCoins(value)
	if err != nil {
		return ports.Coin{}, err
	}
	if len(coins) != 1 {
		return ports.Coin{}, fmt.Errorf("expected one coin, got %d", len(coins))
	}
	return coins[0], nil
}

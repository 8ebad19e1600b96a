package lcd_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/internal/core/ports"
	"github.com/tdex-network/osmosis-trader/internal/infrastructure/lcd"
)

const swapTx = `{
  "tx": {
    "body": {
      "messages": [
        {
          "@type": "/osmosis.poolmanager.v1beta1.MsgSwapExactAmountIn",
          "sender": "osmo1sender",
          "routes": [{"pool_id": "1943", "token_out_denom": "ibc/498A"}],
          "token_in": {"denom": "factory/x/alloyed/allBTC", "amount": "50000000"},
          "token_out_min_amount": "29660750000"
        }
      ]
    }
  },
  "tx_response": {
    "txhash": "ABCDEF",
    "code": 0,
    "events": [
      {"type": "coin_spent", "attributes": [{"key": "amount", "value": "1uosmo"}]},
      {
        "type": "token_swapped",
        "attributes": [
          {"key": "module", "value": "gamm"},
          {"key": "pool_id", "value": "1943"},
          {"key": "tokens_in", "value": "50000000factory/x/alloyed/allBTC"},
          {"key": "tokens_out", "value": "29700000000ibc/498A"}
        ]
      }
    ]
  }
}`

const noSwapTx = `{
  "tx": {"body": {"messages": []}},
  "tx_response": {"txhash": "ABCDEF", "events": [{"type": "transfer", "attributes": []}]}
}`

const multiCoinSwapTx = `{
  "tx": {"body": {"messages": []}},
  "tx_response": {
    "txhash": "ABCDEF",
    "events": [
      {
        "type": "token_swapped",
        "attributes": [
          {"key": "pool_id", "value": "1"},
          {"key": "tokens_in", "value": "10uosmo,5uion"},
          {"key": "tokens_out", "value": "3ibc/498A"}
        ]
      }
    ]
  }
}`

func TestGetSwapEvent(t *testing.T) {
	responses := map[string]struct {
		status int
		body   string
	}{
		"/cosmos/tx/v1beta1/txs/SWAP":    {http.StatusOK, swapTx},
		"/cosmos/tx/v1beta1/txs/NOSWAP":  {http.StatusOK, noSwapTx},
		"/cosmos/tx/v1beta1/txs/BROKEN":  {http.StatusOK, "not json"},
		"/cosmos/tx/v1beta1/txs/MULTI":   {http.StatusOK, multiCoinSwapTx},
		"/cosmos/tx/v1beta1/txs/FAILING": {http.StatusInternalServerError, "{}"},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"code":5,"message":"tx not found"}`))
			return
		}
		w.WriteHeader(res.status)
		w.Write([]byte(res.body))
	}))
	defer srv.Close()

	svc, err := lcd.NewService(srv.URL+"/", time.Second)
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("swap", func(t *testing.T) {
		event, err := svc.GetSwapEvent(ctx, "SWAP")
		require.NoError(t, err)
		require.NotNil(t, event)
		require.Equal(t, "1943", event.PoolID)
		require.Equal(t, "factory/x/alloyed/allBTC", event.TokenIn.Denom)
		require.Equal(t, "50000000", event.TokenIn.Amount.String())
		require.Equal(t, "ibc/498A", event.TokenOut.Denom)
		require.Equal(t, "29700000000", event.TokenOut.Amount.String())
		require.NotNil(t, event.MinOut)
		require.Equal(t, "29660750000", event.MinOut.String())
	})

	t.Run("no_swap", func(t *testing.T) {
		event, err := svc.GetSwapEvent(ctx, "NOSWAP")
		require.NoError(t, err)
		require.Nil(t, event)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := svc.GetSwapEvent(ctx, "UNKNOWN")
		require.ErrorIs(t, err, ports.ErrTxNotFound)
	})

	t.Run("failing", func(t *testing.T) {
		_, err := svc.GetSwapEvent(ctx, "FAILING")
		require.Error(t, err)
		require.NotErrorIs(t, err, ports.ErrTxNotFound)

		_, err = svc.GetSwapEvent(ctx, "BROKEN")
		require.Error(t, err)

		_, err = svc.GetSwapEvent(ctx, "MULTI")
		require.ErrorContains(t, err, "tokens_in")
	})
}

func TestFailingNewService(t *testing.T) {
	_, err := lcd.NewService("lcd.osmosis.zone", 0)
	require.Error(t, err)
}

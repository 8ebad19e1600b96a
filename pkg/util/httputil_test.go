package util_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/pkg/util"
)

func TestNewHTTPRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(r.Method + ":" + r.Header.Get("X-Test") + ":" + string(body)))
	}))
	defer srv.Close()

	ctx := context.Background()
	header := map[string]string{"X-Test": "yes"}

	status, body, err := util.NewHTTPRequest(ctx, http.MethodPost, srv.URL, "payload", header)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, status)
	require.Equal(t, "POST:yes:payload", body)

	status, body, err = util.NewHTTPRequest(ctx, http.MethodGet, srv.URL, "", nil)
	require.NoError(t, err)
	require.Equal(t, http.StatusAccepted, status)
	require.Equal(t, "GET::", body)

	_, _, err = util.NewHTTPRequest(ctx, http.MethodPut, srv.URL, "", nil)
	require.Error(t, err)
}

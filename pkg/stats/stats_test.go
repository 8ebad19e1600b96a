package stats_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tdex-network/osmosis-trader/pkg/stats"
)

func TestDumpMetrics(t *testing.T) {
	stats.OrdersExecuted.WithLabelValues("market").Inc()

	path := filepath.Join(t.TempDir(), "stats")
	require.NoError(t, stats.DumpMetrics(path))
	require.NoError(t, stats.DumpMetrics(path))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "osmotrader_orders_executed_total")
}

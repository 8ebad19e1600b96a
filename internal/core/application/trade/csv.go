package trade

import (
	"context"
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/tdex-network/osmosis-trader/internal/core/domain"
)

const csvDateLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"Date",
	"Type",
	"From Token",
	"Amount In",
	"To Token",
	"Amount Out (Expected)",
	"Amount Out (Actual)",
	"Price (Expected)",
	"Price (Actual)",
	"Status",
	"Transaction Hash",
}

// ExportTransactionsCSV writes the logged transactions, newest first, to the
// given writer in CSV format. It returns the number of exported
// transactions.
func (s *Service) ExportTransactionsCSV(
	ctx context.Context, w io.Writer,
) (int, error) {
	txs, err := s.ListTransactions(ctx)
	if err != nil {
		return 0, err
	}

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return 0, err
	}
	for _, tx := range txs {
		if err := writer.Write(s.csvRecord(tx)); err != nil {
			return 0, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return 0, err
	}

	return len(txs), nil
}

func (s *Service) csvRecord(tx domain.Transaction) []string {
	var expectedPrice *float64
	if _, dir, err := s.registry.PairForTokens(tx.FromToken, tx.ToToken); err == nil {
		expectedPrice = tx.ExpectedPrice(dir)
	}

	return []string{
		tx.Timestamp.UTC().Format(csvDateLayout),
		kindLabel(tx.Kind),
		tx.FromToken,
		formatFloat(&tx.AmountIn),
		tx.ToToken,
		formatFloat(tx.ExpectedAmountOut),
		formatFloat(tx.ActualAmountOut),
		formatFloat(expectedPrice),
		formatFloat(tx.ExecutionPrice),
		capitalize(tx.Status.String()),
		tx.TxHash,
	}
}

// kindLabel returns the order kind in title case, ie. Stop Loss.
func kindLabel(kind domain.OrderKind) string {
	if kind == "" {
		kind = domain.OrderKindMarket
	}
	words := strings.Split(kind.String(), "_")
	for i, w := range words {
		words[i] = capitalize(w)
	}
	return strings.Join(words, " ")
}

func capitalize(s string) string {
	if len(s) <= 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func formatFloat(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

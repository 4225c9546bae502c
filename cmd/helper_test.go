package cmd

import (
	"context"
	"testing"

	"github.com/etnz/fund"
	"github.com/etnz/fund/date"
	"github.com/stretchr/testify/require"
)

// testLedger runs a portfolio holding AAPL over the end of january and the beginning of february 2024.
func testLedger(t *testing.T) *fund.Ledger {
	t.Helper()
	days := []string{"2024-01-29", "2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02"}
	ds := fund.NewDataset("USD")
	var cal []date.Date
	for i, d := range days {
		on := date.MustParse(d)
		cal = append(cal, on)
		ds.Prices.Set(on, "AAPL", 100+float64(i))
		ds.Benchmark.Append(on, 1000+5*float64(i))
	}
	ds.Calendar = date.NewCalendar(cal...)
	ds.Transactions = []fund.Transaction{
		fund.NewTransaction(cal[0], fund.Buy, "AAPL", fund.Q(10), fund.M(100, "USD"), fund.M(1, "USD")),
	}

	l, err := fund.Run(context.Background(), ds, fund.Params{InitialCapital: fund.M(10000, "USD")})
	require.NoError(t, err)
	return l
}

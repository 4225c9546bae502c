package fund

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/etnz/fund/date"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, ds *Dataset, p Params) *Ledger {
	t.Helper()
	l, err := Run(context.Background(), ds, p)
	require.NoError(t, err)
	return l
}

func snapshot(t *testing.T, l *Ledger, on string) Snapshot {
	t.Helper()
	s, err := l.On(day(on))
	require.NoError(t, err)
	return s
}

func assertMoney(t *testing.T, want, got Money, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, want.Equal(got), "want %v got %v %v", want.Decimal(), got.Decimal(), msgAndArgs)
}

func TestRunFirstBuy(t *testing.T) {
	ds := newTestDataset("2024-01-16").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 1).
		price("2024-01-16", "AAPL", 50)

	t.Run("without yield", func(t *testing.T) {
		s := snapshot(t, run(t, ds, noYield), "2024-01-16")
		assertMoney(t, USD(99499), s.Cash())
		assertMoney(t, USD(500), s.PositionValue())
		assertMoney(t, USD(99999), s.NAV())
		assertMoney(t, USD(501), s.Invested())
		assertMoney(t, USD(1), s.Fees())
		assert.Equal(t, 1, s.Buys())
		assert.True(t, s.Position("AAPL").Equal(Q(10)))
	})

	t.Run("with 3% yield", func(t *testing.T) {
		s := snapshot(t, run(t, ds, Params{InitialCapital: USD(100000), CashYield: 0.03}), "2024-01-16")
		// Interest accrues on the opening balance, before the trade.
		want := 100000*(1+0.03/252) - 501
		assert.InDelta(t, want, s.Cash().AsFloat(), 1e-6)
		assert.InDelta(t, want+500, s.NAV().AsFloat(), 1e-6)
	})
}

func TestRunNoTradeDay(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 1).
		price("2024-01-16", "AAPL", 50).
		price("2024-01-17", "AAPL", 52)
	l := run(t, ds, Params{InitialCapital: USD(100000), CashYield: 0.05})

	d1, d2 := snapshot(t, l, "2024-01-16"), snapshot(t, l, "2024-01-17")
	assert.InDelta(t, d1.Cash().AsFloat()*(1+0.05/252), d2.Cash().AsFloat(), 1e-6, "cash changes by accrual only")
	assert.Equal(t, d1.Positions(), d2.Positions())
	assert.Zero(t, d2.Buys()+d2.Sells()+d2.Shorts()+d2.Covers())
	assertMoney(t, USD(0), d2.Fees())
	assertMoney(t, USD(520), d2.PositionValue())
}

func TestRunNAVIsValuePlusCash(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17", "2024-01-18").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 1).
		trade("2024-01-17", ShortSell, "MSFT", 3, 300, 2).
		trade("2024-01-18", Sell, "AAPL", 4, 55, 1).
		price("2024-01-16", "AAPL", 50).
		price("2024-01-17", "AAPL", 51).price("2024-01-17", "MSFT", 301).
		price("2024-01-18", "AAPL", 55).price("2024-01-18", "MSFT", 299)
	l := run(t, ds, Params{InitialCapital: USD(100000), CashYield: 0.03})

	require.Equal(t, 3, l.Len())
	for s := range l.Snapshots() {
		assertMoney(t, s.PositionValue().Add(s.Cash()), s.NAV(), s.On())
	}
}

func TestRunRoundTripLeaksTwoFees(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 3).
		trade("2024-01-17", Sell, "AAPL", 10, 50, 3)
	l := run(t, ds, noYield)

	last, ok := l.Last()
	require.True(t, ok)
	assertMoney(t, USD(100000-6), last.Cash())
	assert.True(t, last.Position("AAPL").IsZero())
	assertMoney(t, USD(500), last.Recovered(), "recovered excludes fees")

	t.Run("same day", func(t *testing.T) {
		ds := newTestDataset("2024-01-16").
			trade("2024-01-16", Buy, "AAPL", 10, 50, 3).
			trade("2024-01-16", Sell, "AAPL", 10, 50, 3)
		s := snapshot(t, run(t, ds, noYield), "2024-01-16")

		assertMoney(t, USD(100000-6), s.Cash())
		assertMoney(t, USD(100000-6), s.NAV())
		assert.True(t, s.Position("AAPL").IsZero())
		assertMoney(t, USD(503), s.Invested())
		assertMoney(t, USD(500), s.Recovered())
		assertMoney(t, USD(6), s.Fees())
		assert.Equal(t, 1, s.Buys())
		assert.Equal(t, 1, s.Sells())
	})
}

func TestRunCashScaleIsBounded(t *testing.T) {
	ds := NewDataset("USD")
	days := make([]date.Date, 1000)
	for i := range days {
		days[i] = day("2020-01-01").Add(i)
	}
	ds.Calendar = date.NewCalendar(days...)
	l := run(t, ds, Params{InitialCapital: USD(100000), CashYield: 0.03})

	last, ok := l.Last()
	require.True(t, ok)
	cash := last.Cash().Decimal()
	assert.GreaterOrEqual(t, cash.Exponent(), int32(-cashScale))
	assert.Less(t, len(cash.String()), 20)
	assert.InDelta(t, 100000*math.Pow(1+0.03/252, 1000), cash.InexactFloat64(), 1e-6)

	data, err := json.Marshal(last.Cash())
	require.NoError(t, err)
	assert.Less(t, len(data), 20, "serialized cash stays short: %s", data)
}

func TestRunSkipsTradesOffCalendar(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-18").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 0).
		trade("2024-01-17", Buy, "AAPL", 5, 50, 0)

	var buf bytes.Buffer
	ctx := zerolog.New(&buf).WithContext(context.Background())
	l, err := Run(ctx, ds, noYield)
	require.NoError(t, err)

	skipped := l.Skipped()
	require.Len(t, skipped, 1)
	assert.Equal(t, day("2024-01-17"), skipped[0].Date)
	assert.True(t, snapshot(t, l, "2024-01-18").Position("AAPL").Equal(Q(10)))
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"date":"2024-01-17"`)
	assert.Contains(t, buf.String(), "not on a market day")

	r, err := l.Summary(0)
	require.NoError(t, err)
	assert.Len(t, r.Skipped, 1)
}

func TestRunInvestedIsTradeOutflow(t *testing.T) {
	ds := newTestDataset("2024-01-16").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 1).
		trade("2024-01-16", Cover, "MSFT", 2, 100, 0.5).
		trade("2024-01-16", Sell, "GOOG", 1, 10, 0.25)
	s := snapshot(t, run(t, ds, noYield), "2024-01-16")

	assertMoney(t, USD(500+1+200+0.5), s.Invested())
	assertMoney(t, USD(10), s.Recovered())
	assertMoney(t, USD(1.75), s.Fees(), "every transaction adds its fee")
	assert.Equal(t, 1, s.Buys())
	assert.Equal(t, 1, s.Covers())
	assert.Equal(t, 1, s.Sells())
	assert.Equal(t, 1, s.Count(Cover))
}

func TestRunShortThenCover(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-16", ShortSell, "TSLA", 5, 100, 2).
		trade("2024-01-17", Cover, "TSLA", 5, 90, 2).
		price("2024-01-16", "TSLA", 100).
		price("2024-01-17", "TSLA", 90)
	l := run(t, ds, noYield)

	d1 := snapshot(t, l, "2024-01-16")
	assert.True(t, d1.Position("TSLA").Equal(Q(-5)))
	assertMoney(t, USD(100498), d1.Cash())
	assertMoney(t, USD(-500), d1.PositionValue())
	assertMoney(t, USD(99998), d1.NAV())
	assert.Equal(t, 1, d1.Shorts())

	d2 := snapshot(t, l, "2024-01-17")
	assert.True(t, d2.Position("TSLA").IsZero())
	assertMoney(t, USD(100046), d2.Cash())
	assertMoney(t, USD(100046), d2.NAV())
	assert.Equal(t, 1, d2.Covers())
}

func TestRunUnpricedDay(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17", "2024-01-18").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 0).
		price("2024-01-16", "AAPL", 50).
		price("2024-01-18", "AAPL", 60)
	l := run(t, ds, noYield)

	d2 := snapshot(t, l, "2024-01-17")
	assertMoney(t, USD(0), d2.PositionValue(), "no carry forward of the last price")
	assertMoney(t, d2.Cash(), d2.NAV())
	assert.True(t, d2.Position("AAPL").Equal(Q(10)))

	d3 := snapshot(t, l, "2024-01-18")
	assertMoney(t, USD(600), d3.PositionValue())
}

func TestRunSameDayOrder(t *testing.T) {
	// Selling first goes short in between: the book never rejects a trade.
	ds := newTestDataset("2024-01-16").
		trade("2024-01-16", Sell, "AAPL", 10, 50, 0).
		trade("2024-01-16", Buy, "AAPL", 10, 50, 0)
	s := snapshot(t, run(t, ds, noYield), "2024-01-16")
	assert.True(t, s.Position("AAPL").IsZero())
	assertMoney(t, USD(100000), s.Cash())
}

func TestRunPositionsStartAtZero(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-17", Buy, "AAPL", 1, 10, 0)
	s := snapshot(t, run(t, ds, noYield), "2024-01-16")

	pos := s.Positions()
	require.Contains(t, pos, "AAPL")
	assert.True(t, pos["AAPL"].IsZero())
	assert.Empty(t, collectTickers(s), "zero positions are not holdings")
}

func collectTickers(s Snapshot) []string {
	var tickers []string
	for ticker := range s.Holdings() {
		tickers = append(tickers, ticker)
	}
	return tickers
}

func TestRunSnapshotsDoNotAlias(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 0).
		trade("2024-01-17", Buy, "AAPL", 5, 50, 0)
	l := run(t, ds, noYield)

	d1 := snapshot(t, l, "2024-01-16")
	assert.True(t, d1.Position("AAPL").Equal(Q(10)), "later trades must not leak into earlier snapshots")

	pos := d1.Positions()
	pos["AAPL"] = Q(1000)
	assert.True(t, snapshot(t, l, "2024-01-16").Position("AAPL").Equal(Q(10)), "callers cannot mutate a snapshot")

	assert.True(t, snapshot(t, l, "2024-01-17").Position("AAPL").Equal(Q(15)))
}

func TestRunUnknownKind(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 0).
		trade("2024-01-17", Kind(42), "AAPL", 10, 50, 0)

	l, err := Run(context.Background(), ds, noYield)
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.ErrorContains(t, err, "2024-01-17")
	assert.Nil(t, l)
}

func TestRunInvalidParams(t *testing.T) {
	_, err := Run(context.Background(), newTestDataset("2024-01-16"), Params{InitialCapital: USD(-1)})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestRunDefaultsCurrency(t *testing.T) {
	l := run(t, newTestDataset("2024-01-16"), Params{InitialCapital: M(100, "")})
	s, _ := l.First()
	assert.Equal(t, "USD", s.Cash().Currency())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l, err := Run(ctx, newTestDataset("2024-01-16"), noYield)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, l)
}

func TestLedgerAccessors(t *testing.T) {
	ds := newTestDataset("2024-01-30", "2024-01-31", "2024-02-01", "2024-02-02")
	l := run(t, ds, noYield)

	assert.NotEmpty(t, l.ID())
	assert.Same(t, ds, l.Dataset())

	_, err := l.On(day("2024-01-29"))
	assert.ErrorIs(t, err, ErrNoData)

	feb := date.NewRange(day("2024-02-10"), date.Monthly)
	between := l.Between(feb)
	require.Len(t, between, 2)
	assert.Equal(t, day("2024-02-01"), between[0].On())
	assert.Equal(t, day("2024-02-02"), between[1].On())
	assert.Empty(t, l.Between(date.Range{From: day("2024-02-02"), To: day("2024-01-30")}), "reversed range")

	months := l.Months()
	require.Len(t, months, 2)
	assert.Equal(t, "2024-02", months[0].Identifier(), "most recent first")
	assert.Equal(t, "2024-01", months[1].Identifier())

	assert.Equal(t, 4, l.NAV().Len())
}

func TestEncodeLedger(t *testing.T) {
	ds := newTestDataset("2024-01-16", "2024-01-17").
		trade("2024-01-16", Buy, "AAPL", 10, 50, 1).
		price("2024-01-16", "AAPL", 50)
	l := run(t, ds, noYield)

	var buf bytes.Buffer
	require.NoError(t, EncodeLedger(&buf, l))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	assert.True(t, strings.HasPrefix(lines[0], `{"date":"2024-01-16","buys":1,`), lines[0])
	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &got))
	assert.Equal(t, 99999.0, got["nav"])
	assert.Equal(t, 99499.0, got["cash"])
	assert.Equal(t, map[string]any{"AAPL": 10.0}, got["positions"])
}

package fund

import (
	"github.com/etnz/fund/date"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// day is a helper for test to parse a date.
func day(s string) date.Date { return date.MustParse(s) }

// newTestDataset creates an empty USD dataset over the given market days.
func newTestDataset(days ...string) *Dataset {
	ds := NewDataset("USD")
	cal := make([]date.Date, 0, len(days))
	for _, d := range days {
		cal = append(cal, day(d))
	}
	ds.Calendar = date.NewCalendar(cal...)
	return ds
}

// trade appends a transaction to the dataset.
func (ds *Dataset) trade(on string, kind Kind, ticker string, qty, price, fee float64) *Dataset {
	ds.Transactions = append(ds.Transactions, NewTransaction(day(on), kind, ticker, Q(qty), USD(price), USD(fee)))
	return ds
}

// price sets a quote in the dataset.
func (ds *Dataset) price(on, ticker string, p float64) *Dataset {
	ds.Prices.Set(day(on), ticker, p)
	return ds
}

// noYield are engine parameters without cash interest, so that cash arithmetic is exact.
var noYield = Params{InitialCapital: USD(100000)}

package fund

import (
	"errors"
	"fmt"
	"slices"

	"github.com/etnz/fund/date"
)

// DefaultCurrency is used when no currency is configured.
const DefaultCurrency = "USD"

// Dataset holds the four tabular inputs of a run, as produced by the ingestion layer.
type Dataset struct {
	Currency     string
	Transactions []Transaction
	Prices       *Prices
	Benchmark    *date.History[float64]
	Calendar     *date.Calendar
}

// NewDataset creates an empty dataset in the given currency.
func NewDataset(currency string) *Dataset {
	if currency == "" {
		currency = DefaultCurrency
	}
	return &Dataset{
		Currency:  currency,
		Prices:    NewPrices(currency),
		Benchmark: new(date.History[float64]),
		Calendar:  date.NewCalendar(),
	}
}

// Validate checks every transaction and returns all errors found.
func (ds *Dataset) Validate() error {
	var errs error
	for i, tx := range ds.Transactions {
		if err := tx.Validate(); err != nil {
			errs = errors.Join(errs, fmt.Errorf("transaction #%d (%s %s): %w", i+1, tx.Date, tx.Ticker, err))
		}
	}
	return errs
}

// Tickers returns the tickers seen in the transaction log, in order of first appearance.
func (ds *Dataset) Tickers() []string {
	var tickers []string
	for _, tx := range ds.Transactions {
		if !slices.Contains(tickers, tx.Ticker) {
			tickers = append(tickers, tx.Ticker)
		}
	}
	return tickers
}

// Sectors maps each ticker to the sector of its first transaction.
func (ds *Dataset) Sectors() map[string]string {
	sectors := make(map[string]string)
	for _, tx := range ds.Transactions {
		if _, ok := sectors[tx.Ticker]; !ok {
			sectors[tx.Ticker] = tx.Sector
		}
	}
	return sectors
}

// byDate groups transactions by date, keeping the input order within a day.
func (ds *Dataset) byDate() map[date.Date][]Transaction {
	days := make(map[date.Date][]Transaction)
	for _, tx := range ds.Transactions {
		days[tx.Date] = append(days[tx.Date], tx)
	}
	return days
}

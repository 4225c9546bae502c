package fund

import (
	"maps"
	"slices"

	"github.com/etnz/fund/date"
)

// Prices is the sparse price surface: a unit price per (date, ticker).
//
// Not every ticker is priced every day. An absent quote means "unpriced today",
// which is structurally different from a price of zero.
type Prices struct {
	cur    string
	quotes map[date.Date]map[string]Money
}

// NewPrices creates an empty price surface in the given currency.
func NewPrices(currency string) *Prices {
	return &Prices{cur: currency, quotes: make(map[date.Date]map[string]Money)}
}

// Set records the price of ticker on a given day. Existing quotes are overwritten.
func (p *Prices) Set(on date.Date, ticker string, price float64) *Prices {
	day, ok := p.quotes[on]
	if !ok {
		day = make(map[string]Money)
		p.quotes[on] = day
	}
	day[ticker] = M(price, p.cur)
	return p
}

// Price returns the price of ticker on that exact day, and whether it is priced.
// It never falls back on a previous day.
func (p *Prices) Price(on date.Date, ticker string) (Money, bool) {
	price, ok := p.quotes[on][ticker]
	return price, ok
}

// Has reports whether at least one ticker is priced on that day.
func (p *Prices) Has(on date.Date) bool { return len(p.quotes[on]) > 0 }

// Tickers returns all tickers with at least one quote, sorted.
func (p *Prices) Tickers() []string {
	seen := make(map[string]struct{})
	for _, day := range p.quotes {
		for ticker := range day {
			seen[ticker] = struct{}{}
		}
	}
	return slices.Sorted(maps.Keys(seen))
}

// Len returns the number of (date, ticker) quotes.
func (p *Prices) Len() int {
	n := 0
	for _, day := range p.quotes {
		n += len(day)
	}
	return n
}

// Currency returns the currency of the quotes.
func (p *Prices) Currency() string { return p.cur }

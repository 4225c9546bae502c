package fund

import (
	"fmt"
	"maps"

	"github.com/etnz/fund/date"
	"github.com/shopspring/decimal"
)

// book is the mutable balance sheet of a run: the position book and the cash
// balance. It is owned by a single run and only observable through snapshots.
type book struct {
	cash      Money
	positions map[string]Quantity
}

// newBook opens a book with the initial capital and a zero position for every ticker.
func newBook(capital Money, tickers []string) *book {
	b := &book{cash: capital, positions: make(map[string]Quantity, len(tickers))}
	for _, ticker := range tickers {
		b.positions[ticker] = Q(0)
	}
	return b
}

// cashScale is the number of decimal places kept on the cash balance after
// each accrual. Exact products would otherwise gain digits every day.
const cashScale = 10

// accrue grows the cash balance by factor. It must happen before the day's
// trades so that interest compounds on the prior closing balance.
func (b *book) accrue(factor decimal.Decimal) {
	b.cash = b.cash.Grow(factor).Round(cashScale)
}

// apply applies the effect of a transaction and records it in the day's snapshot.
func (b *book) apply(tx Transaction, s *Snapshot) error {
	gross := tx.Amount()
	switch tx.Kind.Direction() {
	case Acquire:
		b.positions[tx.Ticker] = b.positions[tx.Ticker].Add(tx.Quantity)
		b.cash = b.cash.Sub(gross).Sub(tx.Fee)
		s.invested = s.invested.Add(gross).Add(tx.Fee)
	case Dispose:
		b.positions[tx.Ticker] = b.positions[tx.Ticker].Sub(tx.Quantity)
		b.cash = b.cash.Add(gross).Sub(tx.Fee)
		s.recovered = s.recovered.Add(gross)
	default:
		return fmt.Errorf("%w: %v on %s for %q", ErrUnknownKind, tx.Kind, tx.Date, tx.Ticker)
	}
	s.counts[tx.Kind]++
	s.fees = s.fees.Add(tx.Fee)
	return nil
}

// value returns the market value of the book at that day's prices.
// Unpriced tickers contribute zero for that day only.
func (b *book) value(prices *Prices, on date.Date) Money {
	total := M(0, b.cash.Currency())
	for ticker, qty := range b.positions {
		if price, ok := prices.Price(on, ticker); ok {
			total = total.Add(price.Mul(qty))
		}
	}
	return total
}

// positionsCopy returns a structural copy of the position book.
// Snapshots must never alias the book, it keeps mutating on the following days.
func (b *book) positionsCopy() map[string]Quantity {
	return maps.Clone(b.positions)
}

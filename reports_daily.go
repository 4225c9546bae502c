package fund

import (
	"github.com/etnz/fund/date"
	"github.com/etnz/fund/stats"
)

// DailyReport is the state of the portfolio at the close of a market day.
type DailyReport struct {
	Snapshot     Snapshot
	Previous     date.Date   // previous market day, zero if none
	Daily        stats.Value // NAV change vs the previous market day
	Cumulative   stats.Value // NAV change since the first market day
	Composition  *Composition
	Transactions []Transaction // in input order
}

// Daily returns the daily report of a market day, or ErrNoData.
func (l *Ledger) Daily(on date.Date) (*DailyReport, error) {
	s, err := l.On(on)
	if err != nil {
		return nil, err
	}
	compo, err := l.Composition(on)
	if err != nil {
		return nil, err
	}
	r := &DailyReport{Snapshot: s, Daily: stats.Undefined, Composition: compo}

	for _, tx := range l.data.Transactions {
		if tx.Date == on {
			r.Transactions = append(r.Transactions, tx)
		}
	}

	nav := s.NAV().AsFloat()
	if first, ok := l.First(); ok {
		r.Cumulative = ratio(nav, first.NAV().AsFloat())
	}
	if prev, ok := l.data.Calendar.Previous(on); ok {
		r.Previous = prev
		if ps, err := l.On(prev); err == nil {
			r.Daily = ratio(nav, ps.NAV().AsFloat())
		}
	}
	return r, nil
}

// ratio returns a/b - 1, undefined when b is zero.
func ratio(a, b float64) stats.Value {
	if b == 0 {
		return stats.Undefined
	}
	return stats.Of(a/b - 1)
}

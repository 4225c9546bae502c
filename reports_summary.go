package fund

import (
	"fmt"

	"github.com/etnz/fund/date"
)

// MonthlyReport is the reporting of a calendar month.
type MonthlyReport struct {
	Month       date.Range
	LastDay     date.Date // last market day of the month
	Composition *Composition
	Sectors     []SectorWeight
	Performance Performance
	Base100     Base100
	Skipped     []Transaction // dated outside the calendar, never applied
}

// Monthly returns the report of the month containing month, using rf as the
// periodic risk-free rate of the Sharpe ratio. It returns ErrNoData if the
// ledger has no market day in that month.
func (l *Ledger) Monthly(month date.Date, rf float64) (*MonthlyReport, error) {
	r := date.NewRange(month, date.Monthly)
	days := l.Between(r)
	if len(days) == 0 {
		return nil, fmt.Errorf("%w: no market day in %s", ErrNoData, r.Identifier())
	}
	last := days[len(days)-1].On()
	compo, err := l.Composition(last)
	if err != nil {
		return nil, err
	}
	nav := l.NAV()
	return &MonthlyReport{
		Month:       r,
		LastDay:     last,
		Composition: compo,
		Sectors:     compo.SectorWeights(),
		Performance: NewPerformance(r, nav, l.data.Benchmark, rf),
		Base100:     newBase100(r, nav, l.data.Benchmark),
		Skipped:     l.Skipped(),
	}, nil
}

// SummaryReport is the since inception reporting.
type SummaryReport struct {
	Range       date.Range
	Last        Snapshot
	Performance Performance
	Base100     Base100
}

// Summary returns the since inception report, using rf as the periodic
// risk-free rate of the Sharpe ratio. It returns ErrNoData on an empty ledger.
func (l *Ledger) Summary(rf float64) (*SummaryReport, error) {
	first, ok := l.First()
	if !ok {
		return nil, fmt.Errorf("%w: empty ledger", ErrNoData)
	}
	last, _ := l.Last()
	r := date.Range{From: first.On(), To: last.On()}
	nav := l.NAV()
	return &SummaryReport{
		Range:       r,
		Last:        last,
		Performance: NewPerformance(r, nav, l.data.Benchmark, rf),
		Base100:     newBase100(r, nav, l.data.Benchmark),
	}, nil
}

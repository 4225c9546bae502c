package fund

import (
	"github.com/etnz/fund/date"
	"github.com/etnz/fund/stats"
)

// MonthlyReturn is the performance of a calendar month, from the first to the
// last observation of the month.
type MonthlyReturn struct {
	Month     date.Range
	Portfolio stats.Value
	Benchmark stats.Value // undefined without benchmark data that month
}

// MonthlyReturns returns the return of every month covered by the ledger,
// in chronological order.
func (l *Ledger) MonthlyReturns() []MonthlyReturn {
	nav := l.NAV()
	months := l.Months()
	returns := make([]MonthlyReturn, 0, len(months))
	for i := len(months) - 1; i >= 0; i-- {
		m := months[i]
		returns = append(returns, MonthlyReturn{
			Month:     m,
			Portfolio: stats.Cumulative(nav.Between(m)),
			Benchmark: stats.Cumulative(l.data.Benchmark.Between(m)),
		})
	}
	return returns
}

// CalendarYear is a row pair of the performance calendar.
type CalendarYear struct {
	Year      int
	Portfolio [12]stats.Value // indexed by month - 1
	Benchmark [12]stats.Value
}

// CalendarGrid lays out monthly returns by year and month, oldest year first.
// Months without data are undefined.
func CalendarGrid(returns []MonthlyReturn) []CalendarYear {
	var grid []CalendarYear
	for _, r := range returns {
		y := r.Month.From.Year()
		if len(grid) == 0 || grid[len(grid)-1].Year != y {
			grid = append(grid, CalendarYear{Year: y})
		}
		row := &grid[len(grid)-1]
		m := int(r.Month.From.Month()) - 1
		row.Portfolio[m] = r.Portfolio
		row.Benchmark[m] = r.Benchmark
	}
	return grid
}

package fund

import (
	"github.com/etnz/fund/date"
	"github.com/etnz/fund/stats"
)

// Performance holds the KPIs of the portfolio against the benchmark over a period.
//
// Returns are computed on each series over its own window, then aligned on
// common dates for every statistic involving both series.
type Performance struct {
	Range    date.Range
	RiskFree float64 // periodic rate used by the Sharpe ratio
	Days     int     // number of aligned daily returns

	Portfolio           stats.Value // cumulative return
	Benchmark           stats.Value
	Volatility          stats.Value // annualized
	BenchmarkVolatility stats.Value

	Sharpe           stats.Value
	Sortino          stats.Value
	Beta             stats.Value
	Alpha            stats.Value
	R2               stats.Value
	Correlation      stats.Value
	Treynor          stats.Value
	TrackingError    stats.Value
	InformationRatio stats.Value
	MaxDrawdown      stats.Value
}

// NewPerformance computes the KPIs of nav against bench, both restricted to r.
func NewPerformance(r date.Range, nav, bench *date.History[float64], rf float64) Performance {
	nav, bench = nav.Between(r), bench.Between(r)
	ptf, idx, _ := stats.Align(stats.Returns(nav), stats.Returns(bench))

	p := Performance{
		Range:               r,
		RiskFree:            rf,
		Days:                len(ptf),
		Portfolio:           stats.Cumulative(nav),
		Benchmark:           stats.Cumulative(bench),
		Volatility:          stats.Volatility(ptf),
		BenchmarkVolatility: stats.Volatility(idx),
		Sharpe:              stats.Sharpe(ptf, rf),
		Sortino:             stats.Sortino(ptf),
		Correlation:         stats.Correlation(ptf, idx),
		TrackingError:       stats.TrackingError(ptf, idx),
		MaxDrawdown:         stats.MaxDrawdown(nav),
	}
	reg := stats.Regress(idx, ptf)
	p.Beta, p.Alpha, p.R2 = reg.Beta, reg.Alpha, reg.R2
	p.Treynor = stats.Treynor(ptf, p.Beta)
	p.InformationRatio = stats.InformationRatio(p.Portfolio, p.Benchmark, p.TrackingError)
	return p
}

// Base100 is the NAV and the benchmark rebased to 100 at the start of a period,
// on the dates common to both series.
type Base100 struct {
	NAV       *date.History[float64]
	Benchmark *date.History[float64]
}

func newBase100(r date.Range, nav, bench *date.History[float64]) Base100 {
	n := stats.Normalize(nav.Between(r), 100)
	b := stats.Normalize(bench.Between(r), 100)
	out := Base100{NAV: new(date.History[float64]), Benchmark: new(date.History[float64])}
	for on, v := range n.Values() {
		if w, ok := b.Get(on); ok {
			out.NAV.Append(on, v)
			out.Benchmark.Append(on, w)
		}
	}
	return out
}

package renderer

import (
	"fmt"

	"github.com/etnz/fund"
	md "github.com/nao1215/markdown"
)

// performanceTable renders the KPIs of a period side by side with the benchmark.
func performanceTable(p fund.Performance) md.TableSet {
	return md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight, md.AlignRight},
		Header:    []string{"Indicator", "Portfolio", "Benchmark"},
		Rows: [][]string{
			{"Performance", signed(p.Portfolio), signed(p.Benchmark)},
			{"Volatility", percent(p.Volatility), percent(p.BenchmarkVolatility)},
			{fmt.Sprintf("Sharpe (rf %g)", p.RiskFree), decimal2(p.Sharpe), ""},
			{"Sortino", decimal2(p.Sortino), ""},
			{"Max Drawdown", percent(p.MaxDrawdown), ""},
			{"Beta", decimal2(p.Beta), ""},
			{"Alpha", p.Alpha.Format("%.5f"), ""},
			{"R²", decimal2(p.R2), ""},
			{"Correlation", decimal2(p.Correlation), ""},
			{"Treynor", p.Treynor.Format("%.5f"), ""},
			{"Tracking Error", percent(p.TrackingError), ""},
			{"Information Ratio", decimal2(p.InformationRatio), ""},
		},
	}
}

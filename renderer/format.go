// Package renderer turns ledger reports into markdown documents and PNG charts.
package renderer

import (
	"fmt"

	"github.com/etnz/fund/stats"
)

// signed formats a ratio as a signed percentage, e.g. +1.25%.
func signed(v stats.Value) string {
	f, ok := v.Get()
	if !ok {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", 100*f)
}

// percent formats a ratio as a percentage, e.g. 12.50%.
func percent(v stats.Value) string { return v.Percent() }

// decimal2 formats a dimensionless KPI with two decimals.
func decimal2(v stats.Value) string { return v.Format("%.2f") }

// weight formats a value already expressed in percent.
func weight(v stats.Value) string { return v.Format("%.2f%%") }

// change formats a price change already expressed in percent.
func change(v stats.Value) string { return v.Format("%+.2f%%") }

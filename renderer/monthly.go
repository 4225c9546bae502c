package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fund"
	md "github.com/nao1215/markdown"
)

// MonthlyMarkdown renders the reporting of a calendar month.
func MonthlyMarkdown(r *fund.MonthlyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Monthly Report for %s", r.Month.From.Format("January 2006")))
	doc.PlainText(fmt.Sprintf("Last market day of the month: %s", r.LastDay))

	doc.H2("Positions at the End of the Month")
	if len(r.Composition.Holdings) == 0 {
		doc.PlainText("No open position.")
	} else {
		doc.Table(compositionTable(r.Composition, false))
	}

	if len(r.Sectors) > 0 {
		doc.H2("Sector Breakdown")
		doc.Table(sectorTable(r.Sectors))
	}

	doc.H2("Performance Indicators")
	doc.Table(performanceTable(r.Performance))

	return doc.String()
}

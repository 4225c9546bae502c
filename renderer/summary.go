package renderer

import (
	"bytes"
	"fmt"

	"github.com/etnz/fund"
	md "github.com/nao1215/markdown"
)

// SummaryMarkdown renders the since inception report.
func SummaryMarkdown(r *fund.SummaryReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Portfolio Summary since %s", r.Range.From))
	doc.PlainText(fmt.Sprintf("NAV on %s: %s", r.Last.On(), md.Bold(r.Last.NAV().String())))

	doc.H2("Performance Indicators")
	doc.Table(performanceTable(r.Performance))

	if r.Base100.NAV.Len() > 0 {
		_, nav, _ := r.Base100.NAV.Latest()
		_, bench, _ := r.Base100.Benchmark.Latest()
		doc.PlainText(fmt.Sprintf("Base 100: portfolio %.2f, benchmark %.2f.", nav, bench))
	}

	if len(r.Skipped) > 0 {
		doc.H2("Skipped Transactions")
		doc.PlainText("Not applied, their date is not a market day.")
		items := make([]string, 0, len(r.Skipped))
		for _, tx := range r.Skipped {
			items = append(items, fmt.Sprintf("%s: %s", tx.Date, Transaction(tx)))
		}
		doc.BulletList(items...)
	}
	return doc.String()
}

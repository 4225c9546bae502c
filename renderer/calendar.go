package renderer

import (
	"bytes"
	"fmt"
	"time"

	"github.com/etnz/fund"
	"github.com/etnz/fund/stats"
	md "github.com/nao1215/markdown"
)

// CalendarMarkdown renders the monthly performance grid, a portfolio row and
// a benchmark row per year.
func CalendarMarkdown(grid []fund.CalendarYear) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Monthly Performance")
	if len(grid) == 0 {
		doc.PlainText("No data.")
		return doc.String()
	}

	table := md.TableSet{
		Header:    []string{"Year"},
		Alignment: []md.TableAlignment{md.AlignLeft},
	}
	for m := time.January; m <= time.December; m++ {
		table.Header = append(table.Header, m.String()[:3])
		table.Alignment = append(table.Alignment, md.AlignRight)
	}
	for _, y := range grid {
		ptf := []string{fmt.Sprintf("%d - Ptf", y.Year)}
		bench := []string{fmt.Sprintf("%d - Bench", y.Year)}
		for m := range 12 {
			ptf = append(ptf, cell(y.Portfolio[m]))
			bench = append(bench, cell(y.Benchmark[m]))
		}
		table.Rows = append(table.Rows, ptf, bench)
	}
	doc.Table(table)
	return doc.String()
}

// cell renders an empty cell for months without data.
func cell(v stats.Value) string {
	if !v.Defined() {
		return ""
	}
	return v.Percent()
}

package renderer

import (
	"bytes"
	"strconv"

	"github.com/etnz/fund"
	md "github.com/nao1215/markdown"
)

// LedgerMarkdown renders snapshots as a table, one market day per row.
func LedgerMarkdown(snapshots []fund.Snapshot) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1("Ledger")
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Date", "Trades", "Fees", "Positions", "Cash", "NAV"},
		Rows:   [][]string{},
	}
	for _, s := range snapshots {
		trades := s.Buys() + s.Sells() + s.Shorts() + s.Covers()
		table.Rows = append(table.Rows, []string{
			s.On().String(),
			strconv.Itoa(trades),
			s.Fees().String(),
			s.PositionValue().String(),
			s.Cash().String(),
			s.NAV().String(),
		})
	}
	doc.Table(table)
	return doc.String()
}

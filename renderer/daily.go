package renderer

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/etnz/fund"
	md "github.com/nao1215/markdown"
)

// DailyMarkdown renders the state of the portfolio at the close of a market day.
func DailyMarkdown(r *fund.DailyReport) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)
	s := r.Snapshot

	doc.H1(fmt.Sprintf("Daily Report on %s", s.On()))

	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{md.Bold("NAV"), md.Bold(s.NAV().String())},
		Rows: [][]string{
			{"Daily Performance", signed(r.Daily)},
			{"Cumulative Performance", signed(r.Cumulative)},
			{"Positions Value", s.PositionValue().String()},
			{"Cash", s.Cash().String()},
			{"Fees", s.Fees().String()},
		},
	})

	doc.H2("Activity")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Operation", "Count"},
		Rows: [][]string{
			{"Buys", strconv.Itoa(s.Buys())},
			{"Sells", strconv.Itoa(s.Sells())},
			{"Shorts", strconv.Itoa(s.Shorts())},
			{"Covers", strconv.Itoa(s.Covers())},
		},
	})

	if len(r.Composition.Holdings) > 0 {
		doc.H2("Composition")
		doc.Table(compositionTable(r.Composition, true))
	}

	if len(r.Transactions) > 0 {
		doc.H2("Today's Transactions")
		var transactions []string
		for _, tx := range r.Transactions {
			transactions = append(transactions, Transaction(tx))
		}
		doc.OrderedList(transactions...)
	}

	return doc.String()
}

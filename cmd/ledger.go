package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fund"
	"github.com/etnz/fund/renderer"
	"github.com/google/subcommands"
)

type ledgerCmd struct {
	output string
	query  string
	table  bool
}

func (*ledgerCmd) Name() string     { return "ledger" }
func (*ledgerCmd) Synopsis() string { return "compute the daily ledger of the portfolio" }
func (*ledgerCmd) Usage() string {
	return `nav ledger [-o <file>] [-q <jsonpath>] [-table]

  Runs the engine over the market calendar and writes one snapshot per
  market day, as JSON lines, to stdout or to the -o file.

  -q evaluates a JSONPath expression on each snapshot and prints one line
  per day with the result, e.g.

  $ nav ledger -q '$.nav'
  $ nav ledger -q '$.positions.AAPL'
`
}

func (c *ledgerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "", "Write the snapshots to this file instead of stdout")
	f.StringVar(&c.query, "q", "", "JSONPath expression evaluated on each snapshot")
	f.BoolVar(&c.table, "table", false, "Display the ledger as a table")
}

func (c *ledgerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}

	switch {
	case c.table:
		printMarkdown(renderer.LedgerMarkdown(slices.Collect(s.ledger.Snapshots())))
	case c.query != "":
		if err := queryLedger(os.Stdout, s.ledger, c.query); err != nil {
			return fail(err)
		}
	case c.output != "":
		if err := fund.SaveLedger(c.output, s.ledger); err != nil {
			return fail(err)
		}
		fmt.Fprintf(os.Stderr, "Ledger of %d days written to %s\n", s.ledger.Len(), c.output)
	default:
		if err := fund.EncodeLedger(os.Stdout, s.ledger); err != nil {
			return fail(err)
		}
	}
	return subcommands.ExitSuccess
}

// queryLedger prints, for each snapshot, its date and the result of the JSONPath expression.
func queryLedger(w io.Writer, l *fund.Ledger, path string) error {
	for s := range l.Snapshots() {
		data, err := json.Marshal(s)
		if err != nil {
			return err
		}
		var obj interface{}
		if err := json.Unmarshal(data, &obj); err != nil {
			return err
		}
		val, err := jsonpath.Get(path, obj)
		if err != nil {
			return fmt.Errorf("invalid query %q on %s: %w", path, s.On(), err)
		}
		out, err := json.Marshal(val)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\n", s.On(), out)
	}
	return nil
}

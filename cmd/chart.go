package cmd

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fund"
	"github.com/etnz/fund/renderer"
	"github.com/google/subcommands"
)

type chartCmd struct {
	output  string
	month   string
	pie     bool
	sectors bool
}

func (*chartCmd) Name() string     { return "chart" }
func (*chartCmd) Synopsis() string { return "draw the NAV or the composition as a PNG chart" }
func (*chartCmd) Usage() string {
	return `nav chart [-o <file.png>] [-m <YYYY-MM>] [-pie | -sectors]

  Draws the NAV and the benchmark rebased to 100, since inception or over
  the -m month. With -pie, draws the weights of the holdings instead, and
  with -sectors the weights of the sectors, at the last market day.
`
}

func (c *chartCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.output, "o", "nav.png", "Output PNG file")
	f.StringVar(&c.month, "m", "", "Month of the chart (defaults to since inception)")
	f.BoolVar(&c.pie, "pie", false, "Draw the holding weights")
	f.BoolVar(&c.sectors, "sectors", false, "Draw the sector weights")
}

func (c *chartCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.pie && c.sectors {
		fmt.Fprintln(os.Stderr, "Error: -pie and -sectors are mutually exclusive")
		return subcommands.ExitUsageError
	}
	_, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}

	var buf bytes.Buffer
	if err := c.draw(&buf, s); err != nil {
		return fail(err)
	}
	if err := os.WriteFile(c.output, buf.Bytes(), 0644); err != nil {
		return fail(fmt.Errorf("failed to write %s: %w", c.output, err))
	}
	fmt.Fprintf(os.Stderr, "Chart written to %s\n", c.output)
	return subcommands.ExitSuccess
}

func (c *chartCmd) draw(buf *bytes.Buffer, s *session) error {
	if c.month == "" && !c.pie && !c.sectors {
		r, err := s.ledger.Summary(s.config.Reports.RiskFree)
		if err != nil {
			return err
		}
		return renderer.Base100Chart(buf, fmt.Sprintf("NAV vs Benchmark since %s", r.Range.From), r.Base100)
	}

	month, err := monthOrLast(s.ledger, c.month)
	if err != nil {
		return err
	}
	r, err := s.ledger.Monthly(month, s.config.Reports.MonthlyRiskFree)
	if err != nil {
		return err
	}
	switch {
	case c.pie:
		return renderer.WeightsChart(buf, fmt.Sprintf("Holdings on %s", r.LastDay), r.Composition)
	case c.sectors:
		return renderer.SectorsChart(buf, fmt.Sprintf("Sectors on %s", r.LastDay), r.Sectors)
	default:
		return renderer.Base100Chart(buf, monthTitle(r), r.Base100)
	}
}

func monthTitle(r *fund.MonthlyReport) string {
	return fmt.Sprintf("NAV vs Benchmark, %s", r.Month.From.Format("January 2006"))
}

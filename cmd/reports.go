package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"

	"github.com/etnz/fund"
	"github.com/etnz/fund/date"
	"github.com/etnz/fund/renderer"
	"github.com/google/subcommands"
)

// dailyCmd holds the flags for the 'daily' subcommand.
type dailyCmd struct {
	date string
}

func (*dailyCmd) Name() string     { return "daily" }
func (*dailyCmd) Synopsis() string { return "display the portfolio at the close of a market day" }
func (*dailyCmd) Usage() string {
	return `nav daily [-d <date>]

  Displays the NAV, the daily and cumulative performance, the composition and
  the transactions of a market day. Defaults to the last market day.
`
}

func (c *dailyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", "", "Market day of the report (defaults to the last market day)")
}

func (c *dailyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	on, err := dayOrLast(s.ledger, c.date)
	if err != nil {
		return fail(err)
	}
	r, err := s.ledger.Daily(on)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.DailyMarkdown(r))
	return subcommands.ExitSuccess
}

// monthlyCmd holds the flags for the 'monthly' subcommand.
type monthlyCmd struct {
	month string
	rf    string
}

func (*monthlyCmd) Name() string     { return "monthly" }
func (*monthlyCmd) Synopsis() string { return "display the monthly report" }
func (*monthlyCmd) Usage() string {
	return `nav monthly [-m <YYYY-MM>] [-rf <rate>]

  Displays the positions at the end of the month, the sector breakdown and
  the performance indicators of the month against the benchmark.
`
}

func (c *monthlyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.month, "m", "", "Month of the report (defaults to the last month of the ledger)")
	f.StringVar(&c.rf, "rf", "", "Periodic risk-free rate of the Sharpe ratio (defaults to the configuration)")
}

func (c *monthlyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	month, err := monthOrLast(s.ledger, c.month)
	if err != nil {
		return fail(err)
	}
	rf, err := rate(c.rf, s.config.Reports.MonthlyRiskFree)
	if err != nil {
		return fail(err)
	}
	r, err := s.ledger.Monthly(month, rf)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.MonthlyMarkdown(r))
	return subcommands.ExitSuccess
}

type calendarCmd struct{}

func (*calendarCmd) Name() string     { return "calendar" }
func (*calendarCmd) Synopsis() string { return "display the monthly performance calendar" }
func (*calendarCmd) Usage() string {
	return `nav calendar

  Displays the performance of each month, by year, for the portfolio and the benchmark.
`
}

func (c *calendarCmd) SetFlags(f *flag.FlagSet) {}

func (c *calendarCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.CalendarMarkdown(fund.CalendarGrid(s.ledger.MonthlyReturns())))
	return subcommands.ExitSuccess
}

type summaryCmd struct {
	rf string
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the performance since inception" }
func (*summaryCmd) Usage() string {
	return `nav summary [-rf <rate>]

  Displays the performance indicators since the first market day.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.rf, "rf", "", "Periodic risk-free rate of the Sharpe ratio (defaults to the configuration)")
}

func (c *summaryCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	_, s, err := openSession(ctx)
	if err != nil {
		return fail(err)
	}
	rf, err := rate(c.rf, s.config.Reports.RiskFree)
	if err != nil {
		return fail(err)
	}
	r, err := s.ledger.Summary(rf)
	if err != nil {
		return fail(err)
	}
	printMarkdown(renderer.SummaryMarkdown(r))
	return subcommands.ExitSuccess
}

// dayOrLast parses a date, or returns the last market day of the ledger when s is empty.
func dayOrLast(l *fund.Ledger, s string) (date.Date, error) {
	if s != "" {
		on, err := date.Parse(s)
		if err != nil {
			return date.Date{}, fmt.Errorf("%w: %v", fund.ErrInvalidInput, err)
		}
		return on, nil
	}
	last, ok := l.Last()
	if !ok {
		return date.Date{}, fmt.Errorf("%w: empty ledger", fund.ErrNoData)
	}
	return last.On(), nil
}

// monthOrLast parses a month, or returns the last month of the ledger when s is empty.
func monthOrLast(l *fund.Ledger, s string) (date.Date, error) {
	if s != "" {
		m, err := date.ParseMonth(s)
		if err != nil {
			return date.Date{}, fmt.Errorf("%w: %v", fund.ErrInvalidInput, err)
		}
		return m, nil
	}
	return dayOrLast(l, "")
}

// rate parses a rate flag, or returns def when s is empty.
func rate(s string, def float64) (float64, error) {
	if s == "" {
		return def, nil
	}
	rf, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: invalid rate %q", fund.ErrInvalidInput, s)
	}
	return rf, nil
}

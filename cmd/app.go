// Package cmd implements the nav CLI application.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/etnz/fund"
	"github.com/google/subcommands"
	"github.com/rs/zerolog"
)

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var (
	configFile = flag.String("config", "nav.toml", "Path to the configuration file (TOML, or YAML with a .yaml extension)")
	dataDir    = flag.String("data", "", "Directory of the input files. Overrides the configuration.")
	logLevel   = flag.String("log-level", "", "Log level (debug, info, warn, error). Overrides the configuration.")
)

// commands are all the nav subcommands, by group.
var commands = []struct {
	group string
	cmd   subcommands.Command
}{
	{"ledger", &ledgerCmd{}},
	{"reports", &dailyCmd{}},
	{"reports", &monthlyCmd{}},
	{"reports", &calendarCmd{}},
	{"reports", &summaryCmd{}},
	{"reports", &chartCmd{}},
	{"reports", &publishCmd{}},
	{"help", &topicCmd{}},
}

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	for _, e := range commands {
		c.Register(e.cmd, e.group)
	}
}

// loadConfig loads the configuration file and applies the global flags on top.
func loadConfig() (*fund.Config, error) {
	config, err := fund.LoadConfig(*configFile)
	if err != nil {
		return nil, err
	}
	if *dataDir != "" {
		config.DataDir = *dataDir
	}
	if *logLevel != "" {
		config.Logging.Level = *logLevel
	}
	return config, nil
}

// newLogger returns a console logger writing to stderr at the given level.
func newLogger(level string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", level, err)
	}
	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	return zerolog.New(output).Level(lvl).With().Timestamp().Logger(), nil
}

// session is what every report command needs: the configuration and the computed ledger.
type session struct {
	config *fund.Config
	ledger *fund.Ledger
}

// openSession loads the configuration, the dataset and runs the engine.
// The returned context carries the logger.
func openSession(ctx context.Context) (context.Context, *session, error) {
	config, err := loadConfig()
	if err != nil {
		return ctx, nil, err
	}
	logger, err := newLogger(config.Logging.Level)
	if err != nil {
		return ctx, nil, err
	}
	ctx = logger.WithContext(ctx)

	ds, err := fund.LoadDataset(ctx, config.DataDir, config.Currency)
	if err != nil {
		return ctx, nil, fmt.Errorf("could not load dataset: %w", err)
	}
	l, err := fund.Run(ctx, ds, config.Params())
	if err != nil {
		return ctx, nil, fmt.Errorf("could not compute the ledger: %w", err)
	}
	return ctx, &session{config: config, ledger: l}, nil
}

// fail prints err and returns the matching exit status.
func fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, fund.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

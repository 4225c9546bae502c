package fund

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

// Base names of the dataset files in a data directory. Each one is looked up
// with the .jsonl extension first, then .csv.
const (
	TransactionsFile = "transactions"
	PricesFile       = "prices"
	BenchmarkFile    = "benchmark"
	CalendarFile     = "calendar"
)

// LoadDataset reads the four datasets from dir.
//
// The transactions and the calendar are required. Prices and benchmark are
// optional: without them positions are unpriced and benchmark analytics are
// undefined.
func LoadDataset(ctx context.Context, dir, currency string) (*Dataset, error) {
	log := zerolog.Ctx(ctx)
	ds := NewDataset(currency)

	err := openDataset(dir, TransactionsFile, true,
		func(name string, r io.Reader) (err error) {
			ds.Transactions, err = DecodeTransactions(name, r, ds.Currency)
			return err
		},
		func(name string, r io.Reader) (err error) {
			ds.Transactions, err = DecodeTransactionsCSV(name, r, ds.Currency)
			return err
		})
	if err != nil {
		return nil, err
	}

	err = openDataset(dir, CalendarFile, true,
		func(name string, r io.Reader) (err error) {
			ds.Calendar, err = DecodeCalendar(name, r)
			return err
		},
		func(name string, r io.Reader) (err error) {
			ds.Calendar, err = DecodeCalendarCSV(name, r)
			return err
		})
	if err != nil {
		return nil, err
	}

	err = openDataset(dir, PricesFile, false,
		func(name string, r io.Reader) error { return DecodePrices(name, r, ds.Prices) },
		func(name string, r io.Reader) error { return DecodePricesCSV(name, r, ds.Prices) })
	if err != nil {
		return nil, err
	}

	err = openDataset(dir, BenchmarkFile, false,
		func(name string, r io.Reader) error { return DecodeBenchmark(name, r, ds.Benchmark) },
		func(name string, r io.Reader) error { return DecodeBenchmarkCSV(name, r, ds.Benchmark) })
	if err != nil {
		return nil, err
	}

	if err := ds.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dataset in %q: %w", dir, err)
	}
	log.Debug().
		Str("dir", dir).
		Int("transactions", len(ds.Transactions)).
		Int("quotes", ds.Prices.Len()).
		Strs("priced", ds.Prices.Tickers()).
		Int("benchmark", ds.Benchmark.Len()).
		Int("days", ds.Calendar.Len()).
		Msg("dataset loaded")
	return ds, nil
}

// openDataset decodes dir/base.jsonl with jsonl, or else dir/base.csv with csv.
func openDataset(dir, base string, required bool, jsonl, csv func(string, io.Reader) error) error {
	for _, c := range []struct {
		ext    string
		decode func(string, io.Reader) error
	}{{".jsonl", jsonl}, {".csv", csv}} {
		name := filepath.Join(dir, base+c.ext)
		f, err := os.Open(name)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return fmt.Errorf("could not open %q: %w", name, err)
		}
		defer f.Close()
		if err := c.decode(name, f); err != nil {
			return fmt.Errorf("could not decode %q: %w", name, err)
		}
		return nil
	}
	if required {
		return fmt.Errorf("could not find %s.jsonl or %s.csv in %q: %w", base, base, dir, fs.ErrNotExist)
	}
	return nil
}

// SaveLedger writes the ledger snapshots as JSONL to path.
func SaveLedger(path string, l *Ledger) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("could not create directory for %q: %w", path, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error opening %q for writing: %w", path, err)
	}
	defer f.Close()
	if err := EncodeLedger(f, l); err != nil {
		return err
	}
	return f.Close()
}

package fund

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/etnz/fund/date"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// TradingDaysPerYear is the number of market days assumed in a year, both to
// accrue cash interest and to annualize volatilities. It is a modeling
// constant, not derived from the calendar.
const TradingDaysPerYear = 252

// Params are the engine parameters of a run.
type Params struct {
	InitialCapital Money
	CashYield      float64 // annualized rate, e.g. 0.03
}

// Ledger is the ordered sequence of daily snapshots produced by a run, together
// with the read-only dataset it was computed from.
type Ledger struct {
	id        ulid.ULID
	data      *Dataset
	params    Params
	snapshots []Snapshot
	index     map[date.Date]int
	skipped   []Transaction
}

// Run walks the market calendar and returns one snapshot per market day.
//
// For each day, in order: cash accrues interest, the day's transactions are
// applied in input order, positions are valued at the day's prices, and a
// snapshot is taken. A day is either fully applied and snapshotted or not
// started: the context is only checked between days.
//
// Transactions dated outside the calendar are never applied. Each is logged
// as a warning and kept in Skipped.
//
// Run fails with ErrUnknownKind if a transaction has an unknown kind, and
// with ErrInvalidInput if the initial capital is negative.
func Run(ctx context.Context, ds *Dataset, p Params) (*Ledger, error) {
	if p.InitialCapital.IsNegative() {
		return nil, fmt.Errorf("%w: negative initial capital %v", ErrInvalidInput, p.InitialCapital)
	}
	if p.InitialCapital.Currency() == "" {
		p.InitialCapital = M(p.InitialCapital.Decimal(), ds.Currency)
	}

	l := &Ledger{
		id:        ulid.Make(),
		data:      ds,
		params:    p,
		snapshots: make([]Snapshot, 0, ds.Calendar.Len()),
		index:     make(map[date.Date]int, ds.Calendar.Len()),
	}
	log := zerolog.Ctx(ctx).With().Str("run", l.id.String()).Logger()

	accrual := decimal.NewFromFloat(p.CashYield).Div(decimal.NewFromInt(TradingDaysPerYear)).Add(decimal.NewFromInt(1))
	b := newBook(p.InitialCapital, ds.Tickers())
	trades := ds.byDate()
	for _, tx := range ds.Transactions {
		if !ds.Calendar.Contains(tx.Date) {
			l.skipped = append(l.skipped, tx)
			log.Warn().Str("date", tx.Date.String()).Str("ticker", tx.Ticker).Stringer("kind", tx.Kind).Msg("transaction is not on a market day, skipped")
		}
	}

	for on := range ds.Calendar.Days() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("run interrupted before %s: %w", on, err)
		}
		txs := trades[on]
		// Check the whole day first so that a failing day leaves no partial mutation.
		for _, tx := range txs {
			if !tx.Kind.Valid() {
				return nil, fmt.Errorf("%w: %v on %s for %q", ErrUnknownKind, tx.Kind, tx.Date, tx.Ticker)
			}
		}

		s := newSnapshot(on, p.InitialCapital.Currency())
		b.accrue(accrual)
		for _, tx := range txs {
			if err := b.apply(tx, &s); err != nil {
				return nil, err
			}
		}
		if !ds.Prices.Has(on) {
			log.Debug().Str("date", on.String()).Msg("no quote on market day")
		}
		s.value = b.value(ds.Prices, on)
		s.cash = b.cash
		s.positions = b.positionsCopy()

		l.index[on] = len(l.snapshots)
		l.snapshots = append(l.snapshots, s)
		if len(txs) > 0 {
			log.Debug().Str("date", on.String()).Int("transactions", len(txs)).Str("nav", s.NAV().String()).Msg("applied")
		}
	}

	if last, ok := l.Last(); ok {
		log.Info().Int("days", len(l.snapshots)).Int("transactions", len(ds.Transactions)).Int("skipped", len(l.skipped)).Str("nav", last.NAV().String()).Msg("ledger computed")
	}
	return l, nil
}

// ID returns the unique identifier of the run that produced the ledger.
func (l *Ledger) ID() string { return l.id.String() }

// Dataset returns the inputs the ledger was computed from.
func (l *Ledger) Dataset() *Dataset { return l.data }

// Params returns the engine parameters of the run.
func (l *Ledger) Params() Params { return l.params }

// Skipped returns the transactions that were not applied because their date
// is not a market day, in input order.
func (l *Ledger) Skipped() []Transaction { return slices.Clone(l.skipped) }

// Len returns the number of snapshots.
func (l *Ledger) Len() int { return len(l.snapshots) }

// Snapshots returns an iterator over all snapshots in chronological order.
func (l *Ledger) Snapshots() iter.Seq[Snapshot] { return slices.Values(l.snapshots) }

// On returns the snapshot of a given market day, or ErrNoData.
func (l *Ledger) On(on date.Date) (Snapshot, error) {
	i, ok := l.index[on]
	if !ok {
		return Snapshot{}, fmt.Errorf("%w: no snapshot on %s", ErrNoData, on)
	}
	return l.snapshots[i], nil
}

// First returns the first snapshot.
func (l *Ledger) First() (Snapshot, bool) {
	if len(l.snapshots) == 0 {
		return Snapshot{}, false
	}
	return l.snapshots[0], true
}

// Last returns the last snapshot.
func (l *Ledger) Last() (Snapshot, bool) {
	if len(l.snapshots) == 0 {
		return Snapshot{}, false
	}
	return l.snapshots[len(l.snapshots)-1], true
}

// Between returns the snapshots within r, in chronological order.
// A reversed range is empty.
func (l *Ledger) Between(r date.Range) []Snapshot {
	if r.From.After(r.To) {
		return nil
	}
	from, _ := slices.BinarySearchFunc(l.snapshots, r.From, func(s Snapshot, d date.Date) int { return s.on.Compare(d) })
	to, found := slices.BinarySearchFunc(l.snapshots, r.To, func(s Snapshot, d date.Date) int { return s.on.Compare(d) })
	if found {
		to++
	}
	return slices.Clone(l.snapshots[from:to])
}

// NAV returns the NAV series.
func (l *Ledger) NAV() *date.History[float64] {
	h := new(date.History[float64])
	for _, s := range l.snapshots {
		h.Append(s.on, s.NAV().AsFloat())
	}
	return h
}

// Months returns the calendar months covered by the ledger, most recent first.
func (l *Ledger) Months() []date.Range {
	var months []date.Range
	for _, s := range slices.Backward(l.snapshots) {
		m := date.NewRange(s.on, date.Monthly)
		if len(months) == 0 || months[len(months)-1] != m {
			months = append(months, m)
		}
	}
	return months
}

package fund

import (
	"iter"
	"maps"
	"slices"

	"github.com/etnz/fund/date"
)

// Snapshot is the immutable ledger row of one market day.
type Snapshot struct {
	on        date.Date
	counts    [Cover + 1]int // indexed by Kind
	fees      Money
	invested  Money // buys and covers, fees included
	recovered Money // sells and shorts, fees excluded
	value     Money // market value of the positions
	cash      Money
	positions map[string]Quantity
}

func newSnapshot(on date.Date, cur string) Snapshot {
	zero := M(0, cur)
	return Snapshot{on: on, fees: zero, invested: zero, recovered: zero, value: zero, cash: zero}
}

// On returns the date of the snapshot.
func (s Snapshot) On() date.Date { return s.on }

// Count returns the number of transactions of a given kind that day.
func (s Snapshot) Count(k Kind) int {
	if !k.Valid() {
		return 0
	}
	return s.counts[k]
}

// Buys, Sells, Shorts and Covers return the day's per-kind transaction counts.
func (s Snapshot) Buys() int   { return s.counts[Buy] }
func (s Snapshot) Sells() int  { return s.counts[Sell] }
func (s Snapshot) Shorts() int { return s.counts[ShortSell] }
func (s Snapshot) Covers() int { return s.counts[Cover] }

// Fees returns the total fees paid that day.
func (s Snapshot) Fees() Money { return s.fees }

// Invested returns the cash spent on buys and covers that day, fees included.
func (s Snapshot) Invested() Money { return s.invested }

// Recovered returns the gross proceeds of sells and short sells that day.
func (s Snapshot) Recovered() Money { return s.recovered }

// PositionValue returns the market value of all positions at the day's prices.
func (s Snapshot) PositionValue() Money { return s.value }

// Cash returns the closing cash balance.
func (s Snapshot) Cash() Money { return s.cash }

// NAV returns the net asset value, position value plus cash.
func (s Snapshot) NAV() Money { return s.value.Add(s.cash) }

// Position returns the signed quantity held in ticker.
func (s Snapshot) Position(ticker string) Quantity { return s.positions[ticker] }

// Positions returns a copy of the position book at the end of the day.
func (s Snapshot) Positions() map[string]Quantity { return maps.Clone(s.positions) }

// Holdings returns an iterator over the non-zero positions, sorted by ticker.
func (s Snapshot) Holdings() iter.Seq2[string, Quantity] {
	return func(yield func(string, Quantity) bool) {
		for _, ticker := range slices.Sorted(maps.Keys(s.positions)) {
			qty := s.positions[ticker]
			if qty.IsZero() {
				continue
			}
			if !yield(ticker, qty) {
				return
			}
		}
	}
}

func (s Snapshot) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("date", s.on)
	w.Append("buys", s.Buys())
	w.Append("sells", s.Sells())
	w.Append("shorts", s.Shorts())
	w.Append("covers", s.Covers())
	w.Append("fees", s.fees)
	w.Append("invested", s.invested)
	w.Append("recovered", s.recovered)
	w.Append("positionValue", s.value)
	w.Append("cash", s.cash)
	w.Append("nav", s.NAV())
	w.Append("positions", s.positions)
	return w.MarshalJSON()
}

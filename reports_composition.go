package fund

import (
	"cmp"
	"slices"

	"github.com/etnz/fund/date"
	"github.com/etnz/fund/stats"
)

// Holding is a line of the portfolio composition.
type Holding struct {
	Ticker   string
	Sector   string
	Quantity Quantity
	Priced   bool        // whether Price and Value are known that day
	Price    Money       // unit price of the day
	Value    Money       // Quantity × Price
	Change   stats.Value // price change vs the previous market day, in percent
	Weight   stats.Value // share of the total position value, in percent
}

// Composition is the breakdown of the positions on a market day.
type Composition struct {
	On       date.Date
	Previous date.Date // previous market day, zero if none
	Total    Money     // total value of the priced positions
	Holdings []Holding // non-zero positions, sorted by ticker
}

// SectorWeight is the total weight of a sector in a Composition.
type SectorWeight struct {
	Sector string
	Weight stats.Value
}

// Composition returns the positions held at the end of a market day.
func (l *Ledger) Composition(on date.Date) (*Composition, error) {
	s, err := l.On(on)
	if err != nil {
		return nil, err
	}
	ds := l.data
	sectors := ds.Sectors()
	c := &Composition{On: on, Total: M(0, ds.Currency)}
	prev, hasPrev := ds.Calendar.Previous(on)
	if hasPrev {
		c.Previous = prev
	}

	for ticker, qty := range s.Holdings() {
		h := Holding{Ticker: ticker, Sector: sectors[ticker], Quantity: qty, Change: stats.Undefined, Weight: stats.Undefined}
		if price, ok := ds.Prices.Price(on, ticker); ok {
			h.Priced, h.Price, h.Value = true, price, price.Mul(qty)
			c.Total = c.Total.Add(h.Value)
			if before, ok := ds.Prices.Price(prev, ticker); hasPrev && ok && !before.IsZero() {
				h.Change = stats.Of(100 * (price.AsFloat()/before.AsFloat() - 1))
			}
		}
		c.Holdings = append(c.Holdings, h)
	}

	if !c.Total.IsZero() {
		for i, h := range c.Holdings {
			if h.Priced {
				c.Holdings[i].Weight = stats.Of(100 * h.Value.AsFloat() / c.Total.AsFloat())
			}
		}
	}
	return c, nil
}

// SectorWeights sums the holding weights per sector, sorted by sector name.
// Holdings without weight are ignored.
func (c *Composition) SectorWeights() []SectorWeight {
	sums := make(map[string]float64)
	for _, h := range c.Holdings {
		if w, ok := h.Weight.Get(); ok {
			sums[h.Sector] += w
		}
	}
	weights := make([]SectorWeight, 0, len(sums))
	for sector, w := range sums {
		weights = append(weights, SectorWeight{Sector: sector, Weight: stats.Of(w)})
	}
	slices.SortFunc(weights, func(a, b SectorWeight) int { return cmp.Compare(a.Sector, b.Sector) })
	return weights
}

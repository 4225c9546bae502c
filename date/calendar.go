package date

import (
	"iter"
	"slices"
)

// Calendar is the ordered, de-duplicated list of market days.
//
// It is supplied externally and is not derived from price or transaction dates:
// it may contain days without trades, prices, or benchmark observations.
type Calendar struct {
	days []Date
}

// NewCalendar sorts and de-duplicates days into a Calendar.
func NewCalendar(days ...Date) *Calendar {
	c := &Calendar{days: slices.Clone(days)}
	if !IsSorted(c.days) {
		slices.SortFunc(c.days, Date.Compare)
		c.days = slices.Compact(c.days)
	}
	return c
}

// Len returns the number of market days.
func (c *Calendar) Len() int { return len(c.days) }

// Days returns an iterator over market days in increasing order.
func (c *Calendar) Days() iter.Seq[Date] { return slices.Values(c.days) }

// Contains reports whether on is a market day.
func (c *Calendar) Contains(on Date) bool {
	_, found := slices.BinarySearchFunc(c.days, on, Date.Compare)
	return found
}

// Previous returns the last market day strictly before on.
func (c *Calendar) Previous(on Date) (Date, bool) {
	i, _ := slices.BinarySearchFunc(c.days, on, Date.Compare)
	if i == 0 {
		return Date{}, false
	}
	return c.days[i-1], true
}

// First returns the first market day.
func (c *Calendar) First() (Date, bool) {
	if len(c.days) == 0 {
		return Date{}, false
	}
	return c.days[0], true
}

// Last returns the last market day.
func (c *Calendar) Last() (Date, bool) {
	if len(c.days) == 0 {
		return Date{}, false
	}
	return c.days[len(c.days)-1], true
}

// IsSorted reports whether days are strictly increasing.
func IsSorted(days []Date) bool {
	for i := 1; i < len(days); i++ {
		if !days[i-1].Before(days[i]) {
			return false
		}
	}
	return true
}

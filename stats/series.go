package stats

import (
	"github.com/etnz/fund/date"
)

// Returns computes the simple return series r_t = V_t/V_{t-1} - 1.
// The first point, and any point following a zero value, has no return.
func Returns(values *date.History[float64]) *date.History[float64] {
	r := new(date.History[float64])
	var prev float64
	first := true
	for on, v := range values.Values() {
		if !first && prev != 0 {
			r.Append(on, v/prev-1)
		}
		prev, first = v, false
	}
	return r
}

// Align inner-joins two series on date, dropping dates missing on either side.
func Align(a, b *date.History[float64]) (x, y []float64, days []date.Date) {
	for on, va := range a.Values() {
		vb, ok := b.Get(on)
		if !ok {
			continue
		}
		x = append(x, va)
		y = append(y, vb)
		days = append(days, on)
	}
	return x, y, days
}

// Cumulative returns V_last/V_first - 1 over the series.
func Cumulative(values *date.History[float64]) Value {
	_, first, ok := values.First()
	if !ok {
		return Undefined
	}
	_, last, _ := values.Latest()
	if first == 0 {
		return Undefined
	}
	return Of(last/first - 1)
}

// Normalize rebases the series to base at its first point, e.g. base 100.
func Normalize(values *date.History[float64], base float64) *date.History[float64] {
	n := new(date.History[float64])
	_, first, ok := values.First()
	if !ok || first == 0 {
		return n
	}
	for on, v := range values.Values() {
		n.Append(on, v/first*base)
	}
	return n
}

// MaxDrawdown returns min_t(V_t / max_{s<=t} V_s - 1), the worst running
// peak-to-trough loss. It is always <= 0, and 0 when the series never decreases.
func MaxDrawdown(values *date.History[float64]) Value {
	if values.Len() == 0 {
		return Undefined
	}
	var peak, worst float64
	first := true
	for _, v := range values.Values() {
		if first || v > peak {
			peak, first = v, false
		}
		if peak == 0 {
			continue
		}
		if dd := v/peak - 1; dd < worst {
			worst = dd
		}
	}
	return Of(worst)
}

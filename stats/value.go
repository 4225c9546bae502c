// Package stats implements the performance reductions computed over a NAV
// series and a benchmark series: returns, volatility, risk-adjusted ratios,
// regression against the benchmark and drawdown.
//
// Results that are undefined for the input (zero denominators, too few points)
// are reported as Undefined, never as zero and never as an error, so that
// reports can render gaps instead of false zeros.
package stats

import (
	"encoding/json"
	"fmt"
	"math"
)

// Value is a float64 that may be undefined.
type Value struct {
	v       float64
	defined bool
}

// Undefined is the undefined Value.
var Undefined = Value{}

// Of returns a defined Value, unless f is NaN or infinite.
func Of(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Undefined
	}
	return Value{v: f, defined: true}
}

// Get returns the value and whether it is defined.
func (x Value) Get() (float64, bool) { return x.v, x.defined }

// Defined reports whether x holds a value.
func (x Value) Defined() bool { return x.defined }

// Or returns the value if defined, or def otherwise.
func (x Value) Or(def float64) float64 {
	if !x.defined {
		return def
	}
	return x.v
}

// Format formats the value with a fmt verb, or returns "N/A" when undefined.
func (x Value) Format(verb string) string {
	if !x.defined {
		return "N/A"
	}
	return fmt.Sprintf(verb, x.v)
}

// Percent formats a ratio as a percentage with two decimals.
func (x Value) Percent() string {
	if !x.defined {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", 100*x.v)
}

func (x Value) String() string { return x.Format("%.4f") }

// MarshalJSON encodes an undefined value as null.
func (x Value) MarshalJSON() ([]byte, error) {
	if !x.defined {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

func (x *Value) UnmarshalJSON(b []byte) error {
	var f *float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	if f == nil {
		*x = Undefined
		return nil
	}
	*x = Of(*f)
	return nil
}

// div returns a/b, undefined when b is zero or either side is undefined.
func div(a, b Value) Value {
	if !a.defined || !b.defined || b.v == 0 {
		return Undefined
	}
	return Of(a.v / b.v)
}

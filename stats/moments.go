package stats

import "math"

// Mean returns the arithmetic mean of xs.
func Mean(xs []float64) Value {
	if len(xs) == 0 {
		return Undefined
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return Of(sum / float64(len(xs)))
}

// Stdev returns the sample standard deviation of xs (n-1 denominator).
func Stdev(xs []float64) Value {
	v := variance(xs)
	if !v.defined {
		return Undefined
	}
	return Of(math.Sqrt(v.v))
}

func variance(xs []float64) Value {
	if len(xs) < 2 {
		return Undefined
	}
	m, _ := Mean(xs).Get()
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return Of(ss / float64(len(xs)-1))
}

// covariance returns the sample covariance of two series of the same length.
func covariance(xs, ys []float64) Value {
	if len(xs) < 2 || len(xs) != len(ys) {
		return Undefined
	}
	mx, _ := Mean(xs).Get()
	my, _ := Mean(ys).Get()
	var s float64
	for i := range xs {
		s += (xs[i] - mx) * (ys[i] - my)
	}
	return Of(s / float64(len(xs)-1))
}

// Correlation returns the Pearson correlation of two series.
func Correlation(xs, ys []float64) Value {
	sx, sy := Stdev(xs), Stdev(ys)
	cov := covariance(xs, ys)
	if !sx.defined || !sy.defined {
		return Undefined
	}
	return div(cov, Of(sx.v*sy.v))
}

// Diff returns the element-wise difference a - b.
func Diff(a, b []float64) []float64 {
	n := min(len(a), len(b))
	d := make([]float64, n)
	for i := range n {
		d[i] = a[i] - b[i]
	}
	return d
}

// Negatives returns the strictly negative values of xs.
func Negatives(xs []float64) []float64 {
	var neg []float64
	for _, x := range xs {
		if x < 0 {
			neg = append(neg, x)
		}
	}
	return neg
}

package stats

import "math"

// PeriodsPerYear is the number of daily returns in a year used to annualize.
const PeriodsPerYear = 252

var annualizer = math.Sqrt(PeriodsPerYear)

// Volatility returns the annualized volatility stdev(r)·√252.
func Volatility(r []float64) Value {
	sd := Stdev(r)
	if !sd.defined {
		return Undefined
	}
	return Of(sd.v * annualizer)
}

// Sharpe returns (mean(r) - rf) / stdev(r), where rf is a periodic risk-free rate.
func Sharpe(r []float64, rf float64) Value {
	m := Mean(r)
	if !m.defined {
		return Undefined
	}
	return div(Of(m.v-rf), Stdev(r))
}

// Sortino returns mean(r) / (stdev(r<0)·√252). It is undefined without
// enough negative-return days to measure a downside deviation.
func Sortino(r []float64) Value {
	downside := Volatility(Negatives(r))
	return div(Mean(r), downside)
}

// Regression is an ordinary least squares fit y = Alpha + Beta·x.
type Regression struct {
	Alpha, Beta, R2 Value
}

// Regress fits y on x with an intercept.
func Regress(x, y []float64) Regression {
	beta := div(covariance(x, y), variance(x))
	if !beta.defined {
		return Regression{Alpha: Undefined, Beta: Undefined, R2: Undefined}
	}
	mx, _ := Mean(x).Get()
	my, _ := Mean(y).Get()
	alpha := my - beta.v*mx

	var ssRes, ssTot float64
	for i := range y {
		e := y[i] - (alpha + beta.v*x[i])
		ssRes += e * e
		ssTot += (y[i] - my) * (y[i] - my)
	}
	r2 := Undefined
	if ssTot != 0 {
		r2 = Of(1 - ssRes/ssTot)
	}
	return Regression{Alpha: Of(alpha), Beta: beta, R2: r2}
}

// Treynor returns mean(r) / beta, undefined when beta is zero or undefined.
func Treynor(r []float64, beta Value) Value { return div(Mean(r), beta) }

// TrackingError returns the annualized volatility of the return difference.
func TrackingError(ptf, bench []float64) Value { return Volatility(Diff(ptf, bench)) }

// InformationRatio returns (cumPtf - cumBench) / trackingError.
func InformationRatio(cumPtf, cumBench, trackingError Value) Value {
	if !cumPtf.defined || !cumBench.defined {
		return Undefined
	}
	return div(Of(cumPtf.v-cumBench.v), trackingError)
}

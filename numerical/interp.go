// Package numerical is the adapter around curve bootstrap and interpolation
// math: every other package only reaches it through Curve, Helper, and the
// Serialize/Reconstruct pair. Generalized from a fixed set of OIS/IBOR
// conventions to an arbitrary pillar set and a selectable interpolator.
package numerical

import (
	"math"
	"time"

	"gonum.org/v1/gonum/interp"

	"github.com/meenmo/curvecore/utils"
)

// Interpolator names a discount-factor interpolation scheme, grounded on
// original_source's enums.Interpolator_* and curve_serializer.h's
// reconstruction switch.
type Interpolator string

const (
	LogLinear    Interpolator = "LOG_LINEAR"
	Linear       Interpolator = "LINEAR"
	BackwardFlat Interpolator = "BACKWARD_FLAT"
	ForwardFlat  Interpolator = "FORWARD_FLAT"
	LogCubic     Interpolator = "LOG_CUBIC"
)

// interpolateDF evaluates the discount factor at t given sorted pillar
// dates/dfs under the named scheme. dayCounter/refDate define the curve
// time axis (matching curve.go's YearFraction-against-settlement pattern).
func interpolateDF(refDate time.Time, dates []time.Time, dfs []float64, dayCounter string, interpKind Interpolator, t time.Time) float64 {
	n := len(dates)
	if n == 0 {
		return 1.0
	}
	if n == 1 {
		return dfs[0]
	}

	if idx, ok := exactIndex(dates, t); ok {
		return dfs[idx]
	}

	i1, i2 := bracket(dates, t)

	switch interpKind {
	case Linear:
		frac := fraction(refDate, dates[i1], dates[i2], t, dayCounter)
		return dfs[i1] + (dfs[i2]-dfs[i1])*frac

	case BackwardFlat:
		// Step function: holds the right-hand pillar's value across the
		// interval (right-continuous from the left).
		if t.Before(dates[i2]) {
			return dfs[i2]
		}
		return dfs[i1]

	case ForwardFlat:
		// Step function: holds the left-hand pillar's value across the
		// interval.
		if !t.Before(dates[i1]) && t.Before(dates[i2]) {
			return dfs[i1]
		}
		return dfs[i2]

	case LogCubic:
		return logCubicDF(refDate, dates, dfs, dayCounter, t)

	case LogLinear:
		fallthrough
	default:
		return logLinearDF(refDate, dates[i1], dfs[i1], dates[i2], dfs[i2], dayCounter, t)
	}
}

func logLinearDF(refDate time.Time, d1 time.Time, df1 float64, d2 time.Time, df2 float64, dayCounter string, t time.Time) float64 {
	t1 := utils.YearFraction(refDate, d1, dayCounter)
	t2 := utils.YearFraction(refDate, d2, dayCounter)
	tt := utils.YearFraction(refDate, t, dayCounter)
	if t2 == t1 {
		return df1
	}
	fwd := math.Log(df1/df2) / (t2 - t1)
	return df1 * math.Exp(-fwd*(tt-t1))
}

// logCubicDF fits a monotonic cubic spline (Fritsch-Butland) through
// log(DF) against curve time, so LogCubic reconstruction reproduces the
// same curve a fresh bootstrap would have produced.
func logCubicDF(refDate time.Time, dates []time.Time, dfs []float64, dayCounter string, t time.Time) float64 {
	xs := make([]float64, len(dates))
	ys := make([]float64, len(dates))
	for i, d := range dates {
		xs[i] = utils.YearFraction(refDate, d, dayCounter)
		ys[i] = math.Log(dfs[i])
	}
	var fb interp.FritschButland
	if err := fb.Fit(xs, ys); err != nil {
		// Degenerate pillar set (e.g. duplicate times); fall back to
		// log-linear rather than propagating a fit error into DF().
		i1, i2 := bracket(dates, t)
		return logLinearDF(refDate, dates[i1], dfs[i1], dates[i2], dfs[i2], dayCounter, t)
	}
	tt := utils.YearFraction(refDate, t, dayCounter)
	tt = clamp(tt, xs[0], xs[len(xs)-1])
	return math.Exp(fb.Predict(tt))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func fraction(refDate, d1, d2, t time.Time, dayCounter string) float64 {
	t1 := utils.YearFraction(refDate, d1, dayCounter)
	t2 := utils.YearFraction(refDate, d2, dayCounter)
	tt := utils.YearFraction(refDate, t, dayCounter)
	if t2 == t1 {
		return 0
	}
	return (tt - t1) / (t2 - t1)
}

func exactIndex(dates []time.Time, t time.Time) (int, bool) {
	lo, hi := 0, len(dates)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		if dates[mid].Equal(t) {
			return mid, true
		}
		if dates[mid].Before(t) {
			lo = mid + 1
		} else {
			hi = mid - 1
		}
	}
	return 0, false
}

// bracket returns the pillar index pair (i1, i2) surrounding t, clamping to
// the nearest boundary pair when t lies outside the pillar range
// (extrapolation is always enabled, matching curve->enableExtrapolation()
// in curve_serializer.h::reconstruct).
func bracket(dates []time.Time, t time.Time) (int, int) {
	n := len(dates)
	if t.Before(dates[0]) {
		return 0, 1
	}
	if !t.Before(dates[n-1]) {
		return n - 2, n - 1
	}
	lo, hi := 0, n-1
	for lo < hi-1 {
		mid := (lo + hi) / 2
		if dates[mid].Before(t) || dates[mid].Equal(t) {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo, hi
}

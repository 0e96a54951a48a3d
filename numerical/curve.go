package numerical

import (
	"math"
	"time"

	"github.com/meenmo/curvecore/utils"
)

// Curve is a pillar discount-factor curve: a bootstrapped or reconstructed
// term structure expressed purely as (date, discount factor) pairs plus an
// interpolation scheme, satisfying registry.DiscountCurve structurally.
// Grounded on swap/curve.Curve, generalized away from a fixed par-quotes
// tenor map to an arbitrary pillar set built by Bootstrap or Reconstruct.
type Curve struct {
	refDate    time.Time
	dates      []time.Time
	dfs        []float64
	interp     Interpolator
	dayCounter string
}

// NewCurve builds a Curve from already-known pillar dates/discount factors,
// sorted ascending by date. dates[0] is expected to equal refDate with
// dfs[0] == 1.0, matching the bootstrap convention in swap/curve.Curve.
func NewCurve(refDate time.Time, dates []time.Time, dfs []float64, interpKind Interpolator, dayCounter string) *Curve {
	return &Curve{
		refDate:    refDate,
		dates:      append([]time.Time(nil), dates...),
		dfs:        append([]float64(nil), dfs...),
		interp:     interpKind,
		dayCounter: dayCounter,
	}
}

// ReferenceDate returns the curve's as-of date.
func (c *Curve) ReferenceDate() time.Time { return c.refDate }

// DayCounter returns the curve's time-axis day count convention.
func (c *Curve) DayCounter() string { return c.dayCounter }

// Interpolator returns the curve's interpolation scheme.
func (c *Curve) Interpolator() Interpolator { return c.interp }

// Dates returns the curve's pillar dates.
func (c *Curve) Dates() []time.Time { return append([]time.Time(nil), c.dates...) }

// DiscountFactors returns the curve's pillar discount factors, in the same
// order as Dates.
func (c *Curve) DiscountFactors() []float64 { return append([]float64(nil), c.dfs...) }

// DF returns the discount factor at t, interpolating between pillars (or
// extrapolating flat-forward beyond the last pillar) per the curve's
// Interpolator.
func (c *Curve) DF(t time.Time) float64 {
	return interpolateDF(c.refDate, c.dates, c.dfs, c.dayCounter, c.interp, t)
}

// ZeroRateAt returns the continuously-compounded zero rate to t, in
// percent, matching swap/curve.Curve.ZeroRateAt's convention. At t ==
// refDate (year fraction 0) the degenerate case is handled by the caller
// advancing the query date by one day before calling this.
func (c *Curve) ZeroRateAt(t time.Time) float64 {
	yf := utils.YearFraction(c.refDate, t, c.dayCounter)
	if yf == 0 {
		return 0
	}
	df := c.DF(t)
	return -math.Log(df) / yf * 100
}

// ForwardRate returns the simple forward rate over [start, end), used by
// the grid/measure evaluator's FWD sampling.
func (c *Curve) ForwardRate(start, end time.Time) float64 {
	accrual := utils.YearFraction(start, end, c.dayCounter)
	if accrual == 0 {
		return 0
	}
	dfStart := c.DF(start)
	dfEnd := c.DF(end)
	return (dfStart/dfEnd - 1.0) / accrual
}

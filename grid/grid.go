// Package grid builds the tenor/range date grid for the BootstrapCurves
// endpoint and samples DF/ZERO/FWD measures off the resulting curves.
package grid

import (
	"fmt"
	"math"
	"time"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/registry"
	"github.com/meenmo/curvecore/request"
	"github.com/meenmo/curvecore/utils"
)

// defaultForwardTenorDays is the period-forward tenor used when a FWD
// query leaves ForwardTenorDays unset: 3 months.
const defaultForwardTenorDays = 90

// CurvePoints is one curve's sampled grid: Dates[i] paired with Values[i],
// plus the underlying curve's own pillar dates for reference.
type CurvePoints struct {
	Dates       []time.Time
	Values      []float64
	PillarDates []time.Time
}

// Evaluate samples every curve named in query.CurveIDs at the query's grid,
// under the requested measure. maxRangeGridPoints caps a GridRange query's
// point count as a guard against a runaway request.
func Evaluate(asOf time.Time, query request.BootstrapCurvesQuery, curves *registry.CurveRegistry, maxRangeGridPoints int) (map[string]CurvePoints, error) {
	dates, err := buildDates(asOf, query, maxRangeGridPoints)
	if err != nil {
		return nil, err
	}

	out := make(map[string]CurvePoints, len(query.CurveIDs))
	for _, id := range query.CurveIDs {
		handle, err := curves.Handle(id)
		if err != nil {
			return nil, err
		}
		curve, linked := handle.Curve()
		if !linked {
			return nil, faults.Itemf(faults.DependencyFailure, id, "curve is not linked")
		}

		values := make([]float64, len(dates))
		for i, d := range dates {
			v, err := sample(curve, query, asOf, d)
			if err != nil {
				return nil, err
			}
			values[i] = v
		}

		var pillars []time.Time
		if pd, ok := curve.(interface{ Dates() []time.Time }); ok {
			pillars = pd.Dates()
		}
		out[id] = CurvePoints{Dates: dates, Values: values, PillarDates: pillars}
	}
	return out, nil
}

func buildDates(asOf time.Time, query request.BootstrapCurvesQuery, maxRangeGridPoints int) ([]time.Time, error) {
	switch query.Grid {
	case request.GridTenor:
		dates := make([]time.Time, len(query.Tenors))
		for i, t := range query.Tenors {
			d, err := utils.AddTenor(asOf, t)
			if err != nil {
				return nil, err
			}
			dates[i] = d
		}
		return dates, nil

	case request.GridRange:
		if query.StepDays <= 0 {
			return nil, faults.New(faults.InputValidation, fmt.Errorf("range grid step_days must be positive"))
		}
		if query.EndDays < query.StartDays {
			return nil, faults.New(faults.InputValidation, fmt.Errorf("range grid end_days must not be before start_days"))
		}
		count := (query.EndDays-query.StartDays)/query.StepDays + 1
		if count > maxRangeGridPoints {
			return nil, faults.New(faults.InputValidation, fmt.Errorf("range grid would produce %d points, exceeding the %d-point cap", count, maxRangeGridPoints))
		}
		cal := calendar.CalendarID(query.Calendar)
		dates := make([]time.Time, 0, count)
		for d := query.StartDays; d <= query.EndDays; d += query.StepDays {
			candidate := asOf.AddDate(0, 0, d)
			if query.BusinessDaysOnly && !calendar.IsBusinessDay(cal, candidate) {
				continue
			}
			dates = append(dates, candidate)
		}
		return dates, nil

	default:
		return nil, faults.New(faults.InputValidation, fmt.Errorf("unrecognized grid kind %q", query.Grid))
	}
}

func sample(curve registry.DiscountCurve, query request.BootstrapCurvesQuery, asOf, d time.Time) (float64, error) {
	switch query.Measure {
	case request.MeasureDF:
		return curve.DF(d), nil

	case request.MeasureZero:
		t := d
		if !t.After(asOf) {
			t = asOf.AddDate(0, 0, 1)
		}
		return zeroRate(curve, asOf, t, query) * 100, nil

	case request.MeasureFwd:
		tenorDays := query.ForwardTenorDays
		if tenorDays <= 0 {
			tenorDays = defaultForwardTenorDays
		}
		end := d.AddDate(0, 0, tenorDays)
		return forwardRate(curve, d, end, query) * 100, nil

	default:
		return 0, faults.New(faults.InputValidation, fmt.Errorf("unrecognized measure %q", query.Measure))
	}
}

// curveDayCounter resolves the day-count convention for a compounded-rate
// computation: the query's override if set, else the curve's own.
func curveDayCounter(curve registry.DiscountCurve, query request.BootstrapCurvesQuery) string {
	if query.DayCounter != "" {
		return query.DayCounter
	}
	if dc, ok := curve.(interface{ DayCounter() string }); ok {
		return dc.DayCounter()
	}
	return "ACT/365F"
}

// zeroRate computes the zero rate to t under the query's compounding,
// frequency and day-count, defaulting to Simple/Annual per the endpoint's
// stated defaults. Result is a decimal rate, not a percentage.
func zeroRate(curve registry.DiscountCurve, asOf, t time.Time, query request.BootstrapCurvesQuery) float64 {
	yf := utils.YearFraction(asOf, t, curveDayCounter(curve, query))
	if yf <= 0 {
		return 0
	}
	return compoundedRate(1.0/curve.DF(t), yf, query.Compounding, query.Frequency)
}

// forwardRate computes the period forward rate between start and end
// under the query's compounding/frequency, defaulting to Simple/Annual.
func forwardRate(curve registry.DiscountCurve, start, end time.Time, query request.BootstrapCurvesQuery) float64 {
	yf := utils.YearFraction(start, end, curveDayCounter(curve, query))
	if yf <= 0 {
		return 0
	}
	ratio := curve.DF(start) / curve.DF(end)
	return compoundedRate(ratio, yf, query.Compounding, query.Frequency)
}

// compoundedRate converts a discount ratio over yf years into a rate under
// the named compounding convention. Simple is the endpoint default.
func compoundedRate(ratio, yf float64, compounding, frequency string) float64 {
	switch compounding {
	case "CONTINUOUS":
		return math.Log(ratio) / yf
	case "ANNUAL", "PERIODIC":
		n := periodsPerYear(frequency)
		return (math.Pow(ratio, 1.0/(n*yf)) - 1.0) * n
	default: // "SIMPLE" or unset
		return (ratio - 1.0) / yf
	}
}

// periodsPerYear maps a named compounding frequency to periods per year.
// Annual is the endpoint default.
func periodsPerYear(frequency string) float64 {
	switch frequency {
	case "MONTHLY":
		return 12
	case "QUARTERLY":
		return 4
	case "SEMIANNUAL":
		return 2
	default: // "ANNUAL" or unset
		return 1
	}
}

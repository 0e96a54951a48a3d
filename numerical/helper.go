package numerical

import (
	"fmt"
	"time"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/utils"
)

// ExternalCurve is the minimal contract a helper needs from a curve it
// references but doesn't build (an already-bootstrapped discount or
// forwarding curve reached through a CurveHandle).
type ExternalCurve interface {
	DF(t time.Time) float64
}

// BuildContext is what Bootstrap hands each Helper when it is its turn to
// solve: a lookup into the curve under construction plus whatever external
// curves the calibration point referenced. Discount is nil for
// self-discounting points (OIS, plain deposits/FRAs/futures/swaps); Base is
// only set for the basis-style variants.
type BuildContext struct {
	RefDate  time.Time
	OwnDF    func(t time.Time) float64
	Discount ExternalCurve
	Base     ExternalCurve
}

func (ctx BuildContext) discount(t time.Time) float64 {
	if ctx.Discount != nil {
		return ctx.Discount.DF(t)
	}
	return ctx.OwnDF(t)
}

// Helper is one calibration constraint contributed by a curve spec point,
// grounded on original_source/parser/term_structure_point_parser.h's
// RateHelper construction and on swap/curve.Curve's Newton-Raphson
// bootstrap solvers.
type Helper interface {
	// Maturity is the pillar date this helper solves a discount factor for.
	Maturity() time.Time
	// Solve returns the discount factor at Maturity().
	Solve(ctx BuildContext, cfg SolverConfig) (float64, error)
}

// DepositHelper is a cash-deposit calibration constraint: closed-form, no
// Newton iteration needed.
type DepositHelper struct {
	Start, End time.Time
	Rate       float64
	DayCounter string
}

func (h DepositHelper) Maturity() time.Time { return h.End }

func (h DepositHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	accrual := utils.YearFraction(h.Start, h.End, h.DayCounter)
	dfStart := ctx.OwnDF(h.Start)
	denom := 1.0 + h.Rate*accrual
	if denom == 0 {
		return 0, fmt.Errorf("deposit helper: degenerate accrual for maturity %s", h.End)
	}
	return dfStart / denom, nil
}

// FRAHelper is a forward-rate-agreement calibration constraint: a forward
// deposit between Start and End, closed-form given the curve's own DF at
// Start.
type FRAHelper struct {
	Start, End time.Time
	Rate       float64
	DayCounter string
}

func (h FRAHelper) Maturity() time.Time { return h.End }

func (h FRAHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	accrual := utils.YearFraction(h.Start, h.End, h.DayCounter)
	dfStart := ctx.OwnDF(h.Start)
	denom := 1.0 + h.Rate*accrual
	if denom == 0 {
		return 0, fmt.Errorf("fra helper: degenerate accrual for maturity %s", h.End)
	}
	return dfStart / denom, nil
}

// FutureHelper is an exchange-traded futures calibration constraint,
// treated like an FRA over the futures delivery period (convexity
// adjustment out of scope).
type FutureHelper struct {
	Start, End time.Time
	Rate       float64
	DayCounter string
}

func (h FutureHelper) Maturity() time.Time { return h.End }

func (h FutureHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	accrual := utils.YearFraction(h.Start, h.End, h.DayCounter)
	dfStart := ctx.OwnDF(h.Start)
	denom := 1.0 + h.Rate*accrual
	if denom == 0 {
		return 0, fmt.Errorf("future helper: degenerate accrual for maturity %s", h.End)
	}
	return dfStart / denom, nil
}

// FixedCoupon is one fixed-leg accrual period, grounded on
// swap/curve.Curve's oisCoupon / buildOISCoupons schedule generation.
type FixedCoupon struct {
	PaymentDate time.Time
	Accrual     float64
}

// BuildFixedSchedule rolls backward from maturity to start in period-length
// steps, adjusting each accrual boundary to the given calendar and applying
// a payment delay, matching buildOISCoupons's backward-schedule approach
// (avoids date drift from repeated Modified Following adjustment that a
// forward roll would accumulate).
func BuildFixedSchedule(start, maturity time.Time, periodMonths int, cal calendar.CalendarID, payDelayDays int, dayCounter string) []FixedCoupon {
	var unadjusted []time.Time
	current := maturity
	for current.After(start) {
		unadjusted = append([]time.Time{current}, unadjusted...)
		current = utils.AddMonth(current, -periodMonths)
	}
	unadjusted = append([]time.Time{start}, unadjusted...)

	coupons := make([]FixedCoupon, 0, len(unadjusted)-1)
	for i := 0; i < len(unadjusted)-1; i++ {
		accrualStart := calendar.Adjust(cal, unadjusted[i])
		accrualEnd := calendar.Adjust(cal, unadjusted[i+1])
		payDate := calendar.AddBusinessDays(cal, accrualEnd, payDelayDays)
		coupons = append(coupons, FixedCoupon{
			PaymentDate: payDate,
			Accrual:     utils.YearFraction(accrualStart, accrualEnd, dayCounter),
		})
	}
	return coupons
}

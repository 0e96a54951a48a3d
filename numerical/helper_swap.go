package numerical

import (
	"time"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/utils"
)

// SwapHelper is a par interest-rate-swap calibration constraint: a fixed
// leg against a floating leg projected off the curve under construction
// (dual-curve bootstrap) and discounted either by that same curve
// (self-discounting) or by an external curve reached through ctx.Discount.
// Grounded on swap/curve.Curve.bootstrapDualCurve / solvePseudoDiscountFactor
// / evalIBORSwapNPV.
type SwapHelper struct {
	Start, Maturity_ time.Time
	Rate              float64
	FixedFreqMonths   int
	FloatFreqMonths   int
	FixedDayCounter   string
	FloatDayCounter   string
	Calendar          calendar.CalendarID
	PayDelayDays      int
}

func (h SwapHelper) Maturity() time.Time { return h.Maturity_ }

func (h SwapHelper) Solve(ctx BuildContext, cfg SolverConfig) (float64, error) {
	fixedLeg := BuildFixedSchedule(h.Start, h.Maturity_, h.FixedFreqMonths, h.Calendar, h.PayDelayDays, h.FixedDayCounter)
	floatLeg := BuildFixedSchedule(h.Start, h.Maturity_, h.FloatFreqMonths, h.Calendar, h.PayDelayDays, h.FloatDayCounter)

	fixedPV := func() float64 {
		pv := 0.0
		for _, c := range fixedLeg {
			pv += h.Rate * c.Accrual * ctx.discount(c.PaymentDate)
		}
		return pv
	}()

	initialGuess := 1.0 / (1.0 + h.Rate*0.5)
	return newtonSolveDF(initialGuess, cfg, func(dfMaturity float64) (float64, float64) {
		floatPV, dFloatPV := h.floatLegPV(ctx, floatLeg, dfMaturity)
		residual := floatPV - fixedPV
		return residual, dFloatPV
	}), nil
}

// floatLegPV prices the projected floating leg treating dfMaturity as the
// trial discount factor at the swap's own maturity pillar: every float
// coupon before the last period projects off already-solved pillars via
// ctx.OwnDF, and only the final period's forward rate depends on the
// unknown, matching solvePseudoDiscountFactor's single-unknown Newton setup.
func (h SwapHelper) floatLegPV(ctx BuildContext, floatLeg []FixedCoupon, dfMaturity float64) (float64, float64) {
	pv := 0.0
	deriv := 0.0
	periodStart := h.Start
	n := len(floatLeg)
	for i, c := range floatLeg {
		isLast := i == n-1
		var dfStart, dfEnd float64
		if isLast {
			dfStart = ctx.OwnDF(periodStart)
			dfEnd = dfMaturity
		} else {
			dfStart = ctx.OwnDF(periodStart)
			dfEnd = ctx.OwnDF(c.PaymentDate)
		}
		fwd := (dfStart/dfEnd - 1.0) / c.Accrual
		disc := ctx.discount(c.PaymentDate)
		pv += fwd * c.Accrual * disc

		if isLast {
			// d(fwd)/d(dfMaturity) = -dfStart/(dfEnd^2 * accrual)
			deriv += -dfStart / (dfEnd * dfEnd * c.Accrual) * c.Accrual * disc
		}
		periodStart = c.PaymentDate
	}
	return pv, deriv
}

// OISHelper is an overnight-index-swap calibration constraint: the
// compounded-overnight floating leg is replaced by its closed-form
// par-equation identity (1 = fixedPV + DF(maturity)) rather than simulated
// day by day, matching swap/curve.Curve.solveOISDiscountFactor.
type OISHelper struct {
	Start, Maturity_ time.Time
	Rate              float64
	FreqMonths        int
	DayCounter        string
	Calendar          calendar.CalendarID
	PayDelayDays      int
}

func (h OISHelper) Maturity() time.Time { return h.Maturity_ }

func (h OISHelper) Solve(ctx BuildContext, cfg SolverConfig) (float64, error) {
	coupons := BuildFixedSchedule(h.Start, h.Maturity_, h.FreqMonths, h.Calendar, h.PayDelayDays, h.DayCounter)
	notionalDF := ctx.discount(h.Start)

	return newtonSolveDF(0.99, cfg, func(dfMaturity float64) (float64, float64) {
		fixedPV := 0.0
		for i, c := range coupons {
			disc := dfMaturity
			if i < len(coupons)-1 {
				disc = ctx.discount(c.PaymentDate)
			}
			fixedPV += h.Rate * c.Accrual * disc
		}
		residual := fixedPV + dfMaturity - notionalDF
		lastAccrual := 0.0
		if len(coupons) > 0 {
			lastAccrual = coupons[len(coupons)-1].Accrual
		}
		deriv := h.Rate*lastAccrual + 1.0
		return residual, deriv
	}), nil
}

// DatedOISHelper is a meeting-dated OIS calibration constraint: a single
// explicit accrual period rather than a generated annual schedule, used for
// near-dated central-bank-meeting pillars.
type DatedOISHelper struct {
	Start, End time.Time
	Rate       float64
	DayCounter string
}

func (h DatedOISHelper) Maturity() time.Time { return h.End }

func (h DatedOISHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	accrual := utils.YearFraction(h.Start, h.End, h.DayCounter)
	dfStart := ctx.discount(h.Start)
	return dfStart / (1.0 + h.Rate*accrual), nil
}

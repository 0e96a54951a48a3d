package numerical

import (
	"fmt"
	"time"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/utils"
)

// BondHelper is a coupon-bond calibration constraint: the unknown discount
// factor at the bond's redemption date is solved so the curve's own DFs
// reprice the bond to its quoted clean price, matching the accrued-interest
// handling in swap/curve.Curve's price-driven bootstrap step.
type BondHelper struct {
	Settlement   time.Time
	Maturity_    time.Time
	CouponRate   float64
	CleanPrice   float64
	FreqMonths   int
	DayCounter   string
	Calendar     calendar.CalendarID
	FaceAmount   float64
	LastCouponTo time.Time // prior coupon date, for accrued-interest computation
}

func (h BondHelper) Maturity() time.Time { return h.Maturity_ }

func (h BondHelper) Solve(ctx BuildContext, cfg SolverConfig) (float64, error) {
	coupons := BuildFixedSchedule(h.Settlement, h.Maturity_, h.FreqMonths, h.Calendar, 0, h.DayCounter)
	if len(coupons) == 0 {
		return 0, fmt.Errorf("bond helper: empty coupon schedule for maturity %s", h.Maturity_)
	}

	face := h.FaceAmount
	if face == 0 {
		face = 100
	}
	accrued := 0.0
	if !h.LastCouponTo.IsZero() {
		accrued = h.CouponRate * face * utils.YearFraction(h.LastCouponTo, h.Settlement, h.DayCounter)
	}
	dirtyPrice := (h.CleanPrice + accrued/face*100) / 100 * face

	pvBeforeLast := 0.0
	for i, c := range coupons {
		if i == len(coupons)-1 {
			continue
		}
		pvBeforeLast += h.CouponRate * face * c.Accrual * ctx.discount(c.PaymentDate)
	}
	lastAccrual := coupons[len(coupons)-1].Accrual
	lastCashflow := face * (1.0 + h.CouponRate*lastAccrual)

	return newtonSolveDF(1.0/(1.0+h.CouponRate), cfg, func(dfLast float64) (float64, float64) {
		pv := pvBeforeLast + lastCashflow*dfLast
		residual := pv - dirtyPrice
		deriv := lastCashflow
		return residual, deriv
	}), nil
}

// TenorBasisSwapHelper solves a quote-index curve pillar so the tenor-basis
// par condition holds against a base index curve: the quote leg's forward
// rate must equal the base leg's forward rate plus the quoted spread,
// discounted by a common discount curve (cancels out of the single-period
// algebra below, so it never needs to appear explicitly).
type TenorBasisSwapHelper struct {
	Start, End time.Time
	Spread     float64
	DayCounter string
}

func (h TenorBasisSwapHelper) Maturity() time.Time { return h.End }

func (h TenorBasisSwapHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	if ctx.Base == nil {
		return 0, fmt.Errorf("tenor basis swap helper: base index curve not supplied for maturity %s", h.End)
	}
	accrual := utils.YearFraction(h.Start, h.End, h.DayCounter)
	baseFwd := (ctx.Base.DF(h.Start)/ctx.Base.DF(h.End) - 1.0) / accrual
	quoteFwd := baseFwd + h.Spread
	dfStart := ctx.OwnDF(h.Start)
	return dfStart / (1.0 + quoteFwd*accrual), nil
}

// FxSwapHelper solves a collateral-currency discount curve pillar from
// covered interest rate parity: forward = spot * DF_base / DF_quote.
type FxSwapHelper struct {
	Start, End    time.Time
	SpotFX        float64
	ForwardPoints float64 // outright = SpotFX + ForwardPoints/PointScale
	PointScale    float64
}

func (h FxSwapHelper) Maturity() time.Time { return h.End }

func (h FxSwapHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	if ctx.Base == nil {
		return 0, fmt.Errorf("fx swap helper: base currency discount curve not supplied for maturity %s", h.End)
	}
	scale := h.PointScale
	if scale == 0 {
		scale = 10000.0
	}
	outright := h.SpotFX + h.ForwardPoints/scale
	if outright == 0 {
		return 0, fmt.Errorf("fx swap helper: degenerate forward outright for maturity %s", h.End)
	}
	dfBase := ctx.Base.DF(h.End)
	dfBaseStart := ctx.Base.DF(h.Start)
	dfQuoteStart := ctx.OwnDF(h.Start)
	// Spot-to-start rolldown on both legs cancels in the ratio when Start
	// is the spot date; kept explicit so non-spot starts still price.
	_ = dfBaseStart
	return dfQuoteStart * dfBase * h.SpotFX / outright / dfBaseStart, nil
}

// CrossCcyBasisHelper solves a quote-currency discount curve pillar from
// the cross-currency basis par condition: same algebra as the tenor basis
// swap, applied to discount (not forwarding) curves.
type CrossCcyBasisHelper struct {
	Start, End time.Time
	Spread     float64
	DayCounter string
}

func (h CrossCcyBasisHelper) Maturity() time.Time { return h.End }

func (h CrossCcyBasisHelper) Solve(ctx BuildContext, _ SolverConfig) (float64, error) {
	if ctx.Base == nil {
		return 0, fmt.Errorf("cross-currency basis helper: base currency curve not supplied for maturity %s", h.End)
	}
	accrual := utils.YearFraction(h.Start, h.End, h.DayCounter)
	baseFwd := (ctx.Base.DF(h.Start)/ctx.Base.DF(h.End) - 1.0) / accrual
	quoteFwd := baseFwd + h.Spread
	dfStart := ctx.OwnDF(h.Start)
	return dfStart / (1.0 + quoteFwd*accrual), nil
}

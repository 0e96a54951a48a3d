// Package helperbuild dispatches a decoded calibration-point DTO
// (request.PointDTO) into a concrete numerical.Helper, resolving every
// quote/index reference it names through the per-request registries. Curve
// references are not resolved here; they are returned as dependency ids.
// Grounded on original_source/parser/term_structure_point_parser.h/.cpp's
// dispatch-by-variant construction.
package helperbuild

import (
	"fmt"
	"time"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/numerical"
	"github.com/meenmo/curvecore/registry"
	"github.com/meenmo/curvecore/request"
	"github.com/meenmo/curvecore/utils"
)

// Built is one constructed calibration constraint plus the curve ids it
// depends on (the point's non-empty DiscountCurveID), which the dependency
// resolver needs before this curve can be sequenced. A base index's
// forwarding curve is not listed here.
type Built struct {
	Helper numerical.Helper
	Deps   []string
}

// Build dispatches one decoded point into a numerical.Helper. refDate is
// the curve's valuation date; quotes/indices resolve QuoteRef and IndexID
// references.
func Build(point request.PointDTO, refDate time.Time, quotes *registry.QuoteRegistry, indices *registry.IndexRegistry) (Built, error) {
	switch point.Variant {
	case request.PointDeposit:
		return buildDeposit(point.Deposit, refDate, quotes)
	case request.PointFRA:
		return buildFRA(point.FRA, refDate, quotes)
	case request.PointFuture:
		return buildFuture(point.Future, quotes)
	case request.PointSwap:
		return buildSwap(point.Swap, refDate, quotes, indices)
	case request.PointOIS:
		return buildOIS(point.OIS, refDate, quotes, indices)
	case request.PointDatedOIS:
		return buildDatedOIS(point.DatedOIS, quotes)
	case request.PointBond:
		return buildBond(point.Bond, refDate, quotes)
	case request.PointTenorBasisSwap:
		return buildTenorBasisSwap(point.TenorBasisSwap, refDate, quotes)
	case request.PointFxSwap:
		return buildFxSwap(point.FxSwap, refDate, quotes)
	case request.PointCrossCcyBasis:
		return buildCrossCcyBasis(point.CrossCcyBasis, refDate, quotes)
	default:
		return Built{}, faults.Itemf(faults.InputValidation, string(point.Variant), "unrecognized calibration point variant")
	}
}

// Deps extracts the curve ids a point depends on directly from its DTO,
// without touching any registry. Used by package depgraph to build the
// dependency graph before any helper is actually constructed.
func Deps(point request.PointDTO) []string {
	var deps []string
	add := func(id string) {
		if id != "" {
			deps = append(deps, id)
		}
	}
	switch point.Variant {
	case request.PointSwap:
		if point.Swap != nil {
			add(point.Swap.DiscountCurveID)
		}
	case request.PointOIS:
		if point.OIS != nil {
			add(point.OIS.DiscountCurveID)
		}
	case request.PointDatedOIS:
		if point.DatedOIS != nil {
			add(point.DatedOIS.DiscountCurveID)
		}
	case request.PointTenorBasisSwap:
		if point.TenorBasisSwap != nil {
			add(point.TenorBasisSwap.DiscountCurveID)
		}
	case request.PointFxSwap:
		if point.FxSwap != nil {
			add(point.FxSwap.DiscountCurveID)
		}
	case request.PointCrossCcyBasis:
		if point.CrossCcyBasis != nil {
			add(point.CrossCcyBasis.DiscountCurveID)
		}
	}
	return deps
}

// ForwardedIndex reports the index id a point's own curve projects — a Swap
// point's floating index (Ibor) or an OIS point's index (overnight) — since
// the curve being bootstrapped from that point is the natural forwarding
// curve for that index under dual-curve construction. Used by depgraph and
// the orchestrator to resolve which already-built curve a later
// TenorBasisSwap/CrossCcyBasis point's BaseIndexID should bind to.
func ForwardedIndex(point request.PointDTO) (indexID string, overnight bool, ok bool) {
	switch point.Variant {
	case request.PointSwap:
		if point.Swap != nil && point.Swap.IndexID != "" {
			return point.Swap.IndexID, false, true
		}
	case request.PointOIS:
		if point.OIS != nil && point.OIS.IndexID != "" {
			return point.OIS.IndexID, true, true
		}
	}
	return "", false, false
}

// BaseIndexID returns the base-leg index id a TenorBasisSwap or
// CrossCcyBasis point needs resolved to an already-bootstrapped forwarding
// curve, or "" for points with no such reference.
func BaseIndexID(point request.PointDTO) string {
	switch point.Variant {
	case request.PointTenorBasisSwap:
		if point.TenorBasisSwap != nil {
			return point.TenorBasisSwap.BaseIndexID
		}
	case request.PointCrossCcyBasis:
		if point.CrossCcyBasis != nil {
			return point.CrossCcyBasis.BaseIndexID
		}
	}
	return ""
}

func resolveRate(quotes *registry.QuoteRegistry, ref request.QuoteRef, kind string) (float64, error) {
	return quotes.Value(ref.QuoteID, ref.Inline, ref.BumpBP/10000.0, kind)
}

func fixedBDCAdjust(cal calendar.CalendarID, adjustment string, t time.Time) time.Time {
	switch adjustment {
	case "FOLLOWING":
		return calendar.AdjustFollowing(cal, t)
	case "PRECEDING":
		return calendar.AdjustPreceding(cal, t)
	default:
		return calendar.Adjust(cal, t)
	}
}

func buildDeposit(p *request.DepositPoint, refDate time.Time, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("deposit point payload missing")
	}
	rate, err := resolveRate(quotes, p.Rate, "deposit")
	if err != nil {
		return Built{}, err
	}
	cal := calendar.CalendarID(p.Calendar)
	start := calendar.AddBusinessDays(cal, refDate, p.FixingDays)
	end, err := utils.AddTenor(start, p.Tenor)
	if err != nil {
		return Built{}, err
	}
	end = fixedBDCAdjust(cal, p.BusinessDayAdjustment, end)
	return Built{Helper: numerical.DepositHelper{Start: start, End: end, Rate: rate, DayCounter: p.DayCounter}}, nil
}

func buildFRA(p *request.FRAPoint, refDate time.Time, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("fra point payload missing")
	}
	rate, err := resolveRate(quotes, p.Rate, "fra")
	if err != nil {
		return Built{}, err
	}
	cal := calendar.CalendarID(p.Calendar)
	spot := calendar.AddBusinessDays(cal, refDate, p.FixingDays)
	start := fixedBDCAdjust(cal, p.BusinessDayAdjustment, utils.AddMonth(spot, p.MonthsToStart))
	end := fixedBDCAdjust(cal, p.BusinessDayAdjustment, utils.AddMonth(spot, p.MonthsToEnd))
	return Built{Helper: numerical.FRAHelper{Start: start, End: end, Rate: rate, DayCounter: p.DayCounter}}, nil
}

func buildFuture(p *request.FuturePoint, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("future point payload missing")
	}
	rate, err := resolveRate(quotes, p.Rate, "future")
	if err != nil {
		return Built{}, err
	}
	start, err := utils.ParseISODate(p.StartDate)
	if err != nil {
		return Built{}, err
	}
	cal := calendar.CalendarID(p.Calendar)
	start = fixedBDCAdjust(cal, p.BusinessDayAdjustment, start)
	end := fixedBDCAdjust(cal, p.BusinessDayAdjustment, utils.AddMonth(start, p.FutureMonths))
	return Built{Helper: numerical.FutureHelper{Start: start, End: end, Rate: rate, DayCounter: p.DayCounter}}, nil
}

func swapFrequencyMonths(freq string) int {
	switch freq {
	case "MONTHLY":
		return 1
	case "QUARTERLY":
		return 3
	case "SEMIANNUAL":
		return 6
	case "ANNUAL":
		return 12
	default:
		return 12
	}
}

func buildSwap(p *request.SwapPoint, refDate time.Time, quotes *registry.QuoteRegistry, indices *registry.IndexRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("swap point payload missing")
	}
	rate, err := resolveRate(quotes, p.Rate, "swap")
	if err != nil {
		return Built{}, err
	}
	if p.Spread.QuoteID != "" || p.Spread.Inline != nil {
		spread, err := resolveRate(quotes, p.Spread, "swap_spread")
		if err != nil {
			return Built{}, err
		}
		rate += spread
	}

	idx, err := indices.Get(p.IndexID)
	if err != nil {
		return Built{}, err
	}

	cal := calendar.CalendarID(p.Calendar)
	start := refDate
	if p.ForwardStartDays != 0 {
		start = calendar.AddBusinessDays(cal, refDate, p.ForwardStartDays)
	} else {
		start = calendar.AddBusinessDays(cal, refDate, idx.FixingDays)
	}

	unitMonths, err := tenorMonths(p.Tenor)
	if err != nil {
		return Built{}, err
	}
	maturity := fixedBDCAdjust(cal, p.FixedBDC, utils.AddMonth(start, unitMonths))

	floatFreqMonths := 3
	if idx.Tenor != "" {
		if months, perr := tenorMonths(idx.Tenor); perr == nil {
			floatFreqMonths = months
		}
	}

	h := numerical.SwapHelper{
		Start:           start,
		Maturity_:       maturity,
		Rate:            rate,
		FixedFreqMonths: swapFrequencyMonths(p.FixedFrequency),
		FloatFreqMonths: floatFreqMonths,
		FixedDayCounter: p.FixedDayCounter,
		FloatDayCounter: idx.DayCounter,
		Calendar:        cal,
	}
	return Built{Helper: h, Deps: nonEmpty(p.DiscountCurveID)}, nil
}

func buildOIS(p *request.OISPoint, refDate time.Time, quotes *registry.QuoteRegistry, indices *registry.IndexRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("ois point payload missing")
	}
	rate, err := resolveRate(quotes, p.Rate, "ois")
	if err != nil {
		return Built{}, err
	}
	if _, err := indices.Overnight(p.IndexID); err != nil {
		return Built{}, err
	}

	cal := calendar.CalendarID(p.Calendar)
	start := calendar.Adjust(cal, refDate)
	unitMonths, err := tenorMonths(p.Tenor)
	if err != nil {
		return Built{}, err
	}
	maturity := calendar.Adjust(cal, utils.AddMonth(start, unitMonths))

	h := numerical.OISHelper{
		Start:        start,
		Maturity_:    maturity,
		Rate:         rate,
		FreqMonths:   swapFrequencyMonths(p.FixedFrequency),
		DayCounter:   p.FixedDayCounter,
		Calendar:     cal,
		PayDelayDays: p.PaymentLagDays,
	}
	return Built{Helper: h, Deps: nonEmpty(p.DiscountCurveID)}, nil
}

func buildDatedOIS(p *request.DatedOISPoint, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("dated ois point payload missing")
	}
	rate, err := resolveRate(quotes, p.Rate, "dated_ois")
	if err != nil {
		return Built{}, err
	}
	start, err := utils.ParseISODate(p.StartDate)
	if err != nil {
		return Built{}, err
	}
	end, err := utils.ParseISODate(p.EndDate)
	if err != nil {
		return Built{}, err
	}
	h := numerical.DatedOISHelper{Start: start, End: end, Rate: rate, DayCounter: p.FixedDayCounter}
	return Built{Helper: h, Deps: nonEmpty(p.DiscountCurveID)}, nil
}

func buildBond(p *request.BondPoint, refDate time.Time, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("bond point payload missing")
	}
	price, err := resolveRate(quotes, p.CleanPrice, "bond_price")
	if err != nil {
		return Built{}, err
	}
	maturity, err := utils.ParseISODate(p.MaturityDate)
	if err != nil {
		return Built{}, err
	}
	cal := calendar.CalendarID(p.Calendar)
	settlement := calendar.AddBusinessDays(cal, refDate, p.SettlementDays)
	settlement = fixedBDCAdjust(cal, p.BusinessDayAdjustment, settlement)

	h := numerical.BondHelper{
		Settlement: settlement,
		Maturity_:  maturity,
		CouponRate: p.CouponRate,
		CleanPrice: price,
		FreqMonths: swapFrequencyMonths(p.Frequency),
		DayCounter: p.DayCounter,
		Calendar:   cal,
		FaceAmount: p.FaceAmount,
	}
	return Built{Helper: h}, nil
}

func buildTenorBasisSwap(p *request.TenorBasisSwapPoint, refDate time.Time, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("tenor basis swap point payload missing")
	}
	spread, err := resolveRate(quotes, p.Spread, "tenor_basis_spread")
	if err != nil {
		return Built{}, err
	}
	months, err := tenorMonths(p.Tenor)
	if err != nil {
		return Built{}, err
	}
	end := utils.AddMonth(refDate, months)
	h := numerical.TenorBasisSwapHelper{Start: refDate, End: end, Spread: spread, DayCounter: "ACT/360"}
	return Built{Helper: h, Deps: nonEmpty(p.DiscountCurveID)}, nil
}

func buildFxSwap(p *request.FxSwapPoint, refDate time.Time, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("fx swap point payload missing")
	}
	points, err := resolveRate(quotes, p.ForwardPoints, "fx_forward_points")
	if err != nil {
		return Built{}, err
	}
	cal := calendar.CalendarID(p.Calendar)
	start := calendar.AddBusinessDays(cal, refDate, p.FixingDays)
	months, err := tenorMonths(p.Tenor)
	if err != nil {
		return Built{}, err
	}
	end := calendar.Adjust(cal, utils.AddMonth(start, months))
	h := numerical.FxSwapHelper{Start: start, End: end, SpotFX: p.SpotFX, ForwardPoints: points, PointScale: 10000.0}
	return Built{Helper: h, Deps: nonEmpty(p.DiscountCurveID)}, nil
}

func buildCrossCcyBasis(p *request.CrossCcyBasisPoint, refDate time.Time, quotes *registry.QuoteRegistry) (Built, error) {
	if p == nil {
		return Built{}, fmt.Errorf("cross ccy basis point payload missing")
	}
	spread, err := resolveRate(quotes, p.Spread, "cross_ccy_basis_spread")
	if err != nil {
		return Built{}, err
	}
	months, err := tenorMonths(p.Tenor)
	if err != nil {
		return Built{}, err
	}
	end := utils.AddMonth(refDate, months)
	h := numerical.CrossCcyBasisHelper{Start: refDate, End: end, Spread: spread, DayCounter: "ACT/360"}
	return Built{Helper: h, Deps: nonEmpty(p.DiscountCurveID)}, nil
}

func tenorMonths(tenor string) (int, error) {
	v, unit, err := utils.ParseTenor(tenor)
	if err != nil {
		return 0, err
	}
	if unit == 'Y' {
		return v * 12, nil
	}
	if unit == 'M' {
		return v, nil
	}
	return 0, fmt.Errorf("tenor %q is not expressible in whole months", tenor)
}

func nonEmpty(id string) []string {
	if id == "" {
		return nil
	}
	return []string{id}
}

package numerical

import (
	"time"

	"github.com/meenmo/curvecore/utils"
)

// CachedCurveData is the serialized form of a bootstrapped Curve: the pillar
// dates and discount factors plus enough metadata to reconstruct an
// equivalent curve without rerunning the bootstrap. Grounded on
// original_source/parser/curve_serializer.h's CachedCurveData.
type CachedCurveData struct {
	ReferenceDate   string    `msgpack:"reference_date"`
	DayCounter      string    `msgpack:"day_counter"`
	Interpolator    string    `msgpack:"interpolator"`
	Dates           []string  `msgpack:"dates"`
	DiscountFactors []float64 `msgpack:"discount_factors"`
}

// Serialize extracts the pillar dates and discount factors already held by
// a bootstrapped Curve. Unlike curve_serializer.h's serialize, there is no
// dense-sampling fallback path: Curve always stores exact pillars, it never
// wraps an opaque bootstrap engine whose nodes might be unreachable.
func Serialize(curve *Curve) CachedCurveData {
	dates := curve.Dates()
	strDates := make([]string, len(dates))
	for i, d := range dates {
		strDates[i] = utils.FormatISODate(d)
	}
	return CachedCurveData{
		ReferenceDate:   utils.FormatISODate(curve.ReferenceDate()),
		DayCounter:      curve.DayCounter(),
		Interpolator:    string(curve.Interpolator()),
		Dates:           strDates,
		DiscountFactors: curve.DiscountFactors(),
	}
}

// Reconstruct rebuilds a Curve from cached pillar data. ForwardFlat is
// aliased to LogLinear on reconstruction: ForwardFlat on discount factors
// has no direct standard-library analogue, and LogLinear is the
// conventional DF interpolation that reproduces identical values at every
// pillar node, which is all reconstruction needs to guarantee. This
// mirrors curve_serializer.h::reconstruct exactly and is not a bug to fix —
// a curve bootstrapped with ForwardFlat and then cache-reconstructed will
// interpolate off-pillar points differently than a live ForwardFlat curve
// would, by design.
func Reconstruct(data CachedCurveData) (*Curve, error) {
	refDate, err := utils.ParseISODate(data.ReferenceDate)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, len(data.Dates))
	for i, s := range data.Dates {
		d, err := utils.ParseISODate(s)
		if err != nil {
			return nil, err
		}
		dates[i] = d
	}

	interpKind := Interpolator(data.Interpolator)
	if interpKind == ForwardFlat {
		interpKind = LogLinear
	}

	return NewCurve(refDate, dates, data.DiscountFactors, interpKind, data.DayCounter), nil
}

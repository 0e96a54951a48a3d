package numerical

import (
	"fmt"
	"sort"
	"time"
)

// Bootstrap solves one discount factor per Helper, in maturity order,
// growing the curve under construction pillar by pillar so later helpers
// can project off earlier ones. Grounded on swap/curve.Curve's
// BuildCurve/bootstrapDiscountFactors sequential loop, generalized from a
// fixed OIS/IBOR helper set to an arbitrary mix of calibration-point
// variants.
func Bootstrap(refDate time.Time, helpers []Helper, interpKind Interpolator, dayCounter string, cfg SolverConfig, discount ExternalCurve, base ExternalCurve) (*Curve, error) {
	sorted := append([]Helper(nil), helpers...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Maturity().Before(sorted[j].Maturity())
	})

	dates := []time.Time{refDate}
	dfs := []float64{1.0}

	for _, h := range sorted {
		maturity := h.Maturity()
		if !maturity.After(refDate) {
			return nil, fmt.Errorf("bootstrap: helper maturity %s is not after reference date %s", maturity, refDate)
		}

		ownDF := func(t time.Time) float64 {
			if !t.After(refDate) {
				return 1.0
			}
			return interpolateDF(refDate, dates, dfs, dayCounter, interpKind, t)
		}

		ctx := BuildContext{
			RefDate:  refDate,
			OwnDF:    ownDF,
			Discount: discount,
			Base:     base,
		}

		df, err := h.Solve(ctx, cfg)
		if err != nil {
			return nil, err
		}
		if isBad(df) || df <= 0 {
			return nil, fmt.Errorf("bootstrap: non-finite discount factor solved for maturity %s", maturity)
		}

		dates = append(dates, maturity)
		dfs = append(dfs, df)
	}

	return NewCurve(refDate, dates, dfs, interpKind, dayCounter), nil
}

package cachekey

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"

	"github.com/meenmo/curvecore/registry"
	"github.com/meenmo/curvecore/request"
)

// Compute builds the "yc:v1:<sha256hex>" cache key for one curve spec. The
// key captures everything that affects its bootstrap output: the as-of
// date, the curve's construction tags, every calibration point with quote
// references resolved to their numeric value (not their id, so a bumped
// quote produces a different key), every index id a calibration point
// references resolved to its full declared field set (not its id, so two
// requests reusing the same index id with different conventions never
// collide), and the cache keys of any curves it depends on (so a change
// anywhere upstream invalidates every downstream curve transitively).
func Compute(asOfDate string, spec request.CurveSpecDTO, quotes *registry.QuoteRegistry, indices *registry.IndexRegistry, depKeys map[string]string) (string, error) {
	var buf CanonicalBuffer

	buf.WriteTag("HDR")
	buf.WriteString(asOfDate)
	buf.WriteString(spec.ID)
	buf.WriteString(spec.Currency)
	buf.WriteString(spec.DayCounter)
	buf.WriteString(spec.Interpolator)
	buf.WriteString(spec.BootstrapTrait)

	buf.WriteTag("PTS")
	buf.WriteU32(uint32(len(spec.Points)))
	for _, pt := range spec.Points {
		if err := writePoint(&buf, pt, quotes); err != nil {
			return "", err
		}
	}

	if err := writeReferencedIndices(&buf, spec, indices); err != nil {
		return "", err
	}

	buf.WriteTag("DEPS")
	depIDs := make([]string, 0, len(depKeys))
	for id := range depKeys {
		depIDs = append(depIDs, id)
	}
	sort.Strings(depIDs)
	buf.WriteU32(uint32(len(depIDs)))
	for _, id := range depIDs {
		buf.WriteString(id)
		buf.WriteString(depKeys[id])
	}

	sum := sha256.Sum256(buf.Bytes())
	return "yc:v1:" + hex.EncodeToString(sum[:]), nil
}

// referencedIndexIDs collects the sorted, de-duplicated set of index ids
// named by any calibration point in spec.
func referencedIndexIDs(spec request.CurveSpecDTO) []string {
	seen := make(map[string]bool)
	var ids []string
	add := func(id string) {
		if id != "" && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	for _, pt := range spec.Points {
		switch pt.Variant {
		case request.PointSwap:
			if pt.Swap != nil {
				add(pt.Swap.IndexID)
			}
		case request.PointOIS:
			if pt.OIS != nil {
				add(pt.OIS.IndexID)
			}
		case request.PointDatedOIS:
			if pt.DatedOIS != nil {
				add(pt.DatedOIS.IndexID)
			}
		case request.PointTenorBasisSwap:
			if pt.TenorBasisSwap != nil {
				add(pt.TenorBasisSwap.BaseIndexID)
				add(pt.TenorBasisSwap.QuoteIndexID)
			}
		case request.PointCrossCcyBasis:
			if pt.CrossCcyBasis != nil {
				add(pt.CrossCcyBasis.BaseIndexID)
				add(pt.CrossCcyBasis.QuoteIndexID)
			}
		}
	}
	sort.Strings(ids)
	return ids
}

// writeReferencedIndices emits the "IDX" section: sorted unique (index id,
// every declared index-definition field) for every index id any point in
// spec names, so a change to a referenced index's conventions (tenor,
// day-count, fixing days, ...) changes the key even though the point itself
// only carries the index id.
func writeReferencedIndices(buf *CanonicalBuffer, spec request.CurveSpecDTO, indices *registry.IndexRegistry) error {
	ids := referencedIndexIDs(spec)

	buf.WriteTag("IDX")
	buf.WriteU32(uint32(len(ids)))
	for _, id := range ids {
		idx, err := indices.Get(id)
		if err != nil {
			return err
		}
		buf.WriteString(idx.ID)
		buf.WriteString(idx.Name)
		buf.WriteString(string(idx.Kind))
		buf.WriteString(idx.Currency)
		buf.WriteString(idx.Tenor)
		buf.WriteI32(int32(idx.FixingDays))
		buf.WriteString(string(idx.Calendar))
		buf.WriteString(string(idx.BusinessDayAdjustment))
		buf.WriteString(idx.DayCounter)
		buf.WriteBool(idx.EndOfMonth)
		buf.WriteString(idx.ForwardingCurveID)
	}
	return nil
}

func resolveQuote(quotes *registry.QuoteRegistry, ref request.QuoteRef) (float64, error) {
	return quotes.Value(ref.QuoteID, ref.Inline, ref.BumpBP/10000.0, "")
}

func writePoint(buf *CanonicalBuffer, pt request.PointDTO, quotes *registry.QuoteRegistry) error {
	buf.WriteString(string(pt.Variant))

	writeRate := func(ref request.QuoteRef) error {
		v, err := resolveQuote(quotes, ref)
		if err != nil {
			return err
		}
		buf.WriteDouble(v)
		return nil
	}

	switch pt.Variant {
	case request.PointDeposit:
		p := pt.Deposit
		buf.WriteString(p.Tenor)
		if err := writeRate(p.Rate); err != nil {
			return err
		}
		buf.WriteI32(int32(p.FixingDays))
		buf.WriteString(p.Calendar)
		buf.WriteString(p.BusinessDayAdjustment)
		buf.WriteString(p.DayCounter)

	case request.PointFRA:
		p := pt.FRA
		buf.WriteI32(int32(p.MonthsToStart))
		buf.WriteI32(int32(p.MonthsToEnd))
		if err := writeRate(p.Rate); err != nil {
			return err
		}
		buf.WriteI32(int32(p.FixingDays))
		buf.WriteString(p.Calendar)
		buf.WriteString(p.BusinessDayAdjustment)
		buf.WriteString(p.DayCounter)

	case request.PointFuture:
		p := pt.Future
		buf.WriteString(p.StartDate)
		buf.WriteI32(int32(p.FutureMonths))
		if err := writeRate(p.Rate); err != nil {
			return err
		}
		buf.WriteString(p.Calendar)
		buf.WriteString(p.BusinessDayAdjustment)
		buf.WriteString(p.DayCounter)

	case request.PointSwap:
		p := pt.Swap
		buf.WriteString(p.Tenor)
		if err := writeRate(p.Rate); err != nil {
			return err
		}
		buf.WriteString(p.Calendar)
		buf.WriteString(p.FixedFrequency)
		buf.WriteString(p.FixedBDC)
		buf.WriteString(p.FixedDayCounter)
		buf.WriteString(p.IndexID)
		if p.Spread.QuoteID != "" || p.Spread.Inline != nil {
			if err := writeRate(p.Spread); err != nil {
				return err
			}
		} else {
			buf.WriteDouble(0)
		}
		buf.WriteI32(int32(p.ForwardStartDays))
		buf.WriteString(p.DiscountCurveID)

	case request.PointOIS:
		p := pt.OIS
		buf.WriteString(p.Tenor)
		if err := writeRate(p.Rate); err != nil {
			return err
		}
		buf.WriteString(p.Calendar)
		buf.WriteString(p.FixedFrequency)
		buf.WriteString(p.FixedDayCounter)
		buf.WriteString(p.IndexID)
		buf.WriteI32(int32(p.PaymentLagDays))
		buf.WriteString(p.DiscountCurveID)

	case request.PointDatedOIS:
		p := pt.DatedOIS
		buf.WriteString(p.StartDate)
		buf.WriteString(p.EndDate)
		if err := writeRate(p.Rate); err != nil {
			return err
		}
		buf.WriteString(p.Calendar)
		buf.WriteString(p.FixedDayCounter)
		buf.WriteString(p.IndexID)
		buf.WriteString(p.DiscountCurveID)

	case request.PointBond:
		p := pt.Bond
		buf.WriteI32(int32(p.SettlementDays))
		buf.WriteDouble(p.FaceAmount)
		buf.WriteString(p.IssueDate)
		buf.WriteString(p.MaturityDate)
		buf.WriteDouble(p.CouponRate)
		buf.WriteString(p.Frequency)
		buf.WriteString(p.Calendar)
		buf.WriteString(p.BusinessDayAdjustment)
		buf.WriteString(p.DayCounter)
		if err := writeRate(p.CleanPrice); err != nil {
			return err
		}
		buf.WriteDouble(p.Redemption)

	case request.PointTenorBasisSwap:
		p := pt.TenorBasisSwap
		buf.WriteString(p.Tenor)
		if err := writeRate(p.Spread); err != nil {
			return err
		}
		buf.WriteString(p.BaseIndexID)
		buf.WriteString(p.QuoteIndexID)
		buf.WriteString(p.DiscountCurveID)

	case request.PointFxSwap:
		p := pt.FxSwap
		buf.WriteString(p.Tenor)
		buf.WriteDouble(p.SpotFX)
		if err := writeRate(p.ForwardPoints); err != nil {
			return err
		}
		buf.WriteString(p.Calendar)
		buf.WriteI32(int32(p.FixingDays))
		buf.WriteString(p.CollateralCurrency)
		buf.WriteString(p.DiscountCurveID)

	case request.PointCrossCcyBasis:
		p := pt.CrossCcyBasis
		buf.WriteString(p.Tenor)
		if err := writeRate(p.Spread); err != nil {
			return err
		}
		buf.WriteString(p.BaseCurrency)
		buf.WriteString(p.QuoteCurrency)
		buf.WriteString(p.BaseIndexID)
		buf.WriteString(p.QuoteIndexID)
		buf.WriteString(p.DiscountCurveID)
	}

	return nil
}

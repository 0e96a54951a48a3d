// Package bootstrap is the per-request orchestrator: it pre-publishes a
// CurveHandle for every declared curve, topologically sequences curve
// builds through depgraph, resolves each curve's cache key and either
// reuses a cached result or builds it via helperbuild+numerical, and links
// the handle so everything already holding it sees the solved curve.
// Grounded on original_source/parser/curve_bootstrapper.h's orchestration
// loop and bootstrap_curves_request.cpp's pre-publish-then-link sequencing.
package bootstrap

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/curvecore/cache"
	"github.com/meenmo/curvecore/cachekey"
	"github.com/meenmo/curvecore/depgraph"
	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/helperbuild"
	"github.com/meenmo/curvecore/logging"
	"github.com/meenmo/curvecore/numerical"
	"github.com/meenmo/curvecore/registry"
	"github.com/meenmo/curvecore/request"
	"github.com/meenmo/curvecore/utils"
)

// Run builds every curve in specs and returns the populated CurveRegistry
// plus a per-curve CurveResult map. A curve whose dependency failed or was
// never reached is reported Unavailable rather than attempted, so one bad
// calibration point never silently corrupts an unrelated curve.
func Run(ctx context.Context, asOf time.Time, specs []request.CurveSpecDTO, quotes *registry.QuoteRegistry, indices *registry.IndexRegistry, store *cache.Store, cfg numerical.SolverConfig, logger zerolog.Logger) (*registry.CurveRegistry, map[string]CurveResult, error) {
	logger, requestID := logging.WithRequest(logger, "bootstrap")
	logger.Info().Int("curve_count", len(specs)).Msg("bootstrap request started")
	curveReg := registry.NewCurveRegistry()
	handles := make(map[string]*registry.CurveHandle, len(specs))
	specByID := make(map[string]request.CurveSpecDTO, len(specs))
	for _, s := range specs {
		handles[s.ID] = curveReg.PutEmpty(s.ID)
		specByID[s.ID] = s
	}

	order, err := depgraph.Sort(specs)
	if err != nil {
		return curveReg, nil, err
	}

	asOfISO := utils.FormatISODate(asOf)
	results := make(map[string]CurveResult, len(specs))
	unavailable := make(map[string]bool)

	forwardingCurveOf := make(map[string]string)
	for _, s := range specs {
		for _, pt := range s.Points {
			if indexID, _, ok := helperbuild.ForwardedIndex(pt); ok {
				if _, exists := forwardingCurveOf[indexID]; !exists {
					forwardingCurveOf[indexID] = s.ID
				}
			}
		}
	}

	for _, id := range order {
		if err := ctx.Err(); err != nil {
			return curveReg, nil, faults.New(faults.Cancellation, err)
		}
		spec := specByID[id]
		log := logger.With().Str("curve_id", id).Logger()

		depIDs := curveDeps(spec)
		for _, pt := range spec.Points {
			if fwd, ok := forwardingCurveOf[helperbuild.BaseIndexID(pt)]; ok && fwd != id {
				depIDs = append(depIDs, fwd)
			}
		}
		blocked := false
		for _, dep := range depIDs {
			if unavailable[dep] {
				blocked = true
				break
			}
		}
		if blocked {
			results[id] = CurveResult{ID: id, State: Unavailable, Err: faults.Itemf(faults.DependencyFailure, id, "upstream curve dependency failed")}
			unavailable[id] = true
			log.Warn().Msg("curve skipped: upstream dependency unavailable")
			continue
		}

		depKeys := make(map[string]string, len(depIDs))
		for _, dep := range depIDs {
			depKeys[dep] = results[dep].CacheKey
		}

		key, err := cachekey.Compute(asOfISO, spec, quotes, indices, depKeys)
		if err != nil {
			results[id] = CurveResult{ID: id, State: Failed, Err: err}
			unavailable[id] = true
			log.Error().Err(err).Msg("cache key computation failed")
			continue
		}

		_, fromCache := store.Get(key)
		data, err := store.GetOrBuild(ctx, key, func(buildCtx context.Context) (numerical.CachedCurveData, error) {
			curve, berr := buildOne(spec, asOf, quotes, indices, curveReg, cfg)
			if berr != nil {
				return numerical.CachedCurveData{}, berr
			}
			return numerical.Serialize(curve), nil
		})
		if err != nil {
			results[id] = CurveResult{ID: id, State: Failed, CacheKey: key, Err: err}
			unavailable[id] = true
			log.Error().Err(err).Msg("curve bootstrap failed")
			continue
		}

		curve, err := numerical.Reconstruct(data)
		if err != nil {
			results[id] = CurveResult{ID: id, State: Failed, CacheKey: key, Err: err}
			unavailable[id] = true
			continue
		}

		if err := handles[id].Link(curve); err != nil {
			results[id] = CurveResult{ID: id, State: Failed, CacheKey: key, Err: err}
			unavailable[id] = true
			continue
		}

		if err := bindForwardedIndices(spec, id, indices); err != nil {
			results[id] = CurveResult{ID: id, State: Failed, CacheKey: key, Err: err}
			unavailable[id] = true
			continue
		}

		results[id] = CurveResult{ID: id, State: Linked, CacheKey: key, FromCache: fromCache}
		log.Info().Bool("from_cache", fromCache).Msg("curve linked")
	}

	logger.Info().Str("request_id", requestID).Msg("bootstrap request finished")
	return curveReg, results, nil
}

// bindForwardedIndices records curveID as the forwarding curve for every
// index the just-linked spec projects (a Swap point's Ibor index, an OIS
// point's overnight index), so a later curve's TenorBasisSwap/CrossCcyBasis
// base-index reference can resolve to it through the shared index registry.
func bindForwardedIndices(spec request.CurveSpecDTO, curveID string, indices *registry.IndexRegistry) error {
	seen := make(map[string]bool)
	for _, pt := range spec.Points {
		indexID, overnight, ok := helperbuild.ForwardedIndex(pt)
		if !ok || seen[indexID] {
			continue
		}
		seen[indexID] = true

		var bound *registry.Index
		var err error
		if overnight {
			bound, err = indices.OvernightWithCurve(indexID, curveID)
		} else {
			bound, err = indices.IborWithCurve(indexID, curveID)
		}
		if err != nil {
			return err
		}
		indices.Put(bound)
	}
	return nil
}

func curveDeps(spec request.CurveSpecDTO) []string {
	seen := make(map[string]bool)
	var deps []string
	for _, pt := range spec.Points {
		for _, d := range helperbuild.Deps(pt) {
			if !seen[d] {
				seen[d] = true
				deps = append(deps, d)
			}
		}
	}
	return deps
}

// externalRefs picks the curve's external dependencies, if any: every
// calibration point in a curve spec is expected to reference the same
// external curve(s), so the first point that names one is authoritative.
// discountCurveID is the exogenous discount curve shared by Swap, OIS,
// DatedOIS, TenorBasisSwap and CrossCcyBasis points. baseIndexID is the
// base-leg index TenorBasisSwap/CrossCcyBasis points need resolved, through
// the index registry, to the curve that forwards it. baseCurveID is
// FxSwap's base-currency discount curve: an explicit curve id (not an
// index), since covered interest rate parity needs another currency's own
// discount curve, not a forwarding curve.
func externalRefs(spec request.CurveSpecDTO) (discountCurveID, baseIndexID, baseCurveID string) {
	for _, pt := range spec.Points {
		switch pt.Variant {
		case request.PointSwap:
			if pt.Swap != nil && pt.Swap.DiscountCurveID != "" {
				discountCurveID = pt.Swap.DiscountCurveID
			}
		case request.PointOIS:
			if pt.OIS != nil && pt.OIS.DiscountCurveID != "" {
				discountCurveID = pt.OIS.DiscountCurveID
			}
		case request.PointDatedOIS:
			if pt.DatedOIS != nil && pt.DatedOIS.DiscountCurveID != "" {
				discountCurveID = pt.DatedOIS.DiscountCurveID
			}
		case request.PointTenorBasisSwap:
			if pt.TenorBasisSwap != nil {
				if pt.TenorBasisSwap.DiscountCurveID != "" {
					discountCurveID = pt.TenorBasisSwap.DiscountCurveID
				}
				baseIndexID = pt.TenorBasisSwap.BaseIndexID
			}
		case request.PointFxSwap:
			if pt.FxSwap != nil && pt.FxSwap.DiscountCurveID != "" {
				baseCurveID = pt.FxSwap.DiscountCurveID
			}
		case request.PointCrossCcyBasis:
			if pt.CrossCcyBasis != nil {
				if pt.CrossCcyBasis.DiscountCurveID != "" {
					discountCurveID = pt.CrossCcyBasis.DiscountCurveID
				}
				baseIndexID = pt.CrossCcyBasis.BaseIndexID
			}
		}
		if discountCurveID != "" || baseIndexID != "" || baseCurveID != "" {
			return discountCurveID, baseIndexID, baseCurveID
		}
	}
	return "", "", ""
}

func buildOne(spec request.CurveSpecDTO, asOf time.Time, quotes *registry.QuoteRegistry, indices *registry.IndexRegistry, curveReg *registry.CurveRegistry, cfg numerical.SolverConfig) (*numerical.Curve, error) {
	helpers := make([]numerical.Helper, 0, len(spec.Points))
	for _, pt := range spec.Points {
		built, err := helperbuild.Build(pt, asOf, quotes, indices)
		if err != nil {
			return nil, err
		}
		helpers = append(helpers, built.Helper)
	}

	discountCurveID, baseIndexID, baseCurveID := externalRefs(spec)

	var discount numerical.ExternalCurve
	if discountCurveID != "" {
		h, err := curveReg.Handle(discountCurveID)
		if err != nil {
			return nil, err
		}
		c, linked := h.Curve()
		if !linked {
			return nil, faults.Itemf(faults.DependencyFailure, discountCurveID, "discount curve not yet built")
		}
		discount = asExternalCurve(c)
	}

	var base numerical.ExternalCurve
	switch {
	case baseIndexID != "":
		idx, err := indices.Get(baseIndexID)
		if err != nil {
			return nil, err
		}
		if idx.ForwardingCurveID == "" {
			return nil, faults.Itemf(faults.DependencyFailure, baseIndexID, "base index has no forwarding curve bound yet")
		}
		h, err := curveReg.Handle(idx.ForwardingCurveID)
		if err != nil {
			return nil, err
		}
		c, linked := h.Curve()
		if !linked {
			return nil, faults.Itemf(faults.DependencyFailure, idx.ForwardingCurveID, "base forwarding curve not yet built")
		}
		base = asExternalCurve(c)
	case baseCurveID != "":
		h, err := curveReg.Handle(baseCurveID)
		if err != nil {
			return nil, err
		}
		c, linked := h.Curve()
		if !linked {
			return nil, faults.Itemf(faults.DependencyFailure, baseCurveID, "base currency discount curve not yet built")
		}
		base = asExternalCurve(c)
	}

	interpKind := numerical.Interpolator(spec.Interpolator)
	return numerical.Bootstrap(asOf, helpers, interpKind, spec.DayCounter, cfg, discount, base)
}

// asExternalCurve adapts a registry.DiscountCurve to numerical.ExternalCurve
// (both reduce to DF(time.Time) float64; kept as separate interfaces so
// registry and numerical never import one another).
func asExternalCurve(c registry.DiscountCurve) numerical.ExternalCurve {
	return c
}

// Package pricing assembles a per-request PricingRegistry: every other
// registry populated from a decoded PricingSection, plus the bootstrapped
// curves. Grounded on original_source/parser/pricing_registry.cpp's
// top-level assembly sequence (quotes, then indices, then swap indices,
// then curves, then vol surfaces, then models — each stage can reference
// anything built by an earlier one).
package pricing

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/meenmo/curvecore/bootstrap"
	"github.com/meenmo/curvecore/cache"
	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/model"
	"github.com/meenmo/curvecore/numerical"
	"github.com/meenmo/curvecore/registry"
	"github.com/meenmo/curvecore/request"
	"github.com/meenmo/curvecore/utils"
	"github.com/meenmo/curvecore/vol"
)

// Registry is the fully assembled per-request pricing context: every
// sub-registry a calibration point, grid query, or (out-of-scope)
// instrument-pricing engine can reach through.
type Registry struct {
	AsOf        time.Time
	Quotes      *registry.QuoteRegistry
	Indices     *registry.IndexRegistry
	SwapIndices *registry.SwapIndexRegistry
	Curves      *registry.CurveRegistry
	Vols        *vol.Registry
	Models      *model.Registry

	CurveResults map[string]bootstrap.CurveResult
}

// Assemble builds a full Registry from a decoded PricingSection, running
// the curve bootstrap through the cache store and returning per-curve
// results alongside the registry.
func Assemble(ctx context.Context, section request.PricingSection, store *cache.Store, cfg numerical.SolverConfig, logger zerolog.Logger) (*Registry, error) {
	asOf, err := utils.ParseISODate(section.AsOfDate)
	if err != nil {
		return nil, faults.New(faults.InputValidation, err)
	}

	quotes := registry.NewQuoteRegistry()
	for _, q := range section.Quotes {
		if err := quotes.Upsert(q.ID, q.Value, ""); err != nil {
			return nil, err
		}
	}

	indexDefs := make([]registry.IndexDefinitionInput, len(section.Indices))
	for i, d := range section.Indices {
		fixings := make([]registry.FixingInput, len(d.Fixings))
		for j, f := range d.Fixings {
			fixings[j] = registry.FixingInput{Date: f.Date, Value: f.Value}
		}
		indexDefs[i] = registry.IndexDefinitionInput{
			ID:                    d.ID,
			Name:                  d.Name,
			Kind:                  registry.IndexKind(d.Kind),
			Currency:              d.Currency,
			Tenor:                 d.Tenor,
			FixingDays:            d.FixingDays,
			Calendar:              d.Calendar,
			BusinessDayAdjustment: d.BusinessDayAdjustment,
			DayCounter:            d.DayCounter,
			EndOfMonth:            d.EndOfMonth,
			Fixings:               fixings,
		}
	}
	indices, err := registry.BuildIndexRegistry(indexDefs)
	if err != nil {
		return nil, err
	}

	swapIndexDefs := make([]registry.SwapIndexDefinitionInput, len(section.SwapIndices))
	for i, d := range section.SwapIndices {
		swapIndexDefs[i] = registry.SwapIndexDefinitionInput{
			ID:                    d.ID,
			Kind:                  d.Kind,
			FloatIndexID:          d.FloatIndexID,
			SpotDays:              d.SpotDays,
			Calendar:              d.Calendar,
			BusinessDayAdjustment: d.BusinessDayAdjustment,
			EndOfMonth:            d.EndOfMonth,
			FixedLeg: registry.SwapIndexFixedLeg{
				Frequency:             d.FixedLeg.Frequency,
				DayCounter:            d.FixedLeg.DayCounter,
				Calendar:              d.FixedLeg.Calendar,
				BusinessDayAdjustment: d.FixedLeg.BusinessDayAdjustment,
				EndOfMonth:            d.FixedLeg.EndOfMonth,
			},
			FloatLeg: registry.SwapIndexFloatLeg{
				Tenor:                 d.FloatLeg.Tenor,
				Calendar:              d.FloatLeg.Calendar,
				BusinessDayAdjustment: d.FloatLeg.BusinessDayAdjustment,
				EndOfMonth:            d.FloatLeg.EndOfMonth,
			},
		}
	}
	swapIndices, err := registry.BuildSwapIndexRegistry(swapIndexDefs, indices)
	if err != nil {
		return nil, err
	}

	curves, curveResults, err := bootstrap.Run(ctx, asOf, section.Curves, quotes, indices, store, cfg, logger)
	if err != nil {
		return nil, err
	}

	vols, err := vol.Build(section.VolSurfaces)
	if err != nil {
		return nil, err
	}

	models, err := model.Build(section.Models, vols)
	if err != nil {
		return nil, err
	}

	return &Registry{
		AsOf:         asOf,
		Quotes:       quotes,
		Indices:      indices,
		SwapIndices:  swapIndices,
		Curves:       curves,
		Vols:         vols,
		Models:       models,
		CurveResults: curveResults,
	}, nil
}

// Package model holds declared pricing-model descriptors and the
// vol-family/displacement compatibility rules checked when a model is
// wired to a vol surface. Grounded on
// original_source/parser/pricing_registry.cpp's model-compatibility
// validation pass.
package model

import (
	"sync"

	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/request"
	"github.com/meenmo/curvecore/vol"
)

// Descriptor is the registry-held form of a declared pricing model.
type Descriptor struct {
	ID     string
	Kind   request.ModelKind
	VolID  string
	Params map[string]float64
}

// Registry stores declared model descriptors by id.
type Registry struct {
	mu     sync.RWMutex
	models map[string]*Descriptor
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{models: make(map[string]*Descriptor)}
}

// Get returns the descriptor registered under id.
func (r *Registry) Get(id string) (*Descriptor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.models[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown model id")
	}
	return d, nil
}

// Build decodes a list of ModelDTOs into a populated Registry, checking
// each model's declared vol surface for compatibility via
// CheckCompatibility.
func Build(defs []request.ModelDTO, vols *vol.Registry) (*Registry, error) {
	reg := NewRegistry()
	for _, d := range defs {
		if d.ID == "" {
			return nil, faults.New(faults.InputValidation, errEmptyID)
		}
		surface, err := vols.Get(d.VolID)
		if err != nil {
			return nil, err
		}
		if err := CheckCompatibility(d.Kind, surface.Family, surface.Displacement); err != nil {
			return nil, faults.Itemf(faults.CompatibilityViolation, d.ID, "%s", err)
		}
		reg.models[d.ID] = &Descriptor{ID: d.ID, Kind: d.Kind, VolID: d.VolID, Params: d.Params}
	}
	return reg, nil
}

var errEmptyID = compatError("model descriptor missing id")

type compatError string

func (e compatError) Error() string { return string(e) }

// CheckCompatibility enforces the three model/vol-family pairing rules:
// Bachelier only pairs with a Normal vol family; Black only with a
// shifted-lognormal surface quoted at zero displacement; Shifted-Black
// only with a shifted-lognormal surface quoted at a positive displacement.
func CheckCompatibility(kind request.ModelKind, family request.VolFamily, displacement float64) error {
	switch kind {
	case request.ModelBachelier:
		if family != request.VolNormal {
			return compatError("Bachelier model requires a Normal vol family")
		}
	case request.ModelBlack:
		if family != request.VolShiftedLognormal {
			return compatError("Black model requires a shifted-lognormal vol family")
		}
		if displacement != 0 {
			return compatError("Black model requires zero displacement")
		}
	case request.ModelShiftedBlack:
		if family != request.VolShiftedLognormal {
			return compatError("Shifted-Black model requires a shifted-lognormal vol family")
		}
		if displacement <= 0 {
			return compatError("Shifted-Black model requires positive displacement")
		}
	default:
		return compatError("unrecognized model kind")
	}
	return nil
}

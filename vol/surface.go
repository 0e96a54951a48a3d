// Package vol holds declared volatility surfaces: payload dispatch
// (Optionlet/Swaption/Black) and a tenor/strike grid lookup. Grounded on
// original_source/parser/pricing_registry.cpp's VolPayload_* switch.
package vol

import (
	"fmt"
	"sync"

	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/request"
	"github.com/meenmo/curvecore/utils"
)

// Surface is the registry-held form of a declared volatility surface.
type Surface struct {
	ID           string
	Payload      request.VolSurfacePayload
	Family       request.VolFamily
	Displacement float64
	Tenors       []string
	TenorYears   []float64
	Strikes      []float64
	Vols         [][]float64
	UnderlyingID string
}

// At returns the volatility for (tenorYears, strike), bilinearly
// interpolating the declared grid and clamping to its boundary outside the
// quoted range. A 1x1 grid degenerates to a flat vol regardless of the
// query point.
func (s *Surface) At(tenorYears, strike float64) (float64, error) {
	if len(s.TenorYears) == 0 || len(s.Strikes) == 0 {
		return 0, fmt.Errorf("vol surface %s has an empty grid", s.ID)
	}
	if len(s.TenorYears) == 1 && len(s.Strikes) == 1 {
		return s.Vols[0][0], nil
	}

	ti0, ti1, tf := bracket(s.TenorYears, tenorYears)
	ki0, ki1, kf := bracket(s.Strikes, strike)

	v00 := s.Vols[ti0][ki0]
	v01 := s.Vols[ti0][ki1]
	v10 := s.Vols[ti1][ki0]
	v11 := s.Vols[ti1][ki1]

	v0 := v00 + (v01-v00)*kf
	v1 := v10 + (v11-v10)*kf
	return v0 + (v1-v0)*tf, nil
}

func bracket(xs []float64, x float64) (i0, i1 int, frac float64) {
	n := len(xs)
	if n == 1 {
		return 0, 0, 0
	}
	if x <= xs[0] {
		return 0, 1, 0
	}
	if x >= xs[n-1] {
		return n - 2, n - 1, 1
	}
	for i := 0; i < n-1; i++ {
		if x >= xs[i] && x <= xs[i+1] {
			if xs[i+1] == xs[i] {
				return i, i + 1, 0
			}
			return i, i + 1, (x - xs[i]) / (xs[i+1] - xs[i])
		}
	}
	return n - 2, n - 1, 1
}

// Registry stores declared volatility surfaces by id.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]*Surface
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{surfaces: make(map[string]*Surface)}
}

// Get returns the surface registered under id.
func (r *Registry) Get(id string) (*Surface, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.surfaces[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown vol surface id")
	}
	return s, nil
}

// Build decodes a list of VolSurfaceDTOs into a populated Registry,
// validating grid shape (len(Vols) == len(Tenors), each row's length ==
// len(Strikes)).
func Build(defs []request.VolSurfaceDTO) (*Registry, error) {
	reg := NewRegistry()
	for _, d := range defs {
		if d.ID == "" {
			return nil, faults.New(faults.InputValidation, fmt.Errorf("vol surface missing id"))
		}
		if len(d.Vols) != len(d.Tenors) {
			return nil, faults.Itemf(faults.InputValidation, d.ID, "vol grid has %d rows, expected %d (one per tenor)", len(d.Vols), len(d.Tenors))
		}
		tenorYears := make([]float64, len(d.Tenors))
		for i, t := range d.Tenors {
			tenorYears[i] = utils.TenorToYears(t)
			if i < len(d.Vols) && len(d.Vols[i]) != len(d.Strikes) {
				return nil, faults.Itemf(faults.InputValidation, d.ID, "vol grid row %d has %d columns, expected %d (one per strike)", i, len(d.Vols[i]), len(d.Strikes))
			}
		}
		reg.surfaces[d.ID] = &Surface{
			ID:           d.ID,
			Payload:      d.Payload,
			Family:       d.Family,
			Displacement: d.Displacement,
			Tenors:       d.Tenors,
			TenorYears:   tenorYears,
			Strikes:      d.Strikes,
			Vols:         d.Vols,
			UnderlyingID: d.UnderlyingID,
		}
	}
	return reg, nil
}

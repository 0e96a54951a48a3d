package registry

import (
	"fmt"
	"sync"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/market"
	"github.com/meenmo/curvecore/utils"
)

// IndexKind distinguishes an Ibor (term) index from an overnight index.
type IndexKind string

const (
	IndexIbor      IndexKind = "IBOR"
	IndexOvernight IndexKind = "OVERNIGHT"
)

// Index is the resolved, registry-held form of an IndexDefinition: static
// conventions plus historical fixings and, once a dual-curve bootstrap has
// bound one, the id of its forwarding curve.
type Index struct {
	ID                    string
	Name                  string
	Kind                  IndexKind
	Currency              string
	Tenor                 string
	FixingDays            int
	Calendar              calendar.CalendarID
	BusinessDayAdjustment market.BusinessDayAdjustment
	DayCounter            string
	EndOfMonth            bool
	Fixings               map[string]float64 // "YYYY-MM-DD" -> rate
	ForwardingCurveID     string              // set by IborWithCurve/OvernightWithCurve clones
}

// FixingOn looks up a historical fixing by ISO date, grounded on
// marketdata/krx.ReferenceRateFeed.RateOn's (value, ok) lookup contract.
func (idx *Index) FixingOn(isoDate string) (float64, bool) {
	v, ok := idx.Fixings[isoDate]
	return v, ok
}

func (idx *Index) clone() *Index {
	cp := *idx
	cp.Fixings = idx.Fixings // fixings are immutable once built; share the map
	return &cp
}

// IndexRegistry stores declared indices and resolves Ibor/Overnight typed
// lookups, grounded on original_source/parser/index_registry.h.
type IndexRegistry struct {
	mu      sync.RWMutex
	indices map[string]*Index
}

// NewIndexRegistry returns an empty registry.
func NewIndexRegistry() *IndexRegistry {
	return &IndexRegistry{indices: make(map[string]*Index)}
}

// Put registers idx under its own id, overwriting any prior entry.
func (r *IndexRegistry) Put(idx *Index) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indices[idx.ID] = idx
}

// Has reports whether id has been registered.
func (r *IndexRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.indices[id]
	return ok
}

// Get returns the index registered under id regardless of kind.
func (r *IndexRegistry) Get(id string) (*Index, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	idx, ok := r.indices[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown index id")
	}
	return idx, nil
}

// Ibor returns the Ibor index registered under id, failing if id names an
// overnight index instead.
func (r *IndexRegistry) Ibor(id string) (*Index, error) {
	idx, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if idx.Kind != IndexIbor {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "index is not an Ibor index")
	}
	return idx, nil
}

// Overnight returns the overnight index registered under id, failing if id
// names an Ibor index instead.
func (r *IndexRegistry) Overnight(id string) (*Index, error) {
	idx, err := r.Get(id)
	if err != nil {
		return nil, err
	}
	if idx.Kind != IndexOvernight {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "index is not an overnight index")
	}
	return idx, nil
}

// IborWithCurve returns a forwarding-bound clone of the named Ibor index.
// An empty forwardingCurveID returns the base index unchanged.
func (r *IndexRegistry) IborWithCurve(id, forwardingCurveID string) (*Index, error) {
	idx, err := r.Ibor(id)
	if err != nil {
		return nil, err
	}
	if forwardingCurveID == "" {
		return idx, nil
	}
	clone := idx.clone()
	clone.ForwardingCurveID = forwardingCurveID
	return clone, nil
}

// OvernightWithCurve returns a forwarding-bound clone of the named
// overnight index.
func (r *IndexRegistry) OvernightWithCurve(id, forwardingCurveID string) (*Index, error) {
	idx, err := r.Overnight(id)
	if err != nil {
		return nil, err
	}
	if forwardingCurveID == "" {
		return idx, nil
	}
	clone := idx.clone()
	clone.ForwardingCurveID = forwardingCurveID
	return clone, nil
}

// BuildIndexRegistry constructs an IndexRegistry from decoded index
// definitions, grounded on index_registry_builder.h::build: requires id and
// tenor, defaults currency to "EUR", and loads historical fixings.
func BuildIndexRegistry(defs []IndexDefinitionInput) (*IndexRegistry, error) {
	reg := NewIndexRegistry()
	for _, d := range defs {
		if d.ID == "" {
			return nil, faults.New(faults.InputValidation, fmt.Errorf("index definition missing id"))
		}
		if d.Tenor == "" {
			return nil, faults.Itemf(faults.InputValidation, d.ID, "index definition missing tenor")
		}
		ccy := d.Currency
		if ccy == "" {
			ccy = "EUR"
		}
		fixings := make(map[string]float64, len(d.Fixings))
		for _, f := range d.Fixings {
			if f.Date == "" {
				continue
			}
			if _, err := utils.ParseISODate(f.Date); err != nil {
				return nil, faults.Itemf(faults.InputValidation, d.ID, "fixing date %q does not parse: %v", f.Date, err)
			}
			fixings[f.Date] = f.Value
		}
		reg.Put(&Index{
			ID:                    d.ID,
			Name:                  d.Name,
			Kind:                  d.Kind,
			Currency:              ccy,
			Tenor:                 d.Tenor,
			FixingDays:            d.FixingDays,
			Calendar:              calendar.CalendarID(d.Calendar),
			BusinessDayAdjustment: market.BusinessDayAdjustment(d.BusinessDayAdjustment),
			DayCounter:            d.DayCounter,
			EndOfMonth:            d.EndOfMonth,
			Fixings:               fixings,
		})
	}
	return reg, nil
}

// IndexDefinitionInput is the registry-package-local view of a decoded
// index definition, decoupling this package from the request DTO package.
type IndexDefinitionInput struct {
	ID                    string
	Name                  string
	Kind                  IndexKind
	Currency              string
	Tenor                 string
	FixingDays            int
	Calendar              string
	BusinessDayAdjustment string
	DayCounter            string
	EndOfMonth            bool
	Fixings               []FixingInput
}

// FixingInput is one historical fixing entry.
type FixingInput struct {
	Date  string
	Value float64
}

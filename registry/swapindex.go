package registry

import (
	"fmt"
	"sync"

	"github.com/meenmo/curvecore/calendar"
	"github.com/meenmo/curvecore/faults"
)

// SwapIndexFixedLeg is the fixed-leg convention of a swap index.
type SwapIndexFixedLeg struct {
	Frequency             string
	DayCounter            string
	Calendar              string
	BusinessDayAdjustment string
	EndOfMonth            bool
}

// SwapIndexFloatLeg is the floating-leg convention of a swap index.
type SwapIndexFloatLeg struct {
	Tenor                 string
	Calendar              string
	BusinessDayAdjustment string
	EndOfMonth            bool
}

// SwapIndex is the resolved, validated form of a SwapIndexDefinition,
// grounded on original_source/parser/swap_index_registry.h's
// SwapIndexRuntime.
type SwapIndex struct {
	ID                    string
	Kind                  string // "IborSwapIndex" or "OvernightIndexedSwapIndex"
	FloatIndexID          string
	SpotDays              int
	Calendar              string
	BusinessDayAdjustment string
	EndOfMonth            bool
	FixedLeg              SwapIndexFixedLeg
	FloatLeg              SwapIndexFloatLeg
}

// SwapIndexRegistry stores validated swap indices.
type SwapIndexRegistry struct {
	mu      sync.RWMutex
	indices map[string]*SwapIndex
}

// NewSwapIndexRegistry returns an empty registry.
func NewSwapIndexRegistry() *SwapIndexRegistry {
	return &SwapIndexRegistry{indices: make(map[string]*SwapIndex)}
}

func (r *SwapIndexRegistry) put(si *SwapIndex) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.indices[si.ID] = si
}

// Has reports whether id has been registered.
func (r *SwapIndexRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.indices[id]
	return ok
}

// Get returns the swap index registered under id.
func (r *SwapIndexRegistry) Get(id string) (*SwapIndex, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	si, ok := r.indices[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown swap index id")
	}
	return si, nil
}

// SwapIndexDefinitionInput is the registry-package-local view of a decoded
// swap index definition.
type SwapIndexDefinitionInput struct {
	ID                    string
	Kind                  string
	FloatIndexID          string
	SpotDays              int
	Calendar              string
	BusinessDayAdjustment string
	EndOfMonth            bool
	FixedLeg              SwapIndexFixedLeg
	FloatLeg              SwapIndexFloatLeg
}

const (
	swapIndexKindOIS = "OvernightIndexedSwapIndex"
)

// BuildSwapIndexRegistry validates and registers swap index definitions
// against an already-built IndexRegistry, grounded on
// original_source/parser/swap_index_registry.cpp::SwapIndexRegistryBuilder::build.
func BuildSwapIndexRegistry(defs []SwapIndexDefinitionInput, indices *IndexRegistry) (*SwapIndexRegistry, error) {
	reg := NewSwapIndexRegistry()
	for _, d := range defs {
		if d.ID == "" {
			return nil, faults.New(faults.InputValidation, fmt.Errorf("swap index definition missing id"))
		}
		if d.FloatIndexID == "" {
			return nil, faults.Itemf(faults.InputValidation, d.ID, "swap index definition missing float_index_id")
		}

		isOIS := d.Kind == swapIndexKindOIS
		var overnightCal calendar.CalendarID
		if isOIS {
			idx, err := indices.Overnight(d.FloatIndexID)
			if err != nil {
				return nil, faults.Itemf(faults.ReferenceResolution, d.ID, "swap index float_index_id %q: %v", d.FloatIndexID, err)
			}
			overnightCal = idx.Calendar
		} else {
			if _, err := indices.Ibor(d.FloatIndexID); err != nil {
				return nil, faults.Itemf(faults.ReferenceResolution, d.ID, "swap index float_index_id %q: %v", d.FloatIndexID, err)
			}
		}

		if d.FixedLeg.Frequency == "" || d.FixedLeg.DayCounter == "" || d.FixedLeg.Calendar == "" || d.FixedLeg.BusinessDayAdjustment == "" {
			return nil, faults.Itemf(faults.InputValidation, d.ID, "swap index definition missing fixed_leg fields")
		}
		if d.FloatLeg.Tenor == "" || d.FloatLeg.Calendar == "" || d.FloatLeg.BusinessDayAdjustment == "" {
			return nil, faults.Itemf(faults.InputValidation, d.ID, "swap index definition missing float_leg fields")
		}

		if d.Calendar != d.FixedLeg.Calendar || d.BusinessDayAdjustment != d.FixedLeg.BusinessDayAdjustment || d.EndOfMonth != d.FixedLeg.EndOfMonth {
			return nil, faults.Itemf(faults.InputValidation, d.ID,
				"top-level calendar/business_day_convention/end_of_month must match fixed_leg for id: %s", d.ID)
		}
		if d.SpotDays < 0 {
			return nil, faults.Itemf(faults.InputValidation, d.ID, "swap index definition requires spot_days >= 0")
		}

		if isOIS {
			if d.FloatLeg.Calendar != d.FixedLeg.Calendar || calendar.CalendarID(d.FixedLeg.Calendar) != overnightCal {
				return nil, faults.Itemf(faults.InputValidation, d.ID,
					"OIS swap index requires float_leg, fixed_leg, and the overnight index's fixing calendar to match for id: %s", d.ID)
			}
			if d.FixedLeg.BusinessDayAdjustment != d.FloatLeg.BusinessDayAdjustment {
				return nil, faults.Itemf(faults.InputValidation, d.ID,
					"OIS swap index requires fixed_leg and float_leg business day conventions to match for id: %s", d.ID)
			}
		}

		reg.put(&SwapIndex{
			ID:                    d.ID,
			Kind:                  d.Kind,
			FloatIndexID:          d.FloatIndexID,
			SpotDays:              d.SpotDays,
			Calendar:              d.Calendar,
			BusinessDayAdjustment: d.BusinessDayAdjustment,
			EndOfMonth:            d.EndOfMonth,
			FixedLeg:              d.FixedLeg,
			FloatLeg:              d.FloatLeg,
		})
	}
	return reg, nil
}

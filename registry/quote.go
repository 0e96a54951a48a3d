// Package registry holds the per-request lookup tables the bootstrap
// orchestrator and helper builders resolve references through: quotes,
// indices, swap indices, and curve handles. It mirrors the clustering of
// original_source/parser's quote_registry.h, index_registry.h,
// swap_index_registry.h, and curve_registry.h into one concern.
package registry

import (
	"fmt"
	"sync"

	"github.com/meenmo/curvecore/faults"
)

// QuoteCell is a live-updating quote value, analogous to QuantLib's
// SimpleQuote: resolvers hold a reference to the cell rather than a copy of
// its value, so a later Set is visible to anything already holding the
// handle.
type QuoteCell struct {
	mu    sync.RWMutex
	value float64
}

// Value returns the cell's current value.
func (c *QuoteCell) Value() float64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.value
}

// Set updates the cell's value in place.
func (c *QuoteCell) Set(v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = v
}

// QuoteRegistry stores named quotes, each tagged with the kind of
// instrument it prices, detecting conflicting re-use of an id across kinds.
type QuoteRegistry struct {
	mu     sync.RWMutex
	quotes map[string]*QuoteCell
	kinds  map[string]string
}

// NewQuoteRegistry returns an empty registry.
func NewQuoteRegistry() *QuoteRegistry {
	return &QuoteRegistry{
		quotes: make(map[string]*QuoteCell),
		kinds:  make(map[string]string),
	}
}

// Upsert creates a new quote cell for id, or updates the value of an
// existing one. kind is recorded the first time id appears; any later
// upsert naming a different non-empty kind for the same id fails.
func (r *QuoteRegistry) Upsert(id string, value float64, kind string) error {
	if id == "" {
		return faults.New(faults.InputValidation, fmt.Errorf("quote id must not be empty"))
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	existingKind, known := r.kinds[id]
	if known && kind != "" && existingKind != "" && existingKind != kind {
		return faults.Itemf(faults.InputValidation, id, "quote id has conflicting types: %s vs %s", existingKind, kind)
	}

	if cell, ok := r.quotes[id]; ok {
		cell.Set(value)
	} else {
		r.quotes[id] = &QuoteCell{value: value}
	}
	if kind != "" {
		r.kinds[id] = kind
	}
	return nil
}

// Has reports whether id has been registered.
func (r *QuoteRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.quotes[id]
	return ok
}

// Handle returns the live cell for id.
func (r *QuoteRegistry) Handle(id string) (*QuoteCell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cell, ok := r.quotes[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown quote id")
	}
	return cell, nil
}

// HandleTyped returns the live cell for id, failing if id is unknown or was
// registered under a different kind.
func (r *QuoteRegistry) HandleTyped(id, kind string) (*QuoteCell, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cell, ok := r.quotes[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown quote id")
	}
	if existing := r.kinds[id]; existing != "" && kind != "" && existing != kind {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "quote id has type %s, expected %s", existing, kind)
	}
	return cell, nil
}

// Value resolves a quote reference: an inline value takes precedence, else
// the named quote is looked up (optionally type-checked) and a bump (in
// decimal, not basis points) is added once.
func (r *QuoteRegistry) Value(quoteID string, inline *float64, bump float64, kind string) (float64, error) {
	if inline != nil {
		return *inline + bump, nil
	}
	cell, err := r.HandleTyped(quoteID, kind)
	if err != nil {
		return 0, err
	}
	return cell.Value() + bump, nil
}

package registry

import (
	"sync"
	"time"

	"github.com/meenmo/curvecore/faults"
)

// DiscountCurve is the minimal contract the registry needs from a
// bootstrapped or reconstructed curve; package numerical's Curve type
// satisfies it structurally, so registry never imports numerical.
type DiscountCurve interface {
	DF(t time.Time) float64
	ZeroRateAt(t time.Time) float64
	ReferenceDate() time.Time
}

// HandleState names where a CurveHandle sits in its lifecycle.
type HandleState int

const (
	HandleEmpty HandleState = iota
	HandleLinked
)

// CurveHandle is a late-bound indirection cell: created empty, linked
// exactly once. Calibration points that reference a curve before it has
// been built hold the handle itself, not the curve, so the eventual link
// becomes visible to everything holding it — the Go analogue of
// QuantLib's RelinkableHandle.
type CurveHandle struct {
	mu    sync.RWMutex
	state HandleState
	curve DiscountCurve
}

// NewCurveHandle returns an empty handle.
func NewCurveHandle() *CurveHandle {
	return &CurveHandle{}
}

// Link binds curve to the handle. Linking an already-linked handle is a
// programming error in the orchestrator (curves are solved at most once
// per request) and returns an error rather than silently overwriting.
func (h *CurveHandle) Link(curve DiscountCurve) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == HandleLinked {
		return faults.New(faults.InputValidation, errAlreadyLinked)
	}
	h.curve = curve
	h.state = HandleLinked
	return nil
}

// Curve returns the bound curve and whether the handle has been linked.
func (h *CurveHandle) Curve() (DiscountCurve, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.curve, h.state == HandleLinked
}

var errAlreadyLinked = handleAlreadyLinkedError{}

type handleAlreadyLinkedError struct{}

func (handleAlreadyLinkedError) Error() string { return "curve handle is already linked" }

// CurveRegistry stores one handle per declared curve id. Only the
// orchestrator writes to it; helper builders and other readers only ever
// call Get/Has.
type CurveRegistry struct {
	mu     sync.RWMutex
	curves map[string]*CurveHandle
}

// NewCurveRegistry returns an empty registry.
func NewCurveRegistry() *CurveRegistry {
	return &CurveRegistry{curves: make(map[string]*CurveHandle)}
}

// PutEmpty pre-publishes an empty handle for id, returning it so the
// orchestrator can Link it later. Calling PutEmpty twice for the same id
// replaces the handle (used only during request setup, before any reads).
func (r *CurveRegistry) PutEmpty(id string) *CurveHandle {
	r.mu.Lock()
	defer r.mu.Unlock()
	h := NewCurveHandle()
	r.curves[id] = h
	return h
}

// Has reports whether id has a published handle.
func (r *CurveRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.curves[id]
	return ok
}

// Handle returns the published handle for id.
func (r *CurveRegistry) Handle(id string) (*CurveHandle, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	h, ok := r.curves[id]
	if !ok {
		return nil, faults.Itemf(faults.ReferenceResolution, id, "unknown curve id")
	}
	return h, nil
}

// IDs returns every published curve id in no particular order.
func (r *CurveRegistry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	ids := make([]string, 0, len(r.curves))
	for id := range r.curves {
		ids = append(ids, id)
	}
	return ids
}

package cachekey

import (
	"strings"
	"testing"

	"github.com/meenmo/curvecore/registry"
	"github.com/meenmo/curvecore/request"
)

func quotesWith(t *testing.T, id string, value float64) *registry.QuoteRegistry {
	t.Helper()
	reg := registry.NewQuoteRegistry()
	if err := reg.Upsert(id, value, ""); err != nil {
		t.Fatalf("upserting quote %s: %v", id, err)
	}
	return reg
}

func depositSpec(id string) request.CurveSpecDTO {
	return request.CurveSpecDTO{
		ID:           id,
		Currency:     "EUR",
		DayCounter:   "ACT/365F",
		Interpolator: "LOG_LINEAR",
		Points: []request.PointDTO{
			{
				Variant: request.PointDeposit,
				Deposit: &request.DepositPoint{
					Tenor:      "3M",
					Rate:       request.QuoteRef{QuoteID: "depo_3m"},
					Calendar:   "TARGET",
					DayCounter: "ACT/360",
				},
			},
		},
	}
}

func TestCompute_HasVersionedPrefixAndHexDigest(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	key, err := Compute("2026-01-02", depositSpec("EUR_3M"), quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(key, "yc:v1:") {
		t.Fatalf("expected key to start with yc:v1:, got %s", key)
	}
	hexPart := strings.TrimPrefix(key, "yc:v1:")
	if len(hexPart) != 64 {
		t.Fatalf("expected a 64-char sha256 hex digest, got %d chars", len(hexPart))
	}
}

func TestCompute_DeterministicForIdenticalInputs(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	spec := depositSpec("EUR_3M")
	k1, err := Compute("2026-01-02", spec, quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", spec, quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("identical inputs should produce the same key: %s vs %s", k1, k2)
	}
}

func TestCompute_ChangedQuoteValueChangesKey(t *testing.T) {
	spec := depositSpec("EUR_3M")
	k1, err := Compute("2026-01-02", spec, quotesWith(t, "depo_3m", 0.03), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", spec, quotesWith(t, "depo_3m", 0.04), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("a changed quote value should change the cache key")
	}
}

func TestCompute_BumpChangesKey(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	base := depositSpec("EUR_3M")
	bumped := depositSpec("EUR_3M")
	bumped.Points[0].Deposit.Rate.BumpBP = 1.0

	k1, err := Compute("2026-01-02", base, quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", bumped, quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("a bumped quote reference should change the cache key")
	}
}

func TestCompute_DifferentCurveIDChangesKey(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	k1, err := Compute("2026-01-02", depositSpec("EUR_3M"), quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", depositSpec("USD_3M"), quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("a different curve id should change the cache key")
	}
}

func TestCompute_ChangedDependencyKeyChangesKey(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	spec := depositSpec("EUR_6M")

	k1, err := Compute("2026-01-02", spec, quotes, nil, map[string]string{"EUR_OIS": "yc:v1:aaa"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", spec, quotes, nil, map[string]string{"EUR_OIS": "yc:v1:bbb"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("a changed upstream dependency key should change the cache key")
	}
}

func TestCompute_DependencyKeysOrderIndependent(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	spec := depositSpec("EUR_6M")
	deps := map[string]string{"EUR_OIS": "yc:v1:aaa", "EUR_6M_BASIS": "yc:v1:bbb"}

	k1, err := Compute("2026-01-02", spec, quotes, nil, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", spec, quotes, nil, deps)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("dependency map iteration order should not affect the key (deps are sorted before hashing)")
	}
}

func TestCompute_UnknownQuoteIDErrors(t *testing.T) {
	quotes := registry.NewQuoteRegistry()
	if _, err := Compute("2026-01-02", depositSpec("EUR_3M"), quotes, nil, nil); err == nil {
		t.Fatalf("expected an error when a point references an unregistered quote id")
	}
}

func swapSpecWithIndex(id, indexID string) request.CurveSpecDTO {
	return request.CurveSpecDTO{
		ID:           id,
		Currency:     "EUR",
		DayCounter:   "ACT/365F",
		Interpolator: "LOG_LINEAR",
		Points: []request.PointDTO{
			{
				Variant: request.PointSwap,
				Swap: &request.SwapPoint{
					Tenor:           "5Y",
					Rate:            request.QuoteRef{QuoteID: "swap_5y"},
					Calendar:        "TARGET",
					FixedFrequency:  "ANNUAL",
					FixedDayCounter: "ACT/360",
					IndexID:         indexID,
				},
			},
		},
	}
}

func indicesWith(t *testing.T, idx *registry.Index) *registry.IndexRegistry {
	t.Helper()
	reg := registry.NewIndexRegistry()
	reg.Put(idx)
	return reg
}

func TestCompute_ChangedReferencedIndexConventionChangesKey(t *testing.T) {
	quotes := quotesWith(t, "swap_5y", 0.03)
	spec := swapSpecWithIndex("EUR_SWAP", "EURIBOR6M")

	indicesA := indicesWith(t, &registry.Index{ID: "EURIBOR6M", Name: "6M Euribor", Kind: registry.IndexIbor, Tenor: "6M", FixingDays: 2, DayCounter: "ACT/360"})
	indicesB := indicesWith(t, &registry.Index{ID: "EURIBOR6M", Name: "6M Euribor", Kind: registry.IndexIbor, Tenor: "3M", FixingDays: 2, DayCounter: "ACT/360"})

	k1, err := Compute("2026-01-02", spec, quotes, indicesA, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", spec, quotes, indicesB, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("changing a referenced index's tenor should change the cache key even though the index id is unchanged")
	}
}

func TestCompute_SameIndexIDDifferentRegistryFixingDaysChangesKey(t *testing.T) {
	quotes := quotesWith(t, "swap_5y", 0.03)
	spec := swapSpecWithIndex("EUR_SWAP", "EURIBOR6M")

	indicesA := indicesWith(t, &registry.Index{ID: "EURIBOR6M", Name: "6M Euribor", Kind: registry.IndexIbor, Tenor: "6M", FixingDays: 0, DayCounter: "ACT/360"})
	indicesB := indicesWith(t, &registry.Index{ID: "EURIBOR6M", Name: "6M Euribor", Kind: registry.IndexIbor, Tenor: "6M", FixingDays: 2, DayCounter: "ACT/360"})

	k1, err := Compute("2026-01-02", spec, quotes, indicesA, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	k2, err := Compute("2026-01-02", spec, quotes, indicesB, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 == k2 {
		t.Fatalf("changing the referenced index's fixing days should change the cache key")
	}
}

func TestCompute_UnreferencedIndexInRegistryDoesNotAffectKey(t *testing.T) {
	quotes := quotesWith(t, "depo_3m", 0.03)
	spec := depositSpec("EUR_3M")

	k1, err := Compute("2026-01-02", spec, quotes, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	indices := indicesWith(t, &registry.Index{ID: "UNRELATED", Name: "Unrelated", Kind: registry.IndexIbor, Tenor: "3M", DayCounter: "ACT/360"})
	k2, err := Compute("2026-01-02", spec, quotes, indices, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if k1 != k2 {
		t.Fatalf("a registered index the curve's points never reference should not affect the key")
	}
}

func TestCompute_UnknownReferencedIndexErrors(t *testing.T) {
	quotes := quotesWith(t, "swap_5y", 0.03)
	spec := swapSpecWithIndex("EUR_SWAP", "EURIBOR6M")
	indices := registry.NewIndexRegistry()
	if _, err := Compute("2026-01-02", spec, quotes, indices, nil); err == nil {
		t.Fatalf("expected an error when a point references an unregistered index id")
	}
}

package numerical

import (
	"testing"
	"time"
)

func TestSerializeReconstruct_RoundTrip(t *testing.T) {
	ref := date(2026, 1, 2)
	dates := []time.Time{ref, date(2026, 7, 2), date(2027, 1, 2)}
	dfs := []float64{1.0, 0.985, 0.97}
	curve := NewCurve(ref, dates, dfs, LogLinear, "ACT/365F")

	data := Serialize(curve)
	reconstructed, err := Reconstruct(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !reconstructed.ReferenceDate().Equal(ref) {
		t.Fatalf("reference date mismatch: got %v, want %v", reconstructed.ReferenceDate(), ref)
	}
	for i, d := range dates {
		if !reconstructed.Dates()[i].Equal(d) {
			t.Fatalf("pillar date %d mismatch: got %v, want %v", i, reconstructed.Dates()[i], d)
		}
		if reconstructed.DiscountFactors()[i] != dfs[i] {
			t.Fatalf("pillar DF %d mismatch: got %v, want %v", i, reconstructed.DiscountFactors()[i], dfs[i])
		}
	}
}

func TestReconstruct_AliasesForwardFlatToLogLinear(t *testing.T) {
	ref := date(2026, 1, 2)
	dates := []time.Time{ref, date(2027, 1, 2)}
	dfs := []float64{1.0, 0.95}
	curve := NewCurve(ref, dates, dfs, ForwardFlat, "ACT/365F")

	data := Serialize(curve)
	if data.Interpolator != string(ForwardFlat) {
		t.Fatalf("Serialize should preserve the original interpolator tag, got %v", data.Interpolator)
	}

	reconstructed, err := Reconstruct(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reconstructed.Interpolator() != LogLinear {
		t.Fatalf("Reconstruct should alias ForwardFlat to LogLinear, got %v", reconstructed.Interpolator())
	}
}

func TestReconstruct_OtherInterpolatorsPreserved(t *testing.T) {
	ref := date(2026, 1, 2)
	dates := []time.Time{ref, date(2027, 1, 2)}
	dfs := []float64{1.0, 0.95}

	for _, kind := range []Interpolator{LogLinear, Linear, BackwardFlat, LogCubic} {
		curve := NewCurve(ref, dates, dfs, kind, "ACT/365F")
		data := Serialize(curve)
		reconstructed, err := Reconstruct(data)
		if err != nil {
			t.Fatalf("unexpected error for %v: %v", kind, err)
		}
		if reconstructed.Interpolator() != kind {
			t.Fatalf("Reconstruct should preserve %v, got %v", kind, reconstructed.Interpolator())
		}
	}
}

func TestReconstruct_InvalidDateErrors(t *testing.T) {
	data := CachedCurveData{
		ReferenceDate:   "not-a-date",
		DayCounter:      "ACT/365F",
		Interpolator:    string(LogLinear),
		Dates:           []string{"not-a-date"},
		DiscountFactors: []float64{1.0},
	}
	if _, err := Reconstruct(data); err == nil {
		t.Fatalf("expected an error for an unparseable reference date")
	}
}

package numerical

import (
	"math"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestInterpolateDF_ExactPillar(t *testing.T) {
	ref := date(2026, 1, 1)
	dates := []time.Time{ref, date(2026, 7, 1), date(2027, 1, 1)}
	dfs := []float64{1.0, 0.98, 0.95}

	for i, d := range dates {
		got := interpolateDF(ref, dates, dfs, "ACT/365F", LogLinear, d)
		if got != dfs[i] {
			t.Fatalf("exact pillar %v: got %v, want %v", d, got, dfs[i])
		}
	}
}

func TestInterpolateDF_LogLinearBetweenPillars(t *testing.T) {
	ref := date(2026, 1, 1)
	d1 := date(2026, 1, 1)
	d2 := date(2027, 1, 1)
	dates := []time.Time{d1, d2}
	dfs := []float64{1.0, 0.90}

	mid := date(2026, 7, 2) // roughly the midpoint
	got := interpolateDF(ref, dates, dfs, "ACT/365F", LogLinear, mid)

	if got >= dfs[0] || got <= dfs[1] {
		t.Fatalf("expected midpoint DF strictly between pillars, got %v", got)
	}
	// log-linear interpolation is monotonic in log-space: log(got) should sit
	// roughly halfway between log(dfs[0]) and log(dfs[1]).
	frac := (math.Log(dfs[0]) - math.Log(got)) / (math.Log(dfs[0]) - math.Log(dfs[1]))
	if frac < 0.45 || frac > 0.55 {
		t.Fatalf("expected roughly half-way log-linear fraction, got %v", frac)
	}
}

func TestInterpolateDF_Linear(t *testing.T) {
	ref := date(2026, 1, 1)
	d1 := date(2026, 1, 1)
	d2 := date(2027, 1, 1)
	dates := []time.Time{d1, d2}
	dfs := []float64{1.0, 0.90}

	mid := date(2026, 7, 2)
	got := interpolateDF(ref, dates, dfs, "ACT/365F", Linear, mid)
	if got <= 0.90 || got >= 1.0 {
		t.Fatalf("expected linear interpolation strictly between pillars, got %v", got)
	}
}

func TestInterpolateDF_BackwardFlat(t *testing.T) {
	ref := date(2026, 1, 1)
	d1 := date(2026, 1, 1)
	d2 := date(2027, 1, 1)
	dates := []time.Time{d1, d2}
	dfs := []float64{1.0, 0.90}

	mid := date(2026, 6, 1)
	got := interpolateDF(ref, dates, dfs, "ACT/365F", BackwardFlat, mid)
	if got != dfs[1] {
		t.Fatalf("backward-flat should hold the right-hand pillar, got %v want %v", got, dfs[1])
	}
}

func TestInterpolateDF_ForwardFlat(t *testing.T) {
	ref := date(2026, 1, 1)
	d1 := date(2026, 1, 1)
	d2 := date(2027, 1, 1)
	dates := []time.Time{d1, d2}
	dfs := []float64{1.0, 0.90}

	mid := date(2026, 6, 1)
	got := interpolateDF(ref, dates, dfs, "ACT/365F", ForwardFlat, mid)
	if got != dfs[0] {
		t.Fatalf("forward-flat should hold the left-hand pillar, got %v want %v", got, dfs[0])
	}
}

func TestInterpolateDF_LogCubicMonotonic(t *testing.T) {
	ref := date(2026, 1, 1)
	dates := []time.Time{
		ref,
		date(2026, 7, 1),
		date(2027, 1, 1),
		date(2028, 1, 1),
		date(2030, 1, 1),
	}
	dfs := []float64{1.0, 0.99, 0.97, 0.93, 0.85}

	prev := 1.0
	for d := dates[0]; !d.After(dates[len(dates)-1]); d = d.AddDate(0, 1, 0) {
		got := interpolateDF(ref, dates, dfs, "ACT/365F", LogCubic, d)
		if got > prev+1e-9 {
			t.Fatalf("log-cubic DF should be non-increasing along a declining pillar set: at %v got %v after %v", d, got, prev)
		}
		prev = got
	}
}

func TestInterpolateDF_SinglePillar(t *testing.T) {
	ref := date(2026, 1, 1)
	got := interpolateDF(ref, []time.Time{ref}, []float64{1.0}, "ACT/365F", LogLinear, date(2027, 1, 1))
	if got != 1.0 {
		t.Fatalf("single-pillar curve should return the only DF regardless of query date, got %v", got)
	}
}

func TestInterpolateDF_ExtrapolatesBeyondLastPillar(t *testing.T) {
	ref := date(2026, 1, 1)
	dates := []time.Time{ref, date(2027, 1, 1), date(2028, 1, 1)}
	dfs := []float64{1.0, 0.95, 0.90}

	beyond := date(2030, 1, 1)
	got := interpolateDF(ref, dates, dfs, "ACT/365F", LogLinear, beyond)
	if got >= dfs[len(dfs)-1] {
		t.Fatalf("extrapolated DF beyond the last pillar should continue declining, got %v", got)
	}
}

func TestBracket(t *testing.T) {
	dates := []time.Time{
		date(2026, 1, 1),
		date(2026, 6, 1),
		date(2027, 1, 1),
		date(2028, 1, 1),
	}

	cases := []struct {
		name   string
		t      time.Time
		i1, i2 int
	}{
		{"before first", date(2025, 1, 1), 0, 1},
		{"after last", date(2029, 1, 1), 2, 3},
		{"between second and third", date(2026, 9, 1), 1, 2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			i1, i2 := bracket(dates, tc.t)
			if i1 != tc.i1 || i2 != tc.i2 {
				t.Fatalf("bracket(%v) = (%d, %d), want (%d, %d)", tc.t, i1, i2, tc.i1, tc.i2)
			}
		})
	}
}

package numerical

import "testing"

func TestNewtonSolveDF_LinearRoot(t *testing.T) {
	// f(x) = x - 0.9, root at x = 0.9, derivative constant 1.
	f := func(x float64) (float64, float64) { return x - 0.9, 1 }
	got := newtonSolveDF(1.0, DefaultSolverConfig, f)
	if abs(got-0.9) > 1e-9 {
		t.Fatalf("newtonSolveDF linear root: got %v, want 0.9", got)
	}
}

func TestNewtonSolveDF_QuadraticRoot(t *testing.T) {
	// f(x) = x^2 - 0.81, root at x = 0.9 for x > 0.
	f := func(x float64) (float64, float64) { return x*x - 0.81, 2 * x }
	got := newtonSolveDF(1.0, DefaultSolverConfig, f)
	if abs(got-0.9) > 1e-6 {
		t.Fatalf("newtonSolveDF quadratic root: got %v, want 0.9", got)
	}
}

func TestNewtonSolveDF_FlatDerivativeStopsIteration(t *testing.T) {
	f := func(x float64) (float64, float64) { return 1.0, 0 }
	got := newtonSolveDF(0.5, DefaultSolverConfig, f)
	if got != 0.5 {
		t.Fatalf("zero-derivative residual should leave the guess unchanged: got %v, want 0.5", got)
	}
}

func TestNewtonSolveDF_NonPositiveGuessDefaultsToOne(t *testing.T) {
	f := func(x float64) (float64, float64) { return x - 1.0, 1 }
	got := newtonSolveDF(-5, DefaultSolverConfig, f)
	if abs(got-1.0) > 1e-9 {
		t.Fatalf("non-positive initial guess should be replaced with 1.0 before solving: got %v", got)
	}
}

func TestNewtonSolveDF_GuessFloorsAtMinDiscountFactor(t *testing.T) {
	cfg := DefaultSolverConfig
	cfg.MaxIterations = 5
	// A root far below MinDiscountFactor should be clamped there rather
	// than driving the guess negative or to NaN.
	f := func(x float64) (float64, float64) { return x - 1e-15, 1 }
	got := newtonSolveDF(1.0, cfg, f)
	if got < cfg.MinDiscountFactor {
		t.Fatalf("solved guess %v fell below the configured floor %v", got, cfg.MinDiscountFactor)
	}
}

func TestAbsSign(t *testing.T) {
	if abs(-3) != 3 || abs(3) != 3 {
		t.Fatalf("abs should be symmetric")
	}
	if sign(-3) != -1 || sign(3) != 1 || sign(0) != 1 {
		t.Fatalf("sign(0) should default to 1 per the non-negative convention used by the damping step")
	}
}

func TestIsBad(t *testing.T) {
	if !isBad(1e301) {
		t.Fatalf("isBad should flag values beyond the overflow guard")
	}
	if isBad(0.5) {
		t.Fatalf("isBad should not flag ordinary finite values")
	}
}

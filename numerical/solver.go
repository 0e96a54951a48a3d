package numerical

// SolverConfig carries the Newton-Raphson tolerances, passed in by the
// caller (package bootstrap) rather than imported globally, so numerical
// stays independent of process configuration.
type SolverConfig struct {
	ConvergenceTolerance float64
	MaxIterations        int
	DampingFactor        float64
	MinDiscountFactor    float64
	DerivativeThreshold  float64
}

// DefaultSolverConfig mirrors swap/config.DefaultConfig's solver fields.
var DefaultSolverConfig = SolverConfig{
	ConvergenceTolerance: 1e-12,
	MaxIterations:        100,
	DampingFactor:        0.5,
	MinDiscountFactor:    1e-9,
	DerivativeThreshold:  1e-15,
}

// newtonSolveDF runs damped Newton-Raphson for a single unknown discount
// factor, given a function f(x) -> (residual, derivative). Grounded on
// swap/curve.Curve.solveOISDiscountFactor / solvePseudoDiscountFactor.
func newtonSolveDF(initialGuess float64, cfg SolverConfig, f func(x float64) (float64, float64)) float64 {
	guess := initialGuess
	if guess <= 0 {
		guess = 1.0
	}
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		val, deriv := f(guess)

		if isBad(val) || isBad(deriv) {
			guess = 0.9 * guess
			if guess < cfg.MinDiscountFactor {
				guess = cfg.MinDiscountFactor
			}
			continue
		}

		if abs(val) < cfg.ConvergenceTolerance {
			return guess
		}
		if abs(deriv) < cfg.DerivativeThreshold {
			break
		}

		delta := val / deriv
		if abs(delta) > cfg.DampingFactor*guess {
			delta = cfg.DampingFactor * guess * sign(delta)
		}
		guess -= delta

		if isBad(guess) || guess <= cfg.MinDiscountFactor {
			guess = cfg.MinDiscountFactor
		}
	}
	return guess
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v float64) float64 {
	if v < 0 {
		return -1
	}
	return 1
}

func isBad(v float64) bool {
	return v != v || v > 1e300 || v < -1e300 // NaN or overflow, without importing math twice
}

// Package config loads the process-wide configuration for the curve
// construction and caching core: solver tolerances plus the cache/log
// knobs the core itself needs. It is read once at startup and treated as
// immutable afterward.
package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds solver, cache, and logging parameters for one process.
type Config struct {
	// ConvergenceTolerance is the NPV tolerance for Newton-Raphson bootstrap
	// convergence.
	ConvergenceTolerance float64

	// MaxBootstrapIterations caps iterations per calibration point.
	MaxBootstrapIterations int

	// DampingFactor limits Newton step size to prevent overshooting.
	DampingFactor float64

	// MinDiscountFactor floors discount factors to avoid division by
	// near-zero during bootstrap.
	MinDiscountFactor float64

	// DerivativeThreshold is the minimum derivative magnitude Newton
	// iteration will divide by before giving up.
	DerivativeThreshold float64

	// CacheCapacity is the maximum number of entries the curve cache keeps
	// before evicting the least-recently-used one.
	CacheCapacity int

	// LogLevel names a zerolog level ("debug", "info", "warn", "error").
	LogLevel string

	// MaxRangeGridPoints caps BootstrapCurves range-grid expansion.
	MaxRangeGridPoints int
}

// Default provides production-ready values: cache capacity 1024, Newton
// tolerances tight enough for pillar-level accuracy, info-level logging.
var Default = Config{
	ConvergenceTolerance:   1e-12,
	MaxBootstrapIterations: 100,
	DampingFactor:          0.5,
	MinDiscountFactor:      1e-9,
	DerivativeThreshold:    1e-15,
	CacheCapacity:          1024,
	LogLevel:               "info",
	MaxRangeGridPoints:     50000,
}

var active = Default

// Load reads a .env file (if present) then environment variables, falling
// back to Default for anything unset, and installs the result as the
// active process configuration.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Default
	cfg.ConvergenceTolerance = getEnvAsFloat("CURVECORE_CONVERGENCE_TOLERANCE", cfg.ConvergenceTolerance)
	cfg.MaxBootstrapIterations = getEnvAsInt("CURVECORE_MAX_BOOTSTRAP_ITERATIONS", cfg.MaxBootstrapIterations)
	cfg.DampingFactor = getEnvAsFloat("CURVECORE_DAMPING_FACTOR", cfg.DampingFactor)
	cfg.MinDiscountFactor = getEnvAsFloat("CURVECORE_MIN_DISCOUNT_FACTOR", cfg.MinDiscountFactor)
	cfg.DerivativeThreshold = getEnvAsFloat("CURVECORE_DERIVATIVE_THRESHOLD", cfg.DerivativeThreshold)
	cfg.CacheCapacity = getEnvAsInt("CURVECORE_CACHE_CAPACITY", cfg.CacheCapacity)
	cfg.LogLevel = getEnv("CURVECORE_LOG_LEVEL", cfg.LogLevel)
	cfg.MaxRangeGridPoints = getEnvAsInt("CURVECORE_MAX_RANGE_GRID_POINTS", cfg.MaxRangeGridPoints)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	active = cfg
	return cfg, nil
}

// Validate checks invariants a malformed environment could violate.
func (c Config) Validate() error {
	if c.CacheCapacity <= 0 {
		return fmt.Errorf("CURVECORE_CACHE_CAPACITY must be positive, got %d", c.CacheCapacity)
	}
	if c.MaxBootstrapIterations <= 0 {
		return fmt.Errorf("CURVECORE_MAX_BOOTSTRAP_ITERATIONS must be positive, got %d", c.MaxBootstrapIterations)
	}
	if c.MaxRangeGridPoints <= 0 {
		return fmt.Errorf("CURVECORE_MAX_RANGE_GRID_POINTS must be positive, got %d", c.MaxRangeGridPoints)
	}
	return nil
}

// Active returns the currently installed process configuration.
func Active() Config {
	return active
}

// SetActive overrides the process configuration directly, bypassing env
// loading; tests use this to exercise non-default tolerances/caps.
func SetActive(c Config) {
	active = c
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

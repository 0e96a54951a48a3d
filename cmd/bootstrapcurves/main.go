// Command bootstrapcurves is a thin end-to-end demo of the BootstrapCurves
// path: decode a msgpack-encoded PricingSection + query, assemble the
// pricing registry, bootstrap every declared curve, sample the requested
// grid, and print it. Analogous in shape to cmd/npv's subcommand runner.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/meenmo/curvecore/bootstrap"
	"github.com/meenmo/curvecore/cache"
	"github.com/meenmo/curvecore/config"
	"github.com/meenmo/curvecore/grid"
	"github.com/meenmo/curvecore/logging"
	"github.com/meenmo/curvecore/numerical"
	"github.com/meenmo/curvecore/pricing"
	"github.com/meenmo/curvecore/request"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("bootstrapcurves", flag.ContinueOnError)
	fs.SetOutput(stderr)
	sectionPath := fs.String("section", "", "path to a msgpack-encoded PricingSection")
	queryPath := fs.String("query", "", "path to a msgpack-encoded BootstrapCurvesQuery")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if *sectionPath == "" || *queryPath == "" {
		fmt.Fprintln(stderr, "Usage: bootstrapcurves -section <file> -query <file>")
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	var section request.PricingSection
	if err := decodeFile(*sectionPath, &section); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	var query request.BootstrapCurvesQuery
	if err := decodeFile(*queryPath, &query); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	logger := logging.New(cfg.LogLevel)
	store := cache.New(cfg.CacheCapacity)
	solverCfg := toSolverConfig(cfg)

	reg, err := pricing.Assemble(context.Background(), section, store, solverCfg, logger)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	for id, res := range reg.CurveResults {
		if res.State != bootstrap.Linked {
			fmt.Fprintf(stderr, "curve %s: %s: %v\n", id, res.State, res.Err)
		}
	}

	points, err := grid.Evaluate(reg.AsOf, query, reg.Curves, cfg.MaxRangeGridPoints)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	for _, id := range query.CurveIDs {
		cp, ok := points[id]
		if !ok {
			continue
		}
		fmt.Fprintf(stdout, "curve %s (%s):\n", id, query.Measure)
		for i, d := range cp.Dates {
			fmt.Fprintf(stdout, "  %s\t%.10f\n", d.Format("2006-01-02"), cp.Values[i])
		}
	}
	return 0
}

func decodeFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	if err := msgpack.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding %s: %w", path, err)
	}
	return nil
}

func toSolverConfig(cfg config.Config) numerical.SolverConfig {
	return numerical.SolverConfig{
		ConvergenceTolerance: cfg.ConvergenceTolerance,
		MaxIterations:        cfg.MaxBootstrapIterations,
		DampingFactor:        cfg.DampingFactor,
		MinDiscountFactor:    cfg.MinDiscountFactor,
		DerivativeThreshold:  cfg.DerivativeThreshold,
	}
}

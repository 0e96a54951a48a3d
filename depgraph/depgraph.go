// Package depgraph topologically orders curve specs by their calibration
// points' cross-curve references, so the bootstrap orchestrator builds
// every curve a point depends on before that point is solved. Grounded on
// original_source/parser/curve_bootstrapper.h's collectDeps/topoSort pass.
package depgraph

import (
	"fmt"
	"sort"

	"github.com/meenmo/curvecore/faults"
	"github.com/meenmo/curvecore/helperbuild"
	"github.com/meenmo/curvecore/request"
)

// Sort returns curve ids in an order where every curve appears after all
// curves it depends on. Ties are broken lexicographically by id for
// deterministic cache keys and logs. Returns a faults.ReferenceResolution
// error naming the cycle if one exists, or naming the curve id if a point
// references one that was never declared.
func Sort(specs []request.CurveSpecDTO) ([]string, error) {
	declared := make(map[string]bool, len(specs))
	for _, s := range specs {
		declared[s.ID] = true
	}

	// forwardingCurveOf maps an index id to the curve that projects it: the
	// first declared curve with a Swap/OIS point naming that index as its
	// own floating index. A later TenorBasisSwap/CrossCcyBasis point naming
	// the same index as its base leg must be sequenced after that curve.
	forwardingCurveOf := make(map[string]string, len(specs))
	for _, s := range specs {
		for _, pt := range s.Points {
			if indexID, _, ok := helperbuild.ForwardedIndex(pt); ok {
				if _, exists := forwardingCurveOf[indexID]; !exists {
					forwardingCurveOf[indexID] = s.ID
				}
			}
		}
	}

	edges := make(map[string]map[string]bool, len(specs)) // id -> set of ids it depends on
	for _, s := range specs {
		deps := make(map[string]bool)
		for _, pt := range s.Points {
			for _, dep := range helperbuild.Deps(pt) {
				if !declared[dep] {
					return nil, faults.Itemf(faults.ReferenceResolution, dep, "curve %s depends on undeclared curve id", s.ID)
				}
				if dep != s.ID {
					deps[dep] = true
				}
			}
			if baseIndexID := helperbuild.BaseIndexID(pt); baseIndexID != "" {
				if curveID, ok := forwardingCurveOf[baseIndexID]; ok && curveID != s.ID {
					deps[curveID] = true
				}
			}
		}
		edges[s.ID] = deps
	}

	inDegree := make(map[string]int, len(specs))
	dependents := make(map[string][]string, len(specs)) // dep -> curves that need it
	for id := range declared {
		inDegree[id] = 0
	}
	for id, deps := range edges {
		inDegree[id] = len(deps)
		for dep := range deps {
			dependents[dep] = append(dependents[dep], id)
		}
	}

	var ready []string
	for id, deg := range inDegree {
		if deg == 0 {
			ready = append(ready, id)
		}
	}
	sort.Strings(ready)

	var order []string
	for len(ready) > 0 {
		sort.Strings(ready)
		next := ready[0]
		ready = ready[1:]
		order = append(order, next)

		children := append([]string(nil), dependents[next]...)
		sort.Strings(children)
		for _, child := range children {
			inDegree[child]--
			if inDegree[child] == 0 {
				ready = append(ready, child)
			}
		}
	}

	if len(order) != len(specs) {
		var stuck []string
		for id, deg := range inDegree {
			if deg > 0 {
				stuck = append(stuck, id)
			}
		}
		sort.Strings(stuck)
		return nil, faults.New(faults.ReferenceResolution, fmt.Errorf("cyclic curve dependency involving %v", stuck))
	}

	return order, nil
}

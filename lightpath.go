package rwasim

// lightpath.go sizes the wavelength pool a selection needs: every selected path gets
// one lightpath, first-fit over an unbounded pool, with edges treated as undirected

import (
	"sort"
)

// LightpathPlan is the outcome of AllocateLightpaths
type LightpathPlan struct {
	// Wavelength maps each routed pair to its lightpath's wavelength, 1-based
	Wavelength map[Pair]int

	// EdgeWavelengths maps each edge to the wavelengths crossing it, ascending
	EdgeWavelengths map[Edge][]int

	// NumWavelengths is the size of the pool that was opened
	NumWavelengths int

	pairs []Pair
}

// AllocateLightpaths gives every selected path, in row-major pair order, the lowest
// wavelength not yet used on any of its edges, opening a new wavelength when all
// those already open are in use somewhere along the path.
func AllocateLightpaths(sel *Selection) *LightpathPlan {
	plan := new(LightpathPlan)
	plan.Wavelength = make(map[Pair]int)
	plan.EdgeWavelengths = make(map[Edge][]int)
	plan.pairs = make([]Pair, 0)

	onEdge := make(map[Edge]map[int]bool)
	opened := 0

	for _, pair := range sel.Pairs() {
		chosen := sel.Chosen[pair]
		if chosen == nil {
			continue
		}
		edges := chosen.Edges()

		unavailable := make(map[int]bool)
		for _, edge := range edges {
			for lambda := range onEdge[edge] {
				unavailable[lambda] = true
			}
		}

		assigned := 0
		for lambda := 1; lambda <= opened; lambda++ {
			if !unavailable[lambda] {
				assigned = lambda
				break
			}
		}
		if assigned == 0 {
			opened += 1
			assigned = opened
		}

		plan.Wavelength[pair] = assigned
		plan.pairs = append(plan.pairs, pair)
		for _, edge := range edges {
			if onEdge[edge] == nil {
				onEdge[edge] = make(map[int]bool)
			}
			onEdge[edge][assigned] = true
		}
	}

	for edge, set := range onEdge {
		lambdas := make([]int, 0, len(set))
		for lambda := range set {
			lambdas = append(lambdas, lambda)
		}
		sort.Ints(lambdas)
		plan.EdgeWavelengths[edge] = lambdas
	}
	plan.NumWavelengths = opened
	return plan
}

// Pairs returns the pairs holding a lightpath, in allocation order
func (plan *LightpathPlan) Pairs() []Pair {
	pairs := make([]Pair, len(plan.pairs))
	copy(pairs, plan.pairs)
	return pairs
}

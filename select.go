package rwasim

// select.go reduces each pair's candidates to one path and gathers edge usage statistics

import (
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Selection holds one chosen path per catalog pair and the edge usage they induce
type Selection struct {
	// Chosen maps each pair to its selected path; nil marks an unreachable pair
	Chosen map[Pair]*CandidatePath

	// Usage counts how many selected paths cross each undirected edge
	Usage map[Edge]int

	// aggregates over the values of Usage, all zero when Usage is empty
	MaxUsage int
	MinUsage int
	AvgUsage float64

	pairs []Pair
}

// SelectPaths chooses, for every pair of the catalog, the candidate with the fewest nodes.
// Among candidates of equal length the first in catalog order wins, which is the cheapest.
func SelectPaths(cat *Catalog) *Selection {
	sel := new(Selection)
	sel.Chosen = make(map[Pair]*CandidatePath)
	sel.Usage = make(map[Edge]int)
	sel.pairs = cat.Pairs()

	for _, pair := range sel.pairs {
		var best *CandidatePath
		candidates := cat.Paths[pair]
		for idx := range candidates {
			if best == nil || len(candidates[idx].Nodes) < len(best.Nodes) {
				best = &candidates[idx]
			}
		}
		sel.Chosen[pair] = best
		if best == nil {
			continue
		}
		for _, edge := range best.Edges() {
			sel.Usage[edge] += 1
		}
	}

	if len(sel.Usage) == 0 {
		return sel
	}

	counts := make([]float64, 0, len(sel.Usage))
	for _, count := range sel.Usage {
		counts = append(counts, float64(count))
	}
	sel.MaxUsage = int(floats.Max(counts))
	sel.MinUsage = int(floats.Min(counts))
	sel.AvgUsage = stat.Mean(counts, nil)
	return sel
}

// Pairs returns the pairs considered by the selection, row-major
func (sel *Selection) Pairs() []Pair {
	pairs := make([]Pair, len(sel.pairs))
	copy(pairs, sel.pairs)
	return pairs
}

// Path returns the selected path for the pair holding nodes a and b.
// The flag is false when the pair is unreachable or unknown.
func (sel *Selection) Path(a, b int) (CandidatePath, bool) {
	chosen := sel.Chosen[MakePair(a, b)]
	if chosen == nil {
		return CandidatePath{}, false
	}
	return *chosen, true
}

// Edges returns the edge decomposition of the path selected for the pair, nil if there is none
func (sel *Selection) Edges(a, b int) []Edge {
	chosen, ok := sel.Path(a, b)
	if !ok {
		return nil
	}
	return chosen.Edges()
}

// UsedEdges lists the edges crossed by at least one selected path, ordered
func (sel *Selection) UsedEdges() []Edge {
	edges := make([]Edge, 0, len(sel.Usage))
	for edge := range sel.Usage {
		edges = append(edges, edge)
	}
	slices.SortFunc(edges, func(a, b Edge) int { return cmpBy(edgeLess, a, b) })
	return edges
}

// PathTable converts the selection into the route table the wavelength assigner consumes.
// Unreachable pairs are left out.
func (sel *Selection) PathTable() PathTable {
	table := make(PathTable)
	for pair, chosen := range sel.Chosen {
		if chosen == nil {
			continue
		}
		nodes := make([]int, len(chosen.Nodes))
		copy(nodes, chosen.Nodes)
		table[pair] = nodes
	}
	return table
}

// cmpBy turns a less function into the three-way comparison slices.SortFunc expects
func cmpBy[T any](less func(a, b T) bool, a, b T) int {
	if less(a, b) {
		return -1
	}
	if less(b, a) {
		return 1
	}
	return 0
}

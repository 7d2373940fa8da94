package rwasim

// catalog.go builds, for every unordered node pair, the list of candidate paths

import (
	"math"

	log "github.com/sirupsen/logrus"
	"golang.org/x/exp/slices"
)

// Catalog holds up to K candidate paths for every canonical pair of a topology
type Catalog struct {
	// K is the number of paths requested per pair
	K int

	// Paths maps a canonical pair to its candidates, ascending by cost.
	// An empty list means the pair cannot be routed.
	Paths map[Pair][]CandidatePath
}

// BuildCatalog runs KShortestPaths once for every pair src < dst of the topology.
// The mirrored pair (dst, src) is not enumerated; consumers look routes up by canonical pair.
func BuildCatalog(tp *Topology, k int) (*Catalog, error) {
	if tp == nil {
		return nil, invalidf("nil topology")
	}
	if k < 1 {
		return nil, invalidf("k=%d, must be at least 1", k)
	}

	n := tp.NumNodes()
	cat := new(Catalog)
	cat.K = k
	cat.Paths = make(map[Pair][]CandidatePath, n*(n-1)/2)

	for src := 1; src <= n; src++ {
		for dst := src + 1; dst <= n; dst++ {
			pair := Pair{Src: src, Dst: dst}

			// no point exploring prefixes when gonum says the target is out of reach
			if !tp.Reachable(src, dst) {
				log.Debugf("catalog: %v unreachable", pair)
				cat.Paths[pair] = []CandidatePath{}
				continue
			}

			paths, err := KShortestPaths(tp, src, dst, k)
			if err != nil {
				return nil, err
			}
			cat.Paths[pair] = paths
			log.Debugf("catalog: %v has %d candidate paths", pair, len(paths))
			if log.IsLevelEnabled(log.DebugLevel) {
				checkLeastCost(tp, pair, paths)
			}
		}
	}
	return cat, nil
}

// Pairs returns the catalog's pairs in row-major order
func (cat *Catalog) Pairs() []Pair {
	pairs := make([]Pair, 0, len(cat.Paths))
	for pair := range cat.Paths {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return cmpBy(pairLess, a, b) })
	return pairs
}

// Candidates returns the candidate paths of the pair holding nodes a and b, in either order
func (cat *Catalog) Candidates(a, b int) []CandidatePath {
	return cat.Paths[MakePair(a, b)]
}

// checkLeastCost compares the first candidate of a pair with gonum's Dijkstra cost
// and logs a warning when they disagree
func checkLeastCost(tp *Topology, pair Pair, paths []CandidatePath) {
	best, ok := tp.ShortestCost(pair.Src, pair.Dst)
	if !ok || len(paths) == 0 {
		log.Warnf("catalog: %v reachability disagrees with Dijkstra", pair)
		return
	}
	if math.Abs(best-paths[0].Cost) > 1e-9*math.Max(1, best) {
		log.Warnf("catalog: %v first candidate costs %g, Dijkstra finds %g", pair, paths[0].Cost, best)
	}
}

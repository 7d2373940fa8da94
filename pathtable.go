package rwasim

import (
	"golang.org/x/exp/slices"
)

// PathTable maps a canonical pair to the node sequence its traffic is routed over.
// Traffic in both directions between the pair uses the one stored sequence.
type PathTable map[Pair][]int

// Validate checks every entry: the key is canonical, the route joins the key's two
// nodes (in either direction), visits nodes within 1..numNodes at most once.
// numNodes of zero skips the range check.
func (pt PathTable) Validate(numNodes int) error {
	for pair, route := range pt {
		if pair.Src >= pair.Dst {
			return invalidf("path table key %v is not canonical", pair)
		}
		if len(route) < 2 {
			return invalidf("route for %v has %d nodes", pair, len(route))
		}
		first, last := route[0], route[len(route)-1]
		if MakePair(first, last) != pair {
			return invalidf("route %v does not join the nodes of %v", route, pair)
		}
		seen := make(map[int]bool, len(route))
		for _, id := range route {
			if id < 1 || (numNodes > 0 && id > numNodes) {
				return invalidf("route for %v names node %d, outside 1..%d", pair, id, numNodes)
			}
			if seen[id] {
				return invalidf("route for %v visits node %d twice", pair, id)
			}
			seen[id] = true
		}
	}
	return nil
}

// MaxNode returns the largest node id named by any route
func (pt PathTable) MaxNode() int {
	maxID := 0
	for _, route := range pt {
		for _, id := range route {
			if id > maxID {
				maxID = id
			}
		}
	}
	return maxID
}

// Route returns the stored route for the pair holding nodes a and b
func (pt PathTable) Route(a, b int) ([]int, bool) {
	route, present := pt[MakePair(a, b)]
	return route, present
}

// Links returns, ordered, the distinct directed links traversed by the table's routes
func (pt PathTable) Links() []Link {
	seen := make(map[Link]bool)
	links := make([]Link, 0)
	for _, route := range pt {
		for _, link := range routeLinks(route) {
			if seen[link] {
				continue
			}
			seen[link] = true
			links = append(links, link)
		}
	}
	slices.SortFunc(links, func(a, b Link) int { return cmpBy(linkLess, a, b) })
	return links
}

// Pairs returns the table's keys row-major
func (pt PathTable) Pairs() []Pair {
	pairs := make([]Pair, 0, len(pt))
	for pair := range pt {
		pairs = append(pairs, pair)
	}
	slices.SortFunc(pairs, func(a, b Pair) int { return cmpBy(pairLess, a, b) })
	return pairs
}

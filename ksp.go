package rwasim

// ksp.go enumerates the k least-cost loopless paths between a source and a target.
// The search is a priority exploration over partial paths rather than over nodes:
// a node may be settled many times, once per distinct loopless prefix reaching it.

import (
	"container/heap"
)

// CandidatePath is a loopless route; Nodes[0] is the source and the last element the target
type CandidatePath struct {
	Cost  float64 `json:"cost" yaml:"cost"`
	Nodes []int   `json:"nodes" yaml:"nodes"`
}

// Hops returns the number of links the path crosses
func (cp CandidatePath) Hops() int {
	if len(cp.Nodes) == 0 {
		return 0
	}
	return len(cp.Nodes) - 1
}

// Edges decomposes the path into its undirected edges, in traversal order
func (cp CandidatePath) Edges() []Edge {
	return routeEdges(cp.Nodes)
}

// Links decomposes the path into the directed links it traverses
func (cp CandidatePath) Links() []Link {
	return routeLinks(cp.Nodes)
}

func routeEdges(nodes []int) []Edge {
	edges := make([]Edge, 0, len(nodes))
	for idx := 1; idx < len(nodes); idx++ {
		edges = append(edges, MakeEdge(nodes[idx-1], nodes[idx]))
	}
	return edges
}

func routeLinks(nodes []int) []Link {
	links := make([]Link, 0, len(nodes))
	for idx := 1; idx < len(nodes); idx++ {
		links = append(links, Link{From: nodes[idx-1], To: nodes[idx]})
	}
	return links
}

// nodeSet is a bitset over node ids.  It is never modified after it is built;
// with returns an extended copy, so a search state can share its parent's set safely.
type nodeSet []uint64

func newNodeSet(numNodes int) nodeSet {
	return make(nodeSet, numNodes/64+1)
}

func (ns nodeSet) has(id int) bool {
	return ns[id/64]&(1<<(uint(id)%64)) != 0
}

func (ns nodeSet) with(id int) nodeSet {
	ext := make(nodeSet, len(ns))
	copy(ext, ns)
	ext[id/64] |= 1 << (uint(id) % 64)
	return ext
}

// pathState is one partial path on the search frontier
type pathState struct {
	cost  float64
	node  int
	nodes []int
	seen  nodeSet
}

// stateQueue is a min-heap of pathStates ordered by cost, then by the
// lexicographic order of their node sequences
type stateQueue []*pathState

func (sq stateQueue) Len() int { return len(sq) }

func (sq stateQueue) Less(i, j int) bool {
	if sq[i].cost != sq[j].cost {
		return sq[i].cost < sq[j].cost
	}
	return lexLess(sq[i].nodes, sq[j].nodes)
}

func (sq stateQueue) Swap(i, j int) { sq[i], sq[j] = sq[j], sq[i] }

func (sq *stateQueue) Push(x any) { *sq = append(*sq, x.(*pathState)) }

func (sq *stateQueue) Pop() any {
	old := *sq
	n := len(old)
	st := old[n-1]
	old[n-1] = nil
	*sq = old[:n-1]
	return st
}

// lexLess reports whether node sequence a sorts before b; a proper prefix sorts first
func lexLess(a, b []int) bool {
	for idx := 0; idx < len(a) && idx < len(b); idx++ {
		if a[idx] != b[idx] {
			return a[idx] < b[idx]
		}
	}
	return len(a) < len(b)
}

// KShortestPaths returns at most k loopless paths from src to dst, ordered by
// ascending cost.  Paths of equal cost are ordered lexicographically by node sequence.
// An unreachable dst yields an empty result, and fewer than k paths are returned
// only when fewer loopless paths exist.
//
// The frontier holds one entry per loopless prefix, so on dense graphs it grows
// combinatorially with the number of nodes.
func KShortestPaths(tp *Topology, src, dst, k int) ([]CandidatePath, error) {
	if tp == nil {
		return nil, invalidf("nil topology")
	}
	if k < 1 {
		return nil, invalidf("k=%d, must be at least 1", k)
	}
	if !tp.HasNode(src) || !tp.HasNode(dst) {
		return nil, invalidf("pair (%d,%d) is outside nodes 1..%d", src, dst, tp.NumNodes())
	}

	found := make([]CandidatePath, 0, k)
	frontier := stateQueue{{
		cost:  0,
		node:  src,
		nodes: []int{src},
		seen:  newNodeSet(tp.NumNodes()).with(src),
	}}
	heap.Init(&frontier)

	for frontier.Len() > 0 && len(found) < k {
		st := heap.Pop(&frontier).(*pathState)

		// a completed path is emitted and not extended further
		if st.node == dst {
			found = append(found, CandidatePath{Cost: st.cost, Nodes: st.nodes})
			continue
		}

		for _, nbr := range tp.Neighbors(st.node) {
			if st.seen.has(nbr) {
				continue
			}
			nodes := make([]int, len(st.nodes)+1)
			copy(nodes, st.nodes)
			nodes[len(st.nodes)] = nbr

			heap.Push(&frontier, &pathState{
				cost:  st.cost + tp.Weight(st.node, nbr),
				node:  nbr,
				nodes: nodes,
				seen:  st.seen.with(nbr),
			})
		}
	}
	return found, nil
}

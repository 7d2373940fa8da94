// Package rwasim simulates routing and wavelength assignment over a
// wavelength-division-multiplexed optical network.
package rwasim

// topo.go holds the physical topology and traffic demand representations and the
// gonum graph view of the topology used for reachability and least-cost queries.
// Nodes are numbered 1..N everywhere outside of this file.

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/path"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

var (
	// ErrInvalidConfiguration marks malformed inputs: non-square matrices,
	// negative weights or demands, a wavelength count below one and the like.
	ErrInvalidConfiguration = errors.New("rwasim: invalid configuration")

	// ErrUnknownPolicy is returned when a wavelength assignment policy name is not recognized.
	ErrUnknownPolicy = errors.New("rwasim: unknown assignment policy")
)

// invalidf wraps ErrInvalidConfiguration with a description of what was wrong
func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

// Pair is an unordered node pair, held in canonical order Src < Dst
type Pair struct {
	Src int `json:"src" yaml:"src"`
	Dst int `json:"dst" yaml:"dst"`
}

// MakePair returns the canonical pair for nodes a and b
func MakePair(a, b int) Pair {
	if b < a {
		return Pair{Src: b, Dst: a}
	}
	return Pair{Src: a, Dst: b}
}

func (p Pair) String() string {
	return fmt.Sprintf("(%d,%d)", p.Src, p.Dst)
}

// pairLess orders pairs row-major
func pairLess(a, b Pair) bool {
	if a.Src != b.Src {
		return a.Src < b.Src
	}
	return a.Dst < b.Dst
}

// Edge is an undirected physical edge, A < B
type Edge struct {
	A int `json:"a" yaml:"a"`
	B int `json:"b" yaml:"b"`
}

// MakeEdge returns the canonical edge joining a and b
func MakeEdge(a, b int) Edge {
	if b < a {
		return Edge{A: b, B: a}
	}
	return Edge{A: a, B: b}
}

func (e Edge) String() string {
	return fmt.Sprintf("%d-%d", e.A, e.B)
}

func edgeLess(a, b Edge) bool {
	if a.A != b.A {
		return a.A < b.A
	}
	return a.B < b.B
}

// Link is a directed traversal of a physical edge.  Wavelength availability
// is tracked per Link, in the direction the route crosses it.
type Link struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

func (l Link) String() string {
	return fmt.Sprintf("%d->%d", l.From, l.To)
}

func linkLess(a, b Link) bool {
	if a.From != b.From {
		return a.From < b.From
	}
	return a.To < b.To
}

// Topology is a weighted graph over nodes 1..N built from an N x N weight matrix.
// A weight of zero means there is no link; the diagonal is ignored.
type Topology struct {
	// weights[i][j] is the weight of the link from node i+1 to node j+1
	weights [][]float64

	// nbrs[i] lists, ascending, the nodes reachable in one hop from node i+1
	nbrs [][]int

	// connGraph is the gonum representation of the same arcs
	connGraph *simple.WeightedDirectedGraph
}

// NewTopology validates the weight matrix and builds a Topology from a copy of it
func NewTopology(weights [][]float64) (*Topology, error) {
	n := len(weights)
	if n == 0 {
		return nil, invalidf("topology has no nodes")
	}

	tp := new(Topology)
	tp.weights = make([][]float64, n)
	tp.nbrs = make([][]int, n)
	for i, row := range weights {
		if len(row) != n {
			return nil, invalidf("topology row %d has %d entries, want %d", i+1, len(row), n)
		}
		tp.weights[i] = make([]float64, n)
		for j, w := range row {
			if math.IsNaN(w) || math.IsInf(w, 0) || w < 0 {
				return nil, invalidf("topology weight (%d,%d)=%v is not a non-negative number", i+1, j+1, w)
			}
			if i == j {
				continue
			}
			tp.weights[i][j] = w
			if w > 0 {
				tp.nbrs[i] = append(tp.nbrs[i], j+1)
			}
		}
	}
	tp.connGraph = buildConnGraph(tp.weights)
	return tp, nil
}

// buildConnGraph returns the gonum weighted directed graph holding an arc i->j
// for every positive weight.  Every node is added, isolated or not.
func buildConnGraph(weights [][]float64) *simple.WeightedDirectedGraph {
	connGraph := simple.NewWeightedDirectedGraph(0, math.Inf(1))
	for i := range weights {
		connGraph.AddNode(simple.Node(i + 1))
	}
	for i, row := range weights {
		for j, w := range row {
			if i == j || !(w > 0) {
				continue
			}
			connGraph.SetWeightedEdge(simple.WeightedEdge{F: simple.Node(i + 1), T: simple.Node(j + 1), W: w})
		}
	}
	return connGraph
}

// NumNodes returns N
func (tp *Topology) NumNodes() int {
	return len(tp.weights)
}

// HasNode reports whether id names a node of the topology
func (tp *Topology) HasNode(id int) bool {
	return id >= 1 && id <= len(tp.weights)
}

// Weight returns the weight of the link from a to b, zero if there is none
func (tp *Topology) Weight(a, b int) float64 {
	if !tp.HasNode(a) || !tp.HasNode(b) {
		return 0
	}
	return tp.weights[a-1][b-1]
}

// Neighbors returns the nodes reachable from id over one positive-weight link, ascending.
// The returned slice is shared and must not be modified.
func (tp *Topology) Neighbors(id int) []int {
	if !tp.HasNode(id) {
		return nil
	}
	return tp.nbrs[id-1]
}

// Edges returns every undirected edge carrying a positive weight in either direction, ordered
func (tp *Topology) Edges() []Edge {
	edges := make([]Edge, 0)
	n := len(tp.weights)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if tp.weights[i][j] > 0 || tp.weights[j][i] > 0 {
				edges = append(edges, Edge{A: i + 1, B: j + 1})
			}
		}
	}
	return edges
}

// Graph exposes the gonum view of the topology
func (tp *Topology) Graph() graph.Weighted {
	return tp.connGraph
}

// Reachable reports whether some path leads from src to dst
func (tp *Topology) Reachable(src, dst int) bool {
	if !tp.HasNode(src) || !tp.HasNode(dst) {
		return false
	}
	return topo.PathExistsIn(tp.connGraph, simple.Node(src), simple.Node(dst))
}

// ShortestCost returns the least path cost from src to dst, computed with gonum's
// Dijkstra.  The flag is false when dst cannot be reached.  BuildCatalog checks
// each pair's first candidate against it when debug logging is on.
func (tp *Topology) ShortestCost(src, dst int) (float64, bool) {
	if !tp.HasNode(src) || !tp.HasNode(dst) {
		return math.Inf(1), false
	}
	spTree := path.DijkstraFrom(simple.Node(src), tp.connGraph)
	cost := spTree.WeightTo(int64(dst))
	return cost, !math.IsInf(cost, 1)
}

// Demand is an N x N traffic matrix; entry [i][j] is the number of independent
// connection requests from node i+1 to node j+1.  The diagonal is ignored.
type Demand [][]int

// Validate checks that the demand matrix is n x n with non-negative entries
// whose off-diagonal sum fits in an int
func (dm Demand) Validate(n int) error {
	if len(dm) != n {
		return invalidf("demand matrix has %d rows, want %d", len(dm), n)
	}
	total := 0
	for i, row := range dm {
		if len(row) != n {
			return invalidf("demand row %d has %d entries, want %d", i+1, len(row), n)
		}
		for j, d := range row {
			if d < 0 {
				return invalidf("demand (%d,%d)=%d is negative", i+1, j+1, d)
			}
			if i == j {
				continue
			}
			if d > math.MaxInt-total {
				return invalidf("demand total overflows at (%d,%d)", i+1, j+1)
			}
			total += d
		}
	}
	return nil
}

// Total returns the number of requests in the matrix, excluding the diagonal.
// It is exact for any matrix that passes Validate.
func (dm Demand) Total() int {
	total := 0
	for i, row := range dm {
		for j, d := range row {
			if i != j {
				total += d
			}
		}
	}
	return total
}

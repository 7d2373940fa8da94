package rwasim_test

import (
	"testing"

	"github.com/iti/rwasim"
	"github.com/stretchr/testify/require"
)

// referenceTopology is the five node network used throughout the tests
func referenceTopology(t *testing.T) *rwasim.Topology {
	t.Helper()
	tp, err := rwasim.NewTopology(rwasim.ReferenceExpCfg().Topology)
	require.NoError(t, err)
	return tp
}

func referenceDemand() rwasim.Demand {
	return rwasim.Demand(rwasim.ReferenceExpCfg().Demand)
}

// referenceTable is the fewest-hop route table of the reference topology
func referenceTable() rwasim.PathTable {
	return rwasim.PathTable{
		{Src: 1, Dst: 2}: {1, 3, 4, 2},
		{Src: 1, Dst: 3}: {1, 3},
		{Src: 1, Dst: 4}: {1, 3, 4},
		{Src: 1, Dst: 5}: {1, 3, 4, 5},
		{Src: 2, Dst: 3}: {2, 4, 3},
		{Src: 2, Dst: 4}: {2, 4},
		{Src: 2, Dst: 5}: {2, 5},
		{Src: 3, Dst: 4}: {3, 4},
		{Src: 3, Dst: 5}: {3, 4, 5},
		{Src: 4, Dst: 5}: {4, 5},
	}
}

// completeGraph returns n nodes joined pairwise by unit weight links
func completeGraph(t *testing.T, n int) *rwasim.Topology {
	t.Helper()
	weights := make([][]float64, n)
	for i := range weights {
		weights[i] = make([]float64, n)
		for j := range weights[i] {
			if i != j {
				weights[i][j] = 1
			}
		}
	}
	tp, err := rwasim.NewTopology(weights)
	require.NoError(t, err)
	return tp
}

// zeroDemand returns an n x n demand with no requests
func zeroDemand(n int) rwasim.Demand {
	dm := make(rwasim.Demand, n)
	for i := range dm {
		dm[i] = make([]int, n)
	}
	return dm
}

// seqU01 replays a fixed sequence of draws, cycling when exhausted
type seqU01 struct {
	vals []float64
	idx  int
}

func (sq *seqU01) RandU01() float64 {
	u := sq.vals[sq.idx%len(sq.vals)]
	sq.idx += 1
	return u
}

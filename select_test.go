package rwasim_test

import (
	"testing"

	"github.com/iti/rwasim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func referenceSelection(t *testing.T) *rwasim.Selection {
	t.Helper()
	cat, err := rwasim.BuildCatalog(referenceTopology(t), 3)
	require.NoError(t, err)
	return rwasim.SelectPaths(cat)
}

func TestSelectPathsReference(t *testing.T) {
	sel := referenceSelection(t)

	assert.Equal(t, referenceTable(), sel.PathTable())

	// (2,5) prefers the direct link over the cheaper two hop path
	cp, ok := sel.Path(5, 2)
	require.True(t, ok)
	assert.Equal(t, rwasim.CandidatePath{Cost: 7, Nodes: []int{2, 5}}, cp)

	assert.Equal(t, []rwasim.Edge{{A: 1, B: 3}, {A: 3, B: 4}, {A: 2, B: 4}}, sel.Edges(1, 2))
	assert.Nil(t, sel.Edges(1, 9))
}

func TestSelectPathsEdgeUsage(t *testing.T) {
	sel := referenceSelection(t)

	want := map[rwasim.Edge]int{
		{A: 1, B: 3}: 4,
		{A: 3, B: 4}: 6,
		{A: 2, B: 4}: 3,
		{A: 4, B: 5}: 3,
		{A: 2, B: 5}: 1,
	}
	assert.Equal(t, want, sel.Usage)
	assert.Equal(t, 6, sel.MaxUsage)
	assert.Equal(t, 1, sel.MinUsage)
	assert.InDelta(t, 3.4, sel.AvgUsage, 1e-9)

	assert.Equal(t, []rwasim.Edge{{A: 1, B: 3}, {A: 2, B: 4}, {A: 2, B: 5}, {A: 3, B: 4}, {A: 4, B: 5}}, sel.UsedEdges())
}

func TestSelectPathsFirstAmongEqualLength(t *testing.T) {
	cat := &rwasim.Catalog{
		K: 3,
		Paths: map[rwasim.Pair][]rwasim.CandidatePath{
			{Src: 1, Dst: 4}: {
				{Cost: 3, Nodes: []int{1, 2, 3, 4}},
				{Cost: 4, Nodes: []int{1, 2, 4}},
				{Cost: 5, Nodes: []int{1, 3, 4}},
			},
		},
	}
	sel := rwasim.SelectPaths(cat)

	cp, ok := sel.Path(1, 4)
	require.True(t, ok)
	assert.Equal(t, []int{1, 2, 4}, cp.Nodes)
	assert.Equal(t, []rwasim.Pair{{Src: 1, Dst: 4}}, sel.Pairs())
}

func TestSelectPathsNothingRoutable(t *testing.T) {
	tp, err := rwasim.NewTopology([][]float64{
		{0, 0, 0},
		{0, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)
	cat, err := rwasim.BuildCatalog(tp, 3)
	require.NoError(t, err)

	sel := rwasim.SelectPaths(cat)
	assert.Len(t, sel.Pairs(), 3)
	for _, pair := range sel.Pairs() {
		_, ok := sel.Path(pair.Src, pair.Dst)
		assert.False(t, ok)
	}
	assert.Empty(t, sel.Usage)
	assert.Zero(t, sel.MaxUsage)
	assert.Zero(t, sel.MinUsage)
	assert.Zero(t, sel.AvgUsage)
	assert.Empty(t, sel.PathTable())
}

package rwasim_test

import (
	"testing"

	"github.com/iti/rwasim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateLightpathsReference(t *testing.T) {
	plan := rwasim.AllocateLightpaths(referenceSelection(t))

	want := map[rwasim.Pair]int{
		{Src: 1, Dst: 2}: 1,
		{Src: 1, Dst: 3}: 2,
		{Src: 1, Dst: 4}: 3,
		{Src: 1, Dst: 5}: 4,
		{Src: 2, Dst: 3}: 2,
		{Src: 2, Dst: 4}: 3,
		{Src: 2, Dst: 5}: 1,
		{Src: 3, Dst: 4}: 5,
		{Src: 3, Dst: 5}: 6,
		{Src: 4, Dst: 5}: 1,
	}
	assert.Equal(t, want, plan.Wavelength)
	assert.Equal(t, 6, plan.NumWavelengths)
	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, plan.EdgeWavelengths[rwasim.Edge{A: 3, B: 4}])
	assert.Equal(t, []int{1}, plan.EdgeWavelengths[rwasim.Edge{A: 2, B: 5}])

	pairs := plan.Pairs()
	require.Len(t, pairs, 10)
	assert.Equal(t, rwasim.Pair{Src: 1, Dst: 2}, pairs[0])
}

func TestAllocateLightpathsNoSharedWavelengthOnEdge(t *testing.T) {
	sel := rwasim.SelectPaths(mustCatalog(t, completeGraph(t, 6), 2))
	plan := rwasim.AllocateLightpaths(sel)

	for edge, lambdas := range plan.EdgeWavelengths {
		holders := make(map[int]rwasim.Pair)
		for _, pair := range plan.Pairs() {
			for _, e := range sel.Edges(pair.Src, pair.Dst) {
				if e != edge {
					continue
				}
				lambda := plan.Wavelength[pair]
				other, taken := holders[lambda]
				require.False(t, taken, "λ%d on %v held by %v and %v", lambda, edge, other, pair)
				holders[lambda] = pair
			}
		}
		assert.Len(t, lambdas, len(holders))
	}
	// every pair of a complete graph is one hop, so no edge is shared
	assert.Equal(t, 1, plan.NumWavelengths)
}

func TestAllocateLightpathsSkipsUnreachable(t *testing.T) {
	tp, err := rwasim.NewTopology([][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	plan := rwasim.AllocateLightpaths(rwasim.SelectPaths(mustCatalog(t, tp, 1)))
	assert.Equal(t, map[rwasim.Pair]int{{Src: 1, Dst: 2}: 1}, plan.Wavelength)
	assert.Equal(t, 1, plan.NumWavelengths)
}

func mustCatalog(t *testing.T, tp *rwasim.Topology, k int) *rwasim.Catalog {
	t.Helper()
	cat, err := rwasim.BuildCatalog(tp, k)
	require.NoError(t, err)
	return cat
}

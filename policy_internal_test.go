package rwasim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedU01 float64

func (u fixedU01) RandU01() float64 { return float64(u) }

func TestFirstFitChoosesLowest(t *testing.T) {
	pick, err := newChooser(FirstFit, 4, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pick.choose([]int{1, 2, 3}))
}

func TestLeastUsedChoosesLeastCommitted(t *testing.T) {
	lu := &leastUsed{usage: []int{3, 0}}
	assert.Equal(t, 1, lu.choose([]int{0, 1}))

	// ties go to the lowest index
	lu = &leastUsed{usage: []int{1, 1, 0}}
	assert.Equal(t, 0, lu.choose([]int{0, 1}))

	lu.committed(0)
	assert.Equal(t, []int{2, 1, 0}, lu.usage)
	assert.Equal(t, 1, lu.choose([]int{0, 1}))
	assert.Equal(t, 2, lu.choose([]int{0, 1, 2}))
}

func TestRandomFitScalesDraw(t *testing.T) {
	free := []int{0, 2, 4, 6}
	cases := map[fixedU01]int{
		0.0:   0,
		0.24:  0,
		0.25:  2,
		0.6:   4,
		0.999: 6,
		1.0:   6, // out of range draws are clamped
	}
	for u, want := range cases {
		rf := &randomFit{rng: u}
		assert.Equal(t, want, rf.choose(free), "u=%v", float64(u))
	}
}

func TestNewChooserUnknown(t *testing.T) {
	_, err := newChooser(Policy(42), 3, nil)
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestNodeSet(t *testing.T) {
	ns := newNodeSet(130)
	grown := ns.with(129)
	assert.False(t, ns.has(129))
	assert.True(t, grown.has(129))
	assert.False(t, grown.has(65))
}

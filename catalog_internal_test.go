package rwasim

import (
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func debugHook(t *testing.T) *logtest.Hook {
	t.Helper()
	hook := logtest.NewGlobal()
	level := log.GetLevel()
	log.SetLevel(log.DebugLevel)
	t.Cleanup(func() {
		log.SetLevel(level)
		log.StandardLogger().ReplaceHooks(make(log.LevelHooks))
	})
	return hook
}

func warnings(hook *logtest.Hook) []string {
	msgs := make([]string, 0)
	for _, entry := range hook.AllEntries() {
		if entry.Level == log.WarnLevel {
			msgs = append(msgs, entry.Message)
		}
	}
	return msgs
}

func TestBuildCatalogLeastCostAgrees(t *testing.T) {
	hook := debugHook(t)
	tp, err := NewTopology([][]float64{
		{0, 0, 5, 0, 0},
		{0, 0, 0, 3, 7},
		{5, 0, 0, 1, 0},
		{0, 3, 1, 0, 1},
		{0, 7, 0, 1, 0},
	})
	require.NoError(t, err)

	_, err = BuildCatalog(tp, 3)
	require.NoError(t, err)
	assert.Empty(t, warnings(hook))
}

func TestCheckLeastCostReportsDisagreement(t *testing.T) {
	hook := debugHook(t)
	tp, err := NewTopology([][]float64{
		{0, 1, 0},
		{1, 0, 0},
		{0, 0, 0},
	})
	require.NoError(t, err)

	checkLeastCost(tp, Pair{Src: 1, Dst: 2}, []CandidatePath{{Cost: 1, Nodes: []int{1, 2}}})
	assert.Empty(t, warnings(hook))

	checkLeastCost(tp, Pair{Src: 1, Dst: 2}, []CandidatePath{{Cost: 4, Nodes: []int{1, 2}}})
	checkLeastCost(tp, Pair{Src: 1, Dst: 3}, []CandidatePath{{Cost: 1, Nodes: []int{1, 3}}})
	assert.Len(t, warnings(hook), 2)
}

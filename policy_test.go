package rwasim_test

import (
	"encoding/json"
	"testing"

	"github.com/iti/rwasim"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParsePolicy(t *testing.T) {
	cases := map[string]rwasim.Policy{
		"first-fit":  rwasim.FirstFit,
		"FirstFit":   rwasim.FirstFit,
		"random_fit": rwasim.RandomFit,
		"Random Fit": rwasim.RandomFit,
		"least-used": rwasim.LeastUsed,
		" leastused": rwasim.LeastUsed,
	}
	for name, want := range cases {
		got, err := rwasim.ParsePolicy(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := rwasim.ParsePolicy("best-fit")
	assert.ErrorIs(t, err, rwasim.ErrUnknownPolicy)
}

func TestPolicyNames(t *testing.T) {
	assert.Equal(t, "first-fit", rwasim.FirstFit.String())
	assert.Equal(t, "random-fit", rwasim.RandomFit.String())
	assert.Equal(t, "least-used", rwasim.LeastUsed.String())
	assert.Equal(t, "policy(7)", rwasim.Policy(7).String())
	assert.Equal(t, []rwasim.Policy{rwasim.FirstFit, rwasim.RandomFit, rwasim.LeastUsed}, rwasim.Policies)
}

func TestPolicyText(t *testing.T) {
	data, err := json.Marshal([]rwasim.Policy{rwasim.LeastUsed, rwasim.FirstFit})
	require.NoError(t, err)
	assert.JSONEq(t, `["least-used","first-fit"]`, string(data))

	var policies []rwasim.Policy
	require.NoError(t, yaml.Unmarshal([]byte("[random-fit, least_used]"), &policies))
	assert.Equal(t, []rwasim.Policy{rwasim.RandomFit, rwasim.LeastUsed}, policies)

	_, err = json.Marshal(rwasim.Policy(9))
	assert.Error(t, err)

	var p rwasim.Policy
	err = json.Unmarshal([]byte(`"worst-fit"`), &p)
	assert.ErrorIs(t, err, rwasim.ErrUnknownPolicy)
}

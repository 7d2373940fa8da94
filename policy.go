package rwasim

// policy.go holds the wavelength selection policies.  A policy only decides which of
// the wavelengths free along a whole route gets committed; availability bookkeeping
// belongs to the assigner.

import (
	"fmt"
	"strings"
)

// Policy names a wavelength selection rule
type Policy int

const (
	// FirstFit commits the lowest-indexed free wavelength
	FirstFit Policy = iota

	// RandomFit commits a free wavelength chosen uniformly at random
	RandomFit

	// LeastUsed commits the free wavelength assigned least often so far in the run,
	// lowest index on ties
	LeastUsed
)

// Policies lists every policy in the order CompareAll runs them
var Policies = []Policy{FirstFit, RandomFit, LeastUsed}

var policyNames = map[Policy]string{
	FirstFit:  "first-fit",
	RandomFit: "random-fit",
	LeastUsed: "least-used",
}

func (p Policy) String() string {
	name, present := policyNames[p]
	if !present {
		return fmt.Sprintf("policy(%d)", int(p))
	}
	return name
}

// ParsePolicy maps a policy name, e.g. "first-fit", to its Policy.
// Case and the separator ('-', '_' or none) are not significant.
func ParsePolicy(name string) (Policy, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	key = strings.NewReplacer("-", "", "_", "", " ", "").Replace(key)
	for p, pname := range policyNames {
		if strings.ReplaceAll(pname, "-", "") == key {
			return p, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, name)
}

// MarshalText lets descriptions carry a policy by name
func (p Policy) MarshalText() ([]byte, error) {
	if _, present := policyNames[p]; !present {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText is the inverse of MarshalText
func (p *Policy) UnmarshalText(text []byte) error {
	parsed, err := ParsePolicy(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// U01Source supplies uniform variates on [0,1).  *rngstream.RngStream satisfies it.
type U01Source interface {
	RandU01() float64
}

// chooser is the per-run state of a policy.  free lists, ascending, the
// zero-based wavelengths available on every link of the route and is never empty.
type chooser interface {
	choose(free []int) int
	committed(lambda int)
}

type firstFit struct{}

func (firstFit) choose(free []int) int { return free[0] }
func (firstFit) committed(int)         {}

type randomFit struct {
	rng U01Source
}

func (rf *randomFit) choose(free []int) int {
	idx := int(rf.rng.RandU01() * float64(len(free)))
	if idx >= len(free) {
		idx = len(free) - 1
	}
	return free[idx]
}

func (rf *randomFit) committed(int) {}

type leastUsed struct {
	// usage[w] counts commits of wavelength w in this run
	usage []int
}

func (lu *leastUsed) choose(free []int) int {
	best := free[0]
	for _, lambda := range free[1:] {
		if lu.usage[lambda] < lu.usage[best] {
			best = lambda
		}
	}
	return best
}

func (lu *leastUsed) committed(lambda int) {
	lu.usage[lambda] += 1
}

// newChooser returns fresh policy state for one assignment run
func newChooser(policy Policy, numWavelengths int, rng U01Source) (chooser, error) {
	switch policy {
	case FirstFit:
		return firstFit{}, nil
	case RandomFit:
		return &randomFit{rng: rng}, nil
	case LeastUsed:
		return &leastUsed{usage: make([]int, numWavelengths)}, nil
	}
	return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(policy))
}

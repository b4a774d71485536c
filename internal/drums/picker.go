package drums

import "math/rand"

// Picker selects one index out of n candidates. Implementations back
// every random draw the sequencer makes, so tests can substitute a fixed
// strategy for the seeded production source.
type Picker interface {
	// Pick returns an index in [0, n). n is always at least 1.
	Pick(n int) int
}

type randPicker struct {
	r *rand.Rand
}

// NewRandPicker returns a Picker drawing uniformly from a seeded
// pseudorandom source.
func NewRandPicker(seed int64) Picker {
	return randPicker{r: rand.New(rand.NewSource(seed))}
}

func (p randPicker) Pick(n int) int {
	return p.r.Intn(n)
}

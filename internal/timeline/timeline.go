// Package timeline reconciles beat-tracking analyses into a single
// authoritative beat/downbeat timeline and projects segment boundaries
// onto it.
package timeline

// Timeline is an ordered beat sequence with cyclic bar positions.
// Beats are strictly increasing times in seconds. Positions cycle through
// 1..beatsPerBar with 1 marking a downbeat. Downbeats lists the times
// whose position is 1.
type Timeline struct {
	Beats     []float64
	Positions []int
	Downbeats []float64
}

// Segment is an externally supplied structural boundary.
type Segment struct {
	Start float64
	Label string
}

// Marker is a labeled fractional beat index, the projection of a Segment
// onto a beat grid.
type Marker struct {
	Position float64
	Label    string
}

// PrefixBeat returns the number of beats preceding the first downbeat,
// i.e. the index of the first position equal to 1. A timeline without any
// downbeat has no pickup, so it reports 0.
func PrefixBeat(positions []int) int {
	for i, p := range positions {
		if p == 1 {
			return i
		}
	}
	return 0
}

package timeline

import "sort"

// TimeToBeatPosition converts a time in seconds to a continuous beat
// index on the given grid. Times before the first beat map to 0, times
// between beats interpolate linearly, and times past the last beat
// extrapolate with the final inter-beat interval. A non-positive final
// interval pins the result to the last index.
func TimeToBeatPosition(t float64, beats []float64) float64 {
	if len(beats) == 0 {
		return 0
	}
	if t < beats[0] {
		return 0
	}
	for i := 0; i < len(beats)-1; i++ {
		if t < beats[i+1] {
			interval := beats[i+1] - beats[i]
			if interval <= 0 {
				return float64(i)
			}
			return float64(i) + (t-beats[i])/interval
		}
	}
	last := len(beats) - 1
	if last > 0 {
		interval := beats[last] - beats[last-1]
		if interval > 0 {
			return float64(last) + (t-beats[last])/interval
		}
	}
	return float64(last)
}

// ProjectMarkers maps every segment start onto the beat grid and returns
// the markers ordered by position. Empty beats or segments yield nil.
func ProjectMarkers(beats []float64, segments []Segment) []Marker {
	if len(beats) == 0 || len(segments) == 0 {
		return nil
	}
	markers := make([]Marker, 0, len(segments))
	for _, seg := range segments {
		markers = append(markers, Marker{
			Position: TimeToBeatPosition(seg.Start, beats),
			Label:    seg.Label,
		})
	}
	sort.SliceStable(markers, func(i, j int) bool {
		return markers[i].Position < markers[j].Position
	})
	return markers
}

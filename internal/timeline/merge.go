package timeline

import "sort"

// defaultBeatsPerBar is used when the primary analysis carries no bar
// positions to derive the cycle length from.
const defaultBeatsPerBar = 4

// Merge reconciles two beat analyses of the same recording into one
// timeline. The primary timeline wins wherever the two overlap; the
// secondary only contributes beats strictly before and strictly after the
// primary's span (each widened by tolerance). Beats closer than tolerance
// seconds to the previously kept beat are dropped in a single
// left-to-right pass.
//
// Bar positions of the merged result are renumbered cyclically, anchored
// at the first surviving beat that matches a downbeat of either source by
// exact time. The returned prefix is the count of beats preceding that
// anchor.
//
// Empty inputs fall back without error: an empty secondary returns the
// primary verbatim, an empty primary returns the secondary with position
// 1 on its downbeats and 2 everywhere else.
func Merge(primary Timeline, secondaryBeats, secondaryDownbeats []float64, tolerance float64) (Timeline, int) {
	if len(secondaryBeats) == 0 {
		return primary, PrefixBeat(primary.Positions)
	}
	if len(primary.Beats) == 0 {
		positions := make([]int, len(secondaryBeats))
		for i, b := range secondaryBeats {
			if containsTime(secondaryDownbeats, b) {
				positions[i] = 1
			} else {
				positions[i] = 2
			}
		}
		merged := Timeline{
			Beats:     secondaryBeats,
			Positions: positions,
			Downbeats: secondaryDownbeats,
		}
		return merged, PrefixBeat(positions)
	}

	spanStart := primary.Beats[0]
	spanEnd := primary.Beats[len(primary.Beats)-1]

	var before, after []float64
	for _, b := range secondaryBeats {
		switch {
		case b < spanStart-tolerance:
			before = append(before, b)
		case b > spanEnd+tolerance:
			after = append(after, b)
		}
	}

	logger.Debug().
		Int("before", len(before)).
		Int("primary", len(primary.Beats)).
		Int("after", len(after)).
		Msg("merge partitions")

	all := make([]float64, 0, len(before)+len(primary.Beats)+len(after))
	all = append(all, before...)
	all = append(all, primary.Beats...)
	all = append(all, after...)
	sort.Float64s(all)

	// Greedy dedup: keep a beat only if it is farther than tolerance from
	// the last kept beat, not from every earlier beat.
	kept := []float64{all[0]}
	for _, b := range all[1:] {
		if b-kept[len(kept)-1] > tolerance {
			kept = append(kept, b)
		}
	}

	// Downbeat membership is an exact time match against either source.
	// A beat whose nearby duplicate carried the downbeat time loses the
	// flag here; only the first match anchors the renumbering below.
	anchor := -1
	for i, b := range kept {
		if containsTime(primary.Downbeats, b) || containsTime(secondaryDownbeats, b) {
			anchor = i
			break
		}
	}
	k := 0
	if anchor > 0 {
		k = anchor
	}

	beatsPerBar := maxPosition(primary.Positions)
	if beatsPerBar < 1 {
		beatsPerBar = defaultBeatsPerBar
	}

	// Renumber every beat cyclically so that the anchor gets position 1.
	startNumber := beatsPerBar - k + 1
	positions := make([]int, len(kept))
	var downbeats []float64
	for i := range kept {
		n := (startNumber + i) % beatsPerBar
		if n < 0 {
			n += beatsPerBar
		}
		if n == 0 {
			n = beatsPerBar
		}
		positions[i] = n
		if n == 1 {
			downbeats = append(downbeats, kept[i])
		}
	}

	merged := Timeline{Beats: kept, Positions: positions, Downbeats: downbeats}

	logger.Debug().
		Int("beats", len(merged.Beats)).
		Int("downbeats", len(merged.Downbeats)).
		Msg("merged timeline")

	return merged, PrefixBeat(positions)
}

func containsTime(times []float64, t float64) bool {
	for _, v := range times {
		if v == t {
			return true
		}
	}
	return false
}

func maxPosition(positions []int) int {
	max := 0
	for _, p := range positions {
		if p > max {
			max = p
		}
	}
	return max
}

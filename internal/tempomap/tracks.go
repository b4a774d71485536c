package tempomap

import (
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/beatsmith/beatsmith/internal/timeline"
)

// TempoTrack renders the tempo events for a beat timeline as an SMF
// track. Absolute ticks are converted to deltas in one pass; the builder
// guarantees they are monotonically non-decreasing.
func TempoTrack(beats []float64, ticksPerBeat uint32) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("Tempo Track"))

	var current uint32
	for _, ev := range BuildTempoEvents(beats, ticksPerBeat) {
		tr.Add(ev.Tick-current, smf.MetaTempo(60e6/float64(ev.MicrosPerBeat)))
		current = ev.Tick
	}
	tr.Close(0)
	return tr
}

// MarkerTrack renders projected segment markers as an SMF track. Marker
// ticks truncate toward zero; a marker that rounds behind its predecessor
// clamps to a zero delta but still moves the running cursor.
func MarkerTrack(markers []timeline.Marker, ticksPerBeat uint32) smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("Markers"))

	var current int64
	for _, m := range markers {
		target := int64(m.Position * float64(ticksPerBeat))
		delta := target - current
		if delta < 0 {
			delta = 0
		}
		tr.Add(uint32(delta), smf.MetaMarker(m.Label))
		current = target
	}
	tr.Close(0)
	return tr
}

// TimeSignatureTrack emits the fixed 4/4 meter track.
func TimeSignatureTrack() smf.Track {
	var tr smf.Track
	tr.Add(0, smf.MetaMeter(4, 4))
	tr.Close(0)
	return tr
}

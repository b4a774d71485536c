// Package tempomap synthesizes MIDI tempo events from a beat timeline
// and renders them, together with markers and a time signature, as SMF
// tracks.
package tempomap

import (
	"math"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var logger zerolog.Logger

func init() {
	logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
}

// TempoEvent is a tempo change at an absolute tick offset from the start
// of the sequence.
type TempoEvent struct {
	Tick          uint32
	MicrosPerBeat uint32
}

// BuildTempoEvents converts a beat timeline into tempo events on an
// absolute tick grid. Tick 0 honors the real time of the first beat: a
// timeline starting after zero gets a synthesized lead-in tempo spanning
// one beat of ticks, so the first analyzed beat lands at its true time.
// Per-interval events then follow one beat of ticks apart. Non-positive
// intervals are skipped without shifting the grid.
func BuildTempoEvents(beats []float64, ticksPerBeat uint32) []TempoEvent {
	if len(beats) == 0 {
		return nil
	}

	var events []TempoEvent
	var origin uint32
	if beats[0] > 0 {
		events = append(events, TempoEvent{Tick: 0, MicrosPerBeat: microsPerBeat(beats[0])})
		origin = ticksPerBeat
	}

	for i := 1; i < len(beats); i++ {
		interval := beats[i] - beats[i-1]
		if interval <= 0 {
			logger.Debug().Float64("beat", beats[i]).Msg("skipping non-positive beat interval")
			continue
		}
		events = append(events, TempoEvent{
			Tick:          origin + uint32(i-1)*ticksPerBeat,
			MicrosPerBeat: microsPerBeat(interval),
		})
	}
	return events
}

// microsPerBeat converts an inter-beat interval in seconds to the MIDI
// tempo value, clamped to stay positive.
func microsPerBeat(interval float64) uint32 {
	v := uint32(math.Round(interval * 1e6))
	if v == 0 {
		v = 1
	}
	return v
}

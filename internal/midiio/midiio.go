// Package midiio adapts the SMF collaborator library to the pipeline:
// reading fragment files and target grids, and writing the converted
// output.
package midiio

import (
	"fmt"
	"os"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/beatsmith/beatsmith/internal/drums"
	"github.com/beatsmith/beatsmith/internal/tempomap"
	"github.com/beatsmith/beatsmith/internal/timeline"
)

// ReadSMF reads a standard MIDI file from disk.
func ReadSMF(path string) (*smf.SMF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	s, err := smf.ReadFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return s, nil
}

// WriteSMF writes a standard MIDI file to disk.
func WriteSMF(path string, s *smf.SMF) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := s.WriteTo(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// WriteSong writes the converted output file: a fixed 4/4 time-signature
// track, the tempo track for the beat timeline, and, when markers are
// present, a marker track.
func WriteSong(path string, ticksPerBeat uint16, beats []float64, markers []timeline.Marker) error {
	s := smf.New()
	s.TimeFormat = smf.MetricTicks(ticksPerBeat)

	s.Add(tempomap.TimeSignatureTrack())
	s.Add(tempomap.TempoTrack(beats, uint32(ticksPerBeat)))
	if len(markers) > 0 {
		s.Add(tempomap.MarkerTrack(markers, uint32(ticksPerBeat)))
	}
	return WriteSMF(path, s)
}

// Resolution reports the metric resolution of a file in ticks per beat.
// Files with SMPTE timing report false.
func Resolution(s *smf.SMF) (uint32, bool) {
	mt, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok {
		return 0, false
	}
	return uint32(mt), true
}

// BeatGrid extracts the beat grid implied by a file's tempo events. The
// conversion places one tempo event per beat, so each tempo event marks
// a beat tick. The cursor starts one beat in: the first real beat of a
// quantized sequence sits one beat past tick 0.
func BeatGrid(s *smf.SMF, ticksPerBeat uint32) []uint32 {
	current := ticksPerBeat
	var beats []uint32
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			if ev.Message.Is(smf.MetaTempoMsg) {
				current += ev.Delta
				beats = append(beats, current)
			}
		}
	}
	return beats
}

// ReadFragment extracts the note events of a drum fragment file,
// preserving each event's delta time. Tracks are concatenated in file
// order; everything but note events is dropped.
func ReadFragment(path string) (drums.Fragment, error) {
	s, err := ReadSMF(path)
	if err != nil {
		return nil, err
	}

	var frag drums.Fragment
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			var ch, key, vel uint8
			switch {
			case ev.Message.GetNoteOn(&ch, &key, &vel):
				frag = append(frag, drums.Event{Delta: ev.Delta, Kind: drums.NoteOn, Key: key, Velocity: vel})
			case ev.Message.GetNoteOff(&ch, &key, &vel):
				frag = append(frag, drums.Event{Delta: ev.Delta, Kind: drums.NoteOff, Key: key, Velocity: vel})
			}
		}
	}
	return frag, nil
}

// AppendDrumTrack appends the assembled drum events to a file as one
// additional track.
func AppendDrumTrack(s *smf.SMF, events drums.Fragment) {
	var tr smf.Track
	tr.Add(0, smf.MetaTrackSequenceName("Drums"))
	for _, ev := range events {
		switch ev.Kind {
		case drums.NoteOn:
			tr.Add(ev.Delta, midi.NoteOn(0, ev.Key, ev.Velocity))
		default:
			tr.Add(ev.Delta, midi.NoteOffVelocity(0, ev.Key, ev.Velocity))
		}
	}
	tr.Close(0)
	s.Add(tr)
}

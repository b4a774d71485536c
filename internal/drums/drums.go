// Package drums assembles a drum performance by stitching prerecorded
// MIDI fragments onto the structural regions of a target beat grid.
package drums

import "errors"

// Errors returned by the sequencer. Both are fatal for the run and can
// be checked with errors.Is.
var (
	// ErrNoFragment is returned when a region draws from an empty
	// fragment category.
	ErrNoFragment = errors.New("beatsmith: no fragment available")

	// ErrEmptyGrid is returned when the target grid has fewer than one
	// beat.
	ErrEmptyGrid = errors.New("beatsmith: target grid has no beats")
)

// Kind distinguishes note-on from note-off events.
type Kind uint8

const (
	NoteOn Kind = iota
	NoteOff
)

// Event is a single percussive note event, timed as a tick delta from
// the previous event.
type Event struct {
	Delta    uint32
	Kind     Kind
	Key      uint8
	Velocity uint8
}

// Fragment is a short prerecorded sequence of drum events. Fragments are
// immutable once loaded; the sequencer copies events before shifting
// them.
type Fragment []Event

// Library is the categorized fragment collection supplied by an external
// loader. A category may be empty; drawing from an empty category aborts
// assembly.
type Library struct {
	Start              []Fragment
	MidRegular         []Fragment
	MidTransitionSmall []Fragment
	MidTransitionBig   []Fragment
	End                []Fragment
}

package drums

import "fmt"

// midRotation is the fixed draw order for mid-region slots.
var midRotation = [...]string{
	"mid/regular",
	"mid/transition/small",
	"mid/regular",
	"mid/transition/big",
}

// Sequencer walks a target beat grid through the start, mid and end
// regions and assembles one drum track from library fragments. Region
// widths are heuristic constants in beat units; the assembled track may
// slightly overrun or underrun the target's true duration.
type Sequencer struct {
	TicksPerBeat uint32
	BeatsPerBar  int
	Picker       Picker
}

// Assemble builds the drum track for a grid of totalBeats beats.
// prefixBeat is the phase offset produced by the timeline merge; the
// first fragment's pickup is pushed past the lead-in silence by
// prefixBeat+1 beats of ticks. Drawing from an empty category aborts
// with ErrNoFragment before any later region is processed.
func (s *Sequencer) Assemble(totalBeats int, lib Library, prefixBeat int) (Fragment, error) {
	if totalBeats < 1 {
		return nil, ErrEmptyGrid
	}

	startWidth := 4*s.BeatsPerBar + prefixBeat + 1
	midWidth := 2 * s.BeatsPerBar
	endWidth := 5 * s.BeatsPerBar

	var out Fragment
	cursor := 0

	if cursor < startWidth {
		frag, err := s.draw(lib.Start, "start")
		if err != nil {
			return nil, err
		}
		for _, ev := range frag {
			if len(out) == 0 {
				ev.Delta += s.TicksPerBeat * uint32(prefixBeat+1)
			}
			out = append(out, ev)
		}
		cursor += startWidth
	}

	rotation := 0
	for cursor < totalBeats-endWidth {
		var frags []Fragment
		category := midRotation[rotation%len(midRotation)]
		switch category {
		case "mid/regular":
			frags = lib.MidRegular
		case "mid/transition/small":
			frags = lib.MidTransitionSmall
		default:
			frags = lib.MidTransitionBig
		}
		frag, err := s.draw(frags, category)
		if err != nil {
			return nil, err
		}
		out = append(out, frag...)
		cursor += midWidth
		rotation++
	}

	if cursor < totalBeats {
		frag, err := s.draw(lib.End, "end")
		if err != nil {
			return nil, err
		}
		out = append(out, frag...)
		cursor += endWidth
	}

	return out, nil
}

func (s *Sequencer) draw(frags []Fragment, category string) (Fragment, error) {
	if len(frags) == 0 {
		return nil, fmt.Errorf("%w in category %s", ErrNoFragment, category)
	}
	return frags[s.Picker.Pick(len(frags))], nil
}

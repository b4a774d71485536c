package drums

import (
	"errors"
	"testing"
)

// firstPicker always selects index 0.
type firstPicker struct{}

func (firstPicker) Pick(n int) int { return 0 }

func singleFragmentLibrary() Library {
	frag := func(key uint8) Fragment {
		return Fragment{
			{Delta: 0, Kind: NoteOn, Key: key, Velocity: 100},
			{Delta: 240, Kind: NoteOff, Key: key, Velocity: 64},
		}
	}
	return Library{
		Start:              []Fragment{frag(36)},
		MidRegular:         []Fragment{frag(38)},
		MidTransitionSmall: []Fragment{frag(42)},
		MidTransitionBig:   []Fragment{frag(49)},
		End:                []Fragment{frag(51)},
	}
}

func TestAssembleEmptyGrid(t *testing.T) {
	seq := &Sequencer{TicksPerBeat: 480, BeatsPerBar: 4, Picker: firstPicker{}}

	if _, err := seq.Assemble(0, singleFragmentLibrary(), 0); !errors.Is(err, ErrEmptyGrid) {
		t.Fatalf("err = %v, want ErrEmptyGrid", err)
	}
}

func TestAssemblePrefixShiftsFirstEvent(t *testing.T) {
	seq := &Sequencer{TicksPerBeat: 480, BeatsPerBar: 4, Picker: firstPicker{}}

	out, err := seq.Assemble(8, singleFragmentLibrary(), 2)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}
	if len(out) == 0 {
		t.Fatal("no events assembled")
	}
	// Three beats of lead-in: prefix 2 plus one.
	if out[0].Delta != 3*480 {
		t.Errorf("first delta = %d, want %d", out[0].Delta, 3*480)
	}
	if out[1].Delta != 240 {
		t.Errorf("second delta = %d, want fragment timing untouched", out[1].Delta)
	}
}

func TestAssembleRegionOrder(t *testing.T) {
	seq := &Sequencer{TicksPerBeat: 480, BeatsPerBar: 4, Picker: firstPicker{}}

	// Start region covers 17 beats, end region 20; four mid slots of 8
	// beats fit in between before the cursor crosses 69-20.
	out, err := seq.Assemble(69, singleFragmentLibrary(), 0)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var keys []uint8
	for _, ev := range out {
		if ev.Kind == NoteOn {
			keys = append(keys, ev.Key)
		}
	}
	want := []uint8{36, 38, 42, 38, 49, 51}
	if len(keys) != len(want) {
		t.Fatalf("note-on keys = %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %d, want %d (rotation out of order)", i, keys[i], want[i])
		}
	}
}

func TestAssembleDeterministicWithSingleFragments(t *testing.T) {
	lib := singleFragmentLibrary()

	var outputs []Fragment
	for _, seed := range []int64{1, 42, 99} {
		seq := &Sequencer{TicksPerBeat: 480, BeatsPerBar: 4, Picker: NewRandPicker(seed)}
		out, err := seq.Assemble(69, lib, 1)
		if err != nil {
			t.Fatalf("Assemble(seed %d): %v", seed, err)
		}
		outputs = append(outputs, out)
	}

	for i := 1; i < len(outputs); i++ {
		if len(outputs[i]) != len(outputs[0]) {
			t.Fatalf("output %d has %d events, output 0 has %d", i, len(outputs[i]), len(outputs[0]))
		}
		for j := range outputs[i] {
			if outputs[i][j] != outputs[0][j] {
				t.Fatalf("outputs diverge at event %d: %v vs %v", j, outputs[i][j], outputs[0][j])
			}
		}
	}
}

func TestAssembleEmptyCategoryAborts(t *testing.T) {
	lib := singleFragmentLibrary()
	lib.MidTransitionSmall = nil

	seq := &Sequencer{TicksPerBeat: 480, BeatsPerBar: 4, Picker: firstPicker{}}

	out, err := seq.Assemble(69, lib, 0)
	if !errors.Is(err, ErrNoFragment) {
		t.Fatalf("err = %v, want ErrNoFragment", err)
	}
	if out != nil {
		t.Errorf("out = %v, want nil on abort", out)
	}
}

func TestAssembleShortGridSkipsMid(t *testing.T) {
	lib := singleFragmentLibrary()
	lib.MidRegular = nil // must not be touched when no mid slot fits

	seq := &Sequencer{TicksPerBeat: 480, BeatsPerBar: 4, Picker: firstPicker{}}

	// 17 start beats + 20 end beats leave no room for mid slots.
	out, err := seq.Assemble(30, lib, 0)
	if err != nil {
		t.Fatalf("Assemble: %v", err)
	}

	var keys []uint8
	for _, ev := range out {
		if ev.Kind == NoteOn {
			keys = append(keys, ev.Key)
		}
	}
	want := []uint8{36, 51}
	if len(keys) != len(want) || keys[0] != want[0] || keys[1] != want[1] {
		t.Errorf("note-on keys = %v, want %v", keys, want)
	}
}

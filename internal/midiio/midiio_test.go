package midiio

import (
	"path/filepath"
	"testing"

	"gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/smf"

	"github.com/beatsmith/beatsmith/internal/drums"
	"github.com/beatsmith/beatsmith/internal/timeline"
)

func writeFragmentFile(t *testing.T, path string, keys ...uint8) {
	t.Helper()

	s := smf.New()
	s.TimeFormat = smf.MetricTicks(480)

	var tr smf.Track
	for _, k := range keys {
		tr.Add(0, midi.NoteOn(0, k, 100))
		tr.Add(240, midi.NoteOffVelocity(0, k, 64))
	}
	tr.Close(0)
	s.Add(tr)

	if err := WriteSMF(path, s); err != nil {
		t.Fatalf("write fragment %s: %v", path, err)
	}
}

func TestReadFragment(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "loop.mid")
	writeFragmentFile(t, path, 36, 38)

	frag, err := ReadFragment(path)
	if err != nil {
		t.Fatalf("ReadFragment: %v", err)
	}

	want := drums.Fragment{
		{Delta: 0, Kind: drums.NoteOn, Key: 36, Velocity: 100},
		{Delta: 240, Kind: drums.NoteOff, Key: 36, Velocity: 64},
		{Delta: 0, Kind: drums.NoteOn, Key: 38, Velocity: 100},
		{Delta: 240, Kind: drums.NoteOff, Key: 38, Velocity: 64},
	}
	if len(frag) != len(want) {
		t.Fatalf("fragment = %v, want %v", frag, want)
	}
	for i := range want {
		if frag[i] != want[i] {
			t.Errorf("fragment[%d] = %v, want %v", i, frag[i], want[i])
		}
	}
}

func TestWriteSongRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mid")

	beats := []float64{0.0, 0.5, 1.0}
	markers := []timeline.Marker{{Position: 1.0, Label: "verse"}}

	if err := WriteSong(path, 480, beats, markers); err != nil {
		t.Fatalf("WriteSong: %v", err)
	}

	s, err := ReadSMF(path)
	if err != nil {
		t.Fatalf("ReadSMF: %v", err)
	}
	if len(s.Tracks) != 3 {
		t.Fatalf("tracks = %d, want time signature, tempo and markers", len(s.Tracks))
	}

	res, ok := Resolution(s)
	if !ok || res != 480 {
		t.Errorf("resolution = %d (%v), want 480", res, ok)
	}

	var bpms []float64
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			var bpm float64
			if ev.Message.GetMetaTempo(&bpm) {
				bpms = append(bpms, bpm)
			}
		}
	}
	if len(bpms) != 2 {
		t.Fatalf("tempo events = %v, want two 120 BPM intervals", bpms)
	}
	for _, bpm := range bpms {
		if bpm < 119.99 || bpm > 120.01 {
			t.Errorf("bpm = %v, want 120", bpm)
		}
	}

	var label string
	found := false
	for _, tr := range s.Tracks {
		for _, ev := range tr {
			if ev.Message.GetMetaMarker(&label) {
				found = true
			}
		}
	}
	if !found || label != "verse" {
		t.Errorf("marker = %q (found %v), want verse", label, found)
	}
}

func TestBeatGrid(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "song.mid")

	if err := WriteSong(path, 480, []float64{0.0, 0.5, 1.0, 1.5}, nil); err != nil {
		t.Fatalf("WriteSong: %v", err)
	}
	s, err := ReadSMF(path)
	if err != nil {
		t.Fatalf("ReadSMF: %v", err)
	}

	grid := BeatGrid(s, 480)

	// Three intervals produce three tempo events, each one beat apart,
	// starting one beat into the grid.
	want := []uint32{480, 960, 1440}
	if len(grid) != len(want) {
		t.Fatalf("grid = %v, want %v", grid, want)
	}
	for i := range want {
		if grid[i] != want[i] {
			t.Errorf("grid[%d] = %d, want %d", i, grid[i], want[i])
		}
	}
}

func TestAppendDrumTrack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.mid")

	if err := WriteSong(path, 480, []float64{0.0, 0.5}, nil); err != nil {
		t.Fatalf("WriteSong: %v", err)
	}
	s, err := ReadSMF(path)
	if err != nil {
		t.Fatalf("ReadSMF: %v", err)
	}
	before := len(s.Tracks)

	AppendDrumTrack(s, drums.Fragment{
		{Delta: 480, Kind: drums.NoteOn, Key: 36, Velocity: 100},
		{Delta: 240, Kind: drums.NoteOff, Key: 36, Velocity: 64},
	})

	if err := WriteSMF(path, s); err != nil {
		t.Fatalf("WriteSMF: %v", err)
	}
	reread, err := ReadSMF(path)
	if err != nil {
		t.Fatalf("ReadSMF after append: %v", err)
	}
	if len(reread.Tracks) != before+1 {
		t.Fatalf("tracks = %d, want %d", len(reread.Tracks), before+1)
	}

	var ch, key, vel uint8
	notes := 0
	for _, ev := range reread.Tracks[len(reread.Tracks)-1] {
		if ev.Message.GetNoteOn(&ch, &key, &vel) || ev.Message.GetNoteOff(&ch, &key, &vel) {
			notes++
		}
	}
	if notes != 2 {
		t.Errorf("note events in drum track = %d, want 2", notes)
	}
}

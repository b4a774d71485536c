package app

import (
	"fmt"
	"time"

	"github.com/beatsmith/beatsmith/internal/cliconfig"
	"github.com/beatsmith/beatsmith/internal/drums"
	"github.com/beatsmith/beatsmith/internal/midiio"
)

// RunDrums reads the target file's beat grid, assembles a drum track
// from the loop library, appends it and writes the result.
func RunDrums(cfg cliconfig.Config) error {
	log := cliconfig.Logger()

	target, err := midiio.ReadSMF(cfg.Target)
	if err != nil {
		return fmt.Errorf("load target: %w", err)
	}

	// Prefer the target's own resolution; fall back to the configured
	// one for files without metric timing.
	resolution := uint32(cfg.Ticks)
	if r, ok := midiio.Resolution(target); ok {
		resolution = r
	}

	grid := midiio.BeatGrid(target, resolution)

	lib, err := midiio.LoadLibrary(cfg.Loops)
	if err != nil {
		return fmt.Errorf("load loop library: %w", err)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	seq := &drums.Sequencer{
		TicksPerBeat: resolution,
		BeatsPerBar:  cfg.BeatsPerBar,
		Picker:       drums.NewRandPicker(seed),
	}
	track, err := seq.Assemble(len(grid), lib, cfg.PrefixBeat)
	if err != nil {
		return err
	}

	midiio.AppendDrumTrack(target, track)
	if err := midiio.WriteSMF(cfg.Output, target); err != nil {
		return err
	}

	log.Info().
		Int("beats", len(grid)).
		Int("events", len(track)).
		Str("output", cfg.Output).
		Msg("wrote drum track")
	return nil
}

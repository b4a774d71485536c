// Package app wires the pipelines together: beat documents in, MIDI
// files out.
package app

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/beatsmith/beatsmith/internal/beatdoc"
	"github.com/beatsmith/beatsmith/internal/cliconfig"
	"github.com/beatsmith/beatsmith/internal/midiio"
	"github.com/beatsmith/beatsmith/internal/timeline"
)

// RunConvert merges the beat documents, renders the tempo map and
// markers, and writes the output file. It returns the prefix beat of the
// final timeline so drum assembly can align its first fragment.
func RunConvert(cfg cliconfig.Config) (int, error) {
	log := cliconfig.Logger()

	primary, err := beatdoc.Load(cfg.BeatDoc)
	if err != nil {
		return 0, fmt.Errorf("load beat document: %w", err)
	}

	line := timeline.Timeline{
		Beats:     primary.Beats,
		Positions: primary.BeatPositions,
		Downbeats: primary.Downbeats,
	}
	prefix := timeline.PrefixBeat(line.Positions)

	if cfg.BeatDoc2 != "" {
		secondary, err := beatdoc.Load(cfg.BeatDoc2)
		if err != nil {
			return 0, fmt.Errorf("load secondary beat document: %w", err)
		}
		line, prefix = timeline.Merge(line, secondary.Beats, secondary.Downbeats, cfg.Tolerance)
	}

	segments := primary.Segments
	if cfg.SegmentDoc != "" {
		if cliconfig.FileExists(cfg.SegmentDoc) {
			segdoc, err := beatdoc.Load(cfg.SegmentDoc)
			if err != nil {
				return 0, fmt.Errorf("load segment document: %w", err)
			}
			segments = segdoc.Segments
		} else {
			log.Warn().Str("path", cfg.SegmentDoc).Msg("segment document missing, using embedded segments")
		}
	}

	markers := timeline.ProjectMarkers(line.Beats, toSegments(segments))

	if err := midiio.WriteSong(cfg.Output, uint16(cfg.Ticks), line.Beats, markers); err != nil {
		return 0, err
	}

	log.Info().
		Int("beats", len(line.Beats)).
		Int("downbeats", len(line.Downbeats)).
		Int("markers", len(markers)).
		Int("prefix_beat", prefix).
		Str("output", cfg.Output).
		Msg("wrote tempo map")

	if cfg.PrefixOut != "" {
		if err := writePrefix(cfg.PrefixOut, prefix); err != nil {
			return prefix, fmt.Errorf("write prefix: %w", err)
		}
	}
	return prefix, nil
}

func toSegments(in []beatdoc.Segment) []timeline.Segment {
	out := make([]timeline.Segment, len(in))
	for i, s := range in {
		out[i] = timeline.Segment{Start: s.Start, Label: s.Label}
	}
	return out
}

// writePrefix records the phase offset so a later drums invocation can
// pick it up.
func writePrefix(path string, prefix int) error {
	b, err := json.Marshal(map[string]int{"prefix_beat": prefix})
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

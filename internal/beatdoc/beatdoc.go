// Package beatdoc loads the JSON beat analysis documents produced by the
// upstream beat trackers. Shape validation happens here, at the load
// boundary; the core algorithms assume well-formed inputs.
package beatdoc

import (
	"encoding/json"
	"fmt"
	"os"
)

// Document is a beat analysis. The primary document carries beats, bar
// positions, downbeats and optionally segments; a secondary document
// carries only beats and downbeats.
type Document struct {
	Beats         []float64 `json:"beats"`
	BeatPositions []int     `json:"beat_positions"`
	Downbeats     []float64 `json:"downbeats"`
	Segments      []Segment `json:"segments"`
}

// Segment is a structural boundary with a label.
type Segment struct {
	Start float64 `json:"start"`
	Label string  `json:"label"`
}

// Load reads and validates a beat document.
func Load(path string) (Document, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Document{}, err
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return Document{}, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := doc.Validate(); err != nil {
		return Document{}, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Validate checks the document's shape.
func (d Document) Validate() error {
	if len(d.BeatPositions) > 0 && len(d.BeatPositions) != len(d.Beats) {
		return fmt.Errorf("beat_positions has %d entries for %d beats",
			len(d.BeatPositions), len(d.Beats))
	}
	for i := 1; i < len(d.Beats); i++ {
		if d.Beats[i] <= d.Beats[i-1] {
			return fmt.Errorf("beats not strictly increasing at index %d (%v after %v)",
				i, d.Beats[i], d.Beats[i-1])
		}
	}
	return nil
}

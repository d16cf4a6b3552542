// Package export writes generated recordings to disk as CSV or JSON.
package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/vitalsynth/vitalsynth/synth"
)

// Recording bundles a generated signal with its provenance.
type Recording struct {
	ID           string       `json:"id"`
	Family       string       `json:"family"`
	SamplingRate float64      `json:"sampling_rate"`
	Duration     float64      `json:"duration"`
	CreatedAt    time.Time    `json:"created_at"`
	Seed         *int64       `json:"seed,omitempty"`
	Preset       string       `json:"preset,omitempty"`
	Samples      synth.Signal `json:"samples"`
}

// NewRecording stamps a signal with a fresh recording ID.
func NewRecording(family string, tb synth.TimeBase, samples synth.Signal) *Recording {
	return &Recording{
		ID:           uuid.New().String(),
		Family:       family,
		SamplingRate: tb.SamplingRate,
		Duration:     tb.Duration,
		CreatedAt:    time.Now().UTC(),
		Samples:      samples,
	}
}

// WriteJSON writes the recording as a single JSON document.
func (r *Recording) WriteJSON(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode recording: %w", err)
	}
	return nil
}

// WriteCSV writes one time/value row per sample. Provenance goes in a
// comment-style header row so the file stays self-describing.
func (r *Recording) WriteCSV(path string, tb synth.TimeBase) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "# id=%s family=%s sampling_rate=%g duration=%g\n",
		r.ID, r.Family, r.SamplingRate, r.Duration); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	w := csv.NewWriter(f)
	if err := w.Write([]string{"time_s", "value"}); err != nil {
		return fmt.Errorf("write column header: %w", err)
	}
	for i, v := range r.Samples {
		row := []string{
			strconv.FormatFloat(tb.Time[i], 'g', -1, 64),
			strconv.FormatFloat(v, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	w.Flush()
	return w.Error()
}

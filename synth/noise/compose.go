package noise

import (
	"fmt"

	"github.com/vitalsynth/vitalsynth/synth"
)

// OverlayType identifies a directly placed artifact used by the composition
// helpers: a single-sample spike or a rectangular step.
type OverlayType string

const (
	Spike OverlayType = "spike"
	Step  OverlayType = "step"
)

// Add overlays noise of the requested type onto an existing signal and
// returns a new signal; the input is never mutated.
func (s *Synthesizer) Add(signal synth.Signal, typ Type, p Params) (synth.Signal, error) {
	if len(signal) != s.tb.NSamples {
		return nil, fmt.Errorf("%w: signal length %d does not match time base length %d",
			synth.ErrInvalidParameter, len(signal), s.tb.NSamples)
	}
	n, err := s.Generate(typ, p)
	if err != nil {
		return nil, err
	}
	return signal.Add(n), nil
}

// AddArtifact overlays a spike or step artifact at an explicit start time and
// returns a new signal. Artifacts running past the end of the record are
// clipped.
func (s *Synthesizer) AddArtifact(signal synth.Signal, typ OverlayType, startTime, duration, amplitude float64) (synth.Signal, error) {
	if len(signal) != s.tb.NSamples {
		return nil, fmt.Errorf("%w: signal length %d does not match time base length %d",
			synth.ErrInvalidParameter, len(signal), s.tb.NSamples)
	}
	if startTime < 0 || startTime >= s.tb.Duration {
		return nil, fmt.Errorf("%w: artifact start %gs outside signal duration %gs",
			synth.ErrInvalidParameter, startTime, s.tb.Duration)
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: artifact duration must be positive, got %g", synth.ErrInvalidParameter, duration)
	}

	out := signal.Copy()
	start := s.tb.SampleIndex(startTime)
	switch typ {
	case Spike:
		out[start] += amplitude
	case Step:
		n := s.tb.SampleCount(duration)
		synth.PlaceAt(out, constant(amplitude, n), start, 1, synth.EdgeClip)
	default:
		return nil, fmt.Errorf("%w: artifact type %q", synth.ErrUnsupportedType, typ)
	}
	return out, nil
}

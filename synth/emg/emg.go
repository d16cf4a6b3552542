// Package emg synthesizes surface electromyography by stochastic
// superposition of motor-unit action potentials under contraction-pattern
// control, with optional fatigue decay.
package emg

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/kernels"
)

// PatternType selects a contraction pattern.
type PatternType string

const (
	Isometric  PatternType = "isometric"
	Dynamic    PatternType = "dynamic"
	Repetitive PatternType = "repetitive"
	Complex    PatternType = "complex"
)

// EnvelopeType selects the intensity envelope for dynamic contractions.
type EnvelopeType string

const (
	Ramp EnvelopeType = "ramp"
	Sine EnvelopeType = "sine"
)

// Firing-rate model: rate(t) = baseRate + rateRange * intensity(t), the linear
// map from normalized activation onto the physiological 50-500 Hz band.
const (
	baseRate  = 50.0
	rateRange = 450.0
)

// Movement is one segment of a complex pattern.
type Movement struct {
	Type      PatternType
	Duration  float64
	Intensity float64
}

// Params configures EMG generation.
type Params struct {
	Pattern PatternType
	// Intensity is the normalized activation level in [0, 1].
	Intensity float64
	// Duration is the contraction span in seconds; 0 means the full record.
	Duration float64
	// FatigueRate, when positive, applies an exp(-rate*t/duration) decay.
	FatigueRate float64
	// Envelope selects the dynamic-contraction shape; CustomEnvelope, when
	// non-nil, overrides it with a caller trajectory resampled to the record.
	Envelope       EnvelopeType
	CustomEnvelope []float64
	// MaxIntensity caps dynamic envelopes.
	MaxIntensity float64
	// Frequency and DutyCycle drive repetitive movement cycles.
	Frequency float64
	DutyCycle float64
	// RestIntensity is the background activation between repetitive bursts.
	RestIntensity float64
	// Movements describes a complex pattern; Overlap superposes segments
	// instead of concatenating them.
	Movements []Movement
	Overlap   bool
	Seed      *int64
}

// DefaultParams returns an isometric contraction at half activation.
func DefaultParams() Params {
	return Params{
		Pattern:       Isometric,
		Intensity:     0.5,
		Envelope:      Ramp,
		MaxIntensity:  0.8,
		Frequency:     1.0,
		DutyCycle:     0.5,
		RestIntensity: 0.1,
	}
}

// Synthesizer generates EMG signals on a fixed time base.
type Synthesizer struct {
	tb  synth.TimeBase
	rng *rand.Rand
}

// New creates an EMG synthesizer over the given time base.
func New(tb synth.TimeBase, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{tb: tb, rng: rng}
}

// TimeBase returns the synthesizer's time base.
func (s *Synthesizer) TimeBase() synth.TimeBase { return s.tb }

var patterns = map[PatternType]func(*Synthesizer, Params) (synth.Signal, error){
	Isometric:  (*Synthesizer).isometric,
	Dynamic:    (*Synthesizer).dynamic,
	Repetitive: (*Synthesizer).repetitive,
	Complex:    (*Synthesizer).complexPattern,
}

// Generate produces an EMG signal for the configured contraction pattern.
func (s *Synthesizer) Generate(p Params) (synth.Signal, error) {
	if p.Pattern == "" {
		p.Pattern = Isometric
	}
	gen, ok := patterns[p.Pattern]
	if !ok {
		return nil, fmt.Errorf("%w: EMG pattern %q", synth.ErrUnsupportedType, p.Pattern)
	}
	if err := s.validate(p); err != nil {
		return nil, err
	}
	if p.Seed != nil {
		s.rng = synth.NewRNG(*p.Seed)
	}
	return gen(s, p)
}

func (s *Synthesizer) validate(p Params) error {
	if p.Intensity < 0 || p.Intensity > 1 {
		return fmt.Errorf("%w: intensity must be in [0, 1], got %g", synth.ErrInvalidParameter, p.Intensity)
	}
	if p.Duration < 0 || p.Duration > s.tb.Duration {
		return fmt.Errorf("%w: contraction duration %gs outside record duration %gs",
			synth.ErrInvalidParameter, p.Duration, s.tb.Duration)
	}
	switch p.Pattern {
	case Dynamic:
		if p.MaxIntensity < 0 || p.MaxIntensity > 1 {
			return fmt.Errorf("%w: max intensity must be in [0, 1], got %g", synth.ErrInvalidParameter, p.MaxIntensity)
		}
	case Repetitive:
		if p.Frequency <= 0 {
			return fmt.Errorf("%w: movement frequency must be positive, got %g", synth.ErrInvalidParameter, p.Frequency)
		}
		if p.DutyCycle <= 0 || p.DutyCycle > 1 {
			return fmt.Errorf("%w: duty cycle must be in (0, 1], got %g", synth.ErrInvalidParameter, p.DutyCycle)
		}
	case Complex:
		if len(p.Movements) == 0 {
			return fmt.Errorf("%w: complex pattern requires at least one movement", synth.ErrInvalidParameter)
		}
		total, longest := 0.0, 0.0
		for _, m := range p.Movements {
			if m.Duration <= 0 {
				return fmt.Errorf("%w: movement duration must be positive, got %g", synth.ErrInvalidParameter, m.Duration)
			}
			total += m.Duration
			longest = math.Max(longest, m.Duration)
		}
		span := total
		if p.Overlap {
			span = longest
		}
		if span > s.tb.Duration {
			return fmt.Errorf("%w: total movement duration %gs exceeds record duration %gs",
				synth.ErrInvalidParameter, span, s.tb.Duration)
		}
	}
	return nil
}

// placeMUAPs realizes the firing point process over the envelope: each sample
// runs a Bernoulli trial at probability rate(t)/fs (a discrete-time Poisson
// approximation) and on success adds one MUAP kernel scaled by
// (0.7 + 0.3*intensity) * U(0.9, 1.1).
func (s *Synthesizer) placeMUAPs(buf synth.Signal, envelope []float64) {
	muap := kernels.MUAP(s.tb.SamplingRate)
	for i := range buf {
		intensity := envelope[i]
		rate := baseRate + rateRange*intensity
		if s.rng.Float64() >= rate/s.tb.SamplingRate {
			continue
		}
		amp := (0.7 + 0.3*intensity) * (0.9 + 0.2*s.rng.Float64())
		synth.PlaceAt(buf, muap, i, amp, synth.EdgeClip)
	}
}

// segment builds a contraction of the given length with a constant intensity.
func (s *Synthesizer) segment(nSamples int, intensity, fatigueRate float64) synth.Signal {
	out := make(synth.Signal, nSamples)
	env := make([]float64, nSamples)
	for i := range env {
		env[i] = intensity
	}
	s.placeMUAPs(out, env)
	if fatigueRate > 0 {
		applyFatigue(out, fatigueRate)
	}
	return out
}

// applyFatigue multiplies the signal by exp(-rate * t / duration).
func applyFatigue(buf synth.Signal, rate float64) {
	n := len(buf)
	for i := range buf {
		buf[i] *= math.Exp(-rate * float64(i) / float64(max(n-1, 1)))
	}
}

func (s *Synthesizer) isometric(p Params) (synth.Signal, error) {
	duration := p.Duration
	if duration == 0 {
		duration = s.tb.Duration
	}
	out := s.tb.NewBuffer()
	seg := s.segment(s.tb.SampleCount(duration), p.Intensity, p.FatigueRate)
	synth.PlaceAt(out, seg, 0, 1, synth.EdgeClip)
	return out, nil
}

func (s *Synthesizer) dynamic(p Params) (synth.Signal, error) {
	env, err := s.intensityEnvelope(p)
	if err != nil {
		return nil, err
	}
	out := s.tb.NewBuffer()
	s.placeMUAPs(out, env)
	if p.FatigueRate > 0 {
		applyFatigue(out, p.FatigueRate)
	}
	return out, nil
}

func (s *Synthesizer) intensityEnvelope(p Params) ([]float64, error) {
	n := s.tb.NSamples
	if p.CustomEnvelope != nil {
		return synth.Resample(p.CustomEnvelope, n), nil
	}
	env := make([]float64, n)
	switch p.Envelope {
	case Ramp, "":
		for i, t := range s.tb.Time {
			env[i] = t / s.tb.Duration * p.MaxIntensity
		}
	case Sine:
		for i, t := range s.tb.Time {
			env[i] = p.MaxIntensity / 2 * (1 + math.Sin(2*math.Pi*t))
		}
	default:
		return nil, fmt.Errorf("%w: dynamic envelope %q", synth.ErrUnsupportedType, p.Envelope)
	}
	return env, nil
}

// repetitive alternates contraction and rest segments on a duty cycle.
func (s *Synthesizer) repetitive(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	period := 1 / p.Frequency
	nCycles := int(s.tb.Duration / period)
	for c := 0; c < nCycles; c++ {
		cycleStart := s.tb.SampleIndex(float64(c) * period)
		activeSamples := s.tb.SampleCount(period * p.DutyCycle)
		restSamples := s.tb.SampleCount(period) - activeSamples

		active := s.segment(activeSamples, p.Intensity, 0)
		synth.PlaceAt(out, active, cycleStart, 1, synth.EdgeClip)
		if restSamples > 0 {
			rest := s.segment(restSamples, p.RestIntensity, 0)
			synth.PlaceAt(out, rest, cycleStart+activeSamples, 1, synth.EdgeClip)
		}
	}
	if p.FatigueRate > 0 {
		applyFatigue(out, p.FatigueRate)
	}
	return out, nil
}

// complexPattern concatenates (or, with Overlap, superposes) movement
// segments built from the simpler patterns.
func (s *Synthesizer) complexPattern(p Params) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	offset := 0
	for _, m := range p.Movements {
		seg, err := s.movementSegment(m)
		if err != nil {
			return nil, err
		}
		start := offset
		if p.Overlap {
			start = 0
		}
		synth.PlaceAt(out, seg, start, 1, synth.EdgeClip)
		offset += len(seg)
	}
	if p.FatigueRate > 0 {
		applyFatigue(out, p.FatigueRate)
	}
	return out, nil
}

func (s *Synthesizer) movementSegment(m Movement) (synth.Signal, error) {
	n := s.tb.SampleCount(m.Duration)
	switch m.Type {
	case Isometric:
		return s.segment(n, m.Intensity, 0), nil
	case Dynamic:
		seg := make(synth.Signal, n)
		env := make([]float64, n)
		for i := range env {
			env[i] = float64(i) / float64(max(n-1, 1)) * m.Intensity
		}
		s.placeMUAPs(seg, env)
		return seg, nil
	case Repetitive:
		seg := make(synth.Signal, n)
		period := s.tb.SampleCount(1.0) // 1 Hz cycles within the segment
		if period < 1 {
			period = 1
		}
		for start := 0; start < n; start += period {
			active := min(period/2, n-start)
			burst := s.segment(active, m.Intensity, 0)
			synth.PlaceAt(seg, burst, start, 1, synth.EdgeClip)
		}
		return seg, nil
	default:
		return nil, fmt.Errorf("%w: movement type %q", synth.ErrUnsupportedType, m.Type)
	}
}

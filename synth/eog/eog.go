// Package eog synthesizes electrooculography traces: saccades driven by the
// oculomotor main-sequence relation, smooth pursuit trajectories, fixational
// drift/tremor/microsaccades, and blink profiles.
package eog

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/kernels"
)

// MovementType selects the eye-movement family.
type MovementType string

const (
	Saccades MovementType = "saccades"
	Pursuit  MovementType = "pursuit"
	Fixation MovementType = "fixation"
)

// Direction is the movement axis.
type Direction string

const (
	Horizontal Direction = "horizontal"
	Vertical   Direction = "vertical"
)

// PursuitPattern selects the smooth-pursuit trajectory.
type PursuitPattern string

const (
	Linear     PursuitPattern = "linear"
	Sinusoidal PursuitPattern = "sinusoidal"
	Circular   PursuitPattern = "circular"
	Custom     PursuitPattern = "custom"
)

// Main-sequence relation: saccade duration and peak velocity grow linearly
// with amplitude.
const (
	interSaccadeGap = 0.05 // seconds between consecutive saccades
	msBaseDuration  = 0.02 // seconds
	msDurationSlope = 0.002
	msBaseVelocity  = 200.0 // deg/s
	msVelocitySlope = 20.0
)

// SaccadeSpec describes one saccade. Duration and PeakVelocity of 0 fall back
// to the main-sequence relation.
type SaccadeSpec struct {
	Amplitude    float64
	Direction    Direction
	Duration     float64
	PeakVelocity float64
}

// BlinkParams configures blink generation.
type BlinkParams struct {
	NBlinks      int
	Duration     float64
	AmplitudeMin float64
	AmplitudeMax float64
	MinInterval  float64
	// NaturalVariability jitters duration and amplitude per blink and allows
	// occasional partial blinks.
	NaturalVariability bool
}

// DefaultBlinkParams returns three natural blinks.
func DefaultBlinkParams() BlinkParams {
	return BlinkParams{
		NBlinks:            3,
		Duration:           0.2,
		AmplitudeMin:       0.8,
		AmplitudeMax:       1.2,
		MinInterval:        0.5,
		NaturalVariability: true,
	}
}

// Params configures EOG generation.
type Params struct {
	Movement MovementType
	// Saccades explicitly lists the saccades to render. When empty, NSaccades
	// random saccades in [-Amplitude, Amplitude] along Direction are used.
	Saccades  []SaccadeSpec
	NSaccades int
	// Amplitude is the movement amplitude in degrees.
	Amplitude float64
	// Pursuit trajectory controls.
	Pattern          PursuitPattern
	Frequency        float64
	Direction        Direction
	CustomTrajectory []float64
	// Fixation controls.
	MicrosaccadeRate      float64
	MicrosaccadeAmplitude float64
	DriftAmplitude        float64
	TremorAmplitude       float64
	// Blink overlay.
	AddBlinks bool
	Blinks    BlinkParams
	Seed      *int64
}

// DefaultParams returns five random horizontal saccades of up to 10 degrees.
func DefaultParams() Params {
	return Params{
		Movement:              Saccades,
		NSaccades:             5,
		Amplitude:             10,
		Pattern:               Sinusoidal,
		Frequency:             0.5,
		Direction:             Horizontal,
		MicrosaccadeRate:      2.0,
		MicrosaccadeAmplitude: 0.2,
		DriftAmplitude:        0.5,
		TremorAmplitude:       0.1,
		Blinks:                DefaultBlinkParams(),
	}
}

// Synthesizer generates EOG signals on a fixed time base.
type Synthesizer struct {
	tb  synth.TimeBase
	rng *rand.Rand
}

// New creates an EOG synthesizer over the given time base.
func New(tb synth.TimeBase, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{tb: tb, rng: rng}
}

// TimeBase returns the synthesizer's time base.
func (s *Synthesizer) TimeBase() synth.TimeBase { return s.tb }

// Generate produces an EOG signal for the configured movement type, with an
// optional blink overlay.
func (s *Synthesizer) Generate(p Params) (synth.Signal, error) {
	if p.Seed != nil {
		s.rng = synth.NewRNG(*p.Seed)
	}

	var (
		out synth.Signal
		err error
	)
	switch p.Movement {
	case Saccades, "":
		specs := p.Saccades
		if len(specs) == 0 {
			n := p.NSaccades
			if n <= 0 {
				n = 5
			}
			dir := p.Direction
			if dir == "" {
				dir = Horizontal
			}
			specs = make([]SaccadeSpec, n)
			for i := range specs {
				specs[i] = SaccadeSpec{
					Amplitude: (2*s.rng.Float64() - 1) * p.Amplitude,
					Direction: dir,
				}
			}
		}
		out, err = s.SimulateSaccades(specs)
	case Pursuit:
		out, err = s.SimulatePursuit(p)
	case Fixation:
		out, err = s.SimulateFixation(p)
	default:
		return nil, fmt.Errorf("%w: eye movement type %q", synth.ErrUnsupportedType, p.Movement)
	}
	if err != nil {
		return nil, err
	}

	if p.AddBlinks {
		blinks, err := s.SimulateBlinks(p.Blinks)
		if err != nil {
			return nil, err
		}
		out = out.Add(blinks)
	}
	return out, nil
}

// SimulateSaccades renders the given saccades sequentially with a fixed
// inter-saccade gap. Duration and peak velocity default to the main-sequence
// relation; downward vertical movements are sign-flipped.
func (s *Synthesizer) SimulateSaccades(specs []SaccadeSpec) (synth.Signal, error) {
	out := s.tb.NewBuffer()
	current := 0.0
	for _, spec := range specs {
		if spec.Direction == "" {
			spec.Direction = Horizontal
		}
		if spec.Direction != Horizontal && spec.Direction != Vertical {
			return nil, fmt.Errorf("%w: saccade direction %q", synth.ErrUnsupportedType, spec.Direction)
		}
		duration := spec.Duration
		if duration == 0 {
			duration = msBaseDuration + msDurationSlope*math.Abs(spec.Amplitude)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("%w: saccade duration must be positive, got %g", synth.ErrInvalidParameter, duration)
		}
		peakVelocity := spec.PeakVelocity
		if peakVelocity == 0 {
			peakVelocity = msBaseVelocity + msVelocitySlope*math.Abs(spec.Amplitude)
		}

		position := kernels.SaccadePosition(spec.Amplitude, duration, peakVelocity, s.tb.SamplingRate)
		if spec.Direction == Vertical && spec.Amplitude < 0 {
			position = position.Scale(-1)
		}
		synth.PlaceAt(out, position, s.tb.SampleIndex(current), 1, synth.EdgeSkip)
		current += duration + interSaccadeGap
	}
	return out, nil
}

// SimulatePursuit renders a smooth-pursuit trajectory spanning the record.
// The linear pattern adds small catch-up saccades at each cycle boundary to
// model pursuit lag.
func (s *Synthesizer) SimulatePursuit(p Params) (synth.Signal, error) {
	if p.Pattern != Custom && p.Frequency <= 0 {
		return nil, fmt.Errorf("%w: pursuit frequency must be positive, got %g", synth.ErrInvalidParameter, p.Frequency)
	}

	out := s.tb.NewBuffer()
	switch p.Pattern {
	case Linear:
		for i, t := range s.tb.Time {
			phase := math.Mod(2*math.Pi*p.Frequency*t, 2*math.Pi)
			out[i] = p.Amplitude * (phase/math.Pi - 1)
		}
		s.addCatchUpSaccades(out, p)
	case Sinusoidal:
		for i, t := range s.tb.Time {
			out[i] = p.Amplitude * math.Sin(2*math.Pi*p.Frequency*t)
		}
	case Circular:
		// One axis of the orthogonal sine/cosine pair.
		for i, t := range s.tb.Time {
			if p.Direction == Vertical {
				out[i] = p.Amplitude * math.Sin(2*math.Pi*p.Frequency*t)
			} else {
				out[i] = p.Amplitude * math.Cos(2*math.Pi*p.Frequency*t)
			}
		}
	case Custom:
		if len(p.CustomTrajectory) == 0 {
			return nil, fmt.Errorf("%w: custom pursuit requires a trajectory", synth.ErrInvalidParameter)
		}
		copy(out, synth.Resample(p.CustomTrajectory, s.tb.NSamples))
	default:
		return nil, fmt.Errorf("%w: pursuit pattern %q", synth.ErrUnsupportedType, p.Pattern)
	}
	return out, nil
}

// addCatchUpSaccades overlays corrective micro-saccades at cycle boundaries.
func (s *Synthesizer) addCatchUpSaccades(buf synth.Signal, p Params) {
	period := int(s.tb.SamplingRate / p.Frequency)
	if period < 1 {
		return
	}
	amp := 0.1 * p.Amplitude
	kernel := kernels.SaccadePosition(amp, 0.02, msBaseVelocity+msVelocitySlope*math.Abs(amp), s.tb.SamplingRate)
	for i := 0; i+period < s.tb.NSamples; i += period {
		synth.PlaceAt(buf, kernel, i+period-len(kernel), 1, synth.EdgeSkip)
	}
}

// SimulateFixation superposes random-walk drift, dual-tone tremor, and a
// stream of small microsaccades.
func (s *Synthesizer) SimulateFixation(p Params) (synth.Signal, error) {
	if p.MicrosaccadeRate < 0 {
		return nil, fmt.Errorf("%w: microsaccade rate must be non-negative, got %g", synth.ErrInvalidParameter, p.MicrosaccadeRate)
	}
	out := s.tb.NewBuffer()

	// Slow drift: integrated zero-mean Gaussian velocity.
	drift := 0.0
	for i := range out {
		drift += s.rng.NormFloat64() * p.DriftAmplitude / s.tb.Duration / s.tb.SamplingRate
		out[i] = drift
	}

	// Dual-tone high-frequency tremor.
	const tremorFreq = 80.0
	for i, t := range s.tb.Time {
		out[i] += p.TremorAmplitude*math.Sin(2*math.Pi*tremorFreq*t) +
			0.5*p.TremorAmplitude*math.Sin(2*math.Pi*2*tremorFreq*t)
	}

	// Microsaccades at random instants, same kernel as full saccades.
	const msDuration = 0.02
	n := int(s.tb.Duration * p.MicrosaccadeRate)
	for e := 0; e < n; e++ {
		start := s.rng.Float64() * (s.tb.Duration - msDuration)
		amp := (2*s.rng.Float64() - 1) * p.MicrosaccadeAmplitude
		kernel := kernels.SaccadePosition(amp, msDuration, msBaseVelocity+msVelocitySlope*math.Abs(amp), s.tb.SamplingRate)
		synth.PlaceAt(out, kernel, s.tb.SampleIndex(start), 1, synth.EdgeSkip)
	}
	return out, nil
}

// SimulateBlinks renders blink artifacts: fast Gaussian closing followed by a
// slower Gaussian opening, scheduled by rejection sampling under a minimum
// inter-blink interval.
func (s *Synthesizer) SimulateBlinks(p BlinkParams) (synth.Signal, error) {
	if p.NBlinks < 0 {
		return nil, fmt.Errorf("%w: blink count must be non-negative, got %d", synth.ErrInvalidParameter, p.NBlinks)
	}
	if p.Duration <= 0 {
		return nil, fmt.Errorf("%w: blink duration must be positive, got %g", synth.ErrInvalidParameter, p.Duration)
	}
	available := s.tb.Duration - float64(p.NBlinks)*p.Duration
	if available < float64(p.NBlinks-1)*p.MinInterval {
		return nil, fmt.Errorf("%w: %d blinks of %gs with %gs spacing do not fit %gs",
			synth.ErrInsufficientDuration, p.NBlinks, p.Duration, p.MinInterval, s.tb.Duration)
	}

	times, err := s.scheduleBlinks(p)
	if err != nil {
		return nil, err
	}

	out := s.tb.NewBuffer()
	for _, start := range times {
		duration := p.Duration
		amplitude := p.AmplitudeMax
		if p.NaturalVariability {
			duration = p.Duration * (0.8 + 0.4*s.rng.Float64())
			amplitude = p.AmplitudeMin + s.rng.Float64()*(p.AmplitudeMax-p.AmplitudeMin)
			if s.rng.Float64() < 0.2 {
				// Partial blink.
				amplitude *= 0.3 + 0.4*s.rng.Float64()
			}
		}
		synth.PlaceAt(out, blinkProfile(amplitude, duration, s.tb.SamplingRate), s.tb.SampleIndex(start), 1, synth.EdgeSkip)
	}
	return out, nil
}

// scheduleBlinks rejection-samples start times keeping the minimum interval.
func (s *Synthesizer) scheduleBlinks(p BlinkParams) ([]float64, error) {
	const maxAttempts = 10000
	times := make([]float64, 0, p.NBlinks)
	for len(times) < p.NBlinks {
		attempts := 0
		for {
			if attempts++; attempts > maxAttempts {
				return nil, fmt.Errorf("%w: could not schedule %d blinks with %gs spacing",
					synth.ErrInsufficientDuration, p.NBlinks, p.MinInterval)
			}
			candidate := s.rng.Float64() * (s.tb.Duration - p.Duration)
			ok := true
			for _, existing := range times {
				if math.Abs(candidate-existing) < p.MinInterval {
					ok = false
					break
				}
			}
			if ok {
				times = append(times, candidate)
				break
			}
		}
	}
	sort.Float64s(times)
	return times, nil
}

// blinkProfile builds the asymmetric blink pulse: closing with a d/6 time
// constant, opening with d/3.
func blinkProfile(amplitude, duration, samplingRate float64) synth.Signal {
	n := int(duration * samplingRate)
	out := make(synth.Signal, n)
	if n == 0 {
		return out
	}
	for i := range out {
		t := -duration/2 + duration*float64(i)/float64(max(n-1, 1))
		if t < 0 {
			tc := t / (duration / 6)
			out[i] = amplitude * math.Exp(-100*tc*tc)
		} else {
			tc := t / (duration / 3)
			out[i] = amplitude * math.Exp(-50*tc*tc)
		}
	}
	return out
}

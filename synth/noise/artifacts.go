package noise

import (
	"fmt"
	"math"

	"github.com/vitalsynth/vitalsynth/synth"
)

// MotionType identifies a motion artifact class.
type MotionType string

const (
	ElectrodeMovement MotionType = "electrode_movement"
	CableMotion       MotionType = "cable_motion"
	SubjectMovement   MotionType = "subject_movement"
	BaselineShift     MotionType = "baseline_shift"
)

// ElectrodeType identifies an electrode artifact class.
type ElectrodeType string

const (
	PoorContact     ElectrodeType = "poor_contact"
	ElectrodePop    ElectrodeType = "electrode_pop"
	ImpedanceChange ElectrodeType = "impedance_change"
	DCOffset        ElectrodeType = "dc_offset"
)

// InterferenceType identifies an interference source.
type InterferenceType string

const (
	EMGCrosstalk    InterferenceType = "emg"
	ECGInterference InterferenceType = "ecg"
	Environmental   InterferenceType = "environmental"
	DeviceNoise     InterferenceType = "device"
)

// ArtifactParams configures artifact burst generation. Zero-valued fields take
// per-type defaults.
type ArtifactParams struct {
	Amplitude float64
	// Duration is the span of one burst in seconds.
	Duration float64
	// NEvents is the number of bursts to place.
	NEvents int
	// DriftFrequency drives the dc_offset slow drift, Hz.
	DriftFrequency float64
	// Frequency is the environmental interference fundamental, Hz.
	Frequency float64
	// HeartRate sets the cadence of ECG interference spikes, BPM.
	HeartRate float64
	// SwitchingFreq and DutyCycle shape device switching noise.
	SwitchingFreq float64
	DutyCycle     float64
	// NSpikes is the electronic spike count for device interference.
	NSpikes int
	Seed    *int64
}

func (p ArtifactParams) withDefaults(duration float64, nEvents int) ArtifactParams {
	if p.Amplitude == 0 {
		p.Amplitude = 1.0
	}
	if p.Duration == 0 {
		p.Duration = duration
	}
	if p.NEvents == 0 {
		p.NEvents = nEvents
	}
	if p.DriftFrequency == 0 {
		p.DriftFrequency = 0.1
	}
	if p.Frequency == 0 {
		p.Frequency = 50
	}
	if p.HeartRate == 0 {
		p.HeartRate = 60
	}
	if p.SwitchingFreq == 0 {
		p.SwitchingFreq = 1000
	}
	if p.DutyCycle == 0 {
		p.DutyCycle = 0.1
	}
	if p.NSpikes == 0 {
		p.NSpikes = 20
	}
	return p
}

// checkBurstWindow rejects burst durations that cannot fit the record.
func (s *Synthesizer) checkBurstWindow(p ArtifactParams) error {
	if p.Duration <= 0 {
		return fmt.Errorf("%w: burst duration must be positive, got %g", synth.ErrInvalidParameter, p.Duration)
	}
	if p.Duration >= s.tb.Duration {
		return fmt.Errorf("%w: burst duration %gs does not fit signal duration %gs",
			synth.ErrInvalidParameter, p.Duration, s.tb.Duration)
	}
	if p.NEvents < 0 {
		return fmt.Errorf("%w: event count must be non-negative, got %d", synth.ErrInvalidParameter, p.NEvents)
	}
	return nil
}

// randomStart draws a burst start index leaving room for eventDuration.
func (s *Synthesizer) randomStart(eventDuration float64) int {
	return int(s.rng.Float64() * (s.tb.Duration - eventDuration) * s.tb.SamplingRate)
}

// Motion generates a motion artifact signal of the requested type.
func (s *Synthesizer) Motion(typ MotionType, p ArtifactParams) (synth.Signal, error) {
	gen, ok := motionGenerators[typ]
	if !ok {
		return nil, fmt.Errorf("%w: motion artifact type %q", synth.ErrUnsupportedType, typ)
	}
	p = p.withDefaults(0.2, 3)
	if err := s.checkBurstWindow(p); err != nil {
		return nil, err
	}
	s.reseed(p.Seed)
	return gen(s, p), nil
}

var motionGenerators = map[MotionType]func(*Synthesizer, ArtifactParams) synth.Signal{
	ElectrodeMovement: (*Synthesizer).electrodeMovement,
	CableMotion:       (*Synthesizer).cableMotion,
	SubjectMovement:   (*Synthesizer).subjectMovement,
	BaselineShift:     (*Synthesizer).baselineShift,
}

// electrodeMovement places signed shifts that recover exponentially.
func (s *Synthesizer) electrodeMovement(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		shift := p.Amplitude * s.signFlip()
		synth.PlaceAt(out, expDecay(n), start, shift, synth.EdgeClip)
	}
	return out
}

// cableMotion places Hann-windowed tone bursts in the 10-30 Hz band.
func (s *Synthesizer) cableMotion(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		freq := 10 + s.rng.Float64()*20
		burst := make(synth.Signal, n)
		env := hann(n)
		for i := range burst {
			t := float64(i) / s.tb.SamplingRate
			burst[i] = env[i] * math.Sin(2*math.Pi*freq*t)
		}
		synth.PlaceAt(out, burst, start, p.Amplitude, synth.EdgeClip)
	}
	return out
}

// subjectMovement sums low-frequency components plus a random baseline shift.
func (s *Synthesizer) subjectMovement(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		burst := make(synth.Signal, n)
		for _, freq := range []float64{2, 5, 8} {
			phase := s.rng.Float64() * 2 * math.Pi
			for i := range burst {
				t := float64(i) / s.tb.SamplingRate
				burst[i] += (p.Amplitude / 3) * math.Sin(2*math.Pi*freq*t+phase)
			}
		}
		shift := (s.rng.Float64() - 0.5) * p.Amplitude
		for i := range burst {
			burst[i] += shift
		}
		synth.PlaceAt(out, burst, start, 1, synth.EdgeClip)
	}
	return out
}

// baselineShift places step changes; half of them are replaced by a linear
// recovery ramp back to baseline.
func (s *Synthesizer) baselineShift(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		shift := p.Amplitude * s.signFlip()
		if s.rng.Float64() > 0.5 {
			synth.Place(out, ramp(shift, 0, n), start, 1, synth.EdgeClip, synth.PlaceReplace)
		} else {
			synth.PlaceAt(out, constant(shift, n), start, 1, synth.EdgeClip)
		}
	}
	return out
}

// Electrode generates an electrode artifact signal of the requested type.
func (s *Synthesizer) Electrode(typ ElectrodeType, p ArtifactParams) (synth.Signal, error) {
	gen, ok := electrodeGenerators[typ]
	if !ok {
		return nil, fmt.Errorf("%w: electrode artifact type %q", synth.ErrUnsupportedType, typ)
	}
	p = p.withDefaults(electrodeDefaultDuration(typ), electrodeDefaultEvents(typ))
	if typ != DCOffset {
		if err := s.checkBurstWindow(p); err != nil {
			return nil, err
		}
	}
	s.reseed(p.Seed)
	return gen(s, p), nil
}

func electrodeDefaultDuration(typ ElectrodeType) float64 {
	switch typ {
	case ElectrodePop:
		return 0.05
	case ImpedanceChange:
		return 0.5
	default:
		return 0.2
	}
}

func electrodeDefaultEvents(typ ElectrodeType) int {
	switch typ {
	case PoorContact, DCOffset:
		return 3
	default:
		return 2
	}
}

var electrodeGenerators = map[ElectrodeType]func(*Synthesizer, ArtifactParams) synth.Signal{
	PoorContact:     (*Synthesizer).poorContact,
	ElectrodePop:    (*Synthesizer).electrodePop,
	ImpedanceChange: (*Synthesizer).impedanceChange,
	DCOffset:        (*Synthesizer).dcOffset,
}

// poorContact mixes noise bursts with intermittent dropouts.
func (s *Synthesizer) poorContact(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		burst := make(synth.Signal, n)
		for i := range burst {
			if s.rng.Float64() < 0.3 {
				continue // dropout
			}
			burst[i] = s.rng.NormFloat64() * p.Amplitude
		}
		synth.PlaceAt(out, burst, start, 1, synth.EdgeClip)
	}
	return out
}

// electrodePop places signed spikes with exponential decay.
func (s *Synthesizer) electrodePop(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		pop := p.Amplitude * s.signFlip()
		synth.PlaceAt(out, expDecay(n), start, pop, synth.EdgeClip)
	}
	return out
}

// impedanceChange ramps amplitude while modulating it with noise.
func (s *Synthesizer) impedanceChange(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		burst := make(synth.Signal, n)
		for i := range burst {
			transition := float64(i) / float64(max(n-1, 1))
			noise := s.rng.NormFloat64() * 0.2 * p.Amplitude
			burst[i] = p.Amplitude * transition * (1 + noise)
		}
		synth.PlaceAt(out, burst, start, 1, synth.EdgeClip)
	}
	return out
}

// dcOffset combines a base offset, slow drift, and persistent step changes.
func (s *Synthesizer) dcOffset(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	for e := 0; e < p.NEvents; e++ {
		start := int(s.rng.Float64() * s.tb.Duration * s.tb.SamplingRate)
		change := p.Amplitude * (s.rng.Float64() - 0.5)
		for i := start; i < len(out); i++ {
			out[i] += change
		}
	}
	base := p.Amplitude * (2*s.rng.Float64() - 1)
	for i, t := range s.tb.Time {
		out[i] += base + p.Amplitude*0.5*math.Sin(2*math.Pi*p.DriftFrequency*t)
	}
	return out
}

// Interference generates an interference signal of the requested type.
func (s *Synthesizer) Interference(typ InterferenceType, p ArtifactParams) (synth.Signal, error) {
	gen, ok := interferenceGenerators[typ]
	if !ok {
		return nil, fmt.Errorf("%w: interference type %q", synth.ErrUnsupportedType, typ)
	}
	p = p.withDefaults(0.2, 5)
	if typ == EMGCrosstalk {
		if err := s.checkBurstWindow(p); err != nil {
			return nil, err
		}
	}
	if typ == ECGInterference && p.HeartRate <= 0 {
		return nil, fmt.Errorf("%w: heart rate must be positive, got %g", synth.ErrInvalidParameter, p.HeartRate)
	}
	s.reseed(p.Seed)
	return gen(s, p), nil
}

var interferenceGenerators = map[InterferenceType]func(*Synthesizer, ArtifactParams) synth.Signal{
	EMGCrosstalk:    (*Synthesizer).emgCrosstalk,
	ECGInterference: (*Synthesizer).ecgInterference,
	Environmental:   (*Synthesizer).environmental,
	DeviceNoise:     (*Synthesizer).deviceNoise,
}

// emgCrosstalk places Hann-enveloped bursts of random 20-500 Hz tones.
func (s *Synthesizer) emgCrosstalk(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	n := s.tb.SampleCount(p.Duration)
	for e := 0; e < p.NEvents; e++ {
		start := s.randomStart(p.Duration)
		burst := make(synth.Signal, n)
		for c := 0; c < 10; c++ {
			freq := 20 + s.rng.Float64()*480
			phase := s.rng.Float64() * 2 * math.Pi
			for i := range burst {
				t := float64(i) / s.tb.SamplingRate
				burst[i] += math.Sin(2*math.Pi*freq*t + phase)
			}
		}
		env := hann(n)
		for i := range burst {
			burst[i] *= env[i]
		}
		synth.PlaceAt(out, burst, start, p.Amplitude, synth.EdgeClip)
	}
	return out
}

// ecgInterference places piecewise-linear QRS-like spikes at a heart-rate
// cadence.
func (s *Synthesizer) ecgInterference(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	spike := qrsLikeSpike(s.tb.SamplingRate)
	interval := int(s.tb.SamplingRate * 60 / p.HeartRate)
	if interval < 1 {
		interval = 1
	}
	for start := 0; start < s.tb.NSamples; start += interval {
		synth.PlaceAt(out, spike, start, p.Amplitude, synth.EdgeSkip)
	}
	return out
}

// qrsLikeSpike approximates a QRS deflection with linear segments spanning
// 100 ms: Q dip, R upstroke, R downstroke, S recovery.
func qrsLikeSpike(samplingRate float64) synth.Signal {
	segments := []struct {
		from, to float64
		span     float64 // seconds
	}{
		{0, -0.2, 0.02},
		{-0.2, 1, 0.01},
		{1, -0.3, 0.01},
		{-0.3, 0, 0.06},
	}
	var out synth.Signal
	for _, seg := range segments {
		n := int(seg.span * samplingRate)
		if n < 1 {
			n = 1
		}
		out = append(out, ramp(seg.from, seg.to, n)...)
	}
	return out
}

// environmental sums powerline harmonics and weak random RF tones.
func (s *Synthesizer) environmental(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	for h := 1; h <= 3; h++ {
		freq := p.Frequency * float64(h)
		amp := p.Amplitude / float64(h)
		for i, t := range s.tb.Time {
			out[i] += amp * math.Sin(2*math.Pi*freq*t)
		}
	}
	for c := 0; c < 5; c++ {
		freq := 100 + s.rng.Float64()*900
		for i, t := range s.tb.Time {
			out[i] += p.Amplitude * 0.1 * math.Sin(2*math.Pi*freq*t)
		}
	}
	return out
}

// deviceNoise combines a duty-cycled switching tone with random electronic
// spikes.
func (s *Synthesizer) deviceNoise(p ArtifactParams) synth.Signal {
	out := s.tb.NewBuffer()
	period := 1 / p.SwitchingFreq
	for i, t := range s.tb.Time {
		phase := math.Mod(t, period) / period
		level := -1.0
		if phase < p.DutyCycle {
			level = 1.0
		}
		out[i] = p.Amplitude * 0.5 * level
	}
	for e := 0; e < p.NSpikes; e++ {
		width := 5 + s.rng.Intn(5)
		start := s.rng.Intn(max(s.tb.NSamples-width, 1))
		level := p.Amplitude * (0.5 + 0.5*s.rng.Float64())
		synth.PlaceAt(out, constant(level, width), start, 1, synth.EdgeClip)
	}
	return out
}

func (s *Synthesizer) signFlip() float64 {
	if s.rng.Float64() > 0.5 {
		return 1
	}
	return -1
}

// expDecay returns exp(-5 i/(n-1)) over n samples.
func expDecay(n int) synth.Signal {
	out := make(synth.Signal, n)
	for i := range out {
		out[i] = math.Exp(-5 * float64(i) / float64(max(n-1, 1)))
	}
	return out
}

func ramp(from, to float64, n int) synth.Signal {
	out := make(synth.Signal, n)
	if n == 1 {
		out[0] = from
		return out
	}
	step := (to - from) / float64(n-1)
	for i := range out {
		out[i] = from + step*float64(i)
	}
	return out
}

func constant(level float64, n int) synth.Signal {
	out := make(synth.Signal, n)
	for i := range out {
		out[i] = level
	}
	return out
}

// hann returns a symmetric Hann window of length n.
func hann(n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = 1
		return out
	}
	for i := range out {
		out[i] = 0.5 * (1 - math.Cos(2*math.Pi*float64(i)/float64(n-1)))
	}
	return out
}

// Package noise generates additive noise spectra and localized artifact bursts
// for biosignal recordings: white/pink/brown noise, powerline harmonics,
// baseline wander, and the motion/electrode/interference artifact families.
package noise

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand"

	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/spectral"
)

// Type identifies a noise spectrum.
type Type string

const (
	Gaussian       Type = "gaussian"
	Pink           Type = "pink"
	Brown          Type = "brown"
	Powerline      Type = "powerline"
	BaselineWander Type = "baseline_wander"
	HighFrequency  Type = "high_frequency"
)

// Params configures noise generation. Zero values fall back to the defaults
// from DefaultParams for the fields a given type reads.
type Params struct {
	// Std is the standard deviation for gaussian noise.
	Std float64
	// Amplitude scales every non-gaussian type.
	Amplitude float64
	// Frequency is the powerline fundamental in Hz.
	Frequency float64
	// Harmonics is the number of powerline harmonics, fundamental included.
	Harmonics int
	// DriftFrequency is the dominant baseline-wander frequency in Hz.
	DriftFrequency float64
	// MinFreq and MaxFreq bound the high-frequency component band in Hz.
	MinFreq float64
	MaxFreq float64
	// NComponents is the number of high-frequency tones.
	NComponents int
	// Seed, when set, reseeds the synthesizer's random stream before
	// generation. This replaces the stream for subsequent calls too.
	Seed *int64
}

// DefaultParams returns the baseline noise configuration.
func DefaultParams() Params {
	return Params{
		Std:            1.0,
		Amplitude:      1.0,
		Frequency:      50,
		Harmonics:      2,
		DriftFrequency: 0.5,
		MinFreq:        100,
		MaxFreq:        500,
		NComponents:    10,
	}
}

// Synthesizer produces noise and artifact signals on a fixed time base with
// an explicit random stream.
type Synthesizer struct {
	tb  synth.TimeBase
	rng *rand.Rand
}

// New creates a noise synthesizer over the given time base. The random stream
// is owned by the synthesizer; pass independent streams for independent use.
func New(tb synth.TimeBase, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{tb: tb, rng: rng}
}

// TimeBase returns the synthesizer's time base.
func (s *Synthesizer) TimeBase() synth.TimeBase { return s.tb }

func (s *Synthesizer) reseed(seed *int64) {
	if seed != nil {
		s.rng = synth.NewRNG(*seed)
	}
}

type generatorFunc func(*Synthesizer, Params) synth.Signal

var generators = map[Type]generatorFunc{
	Gaussian:       (*Synthesizer).gaussian,
	Pink:           func(s *Synthesizer, p Params) synth.Signal { return s.shaped(p, 1) },
	Brown:          func(s *Synthesizer, p Params) synth.Signal { return s.shaped(p, 2) },
	Powerline:      (*Synthesizer).powerline,
	BaselineWander: (*Synthesizer).baselineWander,
	HighFrequency:  (*Synthesizer).highFrequency,
}

// Generate produces a noise signal of the requested type.
func (s *Synthesizer) Generate(typ Type, p Params) (synth.Signal, error) {
	gen, ok := generators[typ]
	if !ok {
		return nil, fmt.Errorf("%w: noise type %q", synth.ErrUnsupportedType, typ)
	}
	if err := validate(typ, p); err != nil {
		return nil, err
	}
	s.reseed(p.Seed)
	return gen(s, p), nil
}

func validate(typ Type, p Params) error {
	switch typ {
	case Gaussian:
		if p.Std < 0 {
			return fmt.Errorf("%w: gaussian std must be non-negative, got %g", synth.ErrInvalidParameter, p.Std)
		}
	case Powerline:
		if p.Frequency <= 0 {
			return fmt.Errorf("%w: powerline frequency must be positive, got %g", synth.ErrInvalidParameter, p.Frequency)
		}
		if p.Harmonics < 1 {
			return fmt.Errorf("%w: powerline harmonics must be at least 1, got %d", synth.ErrInvalidParameter, p.Harmonics)
		}
	case BaselineWander:
		if p.DriftFrequency <= 0 {
			return fmt.Errorf("%w: drift frequency must be positive, got %g", synth.ErrInvalidParameter, p.DriftFrequency)
		}
	case HighFrequency:
		if p.MinFreq <= 0 || p.MaxFreq <= p.MinFreq {
			return fmt.Errorf("%w: high-frequency band [%g, %g] is degenerate", synth.ErrInvalidParameter, p.MinFreq, p.MaxFreq)
		}
		if p.NComponents < 1 {
			return fmt.Errorf("%w: high-frequency components must be at least 1, got %d", synth.ErrInvalidParameter, p.NComponents)
		}
	}
	return nil
}

func (s *Synthesizer) gaussian(p Params) synth.Signal {
	out := s.tb.NewBuffer()
	for i := range out {
		out[i] = s.rng.NormFloat64() * p.Std
	}
	return out
}

// shaped builds 1/f^order noise by assigning random phases to a 1/|f|^order
// magnitude spectrum and inverse-transforming. The DC bin is zeroed to avoid
// the singularity at f=0.
func (s *Synthesizer) shaped(p Params, order float64) synth.Signal {
	n := s.tb.NSamples
	freqs := spectral.FreqBins(n, 1) // normalized bins, matching np.fft.fftfreq
	spectrum := make([]complex128, n)
	for i := 1; i < n; i++ {
		mag := math.Sqrt(1 / math.Pow(math.Abs(freqs[i]), order))
		phase := s.rng.Float64() * 2 * math.Pi
		spectrum[i] = complex(mag, 0) * cmplx.Exp(complex(0, phase))
	}
	out := synth.Signal(spectral.InverseReal(spectrum))
	return out.Scale(p.Amplitude)
}

func (s *Synthesizer) powerline(p Params) synth.Signal {
	out := s.tb.NewBuffer()
	for h := 1; h <= p.Harmonics; h++ {
		amp := p.Amplitude / float64(h)
		freq := p.Frequency * float64(h)
		for i, t := range s.tb.Time {
			out[i] += amp * math.Sin(2*math.Pi*freq*t)
		}
	}
	return out
}

func (s *Synthesizer) baselineWander(p Params) synth.Signal {
	out := s.tb.NewBuffer()
	for _, f := range []float64{p.DriftFrequency, p.DriftFrequency / 2, p.DriftFrequency / 3} {
		phase := s.rng.Float64() * 2 * math.Pi
		for i, t := range s.tb.Time {
			out[i] += (p.Amplitude / 3) * math.Sin(2*math.Pi*f*t+phase)
		}
	}
	return out
}

func (s *Synthesizer) highFrequency(p Params) synth.Signal {
	out := s.tb.NewBuffer()
	amp := p.Amplitude / float64(p.NComponents)
	for c := 0; c < p.NComponents; c++ {
		freq := p.MinFreq + s.rng.Float64()*(p.MaxFreq-p.MinFreq)
		phase := s.rng.Float64() * 2 * math.Pi
		for i, t := range s.tb.Time {
			out[i] += amp * math.Sin(2*math.Pi*freq*t+phase)
		}
	}
	return out
}

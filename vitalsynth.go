// Package vitalsynth synthesizes biologically plausible physiological
// waveforms (EMG, ECG, EOG) plus realistic noise and artifact overlays, for
// use as labeled test and training data for signal-processing pipelines.
//
// A Simulator owns one TimeBase and one random stream shared by every
// generator, so composed noise and artifacts align sample-for-sample with the
// base signal and a fixed seed reproduces a recording bit for bit. Simulators
// are not safe for concurrent use; build one per goroutine.
package vitalsynth

import (
	"math/rand"
	"time"

	"github.com/vitalsynth/vitalsynth/logging"
	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/ecg"
	"github.com/vitalsynth/vitalsynth/synth/emg"
	"github.com/vitalsynth/vitalsynth/synth/eog"
	"github.com/vitalsynth/vitalsynth/synth/noise"
)

// Family identifies a signal family.
type Family string

const (
	FamilyEMG   Family = "emg"
	FamilyECG   Family = "ecg"
	FamilyEOG   Family = "eog"
	FamilyNoise Family = "noise"
)

// Families lists the supported signal families.
func Families() []Family {
	return []Family{FamilyEMG, FamilyECG, FamilyEOG, FamilyNoise}
}

// Simulator is the uniform entry point over all signal families.
type Simulator struct {
	tb     synth.TimeBase
	rng    *rand.Rand
	logger logging.Logger

	emg   *emg.Synthesizer
	ecg   *ecg.Synthesizer
	eog   *eog.Synthesizer
	noise *noise.Synthesizer
}

// Option configures a Simulator.
type Option func(*Simulator)

// WithSeed fixes the shared random stream for reproducible output.
func WithSeed(seed int64) Option {
	return func(s *Simulator) {
		s.rng = synth.NewRNG(seed)
	}
}

// WithLogger replaces the default library logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Simulator) {
		s.logger = logger
	}
}

// New creates a Simulator over a shared time base. Fails when the sampling
// rate or duration is non-positive.
func New(samplingRate, duration float64, opts ...Option) (*Simulator, error) {
	tb, err := synth.NewTimeBase(samplingRate, duration)
	if err != nil {
		return nil, err
	}

	s := &Simulator{
		tb:  tb,
		rng: synth.NewRNG(time.Now().UnixNano()),
		logger: logging.WithFields(logging.Fields{
			"component": "simulator",
		}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	s.emg = emg.New(tb, s.rng)
	s.ecg = ecg.New(tb, s.rng)
	s.eog = eog.New(tb, s.rng)
	s.noise = noise.New(tb, s.rng)
	return s, nil
}

// TimeBase returns the shared time base.
func (s *Simulator) TimeBase() synth.TimeBase { return s.tb }

// EMG generates a surface EMG signal.
func (s *Simulator) EMG(p emg.Params) (synth.Signal, error) {
	out, err := s.emg.Generate(p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("generated EMG signal", logging.Fields{
		"pattern":   p.Pattern,
		"intensity": p.Intensity,
		"n_samples": len(out),
	})
	return out, nil
}

// ECG generates an ECG signal.
func (s *Simulator) ECG(p ecg.Params) (synth.Signal, error) {
	out, err := s.ecg.Generate(p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("generated ECG signal", logging.Fields{
		"condition":  p.Condition,
		"heart_rate": p.HeartRate,
		"n_samples":  len(out),
	})
	return out, nil
}

// EOG generates an eye-movement signal.
func (s *Simulator) EOG(p eog.Params) (synth.Signal, error) {
	out, err := s.eog.Generate(p)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("generated EOG signal", logging.Fields{
		"movement":  p.Movement,
		"n_samples": len(out),
	})
	return out, nil
}

// Noise generates a standalone noise signal.
func (s *Simulator) Noise(typ noise.Type, p noise.Params) (synth.Signal, error) {
	return s.noise.Generate(typ, p)
}

// MotionArtifact generates a motion artifact signal.
func (s *Simulator) MotionArtifact(typ noise.MotionType, p noise.ArtifactParams) (synth.Signal, error) {
	return s.noise.Motion(typ, p)
}

// ElectrodeArtifact generates an electrode artifact signal.
func (s *Simulator) ElectrodeArtifact(typ noise.ElectrodeType, p noise.ArtifactParams) (synth.Signal, error) {
	return s.noise.Electrode(typ, p)
}

// Interference generates an interference signal.
func (s *Simulator) Interference(typ noise.InterferenceType, p noise.ArtifactParams) (synth.Signal, error) {
	return s.noise.Interference(typ, p)
}

// AddNoise overlays noise of the given type onto a signal generated on the
// same time base and returns a new signal.
func (s *Simulator) AddNoise(signal synth.Signal, typ noise.Type, p noise.Params) (synth.Signal, error) {
	return s.noise.Add(signal, typ, p)
}

// AddArtifact overlays a spike or step artifact at an explicit start time.
func (s *Simulator) AddArtifact(signal synth.Signal, typ noise.OverlayType, startTime, duration, amplitude float64) (synth.Signal, error) {
	return s.noise.AddArtifact(signal, typ, startTime, duration, amplitude)
}

// Package preset loads YAML generation presets: a signal family, its
// parameters, and optional noise overlays, bundled under a name so whole
// recordings can be reproduced from a file.
package preset

import (
	"fmt"

	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/ecg"
	"github.com/vitalsynth/vitalsynth/synth/emg"
	"github.com/vitalsynth/vitalsynth/synth/eog"
	"github.com/vitalsynth/vitalsynth/synth/noise"
)

// Preset describes one reproducible generation run.
type Preset struct {
	Name         string  `yaml:"name"`
	Description  string  `yaml:"description,omitempty"`
	Family       string  `yaml:"family"`
	SamplingRate float64 `yaml:"sampling_rate"`
	Duration     float64 `yaml:"duration"`
	Seed         *int64  `yaml:"seed,omitempty"`

	EMG   *EMGSpec   `yaml:"emg,omitempty"`
	ECG   *ECGSpec   `yaml:"ecg,omitempty"`
	EOG   *EOGSpec   `yaml:"eog,omitempty"`
	Noise *NoiseSpec `yaml:"noise,omitempty"`

	// Overlays are applied in order on top of the generated signal.
	Overlays []NoiseSpec `yaml:"overlays,omitempty"`
}

// Validate checks the preset header before any generation starts.
func (p *Preset) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: preset requires a name", synth.ErrInvalidParameter)
	}
	switch p.Family {
	case "emg", "ecg", "eog", "noise":
	default:
		return fmt.Errorf("%w: preset family %q", synth.ErrUnsupportedType, p.Family)
	}
	if p.SamplingRate <= 0 {
		return fmt.Errorf("%w: preset sampling rate must be positive, got %g", synth.ErrInvalidParameter, p.SamplingRate)
	}
	if p.Duration <= 0 {
		return fmt.Errorf("%w: preset duration must be positive, got %g", synth.ErrInvalidParameter, p.Duration)
	}
	return nil
}

// EMGSpec mirrors emg.Params in YAML form. Numeric fields with non-zero
// defaults are pointers so an explicit zero in the document is distinguishable
// from an absent key.
type EMGSpec struct {
	Pattern       string   `yaml:"pattern,omitempty"`
	Intensity     *float64 `yaml:"intensity,omitempty"`
	Duration      float64  `yaml:"duration,omitempty"`
	FatigueRate   float64  `yaml:"fatigue_rate,omitempty"`
	Envelope      string   `yaml:"envelope,omitempty"`
	MaxIntensity  *float64 `yaml:"max_intensity,omitempty"`
	Frequency     *float64 `yaml:"frequency,omitempty"`
	DutyCycle     *float64 `yaml:"duty_cycle,omitempty"`
	RestIntensity *float64 `yaml:"rest_intensity,omitempty"`
}

// Params converts the spec to generator parameters.
func (s *EMGSpec) Params() emg.Params {
	p := emg.DefaultParams()
	if s == nil {
		return p
	}
	if s.Pattern != "" {
		p.Pattern = emg.PatternType(s.Pattern)
	}
	if s.Intensity != nil {
		p.Intensity = *s.Intensity
	}
	p.Duration = s.Duration
	p.FatigueRate = s.FatigueRate
	if s.Envelope != "" {
		p.Envelope = emg.EnvelopeType(s.Envelope)
	}
	if s.MaxIntensity != nil {
		p.MaxIntensity = *s.MaxIntensity
	}
	if s.Frequency != nil {
		p.Frequency = *s.Frequency
	}
	if s.DutyCycle != nil {
		p.DutyCycle = *s.DutyCycle
	}
	if s.RestIntensity != nil {
		p.RestIntensity = *s.RestIntensity
	}
	return p
}

// ECGSpec mirrors ecg.Params in YAML form.
type ECGSpec struct {
	Condition    string   `yaml:"condition,omitempty"`
	HeartRate    *float64 `yaml:"heart_rate,omitempty"`
	HRVStd       float64  `yaml:"hrv_std,omitempty"`
	Severity     *float64 `yaml:"severity,omitempty"`
	PVCFrequency *float64 `yaml:"pvc_frequency,omitempty"`
	AFRateMin    *float64 `yaml:"af_rate_min,omitempty"`
	AFRateMax    *float64 `yaml:"af_rate_max,omitempty"`
	BlockDegree  *int     `yaml:"block_degree,omitempty"`
}

// Params converts the spec to generator parameters.
func (s *ECGSpec) Params() ecg.Params {
	p := ecg.DefaultParams()
	if s == nil {
		return p
	}
	if s.Condition != "" {
		p.Condition = ecg.Condition(s.Condition)
	}
	if s.HeartRate != nil {
		p.HeartRate = *s.HeartRate
	}
	p.HRVStd = s.HRVStd
	if s.Severity != nil {
		p.Severity = *s.Severity
	}
	if s.PVCFrequency != nil {
		p.PVCFrequency = *s.PVCFrequency
	}
	if s.AFRateMin != nil {
		p.AFRateMin = *s.AFRateMin
	}
	if s.AFRateMax != nil {
		p.AFRateMax = *s.AFRateMax
	}
	if s.BlockDegree != nil {
		p.BlockDegree = *s.BlockDegree
	}
	return p
}

// EOGSpec mirrors eog.Params in YAML form.
type EOGSpec struct {
	Movement  string   `yaml:"movement,omitempty"`
	Amplitude *float64 `yaml:"amplitude,omitempty"`
	Frequency *float64 `yaml:"frequency,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	Direction string   `yaml:"direction,omitempty"`
	NSaccades *int     `yaml:"n_saccades,omitempty"`
	AddBlinks bool     `yaml:"add_blinks,omitempty"`
	NBlinks   *int     `yaml:"n_blinks,omitempty"`
}

// Params converts the spec to generator parameters.
func (s *EOGSpec) Params() eog.Params {
	p := eog.DefaultParams()
	if s == nil {
		return p
	}
	if s.Movement != "" {
		p.Movement = eog.MovementType(s.Movement)
	}
	if s.Amplitude != nil {
		p.Amplitude = *s.Amplitude
	}
	if s.Frequency != nil {
		p.Frequency = *s.Frequency
	}
	if s.Pattern != "" {
		p.Pattern = eog.PursuitPattern(s.Pattern)
	}
	if s.Direction != "" {
		p.Direction = eog.Direction(s.Direction)
	}
	if s.NSaccades != nil {
		p.NSaccades = *s.NSaccades
	}
	p.AddBlinks = s.AddBlinks
	if s.NBlinks != nil {
		p.Blinks.NBlinks = *s.NBlinks
	}
	return p
}

// NoiseSpec mirrors noise.Params in YAML form, tagged with a type.
type NoiseSpec struct {
	Type           string   `yaml:"type"`
	Std            *float64 `yaml:"std,omitempty"`
	Amplitude      *float64 `yaml:"amplitude,omitempty"`
	Frequency      *float64 `yaml:"frequency,omitempty"`
	Harmonics      *int     `yaml:"harmonics,omitempty"`
	DriftFrequency *float64 `yaml:"drift_frequency,omitempty"`
	MinFreq        *float64 `yaml:"min_freq,omitempty"`
	MaxFreq        *float64 `yaml:"max_freq,omitempty"`
	NComponents    *int     `yaml:"n_components,omitempty"`
}

// Params converts the spec to noise parameters.
func (s *NoiseSpec) Params() (noise.Type, noise.Params) {
	p := noise.DefaultParams()
	if s == nil {
		return noise.Gaussian, p
	}
	if s.Std != nil {
		p.Std = *s.Std
	}
	if s.Amplitude != nil {
		p.Amplitude = *s.Amplitude
	}
	if s.Frequency != nil {
		p.Frequency = *s.Frequency
	}
	if s.Harmonics != nil {
		p.Harmonics = *s.Harmonics
	}
	if s.DriftFrequency != nil {
		p.DriftFrequency = *s.DriftFrequency
	}
	if s.MinFreq != nil {
		p.MinFreq = *s.MinFreq
	}
	if s.MaxFreq != nil {
		p.MaxFreq = *s.MaxFreq
	}
	if s.NComponents != nil {
		p.NComponents = *s.NComponents
	}
	return noise.Type(s.Type), p
}

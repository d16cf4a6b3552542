// Package ecg synthesizes electrocardiograms beat by beat: P/QRS/T kernels
// placed on a heart-rate-derived schedule, with condition strategies that
// mutate beat timing and morphology to express arrhythmias, ischemia, and
// conduction abnormalities.
package ecg

import (
	"fmt"
	"math/rand"

	"github.com/vitalsynth/vitalsynth/synth"
	"github.com/vitalsynth/vitalsynth/synth/kernels"
)

// Condition selects the cardiac condition to synthesize.
type Condition string

const (
	NormalSinus    Condition = "none"
	PVC            Condition = "pvc"
	AF             Condition = "af"
	Bradycardia    Condition = "brady"
	Tachycardia    Condition = "tachy"
	HeartBlock     Condition = "heart_block"
	STElevation    Condition = "st_elevation"
	STDepression   Condition = "st_depression"
	TWaveInversion Condition = "t_wave_inversion"
	QWave          Condition = "q_wave"
	LBBB           Condition = "lbbb"
	RBBB           Condition = "rbbb"
	WPW            Condition = "wpw"
	LAFB           Condition = "lafb"
)

// Beat timing constants in seconds, relative to QRS onset.
const (
	prInterval = 0.16 // P-wave lead time for conducted beats
	qtOffset   = 0.2  // T-wave onset after QRS onset
)

// PWaveParams overrides P-wave morphology.
type PWaveParams struct {
	Amplitude float64
	Duration  float64
}

// QRSParams overrides QRS morphology.
type QRSParams struct {
	QAmp     float64
	RAmp     float64
	SAmp     float64
	Duration float64
}

// TWaveParams overrides T-wave morphology.
type TWaveParams struct {
	Amplitude float64
	Duration  float64
}

// Params configures ECG generation.
type Params struct {
	Condition Condition
	// HeartRate is the nominal rate in BPM.
	HeartRate float64
	// HRVStd is the per-beat Gaussian timing jitter in seconds; 0 disables
	// heart-rate variability.
	HRVStd float64
	// Severity scales condition intensity in [0, 1].
	Severity float64
	// PVCFrequency is the per-beat substitution probability for PVC.
	PVCFrequency float64
	// AFRateMin and AFRateMax bound the irregular AF rate in BPM.
	AFRateMin float64
	AFRateMax float64
	// BlockDegree selects the AV block degree (1, 2, or 3).
	BlockDegree int
	// Wave morphology overrides; nil keeps the defaults.
	PWave *PWaveParams
	QRS   *QRSParams
	TWave *TWaveParams
	// Edge controls whether beats at the record boundary are skipped or
	// partially rendered.
	Edge synth.EdgePolicy
	Seed *int64
}

// DefaultParams returns a 75 BPM normal sinus configuration.
func DefaultParams() Params {
	return Params{
		Condition:    NormalSinus,
		HeartRate:    75,
		Severity:     0.5,
		PVCFrequency: 0.2,
		AFRateMin:    350,
		AFRateMax:    600,
		BlockDegree:  1,
		Edge:         synth.EdgeSkip,
	}
}

// morphology bundles the resolved wave parameters for one generation call.
type morphology struct {
	p   PWaveParams
	qrs QRSParams
	t   TWaveParams
}

func resolveMorphology(p Params) morphology {
	m := morphology{
		p:   PWaveParams{Amplitude: 0.2, Duration: 0.1},
		qrs: QRSParams{QAmp: -0.5, RAmp: 1.0, SAmp: -0.2, Duration: 0.1},
		t:   TWaveParams{Amplitude: 0.3, Duration: 0.14},
	}
	if p.PWave != nil {
		m.p = *p.PWave
	}
	if p.QRS != nil {
		m.qrs = *p.QRS
	}
	if p.TWave != nil {
		m.t = *p.TWave
	}
	return m
}

// Synthesizer generates ECG signals on a fixed time base.
type Synthesizer struct {
	tb  synth.TimeBase
	rng *rand.Rand
}

// New creates an ECG synthesizer over the given time base.
func New(tb synth.TimeBase, rng *rand.Rand) *Synthesizer {
	return &Synthesizer{tb: tb, rng: rng}
}

// TimeBase returns the synthesizer's time base.
func (s *Synthesizer) TimeBase() synth.TimeBase { return s.tb }

// Generate produces an ECG signal for the configured condition.
func (s *Synthesizer) Generate(p Params) (synth.Signal, error) {
	if p.Condition == "" {
		p.Condition = NormalSinus
	}
	strategy, ok := conditions[p.Condition]
	if !ok {
		return nil, fmt.Errorf("%w: cardiac condition %q", synth.ErrUnsupportedType, p.Condition)
	}
	if err := validate(p); err != nil {
		return nil, err
	}
	if p.Seed != nil {
		s.rng = synth.NewRNG(*p.Seed)
	}
	return strategy(s, p)
}

func validate(p Params) error {
	if p.HeartRate <= 0 {
		return fmt.Errorf("%w: heart rate must be positive, got %g", synth.ErrInvalidParameter, p.HeartRate)
	}
	if p.HRVStd < 0 {
		return fmt.Errorf("%w: HRV std must be non-negative, got %g", synth.ErrInvalidParameter, p.HRVStd)
	}
	if p.Severity < 0 || p.Severity > 1 {
		return fmt.Errorf("%w: severity must be in [0, 1], got %g", synth.ErrInvalidParameter, p.Severity)
	}
	switch p.Condition {
	case PVC:
		if p.PVCFrequency < 0 || p.PVCFrequency > 1 {
			return fmt.Errorf("%w: PVC frequency must be in [0, 1], got %g", synth.ErrInvalidParameter, p.PVCFrequency)
		}
	case AF:
		if p.AFRateMin <= 0 || p.AFRateMax <= p.AFRateMin {
			return fmt.Errorf("%w: AF rate range [%g, %g] is degenerate", synth.ErrInvalidParameter, p.AFRateMin, p.AFRateMax)
		}
	case HeartBlock:
		if p.BlockDegree < 1 || p.BlockDegree > 3 {
			return fmt.Errorf("%w: heart block degree must be 1, 2 or 3, got %d", synth.ErrInvalidParameter, p.BlockDegree)
		}
	}
	return nil
}

// scheduleBeats returns beat onset times spaced 60/heartRate apart, each
// perturbed by Gaussian jitter when HRV is enabled. The schedule is forced
// monotonically non-decreasing and clamped into [0, duration).
func (s *Synthesizer) scheduleBeats(heartRate, hrvStd float64) []float64 {
	base := 60.0 / heartRate
	n := int(s.tb.Duration / base)
	times := make([]float64, 0, n)
	prev := 0.0
	for i := 0; i < n; i++ {
		t := float64(i) * base
		if hrvStd > 0 {
			t += s.rng.NormFloat64() * hrvStd
		}
		if t < prev {
			t = prev
		}
		if t < 0 {
			t = 0
		}
		if t >= s.tb.Duration {
			break
		}
		times = append(times, t)
		prev = t
	}
	return times
}

// addBeat places one PQRST group with QRS onset at beatTime seconds.
func (s *Synthesizer) addBeat(buf synth.Signal, beatTime float64, m morphology, includeP bool, edge synth.EdgePolicy) {
	if includeP {
		pWave := kernels.GaussianBump(m.p.Amplitude, m.p.Duration, s.tb.SamplingRate)
		synth.PlaceAt(buf, pWave, s.tb.SampleIndex(beatTime-prInterval), 1, edge)
	}
	qrs := kernels.QRS(m.qrs.QAmp, m.qrs.RAmp, m.qrs.SAmp, m.qrs.Duration, s.tb.SamplingRate)
	synth.PlaceAt(buf, qrs, s.tb.SampleIndex(beatTime), 1, edge)

	tWave := kernels.GaussianBump(m.t.Amplitude, m.t.Duration, s.tb.SamplingRate)
	synth.PlaceAt(buf, tWave, s.tb.SampleIndex(beatTime+qtOffset), 1, edge)
}

// renderSinus places one conducted PQRST group per scheduled beat. Condition
// strategies that decorate sinus rhythm render through this with the same
// schedule they use for their overlays, so both stay aligned under HRV jitter.
func (s *Synthesizer) renderSinus(beats []float64, m morphology, edge synth.EdgePolicy) synth.Signal {
	out := s.tb.NewBuffer()
	for _, beat := range beats {
		s.addBeat(out, beat, m, true, edge)
	}
	return out
}

// normalSinus renders conducted beats on the jittered schedule.
func (s *Synthesizer) normalSinus(p Params) (synth.Signal, error) {
	return s.renderSinus(s.scheduleBeats(p.HeartRate, p.HRVStd), resolveMorphology(p), p.Edge), nil
}

package emg

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitalsynth/vitalsynth/synth"
)

func newTestSynth(t *testing.T, rate, duration float64, seed int64) *Synthesizer {
	t.Helper()
	tb, err := synth.NewTimeBase(rate, duration)
	require.NoError(t, err)
	return New(tb, synth.NewRNG(seed))
}

func TestGenerateIsometric(t *testing.T) {
	s := newTestSynth(t, 2000, 5, 1)

	out, err := s.Generate(DefaultParams())
	require.NoError(t, err)
	require.Len(t, out, 10000)
	assert.Greater(t, out.PeakAbs(), 0.0)
}

func TestIsometricIntensityScalesActivity(t *testing.T) {
	p := DefaultParams()

	p.Intensity = 0.0
	low, err := newTestSynth(t, 2000, 5, 42).Generate(p)
	require.NoError(t, err)

	p.Intensity = 1.0
	high, err := newTestSynth(t, 2000, 5, 42).Generate(p)
	require.NoError(t, err)

	assert.Greater(t, low.PeakAbs(), 0.0,
		"zero activation still fires at the 50 Hz floor")
	assert.Greater(t, high.NonZeroFraction(1e-9), low.NonZeroFraction(1e-9),
		"higher activation fires more motor units")
	assert.Greater(t, synth.StdDev(high), synth.StdDev(low))
}

func TestIsometricPartialDuration(t *testing.T) {
	s := newTestSynth(t, 2000, 10, 7)

	p := DefaultParams()
	p.Intensity = 0.8
	p.Duration = 2
	out, err := s.Generate(p)
	require.NoError(t, err)

	tail := out[len(out)/2:]
	assert.Equal(t, 0.0, synth.Signal(tail).PeakAbs(), "no activity after the contraction ends")
}

func TestFatigueDecay(t *testing.T) {
	p := DefaultParams()
	p.Intensity = 1.0
	p.FatigueRate = 3

	out, err := newTestSynth(t, 2000, 10, 3).Generate(p)
	require.NoError(t, err)

	firstHalf := synth.StdDev(out[:len(out)/2])
	secondHalf := synth.StdDev(out[len(out)/2:])
	assert.Greater(t, firstHalf, 2*secondHalf, "amplitude decays under fatigue")
}

func TestGenerateDynamicEnvelopes(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Params)
	}{
		{"ramp", func(p *Params) { p.Envelope = Ramp }},
		{"sine", func(p *Params) { p.Envelope = Sine }},
		{"custom", func(p *Params) { p.CustomEnvelope = []float64{0, 0.5, 1, 0.5, 0} }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynth(t, 2000, 5, 5)
			p := DefaultParams()
			p.Pattern = Dynamic
			tt.mod(&p)
			out, err := s.Generate(p)
			require.NoError(t, err)
			require.Len(t, out, 10000)
			assert.Greater(t, out.PeakAbs(), 0.0)
		})
	}
}

func TestDynamicRampGrowsOverTime(t *testing.T) {
	s := newTestSynth(t, 2000, 10, 11)

	p := DefaultParams()
	p.Pattern = Dynamic
	p.Envelope = Ramp
	p.MaxIntensity = 1.0
	out, err := s.Generate(p)
	require.NoError(t, err)

	firstQuarter := synth.Signal(out[:len(out)/4])
	lastQuarter := synth.Signal(out[3*len(out)/4:])
	assert.Greater(t, lastQuarter.NonZeroFraction(1e-9), firstQuarter.NonZeroFraction(1e-9))
}

func TestGenerateRepetitive(t *testing.T) {
	s := newTestSynth(t, 2000, 6, 13)

	p := DefaultParams()
	p.Pattern = Repetitive
	p.Intensity = 0.9
	p.Frequency = 0.5
	p.DutyCycle = 0.5
	p.RestIntensity = 0
	out, err := s.Generate(p)
	require.NoError(t, err)
	require.Len(t, out, 12000)
	assert.Greater(t, out.PeakAbs(), 0.0)
}

func TestGenerateComplex(t *testing.T) {
	s := newTestSynth(t, 2000, 10, 17)

	p := Params{
		Pattern: Complex,
		Movements: []Movement{
			{Type: Isometric, Duration: 2, Intensity: 0.8},
			{Type: Dynamic, Duration: 3, Intensity: 0.6},
			{Type: Repetitive, Duration: 4, Intensity: 0.7},
		},
	}
	out, err := s.Generate(p)
	require.NoError(t, err)
	require.Len(t, out, 20000)
	assert.Greater(t, out.PeakAbs(), 0.0)
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		p    Params
	}{
		{"intensity above one", Params{Pattern: Isometric, Intensity: 1.5}},
		{"negative intensity", Params{Pattern: Isometric, Intensity: -0.1}},
		{"duration beyond record", Params{Pattern: Isometric, Intensity: 0.5, Duration: 20}},
		{"bad max intensity", Params{Pattern: Dynamic, Intensity: 0.5, MaxIntensity: 2}},
		{"zero movement frequency", Params{Pattern: Repetitive, Intensity: 0.5, DutyCycle: 0.5}},
		{"bad duty cycle", Params{Pattern: Repetitive, Intensity: 0.5, Frequency: 1, DutyCycle: 1.5}},
		{"complex without movements", Params{Pattern: Complex, Intensity: 0.5}},
		{"complex overruns record", Params{Pattern: Complex, Intensity: 0.5, Movements: []Movement{
			{Type: Isometric, Duration: 6, Intensity: 0.5},
			{Type: Isometric, Duration: 6, Intensity: 0.5},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynth(t, 2000, 10, 1)
			_, err := s.Generate(tt.p)
			assert.ErrorIs(t, err, synth.ErrInvalidParameter)
		})
	}
}

func TestComplexOverlapFitsByLongest(t *testing.T) {
	s := newTestSynth(t, 2000, 10, 1)

	p := Params{
		Pattern: Complex,
		Overlap: true,
		Movements: []Movement{
			{Type: Isometric, Duration: 8, Intensity: 0.5},
			{Type: Isometric, Duration: 8, Intensity: 0.5},
		},
	}
	// Concatenated these would overrun; superposed they fit.
	_, err := s.Generate(p)
	assert.NoError(t, err)

	p.Overlap = false
	_, err = s.Generate(p)
	assert.ErrorIs(t, err, synth.ErrInvalidParameter)
}

func TestGenerateUnsupportedPattern(t *testing.T) {
	s := newTestSynth(t, 2000, 5, 1)
	_, err := s.Generate(Params{Pattern: PatternType("ballistic"), Intensity: 0.5})
	assert.ErrorIs(t, err, synth.ErrUnsupportedType)
}

func TestGenerateDeterministic(t *testing.T) {
	seed := int64(1234)
	p := DefaultParams()
	p.Seed = &seed

	a, err := newTestSynth(t, 2000, 3, 1).Generate(p)
	require.NoError(t, err)
	b, err := newTestSynth(t, 2000, 3, 2).Generate(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

package ecg

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

// rPeaks finds QRS apex indices. The composite QRS tops out around 0.33 with
// the default morphology, above the 0.3 T wave and the 0.2 P wave; a wide
// distance window collapses each beat to its tallest deflection.
func rPeaks(out synth.Signal, samplingRate float64) []int {
	return synth.FindPeaks(out, 0.25, int(0.35*samplingRate))
}

func TestNormalSinusBeatSpacing(t *testing.T) {
	s := newTestSynth(t, 500, 10, 1)

	p := DefaultParams()
	p.HeartRate = 60
	p.HRVStd = 0
	out, err := s.Generate(p)
	require.NoError(t, err)
	require.Len(t, out, 5000)

	peaks := rPeaks(out, 500)
	require.Len(t, peaks, 10, "one beat per second")

	for _, d := range synth.Diff(toFloats(peaks)) {
		assert.InDelta(t, 500, d, 1, "RR interval is exactly one second")
	}
}

func toFloats(idx []int) []float64 {
	out := make([]float64, len(idx))
	for i, v := range idx {
		out[i] = float64(v)
	}
	return out
}

func TestHRVJittersSchedule(t *testing.T) {
	s := newTestSynth(t, 500, 30, 3)

	p := DefaultParams()
	p.HeartRate = 60
	p.HRVStd = 0.05
	out, err := s.Generate(p)
	require.NoError(t, err)

	peaks := rPeaks(out, 500)
	require.Greater(t, len(peaks), 20)
	rr := synth.Diff(toFloats(peaks))
	assert.Greater(t, synth.StdDev(rr), 1.0, "jitter spreads the RR intervals")
}

func TestAFIrregularRhythm(t *testing.T) {
	s := newTestSynth(t, 500, 30, 5)

	p := DefaultParams()
	p.Condition = AF
	p.AFRateMin = 60
	p.AFRateMax = 120
	out, err := s.Generate(p)
	require.NoError(t, err)

	peaks := rPeaks(out, 250) // RR can shrink to 0.5s, so narrow the window
	require.Greater(t, len(peaks), 25)
	require.Less(t, len(peaks), 65)

	rr := synth.Diff(toFloats(peaks))
	afStd := synth.StdDev(rr)
	assert.Greater(t, afStd, 20.0, "AF has no fixed RR interval")

	// Same nominal rate, regular rhythm: RR spread collapses to ~0.
	p.Condition = NormalSinus
	p.HeartRate = 80
	p.HRVStd = 0
	normal, err := newTestSynth(t, 500, 30, 5).Generate(p)
	require.NoError(t, err)
	normalRR := synth.Diff(toFloats(rPeaks(normal, 500)))
	assert.Greater(t, afStd, synth.StdDev(normalRR))
}

func TestPVCSubstitution(t *testing.T) {
	s := newTestSynth(t, 500, 10, 7)

	p := DefaultParams()
	p.Condition = PVC
	p.PVCFrequency = 1.0
	out, err := s.Generate(p)
	require.NoError(t, err)
	assert.Greater(t, out.PeakAbs(), 0.6, "ectopic complexes are amplified")

	p.PVCFrequency = 0.0
	normal, err := s.Generate(p)
	require.NoError(t, err)
	assert.Less(t, normal.PeakAbs(), 0.6)
}

func TestHeartBlockDegrees(t *testing.T) {
	p := DefaultParams()
	p.Condition = HeartBlock
	p.HeartRate = 60

	p.BlockDegree = 1
	first, err := newTestSynth(t, 500, 10, 9).Generate(p)
	require.NoError(t, err)

	p.BlockDegree = 2
	second, err := newTestSynth(t, 500, 10, 9).Generate(p)
	require.NoError(t, err)

	p.BlockDegree = 3
	third, err := newTestSynth(t, 500, 10, 9).Generate(p)
	require.NoError(t, err)

	n1 := len(rPeaks(first, 500))
	n2 := len(rPeaks(second, 500))
	n3 := len(rPeaks(third, 500))

	assert.InDelta(t, 10, float64(n1), 1, "first degree conducts every beat")
	assert.InDelta(t, 5, float64(n2), 1, "second degree drops alternate beats")
	assert.InDelta(t, 6, float64(n3), 1, "third degree escapes at ~40 BPM")
}

func TestSTShift(t *testing.T) {
	p := DefaultParams()
	p.HRVStd = 0
	p.Severity = 0.5

	baseline, err := newTestSynth(t, 500, 10, 1).Generate(p)
	require.NoError(t, err)

	p.Condition = STElevation
	elevated, err := newTestSynth(t, 500, 10, 1).Generate(p)
	require.NoError(t, err)

	diff := make([]float64, len(baseline))
	maxDiff, minDiff := 0.0, 0.0
	for i := range diff {
		diff[i] = elevated[i] - baseline[i]
		if diff[i] > maxDiff {
			maxDiff = diff[i]
		}
		if diff[i] < minDiff {
			minDiff = diff[i]
		}
	}
	assert.InDelta(t, 0.15, maxDiff, 1e-9, "ST segment is lifted by severity*0.3")
	assert.InDelta(t, 0.0, minDiff, 1e-9, "nothing is pulled down")

	p.Condition = STDepression
	depressed, err := newTestSynth(t, 500, 10, 1).Generate(p)
	require.NoError(t, err)
	lowest := 0.0
	for i := range depressed {
		if d := depressed[i] - baseline[i]; d < lowest {
			lowest = d
		}
	}
	assert.InDelta(t, -0.1, lowest, 1e-9, "ST segment drops by severity*0.2")
}

func TestTWaveInversion(t *testing.T) {
	s := newTestSynth(t, 500, 10, 1)

	p := DefaultParams()
	p.Condition = TWaveInversion
	p.HRVStd = 0
	p.Severity = 0.5
	out, err := s.Generate(p)
	require.NoError(t, err)

	lowest := 0.0
	for _, v := range out {
		if v < lowest {
			lowest = v
		}
	}
	assert.Less(t, lowest, -0.1, "T waves point downward")
}

func TestQWave(t *testing.T) {
	s := newTestSynth(t, 500, 10, 1)

	p := DefaultParams()
	p.Condition = QWave
	p.HRVStd = 0
	p.Severity = 1.0
	out, err := s.Generate(p)
	require.NoError(t, err)

	lowest := 0.0
	for _, v := range out {
		if v < lowest {
			lowest = v
		}
	}
	assert.InDelta(t, -0.4, lowest, 1e-9, "pathological Q reaches severity*0.4 deep")
}

func TestSTShiftTracksJitteredSchedule(t *testing.T) {
	p := DefaultParams()
	p.HeartRate = 60
	p.HRVStd = 0.06
	p.Severity = 0.5

	baseline, err := newTestSynth(t, 500, 10, 33).Generate(p)
	require.NoError(t, err)

	// Same seed, so the elevated run draws the identical jittered schedule.
	p.Condition = STElevation
	elevated, err := newTestSynth(t, 500, 10, 33).Generate(p)
	require.NoError(t, err)

	maxDiff, minDiff := 0.0, 0.0
	for i := range baseline {
		d := elevated[i] - baseline[i]
		if d > maxDiff {
			maxDiff = d
		}
		if d < minDiff {
			minDiff = d
		}
	}
	assert.InDelta(t, 0.15, maxDiff, 1e-9, "the lift lands inside the jittered ST windows")
	assert.InDelta(t, 0.0, minDiff, 1e-9, "nothing outside the windows moves")
}

func TestTWaveInversionTracksJitteredSchedule(t *testing.T) {
	p := DefaultParams()
	p.Condition = TWaveInversion
	p.HeartRate = 60
	p.HRVStd = 0.08
	p.Severity = 1.0

	out, err := newTestSynth(t, 500, 10, 31).Generate(p)
	require.NoError(t, err)

	peaks := rPeaks(out, 500)
	require.Len(t, peaks, 10)
	for _, pk := range peaks {
		lo, hi := pk+75, pk+160
		if hi > len(out) {
			hi = len(out)
		}
		lowest, highest := 0.0, 0.0
		for _, v := range out[lo:hi] {
			if v < lowest {
				lowest = v
			}
			if v > highest {
				highest = v
			}
		}
		assert.Less(t, lowest, -0.2, "every jittered beat's T wave points downward")
		assert.Less(t, highest, 0.1, "no upright T wave survives the replacement")
	}
}

func TestQWaveTracksJitteredSchedule(t *testing.T) {
	p := DefaultParams()
	p.Condition = QWave
	p.HeartRate = 60
	p.HRVStd = 0.08
	p.Severity = 1.0

	out, err := newTestSynth(t, 500, 10, 35).Generate(p)
	require.NoError(t, err)

	lowest := 0.0
	for _, v := range out {
		if v < lowest {
			lowest = v
		}
	}
	assert.InDelta(t, -0.4, lowest, 1e-9, "Q pulses still land flush against the jittered QRS onsets")
}

func TestTWaveInversionEdgePolicy(t *testing.T) {
	// One beat at t=0; its T wave starts at 0.2s and runs past the 0.3s
	// record end.
	p := DefaultParams()
	p.Condition = TWaveInversion
	p.HeartRate = 240
	p.HRVStd = 0
	p.Severity = 1.0

	p.Edge = synth.EdgeSkip
	skipped, err := newTestSynth(t, 500, 0.3, 1).Generate(p)
	require.NoError(t, err)

	p.Edge = synth.EdgeClip
	clipped, err := newTestSynth(t, 500, 0.3, 1).Generate(p)
	require.NoError(t, err)

	tailStart := 110
	assert.Equal(t, 0.0, synth.Signal(skipped[tailStart:]).PeakAbs(), "skip drops the overhanging T wave")
	lowest := 0.0
	for _, v := range clipped[tailStart:] {
		if v < lowest {
			lowest = v
		}
	}
	assert.Less(t, lowest, -0.1, "clip renders the in-range portion inverted")
}

func TestConditionsSmoke(t *testing.T) {
	all := []Condition{
		NormalSinus, PVC, AF, Bradycardia, Tachycardia, HeartBlock,
		STElevation, STDepression, TWaveInversion, QWave,
		LBBB, RBBB, WPW, LAFB,
	}
	for _, cond := range all {
		t.Run(string(cond), func(t *testing.T) {
			s := newTestSynth(t, 500, 10, 21)
			p := DefaultParams()
			p.Condition = cond
			out, err := s.Generate(p)
			require.NoError(t, err)
			require.Len(t, out, 5000)
			assert.Greater(t, out.PeakAbs(), 0.0)
		})
	}
}

func TestMorphologyOverrides(t *testing.T) {
	s := newTestSynth(t, 500, 5, 1)

	p := DefaultParams()
	p.HRVStd = 0
	p.QRS = &QRSParams{QAmp: -0.1, RAmp: 2.0, SAmp: -0.1, Duration: 0.08}
	out, err := s.Generate(p)
	require.NoError(t, err)
	assert.Greater(t, out.PeakAbs(), 1.5, "override raises the R amplitude")
}

func TestEdgePolicyAtRecordEnd(t *testing.T) {
	// One beat at t=0; its T wave starts at 0.2s and runs past the 0.3s
	// record end.
	p := DefaultParams()
	p.HeartRate = 240
	p.HRVStd = 0

	p.Edge = synth.EdgeSkip
	skipped, err := newTestSynth(t, 500, 0.3, 1).Generate(p)
	require.NoError(t, err)

	p.Edge = synth.EdgeClip
	clipped, err := newTestSynth(t, 500, 0.3, 1).Generate(p)
	require.NoError(t, err)

	tailStart := 110
	skipTail := synth.Signal(skipped[tailStart:]).PeakAbs()
	clipTail := synth.Signal(clipped[tailStart:]).PeakAbs()
	assert.Equal(t, 0.0, skipTail, "skip drops the overhanging T wave")
	assert.Greater(t, clipTail, 0.0, "clip renders the in-range portion")
}

func TestGenerateValidation(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Params)
	}{
		{"zero heart rate", func(p *Params) { p.HeartRate = 0 }},
		{"negative hrv", func(p *Params) { p.HRVStd = -0.1 }},
		{"severity above one", func(p *Params) { p.Severity = 1.2 }},
		{"pvc frequency above one", func(p *Params) { p.Condition = PVC; p.PVCFrequency = 1.5 }},
		{"degenerate af range", func(p *Params) { p.Condition = AF; p.AFRateMin = 300; p.AFRateMax = 200 }},
		{"block degree out of range", func(p *Params) { p.Condition = HeartBlock; p.BlockDegree = 4 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestSynth(t, 500, 10, 1)
			p := DefaultParams()
			tt.mod(&p)
			_, err := s.Generate(p)
			assert.ErrorIs(t, err, synth.ErrInvalidParameter)
		})
	}
}

func TestGenerateUnsupportedCondition(t *testing.T) {
	s := newTestSynth(t, 500, 10, 1)
	p := DefaultParams()
	p.Condition = Condition("flutter")
	_, err := s.Generate(p)
	assert.ErrorIs(t, err, synth.ErrUnsupportedType)
}

func TestGenerateDeterministic(t *testing.T) {
	seed := int64(77)
	p := DefaultParams()
	p.Condition = AF
	p.AFRateMin = 60
	p.AFRateMax = 120
	p.Seed = &seed

	a, err := newTestSynth(t, 500, 10, 1).Generate(p)
	require.NoError(t, err)
	b, err := newTestSynth(t, 500, 10, 2).Generate(p)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

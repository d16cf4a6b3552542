package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMUAPBiphasic(t *testing.T) {
	pulse := MUAP(1000)
	require.Equal(t, 4, len(pulse), "4ms support at 1kHz")

	pulse = MUAP(10000)
	require.Equal(t, 40, len(pulse))

	// Odd symmetry: positive lobe first, negative lobe second.
	assert.Greater(t, pulse[10], 0.0)
	assert.Less(t, pulse[len(pulse)-10], 0.0)

	var sum float64
	for _, v := range pulse {
		sum += v
	}
	assert.InDelta(t, 0.0, sum, 1e-3, "biphasic pulse integrates to roughly zero")
}

func TestGaussianBumpPeak(t *testing.T) {
	bump := GaussianBump(0.5, 0.2, 1000)
	require.Len(t, bump, 200)

	peak := 0
	for i := range bump {
		if bump[i] > bump[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 0.5, bump[peak], 1e-4)
	assert.InDelta(t, float64(len(bump))/2, float64(peak), 1.5, "peak sits at the center")
	assert.Less(t, bump[0], bump[peak])
}

func TestQRSShape(t *testing.T) {
	qrs := QRS(-0.5, 1.0, -0.2, 0.1, 1000)
	require.Len(t, qrs, 100)

	maxV := qrs[0]
	for _, v := range qrs {
		if v > maxV {
			maxV = v
		}
	}
	assert.Greater(t, maxV, 0.3)

	// The deeper Q lobe pulls the left edge below the right edge.
	assert.Less(t, qrs[0], qrs[len(qrs)-1])

	// Equal Q and S amplitudes give a symmetric complex.
	sym := QRS(0.8, 1.0, 0.8, 0.1, 1000)
	for i := range sym {
		assert.InDelta(t, sym[i], sym[len(sym)-1-i], 1e-9)
	}
}

func TestSaccadeVelocityAsymmetry(t *testing.T) {
	v := SaccadeVelocity(300, 0.06, 10000)
	require.NotEmpty(t, v)

	peak := 0
	for i := range v {
		if v[i] > v[peak] {
			peak = i
		}
	}
	assert.InDelta(t, 300, v[peak], 0.1)
	assert.Less(t, peak, len(v)/2, "velocity peaks in the first half")
}

func TestSaccadePositionAmplitude(t *testing.T) {
	tests := []struct {
		name      string
		amplitude float64
	}{
		{"rightward", 20},
		{"leftward", -15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pos := SaccadePosition(tt.amplitude, 0.06, 300, 10000)
			require.NotEmpty(t, pos)
			assert.InDelta(t, tt.amplitude, pos[len(pos)-1], 1e-9)
			assert.InDelta(t, 0.0, pos[0], math.Abs(tt.amplitude)*0.05,
				"trace starts near zero")
		})
	}
}

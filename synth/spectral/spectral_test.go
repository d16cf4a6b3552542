package spectral

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForwardSinusoidPeak(t *testing.T) {
	const (
		n    = 1024
		rate = 256.0
		f0   = 32.0
	)
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * f0 * float64(i) / rate)
	}

	freqs, psd := Periodogram(signal, rate)
	require.Len(t, psd, n/2)

	peak := 0
	for i := range psd {
		if psd[i] > psd[peak] {
			peak = i
		}
	}
	assert.InDelta(t, f0, freqs[peak], rate/float64(n))
}

func TestInverseRealRoundTrip(t *testing.T) {
	signal := []float64{1, -2, 3, 0.5, -0.25, 4, 0, 1}
	back := InverseReal(Forward(signal))
	require.Len(t, back, len(signal))
	for i := range signal {
		assert.InDelta(t, signal[i], back[i], 1e-9)
	}
}

func TestFreqBinsLayout(t *testing.T) {
	freqs := FreqBins(8, 8)
	assert.Equal(t, []float64{0, 1, 2, 3, -4, -3, -2, -1}, freqs)

	freqs = FreqBins(5, 5)
	assert.Equal(t, []float64{0, 1, 2, -2, -1}, freqs)
}

func TestPeriodogramShortInput(t *testing.T) {
	freqs, psd := Periodogram([]float64{1}, 100)
	assert.Nil(t, freqs)
	assert.Nil(t, psd)
}

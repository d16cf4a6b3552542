package synth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeBase(t *testing.T) {
	tests := []struct {
		name     string
		rate     float64
		duration float64
		wantN    int
		wantErr  bool
	}{
		{"one second at 1kHz", 1000, 1, 1000, false},
		{"ten seconds at 500Hz", 500, 10, 5000, false},
		{"fractional count rounds", 100, 0.955, 96, false},
		{"zero rate", 0, 1, 0, true},
		{"negative rate", -100, 1, 0, true},
		{"zero duration", 1000, 0, 0, true},
		{"negative duration", 1000, -1, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tb, err := NewTimeBase(tt.rate, tt.duration)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrInvalidParameter)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantN, tb.NSamples)
			assert.Len(t, tb.Time, tt.wantN)
			assert.Equal(t, 0.0, tb.Time[0])
			assert.InDelta(t, tt.duration, tb.Time[tb.NSamples-1], 1e-9)
		})
	}
}

func TestTimeBaseMonotonic(t *testing.T) {
	tb, err := NewTimeBase(250, 4)
	require.NoError(t, err)
	for i := 1; i < tb.NSamples; i++ {
		assert.Greater(t, tb.Time[i], tb.Time[i-1])
	}
}

func TestPlaceEdgeSkip(t *testing.T) {
	kernel := Signal{1, 2, 3}

	t.Run("fully inside writes", func(t *testing.T) {
		buf := make(Signal, 10)
		assert.True(t, Place(buf, kernel, 4, 1, EdgeSkip, PlaceAdd))
		assert.Equal(t, Signal{0, 0, 0, 0, 1, 2, 3, 0, 0, 0}, buf)
	})

	t.Run("overhangs end drops everything", func(t *testing.T) {
		buf := make(Signal, 10)
		assert.False(t, Place(buf, kernel, 8, 1, EdgeSkip, PlaceAdd))
		assert.Equal(t, make(Signal, 10), buf)
	})

	t.Run("negative start drops everything", func(t *testing.T) {
		buf := make(Signal, 10)
		assert.False(t, Place(buf, kernel, -1, 1, EdgeSkip, PlaceAdd))
		assert.Equal(t, make(Signal, 10), buf)
	})
}

func TestPlaceEdgeClip(t *testing.T) {
	kernel := Signal{1, 2, 3}

	t.Run("overhangs end keeps prefix", func(t *testing.T) {
		buf := make(Signal, 10)
		assert.True(t, Place(buf, kernel, 8, 1, EdgeClip, PlaceAdd))
		assert.Equal(t, Signal{0, 0, 0, 0, 0, 0, 0, 0, 1, 2}, buf)
	})

	t.Run("negative start keeps suffix", func(t *testing.T) {
		buf := make(Signal, 10)
		assert.True(t, Place(buf, kernel, -2, 1, EdgeClip, PlaceAdd))
		assert.Equal(t, Signal{3, 0, 0, 0, 0, 0, 0, 0, 0, 0}, buf)
	})

	t.Run("entirely out of range writes nothing", func(t *testing.T) {
		buf := make(Signal, 10)
		assert.False(t, Place(buf, kernel, 20, 1, EdgeClip, PlaceAdd))
		assert.Equal(t, make(Signal, 10), buf)
	})
}

func TestPlaceModes(t *testing.T) {
	kernel := Signal{1, 1}

	buf := Signal{5, 5, 5}
	Place(buf, kernel, 0, 2, EdgeSkip, PlaceAdd)
	assert.Equal(t, Signal{7, 7, 5}, buf)

	buf = Signal{5, 5, 5}
	Place(buf, kernel, 0, 2, EdgeSkip, PlaceReplace)
	assert.Equal(t, Signal{2, 2, 5}, buf)
}

func TestSignalAddScale(t *testing.T) {
	a := Signal{1, 2, 3}
	b := Signal{10, 20, 30}

	sum := a.Add(b)
	assert.Equal(t, Signal{11, 22, 33}, sum)
	assert.Equal(t, Signal{1, 2, 3}, a, "Add must not mutate the receiver")

	assert.Nil(t, a.Add(Signal{1}))

	scaled := a.Scale(2)
	assert.Equal(t, Signal{2, 4, 6}, scaled)
	assert.Equal(t, Signal{1, 2, 3}, a, "Scale must not mutate the receiver")
}

func TestFindPeaks(t *testing.T) {
	data := []float64{0, 1, 0, 0, 3, 0, 0, 0.2, 0}

	peaks := FindPeaks(data, 0.5, 1)
	assert.Equal(t, []int{1, 4}, peaks)

	// Distance constraint keeps only the taller of the two close peaks.
	peaks = FindPeaks(data, 0.5, 5)
	assert.Equal(t, []int{4}, peaks)
}

func TestResample(t *testing.T) {
	src := []float64{0, 1, 2, 3}

	out := Resample(src, 7)
	require.Len(t, out, 7)
	assert.InDelta(t, 0.0, out[0], 1e-9)
	assert.InDelta(t, 3.0, out[6], 1e-9)
	assert.InDelta(t, 1.5, out[3], 1e-9)

	assert.Nil(t, Resample(nil, 5))
	assert.Equal(t, []float64{2, 2, 2}, Resample([]float64{2}, 3))
}

func TestNewRNGDeterministic(t *testing.T) {
	a := NewRNG(42)
	b := NewRNG(42)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Float64(), b.Float64())
	}
}

package synth

import (
	"fmt"
	"math"
)

// TimeBase derives the sample count and a uniform time vector from a sampling
// rate and duration. It is a value object: created once per synthesizer and
// never mutated. Every generator participating in one Generate call must share
// the same TimeBase so composed noise and artifacts align sample-for-sample.
type TimeBase struct {
	SamplingRate float64
	Duration     float64
	NSamples     int
	Time         Signal
}

// NewTimeBase validates the sampling rate and duration and builds the time
// vector time[i] = i * duration / (n-1).
func NewTimeBase(samplingRate, duration float64) (TimeBase, error) {
	if samplingRate <= 0 {
		return TimeBase{}, fmt.Errorf("%w: sampling rate must be positive, got %g", ErrInvalidParameter, samplingRate)
	}
	if duration <= 0 {
		return TimeBase{}, fmt.Errorf("%w: duration must be positive, got %g", ErrInvalidParameter, duration)
	}

	n := int(math.Round(samplingRate * duration))
	if n < 1 {
		n = 1
	}

	tb := TimeBase{
		SamplingRate: samplingRate,
		Duration:     duration,
		NSamples:     n,
		Time:         make(Signal, n),
	}
	if n > 1 {
		step := duration / float64(n-1)
		for i := range tb.Time {
			tb.Time[i] = float64(i) * step
		}
	}
	return tb, nil
}

// NewBuffer allocates a zeroed output buffer matching the time base length.
func (tb TimeBase) NewBuffer() Signal {
	return make(Signal, tb.NSamples)
}

// SampleIndex converts a time in seconds to the nearest sample index.
// The result is not bounds-checked; placement primitives handle clipping.
func (tb TimeBase) SampleIndex(seconds float64) int {
	return int(seconds * tb.SamplingRate)
}

// SampleCount converts a span in seconds to a sample count.
func (tb TimeBase) SampleCount(seconds float64) int {
	return int(seconds * tb.SamplingRate)
}

// Package kernels provides the short analytic waveform pulses that the
// synthesizers compose into full-length signals: the EMG motor-unit action
// potential, the ECG P/QRS/T lobes, and the EOG saccade velocity profile.
// Every kernel is a pure function of its parameters, regenerated on demand
// from its closed-form expression.
package kernels

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/vitalsynth/vitalsynth/synth"
)

// muapHalfWidth is the half-support of the MUAP pulse in seconds.
const muapHalfWidth = 0.002

// MUAP returns a single biphasic motor-unit action potential,
// f(t) = -t * exp(-2000 t^2) sampled over t in [-2ms, 2ms].
func MUAP(samplingRate float64) synth.Signal {
	t := span(-muapHalfWidth, muapHalfWidth, int(2*muapHalfWidth*samplingRate))
	out := make(synth.Signal, len(t))
	for i, ti := range t {
		out[i] = -ti * math.Exp(-2000*ti*ti)
	}
	return out
}

// GaussianBump returns amplitude * exp(-100 t^2) over t in [-d/2, d/2].
// ECG P and T waves are instances of this shape.
func GaussianBump(amplitude, duration, samplingRate float64) synth.Signal {
	t := span(-duration/2, duration/2, int(duration*samplingRate))
	out := make(synth.Signal, len(t))
	for i, ti := range t {
		out[i] = amplitude * math.Exp(-100*ti*ti)
	}
	return out
}

// QRS returns a triphasic complex as the sum of three Gaussian lobes centered
// at -d/4, 0 and +d/4 with the given Q, R and S amplitudes.
func QRS(qAmp, rAmp, sAmp, duration, samplingRate float64) synth.Signal {
	t := span(-duration/2, duration/2, int(duration*samplingRate))
	out := make(synth.Signal, len(t))
	q := duration / 4
	for i, ti := range t {
		out[i] = qAmp*math.Exp(-50*(ti+q)*(ti+q)) +
			rAmp*math.Exp(-50*ti*ti) +
			sAmp*math.Exp(-50*(ti-q)*(ti-q))
	}
	return out
}

// SaccadeVelocity returns the asymmetric velocity profile
// v(t) = peakVelocity * exp(-((t - d/3)^2) / (0.2 d)^2), which rises faster
// than it decays, over t in [0, d].
func SaccadeVelocity(peakVelocity, duration, samplingRate float64) synth.Signal {
	t := span(0, duration, int(duration*samplingRate))
	out := make(synth.Signal, len(t))
	center := duration / 3
	width := 0.2 * duration
	for i, ti := range t {
		d := ti - center
		out[i] = peakVelocity * math.Exp(-(d*d)/(width*width))
	}
	return out
}

// SaccadePosition integrates the saccade velocity profile by cumulative sum
// and rescales the trace so its final value equals amplitude (which may be
// negative).
func SaccadePosition(amplitude, duration, peakVelocity, samplingRate float64) synth.Signal {
	velocity := SaccadeVelocity(peakVelocity, duration, samplingRate)
	if len(velocity) == 0 {
		return velocity
	}
	position := make(synth.Signal, len(velocity))
	floats.CumSum(position, velocity)
	floats.Scale(1/samplingRate, position)

	final := position[len(position)-1]
	if final != 0 {
		floats.Scale(amplitude/final, position)
	}
	return position
}

// span returns n points evenly spaced over [lo, hi]. A single-point span sits
// at lo, matching np.linspace.
func span(lo, hi float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	out := make([]float64, n)
	if n == 1 {
		out[0] = lo
		return out
	}
	return floats.Span(out, lo, hi)
}

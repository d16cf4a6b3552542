package spectral

import (
	"github.com/mjibson/go-dsp/fft"
)

// Forward computes the FFT of a real signal. mjibson/go-dsp handles arbitrary
// lengths, including non-power-of-2.
func Forward(x []float64) []complex128 {
	if len(x) == 0 {
		return []complex128{}
	}
	return fft.FFTReal(x)
}

// InverseReal computes the inverse FFT and keeps the real part only.
func InverseReal(x []complex128) []float64 {
	if len(x) == 0 {
		return []float64{}
	}
	result := fft.IFFT(x)
	out := make([]float64, len(result))
	for i, v := range result {
		out[i] = real(v)
	}
	return out
}

// FreqBins returns the frequency (Hz) of each FFT bin for the given signal
// length and sampling rate, with negative frequencies in the upper half,
// matching the layout of Forward's output.
func FreqBins(n int, samplingRate float64) []float64 {
	freqs := make([]float64, n)
	df := samplingRate / float64(n)
	half := (n + 1) / 2
	for i := 0; i < half; i++ {
		freqs[i] = float64(i) * df
	}
	for i := half; i < n; i++ {
		freqs[i] = float64(i-n) * df
	}
	return freqs
}

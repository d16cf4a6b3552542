package spectral

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/stat"
)

// Periodogram returns the single-sided power spectral density estimate of the
// signal and the matching frequency axis. The DC bin is dropped so the result
// can go straight onto a log-log axis.
func Periodogram(signal []float64, samplingRate float64) (freqs, psd []float64) {
	n := len(signal)
	if n < 2 {
		return nil, nil
	}

	spectrum := Forward(signal)
	half := n / 2
	freqs = make([]float64, 0, half)
	psd = make([]float64, 0, half)
	df := samplingRate / float64(n)
	for i := 1; i <= half; i++ {
		mag := cmplx.Abs(spectrum[i])
		freqs = append(freqs, float64(i)*df)
		psd = append(psd, mag*mag/(samplingRate*float64(n)))
	}
	return freqs, psd
}

// SpectralSlope fits a line to the log-log PSD of the signal and returns its
// slope. White noise sits near 0, pink near -1, brown near -2. Zero-power bins
// are excluded from the fit.
func SpectralSlope(signal []float64, samplingRate float64) float64 {
	freqs, psd := Periodogram(signal, samplingRate)
	if len(psd) < 2 {
		return 0
	}

	logF := make([]float64, 0, len(psd))
	logP := make([]float64, 0, len(psd))
	for i := range psd {
		if psd[i] <= 0 || freqs[i] <= 0 {
			continue
		}
		logF = append(logF, math.Log10(freqs[i]))
		logP = append(logP, math.Log10(psd[i]))
	}
	if len(logF) < 2 {
		return 0
	}

	_, slope := stat.LinearRegression(logF, logP, nil, false)
	return slope
}

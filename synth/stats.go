package synth

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Statistical helpers shared across generators and tests, backed by gonum.

// Mean returns the arithmetic mean of the samples.
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0
	}
	return stat.Mean(data, nil)
}

// StdDev returns the sample standard deviation.
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0
	}
	return math.Sqrt(stat.Variance(data, nil))
}

// FindPeaks returns indices of local maxima at least minHeight tall and
// minDistance samples apart. When two candidates violate the distance
// constraint the taller one wins.
func FindPeaks(data []float64, minHeight float64, minDistance int) []int {
	var peaks []int
	for i := 1; i < len(data)-1; i++ {
		if data[i] <= data[i-1] || data[i] <= data[i+1] || data[i] < minHeight {
			continue
		}
		if n := len(peaks); n > 0 && i-peaks[n-1] < minDistance {
			if data[i] > data[peaks[n-1]] {
				peaks[n-1] = i
			}
			continue
		}
		peaks = append(peaks, i)
	}
	return peaks
}

// Diff returns successive differences data[i+1]-data[i].
func Diff(data []float64) []float64 {
	if len(data) < 2 {
		return nil
	}
	out := make([]float64, len(data)-1)
	for i := range out {
		out[i] = data[i+1] - data[i]
	}
	return out
}

// Resample linearly interpolates src onto a grid of n evenly spaced points
// spanning the same normalized range.
func Resample(src []float64, n int) []float64 {
	if n <= 0 || len(src) == 0 {
		return nil
	}
	out := make([]float64, n)
	if len(src) == 1 {
		for i := range out {
			out[i] = src[0]
		}
		return out
	}
	scale := float64(len(src)-1) / float64(max(n-1, 1))
	for i := range out {
		pos := float64(i) * scale
		lo := int(pos)
		if lo >= len(src)-1 {
			out[i] = src[len(src)-1]
			continue
		}
		frac := pos - float64(lo)
		out[i] = src[lo] + frac*(src[lo+1]-src[lo])
	}
	return out
}

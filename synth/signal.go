package synth

import (
	"gonum.org/v1/gonum/floats"
)

// Signal is a fixed-length sequence of samples. Once returned by a generator it
// is treated as immutable; composition always allocates a new Signal.
type Signal []float64

// Copy returns an independent copy of the signal.
func (s Signal) Copy() Signal {
	out := make(Signal, len(s))
	copy(out, s)
	return out
}

// Add returns the sample-wise sum of two signals of equal length.
// Returns nil when the lengths differ.
func (s Signal) Add(other Signal) Signal {
	if len(s) != len(other) {
		return nil
	}
	out := s.Copy()
	floats.Add(out, other)
	return out
}

// Scale returns the signal multiplied by a constant factor.
func (s Signal) Scale(factor float64) Signal {
	out := s.Copy()
	floats.Scale(factor, out)
	return out
}

// PeakAbs returns the maximum absolute sample value, 0 for an empty signal.
func (s Signal) PeakAbs() float64 {
	peak := 0.0
	for _, v := range s {
		if v < 0 {
			v = -v
		}
		if v > peak {
			peak = v
		}
	}
	return peak
}

// NonZeroFraction returns the fraction of samples whose magnitude exceeds eps.
func (s Signal) NonZeroFraction(eps float64) float64 {
	if len(s) == 0 {
		return 0
	}
	n := 0
	for _, v := range s {
		if v > eps || v < -eps {
			n++
		}
	}
	return float64(n) / float64(len(s))
}

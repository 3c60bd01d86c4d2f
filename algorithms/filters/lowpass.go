package filters

import (
	"math"
)

// LowPassFIR is a linear-phase windowed-sinc low-pass filter. It is used
// as the anti-alias stage before integer decimation, where a recursive
// filter's phase distortion would skew transient timing in the scalogram.
type LowPassFIR struct {
	cutoff float64 // Normalized cutoff (fraction of the sample rate)
	taps   []float64
}

// NewLowPassFIR designs a filter with the given normalized cutoff
// (0 < cutoff < 0.5) and tap count. An even tap count is bumped to odd so
// the kernel has an exact center.
func NewLowPassFIR(cutoff float64, numTaps int) *LowPassFIR {
	if numTaps < 3 {
		numTaps = 3
	}
	if numTaps%2 == 0 {
		numTaps++
	}

	lp := &LowPassFIR{
		cutoff: cutoff,
		taps:   make([]float64, numTaps),
	}
	lp.design()
	return lp
}

// design builds the Hann-windowed sinc kernel and normalizes it to unity
// DC gain.
func (lp *LowPassFIR) design() {
	n := len(lp.taps)
	center := float64(n-1) / 2.0
	sum := 0.0

	for i := range lp.taps {
		t := float64(i) - center
		var sinc float64
		if t == 0 {
			sinc = 2.0 * lp.cutoff
		} else {
			sinc = math.Sin(2.0*math.Pi*lp.cutoff*t) / (math.Pi * t)
		}
		window := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(i)/float64(n-1)))
		lp.taps[i] = sinc * window
		sum += lp.taps[i]
	}

	if sum != 0 {
		for i := range lp.taps {
			lp.taps[i] /= sum
		}
	}
}

// Apply convolves the signal with the kernel, compensating the group delay
// so the output stays aligned with the input. Edges use zero padding.
func (lp *LowPassFIR) Apply(signal []float64) []float64 {
	output := make([]float64, len(signal))
	half := len(lp.taps) / 2

	for i := range signal {
		acc := 0.0
		for k, tap := range lp.taps {
			idx := i + half - k
			if idx >= 0 && idx < len(signal) {
				acc += tap * signal[idx]
			}
		}
		output[i] = acc
	}
	return output
}

// GetTaps returns the designed kernel coefficients
func (lp *LowPassFIR) GetTaps() []float64 {
	return lp.taps
}

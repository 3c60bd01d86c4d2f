package filters

import (
	"math"
)

// DCRemoval is a first-order DC blocking filter. Cheap microphone preamps
// on handheld recorders often leave a constant offset on motor recordings,
// which would otherwise dominate peak normalization and the lowest
// spectrogram bins.
//
// Difference equation: y[n] = x[n] - x[n-1] + R * y[n-1]
type DCRemoval struct {
	poleLocation float64 // R parameter (0 < R < 1)

	x1 float64 // Previous input sample
	y1 float64 // Previous output sample
}

// NewDCRemoval creates a DC blocker with a pole at 0.995, which puts the
// -3dB point around 18 Hz at 22050 Hz sample rate.
func NewDCRemoval() *DCRemoval {
	return &DCRemoval{poleLocation: 0.995}
}

// NewDCRemovalWithCutoff creates a DC blocker with the pole placed for a
// given -3dB cutoff. Uses the small-angle approximation R = 1 - 2*pi*fc/fs.
func NewDCRemovalWithCutoff(sampleRate int, cutoffFreq float64) *DCRemoval {
	r := 1.0 - (2.0 * math.Pi * cutoffFreq / float64(sampleRate))
	if r >= 1.0 {
		r = 0.999
	} else if r <= 0.0 {
		r = 0.001
	}
	return &DCRemoval{poleLocation: r}
}

// Process applies the filter to a single sample and advances the state
func (dc *DCRemoval) Process(input float64) float64 {
	output := input - dc.x1 + dc.poleLocation*dc.y1
	dc.x1 = input
	dc.y1 = output
	return output
}

// ProcessBuffer applies the filter across a buffer
func (dc *DCRemoval) ProcessBuffer(input []float64) []float64 {
	output := make([]float64, len(input))
	for i, sample := range input {
		output[i] = dc.Process(sample)
	}
	return output
}

// Reset clears the filter state for a new, discontinuous segment
func (dc *DCRemoval) Reset() {
	dc.x1 = 0.0
	dc.y1 = 0.0
}

// GetCutoffFrequency returns the approximate -3dB point at a sample rate
func (dc *DCRemoval) GetCutoffFrequency(sampleRate int) float64 {
	if sampleRate <= 0 {
		return 0.0
	}
	return (1.0 - dc.poleLocation) * float64(sampleRate) / (2.0 * math.Pi)
}

// RemoveMean subtracts the arithmetic mean from a series in place. For
// short per-bin envelope series a static mean subtraction beats a recursive
// blocker, which needs settling time.
func RemoveMean(series []float64) {
	if len(series) == 0 {
		return
	}
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	mean := sum / float64(len(series))
	for i := range series {
		series[i] -= mean
	}
}

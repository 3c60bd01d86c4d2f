package spectral

import (
	"math"
)

// SpectralSlope computes spectral slope via log-log linear regression,
// a measure of overall spectral tilt.
type SpectralSlope struct {
	sampleRate  int
	freqBins    []float64 // Pre-calculated frequency bins
	initialized bool
}

// NewSpectralSlope creates a new spectral slope calculator
func NewSpectralSlope(sampleRate int) *SpectralSlope {
	return &SpectralSlope{
		sampleRate: sampleRate,
	}
}

// Compute calculates spectral slope for a single magnitude spectrum
func (ss *SpectralSlope) Compute(spectrum []float64) float64 {
	if len(spectrum) < 2 {
		return 0
	}

	if !ss.initialized || len(ss.freqBins) != len(spectrum) {
		ss.initializeFreqBins(len(spectrum))
	}

	n := 0
	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumXX := 0.0

	for i := 0; i < len(spectrum); i++ {
		if spectrum[i] > Epsilon && ss.freqBins[i] > 0 {
			x := math.Log10(ss.freqBins[i])
			y := math.Log10(spectrum[i])

			sumX += x
			sumY += y
			sumXY += x * y
			sumXX += x * x
			n++
		}
	}

	if n < 2 {
		return 0
	}

	denominator := float64(n)*sumXX - sumX*sumX
	if denominator == 0 {
		return 0
	}

	return (float64(n)*sumXY - sumX*sumY) / denominator
}

// ComputeFrames processes multiple frames efficiently
func (ss *SpectralSlope) ComputeFrames(spectrogram [][]float64) []float64 {
	if len(spectrogram) == 0 {
		return []float64{}
	}

	slopes := make([]float64, len(spectrogram))

	for t, spectrum := range spectrogram {
		slopes[t] = ss.Compute(spectrum)
	}

	return slopes
}

// initializeFreqBins pre-calculates frequency bins
func (ss *SpectralSlope) initializeFreqBins(numBins int) {
	ss.freqBins = make([]float64, numBins)
	for i := 0; i < numBins; i++ {
		ss.freqBins[i] = float64(i) * float64(ss.sampleRate) / float64((numBins-1)*2)
	}
	ss.initialized = true
}

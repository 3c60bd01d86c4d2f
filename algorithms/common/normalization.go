package common

import (
	"math"
)

// NormalizationType defines normalization method
type NormalizationType int

const (
	Peak NormalizationType = iota
	RMSNorm
	ZScore
)

// Normalizer provides signal normalization methods. Ingest peak-normalizes
// every recording so level differences between capture devices do not leak
// into the amplitude features.
type Normalizer struct {
	method NormalizationType
}

// NewNormalizer creates a new normalizer
func NewNormalizer(method NormalizationType) *Normalizer {
	return &Normalizer{
		method: method,
	}
}

// Normalize normalizes signal using the configured method. Silent or
// constant signals are returned unchanged rather than divided by zero.
func (n *Normalizer) Normalize(signal []float64) []float64 {
	switch n.method {
	case Peak:
		return n.peakNormalize(signal)
	case RMSNorm:
		return n.rmsNormalize(signal)
	case ZScore:
		return n.zScoreNormalize(signal)
	default:
		return n.peakNormalize(signal)
	}
}

// peakNormalize scales the signal so its absolute peak is 1.0
func (n *Normalizer) peakNormalize(signal []float64) []float64 {
	if len(signal) == 0 {
		return signal
	}

	peak := 0.0
	for _, val := range signal {
		if abs := math.Abs(val); abs > peak {
			peak = abs
		}
	}

	if peak < 1e-10 {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	normalized := make([]float64, len(signal))
	for i, val := range signal {
		normalized[i] = val / peak
	}
	return normalized
}

// rmsNormalize scales the signal to unit RMS level
func (n *Normalizer) rmsNormalize(signal []float64) []float64 {
	if len(signal) == 0 {
		return signal
	}

	sumSq := 0.0
	for _, val := range signal {
		sumSq += val * val
	}
	rms := math.Sqrt(sumSq / float64(len(signal)))

	if rms < 1e-10 {
		out := make([]float64, len(signal))
		copy(out, signal)
		return out
	}

	normalized := make([]float64, len(signal))
	for i, val := range signal {
		normalized[i] = val / rms
	}
	return normalized
}

// zScoreNormalize shifts to zero mean and unit variance
func (n *Normalizer) zScoreNormalize(signal []float64) []float64 {
	if len(signal) == 0 {
		return signal
	}

	mean := 0.0
	for _, val := range signal {
		mean += val
	}
	mean /= float64(len(signal))

	variance := 0.0
	for _, val := range signal {
		d := val - mean
		variance += d * d
	}
	std := math.Sqrt(variance / float64(len(signal)))

	normalized := make([]float64, len(signal))
	if std < 1e-10 {
		for i, val := range signal {
			normalized[i] = val - mean
		}
		return normalized
	}

	for i, val := range signal {
		normalized[i] = (val - mean) / std
	}
	return normalized
}

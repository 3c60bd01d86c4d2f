package features

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// meanStd returns the mean and population standard deviation of a series.
// Empty input yields zeros; a single frame yields its value with zero
// spread, which keeps one-frame recordings from producing NaN columns.
func meanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0.0, 0.0
	}
	mean := stat.Mean(values, nil)
	if len(values) == 1 {
		return mean, 0.0
	}
	return mean, stat.PopStdDev(values, nil)
}

// skewness returns the population skewness, 0 for degenerate input
func skewness(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	mean := stat.Mean(values, nil)
	std := stat.PopStdDev(values, nil)
	if std < 1e-10 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		d := (v - mean) / std
		sum += d * d * d
	}
	return sum / float64(len(values))
}

// excessKurtosis returns the population kurtosis minus 3, 0 for
// degenerate input.
func excessKurtosis(values []float64) float64 {
	if len(values) < 2 {
		return 0.0
	}
	mean := stat.Mean(values, nil)
	std := stat.PopStdDev(values, nil)
	if std < 1e-10 {
		return 0.0
	}

	sum := 0.0
	for _, v := range values {
		d := (v - mean) / std
		sum += d * d * d * d
	}
	return sum/float64(len(values)) - 3.0
}

// sanitize replaces NaN and Inf values with 0 so the map always encodes
// to valid JSON numbers.
func sanitize(m FeatureMap) {
	for k, v := range m {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			m[k] = 0.0
		}
	}
}

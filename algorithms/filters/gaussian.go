package filters

import (
	"math"
)

// GaussianSmoother applies 1-D Gaussian smoothing to a series. Band
// envelope trajectories carry frame-to-frame jitter from windowing; a
// light Gaussian pass suppresses it without shifting envelope peaks.
type GaussianSmoother struct {
	sigma  float64
	kernel []float64
}

// NewGaussianSmoother builds a smoother with the given standard deviation
// in samples. The kernel is truncated at 4 sigma per side.
func NewGaussianSmoother(sigma float64) *GaussianSmoother {
	if sigma <= 0 {
		sigma = 1.0
	}

	radius := int(math.Ceil(4.0 * sigma))
	kernel := make([]float64, 2*radius+1)
	sum := 0.0
	for i := range kernel {
		t := float64(i - radius)
		kernel[i] = math.Exp(-t * t / (2.0 * sigma * sigma))
		sum += kernel[i]
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	return &GaussianSmoother{sigma: sigma, kernel: kernel}
}

// Apply smooths a series, reflecting the signal at the edges so the ends
// are not pulled toward zero.
func (g *GaussianSmoother) Apply(series []float64) []float64 {
	if len(series) == 0 {
		return series
	}

	radius := len(g.kernel) / 2
	out := make([]float64, len(series))

	for i := range series {
		acc := 0.0
		for k, w := range g.kernel {
			idx := i + k - radius
			// Reflect at the boundaries
			if idx < 0 {
				idx = -idx
			}
			if idx >= len(series) {
				idx = 2*(len(series)-1) - idx
			}
			if idx < 0 {
				idx = 0
			}
			acc += w * series[idx]
		}
		out[i] = acc
	}
	return out
}

// Sigma returns the standard deviation the kernel was built with
func (g *GaussianSmoother) Sigma() float64 {
	return g.sigma
}

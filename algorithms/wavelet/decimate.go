package wavelet

import (
	"github.com/vibrolab/motoraudio/algorithms/filters"
)

// maxCWTSamples caps the convolution cost of the scalogram. Longer signals
// are decimated down to at most this many samples before the transform runs.
const maxCWTSamples = 20000

// DecimationFactor returns the integer step needed to bring a signal under
// the sample cap, or 1 when no decimation is needed.
func DecimationFactor(numSamples int) int {
	if numSamples <= maxCWTSamples {
		return 1
	}
	return numSamples / maxCWTSamples
}

// Decimate low-pass filters and downsamples a signal by an integer factor.
// It returns the decimated signal and the effective sample rate.
func Decimate(signal []float64, sampleRate, factor int) ([]float64, int) {
	if factor <= 1 || len(signal) == 0 {
		return signal, sampleRate
	}

	// Anti-alias at slightly below the new Nyquist
	lp := filters.NewLowPassFIR(0.45/float64(factor), 8*factor+1)
	filtered := lp.Apply(signal)

	out := make([]float64, 0, len(signal)/factor+1)
	for i := 0; i < len(filtered); i += factor {
		out = append(out, filtered[i])
	}
	return out, sampleRate / factor
}

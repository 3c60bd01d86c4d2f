package temporal

import (
	"gonum.org/v1/gonum/stat"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
)

// OnsetDetection detects transient attack events in audio signals using an
// onset strength signal derived from positive spectral flux.
type OnsetDetection struct {
	spectralFlux *spectral.SpectralFlux
	stft         *spectral.STFT

	windowSize int
	hopSize    int
}

// NewOnsetDetection creates a new onset detector with the envelope framing
// used for rhythm analysis (1024/512).
func NewOnsetDetection() *OnsetDetection {
	return &OnsetDetection{
		spectralFlux: spectral.NewSpectralFlux(),
		stft:         spectral.NewSTFT(),
		windowSize:   1024,
		hopSize:      512,
	}
}

// OnsetStrength computes the onset strength signal (positive spectral flux
// per frame). Returns the strength series and the hop size in samples.
func (od *OnsetDetection) OnsetStrength(signal []float64, sampleRate int) ([]float64, int, error) {
	if len(signal) < od.windowSize {
		return []float64{}, od.hopSize, nil
	}

	window := windowing.NewHann(od.windowSize, true)
	stftResult, err := od.stft.ComputeWithWindow(signal, od.windowSize, od.hopSize, sampleRate, window)
	if err != nil {
		return nil, od.hopSize, err
	}

	return od.spectralFlux.Compute(stftResult.Magnitude), od.hopSize, nil
}

// DetectOnsets detects onsets and returns their sample positions. The peak
// threshold adapts to the signal: mean + delta*std of the strength series,
// so absolute level does not matter. minInterval is the minimum spacing in
// seconds between reported onsets.
func (od *OnsetDetection) DetectOnsets(signal []float64, sampleRate int, delta float64, minInterval float64) ([]int, error) {
	flux, hopSize, err := od.OnsetStrength(signal, sampleRate)
	if err != nil {
		return nil, err
	}

	if len(flux) < 3 {
		return []int{}, nil
	}

	mean := stat.Mean(flux, nil)
	std := stat.PopStdDev(flux, nil)
	threshold := mean + delta*std

	onsetFrames := od.findPeaks(flux, threshold, minInterval, hopSize, sampleRate)

	onsetSamples := make([]int, len(onsetFrames))
	for i, frameIdx := range onsetFrames {
		onsetSamples[i] = frameIdx * hopSize
	}

	return onsetSamples, nil
}

// findPeaks finds local maxima above threshold with minimum spacing
func (od *OnsetDetection) findPeaks(flux []float64, threshold float64, minInterval float64, hopSize int, sampleRate int) []int {
	if len(flux) < 3 {
		return []int{}
	}

	minIntervalFrames := int(minInterval * float64(sampleRate) / float64(hopSize))

	var peaks []int
	lastPeakFrame := -minIntervalFrames // Allow first peak

	for i := 1; i < len(flux)-1; i++ {
		if flux[i] > flux[i-1] &&
			flux[i] > flux[i+1] &&
			flux[i] >= threshold &&
			flux[i] > 0 &&
			i-lastPeakFrame >= minIntervalFrames {
			peaks = append(peaks, i)
			lastPeakFrame = i
		}
	}

	return peaks
}

package features

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
)

// rolloffThreshold is the cumulative energy fraction defining the rolloff
// frequency.
const rolloffThreshold = 0.85

// FrequencyDomainExtractor summarizes the shape of the magnitude spectrum
// over time. It consumes the STFT the aggregator already computed so every
// spectral feature sees the same frames.
type FrequencyDomainExtractor struct {
	centroid  *spectral.SpectralCentroid
	bandwidth *spectral.SpectralBandwidth
	contrast  *spectral.SpectralContrast
	flatness  *spectral.SpectralFlatness
	rolloff   *spectral.SpectralRolloff
	flux      *spectral.SpectralFlux
	crest     *spectral.SpectralCrest
	slope     *spectral.SpectralSlope
}

// NewFrequencyDomainExtractor creates an extractor for the given sample rate
func NewFrequencyDomainExtractor(sampleRate int) *FrequencyDomainExtractor {
	return &FrequencyDomainExtractor{
		centroid:  spectral.NewSpectralCentroid(sampleRate),
		bandwidth: spectral.NewSpectralBandwidth(sampleRate),
		contrast:  spectral.NewSpectralContrast(sampleRate, 6),
		flatness:  spectral.NewSpectralFlatness(),
		rolloff:   spectral.NewSpectralRolloff(sampleRate),
		flux:      spectral.NewSpectralFlux(),
		crest:     spectral.NewSpectralCrest(),
		slope:     spectral.NewSpectralSlope(sampleRate),
	}
}

// Extract computes the frequency-domain feature group from a shared STFT
func (f *FrequencyDomainExtractor) Extract(stftResult *spectral.STFTResult) (FeatureMap, error) {
	if stftResult == nil || len(stftResult.Magnitude) == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}

	spectrogram := stftResult.Magnitude
	out := make(FeatureMap, 16)

	centroids := f.centroid.ComputeFrames(spectrogram)
	putMeanStd(out, "spectral_centroid", centroids)

	putMeanStd(out, "spectral_bandwidth", f.bandwidth.ComputeFrames(spectrogram, centroids))

	// Contrast yields one value per band; average bands within each frame
	contrastFrames := f.contrast.ComputeFrames(spectrogram)
	perFrame := make([]float64, len(contrastFrames))
	for i, bands := range contrastFrames {
		sum := 0.0
		for _, b := range bands {
			sum += b
		}
		if len(bands) > 0 {
			perFrame[i] = sum / float64(len(bands))
		}
	}
	putMeanStd(out, "spectral_contrast", perFrame)

	putMeanStd(out, "spectral_flatness", f.flatness.ComputeFrames(spectrogram))
	putMeanStd(out, "spectral_rolloff", f.rolloff.ComputeFrames(spectrogram, rolloffThreshold))
	putMeanStd(out, "spectral_flux", f.flux.Compute(spectrogram))
	putMeanStd(out, "spectral_crest", f.crest.ComputeFrames(spectrogram))
	putMeanStd(out, "spectral_slope", f.slope.ComputeFrames(spectrogram))

	return out, nil
}

// putMeanStd writes <name>_mean and <name>_std for a frame series
func putMeanStd(m FeatureMap, name string, frames []float64) {
	mean, std := meanStd(frames)
	m[name+"_mean"] = mean
	m[name+"_std"] = std
}

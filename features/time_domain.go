package features

import (
	"fmt"
	"math"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/temporal"
)

// silenceThreshold marks a frame as silent when its RMS falls below this
// level on the peak-normalized signal.
const silenceThreshold = 0.01

// TimeDomainExtractor computes amplitude statistics straight from the
// sample stream. Loose mounts and bearing knock show up here before they
// are visible in any spectrum.
type TimeDomainExtractor struct {
	config   AnalysisConfig
	envelope *temporal.Envelope
	zcr      *spectral.ZeroCrossingRate
}

// NewTimeDomainExtractor creates an extractor with the given frame geometry
func NewTimeDomainExtractor(config AnalysisConfig) *TimeDomainExtractor {
	return &TimeDomainExtractor{
		config:   config,
		envelope: temporal.NewEnvelope(),
		zcr:      spectral.NewZeroCrossingRateWithParams(config.SampleRate, config.FrameLength, config.HopLength),
	}
}

// Extract computes the time-domain feature group
func (t *TimeDomainExtractor) Extract(signal []float64) (FeatureMap, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	out := make(FeatureMap, 12)

	rmsFrames := t.envelope.ComputeRMS(signal, t.config.FrameLength, t.config.HopLength)
	rmsMean, rmsStd := meanStd(rmsFrames)
	out["rms_energy_mean"] = rmsMean
	out["rms_energy_std"] = rmsStd

	zcrFrames := t.zcr.ComputeFramesNormalized(signal)
	zcrMean, zcrStd := meanStd(zcrFrames)
	out["zero_crossing_rate_mean"] = zcrMean
	out["zero_crossing_rate_std"] = zcrStd

	peak := 0.0
	minAbs := math.Inf(1)
	absSamples := make([]float64, len(signal))
	for i, s := range signal {
		abs := math.Abs(s)
		absSamples[i] = abs
		if abs > peak {
			peak = abs
		}
		if abs < minAbs {
			minAbs = abs
		}
	}

	out["peak_amplitude"] = peak

	// Crest factor relates the peak to the mean frame energy, so a burst
	// over an otherwise quiet recording scores higher than a steady tone.
	if rmsMean > 1e-10 {
		out["crest_factor"] = peak / rmsMean
	} else {
		out["crest_factor"] = 0.0
	}

	absMean, absStd := meanStd(absSamples)
	out["mean_amplitude"] = absMean
	out["std_amplitude"] = absStd
	out["skewness_amplitude"] = skewness(signal)
	out["kurtosis_amplitude"] = excessKurtosis(signal)

	// Linear amplitude span between the loudest and quietest sample
	out["dynamic_range"] = peak - minAbs
	out["silence_ratio"] = silenceRatio(rmsFrames)

	return out, nil
}

// silenceRatio returns the fraction of frames below the silence threshold
func silenceRatio(rmsFrames []float64) float64 {
	if len(rmsFrames) == 0 {
		return 0.0
	}
	silent := 0
	for _, v := range rmsFrames {
		if v < silenceThreshold {
			silent++
		}
	}
	return float64(silent) / float64(len(rmsFrames))
}

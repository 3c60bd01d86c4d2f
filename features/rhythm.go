package features

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/temporal"
)

// Onset picking parameters: adaptive threshold offset in standard
// deviations and the minimum spacing between onsets in seconds.
const (
	onsetDelta       = 1.5
	onsetMinInterval = 0.03
)

// RhythmExtractor measures periodicity in the energy envelope. For a motor
// the "tempo" tracks the dominant impact rate, and onset statistics expose
// irregular knocking.
type RhythmExtractor struct {
	config AnalysisConfig
	tempo  *temporal.TempoEstimation
	onsets *temporal.OnsetDetection
}

// NewRhythmExtractor creates an extractor with the given frame geometry
func NewRhythmExtractor(config AnalysisConfig) *RhythmExtractor {
	return &RhythmExtractor{
		config: config,
		tempo:  temporal.NewTempoEstimation(),
		onsets: temporal.NewOnsetDetection(),
	}
}

// Extract computes the rhythm feature group from the raw signal
func (r *RhythmExtractor) Extract(signal []float64) (FeatureMap, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}

	out := make(FeatureMap, 9)

	beat, err := r.tempo.BeatTrack(signal, r.config.SampleRate)
	if err != nil {
		return nil, fmt.Errorf("beat tracking: %w", err)
	}

	out["tempo"] = beat.Tempo
	out["beat_count"] = float64(len(beat.BeatTimes))

	beatIntervals := intervals(beat.BeatTimes)
	beatMean, beatStd := meanStd(beatIntervals)
	out["beat_interval_mean"] = beatMean
	out["beat_interval_std"] = beatStd
	out["beat_regularity"] = regularity(len(beatIntervals), beatStd)

	onsetSamples, err := r.onsets.DetectOnsets(signal, r.config.SampleRate, onsetDelta, onsetMinInterval)
	if err != nil {
		return nil, fmt.Errorf("onset detection: %w", err)
	}

	onsetTimes := make([]float64, len(onsetSamples))
	for i, s := range onsetSamples {
		onsetTimes[i] = float64(s) / float64(r.config.SampleRate)
	}

	out["onset_count"] = float64(len(onsetSamples))
	onsetIntervals := intervals(onsetTimes)
	onsetMean, onsetStd := meanStd(onsetIntervals)
	out["onset_interval_mean"] = onsetMean
	out["onset_interval_std"] = onsetStd

	duration := float64(len(signal)) / float64(r.config.SampleRate)
	if duration > 0 {
		out["onset_density"] = float64(len(onsetTimes)) / duration
	} else {
		out["onset_density"] = 0.0
	}

	return out, nil
}

// intervals returns consecutive differences of a sorted time series
func intervals(times []float64) []float64 {
	if len(times) < 2 {
		return nil
	}
	out := make([]float64, len(times)-1)
	for i := 1; i < len(times); i++ {
		out[i-1] = times[i] - times[i-1]
	}
	return out
}

// regularity maps interval spread to (0, 1], 1 meaning perfectly even.
// Fewer than two beats yields no intervals and defaults to 0.
func regularity(intervalCount int, std float64) float64 {
	if intervalCount == 0 {
		return 0.0
	}
	return 1.0 / (1.0 + std)
}

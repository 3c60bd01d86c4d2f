package temporal

import (
	"math"
)

// TempoEstimation estimates a global tempo and beat positions from the
// onset strength envelope. For motor recordings the "tempo" tracks the
// dominant repetition rate of the rotating machinery.
type TempoEstimation struct {
	onsetDetector *OnsetDetection
}

// BeatTrackResult holds tempo and beat tracking output
type BeatTrackResult struct {
	Tempo     float64   `json:"tempo"`      // Beats per minute
	BeatTimes []float64 `json:"beat_times"` // Beat positions in seconds
}

// NewTempoEstimation creates a new tempo estimator
func NewTempoEstimation() *TempoEstimation {
	return &TempoEstimation{
		onsetDetector: NewOnsetDetection(),
	}
}

// BeatTrack estimates tempo via autocorrelation of the onset strength
// envelope, then places beats at strength peaks spaced by the beat period.
func (te *TempoEstimation) BeatTrack(signal []float64, sampleRate int) (*BeatTrackResult, error) {
	strength, hopSize, err := te.onsetDetector.OnsetStrength(signal, sampleRate)
	if err != nil {
		return nil, err
	}

	frameRate := float64(sampleRate) / float64(hopSize)

	if len(strength) < 4 {
		return &BeatTrackResult{}, nil
	}

	periodFrames := te.estimatePeriod(strength, frameRate)
	if periodFrames <= 0 {
		return &BeatTrackResult{}, nil
	}

	tempo := 60.0 * frameRate / float64(periodFrames)
	beats := te.placeBeats(strength, periodFrames)

	beatTimes := make([]float64, len(beats))
	for i, frame := range beats {
		beatTimes[i] = float64(frame) / frameRate
	}

	return &BeatTrackResult{
		Tempo:     tempo,
		BeatTimes: beatTimes,
	}, nil
}

// estimatePeriod finds the autocorrelation peak of the onset strength in
// the 30-300 BPM lag range. Returns 0 when no periodicity stands out.
func (te *TempoEstimation) estimatePeriod(strength []float64, frameRate float64) int {
	minLag := int(60.0 / 300.0 * frameRate) // 300 BPM
	maxLag := int(60.0 / 30.0 * frameRate)  // 30 BPM

	if minLag < 1 {
		minLag = 1
	}
	if maxLag >= len(strength) {
		maxLag = len(strength) - 1
	}
	if maxLag <= minLag {
		return 0
	}

	// Zero-mean the strength so DC does not dominate the autocorrelation
	mean := 0.0
	for _, v := range strength {
		mean += v
	}
	mean /= float64(len(strength))

	centered := make([]float64, len(strength))
	for i, v := range strength {
		centered[i] = v - mean
	}

	// Fixed-length normalization: dividing by the overlap count would
	// inflate long lags and pull the estimate toward period multiples.
	corrs := make([]float64, maxLag+1)
	bestCorr := 0.0
	for lag := minLag; lag <= maxLag; lag++ {
		sum := 0.0
		for i := 0; i+lag < len(centered); i++ {
			sum += centered[i] * centered[i+lag]
		}
		corrs[lag] = sum / float64(len(centered))
		if corrs[lag] > bestCorr {
			bestCorr = corrs[lag]
		}
	}

	if bestCorr <= 0 {
		return 0
	}

	// Period multiples correlate nearly as well as the fundamental, so the
	// shortest lag within 10% of the best peak wins. Climb to the local
	// maximum in case the threshold is crossed on the peak's shoulder.
	threshold := 0.9 * bestCorr
	for lag := minLag; lag <= maxLag; lag++ {
		if corrs[lag] < threshold {
			continue
		}
		for lag < maxLag && corrs[lag+1] >= corrs[lag] {
			lag++
		}
		return lag
	}

	return 0
}

// placeBeats seeds at the strongest onset frame and walks outward in both
// directions by the beat period, snapping each beat to the local strength
// maximum within an eighth of a period.
func (te *TempoEstimation) placeBeats(strength []float64, periodFrames int) []int {
	seed := 0
	for i, v := range strength {
		if v > strength[seed] {
			seed = i
		}
	}

	tolerance := max(1, periodFrames/8)

	var beats []int

	// Walk backward from the seed
	for frame := seed; frame >= 0; frame -= periodFrames {
		beats = append(beats, te.snapToPeak(strength, frame, tolerance))
	}

	// Reverse to chronological order
	for i, j := 0, len(beats)-1; i < j; i, j = i+1, j-1 {
		beats[i], beats[j] = beats[j], beats[i]
	}

	// Walk forward from the seed
	for frame := seed + periodFrames; frame < len(strength); frame += periodFrames {
		beats = append(beats, te.snapToPeak(strength, frame, tolerance))
	}

	return beats
}

// snapToPeak returns the index of the maximum strength within tolerance of frame
func (te *TempoEstimation) snapToPeak(strength []float64, frame, tolerance int) int {
	lo := max(0, frame-tolerance)
	hi := min(len(strength)-1, frame+tolerance)

	best := frame
	bestVal := math.Inf(-1)
	for i := lo; i <= hi; i++ {
		if strength[i] > bestVal {
			bestVal = strength[i]
			best = i
		}
	}

	return best
}

package features

// AnalysisConfig fixes the frame geometry shared by every extractor.
// Feature values are only comparable across recordings when all of them
// were computed with the same geometry, so callers should stick with the
// defaults unless they re-analyze their whole corpus.
type AnalysisConfig struct {
	SampleRate  int `json:"sample_rate"`
	FrameLength int `json:"frame_length"`
	HopLength   int `json:"hop_length"`
}

// DefaultAnalysisConfig returns the standard 2048/512 geometry at 22050 Hz
func DefaultAnalysisConfig() AnalysisConfig {
	return AnalysisConfig{
		SampleRate:  22050,
		FrameLength: 2048,
		HopLength:   512,
	}
}

// NumFrames returns how many analysis frames a signal of the given length
// yields, counting the final partial frame.
func (c AnalysisConfig) NumFrames(numSamples int) int {
	if numSamples <= 0 {
		return 0
	}
	if numSamples < c.FrameLength {
		return 1
	}
	return (numSamples-c.FrameLength)/c.HopLength + 1
}

// FrameDuration returns the hop interval in seconds
func (c AnalysisConfig) FrameDuration() float64 {
	return float64(c.HopLength) / float64(c.SampleRate)
}

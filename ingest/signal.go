package ingest

import (
	"fmt"
)

// TargetSampleRate is the rate every recording is resampled to before
// analysis. All downstream frame and bin geometry assumes this rate.
const TargetSampleRate = 22050

// AudioSignal is a decoded, mono, peak-normalized recording
type AudioSignal struct {
	Samples    []float64 `json:"-"`
	SampleRate int       `json:"sample_rate"`
	SourcePath string    `json:"source_path,omitempty"`
	Format     string    `json:"format,omitempty"`
}

// Duration returns the signal length in seconds
func (s *AudioSignal) Duration() float64 {
	if s.SampleRate <= 0 {
		return 0
	}
	return float64(len(s.Samples)) / float64(s.SampleRate)
}

// NumSamples returns the sample count
func (s *AudioSignal) NumSamples() int {
	return len(s.Samples)
}

// DecodeError reports a recording that could not be turned into samples.
// It wraps the underlying decoder or process error.
type DecodeError struct {
	Path   string
	Format string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("decode %s (%s): %v", e.Path, e.Format, e.Err)
	}
	return fmt.Sprintf("decode %s: %v", e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

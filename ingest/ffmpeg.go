package ingest

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"os/exec"
	"strconv"
	"time"

	"github.com/vibrolab/motoraudio/logging"
)

// FFmpegDecoder shells out to ffmpeg for container formats the native
// decoders do not cover, chiefly m4a from phone voice recorders. Output is
// raw little-endian float64 mono at the target rate, so no further
// resampling is needed.
type FFmpegDecoder struct {
	Path    string
	Timeout time.Duration
}

// NewFFmpegDecoder assumes ffmpeg is on PATH
func NewFFmpegDecoder() *FFmpegDecoder {
	return &FFmpegDecoder{
		Path:    "ffmpeg",
		Timeout: 60 * time.Second,
	}
}

// Decode converts a file to mono float64 samples at TargetSampleRate
func (f *FFmpegDecoder) Decode(path string) ([]float64, error) {
	args := []string{
		"-v", "error",
		"-i", path,
		"-f", "f64le", // Raw float64 little-endian on stdout
		"-ac", "1",
		"-ar", strconv.Itoa(TargetSampleRate),
		"pipe:1",
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, f.Path, args...)

	logging.Debug("Running ffmpeg decode", logging.Fields{
		"component": "ingest",
		"path":      path,
	})

	output, err := cmd.Output()
	if err != nil {
		if exitError, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffmpeg decode failed: %w, stderr: %s", err, string(exitError.Stderr))
		}
		return nil, fmt.Errorf("ffmpeg decode failed: %w", err)
	}

	samples := bytesToFloat64(output)
	if len(samples) == 0 {
		return nil, fmt.Errorf("ffmpeg produced no samples")
	}
	return samples, nil
}

// bytesToFloat64 reinterprets raw f64le bytes as samples, trimming any
// trailing partial sample.
func bytesToFloat64(data []byte) []float64 {
	if len(data)%8 != 0 {
		data = data[:len(data)-(len(data)%8)]
	}
	if len(data) == 0 {
		return nil
	}

	sampleCount := len(data) / 8
	samples := make([]float64, sampleCount)
	for i := 0; i < sampleCount; i++ {
		bits := binary.LittleEndian.Uint64(data[i*8 : i*8+8])
		samples[i] = math.Float64frombits(bits)
	}
	return samples
}

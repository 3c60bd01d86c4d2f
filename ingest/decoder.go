package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/faiface/beep"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"

	"github.com/vibrolab/motoraudio/algorithms/common"
	"github.com/vibrolab/motoraudio/algorithms/filters"
	"github.com/vibrolab/motoraudio/logging"
)

// resampleQuality trades accuracy for speed in beep's resampler (1-64)
const resampleQuality = 4

// Decoder loads a recording from disk and conditions it for analysis:
// decode, mix to mono, resample to TargetSampleRate, remove DC offset,
// peak normalize. Native decoding covers wav, flac, mp3 and ogg; anything
// else falls through to an ffmpeg subprocess.
type Decoder struct {
	ffmpeg     *FFmpegDecoder
	normalizer *common.Normalizer
}

// NewDecoder creates a decoder with the default ffmpeg fallback
func NewDecoder() *Decoder {
	return &Decoder{
		ffmpeg:     NewFFmpegDecoder(),
		normalizer: common.NewNormalizer(common.Peak),
	}
}

// DecodeFile decodes a recording into an AudioSignal. Every failure mode
// comes back as a *DecodeError; the function never panics on malformed
// input.
func (d *Decoder) DecodeFile(path string) (*AudioSignal, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))

	logger := logging.WithFields(logging.Fields{
		"component": "ingest",
		"path":      path,
		"format":    ext,
	})
	logger.Debug("Decoding recording")

	var (
		samples []float64
		err     error
	)

	switch ext {
	case "wav", "flac", "mp3", "ogg":
		samples, err = d.decodeNative(path, ext)
	default:
		// m4a and friends go straight to ffmpeg
		samples, err = d.ffmpeg.Decode(path)
	}
	if err != nil {
		return nil, &DecodeError{Path: path, Format: ext, Err: err}
	}
	if len(samples) == 0 {
		return nil, &DecodeError{Path: path, Format: ext, Err: fmt.Errorf("no samples decoded")}
	}

	samples = d.condition(samples)

	logger.Debug("Recording decoded", logging.Fields{
		"samples":  len(samples),
		"duration": float64(len(samples)) / float64(TargetSampleRate),
	})

	return &AudioSignal{
		Samples:    samples,
		SampleRate: TargetSampleRate,
		SourcePath: path,
		Format:     ext,
	}, nil
}

// decodeNative decodes via beep and resamples to the target rate in one
// streaming pass.
func (d *Decoder) decodeNative(path, ext string) ([]float64, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var (
		stream beep.StreamSeekCloser
		format beep.Format
	)

	switch ext {
	case "wav":
		stream, format, err = wav.Decode(file)
	case "flac":
		stream, format, err = flac.Decode(file)
	case "mp3":
		stream, format, err = mp3.Decode(file)
	case "ogg":
		stream, format, err = vorbis.Decode(file)
	default:
		return nil, fmt.Errorf("unsupported native format %q", ext)
	}
	if err != nil {
		return nil, err
	}
	defer stream.Close()

	var source beep.Streamer = stream
	if int(format.SampleRate) != TargetSampleRate {
		source = beep.Resample(resampleQuality, format.SampleRate, beep.SampleRate(TargetSampleRate), stream)
	}

	return drainMono(source), nil
}

// drainMono pulls all samples from a streamer, averaging the two beep
// channels into one.
func drainMono(source beep.Streamer) []float64 {
	out := make([]float64, 0, 1<<16)
	buf := make([][2]float64, 2048)

	for {
		n, ok := source.Stream(buf)
		for _, frame := range buf[:n] {
			out = append(out, 0.5*(frame[0]+frame[1]))
		}
		if !ok {
			break
		}
	}
	return out
}

// condition removes DC offset and peak-normalizes a mono signal
func (d *Decoder) condition(samples []float64) []float64 {
	blocked := filters.NewDCRemoval().ProcessBuffer(samples)
	return d.normalizer.Normalize(blocked)
}

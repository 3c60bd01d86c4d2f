package spectrogram

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
	"github.com/vibrolab/motoraudio/ingest"
)

// Log-STFT view parameters. The 4096 window trades time resolution for
// the fine low-frequency detail where imbalance and looseness show up.
const (
	logSTFTWindowSize = 4096
	logSTFTHopSize    = 1024
	logSTFTFloorFreq  = 50.0
)

// LogSTFTGenerator produces the high-resolution STFT on a log frequency
// axis, focused on low-end rumble.
type LogSTFTGenerator struct {
	stft *spectral.STFT
}

// NewLogSTFTGenerator creates the log-STFT generator
func NewLogSTFTGenerator() *LogSTFTGenerator {
	return &LogSTFTGenerator{stft: spectral.NewSTFT()}
}

func (g *LogSTFTGenerator) Type() string  { return TypeLogSTFT }
func (g *LogSTFTGenerator) Label() string { return "Log-STFT" }

// Heatmap computes the dB magnitude spectrogram, dropping bins below the
// floor frequency since a log axis cannot show the DC bin anyway.
func (g *LogSTFTGenerator) Heatmap(signal *ingest.AudioSignal) (*Heatmap, error) {
	window := windowing.NewHann(logSTFTWindowSize, true)
	stftResult, err := g.stft.ComputeWithWindow(signal.Samples, logSTFTWindowSize, logSTFTHopSize, signal.SampleRate, window)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}
	if len(stftResult.Magnitude) == 0 {
		return nil, fmt.Errorf("no frames")
	}

	db := spectral.AmplitudeToDB(stftResult.Magnitude)
	rows := transpose(db)

	// Crop below the floor frequency
	firstBin := 0
	for firstBin < stftResult.FreqBins && stftResult.BinFrequency(firstBin) < logSTFTFloorFreq {
		firstBin++
	}
	if firstBin >= len(rows) {
		return nil, fmt.Errorf("floor frequency above spectrum")
	}

	freqs := make([]float64, len(rows)-firstBin)
	for i := range freqs {
		freqs[i] = stftResult.BinFrequency(firstBin + i)
	}

	return &Heatmap{
		Data:     rows[firstBin:],
		X:        frameTimes(len(db), logSTFTHopSize, signal.SampleRate),
		Y:        freqs,
		Title:    "Log-STFT Spectrogram (Low-Frequency Rumble)",
		XLabel:   "Time (seconds)",
		YLabel:   "Frequency (Hz, log scale)",
		BarLabel: "Magnitude (dB)",
		LogY:     true,
	}, nil
}

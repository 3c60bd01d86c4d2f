package spectrogram

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
	"github.com/vibrolab/motoraudio/ingest"
)

// Mel view parameters. The 50 Hz floor drops handling rumble and the
// 8 kHz ceiling matches where motor signatures live.
const (
	melBands      = 128
	melWindowSize = 2048
	melHopSize    = 512
	melMinFreq    = 50.0
	melMaxFreq    = 8000.0
)

// MelGenerator produces the mel-band power view. Best for spotting energy
// imbalance and gradual tonal drift.
type MelGenerator struct {
	stft     *spectral.STFT
	power    *spectral.PowerSpectrum
	melScale *spectral.MelScale
}

// NewMelGenerator creates the mel spectrogram generator
func NewMelGenerator() *MelGenerator {
	return &MelGenerator{
		stft:     spectral.NewSTFT(),
		power:    spectral.NewPowerSpectrum(),
		melScale: spectral.NewMelScale(),
	}
}

func (g *MelGenerator) Type() string  { return TypeMel }
func (g *MelGenerator) Label() string { return "Mel-Spectrogram" }

// Heatmap computes the dB mel spectrogram referenced to its peak
func (g *MelGenerator) Heatmap(signal *ingest.AudioSignal) (*Heatmap, error) {
	window := windowing.NewHann(melWindowSize, true)
	stftResult, err := g.stft.ComputeWithWindow(signal.Samples, melWindowSize, melHopSize, signal.SampleRate, window)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	powerFrames := g.power.ComputeFromSTFT(stftResult)
	melFrames := g.melScale.ComputeMelSpectrogramFrames(powerFrames, melBands, signal.SampleRate, melMinFreq, melMaxFreq)
	if len(melFrames) == 0 {
		return nil, fmt.Errorf("no frames")
	}

	db := spectral.PowerToDB(melFrames)

	return &Heatmap{
		Data:     transpose(db),
		X:        frameTimes(len(db), melHopSize, signal.SampleRate),
		Y:        g.melScale.FilterCenterFrequencies(melBands, melMinFreq, melMaxFreq),
		Title:    "Mel-Spectrogram (Energy Distribution)",
		XLabel:   "Time (seconds)",
		YLabel:   "Mel Frequency (Hz)",
		BarLabel: "Power (dB)",
	}, nil
}

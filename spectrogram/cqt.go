package spectrogram

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/ingest"
)

// CQT view parameters: 7 octaves at semitone resolution starting from
// C2, which covers shaft rates up through gear mesh harmonics.
const (
	cqtBins          = 84
	cqtBinsPerOctave = 12
	cqtMinFreq       = 65.40639132514966
	cqtHopSize       = 512
)

// CQTGenerator produces the constant-Q view. The log-spaced bins keep
// harmonic stacks equally spaced on screen, so a shifted harmonic series
// reads as a vertical translation.
type CQTGenerator struct{}

// NewCQTGenerator creates the constant-Q generator
func NewCQTGenerator() *CQTGenerator {
	return &CQTGenerator{}
}

func (g *CQTGenerator) Type() string  { return TypeCQT }
func (g *CQTGenerator) Label() string { return "Constant-Q Transform" }

// Heatmap computes the dB constant-Q magnitude referenced to its peak
func (g *CQTGenerator) Heatmap(signal *ingest.AudioSignal) (*Heatmap, error) {
	cqt := spectral.NewCQT(signal.SampleRate, cqtBins, cqtBinsPerOctave, cqtMinFreq, cqtHopSize)

	result, err := cqt.Compute(signal.Samples)
	if err != nil {
		return nil, fmt.Errorf("cqt: %w", err)
	}
	if len(result.Magnitude) == 0 {
		return nil, fmt.Errorf("no frames")
	}

	db := spectral.AmplitudeToDB(result.Magnitude)

	return &Heatmap{
		Data:     transpose(db),
		X:        frameTimes(len(db), cqtHopSize, signal.SampleRate),
		Y:        result.BinFrequencies,
		Title:    "Constant-Q Transform (Harmonic Analysis)",
		XLabel:   "Time (seconds)",
		YLabel:   "Frequency (Hz)",
		BarLabel: "Magnitude (dB)",
		LogY:     true,
	}, nil
}

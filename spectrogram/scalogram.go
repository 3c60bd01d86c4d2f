package spectrogram

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/wavelet"
	"github.com/vibrolab/motoraudio/ingest"
)

// Scalogram scale range: 10^0.5 to 10^3.5 in 50 log-spaced steps, which
// spans roughly 7 Hz to 7 kHz at the target sample rate.
const (
	scalogramScaleCount = 50
	scalogramLowExp     = 0.5
	scalogramHighExp    = 3.5
)

// ScalogramGenerator produces the wavelet scalogram. The variable-width
// analysis windows make it the best view for isolated spikes and short
// bursts that fixed-frame transforms average away.
type ScalogramGenerator struct {
	cwt *wavelet.MorletCWT
}

// NewScalogramGenerator creates the scalogram generator
func NewScalogramGenerator() *ScalogramGenerator {
	return &ScalogramGenerator{cwt: wavelet.NewMorletCWT()}
}

func (g *ScalogramGenerator) Type() string  { return TypeScalogram }
func (g *ScalogramGenerator) Label() string { return "Wavelet Scalogram" }

// Heatmap computes the dB wavelet power, decimating long signals first
// to bound the convolution cost.
func (g *ScalogramGenerator) Heatmap(signal *ingest.AudioSignal) (*Heatmap, error) {
	samples := signal.Samples
	rate := signal.SampleRate
	if factor := wavelet.DecimationFactor(len(samples)); factor > 1 {
		samples, rate = wavelet.Decimate(samples, rate, factor)
	}

	scales := wavelet.LogScales(scalogramLowExp, scalogramHighExp, scalogramScaleCount)
	result, err := g.cwt.Compute(samples, scales, rate)
	if err != nil {
		return nil, fmt.Errorf("cwt: %w", err)
	}

	db := spectral.PowerToDB(result.Power)

	// Scales ascend, so frequencies descend; flip rows for a bottom-up axis
	numScales := len(db)
	rows := make([][]float64, numScales)
	freqs := make([]float64, numScales)
	for i := 0; i < numScales; i++ {
		rows[i] = db[numScales-1-i]
		freqs[i] = result.Frequencies[numScales-1-i]
	}

	times := make([]float64, len(samples))
	for i := range times {
		times[i] = float64(i) / float64(rate)
	}

	return &Heatmap{
		Data:     rows,
		X:        times,
		Y:        freqs,
		Title:    "Wavelet Scalogram (Transient Spikes)",
		XLabel:   "Time (seconds)",
		YLabel:   "Frequency (Hz)",
		BarLabel: "Power (dB)",
		LogY:     true,
	}, nil
}

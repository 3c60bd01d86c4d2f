package spectrogram

import (
	"fmt"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
	"github.com/vibrolab/motoraudio/ingest"
)

// Kurtosis view parameters. A bin needs more than minKurtosisFrames
// frames of history before its kurtosis is meaningful; the color range
// clips to the inner percentiles so a single extreme bin does not wash
// out the rest.
const (
	kurtosisWindowSize = 2048
	kurtosisHopSize    = 512
	kurtosisMaxFreq    = 8000.0
	minKurtosisFrames  = 4

	kurtosisClipLow  = 0.05
	kurtosisClipHigh = 0.95
)

// KurtosisGenerator produces the spectral kurtosis view. Impulsive
// content drives per-bin kurtosis up sharply, making it the most
// sensitive view for bearing impacts.
type KurtosisGenerator struct {
	stft *spectral.STFT
}

// NewKurtosisGenerator creates the spectral kurtosis generator
func NewKurtosisGenerator() *KurtosisGenerator {
	return &KurtosisGenerator{stft: spectral.NewSTFT()}
}

func (g *KurtosisGenerator) Type() string  { return TypeKurtosis }
func (g *KurtosisGenerator) Label() string { return "Spectral Kurtosis" }

// Heatmap computes excess kurtosis of each bin's magnitude envelope over
// the whole recording. The value is constant along time; the time axis is
// kept so the view lines up with the other spectrograms.
func (g *KurtosisGenerator) Heatmap(signal *ingest.AudioSignal) (*Heatmap, error) {
	window := windowing.NewHann(kurtosisWindowSize, true)
	stftResult, err := g.stft.ComputeWithWindow(signal.Samples, kurtosisWindowSize, kurtosisHopSize, signal.SampleRate, window)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	numFrames := stftResult.TimeFrames
	if numFrames == 0 {
		return nil, fmt.Errorf("no frames")
	}

	// Cap the view at the top of the motor band
	numBins := 0
	for numBins < stftResult.FreqBins && stftResult.BinFrequency(numBins) <= kurtosisMaxFreq {
		numBins++
	}

	rows := make([][]float64, numBins)
	freqs := make([]float64, numBins)
	kurtValues := make([]float64, 0, numBins)

	series := make([]float64, numFrames)
	for bin := 0; bin < numBins; bin++ {
		freqs[bin] = stftResult.BinFrequency(bin)

		for t := 0; t < numFrames; t++ {
			series[t] = stftResult.Magnitude[t][bin]
		}

		kurt := 0.0
		if numFrames > minKurtosisFrames-1 && stat.PopStdDev(series, nil) > 0 {
			kurt = stat.ExKurtosis(series, nil)
		}
		kurtValues = append(kurtValues, kurt)

		row := make([]float64, numFrames)
		for t := range row {
			row[t] = kurt
		}
		rows[bin] = row
	}

	vmin, vmax := percentileRange(kurtValues, kurtosisClipLow, kurtosisClipHigh)

	return &Heatmap{
		Data:     rows,
		X:        frameTimes(numFrames, kurtosisHopSize, signal.SampleRate),
		Y:        freqs,
		Title:    "Spectral Kurtosis (Impulse Detection)",
		XLabel:   "Time (seconds)",
		YLabel:   "Frequency (Hz)",
		BarLabel: "Kurtosis",
		VMin:     vmin,
		VMax:     vmax,
		HasRange: vmax > vmin,
	}, nil
}

// percentileRange returns the low and high quantiles of a value set
func percentileRange(values []float64, low, high float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)
	return stat.Quantile(low, stat.Empirical, sorted, nil),
		stat.Quantile(high, stat.Empirical, sorted, nil)
}

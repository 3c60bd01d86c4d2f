package spectrogram

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/vibrolab/motoraudio/algorithms/filters"
	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
	"github.com/vibrolab/motoraudio/ingest"
)

// Modulation view parameters. Winding faults amplitude-modulate the
// carrier tones at low rates, so the modulation axis stops at 50 Hz.
const (
	modWindowSize  = 2048
	modHopSize     = 512
	modFreqLimit   = 50.0
	modSmoothSigma = 1.0
	modMinFreq     = 50.0
	modMaxFreq     = 8000.0
)

// ModulationGenerator produces the modulation spectrogram: a second
// Fourier analysis over each bin's magnitude envelope, exposing sideband
// modulation that ordinary spectrograms hide inside line thickness.
type ModulationGenerator struct {
	stft     *spectral.STFT
	smoother *filters.GaussianSmoother
}

// NewModulationGenerator creates the modulation spectrogram generator
func NewModulationGenerator() *ModulationGenerator {
	return &ModulationGenerator{
		stft:     spectral.NewSTFT(),
		smoother: filters.NewGaussianSmoother(modSmoothSigma),
	}
}

func (g *ModulationGenerator) Type() string  { return TypeModulation }
func (g *ModulationGenerator) Label() string { return "Modulation Spectrogram" }

// Heatmap computes modulation magnitude per acoustic bin: smooth the
// envelope, remove its DC, window it and transform along time.
func (g *ModulationGenerator) Heatmap(signal *ingest.AudioSignal) (*Heatmap, error) {
	window := windowing.NewHann(modWindowSize, true)
	stftResult, err := g.stft.ComputeWithWindow(signal.Samples, modWindowSize, modHopSize, signal.SampleRate, window)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	numFrames := stftResult.TimeFrames
	if numFrames < 2 {
		return nil, fmt.Errorf("signal too short for modulation analysis")
	}

	// Frame rate of the envelope series determines the modulation axis
	frameRate := float64(signal.SampleRate) / float64(modHopSize)
	numModBins := 0
	for numModBins < numFrames/2+1 && float64(numModBins)*frameRate/float64(numFrames) <= modFreqLimit {
		numModBins++
	}
	if numModBins == 0 {
		return nil, fmt.Errorf("no modulation bins in range")
	}

	// Acoustic rows between the view limits
	firstBin := 0
	for firstBin < stftResult.FreqBins && stftResult.BinFrequency(firstBin) < modMinFreq {
		firstBin++
	}
	lastBin := firstBin
	for lastBin < stftResult.FreqBins && stftResult.BinFrequency(lastBin) <= modMaxFreq {
		lastBin++
	}
	if firstBin >= lastBin {
		return nil, fmt.Errorf("no acoustic bins in range")
	}

	envWindow := windowing.NewHann(numFrames, true)
	fft := fourier.NewFFT(numFrames)

	rows := make([][]float64, lastBin-firstBin)
	freqs := make([]float64, lastBin-firstBin)
	envelope := make([]float64, numFrames)

	for bin := firstBin; bin < lastBin; bin++ {
		for t := 0; t < numFrames; t++ {
			envelope[t] = stftResult.Magnitude[t][bin]
		}

		smoothed := g.smoother.Apply(envelope)
		filters.RemoveMean(smoothed)
		windowed := envWindow.Apply(smoothed)

		coeffs := fft.Coefficients(nil, windowed)

		row := make([]float64, numModBins)
		for k := 0; k < numModBins; k++ {
			row[k] = cmplx.Abs(coeffs[k])
		}

		rows[bin-firstBin] = row
		freqs[bin-firstBin] = stftResult.BinFrequency(bin)
	}

	db := spectral.AmplitudeToDB(rows)

	modFreqs := make([]float64, numModBins)
	for k := range modFreqs {
		modFreqs[k] = float64(k) * frameRate / float64(numFrames)
	}

	return &Heatmap{
		Data:     db,
		X:        modFreqs,
		Y:        freqs,
		Title:    "Modulation Spectrogram (Sideband Analysis)",
		XLabel:   "Modulation Frequency (Hz)",
		YLabel:   "Acoustic Frequency (Hz)",
		BarLabel: "Magnitude (dB)",
	}, nil
}

package features

import (
	"fmt"

	"github.com/vibrolab/motoraudio/algorithms/chroma"
	"github.com/vibrolab/motoraudio/algorithms/spectral"
)

const numMFCC = 13

// CepstralExtractor covers the timbre group: MFCCs, chroma energy and the
// tonnetz centroid. For rotating machinery the chroma bins behave as a
// coarse harmonic comb and the tonnetz separates smooth hum from rattle.
type CepstralExtractor struct {
	config  AnalysisConfig
	mfcc    *spectral.MFCC
	chroma  *chroma.ChromaSTFT
	tonnetz *chroma.TonnetzAnalyzer
}

// NewCepstralExtractor creates an extractor with the given frame geometry
func NewCepstralExtractor(config AnalysisConfig) *CepstralExtractor {
	return &CepstralExtractor{
		config:  config,
		mfcc:    spectral.NewMFCC(config.SampleRate, numMFCC),
		chroma:  chroma.NewChromaSTFTDefault(config.SampleRate),
		tonnetz: chroma.NewTonnetzAnalyzer(),
	}
}

// Extract computes the cepstral feature group from a shared STFT
func (c *CepstralExtractor) Extract(stftResult *spectral.STFTResult) (FeatureMap, error) {
	if stftResult == nil || len(stftResult.Magnitude) == 0 {
		return nil, fmt.Errorf("empty spectrogram")
	}

	out := make(FeatureMap, 48)

	if err := c.mfcc.Initialize(stftResult.WindowSize); err != nil {
		return nil, fmt.Errorf("mfcc init: %w", err)
	}
	mfccFrames, err := c.mfcc.ComputeFrames(stftResult.Magnitude)
	if err != nil {
		return nil, fmt.Errorf("mfcc: %w", err)
	}
	putColumnStats(out, "mfcc", mfccFrames, numMFCC)

	chromagram := c.chroma.ComputeFromSTFT(stftResult)
	putMatrixStats(out, "chroma", chromagram)
	putColumnMeans(out, "chroma", chromagram, 12)

	tonnetzFrames := c.tonnetz.ComputeFrames(chromagram)
	putMatrixStats(out, "tonnetz", tonnetzFrames)
	putColumnMeans(out, "tonnetz", tonnetzFrames, 6)

	return out, nil
}

// putColumnStats writes <name>_<i>_mean and <name>_<i>_std per coefficient
func putColumnStats(m FeatureMap, name string, frames [][]float64, numCols int) {
	for col := 0; col < numCols; col++ {
		series := column(frames, col)
		mean, std := meanStd(series)
		m[fmt.Sprintf("%s_%d_mean", name, col+1)] = mean
		m[fmt.Sprintf("%s_%d_std", name, col+1)] = std
	}
}

// putColumnMeans writes <name>_<i>_mean per coefficient
func putColumnMeans(m FeatureMap, name string, frames [][]float64, numCols int) {
	for col := 0; col < numCols; col++ {
		mean, _ := meanStd(column(frames, col))
		m[fmt.Sprintf("%s_%d_mean", name, col+1)] = mean
	}
}

// putMatrixStats writes <name>_mean and <name>_std over all cells
func putMatrixStats(m FeatureMap, name string, frames [][]float64) {
	var flat []float64
	for _, row := range frames {
		flat = append(flat, row...)
	}
	mean, std := meanStd(flat)
	m[name+"_mean"] = mean
	m[name+"_std"] = std
}

// column pulls one coefficient's trajectory out of a frame matrix
func column(frames [][]float64, col int) []float64 {
	series := make([]float64, 0, len(frames))
	for _, row := range frames {
		if col < len(row) {
			series = append(series, row[col])
		}
	}
	return series
}

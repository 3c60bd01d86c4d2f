package spectral

import (
	"math"
	"sort"
)

// SpectralContrast computes spectral contrast features: the dB difference
// between spectral peaks and valleys in logarithmically spaced sub-bands.
// Healthy motors keep a stable contrast profile; broadband noise from wear
// flattens it.
type SpectralContrast struct {
	sampleRate  int
	numBands    int
	freqBins    []float64
	bandEdges   []int
	initialized bool
}

// NewSpectralContrast creates a new spectral contrast calculator
func NewSpectralContrast(sampleRate int, numBands int) *SpectralContrast {
	return &SpectralContrast{
		sampleRate: sampleRate,
		numBands:   numBands,
	}
}

// Compute calculates per-band spectral contrast for a single magnitude spectrum
func (sc *SpectralContrast) Compute(magnitudeSpectrum []float64) []float64 {
	if len(magnitudeSpectrum) == 0 {
		return []float64{}
	}

	if !sc.initialized || len(sc.freqBins) != len(magnitudeSpectrum) {
		sc.initializeBands(len(magnitudeSpectrum))
	}

	contrast := make([]float64, sc.numBands)

	for band := 0; band < sc.numBands; band++ {
		startBin := sc.bandEdges[band]
		endBin := sc.bandEdges[band+1]
		endBin = min(endBin, len(magnitudeSpectrum))

		if startBin >= endBin {
			contrast[band] = 0.0
			continue
		}

		contrast[band] = sc.calculateBandContrast(magnitudeSpectrum[startBin:endBin])
	}

	return contrast
}

// ComputeFrames processes multiple frames efficiently
func (sc *SpectralContrast) ComputeFrames(spectrogram [][]float64) [][]float64 {
	if len(spectrogram) == 0 {
		return [][]float64{}
	}

	contrasts := make([][]float64, len(spectrogram))

	for t, magnitudeSpectrum := range spectrogram {
		contrasts[t] = sc.Compute(magnitudeSpectrum)
	}

	return contrasts
}

// calculateBandContrast calculates peak-to-valley contrast for one band
func (sc *SpectralContrast) calculateBandContrast(bandSpectrum []float64) float64 {
	if len(bandSpectrum) == 0 {
		return 0.0
	}

	powerSpectrum := make([]float64, len(bandSpectrum))
	for i, mag := range bandSpectrum {
		powerSpectrum[i] = mag * mag
	}

	sorted := make([]float64, len(powerSpectrum))
	copy(sorted, powerSpectrum)
	sort.Float64s(sorted)

	// Bottom 20% for valleys, top 20% for peaks
	quantileCount := max(1, int(0.2*float64(len(sorted))))

	valleyEnergy := 0.0
	for i := 0; i < quantileCount; i++ {
		valleyEnergy += sorted[i]
	}
	valleyEnergy /= float64(quantileCount)

	peakEnergy := 0.0
	for i := len(sorted) - quantileCount; i < len(sorted); i++ {
		peakEnergy += sorted[i]
	}
	peakEnergy /= float64(quantileCount)

	if peakEnergy <= 0 {
		return 0.0
	}

	return 10.0 * math.Log10((peakEnergy+Epsilon)/(valleyEnergy+Epsilon))
}

// initializeBands creates logarithmically spaced frequency band boundaries
func (sc *SpectralContrast) initializeBands(numBins int) {
	sc.freqBins = make([]float64, numBins)
	sc.bandEdges = make([]int, sc.numBands+1)

	nyquist := float64(sc.sampleRate) / 2.0
	for i := 0; i < numBins; i++ {
		sc.freqBins[i] = float64(i) * nyquist / float64(numBins-1)
	}

	minFreq := 200.0
	maxFreq := nyquist

	if maxFreq <= minFreq {
		maxFreq = minFreq * 2
	}

	logMinFreq := math.Log10(minFreq)
	logMaxFreq := math.Log10(maxFreq)
	logStep := (logMaxFreq - logMinFreq) / float64(sc.numBands)

	for i := 0; i <= sc.numBands; i++ {
		freq := math.Pow(10.0, logMinFreq+float64(i)*logStep)

		binIdx := int(freq * float64(numBins-1) / nyquist)
		binIdx = min(binIdx, numBins-1)
		binIdx = max(binIdx, 0)

		sc.bandEdges[i] = binIdx
	}

	// Ensure monotonic increasing band edges
	for i := 1; i <= sc.numBands; i++ {
		if sc.bandEdges[i] <= sc.bandEdges[i-1] {
			sc.bandEdges[i] = sc.bandEdges[i-1] + 1
		}
	}

	sc.initialized = true
}

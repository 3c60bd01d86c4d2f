package spectral

import (
	"fmt"
	"math"
	"math/cmplx"
	"runtime"
	"sync"
)

// CQT computes a constant-Q transform: logarithmically spaced frequency bins
// with a constant ratio of center frequency to bandwidth. Semitone-spaced
// bins make shifted motor harmonics line up as vertical displacements.
type CQT struct {
	sampleRate    int
	numBins       int
	binsPerOctave int
	minFreq       float64
	hopSize       int

	q       float64
	kernels []cqtKernel
}

type cqtKernel struct {
	coeffs []complex128 // conjugated windowed complex exponential
	length int
	freq   float64
}

// CQTResult holds the result of a constant-Q analysis
type CQTResult struct {
	Magnitude      [][]float64 `json:"magnitude"`       // Time x Bins magnitude matrix
	BinFrequencies []float64   `json:"bin_frequencies"` // Center frequency per bin (Hz)
	TimeFrames     int         `json:"time_frames"`
	NumBins        int         `json:"num_bins"`
	SampleRate     int         `json:"sample_rate"`
	HopSize        int         `json:"hop_size"`
}

// NewCQT creates a constant-Q calculator. numBins total bins, binsPerOctave
// resolution (12 for semitones), starting at minFreq.
func NewCQT(sampleRate, numBins, binsPerOctave int, minFreq float64, hopSize int) *CQT {
	c := &CQT{
		sampleRate:    sampleRate,
		numBins:       numBins,
		binsPerOctave: binsPerOctave,
		minFreq:       minFreq,
		hopSize:       hopSize,
		q:             1.0 / (math.Pow(2.0, 1.0/float64(binsPerOctave)) - 1.0),
	}
	c.buildKernels()
	return c
}

// buildKernels precomputes the windowed complex exponential for each bin
func (c *CQT) buildKernels() {
	c.kernels = make([]cqtKernel, c.numBins)

	for k := 0; k < c.numBins; k++ {
		freq := c.minFreq * math.Pow(2.0, float64(k)/float64(c.binsPerOctave))
		length := int(math.Ceil(c.q * float64(c.sampleRate) / freq))
		if length < 2 {
			length = 2
		}

		coeffs := make([]complex128, length)
		norm := 1.0 / float64(length)
		for n := 0; n < length; n++ {
			// Hann-windowed exponential, conjugated for direct correlation
			w := 0.5 * (1.0 - math.Cos(2.0*math.Pi*float64(n)/float64(length-1)))
			phase := -2.0 * math.Pi * c.q * float64(n) / float64(length)
			coeffs[n] = complex(w*norm, 0) * cmplx.Exp(complex(0, phase))
		}

		c.kernels[k] = cqtKernel{coeffs: coeffs, length: length, freq: freq}
	}
}

// BinFrequencies returns the center frequency of every bin
func (c *CQT) BinFrequencies() []float64 {
	freqs := make([]float64, c.numBins)
	for k, kernel := range c.kernels {
		freqs[k] = kernel.freq
	}
	return freqs
}

// Compute calculates the constant-Q magnitude matrix for a signal. Frames
// are centered on multiples of the hop size; kernels longer than the
// remaining signal are correlated against the available samples only.
func (c *CQT) Compute(signal []float64) (*CQTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if c.hopSize <= 0 {
		return nil, fmt.Errorf("hop size must be positive")
	}

	numFrames := len(signal)/c.hopSize + 1
	magnitude := make([][]float64, numFrames)
	for t := 0; t < numFrames; t++ {
		magnitude[t] = make([]float64, c.numBins)
	}

	numWorkers := min(runtime.NumCPU(), numFrames)
	if numWorkers < 1 {
		numWorkers = 1
	}

	frames := make(chan int, numFrames)

	var wg sync.WaitGroup
	for _i := 0; _i < numWorkers; _i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range frames {
				center := t * c.hopSize
				for k, kernel := range c.kernels {
					magnitude[t][k] = c.correlate(signal, center, kernel)
				}
			}
		}()
	}

	for t := 0; t < numFrames; t++ {
		frames <- t
	}
	close(frames)
	wg.Wait()

	return &CQTResult{
		Magnitude:      magnitude,
		BinFrequencies: c.BinFrequencies(),
		TimeFrames:     numFrames,
		NumBins:        c.numBins,
		SampleRate:     c.sampleRate,
		HopSize:        c.hopSize,
	}, nil
}

// correlate computes |<x, kernel>| for a kernel centered at the given sample
func (c *CQT) correlate(signal []float64, center int, kernel cqtKernel) float64 {
	start := center - kernel.length/2

	var sum complex128
	for n := 0; n < kernel.length; n++ {
		idx := start + n
		if idx < 0 || idx >= len(signal) {
			continue
		}
		sum += complex(signal[idx], 0) * kernel.coeffs[n]
	}

	return cmplx.Abs(sum)
}

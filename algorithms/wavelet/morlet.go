package wavelet

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
)

// MorletCWT computes a continuous wavelet transform with a complex Morlet
// mother wavelet. The multi-scale decomposition localizes short transient
// bursts in both time and frequency, which fixed-window transforms smear.
type MorletCWT struct {
	bandwidth   float64 // B parameter: Gaussian envelope bandwidth
	centerFreq  float64 // C parameter: oscillation frequency
	fft         *spectral.FFT
	maxKernelUp float64 // kernel support in multiples of the scale
}

// CWTResult holds the scalogram produced by the transform
type CWTResult struct {
	Power       [][]float64 `json:"power"`       // Scales x Time power matrix
	Frequencies []float64   `json:"frequencies"` // Pseudo-frequency per scale (Hz)
	Scales      []float64   `json:"scales"`
	SampleRate  int         `json:"sample_rate"` // Rate the transform actually ran at
	NumSamples  int         `json:"num_samples"`
}

// NewMorletCWT creates a transform with the standard cmor1.5-1.0 wavelet
func NewMorletCWT() *MorletCWT {
	return &MorletCWT{
		bandwidth:   1.5,
		centerFreq:  1.0,
		fft:         spectral.NewFFT(),
		maxKernelUp: 8.0,
	}
}

// LogScales returns count scales logarithmically spaced between 10^lowExp
// and 10^highExp.
func LogScales(lowExp, highExp float64, count int) []float64 {
	scales := make([]float64, count)
	step := (highExp - lowExp) / float64(count-1)
	for i := range scales {
		scales[i] = math.Pow(10.0, lowExp+float64(i)*step)
	}
	return scales
}

// Frequency returns the pseudo-frequency in Hz for a scale at a sample rate
func (m *MorletCWT) Frequency(scale float64, sampleRate int) float64 {
	return m.centerFreq * float64(sampleRate) / scale
}

// Compute calculates |CWT|^2 for every scale via FFT convolution. The
// result rows are ordered like the input scales (typically small scale =
// high frequency first).
func (m *MorletCWT) Compute(signal []float64, scales []float64, sampleRate int) (*CWTResult, error) {
	if len(signal) == 0 {
		return nil, fmt.Errorf("empty signal")
	}
	if len(scales) == 0 {
		return nil, fmt.Errorf("no scales given")
	}

	// One padded FFT of the signal shared by all scales
	maxKernel := m.kernelLength(scales[len(scales)-1], len(signal))
	for _, s := range scales {
		if l := m.kernelLength(s, len(signal)); l > maxKernel {
			maxKernel = l
		}
	}

	fftSize := nextPowerOfTwo(len(signal) + maxKernel)
	padded := make([]float64, fftSize)
	copy(padded, signal)
	signalSpectrum := m.fft.Compute(padded)

	power := make([][]float64, len(scales))
	frequencies := make([]float64, len(scales))

	for si, scale := range scales {
		frequencies[si] = m.Frequency(scale, sampleRate)
		power[si] = m.convolveScale(signalSpectrum, scale, fftSize, len(signal))
	}

	return &CWTResult{
		Power:       power,
		Frequencies: frequencies,
		Scales:      scales,
		SampleRate:  sampleRate,
		NumSamples:  len(signal),
	}, nil
}

// convolveScale convolves the signal spectrum with one scaled wavelet
func (m *MorletCWT) convolveScale(signalSpectrum []complex128, scale float64, fftSize, signalLen int) []float64 {
	kernelLen := m.kernelLength(scale, signalLen)

	kernel := make([]complex128, fftSize)
	half := kernelLen / 2
	norm := 1.0 / (math.Sqrt(scale) * math.Sqrt(math.Pi*m.bandwidth))

	for n := 0; n < kernelLen; n++ {
		t := float64(n-half) / scale
		envelope := norm * math.Exp(-t*t/m.bandwidth)
		// Conjugate of the analysis wavelet for correlation
		kernel[n] = complex(envelope, 0) * cmplx.Exp(complex(0, -2.0*math.Pi*m.centerFreq*t))
	}

	kernelSpectrum := m.fft.ComputeComplex(kernel)

	product := make([]complex128, fftSize)
	for i := 0; i < fftSize; i++ {
		product[i] = signalSpectrum[i] * kernelSpectrum[i]
	}

	coeffs := m.fft.ComputeInverse(product)

	// The kernel is centered at index half, so the aligned output starts there
	out := make([]float64, signalLen)
	for i := 0; i < signalLen; i++ {
		c := coeffs[i+half]
		out[i] = real(c)*real(c) + imag(c)*imag(c)
	}

	return out
}

// kernelLength bounds the wavelet support to the signal length
func (m *MorletCWT) kernelLength(scale float64, signalLen int) int {
	length := int(m.maxKernelUp*scale) | 1 // Odd length keeps the center exact
	if length > signalLen {
		length = signalLen | 1
	}
	if length < 3 {
		length = 3
	}
	return length
}

func nextPowerOfTwo(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

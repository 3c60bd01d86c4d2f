package spectral

import (
	"math"
)

// Epsilon is the small positive constant added before every logarithm or
// division in this library so that all-zero frames never produce NaN or Inf.
const Epsilon = 1e-10

// PowerSpectrum provides power spectral density computation
type PowerSpectrum struct {
	// No state needed - stateless calculation
}

// NewPowerSpectrum creates a new power spectrum calculator
func NewPowerSpectrum() *PowerSpectrum {
	return &PowerSpectrum{}
}

// Compute computes power spectral density from magnitude spectrum
func (ps *PowerSpectrum) Compute(magnitudeSpectrum []float64) []float64 {
	if len(magnitudeSpectrum) == 0 {
		return []float64{}
	}

	power := make([]float64, len(magnitudeSpectrum))
	for i, mag := range magnitudeSpectrum {
		power[i] = mag * mag
	}

	return power
}

// ComputeFromSTFT computes the power spectrogram from an STFT result
func (ps *PowerSpectrum) ComputeFromSTFT(stftResult *STFTResult) [][]float64 {
	power := make([][]float64, stftResult.TimeFrames)

	for t := 0; t < stftResult.TimeFrames; t++ {
		power[t] = make([]float64, stftResult.FreqBins)
		for f := 0; f < stftResult.FreqBins; f++ {
			mag := stftResult.Magnitude[t][f]
			power[t][f] = mag * mag
		}
	}

	return power
}

// PowerToDB converts a power matrix to decibels referenced to the matrix
// peak, so the hottest cell is always 0 dB. Matches the display convention
// used by every spectrogram generator.
func PowerToDB(power [][]float64) [][]float64 {
	ref := Epsilon
	for _, row := range power {
		for _, v := range row {
			if v > ref {
				ref = v
			}
		}
	}

	db := make([][]float64, len(power))
	for i, row := range power {
		db[i] = make([]float64, len(row))
		for j, v := range row {
			db[i][j] = 10.0 * math.Log10((v+Epsilon)/ref)
		}
	}

	return db
}

// AmplitudeToDB converts a magnitude matrix to decibels referenced to the
// matrix peak (20*log10 scaling).
func AmplitudeToDB(magnitude [][]float64) [][]float64 {
	ref := Epsilon
	for _, row := range magnitude {
		for _, v := range row {
			if v > ref {
				ref = v
			}
		}
	}

	db := make([][]float64, len(magnitude))
	for i, row := range magnitude {
		db[i] = make([]float64, len(row))
		for j, v := range row {
			db[i][j] = 20.0 * math.Log10((v+Epsilon)/ref)
		}
	}

	return db
}

// ComputeLog computes log power spectrum in dB with floor
func (ps *PowerSpectrum) ComputeLog(magnitudeSpectrum []float64, floorDB float64) []float64 {
	if len(magnitudeSpectrum) == 0 {
		return []float64{}
	}

	floor := math.Pow(10, floorDB/10.0)
	logPower := make([]float64, len(magnitudeSpectrum))

	for i, mag := range magnitudeSpectrum {
		power := mag * mag
		if power < floor {
			power = floor
		}
		logPower[i] = 10 * math.Log10(power)
	}

	return logPower
}

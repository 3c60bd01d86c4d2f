package chroma

import (
	"math"
)

// TonnetzAnalyzer projects chroma vectors onto the six-dimensional tonal
// centroid space (Tonnetz).
//
// The Tonnetz maps the 12 pitch classes onto three circles of harmonic
// relationship - perfect fifths, minor thirds, and major thirds - and takes
// the energy-weighted centroid on each. The six output dimensions are the
// sine and cosine coordinates on the three circles. Close centroids mean
// strongly related harmonic content; modulation sidebands around a motor's
// supply harmonics show up as centroid drift.
type TonnetzAnalyzer struct {
	// basis[d][pc] is the weight of pitch class pc on dimension d
	basis [6][12]float64
}

// Circle intervals in semitones: fifths (7), minor thirds (3), major thirds (4)
var tonnetzIntervals = [3]float64{7.0, 3.0, 4.0}

// Circle radii following the standard tonal centroid formulation
var tonnetzRadii = [3]float64{1.0, 1.0, 0.5}

// NewTonnetzAnalyzer creates a new tonal centroid analyzer
func NewTonnetzAnalyzer() *TonnetzAnalyzer {
	ta := &TonnetzAnalyzer{}
	ta.initializeBasis()
	return ta
}

// initializeBasis builds the 6x12 transform matrix
func (ta *TonnetzAnalyzer) initializeBasis() {
	for circle := 0; circle < 3; circle++ {
		for pc := 0; pc < 12; pc++ {
			angle := 2.0 * math.Pi * tonnetzIntervals[circle] * float64(pc) / 12.0
			ta.basis[2*circle][pc] = tonnetzRadii[circle] * math.Sin(angle)
			ta.basis[2*circle+1][pc] = tonnetzRadii[circle] * math.Cos(angle)
		}
	}
}

// ComputeFrame projects a single 12-bin chroma frame onto the six tonal
// centroid dimensions. The frame is normalized to unit L1 norm first so
// the centroid reflects distribution, not level.
func (ta *TonnetzAnalyzer) ComputeFrame(chromaFrame []float64) []float64 {
	centroid := make([]float64, 6)
	if len(chromaFrame) != 12 {
		return centroid
	}

	norm := 0.0
	for _, v := range chromaFrame {
		norm += math.Abs(v)
	}
	if norm < 1e-10 {
		return centroid
	}

	for d := 0; d < 6; d++ {
		sum := 0.0
		for pc := 0; pc < 12; pc++ {
			sum += ta.basis[d][pc] * chromaFrame[pc]
		}
		centroid[d] = sum / norm
	}

	return centroid
}

// ComputeFrames projects every frame of a chromagram, returning a
// frames x 6 matrix of tonal centroids.
func (ta *TonnetzAnalyzer) ComputeFrames(chromagram [][]float64) [][]float64 {
	if len(chromagram) == 0 {
		return [][]float64{}
	}

	tonnetz := make([][]float64, len(chromagram))
	for t, frame := range chromagram {
		tonnetz[t] = ta.ComputeFrame(frame)
	}

	return tonnetz
}

package common

import (
	"math"
	"testing"
)

func TestNormalizer_Peak(t *testing.T) {
	n := NewNormalizer(Peak)
	signal := []float64{0.1, -0.5, 0.25}

	out := n.Normalize(signal)

	peak := 0.0
	for _, v := range out {
		if abs := math.Abs(v); abs > peak {
			peak = abs
		}
	}
	if math.Abs(peak-1.0) > 1e-12 {
		t.Errorf("peak after normalization = %v, want 1", peak)
	}
	// Relative shape preserved
	if math.Abs(out[0]/out[2]-0.4) > 1e-12 {
		t.Errorf("sample ratio changed: %v / %v", out[0], out[2])
	}
}

func TestNormalizer_PeakSilentUnchanged(t *testing.T) {
	n := NewNormalizer(Peak)
	signal := make([]float64, 100)

	out := n.Normalize(signal)
	if len(out) != 100 {
		t.Fatalf("length changed to %d", len(out))
	}
	for i, v := range out {
		if v != 0 {
			t.Fatalf("sample %d = %v, want 0", i, v)
		}
	}
}

func TestNormalizer_RMS(t *testing.T) {
	n := NewNormalizer(RMSNorm)
	signal := []float64{0.5, -0.5, 0.5, -0.5}

	out := n.Normalize(signal)

	sumSq := 0.0
	for _, v := range out {
		sumSq += v * v
	}
	rms := math.Sqrt(sumSq / float64(len(out)))
	if math.Abs(rms-1.0) > 1e-12 {
		t.Errorf("RMS after normalization = %v, want 1", rms)
	}
}

func TestNormalizer_ZScoreConstant(t *testing.T) {
	n := NewNormalizer(ZScore)
	signal := []float64{3, 3, 3, 3}

	out := n.Normalize(signal)
	for i, v := range out {
		if v != 0 {
			t.Errorf("sample %d = %v, want 0 for constant input", i, v)
		}
	}
}

func TestNormalizer_Empty(t *testing.T) {
	n := NewNormalizer(Peak)
	if out := n.Normalize(nil); len(out) != 0 {
		t.Errorf("got %d samples for empty input", len(out))
	}
}

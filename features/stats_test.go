package features

import (
	"math"
	"testing"
)

func TestMeanStd(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantStd  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{5}, 5, 0},
		{"constant", []float64{2, 2, 2, 2}, 2, 0},
		{"simple", []float64{1, 2, 3, 4}, 2.5, math.Sqrt(1.25)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, std := meanStd(tt.values)
			if math.Abs(mean-tt.wantMean) > 1e-12 {
				t.Errorf("mean = %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(std-tt.wantStd) > 1e-12 {
				t.Errorf("std = %v, want %v", std, tt.wantStd)
			}
		})
	}
}

func TestSkewness_Symmetric(t *testing.T) {
	if s := skewness([]float64{-2, -1, 0, 1, 2}); math.Abs(s) > 1e-12 {
		t.Errorf("skewness of symmetric data = %v, want 0", s)
	}
	if s := skewness([]float64{1, 1, 1}); s != 0 {
		t.Errorf("skewness of constant data = %v, want 0", s)
	}
}

func TestSkewness_RightTail(t *testing.T) {
	if s := skewness([]float64{1, 1, 1, 1, 10}); s <= 0 {
		t.Errorf("skewness of right-tailed data = %v, want positive", s)
	}
}

func TestExcessKurtosis_Guards(t *testing.T) {
	if k := excessKurtosis([]float64{3, 3, 3}); k != 0 {
		t.Errorf("kurtosis of constant data = %v, want 0", k)
	}
	if k := excessKurtosis([]float64{1}); k != 0 {
		t.Errorf("kurtosis of single value = %v, want 0", k)
	}
}

func TestExcessKurtosis_Impulsive(t *testing.T) {
	flat := make([]float64, 100)
	for i := range flat {
		if i%2 == 0 {
			flat[i] = 1
		} else {
			flat[i] = -1
		}
	}
	spiky := make([]float64, 100)
	spiky[50] = 10

	if excessKurtosis(spiky) <= excessKurtosis(flat) {
		t.Error("impulsive series should have higher kurtosis than flat series")
	}
}

func TestSanitize(t *testing.T) {
	m := FeatureMap{
		"good": 1.5,
		"nan":  math.NaN(),
		"inf":  math.Inf(1),
	}
	sanitize(m)

	if m["good"] != 1.5 {
		t.Errorf("finite value changed to %v", m["good"])
	}
	if m["nan"] != 0 {
		t.Errorf("NaN not zeroed: %v", m["nan"])
	}
	if m["inf"] != 0 {
		t.Errorf("Inf not zeroed: %v", m["inf"])
	}
}

package spectrogram

import (
	"math"
	"testing"
)

func TestMelGenerator_Dimensions(t *testing.T) {
	hm, err := NewMelGenerator().Heatmap(testSignal(440, 1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hm.Data) != melBands {
		t.Errorf("got %d bands, want %d", len(hm.Data), melBands)
	}
	for _, f := range hm.Y {
		if f < melMinFreq || f > melMaxFreq {
			t.Errorf("band center %v Hz outside [%v, %v]", f, melMinFreq, melMaxFreq)
		}
	}
	if len(hm.X) != len(hm.Data[0]) {
		t.Errorf("time axis length %d does not match %d columns", len(hm.X), len(hm.Data[0]))
	}
}

func TestMelGenerator_DBRange(t *testing.T) {
	hm, err := NewMelGenerator().Heatmap(testSignal(440, 1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Peak-referenced dB: maximum is 0, everything else below
	maxVal := math.Inf(-1)
	for _, row := range hm.Data {
		for _, v := range row {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if math.Abs(maxVal) > 1e-6 {
		t.Errorf("peak = %v dB, want 0", maxVal)
	}
}

func TestCQTGenerator_LogAxis(t *testing.T) {
	hm, err := NewCQTGenerator().Heatmap(testSignal(440, 0.5))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hm.LogY {
		t.Error("CQT heatmap should use a log frequency axis")
	}
	if len(hm.Data) != cqtBins {
		t.Errorf("got %d bins, want %d", len(hm.Data), cqtBins)
	}
	if hm.Y[0] < cqtMinFreq-1 {
		t.Errorf("lowest bin %v Hz below minimum", hm.Y[0])
	}
}

func TestLogSTFTGenerator_FloorApplied(t *testing.T) {
	hm, err := NewLogSTFTGenerator().Heatmap(testSignal(440, 1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !hm.LogY {
		t.Error("log-STFT heatmap should use a log frequency axis")
	}
	for _, f := range hm.Y {
		if f < logSTFTFloorFreq {
			t.Errorf("bin at %v Hz below the %v Hz floor", f, logSTFTFloorFreq)
		}
	}
}

func TestScalogramGenerator_ScaleCount(t *testing.T) {
	hm, err := NewScalogramGenerator().Heatmap(testSignal(440, 0.25))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(hm.Data) != scalogramScaleCount {
		t.Errorf("got %d rows, want %d", len(hm.Data), scalogramScaleCount)
	}
	for i := 1; i < len(hm.Y); i++ {
		if hm.Y[i] <= hm.Y[i-1] {
			t.Fatal("frequency axis not ascending")
		}
	}
}

func TestScalogramGenerator_DecimatedAxes(t *testing.T) {
	// 2 s at 22050 Hz is 44100 samples, decimated by 2 before the CWT
	signal := testSignal(440, 2.0)

	hm, err := NewScalogramGenerator().Heatmap(signal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Top of the frequency axis comes from the decimated rate: the
	// smallest scale is 10^0.5, so max frequency = (rate/2) / 10^0.5.
	decimatedRate := float64(signal.SampleRate) / 2.0
	wantTop := decimatedRate / math.Pow(10, scalogramLowExp)
	top := hm.Y[len(hm.Y)-1]
	if math.Abs(top-wantTop) > wantTop*0.01 {
		t.Errorf("max frequency = %.1f, want %.1f from the decimated rate", top, wantTop)
	}

	undecimated := float64(signal.SampleRate) / math.Pow(10, scalogramLowExp)
	if top > undecimated*0.6 {
		t.Errorf("max frequency %.1f derives from the original rate, want the decimated one", top)
	}

	// Decimation halves the sample count but keeps the duration
	if last := hm.X[len(hm.X)-1]; math.Abs(last-2.0) > 0.01 {
		t.Errorf("time axis ends at %.3f s, want about 2.0", last)
	}
}

func TestKurtosisGenerator_ConstantAlongTime(t *testing.T) {
	hm, err := NewKurtosisGenerator().Heatmap(testSignal(440, 1.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for r, row := range hm.Data {
		for c := 1; c < len(row); c++ {
			if row[c] != row[0] {
				t.Fatalf("row %d varies along time: %v vs %v", r, row[0], row[c])
			}
		}
	}
	for _, f := range hm.Y {
		if f > kurtosisMaxFreq {
			t.Errorf("bin at %v Hz above the %v Hz cap", f, kurtosisMaxFreq)
		}
	}
}

func TestModulationGenerator_AxisLimits(t *testing.T) {
	hm, err := NewModulationGenerator().Heatmap(testSignal(440, 2.0))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, f := range hm.X {
		if f > modFreqLimit {
			t.Errorf("modulation bin at %v Hz above the %v Hz limit", f, modFreqLimit)
		}
	}
	for _, f := range hm.Y {
		if f < modMinFreq || f > modMaxFreq {
			t.Errorf("acoustic bin at %v Hz outside [%v, %v]", f, modMinFreq, modMaxFreq)
		}
	}
}

func TestModulationGenerator_TooShort(t *testing.T) {
	if _, err := NewModulationGenerator().Heatmap(testSignal(440, 0.01)); err == nil {
		t.Error("expected error for a signal too short to frame")
	}
}

func TestRenderer_FlatData(t *testing.T) {
	hm := &Heatmap{
		Data:  [][]float64{{0, 0}, {0, 0}},
		X:     []float64{0, 1},
		Y:     []float64{100, 200},
		Title: "flat",
	}

	img, err := NewRenderer().Render(TypeMel, hm)
	if err != nil {
		t.Fatalf("flat data should still render: %v", err)
	}
	if img == "" {
		t.Error("empty image")
	}
}

func TestRenderer_EmptyData(t *testing.T) {
	if _, err := NewRenderer().Render(TypeMel, &Heatmap{}); err == nil {
		t.Error("expected error for empty heatmap")
	}
}

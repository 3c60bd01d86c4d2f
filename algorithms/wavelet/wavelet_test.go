package wavelet

import (
	"math"
	"testing"
)

const testSampleRate = 22050

func generateSine(freq float64, numSamples int) []float64 {
	out := make([]float64, numSamples)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testSampleRate)
	}
	return out
}

func TestLogScales_Endpoints(t *testing.T) {
	scales := LogScales(0.5, 3.5, 50)

	if len(scales) != 50 {
		t.Fatalf("got %d scales, want 50", len(scales))
	}
	if math.Abs(scales[0]-math.Pow(10, 0.5)) > 1e-9 {
		t.Errorf("first scale = %v, want 10^0.5", scales[0])
	}
	if math.Abs(scales[49]-math.Pow(10, 3.5)) > 1e-6 {
		t.Errorf("last scale = %v, want 10^3.5", scales[49])
	}
	for i := 1; i < len(scales); i++ {
		if scales[i] <= scales[i-1] {
			t.Fatalf("scales not ascending at %d", i)
		}
	}
}

func TestDecimationFactor(t *testing.T) {
	tests := []struct {
		name    string
		samples int
		want    int
	}{
		{"short signal untouched", 10000, 1},
		{"at threshold untouched", 20000, 1},
		{"just over threshold", 20001, 1},
		{"double", 40000, 2},
		{"twenty seconds", 441000, 22},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DecimationFactor(tt.samples); got != tt.want {
				t.Errorf("DecimationFactor(%d) = %d, want %d", tt.samples, got, tt.want)
			}
		})
	}
}

func TestDecimate_LengthAndRate(t *testing.T) {
	signal := generateSine(100, 44100)

	out, rate := Decimate(signal, testSampleRate, 2)
	if rate != testSampleRate/2 {
		t.Errorf("rate = %d, want %d", rate, testSampleRate/2)
	}
	wantLen := (len(signal) + 1) / 2
	if len(out) != wantLen {
		t.Errorf("len = %d, want %d", len(out), wantLen)
	}
}

func TestDecimate_FactorOneIsIdentity(t *testing.T) {
	signal := generateSine(100, 1000)
	out, rate := Decimate(signal, testSampleRate, 1)

	if rate != testSampleRate {
		t.Errorf("rate changed to %d", rate)
	}
	if len(out) != len(signal) {
		t.Errorf("length changed to %d", len(out))
	}
}

func TestMorletCWT_Frequencies(t *testing.T) {
	cwt := NewMorletCWT()

	// Pseudo-frequency is centerFreq * rate / scale with centerFreq 1.0
	if f := cwt.Frequency(100.0, testSampleRate); math.Abs(f-220.5) > 1e-9 {
		t.Errorf("frequency at scale 100 = %v, want 220.5", f)
	}
}

func TestMorletCWT_SinePeakScale(t *testing.T) {
	const freq = 500.0
	signal := generateSine(freq, 8000)
	scales := LogScales(0.5, 3.5, 50)

	result, err := NewMorletCWT().Compute(signal, scales, testSampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Power) != 50 {
		t.Fatalf("got %d scale rows, want 50", len(result.Power))
	}

	// Total power per scale should peak near the scale matching the tone
	bestScale := 0
	bestPower := 0.0
	for si, row := range result.Power {
		sum := 0.0
		for _, v := range row {
			sum += v
		}
		if sum > bestPower {
			bestPower = sum
			bestScale = si
		}
	}

	peakFreq := result.Frequencies[bestScale]
	if peakFreq/freq > 1.25 || freq/peakFreq > 1.25 {
		t.Errorf("peak at %.1f Hz, want %.1f Hz within a quarter octave", peakFreq, freq)
	}
}

func TestMorletCWT_EmptyInputs(t *testing.T) {
	cwt := NewMorletCWT()
	if _, err := cwt.Compute(nil, LogScales(0.5, 3.5, 10), testSampleRate); err == nil {
		t.Error("expected error for empty signal")
	}
	if _, err := cwt.Compute(generateSine(100, 100), nil, testSampleRate); err == nil {
		t.Error("expected error for empty scales")
	}
}

package spectral

import (
	"math"
	"testing"
)

func TestCQT_BinFrequenciesGeometric(t *testing.T) {
	cqt := NewCQT(testSampleRate, 84, 12, 65.40639132514966, 512)
	freqs := cqt.BinFrequencies()

	if len(freqs) != 84 {
		t.Fatalf("expected 84 bins, got %d", len(freqs))
	}

	// Adjacent bins a semitone apart
	ratio := math.Pow(2.0, 1.0/12.0)
	for i := 1; i < len(freqs); i++ {
		got := freqs[i] / freqs[i-1]
		if math.Abs(got-ratio) > 1e-9 {
			t.Fatalf("bin ratio at %d = %v, want %v", i, got, ratio)
		}
	}

	// One octave doubles the frequency
	if math.Abs(freqs[12]/freqs[0]-2.0) > 1e-9 {
		t.Errorf("octave ratio = %v, want 2", freqs[12]/freqs[0])
	}
}

func TestCQT_SinePeakBin(t *testing.T) {
	const freq = 440.0
	signal := generateSine(1.0, freq, testSampleRate, testSampleRate/2)

	cqt := NewCQT(testSampleRate, 84, 12, 65.40639132514966, 512)
	result, err := cqt.Compute(signal)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TimeFrames == 0 {
		t.Fatal("no frames produced")
	}

	frame := result.Magnitude[result.TimeFrames/2]
	peakBin := 0
	for i, v := range frame {
		if v > frame[peakBin] {
			peakBin = i
		}
	}

	peakFreq := result.BinFrequencies[peakBin]
	// Within a semitone of the tone
	if peakFreq/freq > 1.06 || freq/peakFreq > 1.06 {
		t.Errorf("peak at %.1f Hz, want %.1f Hz within a semitone", peakFreq, freq)
	}
}

func TestCQT_EmptySignal(t *testing.T) {
	cqt := NewCQT(testSampleRate, 84, 12, 65.40639132514966, 512)
	if _, err := cqt.Compute(nil); err == nil {
		t.Error("expected error for empty signal")
	}
}

package spectral

import (
	"math"
	"testing"

	"github.com/vibrolab/motoraudio/algorithms/windowing"
)

const testSampleRate = 22050

func generateSine(amplitude, freq, sampleRate float64, numSamples int) []float64 {
	out := make([]float64, numSamples)
	for i := range out {
		out[i] = amplitude * math.Sin(2*math.Pi*freq*float64(i)/sampleRate)
	}
	return out
}

func TestSTFT_FrameGeometry(t *testing.T) {
	signal := generateSine(1.0, 440, testSampleRate, testSampleRate) // 1 second
	window := windowing.NewHann(2048, true)

	result, err := NewSTFT().ComputeWithWindow(signal, 2048, 512, testSampleRate, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantFrames := (len(signal)-2048)/512 + 1
	if result.TimeFrames != wantFrames {
		t.Errorf("TimeFrames = %d, want %d", result.TimeFrames, wantFrames)
	}
	if result.FreqBins != 1025 {
		t.Errorf("FreqBins = %d, want 1025", result.FreqBins)
	}
	if len(result.Magnitude) != wantFrames {
		t.Errorf("len(Magnitude) = %d, want %d", len(result.Magnitude), wantFrames)
	}
}

func TestSTFT_SinePeakBin(t *testing.T) {
	tests := []struct {
		name string
		freq float64
	}{
		{"low tone", 110},
		{"mid tone", 1000},
		{"high tone", 5000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			signal := generateSine(1.0, tt.freq, testSampleRate, testSampleRate/2)
			window := windowing.NewHann(2048, true)

			result, err := NewSTFT().ComputeWithWindow(signal, 2048, 512, testSampleRate, window)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			// Peak bin of the middle frame should sit on the tone
			frame := result.Magnitude[result.TimeFrames/2]
			peakBin := 0
			for i, v := range frame {
				if v > frame[peakBin] {
					peakBin = i
				}
			}

			peakFreq := result.BinFrequency(peakBin)
			binWidth := float64(testSampleRate) / 2048.0
			if math.Abs(peakFreq-tt.freq) > binWidth {
				t.Errorf("peak at %.1f Hz, want %.1f Hz within %.1f Hz", peakFreq, tt.freq, binWidth)
			}
		})
	}
}

func TestSTFT_ShortSignalSingleFrame(t *testing.T) {
	signal := generateSine(1.0, 440, testSampleRate, 1000)

	result, err := NewSTFT().ComputeSingleFrame(signal, testSampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.TimeFrames != 1 {
		t.Errorf("TimeFrames = %d, want 1", result.TimeFrames)
	}
}

func TestSTFT_SilentSignal(t *testing.T) {
	signal := make([]float64, 8192)
	window := windowing.NewHann(2048, true)

	result, err := NewSTFT().ComputeWithWindow(signal, 2048, 512, testSampleRate, window)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for f, frame := range result.Magnitude {
		for b, v := range frame {
			if v != 0 {
				t.Fatalf("frame %d bin %d = %v, want 0", f, b, v)
			}
		}
	}
}

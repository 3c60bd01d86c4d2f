package chroma

import (
	"math"
	"testing"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
)

const testSampleRate = 22050

func computeSTFT(t *testing.T, signal []float64) *spectral.STFTResult {
	t.Helper()
	window := windowing.NewHann(2048, true)
	result, err := spectral.NewSTFT().ComputeWithWindow(signal, 2048, 512, testSampleRate, window)
	if err != nil {
		t.Fatalf("stft: %v", err)
	}
	return result
}

func generateSine(freq float64, numSamples int) []float64 {
	out := make([]float64, numSamples)
	for i := range out {
		out[i] = math.Sin(2 * math.Pi * freq * float64(i) / testSampleRate)
	}
	return out
}

func TestChromaSTFT_PureTonePitchClass(t *testing.T) {
	tests := []struct {
		name    string
		freq    float64
		wantBin int // 0 = C
	}{
		{"A4", 440.0, 9},
		{"C4", 261.626, 0},
		{"E5", 659.255, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stftResult := computeSTFT(t, generateSine(tt.freq, testSampleRate/2))
			chromagram := NewChromaSTFTDefault(testSampleRate).ComputeFromSTFT(stftResult)

			if len(chromagram) == 0 {
				t.Fatal("empty chromagram")
			}

			frame := chromagram[len(chromagram)/2]
			if len(frame) != 12 {
				t.Fatalf("frame has %d bins, want 12", len(frame))
			}

			peak := 0
			for i, v := range frame {
				if v > frame[peak] {
					peak = i
				}
			}
			if peak != tt.wantBin {
				t.Errorf("peak pitch class = %d, want %d (frame %v)", peak, tt.wantBin, frame)
			}
		})
	}
}

func TestChromaSTFT_FramesNormalized(t *testing.T) {
	stftResult := computeSTFT(t, generateSine(440, testSampleRate/2))
	chromagram := NewChromaSTFTDefault(testSampleRate).ComputeFromSTFT(stftResult)

	for i, frame := range chromagram {
		sum := 0.0
		for _, v := range frame {
			sum += v
		}
		// Unit sum unless the frame was silent
		if sum > 1e-9 && math.Abs(sum-1.0) > 1e-6 {
			t.Errorf("frame %d sums to %v, want 1", i, sum)
		}
	}
}

func TestTonnetz_Dimensions(t *testing.T) {
	stftResult := computeSTFT(t, generateSine(440, testSampleRate/2))
	chromagram := NewChromaSTFTDefault(testSampleRate).ComputeFromSTFT(stftResult)

	tonnetz := NewTonnetzAnalyzer().ComputeFrames(chromagram)
	if len(tonnetz) != len(chromagram) {
		t.Fatalf("got %d tonnetz frames, want %d", len(tonnetz), len(chromagram))
	}
	for i, frame := range tonnetz {
		if len(frame) != 6 {
			t.Fatalf("frame %d has %d dimensions, want 6", i, len(frame))
		}
	}
}

func TestTonnetz_SilentChroma(t *testing.T) {
	chromagram := [][]float64{make([]float64, 12)}
	tonnetz := NewTonnetzAnalyzer().ComputeFrames(chromagram)

	for _, v := range tonnetz[0] {
		if v != 0 {
			t.Errorf("silent chroma gave tonnetz %v, want zeros", tonnetz[0])
			break
		}
	}
}

package temporal

import (
	"math"
	"testing"
)

const testSampleRate = 22050

// generateClickTrain places short decaying impulses at a fixed interval,
// mimicking periodic impacts.
func generateClickTrain(intervalSec float64, duration float64, sampleRate int) []float64 {
	n := int(duration * float64(sampleRate))
	out := make([]float64, n)
	interval := int(intervalSec * float64(sampleRate))

	for start := 0; start < n; start += interval {
		for j := 0; j < 64 && start+j < n; j++ {
			out[start+j] = math.Exp(-float64(j)/8.0) * math.Sin(2*math.Pi*2000*float64(j)/float64(sampleRate))
		}
	}
	return out
}

func TestEnvelope_ComputeRMS(t *testing.T) {
	signal := make([]float64, 4096)
	for i := range signal {
		signal[i] = 0.5
	}

	env := NewEnvelope().ComputeRMS(signal, 1024, 512)
	wantFrames := (4096-1024)/512 + 1
	if len(env) != wantFrames {
		t.Fatalf("got %d frames, want %d", len(env), wantFrames)
	}
	for i, v := range env {
		if math.Abs(v-0.5) > 1e-9 {
			t.Errorf("frame %d RMS = %v, want 0.5", i, v)
		}
	}
}

func TestEnvelope_ShortSignalSingleFrame(t *testing.T) {
	signal := []float64{1, -1, 1, -1}
	env := NewEnvelope().ComputeRMS(signal, 1024, 512)

	if len(env) != 1 {
		t.Fatalf("got %d frames, want 1", len(env))
	}
	if math.Abs(env[0]-1.0) > 1e-9 {
		t.Errorf("RMS = %v, want 1", env[0])
	}
}

func TestOnsetDetection_ClickTrain(t *testing.T) {
	signal := generateClickTrain(0.5, 4.0, testSampleRate)

	onsets, err := NewOnsetDetection().DetectOnsets(signal, testSampleRate, 1.0, 0.1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 8 clicks in 4 seconds; edge frames may drop one or two
	if len(onsets) < 5 || len(onsets) > 9 {
		t.Errorf("detected %d onsets, want around 8", len(onsets))
	}

	for i := 1; i < len(onsets); i++ {
		if onsets[i] <= onsets[i-1] {
			t.Fatal("onsets not strictly increasing")
		}
	}
}

func TestOnsetDetection_SilentSignal(t *testing.T) {
	signal := make([]float64, 2*testSampleRate)

	onsets, err := NewOnsetDetection().DetectOnsets(signal, testSampleRate, 1.5, 0.03)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(onsets) != 0 {
		t.Errorf("detected %d onsets in silence, want 0", len(onsets))
	}
}

func TestBeatTrack_PeriodicClicks(t *testing.T) {
	// Clicks every 0.5 s: 120 BPM
	signal := generateClickTrain(0.5, 6.0, testSampleRate)

	result, err := NewTempoEstimation().BeatTrack(signal, testSampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(result.Tempo-120.0) > 10.0 {
		t.Errorf("tempo = %.1f BPM, want about 120", result.Tempo)
	}
	if len(result.BeatTimes) < 8 {
		t.Errorf("got %d beats over 6 s at 120 BPM, want at least 8", len(result.BeatTimes))
	}
}

func TestBeatTrack_SilentSignal(t *testing.T) {
	signal := make([]float64, 2*testSampleRate)

	result, err := NewTempoEstimation().BeatTrack(signal, testSampleRate)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Tempo != 0 {
		t.Errorf("tempo of silence = %v, want 0", result.Tempo)
	}
	if len(result.BeatTimes) != 0 {
		t.Errorf("got %d beats in silence, want 0", len(result.BeatTimes))
	}
}

package features

import (
	"math"
	"testing"

	"github.com/vibrolab/motoraudio/ingest"
)

func testSignal(freq float64, seconds float64) *ingest.AudioSignal {
	sampleRate := 22050
	n := int(seconds * float64(sampleRate))
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = 0.8 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return &ingest.AudioSignal{Samples: samples, SampleRate: sampleRate}
}

func TestKeySchema_Size(t *testing.T) {
	keys := KeySchema()
	if len(keys) != 85 {
		t.Errorf("schema has %d keys, want 85", len(keys))
	}

	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		if seen[k] {
			t.Errorf("duplicate key %q", k)
		}
		seen[k] = true
	}
}

func TestAggregator_CompleteSchema(t *testing.T) {
	features := NewAggregator().Extract(testSignal(440, 2.0))

	keys := KeySchema()
	if len(features) != len(keys) {
		t.Errorf("got %d features, want %d", len(features), len(keys))
	}
	for _, k := range keys {
		v, ok := features[k]
		if !ok {
			t.Errorf("missing key %q", k)
			continue
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("key %q is not finite: %v", k, v)
		}
	}
}

func TestAggregator_PureToneValues(t *testing.T) {
	features := NewAggregator().Extract(testSignal(440, 2.0))

	// Centroid of a 440 Hz tone sits near 440
	if c := features["spectral_centroid_mean"]; math.Abs(c-440) > 50 {
		t.Errorf("spectral_centroid_mean = %.1f, want about 440", c)
	}

	// Steady tone: no silent frames, peak at the configured amplitude
	if r := features["silence_ratio"]; r != 0 {
		t.Errorf("silence_ratio = %v, want 0", r)
	}
	if p := features["peak_amplitude"]; math.Abs(p-0.8) > 0.01 {
		t.Errorf("peak_amplitude = %v, want 0.8", p)
	}

	// Sine crest factor is sqrt(2)
	if cf := features["crest_factor"]; math.Abs(cf-math.Sqrt2) > 0.05 {
		t.Errorf("crest_factor = %v, want %.3f", cf, math.Sqrt2)
	}
}

func TestAggregator_SilentSignal(t *testing.T) {
	signal := &ingest.AudioSignal{Samples: make([]float64, 44100), SampleRate: 22050}
	features := NewAggregator().Extract(signal)

	if len(features) != len(KeySchema()) {
		t.Fatalf("got %d features, want %d", len(features), len(KeySchema()))
	}

	for _, k := range []string{
		"rms_energy_mean", "peak_amplitude", "spectral_centroid_mean",
		"tempo", "onset_count",
	} {
		if v := features[k]; v != 0 {
			t.Errorf("%s = %v for silence, want 0", k, v)
		}
	}
	if r := features["silence_ratio"]; r != 1.0 {
		t.Errorf("silence_ratio = %v for silence, want 1", r)
	}
}

func TestAggregator_Deterministic(t *testing.T) {
	signal := testSignal(440, 1.0)
	agg := NewAggregator()

	first := agg.Extract(signal)
	second := agg.Extract(signal)

	for k, v := range first {
		if second[k] != v {
			t.Errorf("key %q differs between runs: %v vs %v", k, v, second[k])
		}
	}
}

func TestAggregator_NilSignal(t *testing.T) {
	features := NewAggregator().Extract(nil)
	if len(features) != len(KeySchema()) {
		t.Fatalf("got %d features, want %d", len(features), len(KeySchema()))
	}
	for k, v := range features {
		if v != 0 {
			t.Errorf("%s = %v for nil signal, want 0", k, v)
		}
	}
}

func TestAggregator_VeryShortSignal(t *testing.T) {
	signal := &ingest.AudioSignal{Samples: make([]float64, 100), SampleRate: 22050}
	features := NewAggregator().Extract(signal)

	if len(features) != len(KeySchema()) {
		t.Fatalf("got %d features, want %d", len(features), len(KeySchema()))
	}
	for k, v := range features {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("key %q is not finite: %v", k, v)
		}
	}
}

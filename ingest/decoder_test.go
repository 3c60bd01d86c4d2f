package ingest

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
)

// writeWAV writes a 16-bit PCM WAV file for decode tests
func writeWAV(t *testing.T, path string, samples []float64, sampleRate, channels int) {
	t.Helper()

	dataSize := len(samples) * channels * 2
	buf := make([]byte, 0, 44+dataSize)

	le := binary.LittleEndian
	u32 := func(v uint32) []byte { b := make([]byte, 4); le.PutUint32(b, v); return b }
	u16 := func(v uint16) []byte { b := make([]byte, 2); le.PutUint16(b, v); return b }

	buf = append(buf, []byte("RIFF")...)
	buf = append(buf, u32(uint32(36+dataSize))...)
	buf = append(buf, []byte("WAVE")...)
	buf = append(buf, []byte("fmt ")...)
	buf = append(buf, u32(16)...)
	buf = append(buf, u16(1)...) // PCM
	buf = append(buf, u16(uint16(channels))...)
	buf = append(buf, u32(uint32(sampleRate))...)
	buf = append(buf, u32(uint32(sampleRate*channels*2))...)
	buf = append(buf, u16(uint16(channels*2))...)
	buf = append(buf, u16(16)...)
	buf = append(buf, []byte("data")...)
	buf = append(buf, u32(uint32(dataSize))...)

	for _, s := range samples {
		v := int16(s * 32767)
		for c := 0; c < channels; c++ {
			buf = append(buf, byte(v), byte(v>>8))
		}
	}

	if err := os.WriteFile(path, buf, 0o644); err != nil {
		t.Fatalf("write wav: %v", err)
	}
}

func generateSine(freq float64, sampleRate, numSamples int) []float64 {
	out := make([]float64, numSamples)
	for i := range out {
		out[i] = 0.5 * math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate))
	}
	return out
}

func TestDecodeFile_WAVRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tone.wav")
	writeWAV(t, path, generateSine(440, 44100, 8820), 44100, 1) // 0.2 s

	signal, err := NewDecoder().DecodeFile(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if signal.SampleRate != TargetSampleRate {
		t.Errorf("sample rate = %d, want %d", signal.SampleRate, TargetSampleRate)
	}
	if d := signal.Duration(); math.Abs(d-0.2) > 0.02 {
		t.Errorf("duration = %.3f s, want about 0.2", d)
	}
	if signal.Format != "wav" {
		t.Errorf("format = %q, want wav", signal.Format)
	}

	// Peak normalized
	peak := 0.0
	for _, s := range signal.Samples {
		if abs := math.Abs(s); abs > peak {
			peak = abs
		}
		if math.IsNaN(s) || math.IsInf(s, 0) {
			t.Fatal("non-finite sample")
		}
	}
	if math.Abs(peak-1.0) > 1e-6 {
		t.Errorf("peak = %v, want 1", peak)
	}
}

func TestDecodeFile_StereoMixdown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stereo.wav")
	writeWAV(t, path, generateSine(440, 22050, 4410), 22050, 2)

	signal, err := NewDecoder().DecodeFile(path)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if d := signal.Duration(); math.Abs(d-0.2) > 0.02 {
		t.Errorf("duration = %.3f s, want about 0.2", d)
	}
}

func TestDecodeFile_MissingFile(t *testing.T) {
	_, err := NewDecoder().DecodeFile(filepath.Join(t.TempDir(), "missing.wav"))
	if err == nil {
		t.Fatal("expected error")
	}

	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type %T, want *DecodeError", err)
	}
	if decodeErr.Format != "wav" {
		t.Errorf("Format = %q, want wav", decodeErr.Format)
	}
}

func TestDecodeFile_Garbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "garbage.wav")
	if err := os.WriteFile(path, []byte("not a wav file at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := NewDecoder().DecodeFile(path)
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("error type %T, want *DecodeError", err)
	}
}

func TestDecodeError_Unwrap(t *testing.T) {
	inner := errors.New("boom")
	err := &DecodeError{Path: "x.wav", Format: "wav", Err: inner}

	if !errors.Is(err, inner) {
		t.Error("Unwrap does not expose the inner error")
	}
	if msg := err.Error(); msg == "" {
		t.Error("empty error message")
	}
}

func TestBytesToFloat64_RoundTrip(t *testing.T) {
	want := []float64{0.0, 1.0, -0.5, 0.25}
	raw := make([]byte, len(want)*8)
	for i, v := range want {
		binary.LittleEndian.PutUint64(raw[i*8:], math.Float64bits(v))
	}

	got := bytesToFloat64(raw)
	if len(got) != len(want) {
		t.Fatalf("got %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestBytesToFloat64_TrailingBytes(t *testing.T) {
	raw := make([]byte, 19) // 2 samples plus 3 stray bytes
	if got := bytesToFloat64(raw); len(got) != 2 {
		t.Errorf("got %d samples, want 2", len(got))
	}
}

func TestAudioSignal_Duration(t *testing.T) {
	signal := &AudioSignal{Samples: make([]float64, 22050), SampleRate: 22050}
	if d := signal.Duration(); d != 1.0 {
		t.Errorf("duration = %v, want 1", d)
	}

	empty := &AudioSignal{}
	if d := empty.Duration(); d != 0 {
		t.Errorf("empty duration = %v, want 0", d)
	}
}

package analyzer

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/vibrolab/motoraudio/features"
	"github.com/vibrolab/motoraudio/ingest"
	"github.com/vibrolab/motoraudio/logging"
	"github.com/vibrolab/motoraudio/spectrogram"
)

// Input validation limits for recordings submitted for analysis
const (
	MaxDuration = 20 * time.Second
	MaxFileSize = 50 * 1024 * 1024
)

// AllowedExtensions lists the accepted recording formats
var AllowedExtensions = []string{"wav", "mp3", "flac", "ogg", "m4a"}

// AnalysisOutput is the complete result for one recording
type AnalysisOutput struct {
	SourcePath   string               `json:"source_path"`
	Format       string               `json:"format"`
	Duration     float64              `json:"duration"`
	SampleRate   int                  `json:"sample_rate"`
	Features     features.FeatureMap  `json:"features"`
	Spectrograms []spectrogram.Result `json:"spectrograms"`
	AnalyzedAt   time.Time            `json:"analyzed_at"`
}

// Analyzer is the top-level pipeline: decode, extract features, render
// spectrograms. Decoding can fail; once a signal exists the rest of the
// pipeline degrades per-component instead of failing.
type Analyzer struct {
	decoder    *ingest.Decoder
	aggregator *features.Aggregator
	engine     *spectrogram.Engine
}

// New creates an analyzer with the default configuration
func New() *Analyzer {
	return &Analyzer{
		decoder:    ingest.NewDecoder(),
		aggregator: features.NewAggregator(),
		engine:     spectrogram.NewEngine(),
	}
}

// ValidateExtension rejects paths whose extension is not an accepted
// recording format.
func ValidateExtension(path string) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if !slices.Contains(AllowedExtensions, ext) {
		return fmt.Errorf("unsupported format %q (allowed: %s)", ext, strings.Join(AllowedExtensions, ", "))
	}
	return nil
}

// AnalyzeFile runs the full pipeline on a recording. Decode failures come
// back as *ingest.DecodeError; recordings over the duration limit are
// rejected before any analysis runs.
func (a *Analyzer) AnalyzeFile(path string) (*AnalysisOutput, error) {
	if err := ValidateExtension(path); err != nil {
		return nil, err
	}

	signal, err := a.decoder.DecodeFile(path)
	if err != nil {
		return nil, err
	}

	if d := signal.Duration(); d > MaxDuration.Seconds() {
		return nil, fmt.Errorf("recording too long: %.1fs (max %.0fs)", d, MaxDuration.Seconds())
	}

	return a.AnalyzeSignal(signal), nil
}

// AnalyzeSignal analyzes an already-decoded signal. It always returns a
// complete output: failed feature groups contribute zeros and failed
// spectrograms carry their error in the result slot.
func (a *Analyzer) AnalyzeSignal(signal *ingest.AudioSignal) *AnalysisOutput {
	logger := logging.WithFields(logging.Fields{
		"component": "analyzer",
		"source":    signal.SourcePath,
		"duration":  signal.Duration(),
	})

	logger.Info("Extracting features")
	featureMap := a.aggregator.Extract(signal)

	logger.Info("Generating spectrograms")
	spectrograms := a.engine.Generate(signal)

	return &AnalysisOutput{
		SourcePath:   signal.SourcePath,
		Format:       signal.Format,
		Duration:     signal.Duration(),
		SampleRate:   signal.SampleRate,
		Features:     featureMap,
		Spectrograms: spectrograms,
		AnalyzedAt:   time.Now().UTC(),
	}
}

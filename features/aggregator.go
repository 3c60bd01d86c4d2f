package features

import (
	"fmt"
	"sync"

	"github.com/vibrolab/motoraudio/algorithms/spectral"
	"github.com/vibrolab/motoraudio/algorithms/windowing"
	"github.com/vibrolab/motoraudio/ingest"
	"github.com/vibrolab/motoraudio/logging"
)

// Aggregator runs all four feature groups over a recording and merges
// their output into one flat map. Extraction never fails outright: a group
// that errors or panics logs the problem and contributes zeros, so one bad
// recording cannot take down a batch run.
type Aggregator struct {
	config AnalysisConfig

	stft       *spectral.STFT
	timeDomain *TimeDomainExtractor
	frequency  *FrequencyDomainExtractor
	cepstral   *CepstralExtractor
	rhythm     *RhythmExtractor
}

// groupResult carries one group's output back from its goroutine
type groupResult struct {
	name     string
	features FeatureMap
	err      error
}

// NewAggregator creates an aggregator with the default frame geometry
func NewAggregator() *Aggregator {
	return NewAggregatorWithConfig(DefaultAnalysisConfig())
}

// NewAggregatorWithConfig creates an aggregator with explicit geometry
func NewAggregatorWithConfig(config AnalysisConfig) *Aggregator {
	return &Aggregator{
		config:     config,
		stft:       spectral.NewSTFT(),
		timeDomain: NewTimeDomainExtractor(config),
		frequency:  NewFrequencyDomainExtractor(config.SampleRate),
		cepstral:   NewCepstralExtractor(config),
		rhythm:     NewRhythmExtractor(config),
	}
}

// Extract computes every feature for a recording. The returned map always
// contains exactly the KeySchema keys with finite values.
func (a *Aggregator) Extract(signal *ingest.AudioSignal) FeatureMap {
	out := make(FeatureMap, len(KeySchema()))

	logger := logging.WithFields(logging.Fields{
		"component": "feature_aggregator",
	})

	if signal == nil || len(signal.Samples) == 0 {
		logger.Warn("No samples to analyze, returning zero features")
		zeroFill(out, KeySchema())
		return out
	}

	// One STFT shared by the frequency and cepstral groups keeps their
	// frame views consistent.
	stftResult, stftErr := a.computeSTFT(signal.Samples)
	if stftErr != nil {
		logger.Warn("Shared transform failed, spectral groups degrade to zeros", logging.Fields{
			"error": stftErr.Error(),
		})
	}

	results := make(chan groupResult, 4)
	var wg sync.WaitGroup

	runGroup := func(name string, fn func() (FeatureMap, error)) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results <- groupResult{name: name, err: fmt.Errorf("panic: %v", r)}
				}
			}()
			features, err := fn()
			results <- groupResult{name: name, features: features, err: err}
		}()
	}

	runGroup(GroupTime, func() (FeatureMap, error) {
		return a.timeDomain.Extract(signal.Samples)
	})
	runGroup(GroupRhythm, func() (FeatureMap, error) {
		return a.rhythm.Extract(signal.Samples)
	})
	if stftErr == nil {
		runGroup(GroupFrequency, func() (FeatureMap, error) {
			return a.frequency.Extract(stftResult)
		})
		runGroup(GroupCepstral, func() (FeatureMap, error) {
			return a.cepstral.Extract(stftResult)
		})
	}

	wg.Wait()
	close(results)

	for res := range results {
		if res.err != nil {
			logger.Warn("Feature group failed, filling zeros", logging.Fields{
				"group": res.name,
				"error": res.err.Error(),
			})
			continue
		}
		for k, v := range res.features {
			out[k] = v
		}
	}

	zeroFill(out, KeySchema())
	sanitize(out)
	return out
}

// computeSTFT runs the shared Hann transform at the configured geometry.
// Signals shorter than one frame get a single zero-padded frame.
func (a *Aggregator) computeSTFT(signal []float64) (*spectral.STFTResult, error) {
	if len(signal) < a.config.FrameLength {
		return a.stft.ComputeSingleFrame(signal, a.config.SampleRate)
	}
	window := windowing.NewHann(a.config.FrameLength, true)
	return a.stft.ComputeWithWindow(signal, a.config.FrameLength, a.config.HopLength, a.config.SampleRate, window)
}

// Config returns the frame geometry the aggregator runs with
func (a *Aggregator) Config() AnalysisConfig {
	return a.config
}

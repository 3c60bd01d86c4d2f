package spectrogram

import (
	"fmt"
	"sync"

	"github.com/vibrolab/motoraudio/ingest"
	"github.com/vibrolab/motoraudio/logging"
)

// Canonical spectrogram type keys, in presentation order
const (
	TypeMel        = "mel_spectrogram"
	TypeCQT        = "cqt"
	TypeLogSTFT    = "log_stft"
	TypeScalogram  = "wavelet_scalogram"
	TypeKurtosis   = "spectral_kurtosis"
	TypeModulation = "modulation_spectrogram"
)

// Result is one rendered spectrogram. When generation failed, Image is
// empty and Error carries the reason; the slot is still present so the
// caller can show a placeholder.
type Result struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Image string `json:"image,omitempty"`
	Error string `json:"error,omitempty"`
}

// Generator produces the heatmap for one spectrogram type
type Generator interface {
	Type() string
	Label() string
	Heatmap(signal *ingest.AudioSignal) (*Heatmap, error)
}

// Engine runs all six generators over a recording. Generation never
// fails as a whole: a generator that errors or panics yields a Result
// with its Error field set and the other five proceed.
type Engine struct {
	renderer   *Renderer
	generators []Generator
}

// NewEngine creates an engine with the six standard generators
func NewEngine() *Engine {
	return &Engine{
		renderer: NewRenderer(),
		generators: []Generator{
			NewMelGenerator(),
			NewCQTGenerator(),
			NewLogSTFTGenerator(),
			NewScalogramGenerator(),
			NewKurtosisGenerator(),
			NewModulationGenerator(),
		},
	}
}

// Generate renders every spectrogram type in canonical order
func (e *Engine) Generate(signal *ingest.AudioSignal) []Result {
	results := make([]Result, len(e.generators))

	var wg sync.WaitGroup
	for i, gen := range e.generators {
		i, gen := i, gen
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = e.runGenerator(gen, signal)
		}()
	}
	wg.Wait()

	return results
}

// runGenerator produces one Result, converting panics into errors
func (e *Engine) runGenerator(gen Generator, signal *ingest.AudioSignal) (res Result) {
	res = Result{Type: gen.Type(), Label: gen.Label()}

	defer func() {
		if r := recover(); r != nil {
			res.Image = ""
			res.Error = fmt.Sprintf("panic: %v", r)
			logging.Error(nil, "Spectrogram generator panicked", logging.Fields{
				"component": "spectrogram_engine",
				"type":      res.Type,
				"panic":     fmt.Sprintf("%v", r),
			})
		}
	}()

	if signal == nil || len(signal.Samples) == 0 {
		res.Error = "no samples"
		return res
	}

	hm, err := gen.Heatmap(signal)
	if err != nil {
		res.Error = err.Error()
		logging.Warn("Spectrogram generation failed", logging.Fields{
			"component": "spectrogram_engine",
			"type":      res.Type,
			"error":     err.Error(),
		})
		return res
	}

	img, err := e.renderer.Render(res.Type, hm)
	if err != nil {
		res.Error = err.Error()
		return res
	}

	res.Image = img
	return res
}

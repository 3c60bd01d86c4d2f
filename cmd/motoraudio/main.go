package main

import (
	"encoding/base64"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/vibrolab/motoraudio/analyzer"
	"github.com/vibrolab/motoraudio/logging"
)

func main() {
	outDir := flag.String("out", ".", "directory for features.json and spectrogram images")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(1)
	}

	if *verbose {
		logging.GetGlobalLogger().SetLevel(logging.DebugLevel)
	}

	path := flag.Arg(0)
	if info, err := os.Stat(path); err != nil {
		fmt.Fprintf(os.Stderr, "cannot read %s: %v\n", path, err)
		os.Exit(1)
	} else if info.Size() > analyzer.MaxFileSize {
		fmt.Fprintf(os.Stderr, "file too large: %d bytes (max %d)\n", info.Size(), analyzer.MaxFileSize)
		os.Exit(1)
	}

	output, err := analyzer.New().AnalyzeFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", *outDir, err)
		os.Exit(1)
	}

	if err := writeResults(*outDir, output); err != nil {
		fmt.Fprintf(os.Stderr, "writing results: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Analyzed %s: %.1fs at %d Hz, %d features, %d spectrograms\n",
		path, output.Duration, output.SampleRate, len(output.Features), countRendered(output))
}

func writeResults(dir string, output *analyzer.AnalysisOutput) error {
	// PNGs go to separate files; strip the inline copies from the JSON
	summary := *output
	summary.Spectrograms = nil

	data, err := json.MarshalIndent(struct {
		*analyzer.AnalysisOutput
		SpectrogramFiles []string `json:"spectrogram_files"`
	}{&summary, spectrogramNames(output)}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(dir, "features.json"), data, 0o644); err != nil {
		return err
	}

	for _, spec := range output.Spectrograms {
		if spec.Error != "" {
			fmt.Fprintf(os.Stderr, "warning: %s failed: %s\n", spec.Label, spec.Error)
			continue
		}
		png, err := base64.StdEncoding.DecodeString(spec.Image)
		if err != nil {
			return fmt.Errorf("decode %s image: %w", spec.Type, err)
		}
		name := filepath.Join(dir, spec.Type+".png")
		if err := os.WriteFile(name, png, 0o644); err != nil {
			return err
		}
	}
	return nil
}

func spectrogramNames(output *analyzer.AnalysisOutput) []string {
	names := make([]string, 0, len(output.Spectrograms))
	for _, spec := range output.Spectrograms {
		if spec.Error == "" {
			names = append(names, spec.Type+".png")
		}
	}
	return names
}

func countRendered(output *analyzer.AnalysisOutput) int {
	n := 0
	for _, spec := range output.Spectrograms {
		if spec.Error == "" {
			n++
		}
	}
	return n
}

func usage() {
	prog := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <recording>\n\n", prog)
	fmt.Fprintf(os.Stderr, "Analyzes a motor sound recording (%s, max 20s)\n", strings.Join(analyzer.AllowedExtensions, ", "))
	fmt.Fprintf(os.Stderr, "and writes features.json plus six spectrogram PNGs.\n\n")
	flag.PrintDefaults()
}

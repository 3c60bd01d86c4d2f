package features

import (
	"fmt"
)

// FeatureMap holds one scalar per named feature. Keys are fixed by
// KeySchema regardless of signal content, so downstream model code can
// rely on the column set.
type FeatureMap map[string]float64

// Group names used by the aggregator and in log output
const (
	GroupTime      = "time_domain"
	GroupFrequency = "frequency_domain"
	GroupCepstral  = "cepstral"
	GroupRhythm    = "rhythm"
)

// KeySchema returns every feature key in canonical order: time domain,
// frequency domain, cepstral, rhythm.
func KeySchema() []string {
	keys := make([]string, 0, 96)

	keys = append(keys,
		"rms_energy_mean", "rms_energy_std",
		"zero_crossing_rate_mean", "zero_crossing_rate_std",
		"peak_amplitude", "crest_factor",
		"mean_amplitude", "std_amplitude",
		"skewness_amplitude", "kurtosis_amplitude",
		"dynamic_range", "silence_ratio",
	)

	for _, name := range []string{
		"spectral_centroid", "spectral_bandwidth", "spectral_contrast",
		"spectral_flatness", "spectral_rolloff", "spectral_flux",
		"spectral_crest", "spectral_slope",
	} {
		keys = append(keys, name+"_mean", name+"_std")
	}

	for i := 1; i <= 13; i++ {
		keys = append(keys, fmt.Sprintf("mfcc_%d_mean", i))
	}
	for i := 1; i <= 13; i++ {
		keys = append(keys, fmt.Sprintf("mfcc_%d_std", i))
	}
	keys = append(keys, "chroma_mean", "chroma_std")
	for i := 1; i <= 12; i++ {
		keys = append(keys, fmt.Sprintf("chroma_%d_mean", i))
	}
	keys = append(keys, "tonnetz_mean", "tonnetz_std")
	for i := 1; i <= 6; i++ {
		keys = append(keys, fmt.Sprintf("tonnetz_%d_mean", i))
	}

	keys = append(keys,
		"tempo", "beat_count",
		"beat_interval_mean", "beat_interval_std", "beat_regularity",
		"onset_count", "onset_interval_mean", "onset_interval_std",
		"onset_density",
	)

	return keys
}

// zeroFill writes 0 for every schema key the map is missing. Extractor
// failures degrade to zeros instead of dropping columns.
func zeroFill(m FeatureMap, keys []string) {
	for _, k := range keys {
		if _, ok := m[k]; !ok {
			m[k] = 0.0
		}
	}
}

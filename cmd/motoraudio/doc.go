// Command motoraudio analyzes a motor sound recording and writes the
// results to disk.
//
// It decodes the recording, extracts the full scalar feature set and
// renders six diagnostic spectrograms (mel, constant-Q, log-STFT, wavelet
// scalogram, spectral kurtosis, modulation).
//
// Usage:
//
//	motoraudio [-out dir] [-v] <recording>
//
// The output directory receives features.json and one PNG per
// spectrogram type.
package main

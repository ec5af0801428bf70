// Package record loads single-channel ECG recordings from WFDB records
// (PhysioNet format, header plus binary signal file) or WAV files.
package record

import (
	"errors"
	"path/filepath"
	"strings"
)

var (
	// ErrMissing is returned when a record or one of its files does not exist.
	ErrMissing = errors.New("record not found")

	// ErrMalformed is returned when a record cannot be parsed.
	ErrMalformed = errors.New("malformed record")

	// ErrChannel is returned when the requested channel is not in the record.
	ErrChannel = errors.New("channel out of range")
)

// Source supplies a finite, positionally indexed signal at a constant
// sample rate.
type Source interface {
	Name() string
	SampleRate() float64
	Samples() []float64
}

// Record is one channel of a loaded recording in physical units.
type Record struct {
	name       string
	sampleRate float64
	units      string
	samples    []float64
}

// New wraps samples as a Record.
func New(name string, sampleRate float64, samples []float64) *Record {
	return &Record{name: name, sampleRate: sampleRate, samples: samples}
}

// Name returns the record name, such as "100".
func (r *Record) Name() string { return r.name }

// SampleRate returns the sampling frequency in Hz.
func (r *Record) SampleRate() float64 { return r.sampleRate }

// Samples returns the signal. The slice is shared, not copied.
func (r *Record) Samples() []float64 { return r.samples }

// Units returns the physical units of the samples, "mV" for most ECG
// records and empty for WAV input.
func (r *Record) Units() string { return r.units }

// Load opens path as a WAV file when it ends in .wav and as a WFDB record
// otherwise. A WFDB path may name the record with or without its .hea or
// .dat extension.
func Load(path string, channel int) (*Record, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".wav":
		return LoadWAV(path, channel)
	case ".hea", ".dat":
		path = strings.TrimSuffix(path, filepath.Ext(path))
	}
	return LoadWFDB(filepath.Dir(path), filepath.Base(path), channel)
}

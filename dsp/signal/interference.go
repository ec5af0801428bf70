package signal

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

// ErrLengthMismatch is returned by [Mix] when the two inputs differ in length.
var ErrLengthMismatch = errors.New("signal length mismatch")

// Generator creates interference aligned to sample 0 of a recording.
type Generator struct {
	cfg core.ProcessorConfig
}

// NewGenerator creates a configured generator. Only the sample rate of the
// configuration is used.
func NewGenerator(opts ...core.ProcessorOption) *Generator {
	return &Generator{cfg: core.ApplyProcessorOptions(opts...)}
}

// Config returns the generator processor configuration.
func (g *Generator) Config() core.ProcessorConfig {
	return g.cfg
}

// InterferenceAt returns amplitude·sin(2π·f0·index/fs).
func InterferenceAt(index int, fs, f0, amplitude float64) float64 {
	return amplitude * math.Sin(2*math.Pi*f0*float64(index)/fs)
}

// Interference returns n samples of hum at f0 Hz. A zero amplitude yields
// all zeros and n == 0 yields an empty slice.
func (g *Generator) Interference(f0, amplitude float64, n int) ([]float64, error) {
	if n < 0 {
		return nil, fmt.Errorf("interference length must be >= 0: %d", n)
	}
	fs := g.cfg.SampleRate
	if fs <= 0 || !core.IsFinite(fs) {
		return nil, fmt.Errorf("interference sample rate must be > 0: %v", fs)
	}
	if !core.IsFinite(f0) || !core.IsFinite(amplitude) {
		return nil, fmt.Errorf("interference parameters must be finite: f0=%v amplitude=%v", f0, amplitude)
	}

	out := make([]float64, n)
	if amplitude == 0 {
		return out, nil
	}
	for i := range out {
		out[i] = InterferenceAt(i, fs, f0, amplitude)
	}
	return out, nil
}

// Mix returns the sample-wise sum of clean and noise. The inputs are left
// untouched.
func Mix(clean, noise []float64) ([]float64, error) {
	if len(clean) != len(noise) {
		return nil, fmt.Errorf("%w: clean has %d samples, noise has %d",
			ErrLengthMismatch, len(clean), len(noise))
	}
	out := make([]float64, len(clean))
	if len(out) > 0 {
		vecmath.AddBlock(out, clean, noise)
	}
	return out, nil
}

// Contaminate adds hum at f0 Hz to clean and returns the mixture.
func (g *Generator) Contaminate(clean []float64, f0, amplitude float64) ([]float64, error) {
	noise, err := g.Interference(f0, amplitude, len(clean))
	if err != nil {
		return nil, err
	}
	return Mix(clean, noise)
}

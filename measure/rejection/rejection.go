package rejection

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/dsp/signal"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	stattime "github.com/cwbudde/algo-ecg/stats/time"
)

const (
	defaultResidual  = 0.01
	defaultAmplitude = 1.0
	defaultSeconds   = 2.0
	floorDB          = -300.0
)

// Config holds measurement parameters. Zero fields take defaults.
type Config struct {
	// Settle is the number of leading output samples discarded before
	// analysis. Defaults to the design's settle length for a 1% residual.
	Settle int
	// Length is the number of samples analysed after settling. Defaults to
	// two seconds.
	Length int
	// Passband is the frequency used to check pass-band gain. Defaults to a
	// quarter of the notch frequency.
	Passband float64
	// Amplitude of the test tones. Defaults to 1.
	Amplitude float64
}

// Result holds one measurement.
//
//nolint:revive
type Result struct {
	Frequency     float64 // notch frequency, Hz
	InputLevel    float64 // tone amplitude before filtering
	OutputLevel   float64 // tone amplitude after filtering and settling
	OutputPeak    float64 // largest absolute output sample after settling
	AttenuationDB float64 // 20·log10(OutputLevel/InputLevel)

	PassbandFrequency float64
	PassbandGainDB    float64

	Settle int
	Length int
}

func normalizeConfig(d design.Design, cfg Config) Config {
	if cfg.Settle <= 0 {
		cfg.Settle = d.SettleSamples(defaultResidual)
	}
	if cfg.Length <= 0 {
		cfg.Length = int(defaultSeconds * d.SampleRate)
	}
	if cfg.Passband <= 0 {
		cfg.Passband = d.Frequency / 4
	}
	if cfg.Amplitude <= 0 {
		cfg.Amplitude = defaultAmplitude
	}
	return cfg
}

// Measure filters a tone at the notch frequency and one at the pass-band
// frequency through d, starting from zero state, and compares tone levels
// before and after.
func Measure(d design.Design, cfg Config) (Result, error) {
	cfg = normalizeConfig(d, cfg)
	if cfg.Passband >= d.SampleRate/2 {
		return Result{}, fmt.Errorf("rejection: pass-band frequency %v Hz not below nyquist", cfg.Passband)
	}

	gen := signal.NewGenerator(core.WithSampleRate(d.SampleRate))

	notchIn, notchOut, err := run(gen, d, cfg, d.Frequency)
	if err != nil {
		return Result{}, err
	}
	passIn, passOut, err := run(gen, d, cfg, cfg.Passband)
	if err != nil {
		return Result{}, err
	}

	inLevel, err := spectrum.ToneAmplitude(notchIn, d.Frequency, d.SampleRate)
	if err != nil {
		return Result{}, err
	}
	outLevel, err := spectrum.ToneAmplitude(notchOut, d.Frequency, d.SampleRate)
	if err != nil {
		return Result{}, err
	}
	passInLevel, err := spectrum.ToneAmplitude(passIn, cfg.Passband, d.SampleRate)
	if err != nil {
		return Result{}, err
	}
	passOutLevel, err := spectrum.ToneAmplitude(passOut, cfg.Passband, d.SampleRate)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Frequency:         d.Frequency,
		InputLevel:        inLevel,
		OutputLevel:       outLevel,
		OutputPeak:        stattime.Peak(notchOut),
		AttenuationDB:     ratioDB(outLevel, inLevel),
		PassbandFrequency: cfg.Passband,
		PassbandGainDB:    ratioDB(passOutLevel, passInLevel),
		Settle:            cfg.Settle,
		Length:            cfg.Length,
	}, nil
}

// run returns the settled input and output segments for one tone.
func run(gen *signal.Generator, d design.Design, cfg Config, freq float64) (in, out []float64, err error) {
	x, err := gen.Interference(freq, cfg.Amplitude, cfg.Settle+cfg.Length)
	if err != nil {
		return nil, nil, fmt.Errorf("rejection: %w", err)
	}
	y, _ := biquad.Step(d.Coefficients, x, biquad.State{})
	return x[cfg.Settle:], y[cfg.Settle:], nil
}

func ratioDB(num, den float64) float64 {
	if num <= 0 || den <= 0 {
		return floorDB
	}
	return math.Max(20*math.Log10(num/den), floorDB)
}

package main

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/dsp/signal"
	"github.com/cwbudde/algo-ecg/dsp/spectrum"
	"github.com/cwbudde/algo-ecg/internal/display"
	"github.com/cwbudde/algo-ecg/internal/player"
	"github.com/cwbudde/algo-ecg/internal/record"
	"github.com/cwbudde/algo-ecg/stats/frequency"
)

// settleResidual is the transient level ignored when measuring an export.
const settleResidual = 0.01

type config struct {
	Record    string
	Dir       string
	Channel   int
	Notch     float64
	Q         float64
	Amplitude float64
	Window    float64
	Chunk     int
	Wrap      string
	AutoScale bool
}

// session is a loaded record with its contaminated copy, the notch designed
// for its sample rate and a player ready to run.
type session struct {
	record *record.Record
	dirty  []float64
	design design.Design
	player *player.Player
	limits display.Limits
}

func recordPath(dir, name string) string {
	if filepath.IsAbs(name) || dir == "" {
		return name
	}
	return filepath.Join(dir, name)
}

func prepare(cfg config) (*session, error) {
	rec, err := record.Load(recordPath(cfg.Dir, cfg.Record), cfg.Channel)
	if err != nil {
		return nil, fmt.Errorf("load record: %w", err)
	}
	return newSession(rec, cfg)
}

func newSession(rec *record.Record, cfg config) (*session, error) {
	gen := signal.NewGenerator(core.WithSampleRate(rec.SampleRate()))
	dirty, err := gen.Contaminate(rec.Samples(), cfg.Notch, cfg.Amplitude)
	if err != nil {
		return nil, fmt.Errorf("add interference: %w", err)
	}

	d, err := design.NewNotch(design.Params{
		Frequency:  cfg.Notch,
		Q:          cfg.Q,
		SampleRate: rec.SampleRate(),
	})
	if err != nil {
		return nil, err
	}

	wrap, err := player.ParseWrapPolicy(cfg.Wrap)
	if err != nil {
		return nil, err
	}
	p, err := player.New(rec.Name(), dirty, d,
		player.WithChunkSize(cfg.Chunk),
		player.WithWindow(cfg.Window),
		player.WithWrapPolicy(wrap))
	if err != nil {
		return nil, err
	}

	limits := display.DefaultLimits
	if cfg.AutoScale {
		limits = display.AutoLimits(dirty)
	}

	return &session{
		record: rec,
		dirty:  dirty,
		design: d,
		player: p,
		limits: limits,
	}, nil
}

func (s *session) duration() float64 {
	return float64(len(s.dirty)) / s.record.SampleRate()
}

type exportReport struct {
	Samples       int
	Scale         float64
	InputLevel    float64
	OutputLevel   float64
	AttenuationDB float64

	// Spectrum summaries of the band around the notch frequency.
	HumBefore frequency.Stats
	HumAfter  frequency.Stats
}

// filterAll runs the notch over the whole contaminated record in one pass,
// from the same initial state the player starts with.
func (s *session) filterAll() []float64 {
	out, _ := biquad.Filter(s.design.Coefficients, s.dirty, s.design.Initial)
	return out
}

func (s *session) export(path string) (exportReport, error) {
	out := s.filterAll()
	scale, err := display.WriteWAV(path, out, int(math.Round(s.record.SampleRate())))
	if err != nil {
		return exportReport{}, err
	}

	rep := exportReport{Samples: len(out), Scale: scale}
	settle := min(s.design.SettleSamples(settleResidual), len(out)/2)
	fs, f0 := s.record.SampleRate(), s.design.Frequency
	if rep.InputLevel, err = spectrum.ToneAmplitude(s.dirty[settle:], f0, fs); err != nil {
		return rep, err
	}
	if rep.OutputLevel, err = spectrum.ToneAmplitude(out[settle:], f0, fs); err != nil {
		return rep, err
	}
	if rep.InputLevel > 0 {
		rep.AttenuationDB = core.LinearToDB(rep.OutputLevel / rep.InputLevel)
	}
	if rep.HumBefore, err = humBand(s.dirty[settle:], fs, f0); err != nil {
		return rep, err
	}
	if rep.HumAfter, err = humBand(out[settle:], fs, f0); err != nil {
		return rep, err
	}
	return rep, nil
}

// humBand summarizes the spectrum of x between f0/2 and 1.5*f0, capped at
// Nyquist.
func humBand(x []float64, fs, f0 float64) (frequency.Stats, error) {
	mag, binHz, err := spectrum.AmplitudeSpectrum(x, fs)
	if err != nil {
		return frequency.Stats{}, err
	}
	return frequency.Band(mag, binHz, f0/2, min(1.5*f0, fs/2)), nil
}

// limitTicks forwards at most n ticks from in and then closes the returned
// channel. n <= 0 returns in unchanged.
func limitTicks(ctx context.Context, in <-chan time.Time, n int) <-chan time.Time {
	if n <= 0 {
		return in
	}
	out := make(chan time.Time)
	go func() {
		defer close(out)
		for range n {
			var t time.Time
			select {
			case t = <-in:
			case <-ctx.Done():
				return
			}
			select {
			case out <- t:
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}

package main

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/internal/display"
	"github.com/cwbudde/algo-ecg/internal/record"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func defaultConfig() config {
	return config{
		Record:    defaultRecord,
		Notch:     defaultNotchHz,
		Q:         defaultQ,
		Amplitude: defaultAmplitude,
		Window:    defaultWindowSecs,
		Chunk:     defaultChunk,
		Wrap:      "carry",
	}
}

func syntheticRecord(n int) *record.Record {
	return record.New("100", 360, testutil.SyntheticECG(360, 72, n))
}

func TestRecordPath(t *testing.T) {
	assert.Equal(t, filepath.Join("mitdb", "100"), recordPath("mitdb", "100"))
	assert.Equal(t, "100", recordPath("", "100"))
	assert.Equal(t, "/data/100.hea", recordPath("mitdb", "/data/100.hea"))
}

func TestNewSession(t *testing.T) {
	rec := syntheticRecord(3600)
	s, err := newSession(rec, defaultConfig())
	require.NoError(t, err)

	assert.Len(t, s.dirty, 3600)
	assert.InDelta(t, 10.0, s.duration(), 1e-12)
	assert.Equal(t, display.DefaultLimits, s.limits)
	assert.Equal(t, defaultChunk, s.player.ChunkSize())
	assert.Equal(t, s.design.Initial, s.player.State())

	// Interference is added on top of the clean samples.
	clean := rec.Samples()
	assert.InDelta(t, clean[0], s.dirty[0], 1e-12)
	assert.NotEqual(t, clean[1], s.dirty[1])
}

func TestNewSessionAutoScale(t *testing.T) {
	cfg := defaultConfig()
	cfg.AutoScale = true
	s, err := newSession(syntheticRecord(3600), cfg)
	require.NoError(t, err)
	assert.Equal(t, display.AutoLimits(s.dirty), s.limits)
}

func TestNewSessionErrors(t *testing.T) {
	cfg := defaultConfig()
	cfg.Notch = 200
	_, err := newSession(syntheticRecord(3600), cfg)
	require.ErrorIs(t, err, design.ErrInvalidDesign)

	cfg = defaultConfig()
	cfg.Wrap = "bounce"
	_, err = newSession(syntheticRecord(3600), cfg)
	require.Error(t, err)

	_, err = newSession(syntheticRecord(4), defaultConfig())
	require.Error(t, err)
}

func TestPrepareMissingRecord(t *testing.T) {
	cfg := defaultConfig()
	cfg.Dir = t.TempDir()
	_, err := prepare(cfg)
	require.ErrorIs(t, err, record.ErrMissing)
}

func TestPlayerMatchesOneShotFilter(t *testing.T) {
	s, err := newSession(syntheticRecord(3600), defaultConfig())
	require.NoError(t, err)
	full := s.filterAll()

	var last []float64
	for range 100 {
		f := s.player.Tick()
		last = f.Filtered[len(f.Filtered)-defaultChunk:]
	}
	idx := s.player.Index()
	assert.Equal(t, 100*defaultChunk, idx)
	assert.InDeltaSlice(t, full[idx-defaultChunk:idx], last, 1e-12)
}

func TestExport(t *testing.T) {
	s, err := newSession(syntheticRecord(3600), defaultConfig())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "filtered.wav")
	rep, err := s.export(path)
	require.NoError(t, err)

	assert.Equal(t, 3600, rep.Samples)
	assert.Greater(t, rep.Scale, 0.0)
	assert.InDelta(t, defaultAmplitude, rep.InputLevel, 0.03)
	assert.Less(t, rep.AttenuationDB, -20.0)
	assert.InDelta(t, defaultNotchHz, rep.HumBefore.Peak, 0.1)
	assert.Less(t, rep.HumAfter.Max, rep.HumBefore.Max/2)

	back, err := record.LoadWAV(path, 0)
	require.NoError(t, err)
	assert.InDelta(t, 360.0, back.SampleRate(), 0)
	assert.Len(t, back.Samples(), 3600)
}

func TestLimitTicks(t *testing.T) {
	in := make(chan time.Time, 10)
	for range 10 {
		in <- time.Now()
	}

	out := limitTicks(context.Background(), in, 3)
	n := 0
	for range out {
		n++
	}
	assert.Equal(t, 3, n)
}

func TestLimitTicksPassThrough(t *testing.T) {
	in := make(chan time.Time)
	assert.Equal(t, (<-chan time.Time)(in), limitTicks(context.Background(), in, 0))
}

func TestLimitTicksCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	out := limitTicks(ctx, make(chan time.Time), 5)
	cancel()

	select {
	case _, ok := <-out:
		assert.False(t, ok)
	case <-time.After(time.Second):
		t.Fatal("limitTicks did not close after cancel")
	}
}

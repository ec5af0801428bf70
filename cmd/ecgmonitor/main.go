// Command ecgmonitor plays an ECG record with synthetic mains interference
// through a streaming notch filter and shows input and output as two
// scrolling strips in the terminal.
//
// Usage:
//
//	ecgmonitor [flags] [record]
//
// The record is a WFDB record name (100, data/100, 100.hea) or a .wav file.
// While running, space pauses and resumes, s saves the paused frame as a
// PNG image, r resets the filter state and q quits.
//
// Examples:
//
//	ecgmonitor 100
//	ecgmonitor -dir mitdb -notch 50 -amplitude 0.3 105
//	ecgmonitor -wrap reset -interval 15ms 100
//	ecgmonitor -export filtered.wav 100
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/cwbudde/algo-ecg/internal/display"
	"github.com/cwbudde/algo-ecg/internal/player"
)

const (
	// CLI defaults
	defaultRecord     = "100"
	defaultNotchHz    = 60.0
	defaultQ          = 35.0
	defaultAmplitude  = 0.15
	defaultWindowSecs = 3.0
	defaultChunk      = 8
	defaultInterval   = 30 * time.Millisecond
	maxArgs           = 1
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	dir := flag.String("dir", ".", "Directory holding WFDB records")
	channel := flag.Int("channel", 0, "Signal channel to play")
	notch := flag.Float64("notch", defaultNotchHz, "Notch and interference frequency in Hz")
	q := flag.Float64("q", defaultQ, "Notch quality factor")
	amplitude := flag.Float64("amplitude", defaultAmplitude, "Interference amplitude in signal units")
	window := flag.Float64("window", defaultWindowSecs, "Displayed window in seconds")
	chunk := flag.Int("chunk", defaultChunk, "Samples advanced per tick")
	interval := flag.Duration("interval", defaultInterval, "Time between ticks")
	wrap := flag.String("wrap", player.WrapCarry.String(), "Filter state on loop: carry or reset")
	ticks := flag.Int("ticks", 0, "Stop after this many ticks (0 runs until quit)")
	auto := flag.Bool("autoscale", false, "Fit the vertical range to the signal instead of the ECG default")
	out := flag.String("out", ".", "Directory for saved images")
	export := flag.String("export", "", "Filter the whole record into this WAV file and exit")
	verbose := flag.Bool("v", false, "Verbose output")
	flag.Parse()

	args := flag.Args()
	if len(args) > maxArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] [record]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		return fmt.Errorf("too many arguments")
	}

	cfg := config{
		Record:    defaultRecord,
		Dir:       *dir,
		Channel:   *channel,
		Notch:     *notch,
		Q:         *q,
		Amplitude: *amplitude,
		Window:    *window,
		Chunk:     *chunk,
		Wrap:      *wrap,
		AutoScale: *auto,
	}
	if len(args) == 1 {
		cfg.Record = args[0]
	}

	sess, err := prepare(cfg)
	if err != nil {
		return err
	}
	if *verbose {
		log.Printf("Record: %s, %d samples at %.0f Hz (%.1f s)",
			sess.record.Name(), len(sess.record.Samples()), sess.record.SampleRate(), sess.duration())
		log.Printf("Notch: %.2f Hz, Q %.1f, bandwidth %.2f Hz", sess.design.Frequency, sess.design.Q, sess.design.Bandwidth())
		log.Printf("Coefficients: b=%v a=%v zi=%v", sess.design.Coefficients.B(), sess.design.Coefficients.A(), sess.design.Initial)
	}

	if *export != "" {
		rep, err := sess.export(*export)
		if err != nil {
			return err
		}
		log.Printf("Wrote %s (%d samples, scale %.1f counts/%s)", *export, rep.Samples, rep.Scale, sess.record.Units())
		log.Printf("%.1f Hz level: %.4f in, %.4f out (%.1f dB)", cfg.Notch, rep.InputLevel, rep.OutputLevel, rep.AttenuationDB)
		if *verbose {
			log.Printf("Hum band peak: %.2f Hz (%.1f dB) in, %.2f Hz (%.1f dB) out",
				rep.HumBefore.Peak, rep.HumBefore.PeakDB, rep.HumAfter.Peak, rep.HumAfter.PeakDB)
		}
		return nil
	}

	return monitor(sess, *interval, *ticks, *out, *verbose)
}

func monitor(sess *session, interval time.Duration, maxTicks int, outDir string, verbose bool) error {
	if interval <= 0 {
		return fmt.Errorf("tick interval must be > 0: %v", interval)
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdin := int(os.Stdin.Fd())
	restore, err := display.RawMode(stdin)
	if err != nil {
		return fmt.Errorf("raw mode: %w", err)
	}
	defer func() { _ = restore() }()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	term := display.NewTerminal(os.Stdout, int(os.Stdout.Fd()),
		display.WithLimits(sess.limits),
		display.WithTitle("ECG monitor"))
	saver := display.PNGSaver{Dir: outDir, Limits: sess.limits}

	err = player.Run(ctx, sess.player, limitTicks(ctx, ticker.C, maxTicks), display.Keys(ctx, os.Stdin), term, saver)

	if verbose {
		f := sess.player.Frame()
		log.Printf("Stopped at %.2f s after %d ticks, %d wraps", f.Seconds(), f.Ticks, f.Wraps)
		if abs, aerr := filepath.Abs(outDir); aerr == nil {
			log.Printf("Images: %s", abs)
		}
	}
	return err
}

// Command notchinfo prints the coefficients, start-up state and measured
// rejection of IIR notch filters.
//
// Usage:
//
//	notchinfo [flags] [frequency ...]
//
// Without arguments it describes a 60 Hz notch.
//
// Examples:
//
//	notchinfo 50 60
//	notchinfo -fs 500 -q 30 50
//	notchinfo -verify 60
//	notchinfo -response 60
//	notchinfo -i
package main

import (
	"flag"
	"fmt"
	"io"
	"math/cmplx"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/design"
	"github.com/cwbudde/algo-ecg/measure/rejection"
)

const (
	defaultFrequency  = 60.0
	defaultQ          = 35.0
	defaultSampleRate = 360.0
	settleResidual    = 0.01
)

func main() {
	fs := flag.Float64("fs", defaultSampleRate, "sample rate in Hz")
	q := flag.Float64("q", defaultQ, "quality factor")
	verify := flag.Bool("verify", false, "measure rejection by filtering test tones")
	response := flag.Bool("response", false, "print the magnitude response around each notch")
	interactive := flag.Bool("i", false, "read designs interactively as \"f0 [q [fs]]\"")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: notchinfo [flags] [frequency ...]\n\n")
		fmt.Fprintf(os.Stderr, "Prints IIR notch designs: coefficients, initial state, poles and bandwidth.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  notchinfo 50 60\n")
		fmt.Fprintf(os.Stderr, "  notchinfo -fs 500 -q 30 -verify 50\n")
		fmt.Fprintf(os.Stderr, "  notchinfo -i\n")
	}
	flag.Parse()

	defaults := design.Params{Frequency: defaultFrequency, Q: *q, SampleRate: *fs}

	if *interactive {
		if err := repl(defaults, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	params, err := resolveParams(flag.Args(), defaults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	designs := make([]design.Design, 0, len(params))
	for _, p := range params {
		d, err := design.NewNotch(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			continue
		}
		designs = append(designs, d)
	}
	if len(designs) == 0 {
		fmt.Fprintf(os.Stderr, "error: no valid notch designs\n")
		os.Exit(1)
	}

	if err := report(os.Stdout, designs, *verify, *response); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// resolveParams turns frequency arguments into design parameters that
// share Q and sample rate from defaults. No arguments yields defaults.
func resolveParams(args []string, defaults design.Params) ([]design.Params, error) {
	if len(args) == 0 {
		return []design.Params{defaults}, nil
	}
	out := make([]design.Params, 0, len(args))
	for _, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("frequency %q: %w", a, err)
		}
		p := defaults
		p.Frequency = f
		out = append(out, p)
	}
	return out, nil
}

func report(w io.Writer, designs []design.Design, verify, response bool) error {
	if err := printDesigns(w, designs); err != nil {
		return err
	}
	if verify {
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := printVerification(w, designs); err != nil {
			return err
		}
	}
	if response {
		for _, d := range designs {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
			if err := printResponse(w, d); err != nil {
				return err
			}
		}
	}
	return nil
}

func printDesigns(w io.Writer, designs []design.Design) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "f0 [Hz]\tQ\tfs [Hz]\tb0\tb1\tb2\ta1\ta2\tzi\tPole r\tBW [Hz]\tSettle [smp]\n")
	fmt.Fprintf(tw, "-------\t-\t-------\t--\t--\t--\t--\t--\t--\t------\t-------\t------------\n")
	for _, d := range designs {
		c := d.Coefficients
		fmt.Fprintf(tw, "%g\t%g\t%g\t%.10f\t%.10f\t%.10f\t%.10f\t%.10f\t[%.8f %.8f]\t%.6f\t%.4f\t%d\n",
			d.Frequency, d.Q, d.SampleRate,
			c.B0, c.B1, c.B2, c.A1, c.A2,
			d.Initial[0], d.Initial[1],
			c.PoleRadius(),
			d.Bandwidth(),
			d.SettleSamples(settleResidual),
		)
	}
	return tw.Flush()
}

func printVerification(w io.Writer, designs []design.Design) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "f0 [Hz]\tIn\tOut\tPeak\tRejection [dB]\tPassband [Hz]\tGain [dB]\n")
	fmt.Fprintf(tw, "-------\t--\t---\t----\t--------------\t-------------\t---------\n")
	for _, d := range designs {
		r, err := rejection.Measure(d, rejection.Config{})
		if err != nil {
			return fmt.Errorf("verify %g Hz: %w", d.Frequency, err)
		}
		fmt.Fprintf(tw, "%g\t%.4f\t%.6f\t%.6f\t%.2f\t%g\t%.4f\n",
			r.Frequency, r.InputLevel, r.OutputLevel, r.OutputPeak,
			r.AttenuationDB, r.PassbandFrequency, r.PassbandGainDB)
	}
	return tw.Flush()
}

// responsePoints are offsets from the notch frequency in bandwidths.
var responsePoints = []float64{-4, -2, -1, -0.5, -0.25, 0, 0.25, 0.5, 1, 2, 4}

func printResponse(w io.Writer, d design.Design) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "f [Hz]\t|H| [dB]\tPhase [rad]\n")
	fmt.Fprintf(tw, "------\t--------\t-----------\n")
	bw := d.Bandwidth()
	for _, k := range responsePoints {
		f := d.Frequency + k*bw
		if f <= 0 || f >= d.SampleRate/2 {
			continue
		}
		h := d.Coefficients.Response(f, d.SampleRate)
		fmt.Fprintf(tw, "%.3f\t%.2f\t%+.4f\n", f, core.LinearToDB(cmplx.Abs(h)), cmplx.Phase(h))
	}
	return tw.Flush()
}

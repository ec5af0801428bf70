package design

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

var (
	// ErrInvalidDesign is returned for parameters that cannot produce a
	// valid notch, such as a center frequency at or above Nyquist.
	ErrInvalidDesign = errors.New("invalid notch design")

	// ErrUnstable is returned when a filter has a pole on or outside the
	// unit circle, so no steady state exists.
	ErrUnstable = errors.New("filter is not stable")
)

// Notch designs a second-order notch rejecting f0 (Hz) at sample rate fs.
//
// The analog prototype H(s) = (s² + w0²) / (s² + (w0/q)s + w0²) has a
// -3 dB rejection bandwidth of f0/q. Its bilinear-transform image, with
// the bandwidth prewarped through tan, is
//
//	b = g·[1, -2cos(w0), 1]
//	a = [1, -2g·cos(w0), 2g-1],  g = 1/(1+tan(w0/(2q)))
//
// where w0 = 2π·f0/fs. Parameters are never clamped: f0 must lie strictly
// inside (0, fs/2) and q must be positive.
func Notch(f0, q, fs float64) (biquad.Coefficients, error) {
	if err := validate(f0, q, fs); err != nil {
		return biquad.Coefficients{}, err
	}

	w0 := 2 * math.Pi * f0 / fs
	bw := w0 / q
	beta := math.Tan(bw / 2)
	gain := 1 / (1 + beta)
	cw := math.Cos(w0)

	return biquad.Coefficients{
		B0: gain,
		B1: -2 * gain * cw,
		B2: gain,
		A1: -2 * gain * cw,
		A2: 2*gain - 1,
	}, nil
}

func validate(f0, q, fs float64) error {
	if fs <= 0 || !core.IsFinite(fs) {
		return fmt.Errorf("%w: sample rate must be > 0: %v", ErrInvalidDesign, fs)
	}
	nyquist := fs / 2
	if f0 <= 0 || f0 >= nyquist || !core.IsFinite(f0) {
		return fmt.Errorf("%w: notch frequency %v Hz must be in (0, %v) for fs=%v Hz",
			ErrInvalidDesign, f0, nyquist, fs)
	}
	if q <= 0 || !core.IsFinite(q) {
		return fmt.Errorf("%w: quality factor must be > 0: %v", ErrInvalidDesign, q)
	}
	return nil
}

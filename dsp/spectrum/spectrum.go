package spectrum

import (
	"errors"
	"fmt"
	"math/bits"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-ecg/dsp/window"
)

var errTooShort = errors.New("spectrum: need at least 2 samples")

// ToneAmplitude estimates the peak amplitude of a sinusoid at frequency Hz
// in x. The block is Hann-windowed so that tones which do not complete an
// integer number of cycles leak little into the estimate.
func ToneAmplitude(x []float64, frequency, sampleRate float64) (float64, error) {
	if len(x) < 2 {
		return 0, errTooShort
	}
	w, err := window.Hann(len(x), window.WithPeriodic())
	if err != nil {
		return 0, err
	}
	tapered, err := window.ApplyCoefficients(x, w)
	if err != nil {
		return 0, err
	}

	g, err := NewGoertzel(frequency, sampleRate)
	if err != nil {
		return 0, err
	}
	g.ProcessBlock(tapered)

	return 2 * g.Magnitude() / vecmath.Sum(w), nil
}

// AmplitudeSpectrum returns the single-sided, Hann-windowed amplitude
// spectrum of x and the bin spacing in Hz. x is zero-padded to the next
// power of two; a sinusoid of amplitude A centered on a bin reads A.
func AmplitudeSpectrum(x []float64, sampleRate float64) ([]float64, float64, error) {
	if len(x) < 2 {
		return nil, 0, errTooShort
	}
	if sampleRate <= 0 {
		return nil, 0, fmt.Errorf("spectrum: sample rate must be > 0: %v", sampleRate)
	}

	w, err := window.Hann(len(x), window.WithPeriodic())
	if err != nil {
		return nil, 0, err
	}
	tapered, err := window.ApplyCoefficients(x, w)
	if err != nil {
		return nil, 0, err
	}

	fftSize := nextPow2(len(x))
	in := make([]complex128, fftSize)
	for i, v := range tapered {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, 0, fmt.Errorf("spectrum: fft plan: %w", err)
	}
	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, 0, fmt.Errorf("spectrum: fft: %w", err)
	}

	half := out[:fftSize/2+1]
	mag := Magnitude(half)

	scale := 2 / vecmath.Sum(w)
	vecmath.ScaleBlock(mag, mag, scale)
	mag[0] /= 2
	mag[len(mag)-1] /= 2

	return mag, sampleRate / float64(fftSize), nil
}

// PeakBin returns the index of the largest value in mag within the bins
// that cover [lo, hi] Hz.
func PeakBin(mag []float64, binHz, lo, hi float64) int {
	if len(mag) == 0 || binHz <= 0 {
		return -1
	}
	first := max(int(lo/binHz), 0)
	last := min(int(hi/binHz+0.5), len(mag)-1)
	best := -1
	for k := first; k <= last; k++ {
		if best < 0 || mag[k] > mag[best] {
			best = k
		}
	}
	return best
}

// Magnitude returns |X[k]| for each complex spectrum bin.
func Magnitude(in []complex128) []float64 {
	if len(in) == 0 {
		return nil
	}

	out := make([]float64, len(in))
	re := make([]float64, len(in))
	im := make([]float64, len(in))
	for i, c := range in {
		re[i] = real(c)
		im[i] = imag(c)
	}

	vecmath.Magnitude(out, re, im)
	return out
}

func nextPow2(n int) int {
	if n <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(n-1))
}

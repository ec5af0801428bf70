// Package time computes the time-domain statistics used to scale plots and
// report residual hum.
package time

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Stats summarizes one block of samples.
type Stats struct {
	Length int
	Mean   float64
	RMS    float64
	Min    float64
	Max    float64
	Peak   float64 // max(|Min|, |Max|)
	PeakDB float64 // 20·log10(Peak), -Inf for silence
}

// Calculate returns the statistics of signal. An empty signal yields a
// zero Stats with PeakDB = -Inf.
func Calculate(signal []float64) Stats {
	if len(signal) == 0 {
		return Stats{PeakDB: math.Inf(-1)}
	}
	lo, hi := Extent(signal)
	peak := Peak(signal)
	return Stats{
		Length: len(signal),
		Mean:   vecmath.Sum(signal) / float64(len(signal)),
		RMS:    RMS(signal),
		Min:    lo,
		Max:    hi,
		Peak:   peak,
		PeakDB: ampTodB(peak),
	}
}

// RMS returns the root mean square of signal, 0 when empty.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(signal, signal) / float64(len(signal)))
}

// Peak returns the largest absolute sample value, 0 when empty.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	return vecmath.MaxAbs(signal)
}

// Extent returns the smallest and largest sample. Both are 0 when signal
// is empty.
func Extent(signal []float64) (lo, hi float64) {
	if len(signal) == 0 {
		return 0, 0
	}
	lo, hi = signal[0], signal[0]
	for _, v := range signal[1:] {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	return lo, hi
}

func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(a)
}

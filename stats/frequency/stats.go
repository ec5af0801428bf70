package frequency

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// rolloffFraction is the energy share below [Stats.Rolloff].
const rolloffFraction = 0.85

// Stats summarizes a single-sided amplitude spectrum, such as the one
// returned by spectrum.AmplitudeSpectrum.
type Stats struct {
	BinCount int
	BinHz    float64 // spacing between bins

	Max    float64 // largest bin magnitude
	MaxBin int
	Peak   float64 // frequency of MaxBin, Hz
	PeakDB float64 // Max in dB re 1

	Energy float64 // sum of squared magnitudes

	// Spectral shape descriptors
	Centroid  float64 // spectral centroid (Hz)
	Spread    float64 // spectral spread (Hz)
	Rolloff   float64 // frequency below which 85% energy lies (Hz)
	Bandwidth float64 // 3 dB bandwidth around peak (Hz)
}

func toDB(v float64) float64 {
	if v <= 0 {
		return math.Inf(-1)
	}
	return 20 * math.Log10(v)
}

// Calculate computes statistics over the whole of magnitude. Bin i is at
// i*binHz Hz.
func Calculate(magnitude []float64, binHz float64) Stats {
	return stats(magnitude, binHz, 0)
}

// Band computes statistics over the bins covering [lo, hi] Hz only.
// Frequencies in the result stay absolute.
func Band(magnitude []float64, binHz, lo, hi float64) Stats {
	if binHz <= 0 || hi < lo || len(magnitude) == 0 {
		return Stats{PeakDB: math.Inf(-1)}
	}
	first := max(int(math.Ceil(lo/binHz)), 0)
	last := min(int(math.Floor(hi/binHz)), len(magnitude)-1)
	if first > last {
		return Stats{BinHz: binHz, PeakDB: math.Inf(-1)}
	}
	return stats(magnitude[first:last+1], binHz, first)
}

func stats(magnitude []float64, binHz float64, offset int) Stats {
	s := Stats{BinCount: len(magnitude), BinHz: binHz, PeakDB: math.Inf(-1)}
	if len(magnitude) == 0 || binHz <= 0 {
		return s
	}

	freq := func(i int) float64 { return float64(i+offset) * binHz }

	s.MaxBin = 0
	s.Max = magnitude[0]
	for i, v := range magnitude {
		if v > s.Max {
			s.Max = v
			s.MaxBin = i
		}
	}
	s.MaxBin += offset
	s.Peak = float64(s.MaxBin) * binHz
	s.PeakDB = toDB(s.Max)

	sum := vecmath.Sum(magnitude)
	s.Energy = vecmath.DotProduct(magnitude, magnitude)
	if sum == 0 {
		return s
	}

	weighted := 0.0
	for i, v := range magnitude {
		weighted += freq(i) * v
	}
	s.Centroid = weighted / sum

	sq := 0.0
	for i, v := range magnitude {
		d := freq(i) - s.Centroid
		sq += d * d * v
	}
	s.Spread = math.Sqrt(sq / sum)

	s.Rolloff = rolloff(magnitude, freq, rolloffFraction*s.Energy)
	s.Bandwidth = bandwidth(magnitude, freq, s.MaxBin-offset)
	return s
}

func rolloff(magnitude []float64, freq func(int) float64, threshold float64) float64 {
	cum := 0.0
	for i, v := range magnitude {
		cum += v * v
		if cum >= threshold {
			return freq(i)
		}
	}
	return freq(len(magnitude) - 1)
}

// bandwidth locates the -3 dB points on both sides of the peak, with linear
// interpolation between bins.
func bandwidth(magnitude []float64, freq func(int) float64, peak int) float64 {
	n := len(magnitude)
	threshold := magnitude[peak] / math.Sqrt2
	if threshold == 0 {
		return 0
	}

	lower := freq(0)
	for i := peak; i >= 1; i-- {
		if magnitude[i-1] <= threshold && magnitude[i] > threshold {
			lower = interpFreq(freq(i-1), freq(i), magnitude[i-1], magnitude[i], threshold)
			break
		}
	}

	upper := freq(n - 1)
	for i := peak; i < n-1; i++ {
		if magnitude[i+1] <= threshold && magnitude[i] > threshold {
			upper = interpFreq(freq(i), freq(i+1), magnitude[i], magnitude[i+1], threshold)
			break
		}
	}

	return max(upper-lower, 0)
}

func interpFreq(fLow, fHigh, magLow, magHigh, threshold float64) float64 {
	denom := magHigh - magLow
	if denom == 0 {
		return (fLow + fHigh) / 2
	}
	t := (threshold - magLow) / denom
	return fLow + t*(fHigh-fLow)
}

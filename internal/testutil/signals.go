package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// SyntheticECG builds a crude lead-II-like trace in mV: a baseline of
// -0.15 with P, QRS and T bumps repeating at bpm beats per minute.
func SyntheticECG(sampleRate, bpm float64, length int) []float64 {
	type wave struct{ at, width, height float64 }
	waves := []wave{
		{at: 0.20, width: 0.025, height: 0.15}, // P
		{at: 0.36, width: 0.010, height: -0.1}, // Q
		{at: 0.38, width: 0.012, height: 1.2},  // R
		{at: 0.40, width: 0.010, height: -0.25},
		{at: 0.62, width: 0.040, height: 0.3}, // T
	}
	period := 60 / bpm

	out := make([]float64, length)
	for i := range out {
		t := math.Mod(float64(i)/sampleRate, period) / period
		v := -0.15
		for _, w := range waves {
			d := (t - w.at) * period
			v += w.height * math.Exp(-d*d/(2*w.width*w.width))
		}
		out[i] = v
	}
	return out
}

// Partition splits n into consecutive chunk sizes in [0, maxChunk] that sum
// to n. Zero-length chunks are included on purpose.
func Partition(seed int64, n, maxChunk int) []int {
	rng := rand.New(rand.NewSource(seed))
	var sizes []int
	for left := n; left > 0; {
		size := min(rng.Intn(maxChunk+1), left)
		sizes = append(sizes, size)
		left -= size
	}
	return sizes
}

// FixedPartition splits n into chunks of size, the last one shorter.
func FixedPartition(n, size int) []int {
	var sizes []int
	for left := n; left > 0; left -= size {
		sizes = append(sizes, min(size, left))
	}
	return sizes
}

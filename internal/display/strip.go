package display

import (
	"github.com/cwbudde/algo-ecg/dsp/core"
	stattime "github.com/cwbudde/algo-ecg/stats/time"
)

// Limits is the vertical range of a plot in signal units.
type Limits struct {
	Min, Max float64
}

// DefaultLimits frames a typical lead-II trace in mV with half a millivolt
// of headroom on both sides.
var DefaultLimits = Limits{Min: -1.0, Max: 1.5}

// AutoLimits returns the extent of both traces with 10% padding. Flat
// input falls back to DefaultLimits.
func AutoLimits(traces ...[]float64) Limits {
	first := true
	var lim Limits
	for _, tr := range traces {
		if len(tr) == 0 {
			continue
		}
		lo, hi := stattime.Extent(tr)
		if first {
			lim = Limits{Min: lo, Max: hi}
			first = false
			continue
		}
		lim.Min = min(lim.Min, lo)
		lim.Max = max(lim.Max, hi)
	}
	if first || core.NearlyEqual(lim.Min, lim.Max, 0) {
		return DefaultLimits
	}
	pad := 0.1 * (lim.Max - lim.Min)
	return Limits{Min: lim.Min - pad, Max: lim.Max + pad}
}

// row maps v to a row in [0, rows), row 0 at the top. Values outside the
// limits are clamped to the edges.
func (l Limits) row(v float64, rows int) int {
	if rows <= 1 || l.Max <= l.Min {
		return 0
	}
	frac := core.Clamp((l.Max-v)/(l.Max-l.Min), 0, 1)
	return int(frac*float64(rows-1) + 0.5)
}

// columns reduces samples to cols buckets and returns the min and max of
// each, so a peak narrower than one column still shows.
func columns(samples []float64, cols int) (lo, hi []float64) {
	if cols <= 0 || len(samples) == 0 {
		return nil, nil
	}
	lo = make([]float64, cols)
	hi = make([]float64, cols)
	n := len(samples)
	for c := range cols {
		start := c * n / cols
		end := min(max((c+1)*n/cols, start+1), n)
		lo[c], hi[c] = stattime.Extent(samples[start:end])
	}
	return lo, hi
}

// strip draws samples into a rows x cols grid of runes.
func strip(samples []float64, rows, cols int, lim Limits, mark rune) [][]rune {
	grid := make([][]rune, rows)
	for r := range grid {
		grid[r] = make([]rune, cols)
		for c := range grid[r] {
			grid[r][c] = ' '
		}
	}
	if rows == 0 {
		return grid
	}
	if z := lim.row(0, rows); lim.Min < 0 && lim.Max > 0 {
		for c := range cols {
			grid[z][c] = '·'
		}
	}

	lo, hi := columns(samples, cols)
	prev := -1
	for c := range lo {
		top := lim.row(hi[c], rows)
		bottom := lim.row(lo[c], rows)
		// Join to the previous column so steep edges stay connected.
		if prev >= 0 {
			top = min(top, prev)
			bottom = max(bottom, prev)
		}
		for r := top; r <= bottom; r++ {
			grid[r][c] = mark
		}
		prev = lim.row((hi[c]+lo[c])/2, rows)
	}
	return grid
}

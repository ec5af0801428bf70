package buffer

// Rolling is a fixed-length window of the most recent samples. New samples
// enter at the end and the oldest leave at the front. A new window holds
// zeros.
type Rolling struct {
	samples []float64
}

// NewRolling returns a zero-filled window of the given length.
func NewRolling(length int) *Rolling {
	if length < 0 {
		length = 0
	}
	return &Rolling{samples: make([]float64, length)}
}

// Push shifts the window left by len(chunk) and copies chunk into the
// freed tail. When chunk is longer than the window only its last Len()
// samples are kept.
func (r *Rolling) Push(chunk []float64) {
	n := len(r.samples)
	k := len(chunk)
	switch {
	case k == 0 || n == 0:
		return
	case k >= n:
		copy(r.samples, chunk[k-n:])
	default:
		copy(r.samples, r.samples[k:])
		copy(r.samples[n-k:], chunk)
	}
}

// Samples returns the window, oldest first. The slice is owned by r and is
// overwritten by the next Push; use Copy to keep it.
func (r *Rolling) Samples() []float64 {
	return r.samples
}

// Len returns the window length.
func (r *Rolling) Len() int {
	return len(r.samples)
}

// Zero clears the window.
func (r *Rolling) Zero() {
	clear(r.samples)
}

// Copy returns a snapshot of the window.
func (r *Rolling) Copy() []float64 {
	s := make([]float64, len(r.samples))
	copy(s, r.samples)
	return s
}

package biquad

// Step filters chunk starting from the delay line in and returns the
// filtered samples together with the state to feed into the next call.
//
// Step is pure: chunk is not modified and no state is kept between calls.
// Feeding each returned state into the next call over consecutive chunks
// produces the same output as a single call over their concatenation,
// whatever the chunk sizes. An empty chunk yields an empty output and
// returns in unchanged.
func Step(c Coefficients, chunk []float64, in State) ([]float64, State) {
	out := make([]float64, len(chunk))
	return out, StepInto(c, out, chunk, in)
}

// StepInto is the allocation-free form of [Step]. It writes len(chunk)
// outputs to dst and returns the next state. dst may alias chunk.
func StepInto(c Coefficients, dst, chunk []float64, in State) State {
	n := len(chunk)
	if n == 0 {
		return in
	}
	if len(dst) < n {
		panic("biquad: dst shorter than chunk")
	}

	b0, b1, b2 := c.B0, c.B1, c.B2
	a1, a2 := c.A1, c.A2
	d0, d1 := in[0], in[1]

	// 2x unrolled; the recurrence per sample is identical to ProcessSample
	// so the result does not depend on how a signal is split.
	i := 0
	for ; i+1 < n; i += 2 {
		x0 := chunk[i]
		y0 := b0*x0 + d0
		d0n := b1*x0 - a1*y0 + d1
		d1n := b2*x0 - a2*y0

		x1 := chunk[i+1]
		y1 := b0*x1 + d0n
		d0 = b1*x1 - a1*y1 + d1n
		d1 = b2*x1 - a2*y1

		dst[i] = y0
		dst[i+1] = y1
	}

	if i < n {
		x := chunk[i]
		y := b0*x + d0
		d0 = b1*x - a1*y + d1
		d1 = b2*x - a2*y
		dst[i] = y
	}

	return State{d0, d1}
}

// Filter runs c over the whole of x starting from zi. It is the one-shot
// reference that chunked calls to [Step] reproduce.
func Filter(c Coefficients, x []float64, zi State) ([]float64, State) {
	return Step(c, x, zi)
}

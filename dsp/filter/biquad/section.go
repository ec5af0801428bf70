package biquad

// Coefficients holds the transfer function coefficients of one second-order
// section. a0 is normalized to 1 and not stored.
//
// The sign convention follows Direct Form II Transposed:
//
//	y  = B0*x + d0
//	d0 = B1*x - A1*y + d1
//	d1 = B2*x - A2*y
type Coefficients struct {
	B0, B1, B2 float64 // feedforward (numerator)
	A1, A2     float64 // feedback (denominator)
}

// B returns the feed-forward coefficients [b0, b1, b2].
func (c Coefficients) B() [3]float64 {
	return [3]float64{c.B0, c.B1, c.B2}
}

// A returns the feedback coefficients [1, a1, a2].
func (c Coefficients) A() [3]float64 {
	return [3]float64{1, c.A1, c.A2}
}

// State is the transposed direct-form delay line [d0, d1] of a section.
// It has max(len(a), len(b)) - 1 = 2 entries and is copied by value.
type State [2]float64

// Scale returns the state multiplied by k. A unit-step steady state scaled
// by the first input sample gives the steady state for that level.
func (s State) Scale(k float64) State {
	return State{s[0] * k, s[1] * k}
}

// Section is a single biquad filter with coefficients and internal state.
// It wraps the state-passing [Step] for callers that prefer an object.
// A Section must not be used from more than one goroutine at a time.
type Section struct {
	Coefficients

	state State
}

// NewSection returns a Section initialized with the given coefficients
// and zero state.
func NewSection(c Coefficients) *Section {
	return &Section{Coefficients: c}
}

// NewSectionWithState returns a Section whose delay line starts at st.
func NewSectionWithState(c Coefficients, st State) *Section {
	return &Section{Coefficients: c, state: st}
}

// ProcessSample filters one input sample and returns the output.
func (s *Section) ProcessSample(x float64) float64 {
	y := s.B0*x + s.state[0]
	s.state[0] = s.B1*x - s.A1*y + s.state[1]
	s.state[1] = s.B2*x - s.A2*y

	return y
}

// ProcessBlock filters a block of samples in-place. Zero-alloc.
func (s *Section) ProcessBlock(buf []float64) {
	s.state = StepInto(s.Coefficients, buf, buf, s.state)
}

// ProcessBlockTo filters src into dst. dst must be at least as long as src.
// Zero-alloc.
func (s *Section) ProcessBlockTo(dst, src []float64) {
	s.state = StepInto(s.Coefficients, dst, src, s.state)
}

// Reset clears the delay line to zero.
func (s *Section) Reset() {
	s.state = State{}
}

// State returns the current delay-line state.
func (s *Section) State() State {
	return s.state
}

// SetState restores a previously saved delay-line state.
func (s *Section) SetState(state State) {
	s.state = state
}

// Package biquad provides the streaming runtime for second-order IIR
// filters.
//
// [Step] is the core: a pure, state-passing Direct Form II Transposed
// filter. Callers thread the returned [State] into the next call, which
// makes chunked processing produce exactly the output of one pass over the
// whole signal. [Section] wraps the same recurrence for callers that want
// an object holding its own state.
//
// Coefficient design lives in dsp/filter/design.
package biquad

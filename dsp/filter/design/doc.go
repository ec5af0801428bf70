// Package design computes coefficients and start-up state for the
// second-order IIR notch used to strip power-line hum from ECG signals.
//
// [Notch] maps an analog band-reject prototype through the bilinear
// transform. [InitialState] solves for the delay-line contents of a filter
// that has been running on a constant input, so streaming can start without
// a transient. Both feed dsp/filter/biquad.
package design

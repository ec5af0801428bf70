// Package rejection measures how well a notch design removes its target
// tone and how little it disturbs the rest of the band.
//
// Unlike the analytic response in dsp/filter/biquad, the measurement runs
// the streaming engine on synthesized tones from zero state, so it also
// accounts for the start-up transient.
package rejection

// Package signal synthesizes power-line interference and mixes it into a
// clean recording.
//
// Interference is a pure sinusoid whose phase is tied to the absolute
// sample index, so any sample can be regenerated without producing the ones
// before it.
package signal

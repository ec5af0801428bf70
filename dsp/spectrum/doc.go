// Package spectrum measures how much of a tone survives in a filtered
// signal.
//
// [Goertzel] evaluates a single DFT term, which is all that is needed to
// track residual hum. [AmplitudeSpectrum] computes the full single-sided
// spectrum with algo-fft for inspection tools.
package spectrum

// Package frequency provides summary statistics of amplitude spectra: the
// peak, spectral centroid and spread, energy rolloff and 3 dB bandwidth.
// [Band] restricts the summary to a frequency range, which is how residual
// mains hum is located in an ECG spectrum.
package frequency

// Package display renders player frames: a live two-strip chart on a
// terminal, still images in PNG and filtered signals in WAV.
package display

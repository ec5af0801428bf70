// Package buffer provides the fixed-length rolling window that backs the
// raw and filtered traces on screen.
package buffer

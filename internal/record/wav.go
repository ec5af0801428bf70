package record

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-audio/wav"
)

// LoadWAV reads channel of a PCM WAV file. Samples are scaled to [-1, 1)
// by the file's bit depth.
func LoadWAV(path string, channel int) (*Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, openErr(path, err)
	}
	defer f.Close()

	dec := wav.NewDecoder(f)
	if !dec.IsValidFile() {
		return nil, fmt.Errorf("%w: invalid WAV file: %s", ErrMalformed, path)
	}
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrMalformed, path, err)
	}

	format := dec.Format()
	channels := format.NumChannels
	if channels <= 0 || format.SampleRate <= 0 {
		return nil, fmt.Errorf("%w: %s: bad format %d channels at %d Hz",
			ErrMalformed, path, channels, format.SampleRate)
	}
	if channel < 0 || channel >= channels {
		return nil, fmt.Errorf("%w: %s has %d channels, asked for %d",
			ErrChannel, path, channels, channel)
	}

	bitDepth := int(dec.BitDepth)
	if bitDepth <= 0 || bitDepth > 32 {
		return nil, fmt.Errorf("%w: %s: bit depth %d", ErrMalformed, path, bitDepth)
	}
	scale := 1 / float64(int64(1)<<(bitDepth-1))
	// 8-bit WAV data is unsigned.
	offset := 0
	if bitDepth == 8 {
		offset = 128
	}

	n := len(buf.Data) / channels
	samples := make([]float64, n)
	for i := range samples {
		samples[i] = float64(buf.Data[i*channels+channel]-offset) * scale
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return &Record{
		name:       name,
		sampleRate: float64(format.SampleRate),
		samples:    samples,
	}, nil
}

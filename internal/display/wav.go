package display

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	stattime "github.com/cwbudde/algo-ecg/stats/time"
)

const (
	wavBitDepth   = 16
	wavPCM        = 1
	wavFullScale  = 32767
	wavMonoLayout = 1
)

// WriteWAV writes samples as 16-bit mono PCM at sampleRate Hz, scaled so
// the largest magnitude maps to full scale. It returns the scale factor,
// in counts per signal unit, so a reader can restore physical units.
// Silence is written as zeros with a scale of 0.
func WriteWAV(path string, samples []float64, sampleRate int) (float64, error) {
	if sampleRate <= 0 {
		return 0, fmt.Errorf("wav sample rate must be > 0: %d", sampleRate)
	}

	scale := 0.0
	if peak := stattime.Peak(samples); peak > 0 {
		scale = wavFullScale / peak
	}
	data := make([]int, len(samples))
	for i, v := range samples {
		data[i] = int(math.Round(v * scale))
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create wav: %w", err)
	}
	enc := wav.NewEncoder(f, sampleRate, wavBitDepth, wavMonoLayout, wavPCM)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: wavMonoLayout, SampleRate: sampleRate},
		Data:           data,
		SourceBitDepth: wavBitDepth,
	}
	if err := enc.Write(buf); err != nil {
		f.Close()
		return 0, fmt.Errorf("write wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		f.Close()
		return 0, fmt.Errorf("close wav: %w", err)
	}
	return scale, f.Close()
}

package core_test

import (
	"fmt"

	"github.com/cwbudde/algo-ecg/dsp/core"
)

func ExampleApplyProcessorOptions() {
	cfg := core.ApplyProcessorOptions(
		core.WithSampleRate(500),
		core.WithChunkSize(16),
	)

	fmt.Printf("sampleRate=%.0f chunkSize=%d\n", cfg.SampleRate, cfg.ChunkSize)

	// Output:
	// sampleRate=500 chunkSize=16
}

func ExampleLinearToDB() {
	fmt.Printf("%.1f dB\n", core.LinearToDB(0.015/0.15))

	// Output:
	// -20.0 dB
}

package design

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// Params are the inputs of a notch design.
type Params struct {
	Frequency  float64 // Hz to reject
	Q          float64 // quality factor, larger is narrower
	SampleRate float64 // Hz
}

// Design bundles the immutable coefficients and start-up state that a
// streaming filter needs.
type Design struct {
	Params
	Coefficients biquad.Coefficients
	Initial      biquad.State
}

// NewNotch runs [Notch] and [InitialState] for p. It is deterministic:
// equal parameters give bit-identical designs.
func NewNotch(p Params) (Design, error) {
	c, err := Notch(p.Frequency, p.Q, p.SampleRate)
	if err != nil {
		return Design{}, err
	}
	zi, err := InitialState(c)
	if err != nil {
		return Design{}, fmt.Errorf("notch %v Hz: %w", p.Frequency, err)
	}
	return Design{Params: p, Coefficients: c, Initial: zi}, nil
}

// Bandwidth returns the -3 dB rejection bandwidth in Hz.
func (d Design) Bandwidth() float64 {
	return d.Frequency / d.Q
}

// SettleSamples returns how many samples the slowest transient needs to
// shrink to residual (0 < residual < 1) of its initial size.
func (d Design) SettleSamples(residual float64) int {
	r := d.Coefficients.PoleRadius()
	if residual <= 0 || residual >= 1 || r <= 0 {
		return 0
	}
	return int(math.Ceil(math.Log(residual) / math.Log(r)))
}

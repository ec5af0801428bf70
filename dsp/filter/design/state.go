package design

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-ecg/dsp/filter/biquad"
)

// InitialState returns the delay-line contents of c after an infinitely
// long unit-step input. Starting from it, a constant input of 1 passes
// through with no start-up transient. Scale it by another level with
// [biquad.State.Scale].
//
// In state-space form the transposed direct-form section is
// z[n+1] = Aᵀz[n] + B·x[n] with
//
//	Aᵀ = | -a1  1 |    B = | b1 - a1·b0 |
//	     | -a2  0 |        | b2 - a2·b0 |
//
// and the steady state for x = 1 solves (I - Aᵀ)·z = B.
func InitialState(c biquad.Coefficients) (biquad.State, error) {
	if !c.IsStable() {
		return biquad.State{}, fmt.Errorf("%w: pole radius %v", ErrUnstable, c.PoleRadius())
	}

	iMinusA := mat.NewDense(2, 2, []float64{
		1 + c.A1, -1,
		c.A2, 1,
	})
	rhs := mat.NewVecDense(2, []float64{
		c.B1 - c.A1*c.B0,
		c.B2 - c.A2*c.B0,
	})

	var zi mat.VecDense
	if err := zi.SolveVec(iMinusA, rhs); err != nil {
		return biquad.State{}, fmt.Errorf("%w: %w", ErrUnstable, err)
	}

	return biquad.State{zi.AtVec(0), zi.AtVec(1)}, nil
}

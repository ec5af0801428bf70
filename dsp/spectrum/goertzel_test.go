package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func TestGoertzelMatchesDirectDFT(t *testing.T) {
	const fs, f0 = 360.0, 60.0
	sig := testutil.DeterministicSine(f0, fs, 0.15, 720)

	g, err := NewGoertzel(f0, fs)
	if err != nil {
		t.Fatalf("NewGoertzel: %v", err)
	}
	g.ProcessBlock(sig[:100])
	g.ProcessBlock(sig[100:])

	var dft complex128
	for n, x := range sig {
		angle := -2 * math.Pi * f0 / fs * float64(n)
		dft += complex(x, 0) * cmplx.Exp(complex(0, angle))
	}

	want := cmplx.Abs(dft)
	if got := g.Magnitude(); math.Abs(got-want) > 1e-9*want {
		t.Fatalf("Magnitude=%v want %v", got, want)
	}
	if g.Count() != 720 {
		t.Fatalf("Count=%d want 720", g.Count())
	}
}

func TestGoertzelResetAndFloor(t *testing.T) {
	g, err := NewGoertzel(60, 360)
	if err != nil {
		t.Fatal(err)
	}
	if g.PowerDB() != -300 {
		t.Fatalf("PowerDB on empty=%v want -300", g.PowerDB())
	}
	g.ProcessBlock([]float64{1, 0, -1})
	if g.Power() == 0 {
		t.Fatal("Power should be non-zero after processing")
	}
	g.Reset()
	if g.Power() != 0 || g.Count() != 0 {
		t.Fatalf("after Reset: power=%v count=%d", g.Power(), g.Count())
	}
}

func TestGoertzelDC(t *testing.T) {
	p, err := AnalyzeBlock(testutil.DC(1.0, 100), 0, 360)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(p-10000) > 1e-9 {
		t.Fatalf("DC power=%v want 10000", p)
	}
}

func TestNewGoertzelValidation(t *testing.T) {
	for _, tc := range []struct{ f, fs float64 }{
		{-1, 360}, {181, 360}, {60, 0}, {math.NaN(), 360},
	} {
		if _, err := NewGoertzel(tc.f, tc.fs); err == nil {
			t.Fatalf("NewGoertzel(%v, %v) should fail", tc.f, tc.fs)
		}
	}
}

package window

import (
	"math"
	"testing"
)

func TestHannSymmetric(t *testing.T) {
	w, err := Hann(5)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 1, 0.5, 0}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d]=%v want %v", i, w[i], want[i])
		}
	}
}

func TestHannPeriodic(t *testing.T) {
	w, err := Hann(4, WithPeriodic())
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0, 0.5, 1, 0.5}
	for i := range want {
		if math.Abs(w[i]-want[i]) > 1e-12 {
			t.Fatalf("w[%d]=%v want %v", i, w[i], want[i])
		}
	}
}

func TestHannInvalidSize(t *testing.T) {
	if _, err := Hann(0); err == nil {
		t.Fatal("expected error for size 0")
	}
	w, err := Hann(1)
	if err != nil || len(w) != 1 || w[0] != 0 {
		t.Fatalf("Hann(1)=%v err=%v", w, err)
	}
}

func TestGainAndENBW(t *testing.T) {
	w, err := Hann(4096, WithPeriodic())
	if err != nil {
		t.Fatal(err)
	}
	g, err := CoherentGain(w)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(g-0.5) > 1e-9 {
		t.Fatalf("coherent gain=%v want 0.5", g)
	}
	enbw, err := EquivalentNoiseBandwidth(w)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(enbw-1.5) > 1e-6 {
		t.Fatalf("ENBW=%v want 1.5", enbw)
	}

	if _, err := CoherentGain(nil); err == nil {
		t.Fatal("expected error for empty window")
	}
	if _, err := EquivalentNoiseBandwidth([]float64{0, 0}); err == nil {
		t.Fatal("expected error for zero window")
	}
}

func TestApplyCoefficientsHelpers(t *testing.T) {
	samples := []float64{1, 2, 3, 4}
	coeffs := []float64{0.5, 0.5, 2, 0}

	out, err := ApplyCoefficients(samples, coeffs)
	if err != nil {
		t.Fatal(err)
	}
	want := []float64{0.5, 1, 6, 0}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("out[%d]=%v want %v", i, out[i], want[i])
		}
	}
	if samples[2] != 3 {
		t.Fatal("ApplyCoefficients modified its input")
	}

	if err := ApplyCoefficientsInPlace(samples, coeffs); err != nil {
		t.Fatal(err)
	}
	for i := range want {
		if samples[i] != want[i] {
			t.Fatalf("samples[%d]=%v want %v", i, samples[i], want[i])
		}
	}

	if _, err := ApplyCoefficients(samples, coeffs[:2]); err == nil {
		t.Fatal("expected length mismatch")
	}
	if err := ApplyCoefficientsInPlace(samples[:1], coeffs); err == nil {
		t.Fatal("expected length mismatch")
	}
}

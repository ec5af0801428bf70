package signal

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/core"
	"github.com/cwbudde/algo-ecg/internal/testutil"
)

func TestInterferenceAtIndexFormula(t *testing.T) {
	// Typed so the expected value is rounded the same way as the call.
	var fs, f0, amp float64 = 360, 60, 0.15
	for _, i := range []int{0, 1, 2, 3, 6, 359, 360, 100000} {
		want := amp * math.Sin(2*math.Pi*f0*float64(i)/fs)
		if got := InterferenceAt(i, fs, f0, amp); got != want {
			t.Fatalf("InterferenceAt(%d)=%v want %v", i, got, want)
		}
	}
}

func TestInterferenceMatchesPerIndex(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(360))
	x, err := g.Interference(60, 0.15, 720)
	if err != nil {
		t.Fatalf("Interference() error = %v", err)
	}
	if len(x) != 720 {
		t.Fatalf("len=%d want 720", len(x))
	}
	if x[0] != 0 {
		t.Fatalf("x[0]=%v want 0", x[0])
	}
	for i, v := range x {
		if v != InterferenceAt(i, 360, 60, 0.15) {
			t.Fatalf("sample %d not index-aligned", i)
		}
	}
	// Period is 6 samples: index 1 sits at 60 degrees, index 3 at 180.
	if want := 0.15 * math.Sin(math.Pi/3); math.Abs(x[1]-want) > 1e-15 {
		t.Fatalf("x[1]=%v want %v", x[1], want)
	}
	if math.Abs(x[3]) > 1e-15 {
		t.Fatalf("half-period sample x[3]=%v want 0", x[3])
	}
}

func TestInterferencePeakAtQuarterPeriod(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(360))
	x, err := g.Interference(90, 0.15, 8)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []float64{0, 0.15, 0, -0.15} {
		if math.Abs(x[i]-want) > 1e-15 {
			t.Fatalf("x[%d]=%v want %v", i, x[i], want)
		}
	}
}

func TestInterferenceZeroAmplitude(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(360))
	x, err := g.Interference(60, 0, 32)
	if err != nil {
		t.Fatal(err)
	}
	for i, v := range x {
		if v != 0 {
			t.Fatalf("x[%d]=%v want 0", i, v)
		}
	}
}

func TestInterferenceEmptyAndInvalid(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(360))
	x, err := g.Interference(60, 1, 0)
	if err != nil || len(x) != 0 {
		t.Fatalf("empty: len=%d err=%v", len(x), err)
	}
	if _, err := g.Interference(60, 1, -1); err == nil {
		t.Fatal("negative length should fail")
	}
	if _, err := g.Interference(math.NaN(), 1, 4); err == nil {
		t.Fatal("NaN frequency should fail")
	}
}

func TestMixIsSampleWiseSum(t *testing.T) {
	clean := testutil.SyntheticECG(360, 72, 500)
	noise := testutil.DeterministicSine(60, 360, 0.15, 500)

	got, err := Mix(clean, noise)
	if err != nil {
		t.Fatalf("Mix() error = %v", err)
	}
	for i := range got {
		if math.Abs(got[i]-(clean[i]+noise[i])) > 1e-15 {
			t.Fatalf("got[%d]=%v want %v", i, got[i], clean[i]+noise[i])
		}
	}
	if &got[0] == &clean[0] {
		t.Fatal("Mix must not return its input")
	}
}

func TestMixZeroNoiseIsIdentity(t *testing.T) {
	clean := testutil.SyntheticECG(360, 60, 100)
	got, err := Mix(clean, make([]float64, len(clean)))
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireSliceNearlyEqual(t, got, clean, 0)
}

func TestMixLengthMismatch(t *testing.T) {
	_, err := Mix(make([]float64, 3), make([]float64, 4))
	if !errors.Is(err, ErrLengthMismatch) {
		t.Fatalf("err=%v want ErrLengthMismatch", err)
	}
}

func TestMixEmpty(t *testing.T) {
	got, err := Mix(nil, nil)
	if err != nil || len(got) != 0 {
		t.Fatalf("len=%d err=%v", len(got), err)
	}
}

func TestContaminate(t *testing.T) {
	g := NewGenerator(core.WithSampleRate(360))
	clean := testutil.SyntheticECG(360, 72, 400)
	dirty, err := g.Contaminate(clean, 60, 0.15)
	if err != nil {
		t.Fatal(err)
	}
	for i := range dirty {
		want := clean[i] + InterferenceAt(i, 360, 60, 0.15)
		if math.Abs(dirty[i]-want) > 1e-15 {
			t.Fatalf("dirty[%d]=%v want %v", i, dirty[i], want)
		}
	}
}

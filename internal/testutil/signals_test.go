package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(60, 360, 0.15, 360)
	if len(s) != 360 {
		t.Fatalf("len = %d, want 360", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	// Quarter period of 60 Hz at 360 Hz is 1.5 samples; sample 6 closes a cycle.
	if math.Abs(s[6]) > 1e-12 {
		t.Fatalf("s[6] = %v, want 0", s[6])
	}
	for i, v := range s {
		if math.Abs(v) > 0.15+1e-15 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	c := DeterministicNoise(43, 1.0, 64)
	same := true
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
		if a[i] != c[i] {
			same = false
		}
	}
	if same {
		t.Fatal("different seeds produced identical noise")
	}
}

func TestDC(t *testing.T) {
	for i, v := range DC(1, 16) {
		if v != 1 {
			t.Fatalf("dc[%d] = %v, want 1", i, v)
		}
	}
}

func TestSyntheticECG(t *testing.T) {
	x := SyntheticECG(360, 75, 720)
	if len(x) != 720 {
		t.Fatalf("len = %d, want 720", len(x))
	}
	RequireFinite(t, x)

	peak := math.Inf(-1)
	for _, v := range x {
		peak = math.Max(peak, v)
	}
	if peak < 0.8 || peak > 1.3 {
		t.Fatalf("R peak = %v, want ~1.05", peak)
	}
}

func TestPartition(t *testing.T) {
	sizes := Partition(7, 1000, 9)
	sum, zeros := 0, 0
	for _, s := range sizes {
		if s < 0 || s > 9 {
			t.Fatalf("size %d out of range", s)
		}
		if s == 0 {
			zeros++
		}
		sum += s
	}
	if sum != 1000 {
		t.Fatalf("sum = %d, want 1000", sum)
	}
	if zeros == 0 {
		t.Fatal("expected at least one empty chunk")
	}
}

func TestFixedPartition(t *testing.T) {
	sizes := FixedPartition(10, 4)
	want := []int{4, 4, 2}
	if len(sizes) != len(want) {
		t.Fatalf("sizes = %v, want %v", sizes, want)
	}
	for i := range want {
		if sizes[i] != want[i] {
			t.Fatalf("sizes = %v, want %v", sizes, want)
		}
	}
}

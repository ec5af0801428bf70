package rejection

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-ecg/dsp/filter/design"
)

func mustDesign(t *testing.T, f0, q, fs float64) design.Design {
	t.Helper()
	d, err := design.NewNotch(design.Params{Frequency: f0, Q: q, SampleRate: fs})
	if err != nil {
		t.Fatalf("NewNotch: %v", err)
	}
	return d
}

func TestMeasureMainsNotch(t *testing.T) {
	d := mustDesign(t, 60, 35, 360)

	res, err := Measure(d, Config{Amplitude: 0.15})
	if err != nil {
		t.Fatalf("Measure: %v", err)
	}

	if res.Settle != d.SettleSamples(0.01) {
		t.Fatalf("Settle=%d want default %d", res.Settle, d.SettleSamples(0.01))
	}
	if res.Length != 720 {
		t.Fatalf("Length=%d want 720", res.Length)
	}
	if math.Abs(res.InputLevel-0.15) > 0.003 {
		t.Fatalf("InputLevel=%v want 0.15", res.InputLevel)
	}
	if res.AttenuationDB > -20 {
		t.Fatalf("AttenuationDB=%.2f want <= -20", res.AttenuationDB)
	}
	if res.OutputPeak > 0.015 {
		t.Fatalf("OutputPeak=%v want <= 0.015", res.OutputPeak)
	}
	if res.PassbandFrequency != 15 {
		t.Fatalf("PassbandFrequency=%v want 15", res.PassbandFrequency)
	}
	if math.Abs(res.PassbandGainDB) > 1 {
		t.Fatalf("PassbandGainDB=%.3f want within 1 dB", res.PassbandGainDB)
	}
}

func TestMeasureOtherRates(t *testing.T) {
	for _, tc := range []struct{ f0, q, fs float64 }{
		{50, 35, 360},
		{50, 30, 500},
		{60, 20, 1000},
	} {
		res, err := Measure(mustDesign(t, tc.f0, tc.q, tc.fs), Config{})
		if err != nil {
			t.Fatalf("%+v: %v", tc, err)
		}
		if res.AttenuationDB > -20 || math.Abs(res.PassbandGainDB) > 1 {
			t.Fatalf("%+v: attenuation %.2f dB, passband %.3f dB", tc, res.AttenuationDB, res.PassbandGainDB)
		}
	}
}

func TestMeasureWithoutSettlingSeesTransient(t *testing.T) {
	d := mustDesign(t, 60, 35, 360)
	settled, err := Measure(d, Config{Length: 100})
	if err != nil {
		t.Fatal(err)
	}
	raw, err := Measure(d, Config{Settle: 1, Length: 100})
	if err != nil {
		t.Fatal(err)
	}
	if raw.OutputPeak <= settled.OutputPeak {
		t.Fatalf("unsettled peak %v should exceed settled peak %v", raw.OutputPeak, settled.OutputPeak)
	}
}

func TestMeasurePassbandAboveNyquist(t *testing.T) {
	d := mustDesign(t, 60, 35, 360)
	if _, err := Measure(d, Config{Passband: 200}); err == nil {
		t.Fatal("expected error for pass-band above nyquist")
	}
}

func TestRatioDBFloor(t *testing.T) {
	if got := ratioDB(0, 1); got != floorDB {
		t.Fatalf("ratioDB(0,1)=%v", got)
	}
	if got := ratioDB(1, 10); math.Abs(got+20) > 1e-12 {
		t.Fatalf("ratioDB(1,10)=%v want -20", got)
	}
}

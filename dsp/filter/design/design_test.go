package design

import (
	"math"
	"testing"

	"github.com/cwbudde/freeq/dsp/filter/biquad"
)

const tol = 1e-9

func almostEqual(a, b, eps float64) bool {
	return math.Abs(a-b) <= eps
}

func db(c biquad.Coefficients, freq, sr float64) float64 {
	return c.MagnitudeDB(freq, sr)
}

func finite(c biquad.Coefficients) bool {
	for _, v := range []float64{c.B0, c.B1, c.B2, c.A1, c.A2} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func TestBiquadDesigners_BasicResponseShape(t *testing.T) {
	sr := 48000.0
	f := 1000.0
	q := 1 / math.Sqrt2

	lp := Lowpass(f, q, sr)
	if !(db(lp, 100, sr) > db(lp, 10000, sr)) {
		t.Fatal("lowpass shape check failed")
	}

	hp := Highpass(f, q, sr)
	if !(db(hp, 10000, sr) > db(hp, 100, sr)) {
		t.Fatal("highpass shape check failed")
	}

	n := Notch(f, q, sr)
	if !(db(n, f, sr) < db(n, 100, sr) && db(n, f, sr) < db(n, 10000, sr)) {
		t.Fatal("notch shape check failed")
	}

	lp1 := LowpassFirstOrder(f, sr)
	if !(db(lp1, 100, sr) > db(lp1, 10000, sr)) {
		t.Fatal("first-order lowpass shape check failed")
	}

	hp1 := HighpassFirstOrder(f, sr)
	if !(db(hp1, 10000, sr) > db(hp1, 100, sr)) {
		t.Fatal("first-order highpass shape check failed")
	}
}

func TestFirstOrder_DCNyquistAndCutoff(t *testing.T) {
	sr := 48000.0
	f := 2000.0

	lp := LowpassFirstOrder(f, sr)
	if got := db(lp, 0, sr); !almostEqual(got, 0, 1e-9) {
		t.Fatalf("lowpass DC gain = %v dB, want 0", got)
	}
	if got := lp.MagnitudeDB(sr/2, sr); got > -200 {
		t.Fatalf("lowpass Nyquist gain = %v dB, want a zero", got)
	}
	if got := db(lp, f, sr); !almostEqual(got, -3.0103, 1e-3) {
		t.Fatalf("lowpass cutoff = %v dB, want -3.01", got)
	}
	if lp.A2 != 0 || lp.B2 != 0 {
		t.Fatalf("first-order section must not use second taps: %+v", lp)
	}

	hp := HighpassFirstOrder(f, sr)
	if got := hp.MagnitudeDB(0, sr); got > -200 {
		t.Fatalf("highpass DC gain = %v dB, want a zero", got)
	}
	if got := db(hp, f, sr); !almostEqual(got, -3.0103, 1e-3) {
		t.Fatalf("highpass cutoff = %v dB, want -3.01", got)
	}
}

func TestSecondOrder_CutoffGainEqualsQ(t *testing.T) {
	// At w0 the cookbook second-order lowpass/highpass have |H| = Q.
	sr := 44100.0
	for _, q := range []float64{0.5, 0.707, 2, 5} {
		want := 20 * math.Log10(q)
		if got := db(Lowpass(1000, q, sr), 1000, sr); !almostEqual(got, want, 1e-9) {
			t.Errorf("lowpass q=%v: %v dB at cutoff, want %v", q, got, want)
		}
		if got := db(Highpass(1000, q, sr), 1000, sr); !almostEqual(got, want, 1e-9) {
			t.Errorf("highpass q=%v: %v dB at cutoff, want %v", q, got, want)
		}
	}
}

func TestPeak_CenterGain(t *testing.T) {
	sr := 48000.0
	for _, gain := range []float64{-18, -6, 0, 3, 12, 18} {
		for _, q := range []float64{0.1, 0.7, 2, 10} {
			c := Peak(1000, gain, q, sr)
			if got := db(c, 1000, sr); !almostEqual(got, gain, 1e-9) {
				t.Errorf("gain=%v q=%v: center = %v dB", gain, q, got)
			}
		}
	}
}

func TestPeak_ZeroGainIsFlat(t *testing.T) {
	sr := 48000.0
	for _, q := range []float64{0.1, 1, 10} {
		c := Peak(3000, 0, q, sr)
		for _, f := range []float64{20, 300, 3000, 15000} {
			if got := db(c, f, sr); !almostEqual(got, 0, 1e-9) {
				t.Fatalf("q=%v f=%v: %v dB, want 0", q, f, got)
			}
		}
	}
}

func TestShelves_ZeroGainIsFlat(t *testing.T) {
	for _, sr := range []float64{44100, 48000, 96000} {
		for _, q := range []float64{0.1, 0.5, 2, 10} {
			ls := LowShelf(500, 0, q, sr)
			hs := HighShelf(5000, 0, q, sr)
			for f := 20.0; f <= 20000; f *= 1.5 {
				if got := db(ls, f, sr); !almostEqual(got, 0, 1e-9) {
					t.Fatalf("low shelf sr=%v q=%v f=%v: %v dB", sr, q, f, got)
				}
				if got := db(hs, f, sr); !almostEqual(got, 0, 1e-9) {
					t.Fatalf("high shelf sr=%v q=%v f=%v: %v dB", sr, q, f, got)
				}
			}
		}
	}
}

func TestShelves_PlateauGain(t *testing.T) {
	sr := 48000.0
	for _, gain := range []float64{-12, 6, 18} {
		ls := LowShelf(1000, gain, 0.7, sr)
		if got := db(ls, 0, sr); !almostEqual(got, gain, 1e-9) {
			t.Errorf("low shelf DC gain = %v, want %v", got, gain)
		}
		hs := HighShelf(1000, gain, 0.7, sr)
		if got := db(hs, sr/2, sr); !almostEqual(got, gain, 1e-6) {
			t.Errorf("high shelf Nyquist gain = %v, want %v", got, gain)
		}
	}
}

func TestNotch_IgnoresNothingButQ(t *testing.T) {
	sr := 48000.0
	c := Notch(1000, 4, sr)
	if got := c.MagnitudeDB(1000, sr); got > -200 {
		t.Fatalf("notch center gain = %v dB, want a zero", got)
	}
	if got := db(c, 20, sr); !almostEqual(got, 0, 1e-3) {
		t.Fatalf("notch far below center = %v dB, want ~0", got)
	}
}

func TestPeak_NormalizesAllCoefficientsByA0(t *testing.T) {
	freq, gain, q, sr := 2500.0, 7.5, 1.3, 44100.0
	w0 := 2 * math.Pi * freq / sr
	alpha := math.Sin(w0) / (2 * q)
	a := math.Pow(10, gain/40)
	a0 := 1 + alpha/a

	want := biquad.Coefficients{
		B0: (1 + alpha*a) / a0,
		B1: -2 * math.Cos(w0) / a0,
		B2: (1 - alpha*a) / a0,
		A1: -2 * math.Cos(w0) / a0,
		A2: (1 - alpha/a) / a0,
	}

	got := Peak(freq, gain, q, sr)
	for i, pair := range [][2]float64{
		{got.B0, want.B0}, {got.B1, want.B1}, {got.B2, want.B2}, {got.A1, want.A1}, {got.A2, want.A2},
	} {
		if !almostEqual(pair[0], pair[1], 1e-15) {
			t.Errorf("coef %d: got %v want %v", i, pair[0], pair[1])
		}
	}
}

func TestDesigners_FiniteAndStableOverParameterGrid(t *testing.T) {
	freqs := []float64{20, 63, 250, 1000, 4000, 12000, 20000}
	gains := []float64{-18, -9, 0, 9, 18}
	qs := []float64{0.1, 0.5, 1, 4, 10}

	for _, sr := range []float64{44100, 48000, 96000} {
		for _, f := range freqs {
			cases := []biquad.Coefficients{LowpassFirstOrder(f, sr), HighpassFirstOrder(f, sr)}
			for _, q := range qs {
				cases = append(cases, Lowpass(f, q, sr), Highpass(f, q, sr), Notch(f, q, sr))
				for _, g := range gains {
					cases = append(cases, Peak(f, g, q, sr), LowShelf(f, g, q, sr), HighShelf(f, g, q, sr))
				}
			}

			for i, c := range cases {
				if !finite(c) {
					t.Fatalf("sr=%v f=%v case %d: non-finite coefficients %+v", sr, f, i, c)
				}
				if !c.IsStable() {
					t.Fatalf("sr=%v f=%v case %d: unstable coefficients %+v", sr, f, i, c)
				}
			}
		}
	}
}

func TestDesigners_InvalidInputsPassThrough(t *testing.T) {
	pass := biquad.Passthrough()
	cases := map[string]biquad.Coefficients{
		"zero sample rate": Peak(1000, 3, 1, 0),
		"negative rate":    LowShelf(1000, 3, 1, -48000),
		"nan rate":         Lowpass(1000, 1, math.NaN()),
		"above nyquist":    Highpass(30000, 1, 48000),
		"zero freq":        LowpassFirstOrder(0, 48000),
	}
	for name, c := range cases {
		if c != pass {
			t.Errorf("%s: got %+v, want passthrough", name, c)
		}
	}
}

func TestNormalizedQ_InvalidFallsBack(t *testing.T) {
	if got := normalizedQ(0); !almostEqual(got, defaultQ, tol) {
		t.Fatalf("normalizedQ(0) = %v", got)
	}
	if got := normalizedQ(math.Inf(1)); !almostEqual(got, defaultQ, tol) {
		t.Fatalf("normalizedQ(+Inf) = %v", got)
	}
	if got := normalizedQ(3); got != 3 {
		t.Fatalf("normalizedQ(3) = %v", got)
	}
}

package scrollsync

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestEaseNamedCurves(t *testing.T) {
	tests := []struct {
		name string
		want ease.TweenFunc
	}{
		{"power1.out", ease.OutQuad},
		{"power2.out", ease.OutCubic},
		{"power2.inOut", ease.InOutCubic},
		{"power3.out", ease.OutQuart},
		{"power3", ease.OutQuart},
		{"sine.in", ease.InSine},
		{"expo.inOut", ease.InOutExpo},
	}
	for _, tt := range tests {
		fn, err := Ease(tt.name)
		if err != nil {
			t.Fatalf("Ease(%q): %v", tt.name, err)
		}
		for _, x := range []float64{0.1, 0.35, 0.5, 0.8} {
			got := EaseFraction(fn, x)
			want := float64(tt.want(float32(x), 0, 1, 1))
			if math.Abs(got-want) > 1e-6 {
				t.Errorf("%s(%g) = %f, want %f", tt.name, x, got, want)
			}
		}
	}
}

func TestEaseLinearAliases(t *testing.T) {
	for _, name := range []string{"none", "linear", "power0"} {
		fn, err := Ease(name)
		if err != nil {
			t.Fatalf("Ease(%q): %v", name, err)
		}
		if got := EaseFraction(fn, 0.25); math.Abs(got-0.25) > 1e-6 {
			t.Errorf("%s(0.25) = %f, want 0.25", name, got)
		}
	}
}

func TestEaseEndpointsPinned(t *testing.T) {
	for _, name := range []string{"power2.out", "back.out(1.7)", "elastic.out(1, 0.5)", "back.in(1.7)", "bounce.out"} {
		fn := MustEase(name)
		if got := EaseFraction(fn, 0); got != 0 {
			t.Errorf("%s(0) = %f, want 0", name, got)
		}
		if got := EaseFraction(fn, 1); got != 1 {
			t.Errorf("%s(1) = %f, want 1", name, got)
		}
		if got := EaseFraction(fn, -0.5); got != 0 {
			t.Errorf("%s(-0.5) = %f, want clamp to 0", name, got)
		}
		if got := EaseFraction(fn, 1.5); got != 1 {
			t.Errorf("%s(1.5) = %f, want clamp to 1", name, got)
		}
	}
}

func TestEaseBackOutOvershoots(t *testing.T) {
	fn := MustEase("back.out(1.7)")
	if got := EaseFraction(fn, 0.8); got <= 1 {
		t.Errorf("back.out(1.7) at 0.8 = %f, want > 1", got)
	}
	in := MustEase("back.in(1.7)")
	if got := EaseFraction(in, 0.2); got >= 0 {
		t.Errorf("back.in(1.7) at 0.2 = %f, want < 0", got)
	}
}

func TestEaseElasticOscillates(t *testing.T) {
	fn := MustEase("elastic.out(1, 0.5)")
	var above, below bool
	for i := 1; i < 100; i++ {
		v := EaseFraction(fn, float64(i)/100)
		if v > 1 {
			above = true
		}
		if i > 20 && v < 1 {
			below = true
		}
	}
	if !above || !below {
		t.Errorf("elastic.out should cross 1 in both directions (above=%v below=%v)", above, below)
	}
}

func TestEaseArgumentsChangeCurve(t *testing.T) {
	a := EaseFraction(MustEase("back.out(1.2)"), 0.7)
	b := EaseFraction(MustEase("back.out(3)"), 0.7)
	if a >= b {
		t.Errorf("larger overshoot should peak higher: back.out(1.2)=%f back.out(3)=%f", a, b)
	}
}

func TestEaseErrors(t *testing.T) {
	for _, name := range []string{"wobble.out", "power2.sideways", "back.out(1.7", "elastic.out(x)"} {
		if _, err := Ease(name); err == nil {
			t.Errorf("Ease(%q): expected error", name)
		}
	}
}

func TestMustEasePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for unknown ease")
		}
	}()
	MustEase("nope")
}

func TestEaseFractionNilUsesDefault(t *testing.T) {
	got := EaseFraction(nil, 0.5)
	want := EaseFraction(DefaultEase, 0.5)
	if got != want {
		t.Errorf("EaseFraction(nil, 0.5) = %f, want %f", got, want)
	}
}

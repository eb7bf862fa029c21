package scrollsync

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tanema/gween/ease"
)

// DefaultEase is applied to segments that leave Ease nil (power1.out).
var DefaultEase ease.TweenFunc = ease.OutQuad

// easeFamily lists the in, out and in-out variants of a curve.
type easeFamily struct {
	in, out, inOut ease.TweenFunc
}

var easeFamilies = map[string]easeFamily{
	"power1": {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"power2": {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"power3": {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"power4": {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"quad":   {ease.InQuad, ease.OutQuad, ease.InOutQuad},
	"cubic":  {ease.InCubic, ease.OutCubic, ease.InOutCubic},
	"quart":  {ease.InQuart, ease.OutQuart, ease.InOutQuart},
	"quint":  {ease.InQuint, ease.OutQuint, ease.InOutQuint},
	"sine":   {ease.InSine, ease.OutSine, ease.InOutSine},
	"expo":   {ease.InExpo, ease.OutExpo, ease.InOutExpo},
	"circ":   {ease.InCirc, ease.OutCirc, ease.InOutCirc},
	"bounce": {ease.InBounce, ease.OutBounce, ease.InOutBounce},
}

// Ease resolves a named easing curve such as "none", "power2.out",
// "sine.inOut", "back.out(1.7)" or "elastic.out(1, 0.5)". A family without
// a variant defaults to its out variant.
func Ease(name string) (ease.TweenFunc, error) {
	name = strings.TrimSpace(name)
	base, args, err := splitEaseArgs(name)
	if err != nil {
		return nil, err
	}
	family, variant, _ := strings.Cut(base, ".")
	if variant == "" {
		variant = "out"
	}

	switch family {
	case "none", "linear", "power0":
		return ease.Linear, nil
	case "back":
		overshoot := argOr(args, 0, 1.70158)
		return pickVariant(name, variant, BackIn(overshoot), BackOut(overshoot), BackInOut(overshoot))
	case "elastic":
		amp, period := argOr(args, 0, 1), argOr(args, 1, 0.3)
		return pickVariant(name, variant, ElasticIn(amp, period), ElasticOut(amp, period), ElasticInOut(amp, period))
	}

	f, ok := easeFamilies[family]
	if !ok {
		return nil, fmt.Errorf("ease %q: unknown family %q", name, family)
	}
	return pickVariant(name, variant, f.in, f.out, f.inOut)
}

// MustEase is like Ease but panics on an unknown name. Intended for
// package-level choreography tables.
func MustEase(name string) ease.TweenFunc {
	fn, err := Ease(name)
	if err != nil {
		panic(err)
	}
	return fn
}

func pickVariant(name, variant string, in, out, inOut ease.TweenFunc) (ease.TweenFunc, error) {
	switch variant {
	case "in":
		return in, nil
	case "out":
		return out, nil
	case "inOut":
		return inOut, nil
	}
	return nil, fmt.Errorf("ease %q: unknown variant %q", name, variant)
}

func splitEaseArgs(name string) (string, []float64, error) {
	open := strings.IndexByte(name, '(')
	if open < 0 {
		return name, nil, nil
	}
	if !strings.HasSuffix(name, ")") {
		return "", nil, fmt.Errorf("ease %q: unbalanced parenthesis", name)
	}
	var args []float64
	for _, field := range strings.Split(name[open+1:len(name)-1], ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return "", nil, fmt.Errorf("ease %q: %w", name, err)
		}
		args = append(args, v)
	}
	return name[:open], args, nil
}

func argOr(args []float64, i int, def float64) float64 {
	if i < len(args) {
		return args[i]
	}
	return def
}

// EaseFraction maps a normalized time t in [0, 1] through fn. The result
// may overshoot [0, 1] for back and elastic curves.
func EaseFraction(fn ease.TweenFunc, t float64) float64 {
	if fn == nil {
		fn = DefaultEase
	}
	switch {
	case t <= 0:
		return 0
	case t >= 1:
		return 1
	}
	return float64(fn(float32(t), 0, 1, 1))
}

// normalized adapts a [0,1]->[0,1] curve to gween's (t, b, c, d) signature.
func normalized(f func(p float64) float64) ease.TweenFunc {
	return func(t, b, c, d float32) float32 {
		if d <= 0 {
			return b + c
		}
		return b + c*float32(f(float64(t/d)))
	}
}

// BackIn pulls back by overshoot before accelerating toward the target.
func BackIn(overshoot float64) ease.TweenFunc {
	return normalized(func(p float64) float64 {
		return p * p * ((overshoot+1)*p - overshoot)
	})
}

// BackOut overshoots the target by overshoot and settles back.
func BackOut(overshoot float64) ease.TweenFunc {
	return normalized(func(p float64) float64 {
		p--
		return p*p*((overshoot+1)*p+overshoot) + 1
	})
}

// BackInOut combines BackIn and BackOut halves.
func BackInOut(overshoot float64) ease.TweenFunc {
	s := overshoot * 1.525
	return normalized(func(p float64) float64 {
		p *= 2
		if p < 1 {
			return p * p * ((s+1)*p - s) / 2
		}
		p -= 2
		return (p*p*((s+1)*p+s) + 2) / 2
	})
}

// ElasticOut oscillates around the target with the given amplitude and
// period before settling.
func ElasticOut(amplitude, period float64) ease.TweenFunc {
	out := elasticOut(amplitude, period)
	return normalized(out)
}

// ElasticIn is the time-reversed mirror of ElasticOut.
func ElasticIn(amplitude, period float64) ease.TweenFunc {
	out := elasticOut(amplitude, period)
	return normalized(func(p float64) float64 { return 1 - out(1-p) })
}

// ElasticInOut runs ElasticIn for the first half and ElasticOut for the second.
func ElasticInOut(amplitude, period float64) ease.TweenFunc {
	out := elasticOut(amplitude, period*1.5)
	return normalized(func(p float64) float64 {
		if p < 0.5 {
			return (1 - out(1-2*p)) / 2
		}
		return (1 + out(2*p-1)) / 2
	})
}

func elasticOut(amplitude, period float64) func(float64) float64 {
	p1 := max(amplitude, 1)
	if period <= 0 {
		period = 0.3
	}
	p2 := period / min(amplitude, 1)
	if amplitude <= 0 {
		p2 = period
	}
	p3 := p2 / (2 * math.Pi) * math.Asin(1/p1)
	freq := 2 * math.Pi / p2
	return func(p float64) float64 {
		if p >= 1 {
			return 1
		}
		if p <= 0 {
			return 0
		}
		return p1*math.Pow(2, -10*p)*math.Sin((p-p3)*freq) + 1
	}
}

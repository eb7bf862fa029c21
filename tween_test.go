package scrollsync

import (
	"math"
	"testing"

	"github.com/tanema/gween/ease"
)

func TestTweenToPositionReachesTarget(t *testing.T) {
	node := NewBox("pos", Rect{}, ColorWhite)
	node.X = 10
	node.Y = 20

	g := TweenTo(node, Position{X: 100, Y: 200}, 1.0, ease.Linear)

	// Exact halves avoid float32 accumulation drift.
	g.Update(0.5)
	if math.Abs(node.X-55) > 0.5 {
		t.Errorf("midway X = %f, want ~55", node.X)
	}
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	if math.Abs(node.X-100) > 0.5 || math.Abs(node.Y-200) > 0.5 {
		t.Errorf("(%f, %f), want ~(100, 200)", node.X, node.Y)
	}
	if g.Kind() != KindPosition || g.Target() != node {
		t.Error("unexpected channel")
	}
}

func TestTweenToColorAllComponents(t *testing.T) {
	node := NewBox("color", Rect{}, Color{R: 1, A: 1})
	target := Color{G: 1, B: 0.5, A: 0.5}

	g := TweenTo(node, Fill(target), 1.0, ease.Linear)
	g.Update(0.5)
	g.Update(0.5)

	if !g.Done {
		t.Fatal("expected Done after full duration")
	}
	got := node.Fill
	if math.Abs(got.R-target.R) > 0.01 || math.Abs(got.G-target.G) > 0.01 ||
		math.Abs(got.B-target.B) > 0.01 || math.Abs(got.A-target.A) > 0.01 {
		t.Errorf("Fill = %+v, want %+v", got, target)
	}
}

func TestTweenToOpacityShowsNode(t *testing.T) {
	node := NewBox("fade", Rect{}, ColorWhite)
	node.Alpha, node.Visible = 0, false

	g := TweenTo(node, Opacity(1), 0.5, ease.Linear)
	g.Update(0.25)
	if !node.Visible {
		t.Error("node should become visible as soon as alpha rises")
	}
	g.Update(0.25)
	if math.Abs(node.Alpha-1) > 0.01 {
		t.Errorf("Alpha = %f, want ~1", node.Alpha)
	}
}

func TestTweenToStopsOnDisposedNode(t *testing.T) {
	node := NewBox("gone", Rect{}, ColorWhite)
	g := TweenTo(node, Position{X: 100}, 1.0, ease.Linear)
	g.Update(0.25)
	x := node.X
	node.Dispose()
	g.Update(0.25)
	if !g.Done {
		t.Error("expected Done after dispose")
	}
	if node.X != x {
		t.Errorf("disposed node written: X %f -> %f", x, node.X)
	}
}

func TestTweenToNilEaseUsesDefault(t *testing.T) {
	node := NewBox("n", Rect{}, ColorWhite)
	g := TweenTo(node, Scale(2), 1.0, nil)
	g.Update(1)
	if math.Abs(node.ScaleX-2) > 0.01 || node.ScaleX != node.ScaleY {
		t.Errorf("scale = (%f, %f), want 2", node.ScaleX, node.ScaleY)
	}
}

func TestTweenerRetargetsChannel(t *testing.T) {
	tw := NewTweener()
	node := NewBox("follow", Rect{}, ColorWhite)

	tw.To(node, 1, ease.Linear, Position{X: 100})
	tw.Update(0.5)
	mid := node.X
	if math.Abs(mid-50) > 0.5 {
		t.Fatalf("X = %f, want ~50", mid)
	}

	// Retarget mid-flight: the new tween starts where the old one is.
	tw.To(node, 1, ease.Linear, Position{X: -50})
	if tw.Len() != 1 {
		t.Errorf("Len = %d, want 1 tween per channel", tw.Len())
	}
	tw.Update(0.5)
	if want := mid + (-50-mid)*0.5; math.Abs(node.X-want) > 0.5 {
		t.Errorf("X = %f, want ~%f", node.X, want)
	}
	tw.Update(0.5)
	if math.Abs(node.X+50) > 0.5 {
		t.Errorf("X = %f, want ~-50", node.X)
	}
	if tw.Active(node, KindPosition) || tw.Len() != 0 {
		t.Error("finished tween should be dropped")
	}
}

func TestTweenerIndependentChannels(t *testing.T) {
	tw := NewTweener()
	node := NewBox("tilt", Rect{}, ColorWhite)
	tw.To(node, 0.5, ease.Linear, Rotation(0.2), Scale(1.1))
	if tw.Len() != 2 || !tw.Active(node, KindRotation) || !tw.Active(node, KindScale) {
		t.Fatalf("Len = %d, want 2 active channels", tw.Len())
	}
	tw.To(node, 0.25, ease.Linear, Rotation(0))
	tw.Update(0.25)
	if tw.Active(node, KindRotation) {
		t.Error("short rotation tween should be done")
	}
	if !tw.Active(node, KindScale) {
		t.Error("scale tween should still run")
	}
	tw.Update(0.25)
	if tw.Len() != 0 {
		t.Errorf("Len = %d, want 0", tw.Len())
	}
	if math.Abs(node.Rotation) > 0.01 || math.Abs(node.ScaleX-1.1) > 0.01 {
		t.Errorf("rotation %f scale %f", node.Rotation, node.ScaleX)
	}
}

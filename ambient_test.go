package scrollsync

import (
	"math"
	"testing"
	"time"
)

func TestBlobOffsetAtRest(t *testing.T) {
	f := FrameContext{MouseX: 400, MouseY: 300, ViewportW: 800, ViewportH: 600}
	got := BlobOffset(f, 0)
	if math.Abs(got.X) > 1e-9 || math.Abs(got.Y-30) > 1e-9 {
		t.Errorf("BlobOffset = %+v, want (0, 30)", got)
	}
}

func TestBlobOffsetParallaxGrowsWithIndex(t *testing.T) {
	center := FrameContext{MouseX: 400, MouseY: 300, ViewportW: 800, ViewportH: 600}
	moved := center
	moved.MouseX = 800

	for i := range 3 {
		d := BlobOffset(moved, i).X - BlobOffset(center, i).X
		want := 400 * (0.02 + float64(i)*0.01)
		if math.Abs(d-want) > 1e-9 {
			t.Errorf("blob %d: parallax %f, want %f", i, d, want)
		}
	}
}

func TestBlobOffsetScrollLift(t *testing.T) {
	base := FrameContext{MouseX: 400, MouseY: 300, ViewportW: 800, ViewportH: 600}
	scrolled := base
	scrolled.ScrollY = 100

	for i := range 3 {
		d := BlobOffset(scrolled, i).Y - BlobOffset(base, i).Y
		want := -100 * (0.15 + float64(i)*0.05)
		if math.Abs(d-want) > 1e-9 {
			t.Errorf("blob %d: lift %f, want %f", i, d, want)
		}
	}
}

func TestAmbientUpdateAddsToRestPosition(t *testing.T) {
	a := NewAmbient()
	blob := NewDot("blob", Rect{Width: 100, Height: 100}, ColorWhite)
	blob.X, blob.Y = 50, 60
	a.Add(blob)

	f := FrameContext{Now: 2 * time.Second, MouseX: 100, MouseY: 500, ScrollY: 40, ViewportW: 800, ViewportH: 600}
	a.Update(f)
	off := BlobOffset(f, 0)
	if blob.X != 50+off.X || blob.Y != 60+off.Y {
		t.Errorf("blob at (%f, %f), want (%f, %f)", blob.X, blob.Y, 50+off.X, 60+off.Y)
	}

	// Repeated updates do not accumulate.
	a.Update(f)
	if blob.X != 50+off.X {
		t.Errorf("second update drifted X to %f", blob.X)
	}
	if len(a.Blobs()) != 1 {
		t.Errorf("Blobs = %d, want 1", len(a.Blobs()))
	}
}

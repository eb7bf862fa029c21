package scrollsync

import (
	"errors"
	"math"
	"strings"
	"testing"
)

func zigzagAnchors() []AnchorPoint {
	return []AnchorPoint{
		{X: 200, Y: 0},
		{X: 80, Y: 100},
		{X: 320, Y: 250},
		{X: 80, Y: 400},
		{X: 200, Y: 600},
	}
}

func TestGeneratePathSegmentCount(t *testing.T) {
	for n := 2; n <= 8; n++ {
		anchors := make([]AnchorPoint, n)
		for i := range anchors {
			anchors[i] = AnchorPoint{X: float64(i%2) * 100, Y: float64(i) * 50}
		}
		geo, err := GeneratePath(anchors)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}
		if len(geo.Segments) != n-1 {
			t.Errorf("n=%d: %d segments, want %d", n, len(geo.Segments), n-1)
		}
		if got := strings.Count(geo.Data, "C "); got != n-1 {
			t.Errorf("n=%d: path data has %d curves, want %d", n, got, n-1)
		}
	}
}

func TestGeneratePathEndpoints(t *testing.T) {
	anchors := zigzagAnchors()
	geo, err := GeneratePath(anchors)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(geo.Data, "M 200 0 C ") {
		t.Errorf("Data starts %q, want first anchor", geo.Data[:12])
	}
	if !strings.HasSuffix(geo.Data, ", 200 600") {
		t.Errorf("Data = %q, want it to end at the last anchor", geo.Data)
	}
	first, last := geo.Segments[0], geo.Segments[len(geo.Segments)-1]
	if first.P0.X != 200 || first.P0.Y != 0 {
		t.Errorf("first point = %v, want (200, 0)", first.P0)
	}
	if last.P3.X != 200 || last.P3.Y != 600 {
		t.Errorf("last point = %v, want (200, 600)", last.P3)
	}
}

func TestGeneratePathData(t *testing.T) {
	geo, err := GeneratePath([]AnchorPoint{{X: 0, Y: 0}, {X: 40, Y: 100}})
	if err != nil {
		t.Fatal(err)
	}
	want := "M 0 0 C 0 50, 40 50, 40 100"
	if geo.Data != want {
		t.Errorf("Data = %q, want %q", geo.Data, want)
	}
}

func TestGeneratePathVerticalTangents(t *testing.T) {
	geo, err := GeneratePath(zigzagAnchors())
	if err != nil {
		t.Fatal(err)
	}
	for i, c := range geo.Segments {
		if c.P1.X != c.P0.X {
			t.Errorf("segment %d: cp1.x = %f, want %f (vertical departure)", i, c.P1.X, c.P0.X)
		}
		if c.P2.X != c.P3.X {
			t.Errorf("segment %d: cp2.x = %f, want %f (vertical arrival)", i, c.P2.X, c.P3.X)
		}
		dy := c.P3.Y - c.P0.Y
		if math.Abs(c.P1.Y-(c.P0.Y+dy/2)) > 1e-9 || math.Abs(c.P2.Y-(c.P3.Y-dy/2)) > 1e-9 {
			t.Errorf("segment %d: control y = %f, %f, want midpoint %f", i, c.P1.Y, c.P2.Y, c.P0.Y+dy/2)
		}
	}
	// Segments meeting at an interior anchor share its x on both sides.
	for i := 1; i < len(geo.Segments); i++ {
		in, out := geo.Segments[i-1], geo.Segments[i]
		if in.P2.X != out.P1.X {
			t.Errorf("anchor %d: incoming cp2.x %f != outgoing cp1.x %f", i, in.P2.X, out.P1.X)
		}
	}
}

func TestGeneratePathTooFewAnchors(t *testing.T) {
	for _, anchors := range [][]AnchorPoint{nil, {{X: 1, Y: 1}}} {
		geo, err := GeneratePath(anchors)
		if !errors.Is(err, ErrInvalidAnchorSet) {
			t.Errorf("len %d: err = %v, want ErrInvalidAnchorSet", len(anchors), err)
		}
		if !geo.Empty() {
			t.Errorf("len %d: expected empty geometry", len(anchors))
		}
	}
}

func TestPathLengthStraight(t *testing.T) {
	geo, err := GeneratePath([]AnchorPoint{{X: 0, Y: 0}, {X: 0, Y: 100}})
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(geo.TotalLength-100) > 1e-6 {
		t.Errorf("TotalLength = %f, want 100", geo.TotalLength)
	}
}

func TestPathLengthFlatSpan(t *testing.T) {
	geo, err := GeneratePath([]AnchorPoint{{X: 0, Y: 0}, {X: 100, Y: 0}})
	if err != nil {
		t.Fatal(err)
	}
	c := geo.Segments[0]
	if c.P1 != c.P0 || c.P2 != c.P3 {
		t.Errorf("flat span controls should collapse onto endpoints: %v", c)
	}
	if math.Abs(geo.TotalLength-100) > 1e-6 {
		t.Errorf("TotalLength = %f, want 100", geo.TotalLength)
	}
}

func TestPathLengthCurveExceedsChord(t *testing.T) {
	anchors := zigzagAnchors()
	geo, err := GeneratePath(anchors)
	if err != nil {
		t.Fatal(err)
	}
	var chords, polys float64
	for _, c := range geo.Segments {
		chords += c.P3.Sub(c.P0).Length()
		polys += c.P1.Sub(c.P0).Length() + c.P2.Sub(c.P1).Length() + c.P3.Sub(c.P2).Length()
	}
	if geo.TotalLength <= chords {
		t.Errorf("TotalLength %f should exceed summed chords %f", geo.TotalLength, chords)
	}
	if geo.TotalLength >= polys {
		t.Errorf("TotalLength %f should be below summed control polygons %f", geo.TotalLength, polys)
	}
}

func TestPointAtLength(t *testing.T) {
	geo, err := GeneratePath([]AnchorPoint{{X: 10, Y: 0}, {X: 10, Y: 200}})
	if err != nil {
		t.Fatal(err)
	}
	if p := geo.PointAtLength(-5); p.X != 10 || p.Y != 0 {
		t.Errorf("PointAtLength(-5) = %v, want start", p)
	}
	if p := geo.PointAtLength(1e6); math.Abs(p.X-10) > 1e-9 || math.Abs(p.Y-200) > 1e-9 {
		t.Errorf("PointAtLength(big) = %v, want end", p)
	}
	p := geo.PointAtLength(100)
	if math.Abs(p.X-10) > 1e-6 || math.Abs(p.Y-100) > 1 {
		t.Errorf("PointAtLength(100) = %v, want ~(10, 100)", p)
	}
}

func TestFlattenPartial(t *testing.T) {
	geo, err := GeneratePath(zigzagAnchors())
	if err != nil {
		t.Fatal(err)
	}
	if pts := geo.Flatten(0); pts != nil {
		t.Errorf("Flatten(0) = %d points, want none", len(pts))
	}
	full := geo.Flatten(geo.TotalLength)
	end := full[len(full)-1]
	if math.Abs(end.X-200) > 1e-9 || math.Abs(end.Y-600) > 1e-9 {
		t.Errorf("Flatten(total) ends at %v, want (200, 600)", end)
	}
	half := geo.Flatten(geo.TotalLength / 2)
	want := geo.PointAtLength(geo.TotalLength / 2)
	if got := half[len(half)-1]; got != want {
		t.Errorf("Flatten(half) ends at %v, want %v", got, want)
	}
	if len(half) >= len(full) {
		t.Errorf("partial polyline has %d points, full has %d", len(half), len(full))
	}
}

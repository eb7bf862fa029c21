package scrollsync

import (
	"sort"
	"strconv"
	"strings"

	"github.com/gogpu/gg"
)

const (
	// arcTolerance bounds the gap between chord and control polygon length
	// (in pixels) below which a sub-curve is measured directly.
	arcTolerance = 0.05
	arcMaxDepth  = 16

	// flattenSteps is the number of polyline samples per cubic segment kept
	// for stroke drawing and PointAtLength.
	flattenSteps = 24
)

// PathGeometry is the output of GeneratePath.
type PathGeometry struct {
	// Data is SVG path data: "M x y C cx1 cy1, cx2 cy2, x y ...".
	Data string
	// Segments holds one cubic per consecutive anchor pair.
	Segments []gg.CubicBez
	// TotalLength is the arc length of the whole curve.
	TotalLength float64

	flat []flatPoint
}

type flatPoint struct {
	p    gg.Point
	dist float64 // arc length from the start of the path
}

// Empty reports whether no geometry has been generated yet.
func (g PathGeometry) Empty() bool {
	return len(g.Segments) == 0
}

// GeneratePath builds the connector curve through anchors. Each segment
// leaves and enters its anchors vertically: for p1 -> p2 with dy = p2.y-p1.y
// the controls are (p1.x, p1.y+dy/2) and (p2.x, p2.y-dy/2). A flat span
// (dy == 0) collapses the controls onto the endpoints and draws a straight
// horizontal segment.
func GeneratePath(anchors []AnchorPoint) (PathGeometry, error) {
	if len(anchors) < 2 {
		return PathGeometry{}, ErrInvalidAnchorSet
	}

	var sb strings.Builder
	sb.Grow(len(anchors) * 48)
	sb.WriteString("M ")
	writePoint(&sb, anchors[0].X, anchors[0].Y)

	geo := PathGeometry{Segments: make([]gg.CubicBez, 0, len(anchors)-1)}
	for i := 0; i < len(anchors)-1; i++ {
		p1, p2 := anchors[i], anchors[i+1]
		dy := p2.Y - p1.Y
		c := gg.NewCubicBez(
			gg.Pt(p1.X, p1.Y),
			gg.Pt(p1.X, p1.Y+dy*0.5),
			gg.Pt(p2.X, p2.Y-dy*0.5),
			gg.Pt(p2.X, p2.Y),
		)
		geo.Segments = append(geo.Segments, c)

		sb.WriteString(" C ")
		writePoint(&sb, c.P1.X, c.P1.Y)
		sb.WriteString(", ")
		writePoint(&sb, c.P2.X, c.P2.Y)
		sb.WriteString(", ")
		writePoint(&sb, c.P3.X, c.P3.Y)
	}
	geo.Data = sb.String()
	geo.flatten()
	return geo, nil
}

func writePoint(sb *strings.Builder, x, y float64) {
	var buf [32]byte
	sb.Write(strconv.AppendFloat(buf[:0], x, 'f', -1, 64))
	sb.WriteByte(' ')
	sb.Write(strconv.AppendFloat(buf[:0], y, 'f', -1, 64))
}

// CubicArcLength measures a cubic Bezier by recursive subdivision. Bezier
// arc length has no closed form; each leaf uses the mean of chord and
// control-polygon length, which converges as the pieces flatten.
func CubicArcLength(c gg.CubicBez) float64 {
	return cubicArcLength(c, arcTolerance, 0)
}

func cubicArcLength(c gg.CubicBez, tol float64, depth int) float64 {
	chord := c.P3.Sub(c.P0).Length()
	poly := c.P1.Sub(c.P0).Length() + c.P2.Sub(c.P1).Length() + c.P3.Sub(c.P2).Length()
	if poly-chord <= tol || depth >= arcMaxDepth {
		return (chord + poly) / 2
	}
	a, b := c.Subdivide()
	return cubicArcLength(a, tol/2, depth+1) + cubicArcLength(b, tol/2, depth+1)
}

// flatten measures every segment and caches a polyline whose distances are
// rescaled to the measured arc length.
func (g *PathGeometry) flatten() {
	g.flat = make([]flatPoint, 0, len(g.Segments)*flattenSteps+1)
	g.flat = append(g.flat, flatPoint{p: g.Segments[0].P0})
	var total float64
	for _, c := range g.Segments {
		segLen := CubicArcLength(c)
		pts := make([]gg.Point, flattenSteps+1)
		var polyLen float64
		for i := 0; i <= flattenSteps; i++ {
			pts[i] = c.Eval(float64(i) / flattenSteps)
			if i > 0 {
				polyLen += pts[i].Sub(pts[i-1]).Length()
			}
		}
		scale := 1.0
		if polyLen > 0 {
			scale = segLen / polyLen
		}
		var acc float64
		for i := 1; i <= flattenSteps; i++ {
			acc += pts[i].Sub(pts[i-1]).Length() * scale
			g.flat = append(g.flat, flatPoint{p: pts[i], dist: total + acc})
		}
		total += segLen
		g.flat[len(g.flat)-1].dist = total
	}
	g.TotalLength = total
}

// PointAtLength returns the point at arc length l along the path, clamped to
// the path's ends.
func (g PathGeometry) PointAtLength(l float64) gg.Point {
	if len(g.flat) == 0 {
		return gg.Point{}
	}
	if l <= 0 {
		return g.flat[0].p
	}
	if l >= g.TotalLength {
		return g.flat[len(g.flat)-1].p
	}
	i := sort.Search(len(g.flat), func(i int) bool { return g.flat[i].dist >= l })
	a, b := g.flat[i-1], g.flat[i]
	span := b.dist - a.dist
	if span <= 0 {
		return b.p
	}
	return a.p.Lerp(b.p, (l-a.dist)/span)
}

// Flatten returns the polyline of the first upTo units of the path, ending
// exactly at PointAtLength(upTo). The render surface strokes it to draw a
// partially revealed curve.
func (g PathGeometry) Flatten(upTo float64) []gg.Point {
	if len(g.flat) == 0 || upTo <= 0 {
		return nil
	}
	out := make([]gg.Point, 0, len(g.flat))
	for _, fp := range g.flat {
		if fp.dist > upTo {
			break
		}
		out = append(out, fp.p)
	}
	if upTo < g.TotalLength {
		out = append(out, g.PointAtLength(upTo))
	}
	return out
}

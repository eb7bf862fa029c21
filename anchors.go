package scrollsync

// PathConfig controls how anchors are derived from layout rectangles.
type PathConfig struct {
	// Breakpoint is the viewport width at or below which anchors zig-zag
	// around the centerline instead of following element centers.
	Breakpoint float64 `yaml:"breakpoint"`
	// LateralBudget caps the zig-zag offset in pixels.
	LateralBudget float64 `yaml:"lateral_budget"`
	// LateralFraction caps the zig-zag offset as a fraction of viewport width.
	LateralFraction float64 `yaml:"lateral_fraction"`
}

// DefaultPathConfig returns the layout policy used when none is configured.
func DefaultPathConfig() PathConfig {
	return PathConfig{
		Breakpoint:      768,
		LateralBudget:   150,
		LateralFraction: 0.3,
	}
}

// LateralOffset returns the zig-zag offset for a viewport width: the lesser
// of the pixel budget and the viewport fraction.
func (c PathConfig) LateralOffset(viewportW float64) float64 {
	return max(min(c.LateralBudget, c.LateralFraction*viewportW), 0)
}

// LayoutAnchors converts viewport-relative element rectangles into page
// anchors for GeneratePath. A synthetic start at the top of the page and a
// synthetic end at the document bottom, both on the centerline, are always
// added. Anchor y never decreases along the sequence.
func LayoutAnchors(rects []Rect, m LayoutMetrics, cfg PathConfig) []AnchorPoint {
	centerX := m.ViewportW / 2
	narrow := m.ViewportW <= cfg.Breakpoint
	offset := cfg.LateralOffset(m.ViewportW)

	points := make([]AnchorPoint, 0, len(rects)+2)
	points = append(points, AnchorPoint{X: centerX, Y: 0})

	lastY := 0.0
	for i, r := range rects {
		y := max(r.Y+m.ScrollY+r.Height/2, lastY)
		lastY = y

		x := r.X + r.Width/2
		if narrow {
			dir := 1.0
			if i%2 == 0 {
				dir = -1
			}
			x = centerX + dir*offset
		}
		points = append(points, AnchorPoint{X: x, Y: y})
	}

	points = append(points, AnchorPoint{X: centerX, Y: max(m.DocumentHeight, lastY)})
	return points
}

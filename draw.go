package scrollsync

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

const (
	pathStrokeWidth   = 3
	borderStrokeWidth = 1
)

var whitePixel *ebiten.Image

// solidSource returns a 1x1 white image used as the source of filled
// triangles. Created lazily so headless use never touches the GPU.
func solidSource() *ebiten.Image {
	if whitePixel == nil {
		whitePixel = ebiten.NewImage(1, 1)
		whitePixel.Fill(ColorWhite.RGBA())
	}
	return whitePixel
}

// Draw renders the page: background, the revealed part of the connector,
// then every visible node in tree order, offset by the scroll position.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(p.Background.RGBA())

	scroll := p.viewport.ScrollY
	p.drawPath(screen, scroll)
	view := p.viewport.VisibleBounds()
	for _, c := range p.root.children {
		if c.Role == RolePath {
			continue
		}
		p.drawNode(screen, c, scroll, view)
	}

	if p.fps != nil {
		p.fps.draw(screen, p)
	}
	p.flushScreenshots(screen)
}

func (p *Page) drawPath(screen *ebiten.Image, scroll float64) {
	n := p.engine.PathNode()
	geo := p.engine.Path()
	if geo.Empty() || !n.Visible {
		return
	}
	pts := geo.Flatten(p.engine.DrawnLength())
	if len(pts) < 2 {
		return
	}
	stroke := n.Border
	stroke.A *= n.WorldAlpha()
	clr := stroke.RGBA()
	for i := 1; i < len(pts); i++ {
		a, b := pts[i-1], pts[i]
		vector.StrokeLine(screen,
			float32(a.X), float32(a.Y-scroll),
			float32(b.X), float32(b.Y-scroll),
			pathStrokeWidth, clr, true)
	}
}

func (p *Page) drawNode(screen *ebiten.Image, n *Node, scroll float64, view Rect) {
	if !n.Visible || n.IsDisposed() {
		return
	}
	alpha := n.WorldAlpha()
	origin := n.WorldOrigin()
	x, y := origin.X, origin.Y-scroll
	w, h := n.Bounds.Width, n.Bounds.Height

	onScreen := Rect{X: origin.X, Y: origin.Y, Width: w * n.ScaleX, Height: h * n.ScaleY}.Intersects(view)
	if alpha > 0 && (onScreen || n.Role == RoleContainer) {
		switch n.Role {
		case RoleBox:
			quad := transformedRect(x, y, w, h, n.ScaleX, n.ScaleY, n.Rotation)
			fillPolygon(screen, quad[:], withAlpha(n.Fill, alpha))
			if n.Border.A > 0 {
				strokePolygon(screen, quad[:], withAlpha(n.Border, alpha))
			}
		case RoleDot:
			r := w / 2 * n.ScaleX
			if r > 0 {
				vector.DrawFilledCircle(screen, float32(x+w/2), float32(y+h/2), float32(r), withAlpha(n.Fill, alpha).RGBA(), true)
			}
		case RoleCursor:
			s := n.ScaleX
			arrow := []Vec2{
				{X: x, Y: y},
				{X: x + 11*s, Y: y + 11*s},
				{X: x + 4*s, Y: y + 12*s},
				{X: x, Y: y + 17*s},
			}
			fillPolygon(screen, arrow, withAlpha(n.Fill, alpha))
		case RoleText:
			drawText(screen, n, x, y, alpha)
		}
	}

	for _, c := range n.children {
		p.drawNode(screen, c, scroll, view)
	}
}

func withAlpha(c Color, alpha float64) Color {
	c.A *= alpha
	return c
}

// transformedRect returns the corners of a w*h rectangle at (x, y) scaled
// and rotated about its center.
func transformedRect(x, y, w, h, sx, sy, rot float64) [4]Vec2 {
	cx, cy := x+w/2, y+h/2
	hw, hh := w*sx/2, h*sy/2
	sin, cos := math.Sincos(rot)
	corners := [4]Vec2{{X: -hw, Y: -hh}, {X: hw, Y: -hh}, {X: hw, Y: hh}, {X: -hw, Y: hh}}
	for i, c := range corners {
		corners[i] = Vec2{X: cx + c.X*cos - c.Y*sin, Y: cy + c.X*sin + c.Y*cos}
	}
	return corners
}

// fillPolygon fills a convex polygon as a triangle fan.
func fillPolygon(dst *ebiten.Image, pts []Vec2, c Color) {
	if len(pts) < 3 || c.A <= 0 {
		return
	}
	verts := make([]ebiten.Vertex, len(pts))
	for i, pt := range pts {
		verts[i] = ebiten.Vertex{
			DstX: float32(pt.X), DstY: float32(pt.Y),
			SrcX: 0.5, SrcY: 0.5,
			ColorR: float32(c.R), ColorG: float32(c.G), ColorB: float32(c.B), ColorA: float32(c.A),
		}
	}
	indices := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i < len(pts)-1; i++ {
		indices = append(indices, 0, uint16(i), uint16(i+1))
	}
	op := &ebiten.DrawTrianglesOptions{AntiAlias: true}
	dst.DrawTriangles(verts, indices, solidSource(), op)
}

func strokePolygon(dst *ebiten.Image, pts []Vec2, c Color) {
	clr := c.RGBA()
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		vector.StrokeLine(dst, float32(a.X), float32(a.Y), float32(b.X), float32(b.Y), borderStrokeWidth, clr, true)
	}
}

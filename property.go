package scrollsync

import (
	"fmt"
	"math"
)

// PropertyKind identifies one animatable channel of a Node.
type PropertyKind uint8

const (
	KindPosition   PropertyKind = iota // X, Y translation
	KindScale                          // uniform ScaleX/ScaleY
	KindRotation                       // radians
	KindOpacity                        // Alpha, with auto-visibility
	KindFill                           // Fill color
	KindBorder                         // Border color
	KindTextColor                      // TextColor
	KindReveal                         // number of visible characters
	KindDashOffset                     // path stroke offset
)

var kindNames = [...]string{
	KindPosition:   "position",
	KindScale:      "scale",
	KindRotation:   "rotation",
	KindOpacity:    "opacity",
	KindFill:       "fill",
	KindBorder:     "border",
	KindTextColor:  "textColor",
	KindReveal:     "reveal",
	KindDashOffset: "dashOffset",
}

func (k PropertyKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("PropertyKind(%d)", k)
}

// Property is an end value for one channel. The concrete types below form a
// closed set; each maps onto exactly one typed setter on Node.
type Property interface {
	Kind() PropertyKind
	values() propVec
}

// Position animates the node's X/Y translation.
type Position struct{ X, Y float64 }

// Scale animates ScaleX and ScaleY together.
type Scale float64

// Rotation animates the node's rotation in radians.
type Rotation float64

// Opacity animates Alpha. A node whose Alpha reaches 0 is hidden and shown
// again as soon as it rises above 0.
type Opacity float64

// Fill animates the fill color.
type Fill Color

// Border animates the border (or stroke) color.
type Border Color

// TextColor animates the text color.
type TextColor Color

// Reveal animates the number of visible characters of a text node.
type Reveal int

// DashOffset animates the hidden tail length of a path stroke.
type DashOffset float64

func (Position) Kind() PropertyKind   { return KindPosition }
func (Scale) Kind() PropertyKind      { return KindScale }
func (Rotation) Kind() PropertyKind   { return KindRotation }
func (Opacity) Kind() PropertyKind    { return KindOpacity }
func (Fill) Kind() PropertyKind       { return KindFill }
func (Border) Kind() PropertyKind     { return KindBorder }
func (TextColor) Kind() PropertyKind  { return KindTextColor }
func (Reveal) Kind() PropertyKind     { return KindReveal }
func (DashOffset) Kind() PropertyKind { return KindDashOffset }

func (p Position) values() propVec   { return propVec{v: [4]float64{p.X, p.Y}, n: 2} }
func (p Scale) values() propVec      { return scalar(float64(p)) }
func (p Rotation) values() propVec   { return scalar(float64(p)) }
func (p Opacity) values() propVec    { return scalar(float64(p)) }
func (p Fill) values() propVec       { return colorVec(Color(p)) }
func (p Border) values() propVec     { return colorVec(Color(p)) }
func (p TextColor) values() propVec  { return colorVec(Color(p)) }
func (p Reveal) values() propVec     { return scalar(float64(p)) }
func (p DashOffset) values() propVec { return scalar(float64(p)) }

// propVec holds up to four float components of a channel value.
type propVec struct {
	v [4]float64
	n int
}

func scalar(f float64) propVec { return propVec{v: [4]float64{f}, n: 1} }

func colorVec(c Color) propVec { return propVec{v: [4]float64{c.R, c.G, c.B, c.A}, n: 4} }

func (p propVec) color() Color { return Color{R: p.v[0], G: p.v[1], B: p.v[2], A: p.v[3]} }

// lerp interpolates each component; f is the eased fraction and may leave
// [0, 1] for overshooting eases.
func (p propVec) lerp(to propVec, f float64) propVec {
	out := propVec{n: p.n}
	for i := 0; i < p.n; i++ {
		out.v[i] = p.v[i] + (to.v[i]-p.v[i])*f
	}
	return out
}

// Markers stored in the unused fourth component of captured opacity and
// reveal values. Interpolated values leave it zero.
const (
	visibleShown  = 1
	visibleHidden = 2
	revealAll     = 1
)

// channel identifies one property of one node.
type channel struct {
	target *Node
	kind   PropertyKind
}

// readChannel captures the current value of a channel.
func readChannel(n *Node, k PropertyKind) propVec {
	switch k {
	case KindPosition:
		return Position{n.X, n.Y}.values()
	case KindScale:
		return scalar(n.ScaleX)
	case KindRotation:
		return scalar(n.Rotation)
	case KindOpacity:
		// The snapshot keeps the visibility flag so a reset restores it
		// exactly instead of deriving it from Alpha.
		v := scalar(n.Alpha)
		v.v[3] = visibleHidden
		if n.Visible {
			v.v[3] = visibleShown
		}
		return v
	case KindFill:
		return colorVec(n.Fill)
	case KindBorder:
		return colorVec(n.Border)
	case KindTextColor:
		return colorVec(n.TextColor)
	case KindReveal:
		if n.Reveal < 0 {
			v := scalar(float64(len([]rune(n.Text))))
			v.v[3] = revealAll
			return v
		}
		return scalar(float64(n.Reveal))
	case KindDashOffset:
		return scalar(n.DashOffset)
	}
	panic(fmt.Sprintf("scrollsync: unknown property kind %d", k))
}

// writeChannel is the typed setter for every property kind.
func writeChannel(n *Node, k PropertyKind, p propVec) {
	switch k {
	case KindPosition:
		n.X, n.Y = p.v[0], p.v[1]
	case KindScale:
		n.ScaleX, n.ScaleY = p.v[0], p.v[0]
	case KindRotation:
		n.Rotation = p.v[0]
	case KindOpacity:
		n.Alpha = p.v[0]
		switch p.v[3] {
		case visibleShown:
			n.Visible = true
		case visibleHidden:
			n.Visible = false
		default:
			n.Visible = p.v[0] > 0
		}
	case KindFill:
		n.Fill = p.color()
	case KindBorder:
		n.Border = p.color()
	case KindTextColor:
		n.TextColor = p.color()
	case KindReveal:
		if p.v[3] == revealAll {
			n.Reveal = -1
			return
		}
		n.Reveal = int(math.Round(p.v[0]))
	case KindDashOffset:
		n.DashOffset = p.v[0]
	default:
		panic(fmt.Sprintf("scrollsync: unknown property kind %d", k))
	}
}

package scrollsync

import (
	"bytes"
	"fmt"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFontSize is the size of the font used for text nodes that do not
// set their own.
const DefaultFontSize = 16

// Font wraps Ebitengine's text/v2 for TrueType text.
type Font struct {
	face *text.GoTextFace
	lh   float64 // cached line height
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("scrollsync: parse font: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{Source: source, Size: size}
	m := face.Metrics()
	return &Font{face: face, lh: m.HAscent + m.HDescent + m.HLineGap}
}

// WithSize returns a font sharing f's glyph source at another size.
func (f *Font) WithSize(size float64) *Font {
	return newFont(f.face.Source, size)
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 { return f.face.Size }

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 { return f.lh }

var defaultFont *Font

// DefaultFont returns Go Regular at DefaultFontSize, parsed on first use.
func DefaultFont() *Font {
	if defaultFont == nil {
		f, err := LoadFont(goregular.TTF, DefaultFontSize)
		if err != nil {
			panic(err)
		}
		defaultFont = f
	}
	return defaultFont
}

// fontFor returns the node's font or the default.
func fontFor(n *Node) *Font {
	if n.Font != nil {
		return n.Font
	}
	return DefaultFont()
}

// drawText renders the revealed text of n with its top-left at (x, y),
// scaled and rotated about the node's layout center.
func drawText(dst *ebiten.Image, n *Node, x, y, alpha float64) {
	s := n.VisibleText()
	if s == "" {
		return
	}
	f := fontFor(n)
	cx, cy := n.Bounds.Width/2, n.Bounds.Height/2

	op := &text.DrawOptions{}
	op.GeoM.Translate(-cx, -cy)
	op.GeoM.Scale(n.ScaleX, n.ScaleY)
	if n.Rotation != 0 {
		op.GeoM.Rotate(n.Rotation)
	}
	op.GeoM.Translate(math.Round(x+cx), math.Round(y+cy))
	c := n.TextColor
	op.ColorScale.Scale(float32(c.R), float32(c.G), float32(c.B), float32(c.A*alpha))
	op.LineSpacing = f.lh
	text.Draw(dst, s, f.face, op)
}

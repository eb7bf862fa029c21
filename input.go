package scrollsync

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/tanema/gween/ease"
)

const (
	wheelStep   = 60.0 // pixels per wheel notch
	arrowStep   = 10.0 // pixels per frame while an arrow key is held
	pageFactor  = 0.9  // fraction of the viewport a page key scrolls
	keyScrollIn = 0.45 // seconds for animated key scrolls
)

// pollInput reads the Ebitengine mouse wheel, cursor and scroll keys into
// the page. Window size changes arrive through Layout instead.
func (p *Page) pollInput() {
	cx, cy := ebiten.CursorPosition()
	p.mouseX, p.mouseY = float64(cx), float64(cy)

	if _, wy := ebiten.Wheel(); wy != 0 {
		p.viewport.ScrollBy(-wy * wheelStep)
	}

	v := p.viewport
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyPageDown), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		v.ScrollTo(v.ScrollY+v.Height*pageFactor, keyScrollIn, ease.InOutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyPageUp):
		v.ScrollTo(v.ScrollY-v.Height*pageFactor, keyScrollIn, ease.InOutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyHome):
		v.ScrollTo(0, keyScrollIn*2, ease.InOutCubic)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnd):
		v.ScrollTo(v.MaxScroll(), keyScrollIn*2, ease.InOutCubic)
	case ebiten.IsKeyPressed(ebiten.KeyArrowDown):
		v.ScrollBy(arrowStep)
	case ebiten.IsKeyPressed(ebiten.KeyArrowUp):
		v.ScrollBy(-arrowStep)
	}
}

// resize applies an outside window size to the viewport and root bounds.
// The engine notices the change on its next Tick and debounces a rebuild.
func (p *Page) resize(w, h int) {
	fw, fh := float64(w), float64(h)
	if fw == p.viewport.Width && fh == p.viewport.Height {
		return
	}
	p.viewport.Resize(fw, fh)
	p.root.Bounds.Width, p.root.Bounds.Height = fw, fh
}

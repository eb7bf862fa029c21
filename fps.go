package scrollsync

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// fpsOverlay shows FPS, TPS, scroll and connector progress in the top-left
// corner. The text is refreshed every ~0.5 seconds.
type fpsOverlay struct {
	since float64
	text  string
}

func newFPSOverlay() *fpsOverlay {
	return &fpsOverlay{since: 0.5}
}

func (o *fpsOverlay) update(dt float64) {
	o.since += dt
}

func (o *fpsOverlay) draw(screen *ebiten.Image, p *Page) {
	if o.since >= 0.5 {
		o.since = 0
		v := p.viewport
		o.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nscroll: %.0f/%.0f\npath: %.0f/%.0f",
			ebiten.ActualFPS(), ebiten.ActualTPS(),
			v.ScrollY, v.MaxScroll(),
			p.engine.DrawnLength(), p.engine.Path().TotalLength)
	}
	// Semi-transparent background for readability
	vector.DrawFilledRect(screen, 0, 0, 130, 64, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrint(screen, o.text)
}

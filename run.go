package scrollsync

import "github.com/hajimehoshi/ebiten/v2"

// RunConfig configures the window opened by Run. Zero fields fall back to
// the page's Config.Window values.
type RunConfig struct {
	Title   string
	Width   int
	Height  int
	ShowFPS bool
}

// game adapts a Page to ebiten.Game.
type game struct {
	page *Page
}

func (g *game) Update() error {
	g.page.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.page.Draw(screen)
}

func (g *game) Layout(outsideW, outsideH int) (int, int) {
	g.page.resize(outsideW, outsideH)
	return outsideW, outsideH
}

// Run opens a resizable window and runs page until the window is closed.
func Run(page *Page, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = int(page.viewport.Width), int(page.viewport.Height)
	}
	title := cfg.Title
	if title == "" {
		title = page.engine.Config().Window.Title
	}
	if cfg.ShowFPS && page.fps == nil {
		page.fps = newFPSOverlay()
	}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	defer page.Close()
	return ebiten.RunGame(&game{page: page})
}

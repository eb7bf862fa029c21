package scrollsync

import (
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Page is the top-level object that owns the node tree, the viewport, the
// engine and the per-frame input state. It is the LayoutSource its Engine
// queries on every rebuild.
type Page struct {
	root     *Node
	viewport *Viewport
	engine   *Engine
	tweener  *Tweener
	ambient  *Ambient

	// Background is the clear color used by Draw.
	Background Color

	clock          time.Duration
	frame          FrameContext
	frames         int
	mouseX, mouseY float64
	updateFunc     func(FrameContext)

	injectQueue []syntheticEvent
	testRunner  *TestRunner
	snapshots   []Snapshot

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string

	fps *fpsOverlay
}

// NewPage creates a page sized by cfg.Window with an engine configured by
// cfg. The connector node is the first child of the root so content draws
// over it.
func NewPage(cfg Config) *Page {
	if err := cfg.normalize(); err != nil {
		debugf("page config: %v; using defaults", err)
		cfg = DefaultConfig()
	}
	bg, _ := ParseHexColor(cfg.Window.Background)
	w, h := float64(cfg.Window.Width), float64(cfg.Window.Height)
	p := &Page{
		root:          NewContainer("root", Rect{Width: w, Height: h}),
		viewport:      newViewport(w, h),
		tweener:       NewTweener(),
		ambient:       NewAmbient(),
		Background:    bg,
		mouseX:        w / 2,
		mouseY:        h / 2,
		ScreenshotDir: "screenshots",
	}
	p.engine = NewEngine(cfg, p)
	p.root.AddChild(p.engine.PathNode())
	if cfg.Window.ShowFPS {
		p.fps = newFPSOverlay()
	}
	return p
}

// Root returns the page's root container node.
func (p *Page) Root() *Node { return p.root }

// Viewport returns the page's viewport.
func (p *Page) Viewport() *Viewport { return p.viewport }

// Engine returns the page's engine.
func (p *Page) Engine() *Engine { return p.engine }

// Tweener returns the one-shot tween runner stepped by the page.
func (p *Page) Tweener() *Tweener { return p.tweener }

// Ambient returns the background blob set stepped by the page.
func (p *Page) Ambient() *Ambient { return p.ambient }

// Now returns the page clock.
func (p *Page) Now() time.Duration { return p.clock }

// Frame returns the FrameContext of the most recent Step.
func (p *Page) Frame() FrameContext { return p.frame }

// Frames returns how many frames have been stepped.
func (p *Page) Frames() int { return p.frames }

// Bind attaches a scroll binding to the page's engine.
func (p *Page) Bind(b Binding) (*Subscription, error) { return p.engine.Bind(b) }

// SetUpdateFunc registers a callback run every frame after the pointer and
// scroll state are updated and before the engine ticks.
func (p *Page) SetUpdateFunc(fn func(FrameContext)) {
	p.updateFunc = fn
}

// Pointer returns the pointer in viewport coordinates.
func (p *Page) Pointer() (x, y float64) { return p.mouseX, p.mouseY }

// Hovered reports whether the pointer is over n's layout rectangle.
func (p *Page) Hovered(n *Node) bool {
	x, y := p.viewport.ToPage(p.mouseX, p.mouseY)
	return n.PageRect().Contains(x, y)
}

// PathTargets returns the viewport-relative rectangles of every node marked
// PathTarget, in tree order.
func (p *Page) PathTargets() []Rect {
	var rects []Rect
	p.root.Walk(func(n *Node) {
		if n.PathTarget && !n.IsDisposed() {
			rects = append(rects, n.PageRect().Translate(0, -p.viewport.ScrollY))
		}
	})
	return rects
}

// Metrics returns the viewport metrics with the document height refreshed
// from the node tree.
func (p *Page) Metrics() LayoutMetrics {
	p.syncDocumentHeight()
	return p.viewport.Metrics()
}

// TriggerRect returns n's layout rectangle in page coordinates.
func (p *Page) TriggerRect(n *Node) Rect {
	return n.PageRect()
}

// syncDocumentHeight sets the document height to the bottom of the lowest
// content node, and never less than the viewport.
func (p *Page) syncDocumentHeight() {
	bottom := p.viewport.Height
	for _, c := range p.root.children {
		if c.Role == RolePath {
			continue
		}
		r := c.PageRect()
		bottom = max(bottom, r.Y+r.Height)
	}
	p.viewport.DocumentHeight = bottom
}

// Update reads Ebitengine input and steps one frame at the current TPS.
// Injected events and an attached TestRunner take priority over real input.
func (p *Page) Update() {
	if p.testRunner == nil && len(p.injectQueue) == 0 {
		p.pollInput()
	}
	p.Step(1.0 / float64(ebiten.TPS()))
	if p.fps != nil {
		p.fps.update(p.frame.Dt)
	}
}

// Step advances the page by dt seconds without reading any device input:
// runner and injected events, viewport scroll animation, one-shot tweens,
// ambient drift, the update callback and finally the engine.
func (p *Page) Step(dt float64) {
	if p.testRunner != nil {
		p.testRunner.step(p)
	}
	p.processInjected()
	p.syncDocumentHeight()
	p.viewport.update(float32(dt))
	p.clock += time.Duration(dt * float64(time.Second))

	f := FrameContext{
		Now:       p.clock,
		Dt:        dt,
		ScrollY:   p.viewport.ScrollY,
		MouseX:    p.mouseX,
		MouseY:    p.mouseY,
		ViewportW: p.viewport.Width,
		ViewportH: p.viewport.Height,
	}
	p.frame = f

	p.tweener.Update(float32(dt))
	p.ambient.Update(f)
	if p.updateFunc != nil {
		p.updateFunc(f)
	}
	p.engine.Tick(f)
	p.frames++
}

// Close tears down the engine's bindings.
func (p *Page) Close() {
	p.engine.Close()
}

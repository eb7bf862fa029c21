package scrollsync

import (
	"errors"
	"math"
	"testing"
	"time"
)

type fakeHost struct {
	targets []Rect
	m       LayoutMetrics
	queries int
}

func (h *fakeHost) PathTargets() []Rect {
	h.queries++
	return h.targets
}
func (h *fakeHost) Metrics() LayoutMetrics   { return h.m }
func (h *fakeHost) TriggerRect(n *Node) Rect { return n.PageRect() }

func newFakeHost() *fakeHost {
	return &fakeHost{
		targets: []Rect{
			{X: 100, Y: 400, Width: 300, Height: 100},
			{X: 800, Y: 1200, Width: 300, Height: 100},
			{X: 100, Y: 2000, Width: 300, Height: 100},
		},
		m: LayoutMetrics{ViewportW: 1200, ViewportH: 800, DocumentHeight: 3000},
	}
}

func engineFrame(now time.Duration, scrollY float64, h *fakeHost) FrameContext {
	return FrameContext{
		Now:       now,
		Dt:        1.0 / 60,
		ScrollY:   scrollY,
		ViewportW: h.m.ViewportW,
		ViewportH: h.m.ViewportH,
	}
}

func newTestEngine(h *fakeHost) *Engine {
	cfg := DefaultConfig()
	cfg.ScrubSmooth = 0
	return NewEngine(cfg, h)
}

func TestEngineInitialRebuildIsDebounced(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	if !e.Path().Empty() {
		t.Fatal("path built before the first tick")
	}
	e.Tick(engineFrame(50*time.Millisecond, 0, h))
	if e.Rebuilds() != 0 {
		t.Fatalf("rebuilt inside the quiet period")
	}
	e.Tick(engineFrame(100*time.Millisecond, 0, h))
	if e.Rebuilds() != 1 {
		t.Fatalf("Rebuilds = %d, want 1", e.Rebuilds())
	}
	if len(e.Anchors()) != 5 {
		t.Errorf("anchors = %d, want 5", len(e.Anchors()))
	}
	if len(e.Path().Segments) != 4 || e.Path().TotalLength <= 0 {
		t.Errorf("path: %d segments, length %g", len(e.Path().Segments), e.Path().TotalLength)
	}
}

func TestEngineScrollDrawsPath(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	e.Tick(engineFrame(0, 0, h))
	e.Tick(engineFrame(100*time.Millisecond, 0, h))

	total := e.Path().TotalLength
	if e.DrawnLength() != 0 || e.PathNode().DashOffset != total {
		t.Errorf("at top: drawn %g dash %g, want 0, %g", e.DrawnLength(), e.PathNode().DashOffset, total)
	}

	maxScroll := h.m.MaxScroll()
	e.Tick(engineFrame(120*time.Millisecond, maxScroll/2, h))
	if got := e.DrawnLength(); math.Abs(got-total/2) > 1e-6 {
		t.Errorf("halfway: drawn %g, want %g", got, total/2)
	}
	e.Tick(engineFrame(140*time.Millisecond, maxScroll, h))
	if got := e.DrawnLength(); got != total {
		t.Errorf("at bottom: drawn %g, want %g", got, total)
	}
	e.Tick(engineFrame(160*time.Millisecond, 0, h))
	if got := e.DrawnLength(); got != 0 {
		t.Errorf("back at top: drawn %g, want 0", got)
	}
}

func TestEngineResizeRebuildReplacesTimeline(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	e.Tick(engineFrame(0, 0, h))
	e.Tick(engineFrame(100*time.Millisecond, 0, h))
	first := e.PathTimeline()
	firstLen := e.Path().TotalLength

	// A burst of resizes ending in a narrow layout.
	now := 200 * time.Millisecond
	for _, w := range []float64{1000, 800, 600, 400} {
		h.m.ViewportW = w
		e.Tick(engineFrame(now, 0, h))
		now += 10 * time.Millisecond
	}
	if e.Rebuilds() != 1 {
		t.Fatalf("rebuilt during the burst: %d", e.Rebuilds())
	}
	e.Tick(engineFrame(now+100*time.Millisecond, 0, h))
	if e.Rebuilds() != 2 {
		t.Fatalf("Rebuilds = %d, want 2", e.Rebuilds())
	}
	if !first.IsDead() {
		t.Error("previous path timeline should be killed")
	}
	if e.PathTimeline() == first || e.PathTimeline().IsDead() {
		t.Error("expected a fresh live path timeline")
	}
	if e.Linkage().Len() != 1 {
		t.Errorf("linkage has %d bindings, want 1", e.Linkage().Len())
	}
	if e.Path().TotalLength == firstLen {
		t.Error("narrow layout should change the path length")
	}
	for i, a := range e.Anchors()[1 : len(e.Anchors())-1] {
		if math.Abs(a.X-200) > 120 {
			t.Errorf("narrow anchor %d x = %g, more than 120 from the centerline", i, a.X)
		}
	}
}

func TestEngineRebuildWithoutTargetsKeepsPath(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	if err := e.Rebuild(); err != nil {
		t.Fatal(err)
	}
	data := e.Path().Data
	tl := e.PathTimeline()

	h.targets = nil
	err := e.Rebuild()
	if !errors.Is(err, ErrInvalidAnchorSet) {
		t.Fatalf("err = %v, want ErrInvalidAnchorSet", err)
	}
	if !errors.Is(e.LastError(), ErrInvalidAnchorSet) {
		t.Errorf("LastError = %v", e.LastError())
	}
	if e.Path().Data != data || e.PathTimeline() != tl || tl.IsDead() {
		t.Error("a rejected rebuild must keep the previous path and timeline")
	}
}

func TestEngineRebuildWithoutTargetsFromScratch(t *testing.T) {
	h := newFakeHost()
	h.targets = nil
	e := newTestEngine(h)
	if err := e.Rebuild(); !errors.Is(err, ErrInvalidAnchorSet) {
		t.Fatalf("err = %v, want ErrInvalidAnchorSet", err)
	}
	if !e.Path().Empty() || e.PathTimeline() != nil {
		t.Error("expected no geometry")
	}
	// Ticks keep working with nothing bound.
	e.Tick(engineFrame(time.Second, 500, h))
}

func TestEngineTickDoesNotQueryLayout(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	e.Tick(engineFrame(0, 0, h))
	e.Tick(engineFrame(100*time.Millisecond, 0, h))
	q := h.queries
	for i := range 30 {
		e.Tick(engineFrame(time.Duration(200+i)*time.Millisecond, float64(i)*50, h))
	}
	if h.queries != q {
		t.Errorf("layout queried %d times during plain scrolling", h.queries-q)
	}
}

func TestEngineBindAndClose(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	trigger := NewContainer("section", Rect{Y: 1000, Height: 400})
	tl, err := NewBuilder().
		To(Segment{Target: NewBox("n", Rect{}, ColorWhite), Props: []Property{Opacity(0)}, Duration: 1}).
		Build(TimelineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.Bind(Binding{Region: TriggerRegion{Trigger: trigger}, Mode: Toggle, Timeline: tl}); err != nil {
		t.Fatal(err)
	}
	if err := e.Rebuild(); err != nil {
		t.Fatal(err)
	}
	pathTL := e.PathTimeline()

	e.Close()
	if !tl.IsDead() || !pathTL.IsDead() {
		t.Error("Close should kill every bound timeline")
	}
	if _, err := e.Bind(Binding{Region: TriggerRegion{Trigger: trigger}, Mode: Toggle, Timeline: tl}); err == nil {
		t.Error("Bind on a closed engine should fail")
	}
	e.Tick(engineFrame(time.Second, 0, h))
}

func TestEngineBindBeforeFirstTickUsesHostViewport(t *testing.T) {
	h := newFakeHost()
	e := newTestEngine(h)
	card := NewBox("card", Rect{Y: 300, Width: 100, Height: 100}, ColorWhite)
	tl, err := NewBuilder().
		To(Segment{Target: card, Props: []Property{Opacity(0)}, Duration: 1}).
		Build(TimelineConfig{})
	if err != nil {
		t.Fatal(err)
	}
	sub, err := e.Bind(Binding{
		Region:   TriggerRegion{Trigger: card, Start: Threshold{Viewport: 0.9}},
		Mode:     Toggle,
		Timeline: tl,
	})
	if err != nil {
		t.Fatal(err)
	}
	if start, end := sub.Range(); start != -420 || end != 400 {
		t.Fatalf("Range = [%g, %g], want [-420, 400]", start, end)
	}

	// Already inside the region at scroll 0: the first frame enters it,
	// well before the debounced initial rebuild.
	e.Tick(engineFrame(16*time.Millisecond, 0, h))
	if e.Rebuilds() != 0 {
		t.Fatal("rebuilt inside the quiet period")
	}
	if tl.State() != StatePlaying {
		t.Errorf("State = %s, want playing", tl.State())
	}
}

func TestEngineInvalidConfigFallsBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.PathColor = "not-a-color"
	e := NewEngine(cfg, newFakeHost())
	if e.Config().PathColor != DefaultConfig().PathColor {
		t.Errorf("PathColor = %q, want default", e.Config().PathColor)
	}
}

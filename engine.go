package scrollsync

import (
	"errors"
	"fmt"
	"time"

	"github.com/tanema/gween/ease"
)

// LayoutSource is the host side of the engine: it answers layout queries.
// The engine only calls it during rebuilds and binds, never from Tick.
type LayoutSource interface {
	// PathTargets returns the viewport-relative rectangles the connector
	// curve passes through, in document order.
	PathTargets() []Rect
	// Metrics returns the current viewport, scroll and document size.
	Metrics() LayoutMetrics
	// TriggerRect returns a trigger node's rectangle in page coordinates.
	TriggerRect(n *Node) Rect
}

// Engine ties the path generator, the scroll linkage and the resize
// reactor together. Tick order per frame is fixed: pending resize
// invalidations (and their synchronous rebuild) first, then every scroll
// binding.
type Engine struct {
	cfg     Config
	host    LayoutSource
	reactor *ResizeReactor
	linkage *Linkage

	pathNode     *Node
	geometry     PathGeometry
	anchors      []AnchorPoint
	pathTimeline *Timeline
	pathSub      *Subscription

	viewW, viewH float64
	rebuilds     int
	lastErr      error
	closed       bool
}

// NewEngine creates an engine for host. The first rebuild is scheduled
// through the resize reactor and runs one quiet period after the first Tick,
// once the host has settled its layout.
func NewEngine(cfg Config, host LayoutSource) *Engine {
	if err := cfg.normalize(); err != nil {
		debugf("engine config: %v; using defaults", err)
		cfg = DefaultConfig()
	}
	stroke, _ := ParseHexColor(cfg.PathColor)
	e := &Engine{
		cfg:      cfg,
		host:     host,
		reactor:  NewResizeReactor(cfg.QuietPeriod),
		pathNode: NewPathNode("connector", stroke),
	}
	e.linkage = NewLinkage(e.triggerRect)
	e.reactor.OnInvalidate(func() { _ = e.Rebuild() })
	e.reactor.Notify(0)
	if cfg.Debug {
		SetDebugMode(true)
	}
	return e
}

// triggerRect resolves the connector node to the whole document, the way
// a "body" trigger spans the page, and delegates everything else to the host.
func (e *Engine) triggerRect(n *Node) Rect {
	if n == e.pathNode {
		m := e.host.Metrics()
		return Rect{Width: m.ViewportW, Height: m.DocumentHeight}
	}
	return e.host.TriggerRect(n)
}

// Config returns the normalized configuration.
func (e *Engine) Config() Config { return e.cfg }

// Reactor returns the resize reactor.
func (e *Engine) Reactor() *ResizeReactor { return e.reactor }

// Linkage returns the scroll linkage.
func (e *Engine) Linkage() *Linkage { return e.linkage }

// PathNode returns the node that displays the connector curve. Its
// DashOffset is driven by scroll.
func (e *Engine) PathNode() *Node { return e.pathNode }

// Path returns the current connector geometry. It is empty until the first
// successful rebuild.
func (e *Engine) Path() PathGeometry { return e.geometry }

// Anchors returns the anchors of the current geometry.
func (e *Engine) Anchors() []AnchorPoint { return e.anchors }

// PathTimeline returns the timeline that reveals the connector.
func (e *Engine) PathTimeline() *Timeline { return e.pathTimeline }

// DrawnLength returns how much of the connector is currently revealed.
func (e *Engine) DrawnLength() float64 {
	return min(max(e.geometry.TotalLength-e.pathNode.DashOffset, 0), e.geometry.TotalLength)
}

// Rebuilds returns how many rebuilds have run.
func (e *Engine) Rebuilds() int { return e.rebuilds }

// LastError returns the error of the most recent rebuild, if any.
func (e *Engine) LastError() error { return e.lastErr }

// Invalidate schedules a rebuild as if the viewport had been resized.
func (e *Engine) Invalidate(now time.Duration) {
	e.reactor.Notify(now)
}

// SetEventSink forwards every trigger edge event to sink.
func (e *Engine) SetEventSink(sink EventSink) {
	e.linkage.SetEventSink(sink)
}

// Bind attaches a scroll binding. See Linkage.Bind. The linkage is
// refreshed from the host first so a binding made before the first rebuild
// resolves its range against the real viewport.
func (e *Engine) Bind(b Binding) (*Subscription, error) {
	if e.closed {
		return nil, errors.New("scrollsync: bind on closed engine")
	}
	e.linkage.Refresh(e.host.Metrics())
	return e.linkage.Bind(b)
}

// Tick advances the engine by one frame.
func (e *Engine) Tick(f FrameContext) {
	if e.closed {
		return
	}
	if f.ViewportW != e.viewW || f.ViewportH != e.viewH {
		if e.viewW != 0 || e.viewH != 0 {
			e.reactor.Notify(f.Now)
		}
		e.viewW, e.viewH = f.ViewportW, f.ViewportH
	}
	e.reactor.Tick(f.Now)
	e.linkage.Tick(f)
}

// Rebuild recomputes anchors and geometry, replaces the connector's scrub
// binding and refreshes every trigger offset. It runs synchronously. When
// the host yields an unusable anchor set the previous geometry is kept and
// the error is returned.
func (e *Engine) Rebuild() error {
	if e.closed {
		return nil
	}
	var st rebuildStats
	var t0 time.Time
	if globalDebug {
		t0 = time.Now()
	}

	m := e.host.Metrics()
	targets := e.host.PathTargets()
	anchors := LayoutAnchors(targets, m, e.cfg.Path)
	if globalDebug {
		st.anchorTime = time.Since(t0)
		t0 = time.Now()
	}

	var geo PathGeometry
	var err error
	if len(targets) == 0 {
		// A curve through the synthetic ends alone is not worth drawing.
		err = fmt.Errorf("%w: no path targets", ErrInvalidAnchorSet)
	} else {
		geo, err = GeneratePath(anchors)
	}
	if globalDebug {
		st.generateTime = time.Since(t0)
		t0 = time.Now()
	}
	e.rebuilds++
	e.lastErr = err
	if err != nil {
		debugf("rebuild: %v (%d anchors); keeping previous path", err, len(anchors))
		e.linkage.Refresh(m)
		return err
	}

	// The old reveal is killed before its replacement exists.
	if e.pathSub != nil {
		e.pathSub.Cancel()
		e.pathSub = nil
	}
	if e.pathTimeline != nil {
		e.pathTimeline.Kill()
		e.pathTimeline = nil
	}

	e.geometry = geo
	e.anchors = anchors
	e.pathNode.DashOffset = geo.TotalLength

	tl, err := NewBuilder().
		To(Segment{Target: e.pathNode, Props: []Property{DashOffset(0)}, Duration: 1, Ease: ease.Linear}).
		Build(TimelineConfig{Name: "connector"})
	if err != nil {
		return err
	}
	e.pathTimeline = tl

	e.linkage.Refresh(m)
	sub, err := e.linkage.Bind(Binding{
		Region:   TriggerRegion{Trigger: e.pathNode, Start: TopTop, End: BottomBottom},
		Mode:     Scrub,
		Timeline: tl,
		Smooth:   e.cfg.ScrubSmooth,
	})
	if err != nil {
		return err
	}
	e.pathSub = sub

	if globalDebug {
		st.bindTime = time.Since(t0)
		st.anchors = len(anchors)
		st.pathLength = geo.TotalLength
		st.bindings = e.linkage.Len()
		st.log()
	}
	return nil
}

// Close cancels every binding and kills every bound timeline.
func (e *Engine) Close() {
	if e.closed {
		return
	}
	e.linkage.Close()
	if e.pathTimeline != nil {
		e.pathTimeline.Kill()
	}
	e.closed = true
}

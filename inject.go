package scrollsync

type syntheticKind uint8

const (
	injectScrollBy syntheticKind = iota
	injectScrollTo
	injectResize
	injectPointer
)

// syntheticEvent is one injected input event. Viewport coordinates are used,
// identical to real pointer input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectScroll queues a wheel-style scroll by dy pixels. The event is
// consumed on the next Step.
func (p *Page) InjectScroll(dy float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectScrollBy, y: dy})
}

// InjectScrollTo queues a jump to scroll offset y.
func (p *Page) InjectScrollTo(y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectScrollTo, y: y})
}

// InjectResize queues a viewport resize.
func (p *Page) InjectResize(w, h float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectResize, x: w, y: h})
}

// InjectPointer queues a pointer move to viewport coordinates (x, y).
func (p *Page) InjectPointer(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: injectPointer, x: x, y: y})
}

// InjectSmoothScroll queues a scroll from the current offset to y spread
// evenly over frames events, one per frame.
func (p *Page) InjectSmoothScroll(y float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	from := p.viewport.ScrollY
	for _, e := range p.injectQueue {
		switch e.kind {
		case injectScrollBy:
			from += e.y
		case injectScrollTo:
			from = e.y
		}
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		p.InjectScrollTo(from + (y-from)*t)
	}
}

// processInjected pops one event from the inject queue and applies it.
// Returns true if an event was consumed.
func (p *Page) processInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	p.syncDocumentHeight()
	switch evt.kind {
	case injectScrollBy:
		p.viewport.ScrollBy(evt.y)
	case injectScrollTo:
		p.viewport.ScrollTo(evt.y, 0, nil)
	case injectResize:
		p.resize(int(evt.x), int(evt.y))
	case injectPointer:
		p.mouseX, p.mouseY = evt.x, evt.y
	}
	return true
}

package scrollsync

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Viewport is the visible window onto a Page: its size, the vertical scroll
// offset and the height of the scrollable document.
type Viewport struct {
	Width, Height float64
	// ScrollY is the page-space y at the top of the viewport.
	ScrollY float64
	// DocumentHeight is the full scrollable height of the page.
	DocumentHeight float64

	scrollTween *gween.Tween
}

func newViewport(w, h float64) *Viewport {
	return &Viewport{Width: w, Height: h, DocumentHeight: h}
}

// MaxScroll returns the largest reachable scroll offset.
func (v *Viewport) MaxScroll() float64 {
	return max(v.DocumentHeight-v.Height, 0)
}

// Metrics returns the viewport as LayoutMetrics.
func (v *Viewport) Metrics() LayoutMetrics {
	return LayoutMetrics{
		ViewportW:      v.Width,
		ViewportH:      v.Height,
		ScrollY:        v.ScrollY,
		DocumentHeight: v.DocumentHeight,
	}
}

// VisibleBounds returns the page-space rectangle currently on screen.
func (v *Viewport) VisibleBounds() Rect {
	return Rect{Y: v.ScrollY, Width: v.Width, Height: v.Height}
}

// ToPage converts viewport coordinates to page coordinates.
func (v *Viewport) ToPage(x, y float64) (float64, float64) {
	return x, y + v.ScrollY
}

// ScrollTo animates the scroll offset to y over duration seconds. A
// non-positive duration jumps immediately.
func (v *Viewport) ScrollTo(y float64, duration float32, easeFn ease.TweenFunc) {
	y = min(max(y, 0), v.MaxScroll())
	if duration <= 0 {
		v.scrollTween = nil
		v.ScrollY = y
		return
	}
	if easeFn == nil {
		easeFn = ease.InOutCubic
	}
	v.scrollTween = gween.New(float32(v.ScrollY), float32(y), duration, easeFn)
}

// ScrollBy moves the scroll offset by dy, cancelling any running ScrollTo.
func (v *Viewport) ScrollBy(dy float64) {
	v.scrollTween = nil
	v.ScrollY += dy
	v.clamp()
}

// Scrolling reports whether a ScrollTo animation is running.
func (v *Viewport) Scrolling() bool {
	return v.scrollTween != nil
}

// Resize changes the viewport size and keeps the scroll offset in range.
func (v *Viewport) Resize(w, h float64) {
	v.Width, v.Height = w, h
	v.clamp()
}

// update advances ScrollTo and clamps. Called from Page.Step.
func (v *Viewport) update(dt float32) {
	if v.scrollTween != nil {
		val, done := v.scrollTween.Update(dt)
		v.ScrollY = float64(val)
		if done {
			v.scrollTween = nil
		}
	}
	v.clamp()
}

func (v *Viewport) clamp() {
	v.ScrollY = min(max(v.ScrollY, 0), v.MaxScroll())
}

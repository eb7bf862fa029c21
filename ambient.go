package scrollsync

import (
	"math"
	"time"
)

// Ambient drifts background blobs. Each blob's offset is a pure function of
// the frame (time, pointer and scroll) and its index, so Ambient holds no
// motion state of its own.
type Ambient struct {
	blobs []*Node
	base  []Vec2
}

// NewAmbient returns an empty blob set.
func NewAmbient() *Ambient {
	return &Ambient{}
}

// Add registers a blob. Its current X/Y becomes the rest position the drift
// is added to.
func (a *Ambient) Add(blob *Node) {
	a.blobs = append(a.blobs, blob)
	a.base = append(a.base, Vec2{X: blob.X, Y: blob.Y})
}

// Blobs returns the registered blobs.
func (a *Ambient) Blobs() []*Node { return a.blobs }

// Update writes each blob's translation for frame f.
func (a *Ambient) Update(f FrameContext) {
	for i, b := range a.blobs {
		if b.IsDisposed() {
			continue
		}
		off := BlobOffset(f, i)
		b.X = a.base[i].X + off.X
		b.Y = a.base[i].Y + off.Y
	}
}

// BlobOffset returns the drift of the index-th blob: a slow circular wander,
// a pointer parallax that grows with the index and a scroll parallax that
// lifts deeper blobs faster.
func BlobOffset(f FrameContext, index int) Vec2 {
	i := float64(index)
	speed := 0.5 + i*0.1
	t := float64(f.Now) / float64(time.Second)

	wanderX := math.Sin(t*speed+i) * 30
	wanderY := math.Cos(t*speed+i) * 30

	depth := 0.02 + i*0.01
	parallaxX := (f.MouseX - f.ViewportW/2) * depth
	parallaxY := (f.MouseY - f.ViewportH/2) * depth

	lift := f.ScrollY * (0.15 + i*0.05)

	return Vec2{X: wanderX + parallaxX, Y: wanderY + parallaxY - lift}
}

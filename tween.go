package scrollsync

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates one property channel of a Node from its current value
// to a target, outside any timeline. Call Update(dt) each frame. If the target
// node is disposed, the group stops immediately.
type TweenGroup struct {
	tweens [4]*gween.Tween
	count  int
	ch     channel
	Done   bool
}

// TweenTo creates a TweenGroup that moves node's channel for prop from its
// current value to prop over duration seconds.
func TweenTo(node *Node, prop Property, duration float32, fn ease.TweenFunc) *TweenGroup {
	if fn == nil {
		fn = DefaultEase
	}
	ch := channel{target: node, kind: prop.Kind()}
	from := readChannel(node, ch.kind)
	to := prop.values()
	g := &TweenGroup{count: to.n, ch: ch}
	for i := 0; i < to.n; i++ {
		g.tweens[i] = gween.New(float32(from.v[i]), float32(to.v[i]), duration, fn)
	}
	return g
}

// Kind returns the animated channel.
func (g *TweenGroup) Kind() PropertyKind { return g.ch.kind }

// Target returns the animated node.
func (g *TweenGroup) Target() *Node { return g.ch.target }

// Update advances all component tweens by dt seconds and writes the result.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}
	if g.ch.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	v := propVec{n: g.count}
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		v.v[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	writeChannel(g.ch.target, g.ch.kind, v)
	g.Done = allDone
}

// Stop marks the group done without writing.
func (g *TweenGroup) Stop() { g.Done = true }

// Tweener runs one-shot tweens that follow a moving goal, such as the
// pointer. Starting a tween on a channel that is already tweening stops the
// old tween first, so the new one starts from wherever the old one left off.
type Tweener struct {
	active map[channel]*TweenGroup
	order  []channel
}

// NewTweener returns an empty Tweener.
func NewTweener() *Tweener {
	return &Tweener{active: make(map[channel]*TweenGroup)}
}

// To starts one tween per property on node, replacing any tween already
// running on the same channel.
func (tw *Tweener) To(node *Node, duration float32, fn ease.TweenFunc, props ...Property) {
	for _, p := range props {
		g := TweenTo(node, p, duration, fn)
		if old, ok := tw.active[g.ch]; ok {
			old.Stop()
		} else {
			tw.order = append(tw.order, g.ch)
		}
		tw.active[g.ch] = g
	}
}

// Active reports whether a tween is running on node's channel.
func (tw *Tweener) Active(node *Node, kind PropertyKind) bool {
	g, ok := tw.active[channel{target: node, kind: kind}]
	return ok && !g.Done
}

// Len returns the number of running tweens.
func (tw *Tweener) Len() int { return len(tw.order) }

// Update advances every running tween and drops finished ones.
func (tw *Tweener) Update(dt float32) {
	kept := tw.order[:0]
	for _, ch := range tw.order {
		g := tw.active[ch]
		g.Update(dt)
		if g.Done {
			delete(tw.active, ch)
			continue
		}
		kept = append(kept, ch)
	}
	for i := len(kept); i < len(tw.order); i++ {
		tw.order[i] = channel{}
	}
	tw.order = kept
}

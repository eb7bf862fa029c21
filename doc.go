// Package scrollsync is a scroll-synchronized animation engine for
// [Ebitengine].
//
// A page is a tree of [Node] values laid out in a tall document. As the
// viewport scrolls, scrollsync draws a smooth connector curve through the
// nodes marked [Node.PathTarget], pops content in when it reaches the
// viewport, and runs looping choreographies only while they are visible.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for a [Page]:
//
//	page := scrollsync.NewPage(scrollsync.DefaultConfig())
//	// ... add nodes ...
//	scrollsync.Run(page, scrollsync.RunConfig{})
//
// For full control, implement [ebiten.Game] yourself and call
// [Page.Update] and [Page.Draw] directly. Headless code and tests call
// [Page.Step] instead, which reads no device input.
//
// # Timelines
//
// A [Timeline] is built with a [Builder] from segments that tween node
// properties, placed relative to the previous segment, at absolute times or
// at labels:
//
//	tl, err := scrollsync.NewBuilder().
//		To(scrollsync.Segment{Target: card, Props: []scrollsync.Property{scrollsync.Opacity(1)}, Duration: 0.5}).
//		To(scrollsync.Segment{Target: card, Props: []scrollsync.Property{scrollsync.Scale(1.1)}, Duration: 0.3,
//			At: scrollsync.WithPrev(0.2), Ease: scrollsync.MustEase("back.out(1.7)")}).
//		Build(scrollsync.TimelineConfig{Repeat: scrollsync.RepeatInfinite, RepeatDelay: 2})
//
// Easing curves are named the way CSS animation libraries name them; see
// [Ease]. Playback is deterministic: any cursor position can be reached
// directly with [Timeline.AdvanceTo].
//
// # Scroll bindings
//
// [Page.Bind] links a timeline to a trigger node. [Scrub] maps scroll
// progress through the trigger region onto the timeline, [Toggle] plays and
// reverses it as the region is entered and left, and [Gate] keeps a looping
// timeline running only while its trigger is on screen. Edge events can be
// forwarded to an ECS world with the adapter in scrollsync/ecs.
//
// # Resizing
//
// Window resizes are debounced by a [ResizeReactor]. Once resizing stops,
// the [Engine] recomputes the connector anchors, regenerates the curve,
// kills the old reveal timeline and rebinds a new one.
//
// [Ebitengine]: https://ebitengine.org
package scrollsync

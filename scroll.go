package scrollsync

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/harmonica"
)

// Threshold is a scroll position described by layout: the point at fraction
// Element of the trigger's height (0 top, 1 bottom) meets the line at
// fraction Viewport of the viewport height. "top 60%" is {0, 0.6}.
type Threshold struct {
	Element  float64
	Viewport float64
}

var (
	TopTop       = Threshold{Element: 0, Viewport: 0}
	BottomBottom = Threshold{Element: 1, Viewport: 1}
	BottomTop    = Threshold{Element: 1, Viewport: 0}
)

// scrollFor returns the scroll offset at which the threshold is met for a
// trigger occupying r (page coordinates).
func (th Threshold) scrollFor(r Rect, viewportH float64) float64 {
	return r.Y + th.Element*r.Height - th.Viewport*viewportH
}

// TriggerRegion is the scroll band of a trigger node. For Toggle and Gate
// bindings a zero End means BottomTop (the trigger has left the top).
type TriggerRegion struct {
	Trigger *Node
	Start   Threshold
	End     Threshold
}

// BindMode selects how scroll drives a binding.
type BindMode uint8

const (
	// Scrub maps scroll progress through the region onto the timeline cursor.
	Scrub BindMode = iota
	// Toggle fires ToggleActions as the scroll crosses the region edges.
	Toggle
	// Gate plays a looping timeline once the start is crossed and only
	// advances it while the trigger is inside the viewport.
	Gate
)

func (m BindMode) String() string {
	switch m {
	case Toggle:
		return "toggle"
	case Gate:
		return "gate"
	}
	return "scrub"
}

// ToggleAction is what a Toggle binding does to its timeline on an edge.
type ToggleAction uint8

const (
	ActionNone ToggleAction = iota
	ActionPlay
	ActionReverse
	ActionPause
	ActionResume
	ActionRestart
	ActionReset
	ActionComplete
)

var toggleActionNames = map[string]ToggleAction{
	"none":     ActionNone,
	"play":     ActionPlay,
	"reverse":  ActionReverse,
	"pause":    ActionPause,
	"resume":   ActionResume,
	"restart":  ActionRestart,
	"reset":    ActionReset,
	"complete": ActionComplete,
}

// ToggleActions lists the actions for the four region edges.
type ToggleActions struct {
	OnEnter     ToggleAction // start crossed scrolling down
	OnLeave     ToggleAction // end crossed scrolling down
	OnEnterBack ToggleAction // end crossed scrolling up
	OnLeaveBack ToggleAction // start crossed scrolling up
}

// DefaultToggleActions plays on enter and reverses when scrolled back above
// the start ("play none none reverse").
var DefaultToggleActions = ToggleActions{OnEnter: ActionPlay, OnLeaveBack: ActionReverse}

// ParseToggleActions parses four space-separated action names, e.g.
// "play none none reverse".
func ParseToggleActions(s string) (ToggleActions, error) {
	fields := strings.Fields(s)
	if len(fields) != 4 {
		return ToggleActions{}, fmt.Errorf("toggle actions %q: want 4 fields, got %d", s, len(fields))
	}
	var out [4]ToggleAction
	for i, f := range fields {
		a, ok := toggleActionNames[f]
		if !ok {
			return ToggleActions{}, fmt.Errorf("toggle actions %q: unknown action %q", s, f)
		}
		out[i] = a
	}
	return ToggleActions{OnEnter: out[0], OnLeave: out[1], OnEnterBack: out[2], OnLeaveBack: out[3]}, nil
}

// Binding describes one scroll-linked animation.
type Binding struct {
	Region   TriggerRegion
	Mode     BindMode
	Timeline *Timeline
	// OnScrub receives scrub progress in [0, 1]; usable with or without a
	// Timeline.
	OnScrub func(progress float64)
	// Actions for Toggle mode. The zero value uses DefaultToggleActions.
	Actions ToggleActions
	// OnEdge is called after the action of every Toggle edge and on the
	// first Gate enter.
	OnEdge func(TriggerEvent)
	// Smooth makes a Scrub cursor chase the scroll position over roughly
	// this many seconds instead of following it exactly. 0 disables it.
	Smooth float64
}

// Edge identifies which boundary of a trigger region the scroll crossed.
type Edge uint8

const (
	EdgeEnter     Edge = iota // start crossed scrolling down
	EdgeLeave                 // end crossed scrolling down
	EdgeEnterBack             // end crossed scrolling up
	EdgeLeaveBack             // start crossed scrolling up
)

func (e Edge) String() string {
	switch e {
	case EdgeLeave:
		return "leave"
	case EdgeEnterBack:
		return "enterBack"
	case EdgeLeaveBack:
		return "leaveBack"
	}
	return "enter"
}

// TriggerEvent reports one region edge crossing.
type TriggerEvent struct {
	Trigger *Node
	Edge    Edge
	Mode    BindMode
	ScrollY float64
	Now     time.Duration
}

// EventSink receives every TriggerEvent of a Linkage, for example to
// forward them to an ECS world.
type EventSink interface {
	EmitTrigger(event TriggerEvent)
}

type regionState uint8

const (
	regionBefore regionState = iota
	regionInside
	regionAfter
)

// Subscription is the live handle of a Binding. Cancel stops all further
// ticks from reaching its timeline or scrub callback.
type Subscription struct {
	linkage *Linkage
	binding Binding

	start, end  float64
	triggerRect Rect
	rangeErr    error

	state     regionState
	seen      bool
	entered   bool
	progress  float64
	cancelled bool

	spring   harmonica.Spring
	springDt float64
	pos, vel float64
}

// Binding returns the binding this subscription was created from.
func (s *Subscription) Binding() Binding { return s.binding }

// Timeline returns the bound timeline, or nil for callback-only scrubs.
func (s *Subscription) Timeline() *Timeline { return s.binding.Timeline }

// Range returns the resolved scroll offsets of the region's start and end.
func (s *Subscription) Range() (start, end float64) { return s.start, s.end }

// Progress returns the last progress applied by a Scrub binding.
func (s *Subscription) Progress() float64 { return s.progress }

// Err returns ErrDegenerateScrubRange when the resolved Scrub region is
// empty. Such a subscription keeps running with progress held at 0.
func (s *Subscription) Err() error { return s.rangeErr }

// Cancelled reports whether Cancel has been called.
func (s *Subscription) Cancelled() bool { return s.cancelled }

// Cancel detaches the subscription. The timeline is left as is; Linkage.Bind
// additionally kills it when replacing a binding on the same trigger.
func (s *Subscription) Cancel() {
	if s.cancelled {
		return
	}
	s.cancelled = true
	if s.linkage != nil {
		s.linkage.detach(s)
	}
}

// ScrubProgress maps scrollY into [0, 1] across the resolved region. An
// empty region (end <= start) always yields 0.
func (s *Subscription) ScrubProgress(scrollY float64) float64 {
	if s.end <= s.start {
		return 0
	}
	return clamp01((scrollY - s.start) / (s.end - s.start))
}

// resolve performs the layout query for the trigger. It runs on Refresh and
// Bind only, never per tick.
func (s *Subscription) resolve(rectOf func(*Node) Rect, m LayoutMetrics) {
	r := rectOf(s.binding.Region.Trigger)
	s.triggerRect = r
	end := s.binding.Region.End
	if s.binding.Mode != Scrub && end == (Threshold{}) {
		end = BottomTop
	}
	s.start = s.binding.Region.Start.scrollFor(r, m.ViewportH)
	s.end = end.scrollFor(r, m.ViewportH)
	s.rangeErr = nil
	if s.binding.Mode == Scrub && s.end <= s.start {
		s.rangeErr = ErrDegenerateScrubRange
		debugf("binding on %q: %v (start %.1f, end %.1f)", s.binding.Region.Trigger.Name, ErrDegenerateScrubRange, s.start, s.end)
	}
}

func (s *Subscription) regionAt(scrollY float64) regionState {
	switch {
	case scrollY < s.start:
		return regionBefore
	case scrollY > s.end && s.end > s.start:
		return regionAfter
	}
	return regionInside
}

func (s *Subscription) tick(f FrameContext) {
	switch s.binding.Mode {
	case Scrub:
		s.tickScrub(f)
	case Toggle:
		s.tickToggle(f)
	case Gate:
		s.tickGate(f)
	}
}

func (s *Subscription) tickScrub(f FrameContext) {
	target := s.ScrubProgress(f.ScrollY)
	p := target
	if s.binding.Smooth > 0 && s.seen {
		if f.Dt > 0 && f.Dt != s.springDt {
			s.spring = harmonica.NewSpring(f.Dt, 6/s.binding.Smooth, 1)
			s.springDt = f.Dt
		}
		if f.Dt > 0 {
			s.pos, s.vel = s.spring.Update(s.pos, s.vel, target)
		}
		if math.Abs(s.pos-target) < 1e-4 && math.Abs(s.vel) < 1e-3 {
			s.pos, s.vel = target, 0
		}
		p = clamp01(s.pos)
	} else {
		s.pos, s.vel = target, 0
	}
	s.seen = true
	s.progress = p

	if tl := s.binding.Timeline; tl != nil {
		tl.AdvanceTo(p * tl.Duration())
	}
	if s.binding.OnScrub != nil {
		s.binding.OnScrub(p)
	}
}

func (s *Subscription) tickToggle(f FrameContext) {
	next := s.regionAt(f.ScrollY)
	actions := s.binding.Actions
	if actions == (ToggleActions{}) {
		actions = DefaultToggleActions
	}
	prev := s.state
	if !s.seen {
		prev = regionBefore
		s.seen = true
	}
	s.state = next

	switch {
	case prev == regionBefore && next == regionInside:
		s.edge(EdgeEnter, actions.OnEnter, f)
	case prev == regionInside && next == regionAfter:
		s.edge(EdgeLeave, actions.OnLeave, f)
	case prev == regionAfter && next == regionInside:
		s.edge(EdgeEnterBack, actions.OnEnterBack, f)
	case prev == regionInside && next == regionBefore:
		s.edge(EdgeLeaveBack, actions.OnLeaveBack, f)
	case prev == regionBefore && next == regionAfter:
		s.edge(EdgeEnter, actions.OnEnter, f)
		s.edge(EdgeLeave, actions.OnLeave, f)
	case prev == regionAfter && next == regionBefore:
		s.edge(EdgeEnterBack, actions.OnEnterBack, f)
		s.edge(EdgeLeaveBack, actions.OnLeaveBack, f)
	}

	if tl := s.binding.Timeline; tl != nil && !s.cancelled {
		tl.Tick(f.Dt)
	}
}

func (s *Subscription) tickGate(f FrameContext) {
	tl := s.binding.Timeline
	if !s.entered && f.ScrollY >= s.start {
		s.entered = true
		s.edge(EdgeEnter, ActionPlay, f)
	}
	s.seen = true
	if !s.entered || s.cancelled {
		return
	}
	view := Rect{X: 0, Y: f.ScrollY, Width: f.ViewportW, Height: f.ViewportH}
	if s.triggerRect.Intersects(view) {
		tl.Tick(f.Dt)
	}
}

// edge applies the action for one region edge and reports the crossing.
func (s *Subscription) edge(e Edge, a ToggleAction, f FrameContext) {
	s.apply(a)
	ev := TriggerEvent{
		Trigger: s.binding.Region.Trigger,
		Edge:    e,
		Mode:    s.binding.Mode,
		ScrollY: f.ScrollY,
		Now:     f.Now,
	}
	if s.binding.OnEdge != nil {
		s.binding.OnEdge(ev)
	}
	if s.linkage != nil && s.linkage.sink != nil {
		s.linkage.sink.EmitTrigger(ev)
	}
}

func (s *Subscription) apply(a ToggleAction) {
	tl := s.binding.Timeline
	if tl == nil {
		return
	}
	switch a {
	case ActionPlay:
		tl.Play(Forward)
	case ActionReverse:
		tl.Play(Reverse)
	case ActionPause:
		tl.Pause()
	case ActionResume:
		tl.Resume()
	case ActionRestart:
		tl.Restart()
	case ActionReset:
		tl.Reset()
	case ActionComplete:
		tl.Complete()
	}
}

// Linkage owns every scroll binding of a page. At most one subscription
// exists per trigger node; binding a trigger again cancels the previous
// subscription and kills its timeline before the new one is attached.
type Linkage struct {
	subs      []*Subscription
	byTrigger map[*Node]*Subscription
	metrics   LayoutMetrics
	rectOf    func(*Node) Rect
	sink      EventSink
}

// SetEventSink sets the optional receiver of trigger edge events.
func (l *Linkage) SetEventSink(sink EventSink) {
	l.sink = sink
}

// NewLinkage creates a linkage that resolves trigger rectangles with rectOf.
// A nil rectOf uses Node.PageRect.
func NewLinkage(rectOf func(*Node) Rect) *Linkage {
	if rectOf == nil {
		rectOf = (*Node).PageRect
	}
	return &Linkage{
		byTrigger: make(map[*Node]*Subscription),
		rectOf:    rectOf,
	}
}

// Bind attaches a binding and returns its subscription.
func (l *Linkage) Bind(b Binding) (*Subscription, error) {
	if b.Region.Trigger == nil {
		return nil, ErrNilTrigger
	}
	if b.Timeline == nil && (b.Mode != Scrub || b.OnScrub == nil) {
		return nil, fmt.Errorf("bind %s on %q: %w", b.Mode, b.Region.Trigger.Name, ErrNilTimeline)
	}

	if old, ok := l.byTrigger[b.Region.Trigger]; ok {
		old.Cancel()
		if old.binding.Timeline != nil && old.binding.Timeline != b.Timeline {
			old.binding.Timeline.Kill()
		}
	}

	s := &Subscription{linkage: l, binding: b}
	s.resolve(l.rectOf, l.metrics)
	l.subs = append(l.subs, s)
	l.byTrigger[b.Region.Trigger] = s
	return s, nil
}

// Lookup returns the live subscription for a trigger.
func (l *Linkage) Lookup(trigger *Node) (*Subscription, bool) {
	s, ok := l.byTrigger[trigger]
	return s, ok
}

// Len returns the number of live subscriptions.
func (l *Linkage) Len() int { return len(l.subs) }

// Refresh re-resolves every region against new layout metrics. Call it from
// rebuilds only; Tick never queries layout.
func (l *Linkage) Refresh(m LayoutMetrics) {
	l.metrics = m
	for _, s := range l.subs {
		s.resolve(l.rectOf, m)
	}
}

// Tick drives every live subscription with one frame.
func (l *Linkage) Tick(f FrameContext) {
	// Callbacks may bind or cancel; iterate over a stable copy.
	subs := append([]*Subscription(nil), l.subs...)
	for _, s := range subs {
		if s.cancelled {
			continue
		}
		s.tick(f)
	}
}

// Close cancels every subscription and kills their timelines.
func (l *Linkage) Close() {
	for _, s := range append([]*Subscription(nil), l.subs...) {
		s.Cancel()
		if s.binding.Timeline != nil {
			s.binding.Timeline.Kill()
		}
	}
}

func (l *Linkage) detach(s *Subscription) {
	for i, c := range l.subs {
		if c == s {
			copy(l.subs[i:], l.subs[i+1:])
			l.subs[len(l.subs)-1] = nil
			l.subs = l.subs[:len(l.subs)-1]
			break
		}
	}
	if cur, ok := l.byTrigger[s.binding.Region.Trigger]; ok && cur == s {
		delete(l.byTrigger, s.binding.Region.Trigger)
	}
}

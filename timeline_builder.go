package scrollsync

import (
	"fmt"
	"sort"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

type placementKind uint8

const (
	placeAfterPrev placementKind = iota
	placeWithPrev
	placeAbsolute
	placeLabel
)

// Placement positions a timeline item. The zero value places the item right
// after the previous segment ends.
type Placement struct {
	kind   placementKind
	offset float64
	label  string
}

// AfterPrev places an item delta seconds after the previous segment ends.
// A negative delta overlaps the previous segment.
func AfterPrev(delta float64) Placement {
	return Placement{kind: placeAfterPrev, offset: delta}
}

// WithPrev places an item delta seconds after the previous segment starts.
func WithPrev(delta float64) Placement {
	return Placement{kind: placeWithPrev, offset: delta}
}

// Absolute places an item at a fixed time.
func Absolute(t float64) Placement {
	return Placement{kind: placeAbsolute, offset: t}
}

// AtLabel places an item delta seconds after a label. The label must be
// defined earlier in the builder.
func AtLabel(label string, delta float64) Placement {
	return Placement{kind: placeLabel, offset: delta, label: label}
}

func (p Placement) String() string {
	switch p.kind {
	case placeWithPrev:
		return fmt.Sprintf("<%+g", p.offset)
	case placeAbsolute:
		return fmt.Sprintf("%g", p.offset)
	case placeLabel:
		return fmt.Sprintf("%s%+g", p.label, p.offset)
	}
	return fmt.Sprintf(">%+g", p.offset)
}

// Segment animates one target's properties from their current values to
// Props over Duration seconds.
type Segment struct {
	Target   *Node
	Props    []Property
	Duration float64
	Delay    float64
	At       Placement
	Ease     ease.TweenFunc // nil uses DefaultEase
}

type itemKind uint8

const (
	itemSegment itemKind = iota
	itemLabel
	itemCall
	itemClear
)

type item struct {
	kind  itemKind
	seg   Segment
	label string
	at    Placement
	fn    func()
}

// Builder collects segments and labels in declaration order. Build resolves
// every placement in one forward pass.
type Builder struct {
	items []item
}

// NewBuilder returns an empty timeline builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// To appends a segment.
func (b *Builder) To(seg Segment) *Builder {
	b.items = append(b.items, item{kind: itemSegment, seg: seg, at: seg.At})
	return b
}

// Set appends a zero-duration segment that jumps target to props.
func (b *Builder) Set(target *Node, at Placement, props ...Property) *Builder {
	return b.To(Segment{Target: target, Props: props, At: at})
}

// Hold appends an empty gap of d seconds.
func (b *Builder) Hold(d float64) *Builder {
	return b.To(Segment{Duration: d})
}

// Label defines a named instant usable by later AtLabel placements.
func (b *Builder) Label(name string, at Placement) *Builder {
	b.items = append(b.items, item{kind: itemLabel, label: name, at: at})
	return b
}

// Call schedules fn at the given placement. It fires whenever the cursor
// crosses that instant, in either direction.
func (b *Builder) Call(fn func(), at Placement) *Builder {
	b.items = append(b.items, item{kind: itemCall, fn: fn, at: at})
	return b
}

// ClearProps restores every channel of target that this timeline animates
// to its pre-timeline value.
func (b *Builder) ClearProps(target *Node, at Placement) *Builder {
	b.items = append(b.items, item{kind: itemClear, seg: Segment{Target: target}, at: at})
	return b
}

// Stagger animates each target with seg, starting each one `each` seconds
// after the previous target. The first target uses seg.At.
func (b *Builder) Stagger(targets []*Node, each float64, seg Segment) *Builder {
	for i, t := range targets {
		s := seg
		s.Target = t
		if i > 0 {
			s.At = WithPrev(each)
			s.Delay = 0
		}
		b.To(s)
	}
	return b
}

// Build resolves placements and returns a timeline in the Idle state.
func (b *Builder) Build(cfg TimelineConfig) (*Timeline, error) {
	tl := &Timeline{
		cfg:    cfg,
		tracks: make(map[channel][]*track),
		labels: make(map[string]float64),
		dir:    Forward,
	}

	var prevStart, prevEnd float64
	var clears []item
	var clearStarts []float64

	for i, it := range b.items {
		base, err := resolvePlacement(it.at, prevStart, prevEnd, tl.labels)
		if err != nil {
			return nil, fmt.Errorf("timeline %q item %d: %w", cfg.Name, i, err)
		}

		switch it.kind {
		case itemLabel:
			tl.labels[it.label] = max(base, 0)
			continue
		case itemCall:
			start := max(base, 0)
			tl.calls = append(tl.calls, timelineCall{at: start, fn: it.fn})
			tl.duration = max(tl.duration, start)
			prevStart, prevEnd = start, start
			continue
		case itemClear:
			start := max(base, 0)
			clears = append(clears, it)
			clearStarts = append(clearStarts, start)
			tl.duration = max(tl.duration, start)
			prevStart, prevEnd = start, start
			continue
		}

		seg := it.seg
		if seg.Duration < 0 {
			return nil, fmt.Errorf("timeline %q item %d: %w (%g)", cfg.Name, i, ErrNegativeDuration, seg.Duration)
		}
		start := max(base+seg.Delay, 0)
		end := start + seg.Duration
		prevStart, prevEnd = start, end
		tl.duration = max(tl.duration, end)

		if seg.Target == nil {
			continue
		}
		fn := seg.Ease
		if fn == nil {
			fn = DefaultEase
		}
		for _, p := range seg.Props {
			tl.addTrack(seg.Target, p.Kind(), &track{
				start: start,
				dur:   seg.Duration,
				to:    p.values(),
				ease:  fn,
			})
		}
	}

	// Clears expand after the pass so they cover channels declared later too.
	for i, it := range clears {
		for _, ch := range tl.order {
			if ch.target != it.seg.Target {
				continue
			}
			tl.addTrack(ch.target, ch.kind, &track{start: clearStarts[i], restore: true, ease: ease.Linear})
		}
	}

	for _, ch := range tl.order {
		tracks := tl.tracks[ch]
		sort.SliceStable(tracks, func(a, b int) bool { return tracks[a].start < tracks[b].start })
	}
	sort.SliceStable(tl.calls, func(a, b int) bool { return tl.calls[a].at < tl.calls[b].at })

	return tl, nil
}

func resolvePlacement(p Placement, prevStart, prevEnd float64, labels map[string]float64) (float64, error) {
	switch p.kind {
	case placeWithPrev:
		return prevStart + p.offset, nil
	case placeAbsolute:
		return p.offset, nil
	case placeLabel:
		t, ok := labels[p.label]
		if !ok {
			return 0, fmt.Errorf("%w: label %q is not defined before use", ErrUnresolvedPosition, p.label)
		}
		return t + p.offset, nil
	}
	return prevEnd + p.offset, nil
}

func (tl *Timeline) addTrack(target *Node, kind PropertyKind, tr *track) {
	ch := channel{target: target, kind: kind}
	if _, ok := tl.tracks[ch]; !ok {
		tl.order = append(tl.order, ch)
	}
	if tr.dur > 0 {
		tr.tween = gween.New(0, 1, float32(tr.dur), tr.ease)
	}
	tl.tracks[ch] = append(tl.tracks[ch], tr)
}

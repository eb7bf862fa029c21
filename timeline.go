package scrollsync

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RepeatInfinite repeats a timeline until it is killed.
const RepeatInfinite = -1

// TimelineConfig controls repeat policy and lifecycle callbacks.
type TimelineConfig struct {
	Name        string
	Repeat      int     // extra cycles after the first; RepeatInfinite loops forever
	RepeatDelay float64 // seconds to wait between cycles

	OnRepeat          func(iteration int) // after the reset that starts cycle `iteration`
	OnComplete        func()              // forward pass finished with no repeats left
	OnReverseComplete func()              // reverse playback reached 0
}

// TimelineState is the playback state of a Timeline.
type TimelineState uint8

const (
	StateIdle          TimelineState = iota // not advancing; cursor retained
	StatePlaying                            // advancing in Direction() on every Tick
	StateWaitingRepeat                      // cycle finished; waiting RepeatDelay
	StateDead                               // killed; every operation is a no-op
)

func (s TimelineState) String() string {
	switch s {
	case StatePlaying:
		return "playing"
	case StateWaitingRepeat:
		return "waiting-repeat"
	case StateDead:
		return "dead"
	}
	return "idle"
}

// track is one resolved segment on one channel.
type track struct {
	start   float64
	dur     float64
	from    propVec
	to      propVec
	restore bool // ClearProps: to is the snapshot
	ease    ease.TweenFunc
	tween   *gween.Tween // 0 -> 1 progress; nil for zero duration
}

// valueAt evaluates the track local seconds after its start. Past the end it
// returns to exactly, so scrubbing to the end leaves no easing residue.
func (tr *track) valueAt(local float64) propVec {
	if tr.tween == nil || local >= tr.dur {
		return tr.to
	}
	if local <= 0 {
		return tr.from
	}
	f, done := tr.tween.Set(float32(local))
	if done {
		return tr.to
	}
	return tr.from.lerp(tr.to, float64(f))
}

type timelineCall struct {
	at float64
	fn func()
}

// Timeline is a resolved, ordered set of property animations driven by an
// external cursor. It is an explicit state machine advanced by Tick; there
// is no internal scheduler.
type Timeline struct {
	cfg      TimelineConfig
	duration float64
	labels   map[string]float64

	order  []channel
	tracks map[channel][]*track
	calls  []timelineCall

	snapshot  map[channel]propVec
	activated bool

	cursor    float64
	primed    bool // false until the first render after (re)start
	dir       Direction
	state     TimelineState
	iteration int
	waited    float64
	completed bool
}

// Name returns the configured name.
func (tl *Timeline) Name() string { return tl.cfg.Name }

// Duration returns the length of one cycle in seconds.
func (tl *Timeline) Duration() float64 { return tl.duration }

// Cursor returns the current playback time within the cycle.
func (tl *Timeline) Cursor() float64 { return tl.cursor }

// Progress returns Cursor()/Duration(), or 0 for an empty timeline.
func (tl *Timeline) Progress() float64 {
	if tl.duration <= 0 {
		return 0
	}
	return tl.cursor / tl.duration
}

// State returns the playback state.
func (tl *Timeline) State() TimelineState { return tl.state }

// Direction returns the direction of the last Play call.
func (tl *Timeline) Direction() Direction { return tl.dir }

// Iteration returns the number of repeats started so far.
func (tl *Timeline) Iteration() int { return tl.iteration }

// Completed reports whether the last forward pass ran out of repeats.
func (tl *Timeline) Completed() bool { return tl.completed }

// Label returns the resolved time of a label.
func (tl *Timeline) Label(name string) (float64, bool) {
	t, ok := tl.labels[name]
	return t, ok
}

// SegmentStart returns the resolved start and end of the n-th track on a
// target's property channel, in declaration order after sorting by start.
func (tl *Timeline) SegmentStart(target *Node, kind PropertyKind, n int) (start, end float64, ok bool) {
	trs := tl.tracks[channel{target: target, kind: kind}]
	if n < 0 || n >= len(trs) {
		return 0, 0, false
	}
	return trs[n].start, trs[n].start + trs[n].dur, true
}

// IsDead reports whether the timeline has been killed.
func (tl *Timeline) IsDead() bool { return tl.state == StateDead }

// activate captures the pre-timeline snapshot of every animated channel and
// chains from-values: each track starts from whatever the earlier tracks
// render at its start, so an overlapping track picks up mid-flight. Runs
// once; later resets restore this snapshot.
func (tl *Timeline) activate() {
	if tl.activated {
		return
	}
	tl.activated = true
	tl.snapshot = make(map[channel]propVec, len(tl.order))
	for _, ch := range tl.order {
		base := readChannel(ch.target, ch.kind)
		tl.snapshot[ch] = base
		trs := tl.tracks[ch]
		for i, tr := range trs {
			if tr.restore {
				tr.to = base
			}
			tr.from = base
			if i > 0 {
				prev := trs[i-1]
				tr.from = prev.valueAt(tr.start - prev.start)
			}
		}
	}
}

// AdvanceTo renders the timeline at time t, clamped to [0, Duration()]. It is
// idempotent and accepts any order of t, which scrubbing relies on.
func (tl *Timeline) AdvanceTo(t float64) {
	if tl.state == StateDead {
		return
	}
	tl.activate()
	t = min(max(t, 0), tl.duration)
	prev := tl.cursor
	if !tl.primed {
		// Calls placed at 0 fire on the first render of a cycle.
		prev = -1
	}
	tl.cursor = t
	tl.render(t)
	tl.fireCalls(prev, t)
	tl.primed = true
}

func (tl *Timeline) render(t float64) {
	for _, ch := range tl.order {
		if ch.target.IsDisposed() {
			continue
		}
		v := tl.snapshot[ch]
		for _, tr := range tl.tracks[ch] {
			if t < tr.start {
				break
			}
			v = tr.valueAt(t - tr.start)
		}
		writeChannel(ch.target, ch.kind, v)
	}
}

func (tl *Timeline) fireCalls(prev, t float64) {
	if len(tl.calls) == 0 || prev == t {
		return
	}
	if t > prev {
		for _, c := range tl.calls {
			if c.at > prev && c.at <= t {
				c.fn()
			}
		}
		return
	}
	for i := len(tl.calls) - 1; i >= 0; i-- {
		c := tl.calls[i]
		if c.at >= t && c.at < prev {
			c.fn()
		}
	}
}

// resetToSnapshot writes the pre-timeline value of every channel the
// timeline animates, and nothing else.
func (tl *Timeline) resetToSnapshot() {
	if !tl.activated {
		return
	}
	for _, ch := range tl.order {
		if ch.target.IsDisposed() {
			continue
		}
		writeChannel(ch.target, ch.kind, tl.snapshot[ch])
	}
}

// Play starts or resumes playback in dir from the current cursor. Playing a
// timeline that is already mid-way resumes rather than restarting.
func (tl *Timeline) Play(dir Direction) {
	if tl.state == StateDead {
		return
	}
	tl.activate()
	if tl.state == StateWaitingRepeat && dir == Forward {
		return
	}
	if dir == Forward && tl.completed && tl.cursor >= tl.duration {
		return
	}
	if dir == Reverse {
		tl.completed = false
	}
	tl.dir = dir
	tl.state = StatePlaying
}

// Reverse plays backward from the current cursor.
func (tl *Timeline) Reverse() { tl.Play(Reverse) }

// Pause stops advancing without moving the cursor.
func (tl *Timeline) Pause() {
	if tl.state == StatePlaying || tl.state == StateWaitingRepeat {
		tl.state = StateIdle
	}
}

// Resume continues in the last direction.
func (tl *Timeline) Resume() { tl.Play(tl.dir) }

// Restart resets to the snapshot and plays forward from 0.
func (tl *Timeline) Restart() {
	if tl.state == StateDead {
		return
	}
	tl.activate()
	tl.iteration = 0
	tl.completed = false
	tl.restartCycle(0)
}

// Reset renders time 0 and stops.
func (tl *Timeline) Reset() {
	if tl.state == StateDead {
		return
	}
	tl.resetToSnapshot()
	tl.AdvanceTo(0)
	tl.completed = false
	tl.state = StateIdle
}

// Complete jumps to the end state and stops.
func (tl *Timeline) Complete() {
	if tl.state == StateDead {
		return
	}
	tl.AdvanceTo(tl.duration)
	tl.state = StateIdle
}

// Kill stops the timeline permanently. Target properties keep their
// current values. Call it before binding a replacement timeline to the same
// targets; Linkage.Bind and Engine.Rebuild do so internally.
func (tl *Timeline) Kill() {
	if tl.state == StateDead {
		return
	}
	tl.state = StateDead
	if globalDebug {
		debugf("kill timeline %q at %.3fs", tl.cfg.Name, tl.cursor)
	}
}

// Tick advances the state machine by dt seconds.
func (tl *Timeline) Tick(dt float64) {
	switch tl.state {
	case StatePlaying:
		if tl.dir == Reverse {
			next := tl.cursor - dt
			if next <= 0 {
				tl.AdvanceTo(0)
				tl.state = StateIdle
				if tl.cfg.OnReverseComplete != nil {
					tl.cfg.OnReverseComplete()
				}
				return
			}
			tl.AdvanceTo(next)
			return
		}
		next := tl.cursor + dt
		if next < tl.duration {
			tl.AdvanceTo(next)
			return
		}
		tl.AdvanceTo(tl.duration)
		tl.endCycle(next - tl.duration)

	case StateWaitingRepeat:
		tl.waited += dt
		if tl.waited >= tl.cfg.RepeatDelay {
			tl.repeat(tl.waited - tl.cfg.RepeatDelay)
		}
	}
}

func (tl *Timeline) endCycle(overflow float64) {
	if tl.cfg.Repeat == RepeatInfinite || tl.iteration < tl.cfg.Repeat {
		tl.state = StateWaitingRepeat
		tl.waited = overflow
		if tl.waited >= tl.cfg.RepeatDelay {
			tl.repeat(tl.waited - tl.cfg.RepeatDelay)
		}
		return
	}
	tl.state = StateIdle
	tl.completed = true
	if tl.cfg.OnComplete != nil {
		tl.cfg.OnComplete()
	}
}

func (tl *Timeline) repeat(leftover float64) {
	tl.iteration++
	tl.restartCycle(leftover)
	if tl.cfg.OnRepeat != nil {
		tl.cfg.OnRepeat(tl.iteration)
	}
}

// restartCycle restores the snapshot and plays from 0, plus any leftover
// time carried over from the tick that ended the repeat delay.
func (tl *Timeline) restartCycle(leftover float64) {
	tl.resetToSnapshot()
	tl.cursor = 0
	tl.primed = false
	tl.waited = 0
	tl.dir = Forward
	tl.state = StatePlaying
	tl.AdvanceTo(min(max(leftover, 0), tl.duration))
}

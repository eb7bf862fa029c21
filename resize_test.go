package scrollsync

import (
	"testing"
	"time"
)

func TestResizeBurstFiresOnce(t *testing.T) {
	r := NewResizeReactor(100 * time.Millisecond)
	var firedAt []time.Duration
	var now time.Duration
	r.OnInvalidate(func() { firedAt = append(firedAt, now) })

	events := make(map[time.Duration]bool)
	for i := range 10 {
		events[time.Duration(i)*10*time.Millisecond] = true
	}
	last := 90 * time.Millisecond

	for now = 0; now <= 500*time.Millisecond; now += time.Millisecond {
		if events[now] {
			r.Notify(now)
		}
		r.Tick(now)
	}

	if len(firedAt) != 1 {
		t.Fatalf("fired %d times, want 1", len(firedAt))
	}
	if firedAt[0] < last+100*time.Millisecond {
		t.Errorf("fired at %v, want >= %v", firedAt[0], last+100*time.Millisecond)
	}
	if r.Fired() != 1 || r.Pending() {
		t.Errorf("Fired = %d Pending = %v, want 1, false", r.Fired(), r.Pending())
	}
}

func TestResizeSeparateBurstsFireSeparately(t *testing.T) {
	r := NewResizeReactor(100 * time.Millisecond)
	count := 0
	r.OnInvalidate(func() { count++ })

	r.Notify(0)
	if r.Tick(50 * time.Millisecond) {
		t.Fatal("fired inside the quiet period")
	}
	if !r.Tick(100 * time.Millisecond) {
		t.Fatal("did not fire at the end of the quiet period")
	}
	r.Notify(300 * time.Millisecond)
	r.Tick(350 * time.Millisecond)
	r.Tick(400 * time.Millisecond)
	if count != 2 {
		t.Errorf("count = %d, want 2", count)
	}
	if r.Tick(time.Second) {
		t.Error("fired with nothing pending")
	}
}

func TestResizeCallbackOrder(t *testing.T) {
	r := NewResizeReactor(0)
	if r.QuietPeriod() != DefaultQuietPeriod {
		t.Errorf("QuietPeriod = %v, want default %v", r.QuietPeriod(), DefaultQuietPeriod)
	}
	var order []int
	r.OnInvalidate(func() { order = append(order, 1) })
	r.OnInvalidate(func() { order = append(order, 2) })
	r.Notify(0)
	r.Tick(DefaultQuietPeriod)
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("order = %v, want [1 2]", order)
	}
}

func TestResizeFlush(t *testing.T) {
	r := NewResizeReactor(time.Second)
	count := 0
	r.OnInvalidate(func() { count++ })
	if r.Flush() {
		t.Error("Flush fired with nothing pending")
	}
	r.Notify(5 * time.Second)
	if !r.Pending() {
		t.Fatal("expected pending after Notify")
	}
	if !r.Flush() || count != 1 {
		t.Errorf("Flush: count = %d, want 1", count)
	}
	if r.Pending() {
		t.Error("still pending after Flush")
	}
}

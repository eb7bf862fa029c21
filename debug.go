package scrollsync

import (
	"fmt"
	"io"
	"os"
	"time"
)

// globalDebug gates every debug check and log line. Only valid with a single
// Engine; multiple engines share whichever mode was set last.
var globalDebug bool

// debugOut is where debug lines go. Tests swap it for a buffer.
var debugOut io.Writer = os.Stderr

// SetDebugMode enables or disables debug mode. When enabled, disposed-node
// access panics, kills and rejected layouts are logged, and every rebuild
// prints its timing to stderr.
func SetDebugMode(enabled bool) {
	globalDebug = enabled
}

// DebugMode reports whether debug mode is enabled.
func DebugMode() bool {
	return globalDebug
}

func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(debugOut, "[scrollsync] "+format+"\n", args...)
}

// rebuildStats holds timing and size metrics for one Engine rebuild.
// Only populated when debug mode is on.
type rebuildStats struct {
	anchorTime   time.Duration
	generateTime time.Duration
	bindTime     time.Duration
	anchors      int
	pathLength   float64
	bindings     int
}

func (st rebuildStats) log() {
	total := st.anchorTime + st.generateTime + st.bindTime
	debugf("rebuild anchors: %v | generate: %v | bind: %v | total: %v",
		st.anchorTime, st.generateTime, st.bindTime, total)
	debugf("rebuild anchors: %d | path length: %.1f | bindings: %d",
		st.anchors, st.pathLength, st.bindings)
}

// debugCheckDisposed panics with a descriptive message when a disposed node is
// used in a tree operation. Only called in debug mode.
func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("scrollsync debug: %s on disposed node %q", op, n.Name))
	}
}

package scrollsync

// nodeIDCounter is a plain counter; nodes are created on the update goroutine.
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// NodeRole tells the host and the render surface what a node stands for.
type NodeRole uint8

const (
	RoleContainer NodeRole = iota // group node with no visual output
	RoleBox                       // filled rectangle (cards, windows, buttons)
	RoleText                      // text line; Reveal limits the visible characters
	RoleCursor                    // simulated pointer in the interaction demos
	RoleDot                       // filled circle sized by Bounds
	RolePath                      // the scroll-drawn connector curve
)

// Node is an animatable element of the page. Bounds is the layout rectangle
// relative to the parent (page coordinates for top-level nodes); X and Y are
// the animated translation applied on top of it, the same split as a CSS
// box and its transform.
type Node struct {
	// Identity
	ID   uint32
	Name string
	Role NodeRole

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout
	Bounds Rect

	// Animated properties
	X, Y     float64
	ScaleX   float64
	ScaleY   float64
	Rotation float64
	Alpha    float64
	Visible  bool

	Fill      Color
	Border    Color
	TextColor Color

	// Text and Reveal (RoleText). Reveal < 0 shows all characters. A nil
	// Font uses DefaultFont.
	Text   string
	Reveal int
	Font   *Font

	// DashOffset hides the first DashOffset units of a RolePath stroke,
	// counted from the end (stroke-dashoffset semantics).
	DashOffset float64

	// PathTarget marks nodes the connector curve passes through.
	PathTarget bool

	// Metadata
	UserData any

	disposed bool
}

// nodeDefaults sets the common default field values shared by all constructors.
func nodeDefaults(n *Node) {
	n.ID = nextNodeID()
	n.ScaleX = 1
	n.ScaleY = 1
	n.Alpha = 1
	n.Fill = ColorWhite
	n.TextColor = ColorWhite
	n.Visible = true
	n.Reveal = -1
}

// NewContainer creates a container node with no visual representation.
func NewContainer(name string, bounds Rect) *Node {
	n := &Node{Name: name, Role: RoleContainer, Bounds: bounds}
	nodeDefaults(n)
	return n
}

// NewBox creates a filled rectangle node.
func NewBox(name string, bounds Rect, fill Color) *Node {
	n := &Node{Name: name, Role: RoleBox, Bounds: bounds}
	nodeDefaults(n)
	n.Fill = fill
	return n
}

// NewText creates a text node. The text is fully revealed by default.
func NewText(name string, bounds Rect, text string) *Node {
	n := &Node{Name: name, Role: RoleText, Bounds: bounds, Text: text}
	nodeDefaults(n)
	return n
}

// NewCursor creates a simulated pointer at the given local position.
func NewCursor(name string, x, y float64) *Node {
	n := &Node{Name: name, Role: RoleCursor, Bounds: Rect{Width: 12, Height: 18}}
	nodeDefaults(n)
	n.X, n.Y = x, y
	return n
}

// NewDot creates a circular node whose diameter is the bounds width.
func NewDot(name string, bounds Rect, fill Color) *Node {
	n := &Node{Name: name, Role: RoleDot, Bounds: bounds}
	nodeDefaults(n)
	n.Fill = fill
	return n
}

// NewPathNode creates the node that displays the connector curve.
func NewPathNode(name string, stroke Color) *Node {
	n := &Node{Name: name, Role: RolePath}
	nodeDefaults(n)
	n.Border = stroke
	return n
}

// VisibleText returns the revealed prefix of Text.
func (n *Node) VisibleText() string {
	if n.Reveal < 0 {
		return n.Text
	}
	r := []rune(n.Text)
	if n.Reveal >= len(r) {
		return n.Text
	}
	return string(r[:n.Reveal])
}

// PageRect returns the node's layout rectangle in page coordinates,
// ignoring animated translation. Triggers and path anchors use it.
func (n *Node) PageRect() Rect {
	r := n.Bounds
	for p := n.Parent; p != nil; p = p.Parent {
		r = r.Translate(p.Bounds.X, p.Bounds.Y)
	}
	return r
}

// WorldOrigin returns the node's top-left in page coordinates including
// the animated translation of the node and all ancestors.
func (n *Node) WorldOrigin() Vec2 {
	v := Vec2{X: n.Bounds.X + n.X, Y: n.Bounds.Y + n.Y}
	for p := n.Parent; p != nil; p = p.Parent {
		v.X += p.Bounds.X + p.X
		v.Y += p.Bounds.Y + p.Y
	}
	return v
}

// WorldAlpha returns the product of the node's and its ancestors' Alpha.
func (n *Node) WorldAlpha() float64 {
	a := n.Alpha
	for p := n.Parent; p != nil; p = p.Parent {
		a *= p.Alpha
	}
	return a
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("scrollsync: cannot add nil child")
	}
	if globalDebug {
		debugCheckDisposed(n, "AddChild (parent)")
		debugCheckDisposed(child, "AddChild (child)")
	}
	if isAncestor(child, n) {
		panic("scrollsync: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("scrollsync: child's parent is not this node")
	}
	n.removeChildByPtr(child)
	child.Parent = nil
}

// RemoveFromParent detaches this node from its parent.
// No-op if this node has no parent.
func (n *Node) RemoveFromParent() {
	if n.Parent == nil {
		return
	}
	n.Parent.RemoveChild(n)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (n *Node) Children() []*Node {
	return n.children
}

// Walk visits n and its descendants depth-first, parents before children.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Timelines and tweens that
// target a disposed node stop writing to it.
func (n *Node) Dispose() {
	if n.disposed {
		return
	}
	n.RemoveFromParent()
	n.dispose()
}

func (n *Node) dispose() {
	n.disposed = true
	n.ID = 0
	for _, child := range n.children {
		child.Parent = nil
		child.dispose()
	}
	n.children = nil
	n.Parent = nil
	n.UserData = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// isAncestor reports whether candidate is an ancestor of node.
func isAncestor(candidate, node *Node) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from n.children without clearing child.Parent.
// Uses copy+nil to avoid retaining a dangling pointer in the backing array.
func (n *Node) removeChildByPtr(child *Node) {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			return
		}
	}
}

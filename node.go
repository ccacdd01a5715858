package dragdrop

// PointerContext carries pointer event data. Handlers receive a pointer so
// they can stop propagation to ancestor nodes.
type PointerContext struct {
	Type      EventType
	Node      *Node // node currently handling the event; nil in scene-level handlers
	Target    *Node // innermost node the event was dispatched at
	UserData  any
	GlobalX   float64
	GlobalY   float64
	LocalX    float64
	LocalY    float64
	Button    MouseButton
	Pressed   bool
	PointerID int

	stopped bool
}

// StopPropagation prevents the event from reaching further ancestors.
func (c *PointerContext) StopPropagation() {
	c.stopped = true
}

// Stopped reports whether a handler called StopPropagation.
func (c *PointerContext) Stopped() bool {
	return c.stopped
}

// --- ID counter ---

// nodeIDCounter is a plain counter (no atomic, dragdrop is single-threaded).
var nodeIDCounter uint32

func nextNodeID() uint32 {
	nodeIDCounter++
	return nodeIDCounter
}

// Node is a rectangular region in the panel tree. X and Y are the layout
// position relative to the parent; an active position override replaces
// the layout position with absolute world coordinates.
type Node struct {
	// Identity
	ID   uint32
	Name string

	// Hierarchy
	Parent   *Node
	children []*Node

	// Layout
	X, Y          float64
	Width, Height float64

	// OffsetX and OffsetY shift the node visually on top of its layout
	// position. Used by settle animations.
	OffsetX, OffsetY float64

	override  bool
	overrideX float64
	overrideY float64
	classes   map[string]struct{}
	listeners nodeListeners
	disposed  bool

	// Visibility & interaction
	Visible      bool
	Interactable bool

	// Appearance
	Color Color

	// Metadata
	UserData any

	// Per-node callbacks (nil by default). Invoked before listeners
	// registered with Listen.
	OnPointerDown  func(*PointerContext)
	OnPointerUp    func(*PointerContext)
	OnPointerMove  func(*PointerContext)
	OnClick        func(*PointerContext)
	OnPointerEnter func(*PointerContext)
	OnPointerLeave func(*PointerContext)
}

// nodeListeners holds the listeners attached by drag sources and drop areas.
type nodeListeners struct {
	down  handlerList[func(*PointerContext)]
	up    handlerList[func(*PointerContext)]
	move  handlerList[func(*PointerContext)]
	click handlerList[func(*PointerContext)]
	enter handlerList[func(*PointerContext)]
	leave handlerList[func(*PointerContext)]
}

func (l *nodeListeners) list(event EventType) *handlerList[func(*PointerContext)] {
	switch event {
	case EventPointerDown:
		return &l.down
	case EventPointerUp:
		return &l.up
	case EventPointerMove:
		return &l.move
	case EventClick:
		return &l.click
	case EventPointerEnter:
		return &l.enter
	case EventPointerLeave:
		return &l.leave
	}
	return nil
}

// NewNode creates a visible, interactable region with the given size.
func NewNode(name string, width, height float64) *Node {
	return &Node{
		ID:           nextNodeID(),
		Name:         name,
		Width:        width,
		Height:       height,
		Visible:      true,
		Interactable: true,
		Color:        ColorWhite,
	}
}

// NewContainer creates a zero-sized grouping node. Containers are never hit
// themselves but their children are.
func NewContainer(name string) *Node {
	return NewNode(name, 0, 0)
}

// Listen attaches fn to the given event on this node. Listeners run after
// the node's On* callback field, in registration order.
func (n *Node) Listen(event EventType, fn func(*PointerContext)) CallbackHandle {
	l := n.listeners.list(event)
	if l == nil || fn == nil {
		return CallbackHandle{}
	}
	return l.add(fn)
}

// callback returns the On* field for the given event.
func (n *Node) callback(event EventType) func(*PointerContext) {
	switch event {
	case EventPointerDown:
		return n.OnPointerDown
	case EventPointerUp:
		return n.OnPointerUp
	case EventPointerMove:
		return n.OnPointerMove
	case EventClick:
		return n.OnClick
	case EventPointerEnter:
		return n.OnPointerEnter
	case EventPointerLeave:
		return n.OnPointerLeave
	}
	return nil
}

// dispatch runs the node callback and listeners for ctx.Type.
func (n *Node) dispatch(ctx *PointerContext) {
	ctx.Node = n
	ctx.UserData = n.UserData
	ctx.LocalX, ctx.LocalY = n.WorldToLocal(ctx.GlobalX, ctx.GlobalY)
	if fn := n.callback(ctx.Type); fn != nil {
		fn(ctx)
	}
	if l := n.listeners.list(ctx.Type); l != nil {
		l.each(func(fn func(*PointerContext)) { fn(ctx) })
	}
}

// --- Classes ---

// AddClass adds a class name to the node. Adding an existing class is a no-op.
func (n *Node) AddClass(class string) {
	if n.classes == nil {
		n.classes = make(map[string]struct{})
	}
	n.classes[class] = struct{}{}
}

// RemoveClass removes a class name. Removing an absent class is a no-op.
func (n *Node) RemoveClass(class string) {
	delete(n.classes, class)
}

// HasClass reports whether the node carries the class.
func (n *Node) HasClass(class string) bool {
	_, ok := n.classes[class]
	return ok
}

// --- Position override ---

// SetOverride pins the node's top-left corner at world coordinates (x, y),
// ignoring its layout position until ClearOverride is called.
func (n *Node) SetOverride(x, y float64) {
	n.override = true
	n.overrideX = x
	n.overrideY = y
}

// ClearOverride returns the node to its layout position.
func (n *Node) ClearOverride() {
	n.override = false
	n.overrideX = 0
	n.overrideY = 0
}

// HasOverride reports whether a position override is active.
func (n *Node) HasOverride() bool {
	return n.override
}

// --- Tree manipulation ---

// AddChild appends child to this node's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this node (cycle).
func (n *Node) AddChild(child *Node) {
	if child == nil {
		panic("dragdrop: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("dragdrop: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	child.Parent = n
	n.children = append(n.children, child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (n *Node) AddChildAt(child *Node, index int) {
	if child == nil {
		panic("dragdrop: cannot add nil child")
	}
	if isAncestor(child, n) {
		panic("dragdrop: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(n.children) {
		panic("dragdrop: child index out of range")
	}
	child.Parent = n
	n.children = append(n.children, nil)
	copy(n.children[index+1:], n.children[index:])
	n.children[index] = child
}

// RemoveChild detaches child from this node.
// Panics if child.Parent != n.
func (n *Node) RemoveChild(child *Node) {
	if child.Parent != n {
		panic("dragdrop: child's parent is not this node")
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

// NumChildren returns the number of children.
func (n *Node) NumChildren() int {
	return len(n.children)
}

// FindChild returns the first descendant with the given name (depth-first),
// or nil.
func (n *Node) FindChild(name string) *Node {
	for _, c := range n.children {
		if c.Name == name {
			return c
		}
		if found := c.FindChild(name); found != nil {
			return found
		}
	}
	return nil
}

// --- Disposal ---

// Dispose removes this node from its parent, marks it as disposed,
// and recursively disposes all descendants. Listeners are dropped.
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
	n.classes = nil
	n.listeners = nodeListeners{}
	n.UserData = nil
	n.OnPointerDown = nil
	n.OnPointerUp = nil
	n.OnPointerMove = nil
	n.OnClick = nil
	n.OnPointerEnter = nil
	n.OnPointerLeave = nil
}

// IsDisposed returns true if this node has been disposed.
func (n *Node) IsDisposed() bool {
	return n.disposed
}

// --- Helpers ---

// isAncestor reports whether candidate is an ancestor of node (or node itself).
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

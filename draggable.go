package dragdrop

import (
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

const (
	defaultMoveThreshold = 20.0 // pixels, per axis
	defaultSnapDistance  = 50.0 // pixels
)

// Configuration errors.
var (
	ErrNoScene        = errors.New("dragdrop: drag type has no scene")
	ErrNoRegion       = errors.New("dragdrop: no region to bind")
	ErrNoDragType     = errors.New("dragdrop: drop area has no drag type")
	ErrDragInProgress = errors.New("dragdrop: drag already in progress")
)

// Config holds the tunables of a DraggableType.
type Config struct {
	// MoveThreshold is the displacement, in pixels along either axis, a
	// pointer must exceed before a gesture counts as a drag.
	MoveThreshold float64
	// SnapDistance is the edge distance below which constrained drop areas
	// pull the dragged element onto their edges.
	SnapDistance float64
	// SettleDuration, when positive, animates a released element from the
	// release point back to its layout slot over this many seconds.
	SettleDuration float32
	// SettleEase is the easing used for settling. Defaults to ease.OutCubic.
	SettleEase ease.TweenFunc
}

// DragOption configures a DraggableType.
type DragOption func(*Config)

// WithMoveThreshold overrides the default 20 px drag threshold.
func WithMoveThreshold(px float64) DragOption {
	return func(c *Config) { c.MoveThreshold = px }
}

// WithSnapDistance overrides the default 50 px elastic snap distance.
func WithSnapDistance(px float64) DragOption {
	return func(c *Config) { c.SnapDistance = px }
}

// WithSettle animates released elements back to their layout slot.
func WithSettle(seconds float32, fn ease.TweenFunc) DragOption {
	return func(c *Config) {
		c.SettleDuration = seconds
		c.SettleEase = fn
	}
}

// DragConfig registers a node as a drag source.
type DragConfig struct {
	// Node is the element that is picked up and moved. Required.
	Node *Node
	// Payload is delivered to drop handlers. When nil the node itself is
	// the payload.
	Payload any
	// PayloadFunc, when set, is called at the start of every drag and its
	// result replaces Payload.
	PayloadFunc func() any
	// BaseDropArea is the area the element is dragged out of. Releasing
	// over it again is a no-op.
	BaseDropArea *DropArea
	// OnStart runs after the session is set up, before the first move.
	OnStart func()
}

// DropEvent describes a completed drag for external observers.
type DropEvent struct {
	Session uuid.UUID // identifies the drag gesture
	Source  string    // name of the dragged node
	Area    string    // name of the drop area node; empty when released outside every area
	Payload any
	X, Y    float64 // pointer position at release
}

// EventStore receives completed drops. When set on a DraggableType, every
// drop is forwarded to it after the local subscribers ran.
type EventStore interface {
	EmitEvent(event DropEvent)
}

// dragSession is the state of one pointer-down to pointer-up gesture.
type dragSession struct {
	id       uuid.UUID
	source   *Draggable
	hasMoved bool

	originX, originY float64 // pointer at press
	startX, startY   float64 // element at press
	width, height    float64
	interactable     bool // node.Interactable before the gesture

	move CallbackHandle
	up   CallbackHandle
}

// DraggableType coordinates the drags of one kind of element: it holds the
// payload in flight and the stack of drop areas the pointer is inside.
// All methods must be called from the game loop.
type DraggableType struct {
	scene *Scene
	cfg   Config

	payload any
	active  bool
	stack   []*DropArea
	session *dragSession

	drops   handlerList[func(area *DropArea, payload any)]
	errs    handlerList[func(error)]
	settles []*TweenGroup
	store   EventStore
	debug   bool
	tick    CallbackHandle
}

// NewDraggableType creates a coordinator bound to the scene whose pointer
// events drive its drags.
func NewDraggableType(s *Scene, opts ...DragOption) *DraggableType {
	cfg := Config{
		MoveThreshold: defaultMoveThreshold,
		SnapDistance:  defaultSnapDistance,
		SettleEase:    ease.OutCubic,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.SettleEase == nil {
		cfg.SettleEase = ease.OutCubic
	}
	dt := &DraggableType{scene: s, cfg: cfg}
	if s != nil {
		dt.tick = s.OnUpdate(dt.Update)
	}
	return dt
}

// Config returns the effective configuration.
func (dt *DraggableType) Config() Config {
	return dt.cfg
}

// SetEventStore sets the optional external drop sink.
func (dt *DraggableType) SetEventStore(store EventStore) {
	dt.store = store
}

// SetDebugMode enables logging of drag transitions to stderr.
func (dt *DraggableType) SetDebugMode(enabled bool) {
	dt.debug = enabled
}

// IsDragging reports whether a drag session is active.
func (dt *DraggableType) IsDragging() bool {
	return dt.active
}

// Payload returns the payload in flight, or nil when idle.
func (dt *DraggableType) Payload() any {
	return dt.payload
}

// HasMoved reports whether the active gesture has passed the move threshold.
func (dt *DraggableType) HasMoved() bool {
	return dt.session != nil && dt.session.hasMoved
}

// EnterDropArea pushes area onto the containment stack. Ignored while idle
// so the stack stays empty outside a drag.
func (dt *DraggableType) EnterDropArea(area *DropArea) {
	if !dt.active || area == nil {
		return
	}
	dt.stack = append(dt.stack, area)
	dt.debugf("enter %s (depth %d)", area.name(), len(dt.stack))
}

// ExitDropArea pops the top of the containment stack. Popping an empty stack
// is a no-op.
func (dt *DraggableType) ExitDropArea() {
	if len(dt.stack) == 0 {
		return
	}
	top := dt.stack[len(dt.stack)-1]
	dt.stack[len(dt.stack)-1] = nil
	dt.stack = dt.stack[:len(dt.stack)-1]
	dt.debugf("exit %s (depth %d)", top.name(), len(dt.stack))
}

// Drop returns the innermost drop area under the pointer, or nil.
func (dt *DraggableType) Drop() *DropArea {
	if len(dt.stack) == 0 {
		return nil
	}
	return dt.stack[len(dt.stack)-1]
}

// Stack returns a copy of the containment stack, outermost first.
func (dt *DraggableType) Stack() []*DropArea {
	out := make([]*DropArea, len(dt.stack))
	copy(out, dt.stack)
	return out
}

// OnDrop registers fn to run on every completed drag. area is nil when the
// drag ended outside every registered drop area.
func (dt *DraggableType) OnDrop(fn func(area *DropArea, payload any)) CallbackHandle {
	return dt.drops.add(fn)
}

// OnError registers fn to receive errors raised by pointer-driven gestures,
// such as a second drag starting while one is in progress.
func (dt *DraggableType) OnError(fn func(error)) CallbackHandle {
	return dt.errs.add(fn)
}

func (dt *DraggableType) reportError(err error) {
	dt.debugf("error: %v", err)
	dt.errs.each(func(fn func(error)) { fn(err) })
}

// Draggable is a node registered as a drag source.
type Draggable struct {
	dt   *DraggableType
	cfg  DragConfig
	down CallbackHandle
}

// EnableDrag registers cfg.Node as a drag source. A pointer press on the node
// (or any descendant) starts a drag session.
func (dt *DraggableType) EnableDrag(cfg DragConfig) (*Draggable, error) {
	if dt.scene == nil {
		return nil, ErrNoScene
	}
	if cfg.Node == nil {
		return nil, ErrNoRegion
	}
	d := &Draggable{dt: dt, cfg: cfg}
	d.down = cfg.Node.Listen(EventPointerDown, func(ctx *PointerContext) {
		if err := d.Start(ctx.GlobalX, ctx.GlobalY); err != nil {
			dt.reportError(err)
		}
	})
	return d, nil
}

// Node returns the dragged element.
func (d *Draggable) Node() *Node {
	return d.cfg.Node
}

// BaseDropArea returns the area the element is dragged out of, or nil.
func (d *Draggable) BaseDropArea() *DropArea {
	return d.cfg.BaseDropArea
}

// SetBaseDropArea changes the area the element is dragged out of. Hosts call
// it after moving the element into another area. Takes effect on the next
// drag.
func (d *Draggable) SetBaseDropArea(area *DropArea) {
	d.cfg.BaseDropArea = area
}

// Disable removes the pointer-down listener. An active drag of this source
// is cancelled.
func (d *Draggable) Disable() {
	d.down.Remove()
	if s := d.dt.session; s != nil && s.source == d {
		d.dt.Cancel()
	}
}

// Start begins a drag session as if the pointer had been pressed at (x, y).
// It fails with ErrDragInProgress if the drag type already has a session.
func (d *Draggable) Start(x, y float64) error {
	dt := d.dt
	if dt.active {
		return ErrDragInProgress
	}
	n := d.cfg.Node
	dt.finishSettle(n)
	ex, ey := n.Offset()
	s := &dragSession{
		id:           uuid.New(),
		source:       d,
		originX:      x,
		originY:      y,
		startX:       ex,
		startY:       ey,
		width:        n.Width,
		height:       n.Height,
		interactable: n.Interactable,
	}

	dt.stack = dt.stack[:0]
	dt.active = true
	dt.session = s
	if d.cfg.BaseDropArea != nil {
		dt.EnterDropArea(d.cfg.BaseDropArea)
	}
	dt.payload = d.cfg.Payload
	if d.cfg.PayloadFunc != nil {
		dt.payload = d.cfg.PayloadFunc()
	}
	if dt.payload == nil {
		dt.payload = n
	}
	dt.debugf("start %s at (%.0f, %.0f)", n.Name, x, y)

	if d.cfg.OnStart != nil {
		d.cfg.OnStart()
	}
	s.move = dt.scene.OnPointerMove(func(ctx *PointerContext) { dt.drag(s, ctx.GlobalX, ctx.GlobalY) })
	s.up = dt.scene.OnPointerUp(func(ctx *PointerContext) { dt.release(s, ctx.GlobalX, ctx.GlobalY) })
	return nil
}

// drag moves the element to follow the pointer.
func (dt *DraggableType) drag(s *dragSession, x, y float64) {
	if dt.session != s {
		return
	}
	n := s.source.cfg.Node
	dx := s.originX - x
	dy := s.originY - y
	if math.Abs(dx) > dt.cfg.MoveThreshold || math.Abs(dy) > dt.cfg.MoveThreshold {
		if !s.hasMoved {
			n.AddClass(ClassMove)
			// Hit testing sees through the element once it is being carried.
			n.Interactable = false
		}
		s.hasMoved = true
	}

	pos := Vec2{X: s.startX - dx, Y: s.startY - dy}
	if area := dt.Drop(); area != nil && area.constrain {
		pos = ElasticSnap(pos, Vec2{X: s.width, Y: s.height}, area.Bounds(), dt.cfg.SnapDistance)
	}
	n.SetOverride(pos.X, pos.Y)
}

// release ends the gesture and dispatches the drop when one occurred.
func (dt *DraggableType) release(s *dragSession, x, y float64) {
	if dt.session != s {
		return
	}
	s.move.Remove()
	s.up.Remove()

	drop := dt.Drop()
	base := s.source.cfg.BaseDropArea
	if s.hasMoved && (base == nil || drop == nil || drop != base) {
		payload := dt.payload
		if drop != nil {
			drop.drop(payload)
		}
		dt.drops.each(func(fn func(*DropArea, any)) { fn(drop, payload) })
		dt.debugf("drop %s on %s", s.source.cfg.Node.Name, drop.name())
		if dt.store != nil {
			ev := DropEvent{Session: s.id, Source: s.source.cfg.Node.Name, Payload: payload, X: x, Y: y}
			if drop != nil {
				ev.Area = drop.name()
			}
			dt.store.EmitEvent(ev)
		}
	} else {
		dt.debugf("release %s without drop", s.source.cfg.Node.Name)
	}
	dt.end(s)
}

// Cancel aborts the active drag without any drop notification and returns
// the element to its layout position. No-op when idle.
func (dt *DraggableType) Cancel() {
	s := dt.session
	if s == nil {
		return
	}
	s.move.Remove()
	s.up.Remove()
	dt.debugf("cancel %s", s.source.cfg.Node.Name)
	dt.end(s)
}

// end resets the session state and restores the element.
func (dt *DraggableType) end(s *dragSession) {
	n := s.source.cfg.Node
	releaseX, releaseY := n.Offset()

	dt.payload = nil
	dt.active = false
	dt.session = nil
	for i, area := range dt.stack {
		area.node.RemoveClass(area.highlight)
		dt.stack[i] = nil
	}
	dt.stack = dt.stack[:0]

	n.RemoveClass(ClassMove)
	n.ClearOverride()
	n.Interactable = s.interactable

	if s.hasMoved && dt.cfg.SettleDuration > 0 && !n.IsDisposed() {
		lx, ly := n.LayoutOffset()
		n.OffsetX = releaseX - lx
		n.OffsetY = releaseY - ly
		dt.settles = append(dt.settles, TweenOffset(n, 0, 0, dt.cfg.SettleDuration, dt.cfg.SettleEase))
	}
}

// finishSettle completes any settle animation still running on n.
func (dt *DraggableType) finishSettle(n *Node) {
	for _, g := range dt.settles {
		if g.target == n {
			g.Finish()
		}
	}
}

// Update advances settle animations by dt seconds. The scene calls it every
// frame; hosts driving a DraggableType without a scene call it directly.
func (dt *DraggableType) Update(delta float32) {
	if len(dt.settles) == 0 {
		return
	}
	live := dt.settles[:0]
	for _, g := range dt.settles {
		g.Update(delta)
		if !g.Done {
			live = append(live, g)
		}
	}
	for i := len(live); i < len(dt.settles); i++ {
		dt.settles[i] = nil
	}
	dt.settles = live
}

// Settling reports whether any released element is still animating.
func (dt *DraggableType) Settling() bool {
	return len(dt.settles) > 0
}

// Close cancels any active drag and detaches the drag type from its scene's
// update loop.
func (dt *DraggableType) Close() {
	dt.Cancel()
	dt.tick.Remove()
	for _, g := range dt.settles {
		g.Finish()
	}
	dt.settles = nil
}

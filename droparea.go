package dragdrop

// DropAreaConfig registers a node as a drop target.
type DropAreaConfig struct {
	// Node is the region whose bounds receive drops. Required.
	Node *Node
	// DragType is the coordinator whose drags this area accepts. Required.
	DragType *DraggableType
	// HighlightClass is added to Node while a drag hovers it.
	// Defaults to ClassDragOver.
	HighlightClass string
	// Constrain snaps dragged elements onto this area's edges.
	Constrain bool
	// Handler, when set, is subscribed to the area's drop notification.
	Handler func(payload any)
}

// DropArea is a region that receives dropped payloads. It is passive: the
// pointer enter and leave events of its node feed the drag type's
// containment stack.
type DropArea struct {
	node      *Node
	dragType  *DraggableType
	highlight string
	constrain bool

	drops handlerList[func(payload any)]
	enter CallbackHandle
	leave CallbackHandle
}

// NewDropArea binds a drop area to cfg.Node and installs its enter and leave
// listeners.
func NewDropArea(cfg DropAreaConfig) (*DropArea, error) {
	if cfg.Node == nil {
		return nil, ErrNoRegion
	}
	if cfg.DragType == nil {
		return nil, ErrNoDragType
	}
	a := &DropArea{
		node:      cfg.Node,
		dragType:  cfg.DragType,
		highlight: cfg.HighlightClass,
		constrain: cfg.Constrain,
	}
	if a.highlight == "" {
		a.highlight = ClassDragOver
	}

	// Enter is guarded by IsDragging and claims the event so ancestor areas
	// do not push themselves as well. Leave is unguarded; popping an empty
	// stack is a no-op.
	a.enter = a.node.Listen(EventPointerEnter, func(ctx *PointerContext) {
		if !a.dragType.IsDragging() {
			return
		}
		ctx.StopPropagation()
		a.dragType.EnterDropArea(a)
		a.node.AddClass(a.highlight)
	})
	a.leave = a.node.Listen(EventPointerLeave, func(ctx *PointerContext) {
		a.node.RemoveClass(a.highlight)
		a.dragType.ExitDropArea()
	})

	if cfg.Handler != nil {
		a.drops.add(cfg.Handler)
	}
	return a, nil
}

// Node returns the region the area is bound to.
func (a *DropArea) Node() *Node {
	return a.node
}

// DragType returns the coordinator this area reports to.
func (a *DropArea) DragType() *DraggableType {
	return a.dragType
}

// Constrain reports whether dragged elements snap to this area's edges.
func (a *DropArea) Constrain() bool {
	return a.constrain
}

// HighlightClass returns the class applied while a drag hovers the area.
func (a *DropArea) HighlightClass() string {
	return a.highlight
}

// Bounds returns the area's rectangle in world coordinates.
func (a *DropArea) Bounds() Rect {
	return a.node.WorldBounds()
}

// OnDrop registers fn to run when a drag ends over this area.
func (a *DropArea) OnDrop(fn func(payload any)) CallbackHandle {
	return a.drops.add(fn)
}

// Close removes the area's listeners and highlight. The area stops
// receiving drops.
func (a *DropArea) Close() {
	a.enter.Remove()
	a.leave.Remove()
	a.node.RemoveClass(a.highlight)
}

// drop clears the highlight and notifies subscribers.
func (a *DropArea) drop(payload any) {
	a.node.RemoveClass(a.highlight)
	a.drops.each(func(fn func(any)) { fn(payload) })
}

func (a *DropArea) name() string {
	if a == nil {
		return "<none>"
	}
	return a.node.Name
}

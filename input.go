package dragdrop

import "github.com/hajimehoshi/ebiten/v2"

// --- Per-pointer state ---

type pointerState struct {
	down      bool
	startX    float64
	startY    float64
	lastX     float64
	lastY     float64
	hitNode   *Node
	hoverPath []*Node     // hovered node followed by its ancestors, innermost first
	button    MouseButton // button captured at press time
	moved     bool        // pointer moved while held since the last press
	seen      bool        // lastX/lastY hold a real sample
}

// --- Scene-level event registration ---

// OnPointerDown registers a scene-level callback for pointer down events.
// Scene-level handlers run before any node callback.
func (s *Scene) OnPointerDown(fn func(*PointerContext)) CallbackHandle {
	return s.handlers.list(EventPointerDown).add(fn)
}

// OnPointerUp registers a scene-level callback for pointer up events.
func (s *Scene) OnPointerUp(fn func(*PointerContext)) CallbackHandle {
	return s.handlers.list(EventPointerUp).add(fn)
}

// OnPointerMove registers a scene-level callback for pointer move events.
// It fires whenever the pointer position changes, pressed or not.
func (s *Scene) OnPointerMove(fn func(*PointerContext)) CallbackHandle {
	return s.handlers.list(EventPointerMove).add(fn)
}

// OnPointerEnter registers a scene-level callback for pointer enter events.
// Fired once per hover change with the innermost newly entered node.
func (s *Scene) OnPointerEnter(fn func(*PointerContext)) CallbackHandle {
	return s.handlers.list(EventPointerEnter).add(fn)
}

// OnPointerLeave registers a scene-level callback for pointer leave events.
// Fired once for every node the pointer leaves.
func (s *Scene) OnPointerLeave(fn func(*PointerContext)) CallbackHandle {
	return s.handlers.list(EventPointerLeave).add(fn)
}

// OnClick registers a scene-level callback for click events.
func (s *Scene) OnClick(fn func(*PointerContext)) CallbackHandle {
	return s.handlers.list(EventClick).add(fn)
}

// --- Hit testing ---

// collectInteractable walks the tree in painter order (DFS, children after
// their parent, later siblings above earlier ones), appending hit-testable
// nodes to buf. Skips Visible=false or Interactable=false subtrees.
func collectInteractable(n *Node, buf []*Node) []*Node {
	if !n.Visible || !n.Interactable {
		return buf
	}
	buf = append(buf, n)
	for _, child := range n.children {
		buf = collectInteractable(child, buf)
	}
	return buf
}

// hitTest finds the topmost interactable node at (worldX, worldY).
// Returns nil if nothing is hit.
func (s *Scene) hitTest(worldX, worldY float64) *Node {
	s.hitBuf = collectInteractable(s.root, s.hitBuf[:0])

	// Iterate backward (reverse painter order): topmost visual node first.
	for i := len(s.hitBuf) - 1; i >= 0; i-- {
		n := s.hitBuf[i]
		if n.containsWorld(worldX, worldY) {
			return n
		}
	}
	return nil
}

// ancestorPath returns n followed by its ancestors, innermost first.
func ancestorPath(n *Node, buf []*Node) []*Node {
	for p := n; p != nil; p = p.Parent {
		buf = append(buf, p)
	}
	return buf
}

func pathContains(path []*Node, n *Node) bool {
	for _, p := range path {
		if p == n {
			return true
		}
	}
	return false
}

// --- Input processing ---

// processInput is called from Scene.Update() to handle mouse input.
// Injected events take priority over the real cursor.
func (s *Scene) processInput() {
	if s.processInjectedInput() {
		return
	}
	s.processMousePointer()
}

// processMousePointer handles mouse input (pointer 0).
func (s *Scene) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If pointer is already down, the stored button is used to avoid
	// changing mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(0, float64(mx), float64(my), pressed, button)
}

// processPointer runs the pointer state machine for a single pointer.
func (s *Scene) processPointer(pointerID int, wx, wy float64, pressed bool, button MouseButton) {
	ps := &s.pointers[pointerID]
	if ps.down {
		button = ps.button
	}

	target := s.hitTest(wx, wy)
	s.updateHover(ps, target, pointerID, wx, wy, button, pressed)

	moved := !ps.seen || wx != ps.lastX || wy != ps.lastY
	ps.seen = true

	switch {
	case pressed && !ps.down:
		// Just pressed: capture button for the duration of this interaction.
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = wx, wy
		ps.lastX, ps.lastY = wx, wy
		ps.hitNode = target
		ps.moved = false
		s.fire(EventPointerDown, target, pointerID, wx, wy, button, true)

	case !pressed && ps.down:
		// Deliver the final position before the release so move listeners
		// observe where the pointer ended up.
		if moved {
			s.fire(EventPointerMove, target, pointerID, wx, wy, button, true)
		}
		ps.down = false
		ps.lastX, ps.lastY = wx, wy
		s.fire(EventPointerUp, target, pointerID, wx, wy, button, false)
		if ps.hitNode != nil && ps.hitNode == target && !ps.moved && !moved {
			s.fire(EventClick, target, pointerID, wx, wy, button, false)
		}
		ps.hitNode = nil

	default:
		if moved {
			if ps.down {
				ps.moved = true
			}
			ps.lastX, ps.lastY = wx, wy
			s.fire(EventPointerMove, target, pointerID, wx, wy, button, pressed)
		}
	}
}

// updateHover diffs the hover path and fires leave then enter events.
// Leave is delivered to every node that left the path, innermost first, and
// does not propagate. Enter is delivered once, at the innermost newly entered
// node, and propagates outward through the other newly entered ancestors
// until a handler stops it.
func (s *Scene) updateHover(ps *pointerState, target *Node, pointerID int, wx, wy float64, button MouseButton, pressed bool) {
	if len(ps.hoverPath) > 0 && ps.hoverPath[0] == target {
		return
	}
	if len(ps.hoverPath) == 0 && target == nil {
		return
	}
	next := ancestorPath(target, s.pathBuf[:0])

	for _, n := range ps.hoverPath {
		if pathContains(next, n) {
			continue
		}
		ctx := &PointerContext{
			Type: EventPointerLeave, Target: n,
			GlobalX: wx, GlobalY: wy, Button: button, Pressed: pressed, PointerID: pointerID,
		}
		s.handlers.list(EventPointerLeave).each(func(fn func(*PointerContext)) { fn(ctx) })
		n.dispatch(ctx)
	}

	var entered []*Node
	for _, n := range next {
		if !pathContains(ps.hoverPath, n) {
			entered = append(entered, n)
		}
	}
	if len(entered) > 0 {
		ctx := &PointerContext{
			Type: EventPointerEnter, Target: entered[0],
			GlobalX: wx, GlobalY: wy, Button: button, Pressed: pressed, PointerID: pointerID,
		}
		s.handlers.list(EventPointerEnter).each(func(fn func(*PointerContext)) { fn(ctx) })
		for _, n := range entered {
			if ctx.stopped {
				break
			}
			n.dispatch(ctx)
		}
	}

	// Swap buffers so the next diff does not alias the stored path.
	s.pathBuf = ps.hoverPath[:0]
	ps.hoverPath = next
}

// --- Event dispatch ---

// fire delivers a bubbling event: scene-level handlers first, then the target
// node and each ancestor until propagation is stopped.
func (s *Scene) fire(event EventType, target *Node, pointerID int, wx, wy float64, button MouseButton, pressed bool) {
	ctx := &PointerContext{
		Type: event, Target: target,
		GlobalX: wx, GlobalY: wy, Button: button, Pressed: pressed, PointerID: pointerID,
	}
	if target != nil {
		ctx.UserData = target.UserData
		ctx.LocalX, ctx.LocalY = target.WorldToLocal(wx, wy)
	}
	s.handlers.list(event).each(func(fn func(*PointerContext)) { fn(ctx) })
	for n := target; n != nil && !ctx.stopped; n = n.Parent {
		n.dispatch(ctx)
	}
	if s.debug && event != EventPointerMove {
		s.debugLogEvent(event, target, wx, wy)
	}
}

package dragdrop

// Offset returns the world-space position of the node's top-left corner.
// A position override wins over the layout chain; otherwise the layout
// position and visual offset are added to the parent's offset.
func (n *Node) Offset() (x, y float64) {
	if n.override {
		return n.overrideX, n.overrideY
	}
	if n.Parent != nil {
		x, y = n.Parent.Offset()
	}
	return x + n.X + n.OffsetX, y + n.Y + n.OffsetY
}

// LayoutOffset returns the world-space position the node would occupy with
// no override and no visual offset.
func (n *Node) LayoutOffset() (x, y float64) {
	if n.Parent != nil {
		x, y = n.Parent.Offset()
	}
	return x + n.X, y + n.Y
}

// WorldBounds returns the node's bounding box in world coordinates.
func (n *Node) WorldBounds() Rect {
	x, y := n.Offset()
	return Rect{X: x, Y: y, Width: n.Width, Height: n.Height}
}

// SetPosition sets the node's layout X and Y.
func (n *Node) SetPosition(x, y float64) {
	n.X = x
	n.Y = y
}

// SetSize sets the node's Width and Height.
func (n *Node) SetSize(w, h float64) {
	n.Width = w
	n.Height = h
}

// --- Coordinate conversion ---

// WorldToLocal converts a world-space point to this node's local coordinate space.
func (n *Node) WorldToLocal(wx, wy float64) (lx, ly float64) {
	ox, oy := n.Offset()
	return wx - ox, wy - oy
}

// LocalToWorld converts a local-space point to world-space.
func (n *Node) LocalToWorld(lx, ly float64) (wx, wy float64) {
	ox, oy := n.Offset()
	return lx + ox, ly + oy
}

// containsWorld reports whether the world point lies inside the node's box.
// Zero-sized nodes contain nothing.
func (n *Node) containsWorld(wx, wy float64) bool {
	if n.Width == 0 && n.Height == 0 {
		return false
	}
	lx, ly := n.WorldToLocal(wx, wy)
	return lx >= 0 && lx <= n.Width && ly >= 0 && ly <= n.Height
}

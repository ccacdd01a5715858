package dragdrop

import "math"

// ElasticSnap pulls the dragged element at pos (top-left) with the given
// size onto the edges of target when an edge is closer than distance.
//
// Edges are checked top, bottom, left, right. When both vertical (or both
// horizontal) edges are in range the later check wins, so bottom beats top
// and right beats left.
func ElasticSnap(pos, size Vec2, target Rect, distance float64) Vec2 {
	ex, ey := pos.X, pos.Y
	if math.Abs(ey-target.Y) < distance {
		ey = target.Y
	}
	if math.Abs((ey+size.Y)-(target.Y+target.Height)) < distance {
		ey = target.Y + target.Height - size.Y
	}
	if math.Abs(ex-target.X) < distance {
		ex = target.X
	}
	if math.Abs((ex+size.X)-(target.X+target.Width)) < distance {
		ex = target.X + target.Width - size.X
	}
	return Vec2{X: ex, Y: ey}
}

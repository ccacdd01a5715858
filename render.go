package dragdrop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// RenderCommand is a single draw instruction emitted during scene traversal.
type RenderCommand struct {
	Node         *Node
	Bounds       Rect
	Fill         Color
	Outline      Color
	OutlineWidth float64
}

// buildCommands walks the tree depth-first and emits one command per
// visible sized node. Nodes with a position override are drawn last, above
// everything else, together with their subtrees.
func (s *Scene) buildCommands() {
	s.commands = s.commands[:0]
	s.deferred = s.deferred[:0]
	s.traverse(s.root, false)
	for i := 0; i < len(s.deferred); i++ {
		s.traverse(s.deferred[i], true)
	}
}

func (s *Scene) traverse(n *Node, lifted bool) {
	if !n.Visible {
		return
	}
	if n.override && !lifted {
		s.deferred = append(s.deferred, n)
		return
	}
	if n.Width > 0 && n.Height > 0 {
		s.commands = append(s.commands, s.command(n))
	}
	for _, child := range n.children {
		s.traverse(child, false)
	}
}

// command resolves the node's class styles into a render command.
func (s *Scene) command(n *Node) RenderCommand {
	cmd := RenderCommand{Node: n, Bounds: n.WorldBounds(), Fill: n.Color}
	for class := range n.classes {
		st, ok := s.Styles[class]
		if !ok {
			continue
		}
		if st.Tint != (Color{}) {
			cmd.Fill = Color{
				R: cmd.Fill.R * st.Tint.R,
				G: cmd.Fill.G * st.Tint.G,
				B: cmd.Fill.B * st.Tint.B,
				A: cmd.Fill.A * st.Tint.A,
			}
		}
		if st.Outline.A > 0 && st.OutlineWidth > cmd.OutlineWidth {
			cmd.Outline = st.Outline
			cmd.OutlineWidth = st.OutlineWidth
		}
	}
	return cmd
}

// submit draws the command list in order.
func (s *Scene) submit(target *ebiten.Image) {
	for i := range s.commands {
		cmd := &s.commands[i]
		b := cmd.Bounds
		vector.DrawFilledRect(target, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
			cmd.Fill.toRGBA(), false)
		if cmd.OutlineWidth > 0 {
			vector.StrokeRect(target, float32(b.X), float32(b.Y), float32(b.Width), float32(b.Height),
				float32(cmd.OutlineWidth), cmd.Outline.toRGBA(), false)
		}
	}
}

// Commands returns the commands emitted by the most recent Draw. The returned
// slice MUST NOT be mutated.
func (s *Scene) Commands() []RenderCommand {
	return s.commands
}

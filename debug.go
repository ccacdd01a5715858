package dragdrop

import (
	"fmt"
	"os"
)

// debugLogEvent prints a pointer event to stderr.
// Only called when Scene.debug is true.
func (s *Scene) debugLogEvent(event EventType, target *Node, wx, wy float64) {
	name := "<none>"
	if target != nil {
		name = target.Name
	}
	_, _ = fmt.Fprintf(os.Stderr, "[dragdrop] %s on %q at (%.0f, %.0f)\n", event, name, wx, wy)
}

// debugf prints a drag transition to stderr when debug mode is on.
func (dt *DraggableType) debugf(format string, args ...any) {
	if !dt.debug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[dragdrop] "+format+"\n", args...)
}

// debugCheckTreeDepth warns on stderr if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent {
		depth++
	}
	if depth > debugMaxTreeDepth {
		_, _ = fmt.Fprintf(os.Stderr, "[dragdrop] warning: tree depth %d exceeds %d (node %q)\n",
			depth, debugMaxTreeDepth, n.Name)
	}
}

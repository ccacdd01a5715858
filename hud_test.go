package dragdrop

import (
	"strings"
	"testing"
)

func TestStatusText(t *testing.T) {
	if got := statusText(60, 60, nil); !strings.HasSuffix(got, "idle") {
		t.Errorf("nil drag type: %q", got)
	}

	b := newBoard(t, "x")
	if got := statusText(59.5, 60, b.dt); !strings.Contains(got, "FPS: 59.5") || !strings.HasSuffix(got, "idle") {
		t.Errorf("idle: %q", got)
	}

	if err := b.drag.Start(30, 30); err != nil {
		t.Fatal(err)
	}
	if got := statusText(60, 60, b.dt); !strings.HasSuffix(got, "dragging x over tray") {
		t.Errorf("dragging: %q", got)
	}
	b.dt.Cancel()
}

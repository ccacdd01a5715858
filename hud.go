package dragdrop

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// drawLabels prints each drawn node's name at its top-left corner.
func (s *Scene) drawLabels(screen *ebiten.Image) {
	for i := range s.commands {
		b := s.commands[i].Bounds
		ebitenutil.DebugPrintAt(screen, s.commands[i].Node.Name, int(b.X)+4, int(b.Y)+2)
	}
}

// DrawStatus draws a small panel in the bottom-left corner with FPS, TPS and
// the drag state of dt.
func (s *Scene) DrawStatus(screen *ebiten.Image, dt *DraggableType) {
	const w, h = 240, 48
	if s.hud == nil {
		s.hud = ebiten.NewImage(w, h)
	}
	s.hud.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(s.hud, statusText(ebiten.ActualFPS(), ebiten.ActualTPS(), dt))

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(0, float64(screen.Bounds().Dy()-h))
	screen.DrawImage(s.hud, op)
}

func statusText(fps, tps float64, dt *DraggableType) string {
	state := "idle"
	if dt != nil && dt.IsDragging() {
		state = fmt.Sprintf("dragging %v over %s", dt.Payload(), dt.Drop().name())
	}
	return fmt.Sprintf("FPS: %.1f\nTPS: %.1f\n%s", fps, tps, state)
}

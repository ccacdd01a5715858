package dragdrop

import (
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	maxPointers       = 1 // pointer 0 = mouse
	defaultCommandCap = 256
)

// Style is the visual treatment applied to nodes carrying a class.
type Style struct {
	// Tint multiplies the node's fill color. The zero value leaves it unchanged.
	Tint Color
	// Outline draws a border of OutlineWidth pixels when its alpha is non-zero.
	Outline      Color
	OutlineWidth float64
}

// DefaultStyles returns the styles used for the built-in drag classes.
func DefaultStyles() map[string]Style {
	return map[string]Style{
		ClassDragOver: {Outline: Color{R: 1, G: 0.85, B: 0.2, A: 1}, OutlineWidth: 2},
		ClassMove:     {Tint: Color{R: 1, G: 1, B: 1, A: 0.75}},
	}
}

// Scene is the top-level object that owns the node tree, input state and
// render buffers.
type Scene struct {
	root  *Node
	debug bool

	// ClearColor fills the screen before drawing when its alpha is non-zero.
	ClearColor Color
	// Styles maps class names to their visual treatment.
	Styles map[string]Style
	// ShowLabels prints each node's name at its top-left corner.
	ShowLabels bool
	// ScreenshotDir is where Screenshot writes its PNG files.
	ScreenshotDir string

	// Render state
	commands []RenderCommand
	deferred []*Node

	// Input state
	handlers    nodeListeners
	pointers    [maxPointers]pointerState
	hitBuf      []*Node
	pathBuf     []*Node
	injectQueue []syntheticPointerEvent
	testRunner  *TestRunner

	updaters        handlerList[func(dt float32)]
	hud             *ebiten.Image
	screenshotQueue []string
}

// NewScene creates a new scene with a pre-created root container.
func NewScene() *Scene {
	return &Scene{
		root:          NewContainer("root"),
		Styles:        DefaultStyles(),
		ScreenshotDir: defaultScreenshotDir,
		commands:      make([]RenderCommand, 0, defaultCommandCap),
	}
}

// Root returns the scene's root container node.
func (s *Scene) Root() *Node {
	return s.root
}

// OnUpdate registers fn to run every Update with the frame delta in seconds,
// after input has been processed.
func (s *Scene) OnUpdate(fn func(dt float32)) CallbackHandle {
	return s.updaters.add(fn)
}

// Update processes input and advances per-frame updaters.
func (s *Scene) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))
	s.update(dt)
}

// update is Update with an explicit delta so tests avoid the game loop.
func (s *Scene) update(dt float32) {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()
	s.updaters.each(func(fn func(dt float32)) { fn(dt) })
}

// Draw traverses the scene tree, emits render commands and submits them to
// the given screen image.
func (s *Scene) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	s.buildCommands()
	s.submit(screen)
	if s.ShowLabels {
		s.drawLabels(screen)
	}
	s.flushScreenshots(screen)
}

// SetDebugMode enables or disables debug mode. When enabled, pointer events
// (except moves) are logged to stderr.
func (s *Scene) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Pointer returns the last known position of the mouse pointer and whether a
// button is held.
func (s *Scene) Pointer() (x, y float64, down bool) {
	ps := &s.pointers[0]
	return ps.lastX, ps.lastY, ps.down
}

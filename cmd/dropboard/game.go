package main

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/phanxgames/dragdrop"
)

const tabGap = 10

// game hosts one board. Tabs are the board's drag sources; every drop area
// is a section tabs can live in.
type game struct {
	scene   *dragdrop.Scene
	dt      *dragdrop.DraggableType
	layout  *dragdrop.Layout
	watcher *dragdrop.LayoutWatcher
	debug   bool

	width, height int
}

func newGame(spec *dragdrop.LayoutSpec, debug bool) (*game, error) {
	g := &game{
		scene:  dragdrop.NewScene(),
		debug:  debug,
		width:  800,
		height: 600,
	}
	g.scene.ClearColor = dragdrop.Color{R: 0.1, G: 0.1, B: 0.12, A: 1}
	g.scene.ShowLabels = true
	g.scene.SetDebugMode(debug)
	if err := g.load(spec); err != nil {
		return nil, err
	}
	return g, nil
}

// load replaces the current board with one built from spec.
func (g *game) load(spec *dragdrop.LayoutSpec) error {
	dt := dragdrop.NewDraggableType(g.scene, spec.Options()...)
	dt.SetDebugMode(g.debug)
	layout, err := spec.Build(g.scene.Root(), dt)
	if err != nil {
		dt.Close()
		return err
	}
	dt.OnDrop(g.onDrop)
	dt.OnError(func(err error) { log.Printf("dropboard: %v", err) })

	if g.layout != nil {
		g.layout.Teardown()
	}
	if g.dt != nil {
		g.dt.Close()
	}
	g.dt, g.layout = dt, layout
	return nil
}

// onDrop moves the dropped tab into the section it landed on.
func (g *game) onDrop(area *dragdrop.DropArea, payload any) {
	if area == nil {
		return
	}
	name, ok := payload.(string)
	if !ok {
		return
	}
	g.moveTab(name, area)
}

func (g *game) moveTab(name string, area *dragdrop.DropArea) {
	tab := g.layout.Node(name)
	d := g.layout.Draggable(name)
	if tab == nil || d == nil {
		return
	}
	from := tab.Parent
	area.Node().AddChild(tab)
	d.SetBaseDropArea(area)
	if from != nil {
		g.relayoutTabs(from)
	}
	g.relayoutTabs(area.Node())
	if g.debug {
		log.Printf("dropboard: moved %s to %s", name, area.Node().Name)
	}
}

// relayoutTabs flows the tabs of a section left to right, wrapping rows.
func (g *game) relayoutTabs(section *dragdrop.Node) {
	i := 0
	for _, child := range section.Children() {
		if g.layout.Draggable(child.Name) == nil {
			continue
		}
		perRow := int((section.Width - tabGap) / (child.Width + tabGap))
		if perRow < 1 {
			perRow = 1
		}
		col, row := i%perRow, i/perRow
		child.SetPosition(
			tabGap+float64(col)*(child.Width+tabGap),
			tabGap+float64(row)*(child.Height+tabGap),
		)
		i++
	}
}

// reload rebuilds the board from the watched file. A broken file keeps the
// current board.
func (g *game) reload(path string) {
	spec, err := dragdrop.LoadLayoutFile(path)
	if err != nil {
		log.Printf("dropboard: reload: %v", err)
		return
	}
	if err := g.load(spec); err != nil {
		log.Printf("dropboard: reload: %v", err)
		return
	}
	log.Printf("dropboard: reloaded %s", path)
}

func (g *game) Update() error {
	if g.watcher != nil {
		if path, ok := g.watcher.Poll(); ok {
			g.reload(path)
		}
		select {
		case err := <-g.watcher.Errors:
			if err != nil {
				log.Printf("dropboard: watch: %v", err)
			}
		default:
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyEscape) && g.dt.IsDragging() {
		g.dt.Cancel()
	}
	g.scene.Update()
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.debug {
		g.scene.DrawStatus(screen, g.dt)
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.width, g.height
}

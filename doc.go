// Package dragdrop is a drag-and-drop engine for panel-based UIs rendered
// with [Ebitengine].
//
// Dragdrop provides a rectangular node tree with pointer hit testing,
// hover enter/leave tracking, a drag coordinator that moves elements with
// the pointer, drop areas that receive payloads, and an elastic snap that
// pulls dragged elements onto the edges of constrained areas.
//
// # Quick start
//
// Implement [ebiten.Game] and call [Scene.Update] and [Scene.Draw]:
//
//	type Game struct{ scene *dragdrop.Scene }
//
//	func (g *Game) Update() error         { g.scene.Update(); return nil }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Node tree
//
// Every region is a [Node]. Nodes form a tree rooted at [Scene.Root]; a
// node's X and Y are relative to its parent. Zero-sized containers group
// nodes without being hit themselves.
//
//	panel := dragdrop.NewNode("panel1", 300, 200)
//	panel.SetPosition(20, 20)
//	scene.Root().AddChild(panel)
//
// # Dragging
//
// A [DraggableType] coordinates every drag of one kind of element. It
// holds the payload in flight and a stack of the drop areas the pointer is
// currently inside, innermost on top.
//
//	tabs := dragdrop.NewDraggableType(scene)
//	tray, _ := dragdrop.NewDropArea(dragdrop.DropAreaConfig{Node: trayNode, DragType: tabs})
//	area, _ := dragdrop.NewDropArea(dragdrop.DropAreaConfig{Node: panel, DragType: tabs, Constrain: true})
//	tabs.EnableDrag(dragdrop.DragConfig{Node: tab, Payload: "tab1", BaseDropArea: tray})
//
//	area.OnDrop(func(payload any) { /* tab landed on panel */ })
//	tabs.OnDrop(func(a *dragdrop.DropArea, payload any) { /* a is nil outside every area */ })
//
// A press only becomes a drag once the pointer moves more than the move
// threshold (20 px by default) along either axis. Releasing over the base
// drop area, or before the threshold is passed, drops nothing.
//
// # Layouts
//
// Boards can be described in YAML and built with [ParseLayout] and
// [LayoutSpec.Build]. [WatchLayout] reports edits to a layout file so hosts
// can rebuild on the fly.
//
// # Testing
//
// Pointer input can be injected with [Scene.InjectPress], [Scene.InjectMove],
// [Scene.InjectRelease] and [Scene.InjectDrag], or scripted from JSON with
// [LoadTestScript]. Injected events take priority over the real mouse.
//
// # ECS integration
//
// Completed drops can be forwarded to an ECS world through [EventStore].
// The dragdrop/ecs module provides a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package dragdrop

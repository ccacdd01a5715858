package dragdrop

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/tanema/gween/ease"
)

const frameDelta = float32(1.0 / 60)

// board is a tray holding one tab above a constrained panel.
//
//	tray   (0,0)   400x60, base drop area of tab
//	tab    (10,10) 40x40 inside tray
//	panel1 (0,100) 400x300, constrained drop area
type board struct {
	s      *Scene
	dt     *DraggableType
	tray   *Node
	tab    *Node
	panel  *Node
	trayA  *DropArea
	panelA *DropArea
	drag   *Draggable
}

func newBoard(t *testing.T, payload any, opts ...DragOption) *board {
	t.Helper()
	b := &board{s: NewScene()}
	b.dt = NewDraggableType(b.s, opts...)

	b.tray = NewNode("tray", 400, 60)
	b.tab = NewNode("tab", 40, 40)
	b.tab.SetPosition(10, 10)
	b.tray.AddChild(b.tab)
	b.panel = NewNode("panel1", 400, 300)
	b.panel.SetPosition(0, 100)
	b.s.Root().AddChild(b.tray)
	b.s.Root().AddChild(b.panel)

	var err error
	b.trayA, err = NewDropArea(DropAreaConfig{Node: b.tray, DragType: b.dt})
	if err != nil {
		t.Fatal(err)
	}
	b.panelA, err = NewDropArea(DropAreaConfig{Node: b.panel, DragType: b.dt, Constrain: true})
	if err != nil {
		t.Fatal(err)
	}
	b.drag, err = b.dt.EnableDrag(DragConfig{Node: b.tab, Payload: payload, BaseDropArea: b.trayA})
	if err != nil {
		t.Fatal(err)
	}
	return b
}

// drain consumes every injected event without running frame updaters.
func drain(s *Scene) {
	for s.PendingInput() > 0 {
		s.processInput()
	}
}

type dropRecord struct {
	area    *DropArea
	payload any
}

func recordDrops(dt *DraggableType) *[]dropRecord {
	var out []dropRecord
	dt.OnDrop(func(area *DropArea, payload any) {
		out = append(out, dropRecord{area, payload})
	})
	return &out
}

func TestNewDraggableTypeDefaults(t *testing.T) {
	dt := NewDraggableType(NewScene())
	cfg := dt.Config()
	if cfg.MoveThreshold != 20 {
		t.Errorf("MoveThreshold = %v, want 20", cfg.MoveThreshold)
	}
	if cfg.SnapDistance != 50 {
		t.Errorf("SnapDistance = %v, want 50", cfg.SnapDistance)
	}
	if cfg.SettleDuration != 0 {
		t.Errorf("SettleDuration = %v, want 0", cfg.SettleDuration)
	}
	if cfg.SettleEase == nil {
		t.Error("SettleEase should default to a non-nil easing")
	}
	if dt.IsDragging() || dt.Payload() != nil || dt.Drop() != nil {
		t.Error("new drag type should be idle")
	}
}

func TestDragOptions(t *testing.T) {
	dt := NewDraggableType(NewScene(),
		WithMoveThreshold(5), WithSnapDistance(10), WithSettle(0.25, ease.Linear))
	cfg := dt.Config()
	if cfg.MoveThreshold != 5 || cfg.SnapDistance != 10 || cfg.SettleDuration != 0.25 {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestEnableDragErrors(t *testing.T) {
	tests := []struct {
		name string
		dt   *DraggableType
		cfg  DragConfig
		want error
	}{
		{"no scene", NewDraggableType(nil), DragConfig{Node: NewNode("n", 1, 1)}, ErrNoScene},
		{"no node", NewDraggableType(NewScene()), DragConfig{}, ErrNoRegion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := tt.dt.EnableDrag(tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("err = %v, want %v", err, tt.want)
			}
			if d != nil {
				t.Error("expected nil draggable on error")
			}
		})
	}
}

func TestDragBelowThresholdDropsNothing(t *testing.T) {
	b := newBoard(t, "x")
	drops := recordDrops(b.dt)
	var areaDrops int
	b.panelA.OnDrop(func(any) { areaDrops++ })

	b.s.InjectPress(30, 30)
	b.s.InjectMove(45, 45)
	b.s.InjectRelease(45, 45)
	drain(b.s)

	if len(*drops) != 0 || areaDrops != 0 {
		t.Errorf("expected no drops, got %d coordinator, %d area", len(*drops), areaDrops)
	}
	if b.tab.HasClass(ClassMove) {
		t.Error("move class should never be applied below the threshold")
	}
	if b.dt.IsDragging() {
		t.Error("session should have ended")
	}
}

func TestDragThresholdIsStrict(t *testing.T) {
	tests := []struct {
		name  string
		dx    float64
		dy    float64
		moved bool
	}{
		{"exactly threshold x", 20, 0, false},
		{"exactly threshold y", 0, -20, false},
		{"past threshold x", 20.5, 0, true},
		{"past threshold y negative", 0, -21, true},
		{"diagonal under threshold", 15, 15, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewScene()
			dt := NewDraggableType(s)
			n := NewNode("n", 40, 40)
			n.SetPosition(100, 100)
			s.Root().AddChild(n)
			if _, err := dt.EnableDrag(DragConfig{Node: n}); err != nil {
				t.Fatal(err)
			}

			s.InjectPress(110, 110)
			s.InjectMove(110+tt.dx, 110+tt.dy)
			drain(s)

			if dt.HasMoved() != tt.moved {
				t.Errorf("HasMoved = %v, want %v", dt.HasMoved(), tt.moved)
			}
			if n.HasClass(ClassMove) != tt.moved {
				t.Errorf("HasClass(move) = %v, want %v", n.HasClass(ClassMove), tt.moved)
			}
			dt.Cancel()
		})
	}
}

func TestDragOutsideEveryArea(t *testing.T) {
	b := newBoard(t, "x")
	drops := recordDrops(b.dt)
	var trayDrops, panelDrops int
	b.trayA.OnDrop(func(any) { trayDrops++ })
	b.panelA.OnDrop(func(any) { panelDrops++ })

	b.s.InjectDrag(30, 30, 600, 30, 5)
	drain(b.s)

	if len(*drops) != 1 {
		t.Fatalf("expected 1 coordinator drop, got %d", len(*drops))
	}
	if (*drops)[0].area != nil {
		t.Errorf("area = %v, want nil", (*drops)[0].area)
	}
	if (*drops)[0].payload != "x" {
		t.Errorf("payload = %v, want x", (*drops)[0].payload)
	}
	if trayDrops != 0 || panelDrops != 0 {
		t.Errorf("no area should be notified, got tray=%d panel=%d", trayDrops, panelDrops)
	}
}

func TestDragReleaseOnBaseIsNoop(t *testing.T) {
	b := newBoard(t, "x")
	drops := recordDrops(b.dt)
	var trayDrops int
	b.trayA.OnDrop(func(any) { trayDrops++ })

	b.s.InjectDrag(30, 30, 300, 30, 5)
	drain(b.s)

	if len(*drops) != 0 || trayDrops != 0 {
		t.Errorf("release on base should drop nothing, got %d/%d", len(*drops), trayDrops)
	}
	if b.tray.HasClass(ClassDragOver) {
		t.Error("base highlight should be cleared when the session ends")
	}
}

func TestDragTrayToPanel(t *testing.T) {
	payload := map[string]string{"id": "x"}
	b := newBoard(t, payload)

	var order []string
	var areaPayload any
	b.panelA.OnDrop(func(p any) {
		order = append(order, "area")
		areaPayload = p
	})
	var got dropRecord
	b.dt.OnDrop(func(area *DropArea, p any) {
		order = append(order, "coordinator")
		got = dropRecord{area, p}
	})

	b.s.InjectDrag(30, 30, 200, 250, 6)
	drain(b.s)

	if len(order) != 2 || order[0] != "area" || order[1] != "coordinator" {
		t.Fatalf("notification order = %v, want [area coordinator]", order)
	}
	if m, ok := areaPayload.(map[string]string); !ok || m["id"] != "x" {
		t.Errorf("area payload = %v", areaPayload)
	}
	if got.area != b.panelA {
		t.Errorf("coordinator area = %v, want panel1", got.area.name())
	}
	if m, ok := got.payload.(map[string]string); !ok || m["id"] != "x" {
		t.Errorf("coordinator payload = %v", got.payload)
	}

	// Session fully reset.
	if b.dt.IsDragging() || b.dt.Payload() != nil || len(b.dt.Stack()) != 0 {
		t.Error("drag type should be idle after drop")
	}
	if b.tab.HasOverride() || b.tab.HasClass(ClassMove) {
		t.Error("tab should be back in its layout slot")
	}
	if !b.tab.Interactable {
		t.Error("tab interactability should be restored")
	}
	if b.panel.HasClass(ClassDragOver) {
		t.Error("panel highlight should be cleared on drop")
	}
}

func TestDragFollowsPointer(t *testing.T) {
	b := newBoard(t, nil)

	b.s.InjectPress(30, 30)
	b.s.InjectMove(330, 30)
	drain(b.s)

	// Pointer moved +300 in x; tab started at (10,10).
	x, y := b.tab.Offset()
	if x != 310 || y != 10 {
		t.Errorf("tab at (%v,%v), want (310,10)", x, y)
	}
	if b.tab.Interactable {
		t.Error("dragged node should not be interactable mid-drag")
	}
	if !b.tab.HasClass(ClassMove) {
		t.Error("move class should be applied past the threshold")
	}
	b.dt.Cancel()
}

func TestDragConstrainedSnap(t *testing.T) {
	b := newBoard(t, nil)

	b.s.InjectPress(30, 30)
	b.s.InjectMove(200, 250)
	drain(b.s)

	if b.dt.Drop() != b.panelA {
		t.Fatalf("innermost area = %s, want panel1", b.dt.Drop().name())
	}
	// Far from every edge: no snap.
	if x, y := b.tab.Offset(); x != 180 || y != 230 {
		t.Errorf("tab at (%v,%v), want (180,230)", x, y)
	}

	// Candidate (30,110) is within 50 px of the panel's top and left edges.
	b.s.InjectMove(50, 130)
	drain(b.s)
	if x, y := b.tab.Offset(); x != 0 || y != 100 {
		t.Errorf("tab at (%v,%v), want snapped (0,100)", x, y)
	}
	b.dt.Cancel()
}

func TestDragUnconstrainedAreaDoesNotSnap(t *testing.T) {
	b := newBoard(t, nil)

	// Tray is not constrained; stay inside it near its left edge.
	b.s.InjectPress(30, 30)
	b.s.InjectMove(55, 30)
	drain(b.s)

	if x, _ := b.tab.Offset(); x != 35 {
		t.Errorf("tab x = %v, want 35 (no snap inside tray)", x)
	}
	b.dt.Cancel()
}

func TestPayloadDefaultsToNode(t *testing.T) {
	b := newBoard(t, nil)
	drops := recordDrops(b.dt)

	b.s.InjectPress(30, 30)
	drain(b.s)
	if b.dt.Payload() != b.tab {
		t.Errorf("payload = %v, want tab node", b.dt.Payload())
	}

	b.s.InjectMove(200, 250)
	b.s.InjectRelease(200, 250)
	drain(b.s)
	if len(*drops) != 1 || (*drops)[0].payload != b.tab {
		t.Errorf("drops = %+v", *drops)
	}
}

func TestPayloadFunc(t *testing.T) {
	s := NewScene()
	dt := NewDraggableType(s)
	n := NewNode("n", 10, 10)
	s.Root().AddChild(n)

	calls := 0
	d, err := dt.EnableDrag(DragConfig{Node: n, Payload: "static", PayloadFunc: func() any {
		calls++
		return calls
	}})
	if err != nil {
		t.Fatal(err)
	}
	for want := 1; want <= 2; want++ {
		if err := d.Start(5, 5); err != nil {
			t.Fatal(err)
		}
		if dt.Payload() != want {
			t.Errorf("payload = %v, want %d", dt.Payload(), want)
		}
		dt.Cancel()
	}
}

func TestStartPushesBaseArea(t *testing.T) {
	b := newBoard(t, "x")
	if err := b.drag.Start(30, 30); err != nil {
		t.Fatal(err)
	}
	stack := b.dt.Stack()
	if len(stack) != 1 || stack[0] != b.trayA {
		t.Errorf("stack = %v, want [tray]", stack)
	}
	if b.dt.Payload() != "x" {
		t.Errorf("payload = %v", b.dt.Payload())
	}
	b.dt.Cancel()
}

func TestStartRunsOnStart(t *testing.T) {
	s := NewScene()
	dt := NewDraggableType(s)
	n := NewNode("n", 10, 10)
	s.Root().AddChild(n)

	var started bool
	var draggingDuringStart bool
	d, err := dt.EnableDrag(DragConfig{Node: n, OnStart: func() {
		started = true
		draggingDuringStart = dt.IsDragging()
	}})
	if err != nil {
		t.Fatal(err)
	}
	if err := d.Start(5, 5); err != nil {
		t.Fatal(err)
	}
	if !started || !draggingDuringStart {
		t.Errorf("OnStart started=%v dragging=%v", started, draggingDuringStart)
	}
	dt.Cancel()
}

func TestDropStackLIFO(t *testing.T) {
	b := newBoard(t, nil)
	a := &DropArea{node: NewNode("a", 1, 1), dragType: b.dt, highlight: ClassDragOver}
	c := &DropArea{node: NewNode("c", 1, 1), dragType: b.dt, highlight: ClassDragOver}

	// Idle: enter is ignored and exit on empty is a no-op.
	b.dt.EnterDropArea(a)
	if len(b.dt.Stack()) != 0 {
		t.Fatal("EnterDropArea should be ignored while idle")
	}
	b.dt.ExitDropArea()
	b.dt.ExitDropArea()
	if b.dt.Drop() != nil {
		t.Fatal("empty stack should have no drop area")
	}

	if err := b.drag.Start(30, 30); err != nil {
		t.Fatal(err)
	}
	b.dt.EnterDropArea(a)
	b.dt.EnterDropArea(c)
	if b.dt.Drop() != c {
		t.Errorf("top = %s, want c", b.dt.Drop().name())
	}
	b.dt.ExitDropArea()
	if b.dt.Drop() != a {
		t.Errorf("top = %s, want a", b.dt.Drop().name())
	}
	b.dt.ExitDropArea()
	if b.dt.Drop() != b.trayA {
		t.Errorf("top = %s, want tray", b.dt.Drop().name())
	}
	b.dt.ExitDropArea()
	b.dt.ExitDropArea()
	if len(b.dt.Stack()) != 0 {
		t.Errorf("stack = %v, want empty", b.dt.Stack())
	}
	b.dt.Cancel()
}

func TestStartWhileDraggingFails(t *testing.T) {
	b := newBoard(t, nil)
	if err := b.drag.Start(30, 30); err != nil {
		t.Fatal(err)
	}
	if err := b.drag.Start(30, 30); !errors.Is(err, ErrDragInProgress) {
		t.Errorf("second Start err = %v, want ErrDragInProgress", err)
	}
	b.dt.Cancel()
}

func TestNestedDraggableReportsError(t *testing.T) {
	s := NewScene()
	dt := NewDraggableType(s)
	outer := NewNode("outer", 200, 200)
	inner := NewNode("inner", 50, 50)
	outer.AddChild(inner)
	s.Root().AddChild(outer)

	if _, err := dt.EnableDrag(DragConfig{Node: outer}); err != nil {
		t.Fatal(err)
	}
	if _, err := dt.EnableDrag(DragConfig{Node: inner}); err != nil {
		t.Fatal(err)
	}
	var errs []error
	dt.OnError(func(err error) { errs = append(errs, err) })

	s.InjectPress(10, 10)
	drain(s)

	if dt.Payload() != inner {
		t.Errorf("innermost draggable should win, payload = %v", dt.Payload())
	}
	if len(errs) != 1 || !errors.Is(errs[0], ErrDragInProgress) {
		t.Errorf("errors = %v, want one ErrDragInProgress", errs)
	}
	dt.Cancel()
}

func TestCancel(t *testing.T) {
	b := newBoard(t, nil)
	drops := recordDrops(b.dt)

	b.s.InjectPress(30, 30)
	b.s.InjectMove(200, 250)
	drain(b.s)
	b.dt.Cancel()

	if b.dt.IsDragging() || len(b.dt.Stack()) != 0 {
		t.Error("cancel should reset the session")
	}
	if b.tab.HasOverride() || !b.tab.Interactable || b.tab.HasClass(ClassMove) {
		t.Error("cancel should restore the tab")
	}
	if b.panel.HasClass(ClassDragOver) {
		t.Error("cancel should clear area highlights")
	}

	// The release that would have dropped is now ignored.
	b.s.InjectRelease(200, 250)
	drain(b.s)
	if len(*drops) != 0 {
		t.Errorf("expected no drops after cancel, got %d", len(*drops))
	}

	// Cancel while idle is a no-op.
	b.dt.Cancel()
}

func TestClickOnDraggable(t *testing.T) {
	b := newBoard(t, nil)
	var clicks int
	b.tab.OnClick = func(*PointerContext) { clicks++ }

	b.s.InjectClick(30, 30)
	drain(b.s)

	if clicks != 1 {
		t.Errorf("clicks = %d, want 1", clicks)
	}
	if b.dt.IsDragging() {
		t.Error("click should end the session")
	}
}

func TestSceneUpdateAdvancesSettle(t *testing.T) {
	b := newBoard(t, nil, WithSettle(0.1, ease.Linear))
	b.s.InjectDrag(30, 30, 600, 30, 5)
	for i := 0; i < 30; i++ {
		b.s.update(frameDelta)
	}
	if b.dt.Settling() {
		t.Error("settle should complete through scene updates")
	}
	if b.tab.OffsetX != 0 {
		t.Errorf("OffsetX = %v, want 0", b.tab.OffsetX)
	}
}

func TestDisableStopsNewDrags(t *testing.T) {
	b := newBoard(t, nil)
	b.drag.Disable()

	b.s.InjectPress(30, 30)
	drain(b.s)
	if b.dt.IsDragging() {
		t.Error("disabled draggable should not start a drag")
	}
}

func TestDisableCancelsActiveDrag(t *testing.T) {
	b := newBoard(t, nil)
	b.s.InjectPress(30, 30)
	drain(b.s)
	b.drag.Disable()
	if b.dt.IsDragging() {
		t.Error("Disable should cancel the active drag")
	}
}

func TestSettleAnimation(t *testing.T) {
	b := newBoard(t, nil, WithSettle(0.5, ease.Linear))

	b.s.InjectDrag(30, 30, 600, 30, 5)
	drain(b.s)

	if !b.dt.Settling() {
		t.Fatal("expected settle animation after a moved drag")
	}
	// Released at (580,10); layout slot is (10,10).
	if b.tab.OffsetX != 570 || b.tab.OffsetY != 0 {
		t.Errorf("offset = (%v,%v), want (570,0)", b.tab.OffsetX, b.tab.OffsetY)
	}

	b.dt.Update(0.25)
	if b.tab.OffsetX <= 0 || b.tab.OffsetX >= 570 {
		t.Errorf("mid-settle OffsetX = %v", b.tab.OffsetX)
	}

	b.dt.Update(0.5)
	if b.dt.Settling() {
		t.Error("settle should be done")
	}
	if b.tab.OffsetX != 0 || b.tab.OffsetY != 0 {
		t.Errorf("offset = (%v,%v), want (0,0)", b.tab.OffsetX, b.tab.OffsetY)
	}
}

func TestSettleFinishedOnNewDrag(t *testing.T) {
	b := newBoard(t, nil, WithSettle(1, ease.Linear))
	b.s.InjectDrag(30, 30, 600, 30, 5)
	drain(b.s)
	if !b.dt.Settling() {
		t.Fatal("expected settle animation")
	}

	if err := b.drag.Start(30, 30); err != nil {
		t.Fatal(err)
	}
	if b.tab.OffsetX != 0 {
		t.Errorf("OffsetX = %v, want 0 after a new drag snapshots the slot", b.tab.OffsetX)
	}
	if x, _ := b.tab.Offset(); x != 10 {
		t.Errorf("tab x = %v, want 10", x)
	}
	b.dt.Cancel()
}

func TestNoSettleWithoutMove(t *testing.T) {
	b := newBoard(t, nil, WithSettle(0.5, ease.Linear))
	b.s.InjectClick(30, 30)
	drain(b.s)
	if b.dt.Settling() {
		t.Error("a click should not start a settle animation")
	}
}

type recordingStore struct {
	events []DropEvent
}

func (r *recordingStore) EmitEvent(e DropEvent) {
	r.events = append(r.events, e)
}

func TestEventStoreReceivesDrops(t *testing.T) {
	b := newBoard(t, "x")
	store := &recordingStore{}
	b.dt.SetEventStore(store)

	b.s.InjectDrag(30, 30, 200, 250, 6)
	b.s.InjectDrag(30, 30, 300, 30, 5) // back onto the base: no event
	drain(b.s)

	if len(store.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(store.events))
	}
	e := store.events[0]
	if e.Source != "tab" || e.Area != "panel1" || e.Payload != "x" || e.X != 200 || e.Y != 250 {
		t.Errorf("unexpected event %+v", e)
	}
	if e.Session == uuid.Nil {
		t.Error("event should carry a session id")
	}
}

func TestEventStoreSessionsDiffer(t *testing.T) {
	b := newBoard(t, "x")
	store := &recordingStore{}
	b.dt.SetEventStore(store)

	b.s.InjectDrag(30, 30, 600, 30, 5)
	b.s.InjectDrag(30, 30, 600, 30, 5)
	drain(b.s)

	if len(store.events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(store.events))
	}
	if store.events[0].Session == store.events[1].Session {
		t.Error("each drag should get its own session id")
	}
	if store.events[0].Area != "" {
		t.Errorf("area = %q, want empty outside every area", store.events[0].Area)
	}
}

func TestCloseDetachesFromScene(t *testing.T) {
	b := newBoard(t, nil, WithSettle(1, ease.Linear))
	b.s.InjectDrag(30, 30, 600, 30, 5)
	drain(b.s)
	b.dt.Close()
	if b.dt.Settling() {
		t.Error("Close should finish settle animations")
	}
	if b.tab.OffsetX != 0 {
		t.Errorf("OffsetX = %v, want 0", b.tab.OffsetX)
	}
	if b.s.updaters.len() != 0 {
		t.Errorf("scene still has %d updaters", b.s.updaters.len())
	}
}

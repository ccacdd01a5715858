package dragdrop

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// LayoutSpec is the YAML description of a panel board.
type LayoutSpec struct {
	Drag   DragSpec    `yaml:"drag"`
	Panels []PanelSpec `yaml:"panels"`
}

// DragSpec carries DraggableType tunables. Zero values keep the defaults.
type DragSpec struct {
	MoveThreshold float64 `yaml:"move_threshold"`
	SnapDistance  float64 `yaml:"snap_distance"`
	SettleSeconds float32 `yaml:"settle_seconds"`
}

// PanelSpec describes one node and its subtree.
type PanelSpec struct {
	Name      string         `yaml:"name"`
	X         float64        `yaml:"x"`
	Y         float64        `yaml:"y"`
	Width     float64        `yaml:"width"`
	Height    float64        `yaml:"height"`
	Color     string         `yaml:"color"`
	DropArea  *DropAreaSpec  `yaml:"drop_area"`
	Draggable *DraggableSpec `yaml:"draggable"`
	Children  []PanelSpec    `yaml:"children"`
}

// DropAreaSpec marks a panel as a drop target.
type DropAreaSpec struct {
	Highlight string `yaml:"highlight"`
	Constrain bool   `yaml:"constrain"`
}

// DraggableSpec marks a panel as a drag source. Base makes the nearest
// enclosing drop area the source's base drop area.
type DraggableSpec struct {
	Payload string `yaml:"payload"`
	Base    bool   `yaml:"base"`
}

// ParseLayout decodes a YAML layout. Unknown keys are rejected.
func ParseLayout(data []byte) (*LayoutSpec, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var spec LayoutSpec
	if err := dec.Decode(&spec); err != nil {
		return nil, fmt.Errorf("layout: decode: %w", err)
	}
	if err := spec.validate(); err != nil {
		return nil, err
	}
	return &spec, nil
}

// LoadLayoutFile reads and decodes a YAML layout file.
func LoadLayoutFile(path string) (*LayoutSpec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("layout: load %s: %w", path, err)
	}
	spec, err := ParseLayout(data)
	if err != nil {
		return nil, fmt.Errorf("layout: %s: %w", path, err)
	}
	return spec, nil
}

// Options converts the drag section into DragOptions.
func (l *LayoutSpec) Options() []DragOption {
	var opts []DragOption
	if l.Drag.MoveThreshold > 0 {
		opts = append(opts, WithMoveThreshold(l.Drag.MoveThreshold))
	}
	if l.Drag.SnapDistance > 0 {
		opts = append(opts, WithSnapDistance(l.Drag.SnapDistance))
	}
	if l.Drag.SettleSeconds > 0 {
		opts = append(opts, WithSettle(l.Drag.SettleSeconds, nil))
	}
	return opts
}

func (l *LayoutSpec) validate() error {
	if len(l.Panels) == 0 {
		return errors.New("layout: no panels")
	}
	seen := make(map[string]bool)
	var walk func(p *PanelSpec, underArea bool) error
	walk = func(p *PanelSpec, underArea bool) error {
		if p.Name == "" {
			return errors.New("layout: panel without name")
		}
		if seen[p.Name] {
			return fmt.Errorf("layout: duplicate panel %q", p.Name)
		}
		seen[p.Name] = true
		if p.Width < 0 || p.Height < 0 {
			return fmt.Errorf("layout: panel %q has negative size", p.Name)
		}
		if p.Color != "" {
			if _, err := parseColor(p.Color); err != nil {
				return fmt.Errorf("layout: panel %q: %w", p.Name, err)
			}
		}
		if p.Draggable != nil && p.Draggable.Base && !underArea {
			return fmt.Errorf("layout: panel %q wants a base drop area but has no enclosing drop area", p.Name)
		}
		for i := range p.Children {
			if err := walk(&p.Children[i], underArea || p.DropArea != nil); err != nil {
				return err
			}
		}
		return nil
	}
	for i := range l.Panels {
		if err := walk(&l.Panels[i], false); err != nil {
			return err
		}
	}
	return nil
}

// Layout is a built panel board with lookups by panel name.
type Layout struct {
	Root       *Node
	nodes      map[string]*Node
	areas      map[string]*DropArea
	draggables map[string]*Draggable
}

// Build materialises the layout under parent, wiring drop areas and drag
// sources to dt.
func (l *LayoutSpec) Build(parent *Node, dt *DraggableType) (*Layout, error) {
	if parent == nil {
		return nil, ErrNoRegion
	}
	if dt == nil {
		return nil, ErrNoDragType
	}
	out := &Layout{
		Root:       parent,
		nodes:      make(map[string]*Node),
		areas:      make(map[string]*DropArea),
		draggables: make(map[string]*Draggable),
	}
	for i := range l.Panels {
		if err := out.build(parent, &l.Panels[i], nil, dt); err != nil {
			out.Teardown()
			return nil, err
		}
	}
	return out, nil
}

func (out *Layout) build(parent *Node, p *PanelSpec, base *DropArea, dt *DraggableType) error {
	n := NewNode(p.Name, p.Width, p.Height)
	n.SetPosition(p.X, p.Y)
	if p.Color != "" {
		c, err := parseColor(p.Color)
		if err != nil {
			return fmt.Errorf("layout: panel %q: %w", p.Name, err)
		}
		n.Color = c
	}
	parent.AddChild(n)
	if dt.debug {
		debugCheckTreeDepth(n)
	}
	out.nodes[p.Name] = n

	if p.DropArea != nil {
		area, err := NewDropArea(DropAreaConfig{
			Node:           n,
			DragType:       dt,
			HighlightClass: p.DropArea.Highlight,
			Constrain:      p.DropArea.Constrain,
		})
		if err != nil {
			return fmt.Errorf("layout: panel %q: %w", p.Name, err)
		}
		out.areas[p.Name] = area
	}

	if p.Draggable != nil {
		cfg := DragConfig{Node: n}
		if p.Draggable.Payload != "" {
			cfg.Payload = p.Draggable.Payload
		}
		if p.Draggable.Base {
			cfg.BaseDropArea = base
		}
		d, err := dt.EnableDrag(cfg)
		if err != nil {
			return fmt.Errorf("layout: panel %q: %w", p.Name, err)
		}
		out.draggables[p.Name] = d
	}

	childBase := base
	if area, ok := out.areas[p.Name]; ok {
		childBase = area
	}
	for i := range p.Children {
		if err := out.build(n, &p.Children[i], childBase, dt); err != nil {
			return err
		}
	}
	return nil
}

// Node returns the panel node with the given name, or nil.
func (out *Layout) Node(name string) *Node {
	return out.nodes[name]
}

// Area returns the drop area of the named panel, or nil.
func (out *Layout) Area(name string) *DropArea {
	return out.areas[name]
}

// Draggable returns the drag source of the named panel, or nil.
func (out *Layout) Draggable(name string) *Draggable {
	return out.draggables[name]
}

// Teardown unhooks every area and drag source and disposes the built nodes.
func (out *Layout) Teardown() {
	for _, d := range out.draggables {
		d.Disable()
	}
	for _, a := range out.areas {
		a.Close()
	}
	for _, n := range out.nodes {
		if n.Parent == out.Root {
			n.Dispose()
		}
	}
	out.nodes = map[string]*Node{}
	out.areas = map[string]*DropArea{}
	out.draggables = map[string]*Draggable{}
}

// parseColor accepts #rrggbb and #rrggbbaa.
func parseColor(s string) (Color, error) {
	hex := strings.TrimPrefix(s, "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("bad color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("bad color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return Color{
		R: float64(v>>24&0xff) / 255,
		G: float64(v>>16&0xff) / 255,
		B: float64(v>>8&0xff) / 255,
		A: float64(v&0xff) / 255,
	}, nil
}

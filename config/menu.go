package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"lcdmenu/app"
	"lcdmenu/grid"
	"lcdmenu/menu"

	"gopkg.in/yaml.v3"
)

var ErrInvalidMenu = errors.New("config: invalid menu")

// MenuSpec is a menu definition: named screens and the screen shown first.
type MenuSpec struct {
	Start   string     `yaml:"start"`
	Screens []NodeSpec `yaml:"screens"`
}

// NodeSpec describes one node. Exactly one of text, setting, column and row is set.
type NodeSpec struct {
	Name        string       `yaml:"name"`
	Text        *string      `yaml:"text"`
	Setting     string       `yaml:"setting"`
	Column      []NodeSpec   `yaml:"column"`
	Row         []NodeSpec   `yaml:"row"`
	Size        []int        `yaml:"size"`
	Fill        bool         `yaml:"fill"`
	Align       []string     `yaml:"align"`
	Loop        bool         `yaml:"loop"`
	Offset      []int        `yaml:"offset"`
	Divider     string       `yaml:"divider"`
	LoopDivider string       `yaml:"loop_divider"`
	Cursor      []int        `yaml:"cursor"`
	NoCursor    bool         `yaml:"no_cursor"`
	Navigate    bool         `yaml:"navigate"`
	Actions     []ActionSpec `yaml:"actions"`
}

// ActionSpec binds triggers to a built-in action. Target names a node for enter, focus and
// dive; setting and by parameterize adjust.
type ActionSpec struct {
	Triggers []string `yaml:"triggers"`
	Do       string   `yaml:"do"`
	Target   string   `yaml:"target"`
	Setting  string   `yaml:"setting"`
	By       int      `yaml:"by"`
}

func LoadMenu(r io.Reader) (*MenuSpec, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	spec := &MenuSpec{}
	if err := decoder.Decode(spec); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidMenu, err)
	}
	return spec, nil
}

func LoadMenuFile(path string) (*MenuSpec, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	return LoadMenu(file)
}

type builder struct {
	settings *app.Settings
	named    map[string]*menu.Node
	pending  []pendingAction
}

type pendingAction struct {
	node *menu.Node
	spec ActionSpec
	path string
}

// Build constructs the screens of spec and returns the start screen. Actions may name any
// named node, so they are bound after every node exists.
func Build(spec *MenuSpec, settings *app.Settings) (*menu.Node, error) {
	if len(spec.Screens) == 0 {
		return nil, fmt.Errorf("%w: no screens", ErrInvalidMenu)
	}
	b := &builder{settings: settings, named: map[string]*menu.Node{}}
	var screens []*menu.Node
	for i, s := range spec.Screens {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: screen %d has no name", ErrInvalidMenu, i)
		}
		screen, err := b.node(s, s.Name)
		if err != nil {
			return nil, err
		}
		screens = append(screens, screen)
	}
	for _, p := range b.pending {
		if err := b.bind(p); err != nil {
			return nil, err
		}
	}
	if spec.Start == "" {
		return screens[0], nil
	}
	start, ok := b.named[spec.Start]
	if !ok {
		return nil, fmt.Errorf("%w: unknown start screen %q", ErrInvalidMenu, spec.Start)
	}
	return start, nil
}

func (b *builder) node(spec NodeSpec, path string) (*menu.Node, error) {
	kinds := 0
	for _, set := range []bool{spec.Text != nil, spec.Setting != "", spec.Column != nil, spec.Row != nil} {
		if set {
			kinds++
		}
	}
	if kinds != 1 {
		return nil, fmt.Errorf("%w: %s: want exactly one of text, setting, column, row", ErrInvalidMenu, path)
	}

	var n *menu.Node
	switch {
	case spec.Text != nil:
		n = menu.Text(*spec.Text)
	case spec.Setting != "":
		n = menu.Text("")
		if err := b.settings.Bind(spec.Setting, n); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMenu, path, err)
		}
	case spec.Column != nil:
		n = menu.Column()
	default:
		n = menu.Row()
	}
	for i, item := range append(spec.Column, spec.Row...) {
		child, err := b.node(item, fmt.Sprintf("%s/%s", path, itemName(item, i)))
		if err != nil {
			return nil, err
		}
		if err := n.Insert(child); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidMenu, path, err)
		}
	}

	if spec.Name != "" {
		if _, ok := b.named[spec.Name]; ok {
			return nil, fmt.Errorf("%w: %s: duplicate name %q", ErrInvalidMenu, path, spec.Name)
		}
		b.named[spec.Name] = n.Named(spec.Name)
	}
	if err := b.layout(n, spec, path); err != nil {
		return nil, err
	}
	if spec.Navigate {
		n.BindNavigation()
	}
	for _, action := range spec.Actions {
		b.pending = append(b.pending, pendingAction{node: n, spec: action, path: path})
	}
	return n, nil
}

func itemName(spec NodeSpec, i int) string {
	if spec.Name != "" {
		return spec.Name
	}
	return fmt.Sprint(i)
}

func (b *builder) layout(n *menu.Node, spec NodeSpec, path string) error {
	switch {
	case spec.Fill && spec.Size != nil:
		return fmt.Errorf("%w: %s: size and fill are exclusive", ErrInvalidMenu, path)
	case spec.Fill:
		n.Fill()
	case spec.Size != nil:
		if len(spec.Size) != 2 || spec.Size[0] < 0 || spec.Size[1] < 0 {
			return fmt.Errorf("%w: %s: size wants [width, height], got %v", ErrInvalidMenu, path, spec.Size)
		}
		n.Size(spec.Size[0], spec.Size[1])
	}

	if spec.Align != nil {
		if len(spec.Align) != 2 {
			return fmt.Errorf("%w: %s: align wants [horizontal, vertical], got %v", ErrInvalidMenu, path, spec.Align)
		}
		h, err := grid.ParseAlign(strings.ToLower(spec.Align[0]))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidMenu, path, err)
		}
		v, err := grid.ParseAlign(strings.ToLower(spec.Align[1]))
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidMenu, path, err)
		}
		n.Align(h, v)
	}

	n.Loop(spec.Loop)
	if spec.Offset != nil {
		if len(spec.Offset) != 2 {
			return fmt.Errorf("%w: %s: offset wants [x, y], got %v", ErrInvalidMenu, path, spec.Offset)
		}
		n.ScrollTo(spec.Offset[0], spec.Offset[1])
	}

	if !n.IsContainer() && (spec.Divider != "" || spec.LoopDivider != "") {
		return fmt.Errorf("%w: %s: dividers need a column or row", ErrInvalidMenu, path)
	}
	if spec.Divider != "" {
		n.Divider(spec.Divider)
	}
	if spec.LoopDivider != "" {
		n.LoopDivider(spec.LoopDivider)
	}

	switch {
	case spec.NoCursor && spec.Cursor != nil:
		return fmt.Errorf("%w: %s: cursor and no_cursor are exclusive", ErrInvalidMenu, path)
	case spec.NoCursor:
		n.NoCursor()
	case spec.Cursor != nil:
		if len(spec.Cursor) != 2 {
			return fmt.Errorf("%w: %s: cursor wants [x, y], got %v", ErrInvalidMenu, path, spec.Cursor)
		}
		n.Cursor(spec.Cursor[0], spec.Cursor[1])
	}
	return nil
}

func (b *builder) bind(p pendingAction) error {
	if len(p.spec.Triggers) == 0 {
		return fmt.Errorf("%w: %s: action %q has no triggers", ErrInvalidMenu, p.path, p.spec.Do)
	}
	triggers := make([]menu.Trigger, 0, len(p.spec.Triggers))
	for _, name := range p.spec.Triggers {
		trigger, err := menu.ParseTrigger(name)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidMenu, p.path, err)
		}
		triggers = append(triggers, trigger)
	}

	var action *menu.Action
	switch p.spec.Do {
	case "next":
		action = menu.NewAction(menu.Next, triggers...)
	case "prev":
		action = menu.NewAction(menu.Prev, triggers...)
	case "back":
		action = menu.NewAction(menu.Back, triggers...)
	case "enter", "focus", "dive":
		fn := map[string]menu.ActionFunc{"enter": menu.Enter, "focus": menu.Focus, "dive": menu.Dive}[p.spec.Do]
		action = menu.NewAction(fn, triggers...)
		if p.spec.Target != "" {
			target, ok := b.named[p.spec.Target]
			if !ok {
				return fmt.Errorf("%w: %s: unknown target %q", ErrInvalidMenu, p.path, p.spec.Target)
			}
			action.With(target)
		}
	case "adjust":
		if _, err := b.settings.Get(p.spec.Setting); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrInvalidMenu, p.path, err)
		}
		if p.spec.By == 0 {
			return fmt.Errorf("%w: %s: adjust %s by 0", ErrInvalidMenu, p.path, p.spec.Setting)
		}
		action = menu.NewAction(app.Adjust, triggers...).With(b.settings, p.spec.Setting, p.spec.By)
	default:
		return fmt.Errorf("%w: %s: unknown action %q", ErrInvalidMenu, p.path, p.spec.Do)
	}
	p.node.AddAction(action)
	return nil
}

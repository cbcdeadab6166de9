package menu

import (
	"errors"
	"fmt"
	"strings"
)

var ErrActionArg = errors.New("menu: unexpected action argument")

// Trigger is one discrete input event: a single logical button edge.
type Trigger int

const (
	Select Trigger = iota
	Right
	Down
	Up
	Left
)

var Triggers = []Trigger{Select, Right, Down, Up, Left}

func (t Trigger) String() string {
	switch t {
	case Select:
		return "Select"
	case Right:
		return "Right"
	case Down:
		return "Down"
	case Up:
		return "Up"
	case Left:
		return "Left"
	}
	return "UNKNOWN TRIGGER"
}

func ParseTrigger(name string) (Trigger, error) {
	for _, t := range Triggers {
		if strings.EqualFold(name, t.String()) {
			return t, nil
		}
	}
	return Select, fmt.Errorf("menu: unknown trigger %q", name)
}

type ActionFunc func(n *Node, args ...any) error

// Action binds a set of triggers to a callback and its fixed extra arguments.
type Action struct {
	triggers []Trigger
	fn       ActionFunc
	args     []any
}

func NewAction(fn ActionFunc, triggers ...Trigger) *Action {
	return &Action{triggers: triggers, fn: fn}
}

func (a *Action) With(args ...any) *Action {
	a.args = args
	return a
}

func (a *Action) Triggers() []Trigger {
	return a.triggers
}

func (a *Action) Check(t Trigger) bool {
	for _, trigger := range a.triggers {
		if trigger == t {
			return true
		}
	}
	return false
}

func (a *Action) Fire(n *Node) error {
	return a.fn(n, a.args...)
}

func (n *Node) AddAction(actions ...*Action) *Node {
	n.actions = append(n.actions, actions...)
	return n
}

func (n *Node) Handles(t Trigger) bool {
	for _, action := range n.actions {
		if action.Check(t) {
			return true
		}
	}
	return false
}

// Dispatch fires every action of n that matches t, in registration order. Errors do not stop
// the remaining actions; they are joined into the result.
func Dispatch(t Trigger, n *Node) error {
	var errs []error
	for _, action := range append([]*Action(nil), n.actions...) {
		if !action.Check(t) {
			continue
		}
		if err := action.Fire(n); err != nil {
			errs = append(errs, fmt.Errorf("%s on %s: %w", t, n.label(), err))
		}
	}
	return errors.Join(errs...)
}

// BindNavigation binds Down/Up on a column, or Right/Left on a row, to Next/Prev.
func (n *Node) BindNavigation() *Node {
	if n.kind != Container {
		return n
	}
	if n.orientation == Stacked {
		return n.On(Next, Down).On(Prev, Up)
	}
	return n.On(Next, Right).On(Prev, Left)
}

func Next(n *Node, _ ...any) error {
	c := n.nearestContainer()
	if c == nil {
		return fmt.Errorf("%w: %s", ErrNotContainer, n.label())
	}
	return c.Next()
}

func Prev(n *Node, _ ...any) error {
	c := n.nearestContainer()
	if c == nil {
		return fmt.Errorf("%w: %s", ErrNotContainer, n.label())
	}
	return c.Prev()
}

// Enter pushes args[0], or the selected item, as a new screen.
func Enter(n *Node, args ...any) error {
	target, err := n.targetOf(args)
	if err != nil {
		return err
	}
	return n.PushScreen(target)
}

func Back(n *Node, _ ...any) error {
	return n.PopScreen()
}

// Focus moves the focus of n's tree to args[0], or to the selected item.
func Focus(n *Node, args ...any) error {
	target, err := n.targetOf(args)
	if err != nil {
		return err
	}
	return n.root().SetFocus(target)
}

// Dive replaces the items of the topmost container with the selected item and focuses it.
func Dive(n *Node, args ...any) error {
	target, err := n.targetOf(args)
	if err != nil {
		return err
	}
	root, err := n.Topmost()
	if err != nil {
		return err
	}
	if target == root {
		return nil
	}
	root.Clear()
	if err := root.Insert(target); err != nil {
		return err
	}
	if target.kind == Container {
		return root.SetFocus(target)
	}
	return root.SetFocus(root)
}

func (n *Node) targetOf(args []any) (*Node, error) {
	if len(args) > 0 {
		target, ok := args[0].(*Node)
		if !ok || target == nil {
			return nil, fmt.Errorf("%w: %T", ErrActionArg, args[0])
		}
		return target, nil
	}
	if n.kind != Container {
		return n, nil
	}
	if len(n.items) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrEmpty, n.label())
	}
	return n.Selected(), nil
}

func (n *Node) nearestContainer() *Node {
	for p := n; p != nil; p = p.parent {
		if p.kind == Container {
			return p
		}
	}
	return nil
}

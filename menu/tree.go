package menu

import (
	"errors"
	"fmt"
	"log"
)

// MaxDepth bounds Topmost and the screen stack.
const MaxDepth = 64

var (
	ErrForeign  = errors.New("menu: node is not in this tree")
	ErrNoScreen = errors.New("menu: no screen below")
)

// Topmost follows parent links to the root of the tree.
func (n *Node) Topmost() (*Node, error) {
	p := n
	for depth := 0; p.parent != nil; depth++ {
		if depth >= MaxDepth {
			return nil, fmt.Errorf("%w: from %s", ErrTooDeep, n.label())
		}
		p = p.parent
	}
	return p, nil
}

// root and contains walk without a bound: Insert keeps the tree acyclic.
func (n *Node) root() *Node {
	p := n
	for p.parent != nil {
		p = p.parent
	}
	return p
}

// contains reports whether other is n or one of its descendants.
func (n *Node) contains(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

// Focused returns the node of this tree that receives triggers: the focus target stored on
// the root, or the root itself.
func (n *Node) Focused() *Node {
	root := n.root()
	if root.focus != nil {
		return root.focus
	}
	return root
}

func (n *Node) SetFocus(target *Node) error {
	root := n.root()
	if target == nil || target == root {
		root.focus = nil
		return nil
	}
	if !root.contains(target) {
		return fmt.Errorf("%w: %s", ErrForeign, target.label())
	}
	root.focus = target
	return nil
}

// ScreenTop follows above links from the root of n's tree to the screen on display.
func (n *Node) ScreenTop() *Node {
	top := n.root()
	for depth := 0; top.above != nil; depth++ {
		if depth >= MaxDepth {
			log.Panicf("### screen stack deeper than %d", MaxDepth)
		}
		top = top.above
	}
	return top
}

// PushScreen shows next on top of the screen stack n belongs to.
func (n *Node) PushScreen(next *Node) error {
	top := n.ScreenTop()
	if next == nil || next == top {
		return fmt.Errorf("%w: cannot push %v", ErrActionArg, next)
	}
	top.above = next
	next.below = top
	next.above = nil
	return nil
}

func (n *Node) PopScreen() error {
	top := n.ScreenTop()
	below := top.below
	if below == nil {
		return fmt.Errorf("%w: %s", ErrNoScreen, top.label())
	}
	top.below = nil
	below.above = nil
	return nil
}

// Deliver routes t to the first node that handles it: the selected item of the focused
// container, the focused node, then its ancestors up to the screen.
func Deliver(t Trigger, screen *Node) (bool, error) {
	focused := screen.Focused()
	if !screen.contains(focused) {
		focused = screen
	}
	candidates := []*Node{}
	if selected := focused.Selected(); selected != nil {
		candidates = append(candidates, selected)
	}
	for p := focused; p != nil; p = p.parent {
		candidates = append(candidates, p)
		if p == screen {
			break
		}
	}
	for _, candidate := range candidates {
		if candidate.Handles(t) {
			return true, Dispatch(t, candidate)
		}
	}
	return false, nil
}

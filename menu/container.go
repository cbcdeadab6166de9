package menu

import (
	"fmt"

	"lcdmenu/grid"
)

// Insert appends items to a container. Strings become auto-sized text leaves. A node that
// already belongs to another container is moved, taking the focus with it when the focus
// target lives in the moved subtree.
func (n *Node) Insert(items ...any) error {
	if n.kind != Container {
		return fmt.Errorf("%w: %s", ErrNotContainer, n.label())
	}
	for _, item := range items {
		var child *Node
		switch item := item.(type) {
		case *Node:
			child = item
		case string:
			child = Text(item)
		default:
			return fmt.Errorf("%w: %T", ErrItemType, item)
		}
		if err := n.insert(child); err != nil {
			return err
		}
	}
	return nil
}

func (n *Node) insert(child *Node) error {
	if child == nil {
		return fmt.Errorf("%w: <nil>", ErrItemType)
	}
	if child.parent == n {
		return fmt.Errorf("%w: %s", ErrDuplicate, child.label())
	}
	if child.contains(n) {
		return fmt.Errorf("%w: %s", ErrCycle, child.label())
	}

	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.items = append(n.items, child)

	if focus := child.focus; focus != nil {
		child.focus = nil
		n.root().focus = focus
	}
	return nil
}

// release hands the focus of n's tree to child when it points into child, so a detached
// subtree keeps its focus until it is inserted again.
func (n *Node) release(child *Node) {
	root := n.root()
	if focus := root.focus; focus != nil && child.contains(focus) {
		root.focus = nil
		child.focus = focus
	}
}

func (n *Node) Remove(child *Node) bool {
	for i, item := range n.items {
		if item != child {
			continue
		}
		n.release(child)
		n.items = append(n.items[:i], n.items[i+1:]...)
		child.parent = nil
		if n.selected > i || n.selected >= len(n.items) {
			n.selected = max(n.selected-1, 0)
		}
		return true
	}
	return false
}

func (n *Node) Clear() {
	for _, item := range n.items {
		n.release(item)
		item.parent = nil
	}
	n.items = nil
	n.selected = 0
}

func (n *Node) Items() []*Node {
	return n.items
}

func (n *Node) Len() int {
	return len(n.items)
}

func (n *Node) SelectedIndex() int {
	return n.selected
}

func (n *Node) Selected() *Node {
	if len(n.items) == 0 {
		return nil
	}
	return n.items[n.selected]
}

// Select moves the selection and turns scroll tracking on. Looping containers wrap the
// index, others clamp it.
func (n *Node) Select(index int) error {
	if n.kind != Container {
		return fmt.Errorf("%w: %s", ErrNotContainer, n.label())
	}
	if len(n.items) == 0 {
		return fmt.Errorf("%w: %s", ErrEmpty, n.label())
	}
	count := len(n.items)
	if n.loop {
		index = ((index % count) + count) % count
	} else {
		index = min(max(index, 0), count-1)
	}
	n.selected = index
	n.tracking = true
	return nil
}

func (n *Node) Next() error {
	return n.Select(n.selected + 1)
}

func (n *Node) Prev() error {
	return n.Select(n.selected - 1)
}

// Offset returns the scroll offset used for the next render.
func (n *Node) Offset() grid.Position {
	if n.kind == Container && n.tracking && len(n.items) > 0 {
		target := n.ResolveSize()
		return n.scroll(n.layout(target), target)
	}
	return n.offset
}

// ScrollTo sets the offset directly, turning scroll tracking off until the next Select.
func (n *Node) ScrollTo(x, y int) *Node {
	n.offset = grid.Position{X: x, Y: y}
	n.tracking = false
	return n
}

func (n *Node) Pan(dx, dy int) *Node {
	return n.ScrollTo(n.Offset().X+dx, n.Offset().Y+dy)
}

func (n *Node) Tracking() bool {
	return n.tracking
}

type layout struct {
	entries []entry
	size    grid.Size
	length  int
	looped  bool
}

type entry struct {
	node    *Node
	item    int
	request grid.Size
	box     grid.Size
	lead    int
}

func (l layout) selected(index int) entry {
	for _, e := range l.entries {
		if e.item == index {
			return e
		}
	}
	return entry{}
}

func (n *Node) layout(target grid.Size) layout {
	o := n.orientation
	entries := make([]entry, 0, 2*len(n.items)+1)
	add := func(node *Node, item int) {
		entries = append(entries, entry{node: node, item: item, request: node.requestIn(target)})
	}
	for i, item := range n.items {
		if i > 0 && !n.divider.empty() {
			add(n.divider, -1)
		}
		add(item, i)
	}

	length := 0
	for _, e := range entries {
		length += o.along(e.request)
	}
	looped := n.loop && length > o.along(target)
	if looped && !n.loopDivider.empty() {
		add(n.loopDivider, -1)
	}

	across := 0
	for _, e := range entries {
		across = max(across, o.across(e.request))
	}
	lead := 0
	for i := range entries {
		e := &entries[i]
		e.lead = lead
		e.box = o.size(o.along(e.request), across)
		lead += o.along(e.request)
	}
	return layout{entries: entries, size: o.size(lead, across), length: length, looped: looped}
}

func (n *Node) boxFor(child *Node) grid.Size {
	for _, e := range n.layout(n.ResolveSize()).entries {
		if e.node == child && e.item >= 0 {
			return e.box
		}
	}
	return child.natural()
}

func (n *Node) renderContainer(target grid.Size) grid.Block {
	l := n.layout(target)
	content := grid.Block{}
	switch n.orientation {
	case Stacked:
		for _, e := range l.entries {
			content = append(content, e.render()...)
		}
	case Inline:
		content = make(grid.Block, l.size.Height)
		for _, e := range l.entries {
			block := e.render()
			for y := range content {
				content[y] = append(content[y], block[y]...)
			}
		}
	}
	loopX, loopY := n.containerLoops(l)
	return grid.TranslateAxes(content, target, n.containerShift(l, target), loopX, loopY, grid.Filler)
}

func (e entry) render() grid.Block {
	if e.node.sizeMode == SizeAuto {
		return e.node.render(e.box)
	}
	return grid.AlignAndTranslate(e.node.render(e.request), e.box, grid.Position{}, e.node.align, false, grid.Filler)
}

func (n *Node) containerLoops(l layout) (bool, bool) {
	return l.looped && n.orientation == Inline, l.looped && n.orientation == Stacked
}

func (n *Node) containerShift(l layout, target grid.Size) grid.Position {
	return n.scroll(l, target).Add(grid.AlignOffset(l.size, target, n.align))
}

// scroll keeps the selected item in view: its leading edge starts the window, pinned so that
// a non-looping container never shows blank space past its last item. The container's own
// alignment along the axis is compensated so the selection stays in view.
func (n *Node) scroll(l layout, target grid.Size) grid.Position {
	if !n.tracking || len(n.items) == 0 {
		return n.offset
	}
	o := n.orientation
	window := o.along(target)
	lead := l.selected(n.selected).lead
	if !l.looped {
		if l.length <= window {
			return grid.Position{}
		}
		lead = min(max(lead, 0), l.length-window)
	}
	shift := o.pick(grid.AlignOffset(l.size, target, n.align))
	return o.position(lead - shift)
}

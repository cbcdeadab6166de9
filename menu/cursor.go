package menu

import "lcdmenu/grid"

// CursorPosition returns where the cursor appears in the rendered block, and false when it is
// unset or scrolled out of view.
func (n *Node) CursorPosition() (grid.Position, bool) {
	return n.cursorIn(n.ResolveSize())
}

// MapCursor carries a position in the node's unmoved content through the current render
// transform.
func (n *Node) MapCursor(pos grid.Position) (grid.Position, bool) {
	target := n.ResolveSize()
	shift, content, loopX, loopY := n.transform(target)
	return grid.MapPosition(pos, shift, content, target, loopX, loopY)
}

// UnmapCursor is the inverse of MapCursor for a visible position.
func (n *Node) UnmapCursor(dst grid.Position) grid.Position {
	shift, content, loopX, loopY := n.transform(n.ResolveSize())
	return grid.UnmapPosition(dst, shift, content, loopX, loopY)
}

func (n *Node) transform(target grid.Size) (grid.Position, grid.Size, bool, bool) {
	if n.kind == Container {
		l := n.layout(target)
		loopX, loopY := n.containerLoops(l)
		return n.containerShift(l, target), l.size, loopX, loopY
	}
	content := grid.Measure(n.text)
	loopX, loopY := n.loops(content, target)
	return n.leafShift(content, target), content, loopX, loopY
}

func (n *Node) cursorIn(target grid.Size) (grid.Position, bool) {
	if n.kind == Leaf {
		if n.cursor == nil {
			return grid.Position{}, false
		}
		content := grid.Measure(n.text)
		loopX, loopY := n.loops(content, target)
		return grid.MapPosition(*n.cursor, n.leafShift(content, target), content, target, loopX, loopY)
	}

	l := n.layout(target)
	var pos grid.Position
	if n.cursor != nil {
		pos = *n.cursor
	} else {
		if len(n.items) == 0 {
			return grid.Position{}, false
		}
		e := l.selected(n.selected)
		inner, ok := e.cursor()
		if !ok {
			return grid.Position{}, false
		}
		pos = inner.Add(n.orientation.position(e.lead))
	}
	loopX, loopY := n.containerLoops(l)
	return grid.MapPosition(pos, n.containerShift(l, target), l.size, target, loopX, loopY)
}

// cursor is the item's cursor inside its box, as placed by entry.render.
func (e entry) cursor() (grid.Position, bool) {
	if e.node == nil {
		return grid.Position{}, false
	}
	if e.node.sizeMode == SizeAuto {
		return e.node.cursorIn(e.box)
	}
	pos, ok := e.node.cursorIn(e.request)
	if !ok {
		return pos, false
	}
	shift := grid.AlignOffset(e.request, e.box, e.node.align)
	return grid.MapPosition(pos, shift, e.request, e.box, false, false)
}

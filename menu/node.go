package menu

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"lcdmenu/grid"
)

var (
	ErrEmpty        = errors.New("menu: container has no items")
	ErrItemType     = errors.New("menu: item is neither *Node nor string")
	ErrDuplicate    = errors.New("menu: item already in container")
	ErrCycle        = errors.New("menu: item is an ancestor of the container")
	ErrNotContainer = errors.New("menu: node is not a container")
	ErrNotLeaf      = errors.New("menu: node is not a text leaf")
	ErrTooDeep      = errors.New("menu: tree deeper than MaxDepth")
)

type Kind int

const (
	Leaf Kind = iota
	Container
)

type Orientation int

const (
	Stacked Orientation = iota
	Inline
)

// SizeMode selects how a node resolves its target size.
type SizeMode int

const (
	// SizeAuto asks the owning container for a box, or uses the natural content size.
	SizeAuto SizeMode = iota
	// SizeFixed uses the explicit size.
	SizeFixed
	// SizeFill takes the parent's resolved size, or the natural content size without a parent.
	SizeFill
)

type Node struct {
	name string
	kind Kind
	text grid.Block

	sizeMode SizeMode
	size     grid.Size
	align    grid.Alignment
	offset   grid.Position
	loop     bool
	cursor   *grid.Position

	items       []*Node
	selected    int
	tracking    bool
	divider     *Node
	loopDivider *Node
	orientation Orientation

	parent  *Node
	focus   *Node
	above   *Node
	below   *Node
	actions []*Action
}

func Text(text string) *Node {
	return &Node{kind: Leaf, text: grid.Parse(text)}
}

// Column stacks its items vertically.
func Column(items ...*Node) *Node {
	return newContainer(Stacked, items)
}

// Row concatenates its items horizontally, row by row.
func Row(items ...*Node) *Node {
	return newContainer(Inline, items)
}

func Texts(texts ...string) []*Node {
	result := make([]*Node, len(texts))
	for i, text := range texts {
		result[i] = Text(text)
	}
	return result
}

func newContainer(orientation Orientation, items []*Node) *Node {
	n := &Node{kind: Container, orientation: orientation, tracking: true}
	for _, item := range items {
		if err := n.Insert(item); err != nil {
			log.Panicf("### %v", err)
		}
	}
	return n
}

func (n *Node) Named(name string) *Node {
	n.name = name
	return n
}

func (n *Node) Size(width, height int) *Node {
	n.sizeMode = SizeFixed
	n.size = grid.Size{Width: width, Height: height}
	return n
}

func (n *Node) Auto() *Node {
	n.sizeMode = SizeAuto
	return n
}

// Fill makes the node take its parent's whole resolved size; siblings scroll into view when
// selected. Auto-sized parents measure a Fill item by its content, so Fill is meant for
// parents with a fixed or filled size.
func (n *Node) Fill() *Node {
	n.sizeMode = SizeFill
	return n
}

func (n *Node) Align(h, v grid.Align) *Node {
	n.align = grid.Alignment{H: h, V: v}
	return n
}

func (n *Node) Loop(loop bool) *Node {
	n.loop = loop
	return n
}

func (n *Node) Cursor(x, y int) *Node {
	n.cursor = &grid.Position{X: x, Y: y}
	return n
}

func (n *Node) NoCursor() *Node {
	n.cursor = nil
	return n
}

func (n *Node) Divider(text string) *Node {
	n.divider = Text(text)
	return n
}

func (n *Node) LoopDivider(text string) *Node {
	n.loopDivider = Text(text)
	return n
}

func (n *Node) On(fn ActionFunc, triggers ...Trigger) *Node {
	n.AddAction(NewAction(fn, triggers...))
	return n
}

func (n *Node) Name() string { return n.name }
func (n *Node) Kind() Kind { return n.kind }
func (n *Node) IsContainer() bool { return n.kind == Container }
func (n *Node) Orientation() Orientation { return n.orientation }
func (n *Node) SizeMode() SizeMode { return n.sizeMode }
func (n *Node) Alignment() grid.Alignment { return n.align }
func (n *Node) Looping() bool { return n.loop }
func (n *Node) Parent() *Node { return n.parent }
func (n *Node) Above() *Node { return n.above }
func (n *Node) Below() *Node { return n.below }
func (n *Node) Actions() []*Action { return n.actions }
func (n *Node) ContentSize() grid.Size { return n.natural() }
func (n *Node) RawCursor() (grid.Position, bool) {
	if n.cursor == nil {
		return grid.Position{}, false
	}
	return *n.cursor, true
}

func (n *Node) Text() string {
	return n.text.String()
}

func (n *Node) SetText(text string) error {
	if n.kind != Leaf {
		return fmt.Errorf("%w: %s", ErrNotLeaf, n.label())
	}
	n.text = grid.Parse(text)
	return nil
}

// ResolveSize returns the size the node renders to.
func (n *Node) ResolveSize() grid.Size {
	switch n.sizeMode {
	case SizeFixed:
		return n.size
	case SizeAuto:
		if n.parent != nil {
			return n.parent.boxFor(n)
		}
	case SizeFill:
		if n.parent != nil {
			return n.parent.ResolveSize()
		}
	}
	return n.natural()
}

// requestIn is the size the node asks for when laid out inside a container of the given size.
func (n *Node) requestIn(container grid.Size) grid.Size {
	switch n.sizeMode {
	case SizeFixed:
		return n.size
	case SizeFill:
		return container
	}
	return n.natural()
}

func (n *Node) base() grid.Size {
	if n.sizeMode == SizeFixed {
		return n.size
	}
	return n.natural()
}

func (n *Node) natural() grid.Size {
	if n.kind == Leaf {
		return grid.Measure(n.text)
	}
	o := n.orientation
	along, across := 0, 0
	for i, item := range n.items {
		if i > 0 && !n.divider.empty() {
			along += o.along(n.divider.base())
		}
		size := item.base()
		along += o.along(size)
		across = max(across, o.across(size))
	}
	return o.size(along, across)
}

func (n *Node) empty() bool {
	return n == nil || (n.kind == Leaf && len(n.text) == 0)
}

func (n *Node) Block() grid.Block {
	return n.render(n.ResolveSize())
}

func (n *Node) render(target grid.Size) grid.Block {
	if n.kind == Container {
		return n.renderContainer(target)
	}
	content := grid.Measure(n.text)
	loopX, loopY := n.loops(content, target)
	return grid.TranslateAxes(n.text, target, n.leafShift(content, target), loopX, loopY, grid.Filler)
}

func (n *Node) loops(content, target grid.Size) (bool, bool) {
	return n.loop && content.Width > target.Width, n.loop && content.Height > target.Height
}

func (n *Node) leafShift(content, target grid.Size) grid.Position {
	return n.offset.Add(grid.AlignOffset(content, target, n.align))
}

func (n *Node) String() string {
	return n.Block().String()
}

func (n *Node) label() string {
	if n.name != "" {
		return fmt.Sprintf("%q", n.name)
	}
	if n.kind == Leaf {
		return fmt.Sprintf("%q", n.Text())
	}
	return fmt.Sprintf("%p", n)
}

func (n *Node) Dump() string {
	buf := &strings.Builder{}
	n.dump(buf, "")
	return buf.String()
}

func (n *Node) dump(buf *strings.Builder, offset string) {
	switch n.kind {
	case Leaf:
		fmt.Fprintf(buf, "%sText(%s, %s, %s)\n", offset, n.label(), n.sizeMode, n.ResolveSize())
	case Container:
		fmt.Fprintf(buf, "%s%s(%s, %s, %s, selected: %d, offset: %s, loop: %v)\n",
			offset, n.orientation, n.label(), n.sizeMode, n.ResolveSize(), n.selected, n.Offset(), n.loop)
		for _, item := range n.items {
			item.dump(buf, offset+"| ")
		}
	}
}

func (o Orientation) String() string {
	switch o {
	case Stacked:
		return "Column"
	case Inline:
		return "Row"
	}
	return "UNKNOWN ORIENTATION"
}

func (m SizeMode) String() string {
	switch m {
	case SizeAuto:
		return "Auto"
	case SizeFixed:
		return "Fixed"
	case SizeFill:
		return "Fill"
	}
	return "UNKNOWN SIZE MODE"
}

func (o Orientation) along(s grid.Size) int {
	if o == Inline {
		return s.Width
	}
	return s.Height
}

func (o Orientation) across(s grid.Size) int {
	if o == Inline {
		return s.Height
	}
	return s.Width
}

func (o Orientation) size(along, across int) grid.Size {
	if o == Inline {
		return grid.Size{Width: along, Height: across}
	}
	return grid.Size{Width: across, Height: along}
}

func (o Orientation) position(along int) grid.Position {
	if o == Inline {
		return grid.Position{X: along}
	}
	return grid.Position{Y: along}
}

func (o Orientation) pick(p grid.Position) int {
	if o == Inline {
		return p.X
	}
	return p.Y
}

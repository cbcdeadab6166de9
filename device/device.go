package device

import (
	"errors"
	"fmt"
	"sync"

	"lcdmenu/grid"
	"lcdmenu/menu"
)

var ErrStopped = errors.New("device: display stopped")

// Display receives full frames and writes only the cells that changed since the previous one.
type Display interface {
	Size() grid.Size
	Show(frame grid.Block, cursor grid.Position, visible bool) error
	Stop()
}

// Input delivers one trigger per button edge. Poll blocks; false means the input has ended.
type Input interface {
	Poll() (menu.Trigger, bool)
}

type Cell struct {
	grid.Position
	Rune rune
}

func (c Cell) String() string {
	return fmt.Sprintf("Cell(%d, %d, %q)", c.X, c.Y, c.Rune)
}

// Diff lists the cells of next that differ from prev, where missing cells read as filler.
// A nil prev reports every cell.
func Diff(prev, next grid.Block) []Cell {
	var cells []Cell
	size := grid.Measure(next)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			pos := grid.Position{X: x, Y: y}
			r := grid.Read(next, pos, grid.Filler)
			if prev != nil && grid.Read(prev, pos, grid.Filler) == r {
				continue
			}
			cells = append(cells, Cell{Position: pos, Rune: r})
		}
	}
	return cells
}

// KeyMap maps key names, as tcell reports them, to triggers.
type KeyMap map[string]menu.Trigger

func DefaultKeyMap() KeyMap {
	return KeyMap{
		"Up":      menu.Up,
		"Down":    menu.Down,
		"Left":    menu.Left,
		"Right":   menu.Right,
		"Enter":   menu.Select,
		"Rune[ ]": menu.Select,
	}
}

// ParseKeyMap builds a key map from key name to trigger name, on top of the defaults.
func ParseKeyMap(names map[string]string) (KeyMap, error) {
	keys := DefaultKeyMap()
	for key, name := range names {
		trigger, err := menu.ParseTrigger(name)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		keys[key] = trigger
	}
	return keys, nil
}

// Buffer is an in-memory display. It keeps the last frame and counts written cells.
type Buffer struct {
	mu      sync.Mutex
	size    grid.Size
	frame   grid.Block
	cursor  grid.Position
	visible bool
	writes  int
	frames  int
	stopped bool
}

func NewBuffer(size grid.Size) *Buffer {
	return &Buffer{size: size}
}

func (b *Buffer) Size() grid.Size {
	return b.size
}

func (b *Buffer) Show(frame grid.Block, cursor grid.Position, visible bool) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.stopped {
		return ErrStopped
	}
	b.writes += len(Diff(b.frame, frame))
	b.frames++
	b.frame = frame
	b.cursor, b.visible = cursor, visible
	return nil
}

func (b *Buffer) Stop() {
	b.mu.Lock()
	b.stopped = true
	b.mu.Unlock()
}

func (b *Buffer) Rows() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame.Rows()
}

func (b *Buffer) Cursor() (grid.Position, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.cursor, b.visible
}

// Writes returns the number of cells written so far, and the number of frames shown.
func (b *Buffer) Writes() (int, int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.writes, b.frames
}

func (b *Buffer) Stopped() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stopped
}

// Script replays a fixed sequence of triggers, then reports the end of input.
type Script struct {
	triggers []menu.Trigger
}

func NewScript(triggers ...menu.Trigger) *Script {
	return &Script{triggers: triggers}
}

func ParseScript(names []string) (*Script, error) {
	script := &Script{}
	for _, name := range names {
		trigger, err := menu.ParseTrigger(name)
		if err != nil {
			return nil, err
		}
		script.triggers = append(script.triggers, trigger)
	}
	return script, nil
}

func (s *Script) Poll() (menu.Trigger, bool) {
	if len(s.triggers) == 0 {
		return menu.Select, false
	}
	trigger := s.triggers[0]
	s.triggers = s.triggers[1:]
	return trigger, true
}

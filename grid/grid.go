package grid

import (
	"errors"
	"fmt"
	"strings"
)

const Filler = ' '

var ErrZeroSize = errors.New("grid: wrap over zero-sized axis")

type Size struct {
	Width, Height int
}

type Position struct {
	X, Y int
}

func (p Position) Add(other Position) Position {
	return Position{X: p.X + other.X, Y: p.Y + other.Y}
}

func (p Position) Sub(other Position) Position {
	return Position{X: p.X - other.X, Y: p.Y - other.Y}
}

func (p Position) In(size Size) bool {
	return p.X >= 0 && p.X < size.Width && p.Y >= 0 && p.Y < size.Height
}

func (s Size) String() string {
	return fmt.Sprintf("Size(Width: %d, Height: %d)", s.Width, s.Height)
}

func (p Position) String() string {
	return fmt.Sprintf("Position(X: %d, Y: %d)", p.X, p.Y)
}

// Block is a rectangular grid of runes. Rows may be ragged; missing cells read as filler.
type Block [][]rune

func Blank(size Size) Block {
	block := make(Block, size.Height)
	for y := range block {
		row := make([]rune, size.Width)
		for x := range row {
			row[x] = Filler
		}
		block[y] = row
	}
	return block
}

func Measure(block Block) Size {
	width := 0
	for _, row := range block {
		if width < len(row) {
			width = len(row)
		}
	}
	return Size{Width: width, Height: len(block)}
}

// Read is the only place where bounds are checked.
func Read(block Block, pos Position, filler rune) rune {
	if pos.Y < 0 || pos.Y >= len(block) {
		return filler
	}
	row := block[pos.Y]
	if pos.X < 0 || pos.X >= len(row) {
		return filler
	}
	return row[pos.X]
}

func Wrap(pos Position, size Size) (Position, error) {
	if size.Width <= 0 || size.Height <= 0 {
		return pos, fmt.Errorf("%w: %s", ErrZeroSize, size)
	}
	return Position{X: mod(pos.X, size.Width), Y: mod(pos.Y, size.Height)}, nil
}

func Translate(block Block, target Size, offset Position, loop bool, filler rune) Block {
	return TranslateAxes(block, target, offset, loop, loop, filler)
}

// TranslateAxes is Translate with the wrap decided per axis. An axis of the source with
// zero length never wraps.
func TranslateAxes(block Block, target Size, offset Position, loopX, loopY bool, filler rune) Block {
	size := Measure(block)
	loopX = loopX && size.Width > 0
	loopY = loopY && size.Height > 0

	result := make(Block, max(target.Height, 0))
	for r := range result {
		row := make([]rune, max(target.Width, 0))
		for c := range row {
			src := Position{X: c + offset.X, Y: r + offset.Y}
			if loopX {
				src.X = mod(src.X, size.Width)
			}
			if loopY {
				src.Y = mod(src.Y, size.Height)
			}
			row[c] = Read(block, src, filler)
		}
		result[r] = row
	}
	return result
}

func (b Block) String() string {
	buf := &strings.Builder{}
	for i, row := range b {
		if i > 0 {
			buf.WriteByte('\n')
		}
		buf.WriteString(string(row))
	}
	return buf.String()
}

func (b Block) Rows() []string {
	rows := make([]string, len(b))
	for i, row := range b {
		rows[i] = string(row)
	}
	return rows
}

func (b Block) Equal(other Block) bool {
	if Measure(b) != Measure(other) {
		return false
	}
	size := Measure(b)
	for y := 0; y < size.Height; y++ {
		for x := 0; x < size.Width; x++ {
			pos := Position{X: x, Y: y}
			if Read(b, pos, Filler) != Read(other, pos, Filler) {
				return false
			}
		}
	}
	return true
}

func mod(a, n int) int {
	result := a % n
	if result < 0 {
		result += n
	}
	return result
}

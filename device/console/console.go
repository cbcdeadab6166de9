package console

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"lcdmenu/device"
	"lcdmenu/grid"
	"lcdmenu/menu"

	"github.com/muesli/ansi"
	"github.com/muesli/termenv"
)

// Display prints every changed frame inside a frame of ASCII borders. The cursor cell is
// shown in reverse video.
type Display struct {
	mu      sync.Mutex
	out     *termenv.Output
	size    grid.Size
	frame   grid.Block
	cursor  grid.Position
	visible bool
}

func NewDisplay(w io.Writer, size grid.Size) *Display {
	return &Display{out: termenv.NewOutput(w), size: size}
}

func (d *Display) Size() grid.Size {
	return d.size
}

func (d *Display) Show(frame grid.Block, cursor grid.Position, visible bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	visible = visible && cursor.In(d.size)
	if d.frame != nil && len(device.Diff(d.frame, frame)) == 0 && d.visible == visible && (!visible || d.cursor == cursor) {
		return nil
	}
	d.frame, d.cursor, d.visible = frame, cursor, visible

	lines := make([]string, d.size.Height)
	for y := range lines {
		lines[y] = d.line(y)
	}
	width := 0
	for _, line := range lines {
		width = max(width, ansi.PrintableRuneWidth(line))
	}
	border := "+" + strings.Repeat("-", width) + "+"

	buf := &strings.Builder{}
	fmt.Fprintln(buf, border)
	for _, line := range lines {
		fmt.Fprintf(buf, "|%s%s|\n", line, strings.Repeat(" ", width-ansi.PrintableRuneWidth(line)))
	}
	fmt.Fprintln(buf, border)
	_, err := io.WriteString(d.out, buf.String())
	return err
}

func (d *Display) line(y int) string {
	buf := &strings.Builder{}
	for x := 0; x < d.size.Width; x++ {
		pos := grid.Position{X: x, Y: y}
		r := string(grid.Read(d.frame, pos, grid.Filler))
		if d.visible && pos == d.cursor {
			r = d.out.String(r).Reverse().String()
		}
		buf.WriteString(r)
	}
	return buf.String()
}

func (d *Display) Stop() {}

var words = map[string]menu.Trigger{
	"":       menu.Select,
	"s":      menu.Select,
	"select": menu.Select,
	"ok":     menu.Select,
	"u":      menu.Up,
	"up":     menu.Up,
	"d":      menu.Down,
	"down":   menu.Down,
	"l":      menu.Left,
	"left":   menu.Left,
	"r":      menu.Right,
	"right":  menu.Right,
}

// Input reads commands line by line. Every word is one trigger; an empty line selects.
// "q" or "quit" ends the input.
type Input struct {
	scanner *bufio.Scanner
	pending []menu.Trigger
	ended   bool
}

func NewInput(r io.Reader) *Input {
	return &Input{scanner: bufio.NewScanner(r)}
}

func (in *Input) Poll() (menu.Trigger, bool) {
	for len(in.pending) == 0 {
		if in.ended || !in.scanner.Scan() {
			if err := in.scanner.Err(); err != nil {
				log.Printf("console input: %v", err)
			}
			in.ended = true
			return menu.Select, false
		}
		in.parse(in.scanner.Text())
	}
	trigger := in.pending[0]
	in.pending = in.pending[1:]
	return trigger, true
}

func (in *Input) parse(line string) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		fields = []string{""}
	}
	for _, word := range fields {
		if word == "q" || word == "quit" {
			in.ended = true
			return
		}
		trigger, ok := words[word]
		if !ok {
			log.Printf("console input: unknown command %q", word)
			continue
		}
		in.pending = append(in.pending, trigger)
	}
}

package grid

import "fmt"

type Align int

const (
	Start Align = iota
	Center
	End
)

type Alignment struct {
	H, V Align
}

func (a Align) String() string {
	switch a {
	case Start:
		return "Start"
	case Center:
		return "Center"
	case End:
		return "End"
	}
	return "UNKNOWN ALIGN"
}

func ParseAlign(name string) (Align, error) {
	switch name {
	case "start", "left", "top", "":
		return Start, nil
	case "center", "middle":
		return Center, nil
	case "end", "right", "bottom":
		return End, nil
	}
	return Start, fmt.Errorf("grid: unknown alignment %q", name)
}

// AlignOffset returns the source offset that places content of the given size inside target.
// Halves round away from zero: "OK" centered in 5 columns starts at column 2.
func AlignOffset(content, target Size, align Alignment) Position {
	return Position{
		X: halfAway(int(align.H) * (content.Width - target.Width)),
		Y: halfAway(int(align.V) * (content.Height - target.Height)),
	}
}

func AlignAndTranslate(block Block, target Size, offset Position, align Alignment, loop bool, filler rune) Block {
	shift := AlignOffset(Measure(block), target, align)
	return Translate(block, target, offset.Add(shift), loop, filler)
}

func halfAway(n int) int {
	if n >= 0 {
		return (n + 1) / 2
	}
	return -((-n + 1) / 2)
}

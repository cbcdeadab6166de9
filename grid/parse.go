package grid

import (
	"strings"

	"github.com/mattn/go-runewidth"
	"golang.org/x/text/unicode/norm"
)

const Replacement = '?'

// Parse turns text into a block with exactly one rune per display cell.
func Parse(text string) Block {
	if text == "" {
		return Block{}
	}
	lines := strings.Split(norm.NFC.String(text), "\n")
	block := make(Block, len(lines))
	for i, line := range lines {
		row := make([]rune, 0, len(line))
		for _, r := range line {
			switch {
			case r == '\t':
				row = append(row, Filler)
			case r == '\r':
			case runewidth.RuneWidth(r) == 1:
				row = append(row, r)
			default:
				row = append(row, Replacement)
			}
		}
		block[i] = row
	}
	return block
}

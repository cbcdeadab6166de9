package grid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapPositionRoundTrip(t *testing.T) {
	content := Size{5, 1}
	target := Size{8, 1}
	for _, align := range []Align{Start, Center, End} {
		for x := 0; x < content.Width; x++ {
			shift := AlignOffset(content, target, Alignment{H: align})
			pos := Position{X: x}
			dst, ok := MapPosition(pos, shift, content, target, false, false)
			assert.True(t, ok, "align %s x %d", align, x)
			assert.True(t, dst.In(target))
			assert.Equal(t, pos, UnmapPosition(dst, shift, content, false, false))
		}
	}
}

func TestMapPositionMatchesTranslate(t *testing.T) {
	block := Parse("HELLO")
	target := Size{3, 1}
	for offset := 0; offset < 10; offset++ {
		shift := Position{X: offset}
		rendered := Translate(block, target, shift, true, Filler)
		for x := 0; x < 5; x++ {
			dst, ok := MapPosition(Position{X: x}, shift, Measure(block), target, true, false)
			if !ok {
				continue
			}
			assert.Equal(t, Read(block, Position{X: x}, Filler), Read(rendered, dst, '!'))
		}
	}
}

func TestMapPositionHidden(t *testing.T) {
	_, ok := MapPosition(Position{X: 10}, Position{X: 4}, Size{12, 1}, Size{4, 1}, false, false)
	assert.False(t, ok)
	_, ok = MapPosition(Position{X: 1}, Position{X: 4}, Size{12, 1}, Size{4, 1}, false, false)
	assert.False(t, ok)
	dst, ok := MapPosition(Position{X: 1}, Position{X: 4}, Size{12, 1}, Size{4, 1}, true, false)
	assert.False(t, ok)
	assert.Equal(t, 9, dst.X)
	dst, ok = MapPosition(Position{X: 1}, Position{X: 10}, Size{12, 1}, Size{4, 1}, true, false)
	assert.True(t, ok)
	assert.Equal(t, 3, dst.X)
}

package grid

// MapPosition carries a content position through the same shift Translate applies, reporting
// whether it lands inside target. On a looping axis the result is reduced modulo the content
// length, which must then be non-zero.
func MapPosition(pos, shift Position, content, target Size, loopX, loopY bool) (Position, bool) {
	dst := pos.Sub(shift)
	if loopX && content.Width > 0 {
		dst.X = mod(dst.X, content.Width)
	}
	if loopY && content.Height > 0 {
		dst.Y = mod(dst.Y, content.Height)
	}
	return dst, dst.In(target)
}

// UnmapPosition is the inverse of MapPosition for a visible position.
func UnmapPosition(dst, shift Position, content Size, loopX, loopY bool) Position {
	src := dst.Add(shift)
	if loopX && content.Width > 0 {
		src.X = mod(src.X, content.Width)
	}
	if loopY && content.Height > 0 {
		src.Y = mod(src.Y, content.Height)
	}
	return src
}

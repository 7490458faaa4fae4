package render

import "github.com/valerio/go-nesbie/nesbie/video"

// Block characters used to pack two pixel rows into one terminal cell.
const (
	FullBlock  = '█'
	UpperBlock = '▀'
)

// CellSize returns the terminal size needed for a frame drawn at the given
// downscale factor. Each cell holds two vertically adjacent samples.
func CellSize(scale int) (cols, rows int) {
	if scale < 1 {
		scale = 1
	}
	cols = video.ScreenWidth / scale
	rows = (video.ScreenHeight/scale + 1) / 2
	return cols, rows
}

// CellPixels samples the two pixels shown by cell (col, row). The bottom
// sample repeats the top one past the last frame line.
func CellPixels(frame []uint32, col, row, scale int) (top, bottom video.Color) {
	if scale < 1 {
		scale = 1
	}
	x := col * scale
	y := row * 2 * scale
	top = video.Color(frame[y*video.ScreenWidth+x])
	bottom = top
	if y+scale < video.ScreenHeight {
		bottom = video.Color(frame[(y+scale)*video.ScreenWidth+x])
	}
	return top, bottom
}

// HalfBlock picks the cell glyph: a full block when both samples match,
// otherwise the upper half block with the top color as foreground and the
// bottom one as background.
func HalfBlock(top, bottom video.Color) rune {
	if top == bottom {
		return FullBlock
	}
	return UpperBlock
}

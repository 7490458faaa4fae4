package video

// renderPixel composes the background and sprite pixel at (x, y) following
// the priority rules and writes the resulting color to the back buffer.
func (p *PPU) renderPixel(x, y int) {
	var bgPixel, bgPalette uint8
	if p.mask&maskBackground != 0 && (x >= 8 || p.mask&maskBackgroundLeft != 0) {
		bgPixel, bgPalette = p.bg.pixel(p.x)
	}

	var spPixel, spPalette uint8
	var behind, zero bool
	if p.mask&maskSprites != 0 && (x >= 8 || p.mask&maskSpritesLeft != 0) {
		spPixel, spPalette, behind, zero = p.sprites.pixel()
	}

	if p.RenderingEnabled() {
		p.sprites.shift()
	}

	var entry uint16
	switch {
	case bgPixel == 0 && spPixel == 0:
		entry = 0
	case bgPixel == 0:
		entry = 0x10 | uint16(spPalette)<<2 | uint16(spPixel)
	case spPixel == 0:
		entry = uint16(bgPalette)<<2 | uint16(bgPixel)
	default:
		if zero && x != 255 {
			p.status |= statusSpriteZeroHit
		}
		if behind {
			entry = uint16(bgPalette)<<2 | uint16(bgPixel)
		} else {
			entry = 0x10 | uint16(spPalette)<<2 | uint16(spPixel)
		}
	}

	index := p.palette[paletteIndex(entry)]
	if p.mask&maskGrayscale != 0 {
		index &= 0x30
	}
	p.fb.SetPixel(x, y, MasterColor(index))
}

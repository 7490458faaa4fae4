package video

import "github.com/valerio/go-nesbie/nesbie/bit"

const maxSpritesPerLine = 8

// oamEntry is a sprite copied to secondary OAM during evaluation.
type oamEntry struct {
	y, tile, attribute, x uint8
	index                 uint8
}

// spritePipeline is the per scanline sprite state: the secondary OAM built
// for the next line and the eight output units drawing the current one.
type spritePipeline struct {
	secondary      [maxSpritesPerLine]oamEntry
	secondaryCount int

	count       int
	patternLow  [maxSpritesPerLine]uint8
	patternHigh [maxSpritesPerLine]uint8
	attribute   [maxSpritesPerLine]uint8
	xCounter    [maxSpritesPerLine]uint8
	active      [maxSpritesPerLine]bool
	isZero      [maxSpritesPerLine]bool
}

func (s *spritePipeline) clear() {
	s.secondaryCount = 0
	s.count = 0
}

// pixel returns the first opaque pixel among the active units; lower OAM
// indexes are in lower units, so they win.
func (s *spritePipeline) pixel() (pixel, palette uint8, behind, zero bool) {
	for i := 0; i < s.count; i++ {
		if !s.active[i] {
			continue
		}
		pixel = (s.patternHigh[i]>>7)<<1 | s.patternLow[i]>>7
		if pixel == 0 {
			continue
		}
		attr := s.attribute[i]
		return pixel, attr & 0x03, attr&0x20 != 0, s.isZero[i]
	}
	return 0, 0, false, false
}

// shift advances every unit by a dot: counters run down to zero, then the
// unit becomes active and shifts out its pattern.
func (s *spritePipeline) shift() {
	for i := 0; i < s.count; i++ {
		if s.active[i] {
			s.patternLow[i] <<= 1
			s.patternHigh[i] <<= 1
			continue
		}
		s.xCounter[i]--
		if s.xCounter[i] == 0 {
			s.active[i] = true
		}
	}
}

func (p *PPU) spriteHeight() int {
	if p.ctrl&ctrlSpriteSize16 != 0 {
		return 16
	}
	return 8
}

func (p *PPU) stepSprites(visible bool) {
	switch {
	case visible && p.dot == 1:
		p.sprites.secondaryCount = 0
	case visible && p.dot == 65:
		p.evaluateSprites()
	case p.dot == 257:
		p.sprites.count = p.sprites.secondaryCount
	}

	if p.dot >= 257 && p.dot <= 320 && (p.dot-257)%8 == 7 {
		p.fetchSprite((p.dot - 257) / 8)
	}
}

// evaluateSprites copies up to eight sprites covering the next scanline into
// secondary OAM, flagging overflow when a ninth one is found.
func (p *PPU) evaluateSprites() {
	height := p.spriteHeight()
	s := &p.sprites
	s.secondaryCount = 0

	for i := 0; i < 64; i++ {
		entry := p.oam[i*4 : i*4+4]
		row := p.scanline - int(entry[0])
		if row < 0 || row >= height {
			continue
		}
		if s.secondaryCount == maxSpritesPerLine {
			p.status |= statusSpriteOverflow
			break
		}
		s.secondary[s.secondaryCount] = oamEntry{
			y:         entry[0],
			tile:      entry[1],
			attribute: entry[2],
			x:         entry[3],
			index:     uint8(i),
		}
		s.secondaryCount++
	}
}

// fetchSprite loads output unit slot from secondary OAM. Horizontally flipped
// sprites get their pattern bytes bit reversed so units always shift left.
func (p *PPU) fetchSprite(slot int) {
	s := &p.sprites
	if slot >= s.secondaryCount {
		s.patternLow[slot], s.patternHigh[slot] = 0, 0
		s.active[slot] = false
		s.isZero[slot] = false
		return
	}

	e := s.secondary[slot]
	address := p.spritePatternAddress(e.tile, e.attribute, p.scanline-int(e.y))
	low := p.readVRAM(address)
	high := p.readVRAM(address + 8)
	if e.attribute&0x40 != 0 {
		low, high = bit.Reverse(low), bit.Reverse(high)
	}

	s.patternLow[slot] = low
	s.patternHigh[slot] = high
	s.attribute[slot] = e.attribute
	s.xCounter[slot] = e.x
	s.active[slot] = e.x == 0
	s.isZero[slot] = e.index == 0
}

func (p *PPU) spritePatternAddress(tile, attribute uint8, row int) uint16 {
	flipV := attribute&0x80 != 0

	if p.ctrl&ctrlSpriteSize16 == 0 {
		if flipV {
			row = 7 - row
		}
		var table uint16
		if p.ctrl&ctrlSpriteTable != 0 {
			table = 0x1000
		}
		return table + uint16(tile)*16 + uint16(row)
	}

	if flipV {
		row = 15 - row
	}
	table := uint16(tile&0x01) * 0x1000
	tile &= 0xFE
	if row > 7 {
		tile++
		row -= 8
	}
	return table + uint16(tile)*16 + uint16(row)
}

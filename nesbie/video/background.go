package video

import "github.com/valerio/go-nesbie/nesbie/addr"

// backgroundPipeline holds the fetch latches for the next tile and the
// shifters feeding the current pixel. The high byte of each shifter is the
// tile being drawn, the low byte the tile fetched after it.
type backgroundPipeline struct {
	tileID      uint8
	attribute   uint8 // 2 bit palette number of the fetched tile
	patternLow  uint8
	patternHigh uint8

	shiftPatternLow  uint16
	shiftPatternHigh uint16
	shiftAttribLow   uint16
	shiftAttribHigh  uint16
}

// reload moves the latched tile into the low byte of the shifters.
func (b *backgroundPipeline) reload() {
	b.shiftPatternLow = b.shiftPatternLow&0xFF00 | uint16(b.patternLow)
	b.shiftPatternHigh = b.shiftPatternHigh&0xFF00 | uint16(b.patternHigh)

	b.shiftAttribLow &= 0xFF00
	if b.attribute&0x01 != 0 {
		b.shiftAttribLow |= 0x00FF
	}
	b.shiftAttribHigh &= 0xFF00
	if b.attribute&0x02 != 0 {
		b.shiftAttribHigh |= 0x00FF
	}
}

func (b *backgroundPipeline) shift() {
	b.shiftPatternLow <<= 1
	b.shiftPatternHigh <<= 1
	b.shiftAttribLow <<= 1
	b.shiftAttribHigh <<= 1
}

// pixel returns the 2 bit color and palette number at bit 15 - fineX.
func (b *backgroundPipeline) pixel(fineX uint8) (pixel, palette uint8) {
	mux := uint16(0x8000) >> fineX
	if b.shiftPatternLow&mux != 0 {
		pixel |= 0x01
	}
	if b.shiftPatternHigh&mux != 0 {
		pixel |= 0x02
	}
	if b.shiftAttribLow&mux != 0 {
		palette |= 0x01
	}
	if b.shiftAttribHigh&mux != 0 {
		palette |= 0x02
	}
	return pixel, palette
}

// stepBackground runs the fetch/shift pipeline for one dot of a rendering line.
// Each 8 dot group fetches nametable, attribute, pattern low, pattern high,
// then moves coarse X; the shifters are reloaded as the next group starts.
func (p *PPU) stepBackground() {
	if !(p.dot >= 2 && p.dot <= 257) && !(p.dot >= 321 && p.dot <= 337) {
		return
	}

	if p.mask&maskBackground != 0 {
		p.bg.shift()
	}

	switch (p.dot - 1) % 8 {
	case 0:
		p.bg.reload()
		p.bg.tileID = p.readVRAM(addr.NametableStart | p.v&0x0FFF)
	case 2:
		p.bg.attribute = p.fetchAttribute()
	case 4:
		p.bg.patternLow = p.readVRAM(p.backgroundPatternAddress())
	case 6:
		p.bg.patternHigh = p.readVRAM(p.backgroundPatternAddress() + 8)
	case 7:
		p.incrementX()
	}
}

// fetchAttribute selects the 2 bit quadrant of the attribute byte covering
// the tile at v. Each attribute byte covers a 32x32 pixel area.
func (p *PPU) fetchAttribute() uint8 {
	v := p.v
	address := 0x23C0 | v&0x0C00 | (v>>4)&0x38 | (v>>2)&0x07
	shift := (v>>4)&0x04 | v&0x02
	return (p.readVRAM(address) >> shift) & 0x03
}

func (p *PPU) backgroundPatternAddress() uint16 {
	var table uint16
	if p.ctrl&ctrlBackTable != 0 {
		table = 0x1000
	}
	fineY := (p.v >> 12) & 0x07
	return table + uint16(p.bg.tileID)*16 + fineY
}

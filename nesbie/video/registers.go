package video

import "github.com/valerio/go-nesbie/nesbie/addr"

// ReadRegister handles CPU reads of $2000-$2007, already masked to the base range.
// Write only registers return the last value driven on the PPU data bus.
func (p *PPU) ReadRegister(address uint16) uint8 {
	switch address {
	case addr.PPUSTATUS:
		p.openBus = p.readStatus()
	case addr.OAMDATA:
		p.openBus = p.readOAMData()
	case addr.PPUDATA:
		p.openBus = p.readData()
	}
	return p.openBus
}

// WriteRegister handles CPU writes to $2000-$2007.
func (p *PPU) WriteRegister(address uint16, value uint8) {
	p.openBus = value

	switch address {
	case addr.PPUCTRL:
		p.writeControl(value)
	case addr.PPUMASK:
		p.mask = value
	case addr.OAMADDR:
		p.oamAddr = value
	case addr.OAMDATA:
		if p.oamAddr&0x03 == 0x02 {
			// attribute bits 2-4 are not implemented
			value &= 0xE3
		}
		p.oam[p.oamAddr] = value
		p.oamAddr++
	case addr.PPUSCROLL:
		p.writeScroll(value)
	case addr.PPUADDR:
		p.writeAddress(value)
	case addr.PPUDATA:
		p.writeVRAM(p.v, value)
		p.incrementAddress()
	}
}

func (p *PPU) readStatus() uint8 {
	result := p.status&0xE0 | p.openBus&0x1F
	p.status &^= statusVBlank
	p.w = false
	return result
}

func (p *PPU) readOAMData() uint8 {
	return p.oam[p.oamAddr]
}

// readData returns the buffered value for pattern and nametable reads.
// Palette reads are immediate, the buffer gets the nametable byte underneath.
func (p *PPU) readData() uint8 {
	address := p.v & addr.PPUAddressMask
	var value uint8
	if address < addr.PaletteStart {
		value = p.readBuffer
		p.readBuffer = p.readVRAM(address)
	} else {
		value = p.readVRAM(address) | p.openBus&0xC0
		p.readBuffer = p.readVRAM(address - 0x1000)
	}
	p.incrementAddress()
	return value
}

func (p *PPU) incrementAddress() {
	if p.ctrl&ctrlIncrement32 != 0 {
		p.v += 32
	} else {
		p.v++
	}
	p.v &= 0x7FFF
}

func (p *PPU) writeControl(value uint8) {
	wasEnabled := p.ctrl&ctrlNMIEnable != 0
	p.ctrl = value
	// t: ...GH.. ........ <- d: ......GH
	p.t = p.t&^0x0C00 | uint16(value&ctrlNametableBits)<<10

	// enabling NMI while VBlank is already flagged raises it right away
	if !wasEnabled && value&ctrlNMIEnable != 0 && p.status&statusVBlank != 0 {
		p.nmiPending = true
	}
}

func (p *PPU) writeScroll(value uint8) {
	if !p.w {
		// t: ....... ...ABCDE <- d: ABCDE...
		p.t = p.t&^0x001F | uint16(value)>>3
		p.x = value & 0x07
	} else {
		// t: FGH..AB CDE..... <- d: ABCDEFGH
		p.t = p.t&^0x73E0 | uint16(value&0x07)<<12 | uint16(value&0xF8)<<2
	}
	p.w = !p.w
}

func (p *PPU) writeAddress(value uint8) {
	if !p.w {
		// t: .CDEFGH ........ <- d: ..CDEFGH, bit 14 cleared
		p.t = p.t&0x00FF | uint16(value&0x3F)<<8
	} else {
		p.t = p.t&0xFF00 | uint16(value)
		p.v = p.t
	}
	p.w = !p.w
}

package video

// Scroll register layout (v and t):
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X
//	||| || +++++-------- coarse Y
//	||| ++-------------- nametable select
//	+++----------------- fine Y
const (
	coarseXMask    = 0x001F
	coarseYMask    = 0x03E0
	nametableX     = 0x0400
	nametableY     = 0x0800
	fineYMask      = 0x7000
	horizontalBits = coarseXMask | nametableX
	verticalBits   = coarseYMask | nametableY | fineYMask
)

func (p *PPU) stepScroll(preRender bool) {
	switch {
	case p.dot == 256:
		p.incrementY()
	case p.dot == 257:
		p.copyX()
	case preRender && p.dot >= 280 && p.dot <= 304:
		p.copyY()
	}
}

// incrementX moves to the next tile, wrapping into the horizontal nametable.
func (p *PPU) incrementX() {
	if p.v&coarseXMask == 31 {
		p.v &^= coarseXMask
		p.v ^= nametableX
	} else {
		p.v++
	}
}

// incrementY moves to the next pixel row. Coarse Y wraps at 29 into the
// vertical nametable; rows 30 and 31 hold attributes and wrap without switching.
func (p *PPU) incrementY() {
	if p.v&fineYMask != fineYMask {
		p.v += 0x1000
		return
	}

	p.v &^= fineYMask
	y := (p.v & coarseYMask) >> 5
	switch y {
	case 29:
		y = 0
		p.v ^= nametableY
	case 31:
		y = 0
	default:
		y++
	}
	p.v = p.v&^coarseYMask | y<<5
}

func (p *PPU) copyX() {
	p.v = p.v&^horizontalBits | p.t&horizontalBits
}

func (p *PPU) copyY() {
	p.v = p.v&^verticalBits | p.t&verticalBits
}

package video

import (
	"fmt"

	"github.com/valerio/go-nesbie/nesbie/addr"
	"github.com/valerio/go-nesbie/nesbie/memory"
)

// PPUCTRL bits
const (
	ctrlIncrement32   = 0x04
	ctrlSpriteTable   = 0x08
	ctrlBackTable     = 0x10
	ctrlSpriteSize16  = 0x20
	ctrlNMIEnable     = 0x80
	ctrlNametableBits = 0x03
)

// PPUMASK bits
const (
	maskGrayscale      = 0x01
	maskBackgroundLeft = 0x02
	maskSpritesLeft    = 0x04
	maskBackground     = 0x08
	maskSprites        = 0x10
)

// PPUSTATUS bits
const (
	statusSpriteOverflow = 0x20
	statusSpriteZeroHit  = 0x40
	statusVBlank         = 0x80
)

// raster timing, NTSC
const (
	lastDot         = 340
	preRenderLine   = -1
	lastVisibleLine = 239
	vblankLine      = 241
	lastScanline    = 260
)

// PPU is the 2C02 picture processing unit, advanced one dot at a time.
type PPU struct {
	mapper memory.Mapper
	fb     *FrameBuffer

	scanline int
	dot      int
	frame    uint64
	oddFrame bool

	ctrl       uint8
	mask       uint8
	status     uint8
	oamAddr    uint8
	openBus    uint8
	readBuffer uint8

	// loopy scroll registers: current and staged VRAM address, fine X, write toggle
	v uint16
	t uint16
	x uint8
	w bool

	nmiPending bool

	nametables [0x1000]uint8
	palette    [32]uint8
	oam        [256]uint8

	bg      backgroundPipeline
	sprites spritePipeline
}

// New creates a PPU reading pattern data and mirroring from the mapper.
func New(mapper memory.Mapper) *PPU {
	return &PPU{
		mapper: mapper,
		fb:     NewFrameBuffer(),
	}
}

// FrameBuffer returns the buffer the PPU presents completed frames to.
func (p *PPU) FrameBuffer() *FrameBuffer { return p.fb }

// Position returns the scanline (-1 for pre-render) and dot about to be processed.
func (p *PPU) Position() (scanline, dot int) { return p.scanline, p.dot }

// Frame returns the number of frames completed, counted at the start of VBlank.
func (p *PPU) Frame() uint64 { return p.frame }

// RenderingEnabled reports whether background or sprite rendering is on.
func (p *PPU) RenderingEnabled() bool {
	return p.mask&(maskBackground|maskSprites) != 0
}

// PollNMI reports whether an NMI was raised since the last call, and clears it.
func (p *PPU) PollNMI() bool {
	pending := p.nmiPending
	p.nmiPending = false
	return pending
}

// Step advances the PPU by one dot.
func (p *PPU) Step() {
	rendering := p.RenderingEnabled()
	visible := p.scanline >= 0 && p.scanline <= lastVisibleLine
	preRender := p.scanline == preRenderLine

	if preRender && p.dot == 1 {
		p.status &^= statusVBlank | statusSpriteZeroHit | statusSpriteOverflow
		p.sprites.clear()
	}

	if rendering && (visible || preRender) {
		p.stepBackground()
	}

	if visible && p.dot >= 1 && p.dot <= 256 {
		p.renderPixel(p.dot-1, p.scanline)
	}

	if rendering && (visible || preRender) {
		p.stepSprites(visible)
		p.stepScroll(preRender)
	}

	if p.scanline == vblankLine && p.dot == 1 {
		p.status |= statusVBlank
		if p.ctrl&ctrlNMIEnable != 0 {
			p.nmiPending = true
		}
		p.fb.Present()
		p.frame++
	}

	p.advance(rendering)
}

func (p *PPU) advance(rendering bool) {
	// odd frames drop the last dot of the pre-render line while rendering
	if rendering && p.oddFrame && p.scanline == preRenderLine && p.dot == lastDot-1 {
		p.scanline, p.dot = 0, 0
		return
	}

	p.dot++
	if p.dot > lastDot {
		p.dot = 0
		p.scanline++
		if p.scanline > lastScanline {
			p.scanline = preRenderLine
			p.oddFrame = !p.oddFrame
		}
	}
}

// readVRAM reads the 14 bit PPU address space.
func (p *PPU) readVRAM(address uint16) uint8 {
	address &= addr.PPUAddressMask
	switch {
	case address <= addr.PatternTableEnd:
		return p.mapper.PPURead(address)
	case address < addr.PaletteStart:
		return p.nametables[p.mapper.Mirroring().NametableOffset(address)]
	default:
		return p.palette[paletteIndex(address)]
	}
}

func (p *PPU) writeVRAM(address uint16, value uint8) {
	address &= addr.PPUAddressMask
	switch {
	case address <= addr.PatternTableEnd:
		p.mapper.PPUWrite(address, value)
	case address < addr.PaletteStart:
		p.nametables[p.mapper.Mirroring().NametableOffset(address)] = value
	default:
		p.palette[paletteIndex(address)] = value & 0x3F
	}
}

// State is a snapshot of the PPU for debuggers.
type State struct {
	Scanline, Dot int
	Frame         uint64
	Ctrl          uint8
	Mask          uint8
	Status        uint8
	OAMAddr       uint8
	V, T          uint16
	FineX         uint8
	WriteToggle   bool
}

func (s State) String() string {
	return fmt.Sprintf("PPU:%3d,%3d CTRL:%02X MASK:%02X STAT:%02X v:%04X t:%04X x:%d",
		s.Scanline, s.Dot, s.Ctrl, s.Mask, s.Status, s.V, s.T, s.FineX)
}

// OAM returns a copy of primary OAM.
func (p *PPU) OAM() [256]uint8 { return p.oam }

// SpriteHeight returns 8 or 16 depending on PPUCTRL.
func (p *PPU) SpriteHeight() int { return p.spriteHeight() }

// State returns a copy of the registers and raster position.
func (p *PPU) State() State {
	return State{
		Scanline:    p.scanline,
		Dot:         p.dot,
		Frame:       p.frame,
		Ctrl:        p.ctrl,
		Mask:        p.mask,
		Status:      p.status,
		OAMAddr:     p.oamAddr,
		V:           p.v,
		T:           p.t,
		FineX:       p.x,
		WriteToggle: p.w,
	}
}

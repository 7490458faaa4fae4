package addr

// ppu registers, mirrored every 8 bytes across 0x2000-0x3FFF
const (
	// PPU Control register (write).
	PPUCTRL uint16 = 0x2000
	// PPU Mask register (write).
	PPUMASK uint16 = 0x2001
	// PPU Status register (read). Reading clears VBlank and the write toggle.
	PPUSTATUS uint16 = 0x2002
	// OAM address register (write).
	OAMADDR uint16 = 0x2003
	// OAM data register (read/write).
	OAMDATA uint16 = 0x2004
	// Scroll latch (write x2).
	PPUSCROLL uint16 = 0x2005
	// VRAM address latch (write x2).
	PPUADDR uint16 = 0x2006
	// VRAM data port (read/write).
	PPUDATA uint16 = 0x2007

	// PPURegisterEnd is the last address of the mirrored PPU register window.
	PPURegisterEnd uint16 = 0x3FFF
)

// APU and I/O registers
const (
	// APU register range (channels, DMC, status, frame counter)
	APUStart uint16 = 0x4000
	APUEnd   uint16 = 0x4013

	// OAM DMA trigger, the written value is the source page.
	OAMDMA uint16 = 0x4014
	// APU status / channel enable.
	APUSTATUS uint16 = 0x4015
	// Controller 1 data, strobe on write.
	JOY1 uint16 = 0x4016
	// Controller 2 data on read, APU frame counter on write.
	JOY2 uint16 = 0x4017

	// CartridgeStart is the first address owned by the mapper.
	CartridgeStart uint16 = 0x4020
)

// memory layout
const (
	// RAMEnd is the last address of the mirrored internal RAM.
	RAMEnd uint16 = 0x1FFF
	// RAMMask masks an address into the 2KiB of internal RAM.
	RAMMask uint16 = 0x07FF
	// PPURegisterMask masks an address to one of the 8 PPU registers.
	PPURegisterMask uint16 = 0x0007

	// StackBase is the page holding the hardware stack.
	StackBase uint16 = 0x0100
)

// Vector is the address of a 16 bit interrupt vector.
type Vector uint16

// interrupt/reset vectors
const (
	NMIVector   Vector = 0xFFFA
	ResetVector Vector = 0xFFFC
	IRQVector   Vector = 0xFFFE
)

// ppu address space
const (
	// PatternTableEnd is the last address of the two CHR pattern tables.
	PatternTableEnd uint16 = 0x1FFF
	// NametableStart is the first nametable address.
	NametableStart uint16 = 0x2000
	// PaletteStart is the first address of palette RAM, mirrored up to 0x3FFF.
	PaletteStart uint16 = 0x3F00
	// PPUAddressMask masks VRAM addresses into the 14 bit PPU address space.
	PPUAddressMask uint16 = 0x3FFF
)

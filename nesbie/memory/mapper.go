package memory

import (
	"fmt"
	"log/slog"
)

// Mirroring selects how the four logical nametables map onto nametable RAM.
type Mirroring uint8

const (
	MirrorHorizontal Mirroring = iota
	MirrorVertical
	MirrorSingleLower
	MirrorSingleUpper
	MirrorFourScreen
)

var mirroringTables = [...][4]uint16{
	MirrorHorizontal:  {0, 0, 1, 1},
	MirrorVertical:    {0, 1, 0, 1},
	MirrorSingleLower: {0, 0, 0, 0},
	MirrorSingleUpper: {1, 1, 1, 1},
	MirrorFourScreen:  {0, 1, 2, 3},
}

func (m Mirroring) String() string {
	switch m {
	case MirrorHorizontal:
		return "horizontal"
	case MirrorVertical:
		return "vertical"
	case MirrorSingleLower:
		return "single-lower"
	case MirrorSingleUpper:
		return "single-upper"
	case MirrorFourScreen:
		return "four-screen"
	default:
		return fmt.Sprintf("mirroring(%d)", uint8(m))
	}
}

// NametableOffset maps a PPU address in $2000-$3EFF to an offset into nametable RAM.
func (m Mirroring) NametableOffset(address uint16) uint16 {
	address = (address - 0x2000) & 0x0FFF
	table := address / 0x0400
	return mirroringTables[m][table]*0x0400 + address&0x03FF
}

// Mapper is the cartridge board as seen from the CPU and PPU buses.
type Mapper interface {
	// CPURead reads from the cartridge region, $4020-$FFFF.
	CPURead(address uint16) uint8
	// CPUWrite writes to the cartridge region, usually a bank switch.
	CPUWrite(address uint16, value uint8)
	// PPURead reads CHR memory, $0000-$1FFF.
	PPURead(address uint16) uint8
	// PPUWrite writes CHR memory when the board has CHR RAM.
	PPUWrite(address uint16, value uint8)
	// Mirroring returns the current nametable arrangement.
	Mirroring() Mirroring
	// PollIRQ reports a pending IRQ and acknowledges it.
	PollIRQ() bool
}

// ScanlineTicker is implemented by boards counting scanlines for IRQs.
type ScanlineTicker interface {
	// ScanlineDot is the PPU dot at which a rendering scanline clocks the counter.
	ScanlineDot() int
	TickScanline()
}

// NewMapper creates the mapper for the cartridge board number.
func NewMapper(cart *Cartridge) (Mapper, error) {
	var m Mapper
	switch cart.MapperID {
	case 0:
		m = NewNROM(cart)
	case 1:
		m = NewMMC1(cart)
	case 2:
		m = NewUxROM(cart)
	case 3:
		m = NewCNROM(cart)
	case 4:
		m = NewMMC3(cart)
	case 7:
		m = NewAxROM(cart)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedMapper, cart.MapperID)
	}

	slog.Info("Cartridge mapper",
		"mapper", cart.MapperID,
		"prg_kb", len(cart.PRG)/1024,
		"chr_kb", len(cart.CHR)/1024,
		"chr_ram", cart.HasCHRRAM,
		"mirroring", cart.Mirroring.String())
	return m, nil
}

// bankOffset returns the byte offset of a bank, negative indexes count from the end.
func bankOffset(index, bankSize, total int) int {
	banks := total / bankSize
	if banks == 0 {
		return 0
	}
	index %= banks
	if index < 0 {
		index += banks
	}
	return index * bankSize
}

// prgRAM is the battery or work RAM at $6000-$7FFF shared by most boards.
type prgRAM []uint8

func newPRGRAM(cart *Cartridge) prgRAM {
	size := cart.PRGRAMSize
	if size == 0 {
		size = 0x2000
	}
	return make(prgRAM, size)
}

func (r prgRAM) read(address uint16) uint8 {
	return r[int(address-0x6000)%len(r)]
}

func (r prgRAM) write(address uint16, value uint8) {
	r[int(address-0x6000)%len(r)] = value
}

// chrWrite stores into CHR memory only when it is RAM.
func chrWrite(cart *Cartridge, offset int, value uint8) {
	if !cart.HasCHRRAM {
		slog.Debug("Write to CHR ROM ignored", "offset", fmt.Sprintf("0x%04X", offset))
		return
	}
	cart.CHR[offset] = value
}

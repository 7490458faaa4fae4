package memory

import (
	"fmt"
	"log/slog"

	"github.com/valerio/go-nesbie/nesbie/addr"
)

// RegisterPort is a chip exposing memory mapped registers to the CPU, like
// the PPU at $2000-$2007 or the APU at $4000-$4017.
type RegisterPort interface {
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// Bus is the CPU address space. Internal RAM is one 2KB array with mirrors
// computed by masking; everything else is forwarded to its owner.
type Bus struct {
	ram [0x800]uint8

	ppu    RegisterPort
	apu    RegisterPort
	mapper Mapper

	Joypad1 *Joypad
	Joypad2 *Joypad

	dmaHandler func(page uint8)
	openBus    uint8
}

// NewBus wires the CPU address space. Any component may be nil, in which case
// its region reads as open bus.
func NewBus(ppu, apu RegisterPort, mapper Mapper) *Bus {
	return &Bus{
		ppu:     ppu,
		apu:     apu,
		mapper:  mapper,
		Joypad1: NewJoypad(),
		Joypad2: NewJoypad(),
	}
}

// OnOAMDMA sets the callback run by a write to $4014, with the source page.
func (b *Bus) OnOAMDMA(handler func(page uint8)) {
	b.dmaHandler = handler
}

func (b *Bus) Read(address uint16) uint8 {
	value := b.read(address)
	b.openBus = value
	return value
}

func (b *Bus) read(address uint16) uint8 {
	switch {
	case address <= addr.RAMEnd:
		return b.ram[address&addr.RAMMask]
	case address <= addr.PPURegisterEnd:
		if b.ppu == nil {
			return b.openBus
		}
		return b.ppu.ReadRegister(addr.PPUCTRL | address&addr.PPURegisterMask)
	case address == addr.APUSTATUS:
		if b.apu == nil {
			return b.openBus
		}
		return b.apu.ReadRegister(address)
	case address == addr.JOY1:
		return b.Joypad1.Read() | b.openBus&0xE0
	case address == addr.JOY2:
		return b.Joypad2.Read() | b.openBus&0xE0
	case address < addr.CartridgeStart:
		// write only APU registers, DMA and the disabled test registers
		return b.openBus
	default:
		if b.mapper == nil {
			slog.Warn("Reading from cartridge space with no cartridge", "addr", fmt.Sprintf("0x%04X", address))
			return b.openBus
		}
		return b.mapper.CPURead(address)
	}
}

func (b *Bus) Write(address uint16, value uint8) {
	b.openBus = value

	switch {
	case address <= addr.RAMEnd:
		b.ram[address&addr.RAMMask] = value
	case address <= addr.PPURegisterEnd:
		if b.ppu != nil {
			b.ppu.WriteRegister(addr.PPUCTRL|address&addr.PPURegisterMask, value)
		}
	case address == addr.OAMDMA:
		if b.dmaHandler != nil {
			b.dmaHandler(value)
		}
	case address == addr.JOY1:
		b.Joypad1.Write(value)
		b.Joypad2.Write(value)
	case address >= addr.APUStart && address <= addr.JOY2:
		if b.apu != nil {
			b.apu.WriteRegister(address, value)
		}
	case address < addr.CartridgeStart:
		slog.Debug("Write to unused I/O register", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
	default:
		if b.mapper == nil {
			slog.Warn("Writing to cartridge space with no cartridge", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
			return
		}
		b.mapper.CPUWrite(address, value)
	}
}

// Peek reads without side effects, for debuggers and tracers. Registers read as 0.
func (b *Bus) Peek(address uint16) uint8 {
	switch {
	case address <= addr.RAMEnd:
		return b.ram[address&addr.RAMMask]
	case address < addr.CartridgeStart:
		return 0
	case b.mapper == nil:
		return 0
	default:
		return b.mapper.CPURead(address)
	}
}

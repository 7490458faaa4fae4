package memory

import (
	"fmt"
	"log/slog"
)

// NROM (mapper 0) has no bank switching: 16KB or 32KB of PRG, 8KB of CHR.
// A 16KB PRG is mirrored into both halves of $8000-$FFFF.
type NROM struct {
	cart *Cartridge
	ram  prgRAM
}

func NewNROM(cart *Cartridge) *NROM {
	return &NROM{cart: cart, ram: newPRGRAM(cart)}
}

func (m *NROM) CPURead(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		return m.cart.PRG[int(address-0x8000)%len(m.cart.PRG)]
	case address >= 0x6000:
		return m.ram.read(address)
	default:
		return 0
	}
}

func (m *NROM) CPUWrite(address uint16, value uint8) {
	if address >= 0x6000 && address < 0x8000 {
		m.ram.write(address, value)
		return
	}
	slog.Debug("Ignored write to NROM", "addr", fmt.Sprintf("0x%04X", address), "value", fmt.Sprintf("0x%02X", value))
}

func (m *NROM) PPURead(address uint16) uint8 {
	return m.cart.CHR[int(address)%len(m.cart.CHR)]
}

func (m *NROM) PPUWrite(address uint16, value uint8) {
	chrWrite(m.cart, int(address)%len(m.cart.CHR), value)
}

func (m *NROM) Mirroring() Mirroring { return m.cart.Mirroring }
func (m *NROM) PollIRQ() bool        { return false }

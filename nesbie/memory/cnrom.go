package memory

// CNROM (mapper 3) has fixed PRG like NROM and switches the whole 8KB CHR bank.
type CNROM struct {
	*NROM
	chrBank int
}

func NewCNROM(cart *Cartridge) *CNROM {
	return &CNROM{NROM: NewNROM(cart)}
}

func (m *CNROM) CPUWrite(address uint16, value uint8) {
	if address >= 0x8000 {
		m.chrBank = int(value & 0x03)
		return
	}
	m.NROM.CPUWrite(address, value)
}

func (m *CNROM) PPURead(address uint16) uint8 {
	offset := bankOffset(m.chrBank, chrBankSize, len(m.cart.CHR))
	return m.cart.CHR[offset+int(address&0x1FFF)]
}

func (m *CNROM) PPUWrite(address uint16, value uint8) {
	offset := bankOffset(m.chrBank, chrBankSize, len(m.cart.CHR))
	chrWrite(m.cart, offset+int(address&0x1FFF), value)
}

package memory

// UxROM (mapper 2) switches a 16KB PRG bank at $8000, the last bank is fixed at $C000.
// CHR is usually 8KB of RAM.
type UxROM struct {
	cart    *Cartridge
	ram     prgRAM
	prgBank int
}

func NewUxROM(cart *Cartridge) *UxROM {
	return &UxROM{cart: cart, ram: newPRGRAM(cart)}
}

func (m *UxROM) CPURead(address uint16) uint8 {
	switch {
	case address >= 0xC000:
		offset := bankOffset(-1, prgBankSize, len(m.cart.PRG))
		return m.cart.PRG[offset+int(address-0xC000)]
	case address >= 0x8000:
		offset := bankOffset(m.prgBank, prgBankSize, len(m.cart.PRG))
		return m.cart.PRG[offset+int(address-0x8000)]
	case address >= 0x6000:
		return m.ram.read(address)
	default:
		return 0
	}
}

func (m *UxROM) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x8000:
		m.prgBank = int(value & 0x0F)
	case address >= 0x6000:
		m.ram.write(address, value)
	}
}

func (m *UxROM) PPURead(address uint16) uint8 {
	return m.cart.CHR[int(address)%len(m.cart.CHR)]
}

func (m *UxROM) PPUWrite(address uint16, value uint8) {
	chrWrite(m.cart, int(address)%len(m.cart.CHR), value)
}

func (m *UxROM) Mirroring() Mirroring { return m.cart.Mirroring }
func (m *UxROM) PollIRQ() bool        { return false }

package memory

// AxROM (mapper 7) switches 32KB of PRG and selects a single-screen nametable.
type AxROM struct {
	cart      *Cartridge
	prgBank   int
	mirroring Mirroring
}

func NewAxROM(cart *Cartridge) *AxROM {
	return &AxROM{cart: cart, mirroring: MirrorSingleLower}
}

func (m *AxROM) CPURead(address uint16) uint8 {
	if address < 0x8000 {
		return 0
	}
	offset := bankOffset(m.prgBank, 2*prgBankSize, len(m.cart.PRG))
	return m.cart.PRG[(offset+int(address-0x8000))%len(m.cart.PRG)]
}

func (m *AxROM) CPUWrite(address uint16, value uint8) {
	if address < 0x8000 {
		return
	}
	m.prgBank = int(value & 0x07)
	if value&0x10 != 0 {
		m.mirroring = MirrorSingleUpper
	} else {
		m.mirroring = MirrorSingleLower
	}
}

func (m *AxROM) PPURead(address uint16) uint8 {
	return m.cart.CHR[int(address)%len(m.cart.CHR)]
}

func (m *AxROM) PPUWrite(address uint16, value uint8) {
	chrWrite(m.cart, int(address)%len(m.cart.CHR), value)
}

func (m *AxROM) Mirroring() Mirroring { return m.mirroring }
func (m *AxROM) PollIRQ() bool        { return false }

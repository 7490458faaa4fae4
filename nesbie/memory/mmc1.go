package memory

// MMC1 (mapper 1) is programmed through a 5 bit serial shift register.
// Writing a value with bit 7 set resets the register and forces PRG mode 3.
//   - control ($8000-$9FFF): mirroring, PRG mode, CHR mode
//   - CHR bank 0 ($A000-$BFFF) and CHR bank 1 ($C000-$DFFF)
//   - PRG bank ($E000-$FFFF)
type MMC1 struct {
	cart *Cartridge
	ram  prgRAM

	shift    uint8
	control  uint8
	chrBank0 uint8
	chrBank1 uint8
	prgBank  uint8

	prgOffsets [2]int
	chrOffsets [2]int
}

const mmc1ShiftReset = 0x10

func NewMMC1(cart *Cartridge) *MMC1 {
	m := &MMC1{
		cart:  cart,
		ram:   newPRGRAM(cart),
		shift: mmc1ShiftReset,
	}
	m.writeControl(0x0C)
	return m
}

func (m *MMC1) CPURead(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		a := address - 0x8000
		return m.cart.PRG[m.prgOffsets[a/0x4000]+int(a%0x4000)]
	case address >= 0x6000:
		return m.ram.read(address)
	default:
		return 0
	}
}

func (m *MMC1) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x8000:
		m.loadShift(address, value)
	case address >= 0x6000:
		m.ram.write(address, value)
	}
}

func (m *MMC1) loadShift(address uint16, value uint8) {
	if value&0x80 != 0 {
		m.shift = mmc1ShiftReset
		m.writeControl(m.control | 0x0C)
		return
	}

	complete := m.shift&1 == 1
	m.shift = m.shift>>1 | (value&1)<<4
	if !complete {
		return
	}

	switch {
	case address <= 0x9FFF:
		m.writeControl(m.shift)
	case address <= 0xBFFF:
		m.chrBank0 = m.shift
	case address <= 0xDFFF:
		m.chrBank1 = m.shift
	default:
		m.prgBank = m.shift & 0x0F
	}
	m.shift = mmc1ShiftReset
	m.updateOffsets()
}

func (m *MMC1) writeControl(value uint8) {
	m.control = value & 0x1F
	m.updateOffsets()
}

func (m *MMC1) prgMode() uint8 { return (m.control >> 2) & 0x03 }
func (m *MMC1) chrMode() uint8 { return (m.control >> 4) & 0x01 }

func (m *MMC1) updateOffsets() {
	total := len(m.cart.PRG)
	switch m.prgMode() {
	case 0, 1:
		m.prgOffsets[0] = bankOffset(int(m.prgBank&0x0E), prgBankSize, total)
		m.prgOffsets[1] = bankOffset(int(m.prgBank|0x01), prgBankSize, total)
	case 2:
		m.prgOffsets[0] = 0
		m.prgOffsets[1] = bankOffset(int(m.prgBank), prgBankSize, total)
	case 3:
		m.prgOffsets[0] = bankOffset(int(m.prgBank), prgBankSize, total)
		m.prgOffsets[1] = bankOffset(-1, prgBankSize, total)
	}

	total = len(m.cart.CHR)
	if m.chrMode() == 0 {
		m.chrOffsets[0] = bankOffset(int(m.chrBank0&0x1E), 0x1000, total)
		m.chrOffsets[1] = bankOffset(int(m.chrBank0|0x01), 0x1000, total)
	} else {
		m.chrOffsets[0] = bankOffset(int(m.chrBank0), 0x1000, total)
		m.chrOffsets[1] = bankOffset(int(m.chrBank1), 0x1000, total)
	}
}

func (m *MMC1) chrOffset(address uint16) int {
	address &= 0x1FFF
	return m.chrOffsets[address/0x1000] + int(address%0x1000)
}

func (m *MMC1) PPURead(address uint16) uint8 {
	return m.cart.CHR[m.chrOffset(address)]
}

func (m *MMC1) PPUWrite(address uint16, value uint8) {
	chrWrite(m.cart, m.chrOffset(address), value)
}

func (m *MMC1) Mirroring() Mirroring {
	switch m.control & 0x03 {
	case 0:
		return MirrorSingleLower
	case 1:
		return MirrorSingleUpper
	case 2:
		return MirrorVertical
	default:
		return MirrorHorizontal
	}
}

func (m *MMC1) PollIRQ() bool { return false }

package memory

// MMC3 (mapper 4) has eight bank registers, 8KB PRG and 1KB/2KB CHR banking,
// and a scanline counter that raises IRQs. The counter is clocked by the PPU
// once per rendering scanline, see ScanlineDot.
type MMC3 struct {
	cart *Cartridge
	ram  prgRAM

	register  uint8
	registers [8]uint8
	prgMode   uint8
	chrMode   uint8
	mirroring Mirroring

	reload        uint8
	counter       uint8
	reloadPending bool
	irqEnabled    bool
	irqPending    bool

	prgOffsets [4]int
	chrOffsets [8]int
}

// mmc3ScanlineDot approximates the A12 rise with the default pattern table
// layout (background at $0000, sprites at $1000).
const mmc3ScanlineDot = 280

func NewMMC3(cart *Cartridge) *MMC3 {
	m := &MMC3{
		cart:      cart,
		ram:       newPRGRAM(cart),
		mirroring: cart.Mirroring,
	}
	m.prgOffsets[0] = bankOffset(0, 0x2000, len(cart.PRG))
	m.prgOffsets[1] = bankOffset(1, 0x2000, len(cart.PRG))
	m.prgOffsets[2] = bankOffset(-2, 0x2000, len(cart.PRG))
	m.prgOffsets[3] = bankOffset(-1, 0x2000, len(cart.PRG))
	m.updateOffsets()
	return m
}

func (m *MMC3) CPURead(address uint16) uint8 {
	switch {
	case address >= 0x8000:
		a := address - 0x8000
		return m.cart.PRG[m.prgOffsets[a/0x2000]+int(a%0x2000)]
	case address >= 0x6000:
		return m.ram.read(address)
	default:
		return 0
	}
}

func (m *MMC3) CPUWrite(address uint16, value uint8) {
	switch {
	case address >= 0x8000:
		m.writeRegister(address, value)
	case address >= 0x6000:
		m.ram.write(address, value)
	}
}

func (m *MMC3) writeRegister(address uint16, value uint8) {
	even := address&1 == 0
	switch {
	case address <= 0x9FFF && even:
		m.prgMode = (value >> 6) & 1
		m.chrMode = (value >> 7) & 1
		m.register = value & 7
		m.updateOffsets()
	case address <= 0x9FFF:
		m.registers[m.register] = value
		m.updateOffsets()
	case address <= 0xBFFF && even:
		if m.cart.Mirroring == MirrorFourScreen {
			return
		}
		if value&1 == 0 {
			m.mirroring = MirrorVertical
		} else {
			m.mirroring = MirrorHorizontal
		}
	case address <= 0xBFFF:
		// PRG RAM protect, not emulated
	case address <= 0xDFFF && even:
		m.reload = value
	case address <= 0xDFFF:
		m.counter = 0
		m.reloadPending = true
	case even:
		m.irqEnabled = false
		m.irqPending = false
	default:
		m.irqEnabled = true
	}
}

func (m *MMC3) updateOffsets() {
	prg := len(m.cart.PRG)
	r := m.registers
	if m.prgMode == 0 {
		m.prgOffsets[0] = bankOffset(int(r[6]&0x3F), 0x2000, prg)
		m.prgOffsets[2] = bankOffset(-2, 0x2000, prg)
	} else {
		m.prgOffsets[0] = bankOffset(-2, 0x2000, prg)
		m.prgOffsets[2] = bankOffset(int(r[6]&0x3F), 0x2000, prg)
	}
	m.prgOffsets[1] = bankOffset(int(r[7]&0x3F), 0x2000, prg)
	m.prgOffsets[3] = bankOffset(-1, 0x2000, prg)

	chr := len(m.cart.CHR)
	banks := [8]int{
		int(r[0] & 0xFE), int(r[0] | 0x01),
		int(r[1] & 0xFE), int(r[1] | 0x01),
		int(r[2]), int(r[3]), int(r[4]), int(r[5]),
	}
	for i, bank := range banks {
		slot := i
		if m.chrMode == 1 {
			slot = i ^ 4
		}
		m.chrOffsets[slot] = bankOffset(bank, 0x0400, chr)
	}
}

func (m *MMC3) chrOffset(address uint16) int {
	address &= 0x1FFF
	return m.chrOffsets[address/0x0400] + int(address%0x0400)
}

func (m *MMC3) PPURead(address uint16) uint8 {
	return m.cart.CHR[m.chrOffset(address)]
}

func (m *MMC3) PPUWrite(address uint16, value uint8) {
	chrWrite(m.cart, m.chrOffset(address), value)
}

func (m *MMC3) Mirroring() Mirroring { return m.mirroring }

func (m *MMC3) PollIRQ() bool {
	pending := m.irqPending
	m.irqPending = false
	return pending
}

func (m *MMC3) ScanlineDot() int { return mmc3ScanlineDot }

// TickScanline clocks the IRQ counter: reload when zero or requested,
// otherwise decrement, and flag an IRQ when it lands on zero.
func (m *MMC3) TickScanline() {
	if m.counter == 0 || m.reloadPending {
		m.counter = m.reload
		m.reloadPending = false
	} else {
		m.counter--
	}

	if m.counter == 0 && m.irqEnabled {
		m.irqPending = true
	}
}

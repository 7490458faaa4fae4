package cpu

// flatBus is a 64KB RAM with no mirroring, enough to drive the CPU in isolation.
type flatBus struct {
	mem [0x10000]uint8
}

func (b *flatBus) Read(address uint16) uint8         { return b.mem[address] }
func (b *flatBus) Write(address uint16, value uint8) { b.mem[address] = value }

func (b *flatBus) load(address uint16, program ...uint8) {
	copy(b.mem[address:], program)
}

// newTestCPU returns a CPU whose reset vector points at start.
func newTestCPU(start uint16, program ...uint8) (*CPU, *flatBus) {
	bus := &flatBus{}
	bus.mem[0xFFFC] = uint8(start)
	bus.mem[0xFFFD] = uint8(start >> 8)
	bus.load(start, program...)

	c := New(bus)
	c.Reset()
	return c, bus
}

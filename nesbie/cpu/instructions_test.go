package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCPU_adc(t *testing.T) {
	c, _ := newTestCPU(0x8000)

	testCases := []struct {
		desc  string
		a     uint8
		arg   uint8
		carry bool
		want  uint8
		flags Flag
	}{
		{desc: "adds", a: 0x10, arg: 0x20, want: 0x30},
		{desc: "adds carry in", a: 0x10, arg: 0x20, carry: true, want: 0x31},
		{desc: "wraps to zero", a: 0xFF, arg: 0x01, want: 0x00, flags: carryFlag | zeroFlag},
		{desc: "signed overflow positive", a: 0x7F, arg: 0x01, want: 0x80, flags: overflowFlag | negativeFlag},
		{desc: "signed overflow negative", a: 0x80, arg: 0xFF, want: 0x7F, flags: overflowFlag | carryFlag},
		{desc: "negative result", a: 0x00, arg: 0xF0, want: 0xF0, flags: negativeFlag},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c.p = 0
			c.setFlagToCondition(carryFlag, tC.carry)
			c.a = tC.a
			c.adc(tC.arg)
			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, uint8(tC.flags), c.p)
		})
	}
}

func TestCPU_sbc(t *testing.T) {
	c, _ := newTestCPU(0x8000)

	testCases := []struct {
		desc  string
		a     uint8
		arg   uint8
		carry bool
		want  uint8
		flags Flag
	}{
		{desc: "borrow out", a: 0x00, arg: 0x01, carry: true, want: 0xFF, flags: negativeFlag},
		{desc: "no borrow", a: 0x05, arg: 0x03, carry: true, want: 0x02, flags: carryFlag},
		{desc: "borrow in", a: 0x05, arg: 0x03, want: 0x01, flags: carryFlag},
		{desc: "equal gives zero", a: 0x40, arg: 0x40, carry: true, want: 0x00, flags: carryFlag | zeroFlag},
		{desc: "signed overflow", a: 0x80, arg: 0x01, carry: true, want: 0x7F, flags: carryFlag | overflowFlag},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c.p = 0
			c.setFlagToCondition(carryFlag, tC.carry)
			c.a = tC.a
			c.sbc(tC.arg)
			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, uint8(tC.flags), c.p)
		})
	}
}

func TestCPU_compare(t *testing.T) {
	c, _ := newTestCPU(0x8000)

	testCases := []struct {
		desc  string
		reg   uint8
		arg   uint8
		flags Flag
	}{
		{desc: "greater", reg: 0x10, arg: 0x01, flags: carryFlag},
		{desc: "equal", reg: 0x10, arg: 0x10, flags: carryFlag | zeroFlag},
		{desc: "less", reg: 0x01, arg: 0x10, flags: negativeFlag},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c.p = 0
			c.compare(tC.reg, tC.arg)
			assert.Equal(t, uint8(tC.flags), c.p)
		})
	}
}

func TestCPU_shiftsAndRotates(t *testing.T) {
	testCases := []struct {
		desc    string
		opcode  uint8
		a       uint8
		carryIn bool
		want    uint8
		flags   Flag
	}{
		{desc: "ASL sets carry", opcode: 0x0A, a: 0x81, want: 0x02, flags: carryFlag},
		{desc: "ASL to zero", opcode: 0x0A, a: 0x80, want: 0x00, flags: carryFlag | zeroFlag},
		{desc: "LSR", opcode: 0x4A, a: 0x03, want: 0x01, flags: carryFlag},
		{desc: "ROL carry in", opcode: 0x2A, a: 0x40, carryIn: true, want: 0x81, flags: negativeFlag},
		{desc: "ROR carry in", opcode: 0x6A, a: 0x01, carryIn: true, want: 0x80, flags: carryFlag | negativeFlag},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			c, _ := newTestCPU(0x8000, tC.opcode)
			c.p = 0
			c.setFlagToCondition(carryFlag, tC.carryIn)
			c.a = tC.a

			assert.Equal(t, 2, c.Exec())
			assert.Equal(t, tC.want, c.a)
			assert.Equal(t, uint8(tC.flags), c.p)
		})
	}
}

func TestCPU_readModifyWriteMemory(t *testing.T) {
	c, bus := newTestCPU(0x8000, 0xE6, 0x10, 0xC6, 0x11) // INC $10, DEC $11
	bus.mem[0x10] = 0xFF
	bus.mem[0x11] = 0x00

	assert.Equal(t, 5, c.Exec())
	assert.Equal(t, uint8(0x00), bus.mem[0x10])
	assert.True(t, c.isSetFlag(zeroFlag))

	assert.Equal(t, 5, c.Exec())
	assert.Equal(t, uint8(0xFF), bus.mem[0x11])
	assert.True(t, c.isSetFlag(negativeFlag))
}

func TestCPU_bit(t *testing.T) {
	c, bus := newTestCPU(0x8000, 0x24, 0x10)
	bus.mem[0x10] = 0xC0
	c.a = 0x01

	c.Exec()
	assert.True(t, c.isSetFlag(zeroFlag))
	assert.True(t, c.isSetFlag(overflowFlag))
	assert.True(t, c.isSetFlag(negativeFlag))
}

func TestCPU_transfers(t *testing.T) {
	c, _ := newTestCPU(0x8000, 0xAA, 0xA8, 0xBA, 0x9A) // TAX, TAY, TSX, TXS
	c.a = 0x80

	c.Exec()
	assert.Equal(t, uint8(0x80), c.x)
	assert.True(t, c.isSetFlag(negativeFlag))

	c.Exec()
	assert.Equal(t, uint8(0x80), c.y)

	c.Exec()
	assert.Equal(t, uint8(0xFD), c.x)

	c.x = 0x42
	c.p = 0
	c.Exec()
	assert.Equal(t, uint8(0x42), c.sp)
	assert.Equal(t, uint8(0), c.p, "TXS leaves flags alone")
}

func TestCPU_unofficial(t *testing.T) {
	t.Run("LAX loads A and X", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0xA7, 0x10)
		bus.mem[0x10] = 0x8F
		assert.Equal(t, 3, c.Exec())
		assert.Equal(t, uint8(0x8F), c.a)
		assert.Equal(t, uint8(0x8F), c.x)
		assert.True(t, c.isSetFlag(negativeFlag))
	})

	t.Run("SAX stores A AND X", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0x87, 0x10)
		c.a, c.x = 0xF0, 0x3C
		c.p = 0
		c.Exec()
		assert.Equal(t, uint8(0x30), bus.mem[0x10])
		assert.Equal(t, uint8(0), c.p)
	})

	t.Run("DCP decrements then compares", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0xC7, 0x10)
		bus.mem[0x10] = 0x41
		c.a = 0x40
		assert.Equal(t, 5, c.Exec())
		assert.Equal(t, uint8(0x40), bus.mem[0x10])
		assert.True(t, c.isSetFlag(zeroFlag))
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("ISC increments then subtracts", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0xE7, 0x10)
		bus.mem[0x10] = 0x01
		c.a = 0x05
		c.setFlag(carryFlag)
		c.Exec()
		assert.Equal(t, uint8(0x02), bus.mem[0x10])
		assert.Equal(t, uint8(0x03), c.a)
	})

	t.Run("SLO shifts then ORs", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0x07, 0x10)
		bus.mem[0x10] = 0x81
		c.a = 0x01
		c.Exec()
		assert.Equal(t, uint8(0x02), bus.mem[0x10])
		assert.Equal(t, uint8(0x03), c.a)
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("RLA rotates then ANDs", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0x27, 0x10)
		bus.mem[0x10] = 0x40
		c.setFlag(carryFlag)
		c.a = 0xFF
		c.Exec()
		assert.Equal(t, uint8(0x81), bus.mem[0x10])
		assert.Equal(t, uint8(0x81), c.a)
		assert.False(t, c.isSetFlag(carryFlag))
	})

	t.Run("SRE shifts then EORs", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0x47, 0x10)
		bus.mem[0x10] = 0x03
		c.a = 0x01
		c.Exec()
		assert.Equal(t, uint8(0x01), bus.mem[0x10])
		assert.Equal(t, uint8(0x00), c.a)
		assert.True(t, c.isSetFlag(zeroFlag))
	})

	t.Run("RRA rotates then adds the carry out", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0x67, 0x10)
		bus.mem[0x10] = 0x03
		c.resetFlag(carryFlag)
		c.a = 0x10
		c.Exec()
		assert.Equal(t, uint8(0x01), bus.mem[0x10])
		assert.Equal(t, uint8(0x12), c.a)
	})

	t.Run("ANC copies N into C", func(t *testing.T) {
		c, _ := newTestCPU(0x8000, 0x0B, 0x80)
		c.a = 0xFF
		c.Exec()
		assert.Equal(t, uint8(0x80), c.a)
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("ALR ANDs then shifts", func(t *testing.T) {
		c, _ := newTestCPU(0x8000, 0x4B, 0x03)
		c.a = 0xFF
		c.Exec()
		assert.Equal(t, uint8(0x01), c.a)
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("ARR sets C and V from bits 6 and 5", func(t *testing.T) {
		c, _ := newTestCPU(0x8000, 0x6B, 0xFF)
		c.a = 0x80
		c.setFlag(carryFlag)
		c.Exec()
		assert.Equal(t, uint8(0xC0), c.a)
		assert.True(t, c.isSetFlag(carryFlag))
		assert.True(t, c.isSetFlag(overflowFlag))
	})

	t.Run("AXS subtracts from A AND X", func(t *testing.T) {
		c, _ := newTestCPU(0x8000, 0xCB, 0x02)
		c.a, c.x = 0x0F, 0x07
		c.Exec()
		assert.Equal(t, uint8(0x05), c.x)
		assert.True(t, c.isSetFlag(carryFlag))
	})

	t.Run("LAS ANDs memory with SP", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0xBB, 0x00, 0x20)
		bus.mem[0x2000] = 0x0F
		c.Exec()
		assert.Equal(t, uint8(0x0D), c.a)
		assert.Equal(t, uint8(0x0D), c.x)
		assert.Equal(t, uint8(0x0D), c.sp)
	})

	t.Run("SHY masks with high byte plus one", func(t *testing.T) {
		c, bus := newTestCPU(0x8000, 0x9C, 0x00, 0x02)
		c.y = 0xFF
		c.x = 0x00
		c.Exec()
		assert.Equal(t, uint8(0x03), bus.mem[0x0200])
	})

	t.Run("unofficial SBC immediate", func(t *testing.T) {
		c, _ := newTestCPU(0x8000, 0xEB, 0x01)
		c.a = 0x03
		c.setFlag(carryFlag)
		c.Exec()
		assert.Equal(t, uint8(0x02), c.a)
	})

	t.Run("multi byte NOP skips operands", func(t *testing.T) {
		c, _ := newTestCPU(0x8000, 0x0C, 0x00, 0x20, 0x04, 0x10, 0x80, 0x00)
		assert.Equal(t, 4, c.Exec())
		assert.Equal(t, 3, c.Exec())
		assert.Equal(t, 2, c.Exec())
		assert.Equal(t, uint16(0x8007), c.GetPC())
	})
}

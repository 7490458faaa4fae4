package cpu

import (
	"github.com/valerio/go-nesbie/nesbie/addr"
	"github.com/valerio/go-nesbie/nesbie/bit"
)

// Core primitives. These carry no addressing or cycle logic and are shared by
// the official handlers and the unofficial composite ones.

// adc adds value and carry to A. Decimal mode is ignored on the 2A03.
func (c *CPU) adc(value uint8) {
	a := c.a
	carry := c.flagToBit(carryFlag)

	sum := uint16(a) + uint16(value) + uint16(carry)
	signed := int16(int8(a)) + int16(int8(value)) + int16(carry)

	c.setFlagToCondition(carryFlag, sum > 0xFF)
	c.setFlagToCondition(overflowFlag, signed < -128 || signed > 127)

	c.a = uint8(sum)
	c.setZN(c.a)
}

// sbc subtracts value and borrow from A, as an addition of the one's complement.
func (c *CPU) sbc(value uint8) {
	c.adc(^value)
}

func (c *CPU) and(value uint8) {
	c.a &= value
	c.setZN(c.a)
}

func (c *CPU) ora(value uint8) {
	c.a |= value
	c.setZN(c.a)
}

func (c *CPU) eor(value uint8) {
	c.a ^= value
	c.setZN(c.a)
}

func (c *CPU) compare(register, value uint8) {
	c.setFlagToCondition(carryFlag, register >= value)
	c.setZN(register - value)
}

// shiftLeft, shiftRight, rotateLeft and rotateRight only update carry.
func (c *CPU) shiftLeft(value uint8) uint8 {
	c.setFlagToCondition(carryFlag, value&0x80 != 0)
	return value << 1
}

func (c *CPU) shiftRight(value uint8) uint8 {
	c.setFlagToCondition(carryFlag, value&0x01 != 0)
	return value >> 1
}

func (c *CPU) rotateLeft(value uint8) uint8 {
	carry := c.flagToBit(carryFlag)
	c.setFlagToCondition(carryFlag, value&0x80 != 0)
	return value<<1 | carry
}

func (c *CPU) rotateRight(value uint8) uint8 {
	carry := c.flagToBit(carryFlag) << 7
	c.setFlagToCondition(carryFlag, value&0x01 != 0)
	return value>>1 | carry
}

// modify applies a read-modify-write primitive to the operand and returns the stored result.
func (c *CPU) modify(op Operand, fn func(uint8) uint8) uint8 {
	result := fn(c.load(op))
	c.store(op, result)
	return result
}

func (c *CPU) branch(op Operand, condition bool) int {
	if !condition {
		return 0
	}

	extra := 1
	if bit.PagesDiffer(c.pc, op.address) {
		extra++
	}
	c.pc = op.address
	return extra
}

// Official instructions.

func opADC(c *CPU, op Operand) int { c.adc(c.load(op)); return 0 }
func opSBC(c *CPU, op Operand) int { c.sbc(c.load(op)); return 0 }
func opAND(c *CPU, op Operand) int { c.and(c.load(op)); return 0 }
func opORA(c *CPU, op Operand) int { c.ora(c.load(op)); return 0 }
func opEOR(c *CPU, op Operand) int { c.eor(c.load(op)); return 0 }

func opCMP(c *CPU, op Operand) int { c.compare(c.a, c.load(op)); return 0 }
func opCPX(c *CPU, op Operand) int { c.compare(c.x, c.load(op)); return 0 }
func opCPY(c *CPU, op Operand) int { c.compare(c.y, c.load(op)); return 0 }

func opASL(c *CPU, op Operand) int { c.setZN(c.modify(op, c.shiftLeft)); return 0 }
func opLSR(c *CPU, op Operand) int { c.setZN(c.modify(op, c.shiftRight)); return 0 }
func opROL(c *CPU, op Operand) int { c.setZN(c.modify(op, c.rotateLeft)); return 0 }
func opROR(c *CPU, op Operand) int { c.setZN(c.modify(op, c.rotateRight)); return 0 }

func opINC(c *CPU, op Operand) int {
	c.setZN(c.modify(op, func(v uint8) uint8 { return v + 1 }))
	return 0
}

func opDEC(c *CPU, op Operand) int {
	c.setZN(c.modify(op, func(v uint8) uint8 { return v - 1 }))
	return 0
}

func opBIT(c *CPU, op Operand) int {
	value := c.load(op)
	c.setFlagToCondition(zeroFlag, c.a&value == 0)
	c.setFlagToCondition(overflowFlag, value&0x40 != 0)
	c.setFlagToCondition(negativeFlag, value&0x80 != 0)
	return 0
}

func opLDA(c *CPU, op Operand) int { c.a = c.load(op); c.setZN(c.a); return 0 }
func opLDX(c *CPU, op Operand) int { c.x = c.load(op); c.setZN(c.x); return 0 }
func opLDY(c *CPU, op Operand) int { c.y = c.load(op); c.setZN(c.y); return 0 }

func opSTA(c *CPU, op Operand) int { c.store(op, c.a); return 0 }
func opSTX(c *CPU, op Operand) int { c.store(op, c.x); return 0 }
func opSTY(c *CPU, op Operand) int { c.store(op, c.y); return 0 }

func opTAX(c *CPU, _ Operand) int { c.x = c.a; c.setZN(c.x); return 0 }
func opTAY(c *CPU, _ Operand) int { c.y = c.a; c.setZN(c.y); return 0 }
func opTXA(c *CPU, _ Operand) int { c.a = c.x; c.setZN(c.a); return 0 }
func opTYA(c *CPU, _ Operand) int { c.a = c.y; c.setZN(c.a); return 0 }
func opTSX(c *CPU, _ Operand) int { c.x = c.sp; c.setZN(c.x); return 0 }
func opTXS(c *CPU, _ Operand) int { c.sp = c.x; return 0 }

func opINX(c *CPU, _ Operand) int { c.x++; c.setZN(c.x); return 0 }
func opINY(c *CPU, _ Operand) int { c.y++; c.setZN(c.y); return 0 }
func opDEX(c *CPU, _ Operand) int { c.x--; c.setZN(c.x); return 0 }
func opDEY(c *CPU, _ Operand) int { c.y--; c.setZN(c.y); return 0 }

func opCLC(c *CPU, _ Operand) int { c.resetFlag(carryFlag); return 0 }
func opSEC(c *CPU, _ Operand) int { c.setFlag(carryFlag); return 0 }
func opCLI(c *CPU, _ Operand) int { c.resetFlag(interruptFlag); return 0 }
func opSEI(c *CPU, _ Operand) int { c.setFlag(interruptFlag); return 0 }
func opCLD(c *CPU, _ Operand) int { c.resetFlag(decimalFlag); return 0 }
func opSED(c *CPU, _ Operand) int { c.setFlag(decimalFlag); return 0 }
func opCLV(c *CPU, _ Operand) int { c.resetFlag(overflowFlag); return 0 }

func opPHA(c *CPU, _ Operand) int { c.push(c.a); return 0 }
func opPLA(c *CPU, _ Operand) int { c.a = c.pull(); c.setZN(c.a); return 0 }

// PHP always pushes the break and unused bits set.
func opPHP(c *CPU, _ Operand) int {
	c.push(c.p | uint8(breakFlag) | uint8(unusedFlag))
	return 0
}

func opPLP(c *CPU, _ Operand) int {
	c.SetStatus(c.pull())
	return 0
}

func opJMP(c *CPU, op Operand) int { c.pc = op.address; return 0 }

// JSR pushes the address of its own last byte.
func opJSR(c *CPU, op Operand) int {
	c.push16(c.pc - 1)
	c.pc = op.address
	return 0
}

func opRTS(c *CPU, _ Operand) int {
	c.pc = c.pull16() + 1
	return 0
}

func opRTI(c *CPU, _ Operand) int {
	c.SetStatus(c.pull())
	c.pc = c.pull16()
	return 0
}

// BRK skips its padding byte and pushes P with both the break and unused bits set.
func opBRK(c *CPU, _ Operand) int {
	c.push16(c.pc + 1)
	c.push(c.p | uint8(breakFlag) | uint8(unusedFlag))
	c.setFlag(interruptFlag)
	c.pc = c.read16(uint16(addr.IRQVector))
	return 0
}

func opBCC(c *CPU, op Operand) int { return c.branch(op, !c.isSetFlag(carryFlag)) }
func opBCS(c *CPU, op Operand) int { return c.branch(op, c.isSetFlag(carryFlag)) }
func opBNE(c *CPU, op Operand) int { return c.branch(op, !c.isSetFlag(zeroFlag)) }
func opBEQ(c *CPU, op Operand) int { return c.branch(op, c.isSetFlag(zeroFlag)) }
func opBPL(c *CPU, op Operand) int { return c.branch(op, !c.isSetFlag(negativeFlag)) }
func opBMI(c *CPU, op Operand) int { return c.branch(op, c.isSetFlag(negativeFlag)) }
func opBVC(c *CPU, op Operand) int { return c.branch(op, !c.isSetFlag(overflowFlag)) }
func opBVS(c *CPU, op Operand) int { return c.branch(op, c.isSetFlag(overflowFlag)) }

// NOP reads nothing observable; the unofficial variants share it.
func opNOP(_ *CPU, _ Operand) int { return 0 }

package cpu

import "github.com/valerio/go-nesbie/nesbie/bit"

// Unofficial opcodes. Each one composes the core primitives of two official
// instructions; cycle costs come from their own rows in the opcode table.

// SLO: ASL memory, then ORA.
func opSLO(c *CPU, op Operand) int { c.ora(c.modify(op, c.shiftLeft)); return 0 }

// RLA: ROL memory, then AND.
func opRLA(c *CPU, op Operand) int { c.and(c.modify(op, c.rotateLeft)); return 0 }

// SRE: LSR memory, then EOR.
func opSRE(c *CPU, op Operand) int { c.eor(c.modify(op, c.shiftRight)); return 0 }

// RRA: ROR memory, then ADC using the rotated out carry.
func opRRA(c *CPU, op Operand) int { c.adc(c.modify(op, c.rotateRight)); return 0 }

// DCP: DEC memory, then CMP.
func opDCP(c *CPU, op Operand) int {
	value := c.modify(op, func(v uint8) uint8 { return v - 1 })
	c.compare(c.a, value)
	return 0
}

// ISC: INC memory, then SBC.
func opISC(c *CPU, op Operand) int {
	c.sbc(c.modify(op, func(v uint8) uint8 { return v + 1 }))
	return 0
}

// LAX: LDA and LDX with the same value.
func opLAX(c *CPU, op Operand) int {
	c.a = c.load(op)
	c.x = c.a
	c.setZN(c.a)
	return 0
}

// SAX stores A AND X, flags untouched.
func opSAX(c *CPU, op Operand) int { c.store(op, c.a&c.x); return 0 }

// ANC: AND, then carry mirrors the negative flag.
func opANC(c *CPU, op Operand) int {
	c.and(c.load(op))
	c.setFlagToCondition(carryFlag, c.isSetFlag(negativeFlag))
	return 0
}

// ALR: AND, then LSR A.
func opALR(c *CPU, op Operand) int {
	c.a &= c.load(op)
	c.a = c.shiftRight(c.a)
	c.setZN(c.a)
	return 0
}

// ARR: AND, then ROR A with C from bit 6 and V from bit 6 xor bit 5.
func opARR(c *CPU, op Operand) int {
	c.a &= c.load(op)
	c.a = c.a>>1 | c.flagToBit(carryFlag)<<7
	c.setZN(c.a)
	c.setFlagToCondition(carryFlag, bit.IsSet(6, c.a))
	c.setFlagToCondition(overflowFlag, bit.IsSet(6, c.a) != bit.IsSet(5, c.a))
	return 0
}

// AXS: X = (A AND X) - operand, compare style flags, no borrow in.
func opAXS(c *CPU, op Operand) int {
	value := c.load(op)
	ax := c.a & c.x
	c.compare(ax, value)
	c.x = ax - value
	return 0
}

// LAS: A, X and SP take memory AND SP.
func opLAS(c *CPU, op Operand) int {
	value := c.load(op) & c.sp
	c.a, c.x, c.sp = value, value, value
	c.setZN(value)
	return 0
}

// XAA is unstable on hardware; this uses the common 0xEE magic constant.
func opXAA(c *CPU, op Operand) int {
	c.a = (c.a | 0xEE) & c.x & c.load(op)
	c.setZN(c.a)
	return 0
}

// LXA (immediate LAX) is unstable too; treated as a plain load of A and X.
func opLXA(c *CPU, op Operand) int {
	return opLAX(c, op)
}

// storeHigh implements the SHX/SHY/AHX/TAS family: the stored value is
// ANDed with the high byte of the target address plus one.
func (c *CPU) storeHigh(op Operand, value uint8) {
	high := bit.High(op.address) + 1
	c.store(op, value&high)
}

func opSHY(c *CPU, op Operand) int { c.storeHigh(op, c.y); return 0 }
func opSHX(c *CPU, op Operand) int { c.storeHigh(op, c.x); return 0 }
func opAHX(c *CPU, op Operand) int { c.storeHigh(op, c.a&c.x); return 0 }

func opTAS(c *CPU, op Operand) int {
	c.sp = c.a & c.x
	c.storeHigh(op, c.sp)
	return 0
}

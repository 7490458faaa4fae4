package cpu

import "github.com/valerio/go-nesbie/nesbie/bit"

// Mode is the addressing mode of an instruction.
type Mode uint8

const (
	Implied Mode = iota
	Accumulator
	Immediate
	ZeroPage
	ZeroPageX
	ZeroPageY
	Relative
	Absolute
	AbsoluteX
	AbsoluteY
	Indirect
	IndexedIndirect // (zp,X)
	IndirectIndexed // (zp),Y
)

// Size returns the instruction length in bytes, opcode included.
func (m Mode) Size() int {
	switch m {
	case Implied, Accumulator:
		return 1
	case Absolute, AbsoluteX, AbsoluteY, Indirect:
		return 3
	default:
		return 2
	}
}

type operandKind uint8

const (
	operandNone operandKind = iota
	operandMemory
	operandAccumulator
	operandImmediate
)

// Operand is the resolved target of an instruction: a memory location, the
// accumulator, or an immediate byte.
type Operand struct {
	kind    operandKind
	address uint16
	value   uint8
}

// MemoryOperand returns an operand referring to a bus address.
func MemoryOperand(address uint16) Operand {
	return Operand{kind: operandMemory, address: address}
}

// AccumulatorOperand returns an operand referring to register A.
func AccumulatorOperand() Operand {
	return Operand{kind: operandAccumulator}
}

// ImmediateOperand returns an operand holding a literal byte.
func ImmediateOperand(value uint8) Operand {
	return Operand{kind: operandImmediate, value: value}
}

// load reads the operand value.
func (c *CPU) load(op Operand) uint8 {
	switch op.kind {
	case operandMemory:
		return c.bus.Read(op.address)
	case operandAccumulator:
		return c.a
	case operandImmediate:
		return op.value
	default:
		return 0
	}
}

// store writes a value back to the operand. Immediates are not writable.
func (c *CPU) store(op Operand, value uint8) {
	switch op.kind {
	case operandMemory:
		c.bus.Write(op.address, value)
	case operandAccumulator:
		c.a = value
	}
}

// resolve computes the operand for the instruction at PC, and whether an
// indexed computation crossed a page boundary.
func (c *CPU) resolve(mode Mode) (Operand, bool) {
	switch mode {
	case Accumulator:
		return AccumulatorOperand(), false
	case Immediate:
		return ImmediateOperand(c.bus.Read(c.pc + 1)), false
	case ZeroPage:
		return MemoryOperand(uint16(c.bus.Read(c.pc + 1))), false
	case ZeroPageX:
		return MemoryOperand(uint16(c.bus.Read(c.pc+1) + c.x)), false
	case ZeroPageY:
		return MemoryOperand(uint16(c.bus.Read(c.pc+1) + c.y)), false
	case Relative:
		offset := int8(c.bus.Read(c.pc + 1))
		next := c.pc + 2
		return MemoryOperand(next + uint16(int16(offset))), false
	case Absolute:
		return MemoryOperand(c.read16(c.pc + 1)), false
	case AbsoluteX:
		base := c.read16(c.pc + 1)
		address := base + uint16(c.x)
		return MemoryOperand(address), bit.PagesDiffer(base, address)
	case AbsoluteY:
		base := c.read16(c.pc + 1)
		address := base + uint16(c.y)
		return MemoryOperand(address), bit.PagesDiffer(base, address)
	case Indirect:
		pointer := c.read16(c.pc + 1)
		return MemoryOperand(c.read16Wrapped(pointer)), false
	case IndexedIndirect:
		pointer := c.bus.Read(c.pc+1) + c.x
		return MemoryOperand(c.read16Wrapped(uint16(pointer))), false
	case IndirectIndexed:
		pointer := c.bus.Read(c.pc + 1)
		base := c.read16Wrapped(uint16(pointer))
		address := base + uint16(c.y)
		return MemoryOperand(address), bit.PagesDiffer(base, address)
	default:
		return Operand{}, false
	}
}

package disasm

import (
	"fmt"

	"github.com/valerio/go-nesbie/nesbie/bit"
	"github.com/valerio/go-nesbie/nesbie/cpu"
)

// Annotate disassembles the instruction at pc in the style of CPU trace
// logs: memory operands show the effective address and the value found
// there, given the current index registers.
func Annotate(pc uint16, mem Memory, x, y uint8) DisassemblyLine {
	instr, encoded := fetch(pc, mem)
	line := DisassemblyLine{
		Address:    pc,
		Bytes:      encoded,
		Unofficial: instr.Unofficial,
		Length:     len(encoded),
	}

	plain := format(instr, pc, encoded)
	// pointer reads stay within the zero page / the page of the pointer
	peek16Wrapped := func(address uint16) uint16 {
		high := address&0xFF00 | uint16(uint8(address)+1)
		return bit.Combine(mem.Peek(high), mem.Peek(address))
	}

	switch instr.Mode {
	case cpu.ZeroPage:
		address := uint16(encoded[1])
		line.Instruction = fmt.Sprintf("%s = %02X", plain, mem.Peek(address))
	case cpu.ZeroPageX:
		address := uint16(encoded[1] + x)
		line.Instruction = fmt.Sprintf("%s @ %02X = %02X", plain, address, mem.Peek(address))
	case cpu.ZeroPageY:
		address := uint16(encoded[1] + y)
		line.Instruction = fmt.Sprintf("%s @ %02X = %02X", plain, address, mem.Peek(address))
	case cpu.Absolute:
		if instr.Name == "JMP" || instr.Name == "JSR" {
			line.Instruction = plain
			break
		}
		address := operand16(encoded)
		line.Instruction = fmt.Sprintf("%s = %02X", plain, mem.Peek(address))
	case cpu.AbsoluteX:
		address := operand16(encoded) + uint16(x)
		line.Instruction = fmt.Sprintf("%s @ %04X = %02X", plain, address, mem.Peek(address))
	case cpu.AbsoluteY:
		address := operand16(encoded) + uint16(y)
		line.Instruction = fmt.Sprintf("%s @ %04X = %02X", plain, address, mem.Peek(address))
	case cpu.Indirect:
		line.Instruction = fmt.Sprintf("%s = %04X", plain, peek16Wrapped(operand16(encoded)))
	case cpu.IndexedIndirect:
		pointer := encoded[1] + x
		address := peek16Wrapped(uint16(pointer))
		line.Instruction = fmt.Sprintf("%s @ %02X = %04X = %02X", plain, pointer, address, mem.Peek(address))
	case cpu.IndirectIndexed:
		base := peek16Wrapped(uint16(encoded[1]))
		address := base + uint16(y)
		line.Instruction = fmt.Sprintf("%s = %04X @ %04X = %02X", plain, base, address, mem.Peek(address))
	default:
		line.Instruction = plain
	}

	return line
}

package disasm

import (
	"fmt"
	"strings"

	"github.com/valerio/go-nesbie/nesbie/bit"
	"github.com/valerio/go-nesbie/nesbie/cpu"
)

// Memory is read without side effects while disassembling.
type Memory interface {
	Peek(address uint16) uint8
}

// DisassemblyLine represents a single disassembled instruction
type DisassemblyLine struct {
	Address     uint16
	Bytes       []uint8
	Instruction string
	Unofficial  bool
	Length      int
}

// HexBytes returns the encoded bytes as space separated hex.
func (l DisassemblyLine) HexBytes() string {
	parts := make([]string, len(l.Bytes))
	for i, b := range l.Bytes {
		parts[i] = fmt.Sprintf("%02X", b)
	}
	return strings.Join(parts, " ")
}

func fetch(pc uint16, mem Memory) (cpu.Instruction, []uint8) {
	opcode := mem.Peek(pc)
	instr := cpu.Lookup(opcode)
	encoded := make([]uint8, instr.Size())
	for i := range encoded {
		encoded[i] = mem.Peek(pc + uint16(i))
	}
	return instr, encoded
}

// DisassembleAt disassembles the instruction at pc in plain assembler syntax.
func DisassembleAt(pc uint16, mem Memory) DisassemblyLine {
	instr, encoded := fetch(pc, mem)
	return DisassemblyLine{
		Address:     pc,
		Bytes:       encoded,
		Instruction: format(instr, pc, encoded),
		Unofficial:  instr.Unofficial,
		Length:      len(encoded),
	}
}

// DisassembleBytes decodes the instruction at offset in a byte slice and
// returns its text and length. Operands past the end of data read as 0.
func DisassembleBytes(data []uint8, offset int) (string, int) {
	instr := cpu.Lookup(data[offset])
	encoded := make([]uint8, instr.Size())
	for i := range encoded {
		if offset+i < len(data) {
			encoded[i] = data[offset+i]
		}
	}
	return format(instr, 0, encoded), len(encoded)
}

// Range disassembles count instructions starting at pc.
func Range(pc uint16, count int, mem Memory) []DisassemblyLine {
	lines := make([]DisassemblyLine, 0, count)
	for i := 0; i < count; i++ {
		line := DisassembleAt(pc, mem)
		lines = append(lines, line)
		pc += uint16(line.Length)
	}
	return lines
}

func operand16(encoded []uint8) uint16 {
	return bit.Combine(encoded[2], encoded[1])
}

func format(instr cpu.Instruction, pc uint16, encoded []uint8) string {
	name := instr.Name
	switch instr.Mode {
	case cpu.Implied:
		return name
	case cpu.Accumulator:
		return name + " A"
	case cpu.Immediate:
		return fmt.Sprintf("%s #$%02X", name, encoded[1])
	case cpu.ZeroPage:
		return fmt.Sprintf("%s $%02X", name, encoded[1])
	case cpu.ZeroPageX:
		return fmt.Sprintf("%s $%02X,X", name, encoded[1])
	case cpu.ZeroPageY:
		return fmt.Sprintf("%s $%02X,Y", name, encoded[1])
	case cpu.Relative:
		return fmt.Sprintf("%s $%04X", name, branchTarget(pc, encoded[1]))
	case cpu.Absolute:
		return fmt.Sprintf("%s $%04X", name, operand16(encoded))
	case cpu.AbsoluteX:
		return fmt.Sprintf("%s $%04X,X", name, operand16(encoded))
	case cpu.AbsoluteY:
		return fmt.Sprintf("%s $%04X,Y", name, operand16(encoded))
	case cpu.Indirect:
		return fmt.Sprintf("%s ($%04X)", name, operand16(encoded))
	case cpu.IndexedIndirect:
		return fmt.Sprintf("%s ($%02X,X)", name, encoded[1])
	case cpu.IndirectIndexed:
		return fmt.Sprintf("%s ($%02X),Y", name, encoded[1])
	default:
		return name
	}
}

func branchTarget(pc uint16, offset uint8) uint16 {
	return pc + 2 + uint16(int16(int8(offset)))
}

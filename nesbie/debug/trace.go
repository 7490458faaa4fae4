package debug

import (
	"fmt"

	"github.com/valerio/go-nesbie/nesbie/cpu"
	"github.com/valerio/go-nesbie/nesbie/disasm"
	"github.com/valerio/go-nesbie/nesbie/video"
)

// TraceLine formats the state before executing the instruction at PC in the
// column layout of the widely used nestest.log:
//
//	C000  4C F5 C5  JMP $C5F5                       A:00 X:00 Y:00 P:24 SP:FD PPU:  0, 21 CYC:7
//
// Unofficial opcodes are marked with a '*' before the mnemonic.
func TraceLine(regs cpu.Registers, cycles uint64, ppu video.State, mem disasm.Memory) string {
	line := disasm.Annotate(regs.PC, mem, regs.X, regs.Y)
	marker := " "
	if line.Unofficial {
		marker = "*"
	}
	return fmt.Sprintf("%04X  %-8s %s%-32s%s PPU:%3d,%3d CYC:%d",
		regs.PC, line.HexBytes(), marker, line.Instruction, regs, ppu.Scanline, ppu.Dot, cycles)
}

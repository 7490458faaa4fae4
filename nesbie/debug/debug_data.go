package debug

import (
	"github.com/valerio/go-nesbie/nesbie/cpu"
	"github.com/valerio/go-nesbie/nesbie/video"
)

// CPUState contains all CPU register information for debugging
type CPUState struct {
	A, X, Y uint8
	P       uint8
	SP      uint8
	PC      uint16
	Flags   string
	Cycles  uint64
	Halted  bool
	Opcode  uint8 // last opcode fetched
}

// NewCPUState copies the debug view of a CPU.
func NewCPUState(c *cpu.CPU) *CPUState {
	regs := c.Registers()
	return &CPUState{
		A:      regs.A,
		X:      regs.X,
		Y:      regs.Y,
		P:      regs.P,
		SP:     regs.SP,
		PC:     regs.PC,
		Flags:  c.GetFlagString(),
		Cycles: c.GetCycles(),
		Halted: c.IsHalted(),
		Opcode: c.CurrentOpcode(),
	}
}

// MemorySnapshot contains a snapshot of memory for disassembly
type MemorySnapshot struct {
	StartAddr uint16
	Bytes     []uint8
}

// Peek reads from the snapshot, addresses outside it read as 0.
func (m *MemorySnapshot) Peek(address uint16) uint8 {
	offset := int(address) - int(m.StartAddr)
	if offset < 0 || offset >= len(m.Bytes) {
		return 0
	}
	return m.Bytes[offset]
}

// DebuggerState represents the current debugger state
type DebuggerState int

const (
	DebuggerRunning DebuggerState = iota
	DebuggerPaused
	DebuggerStepInstruction
	DebuggerStepFrame
)

func (s DebuggerState) String() string {
	switch s {
	case DebuggerPaused:
		return "PAUSED"
	case DebuggerStepInstruction:
		return "STEP"
	case DebuggerStepFrame:
		return "FRAME"
	default:
		return "RUNNING"
	}
}

// CompleteDebugData contains all debug information needed by debug displays
type CompleteDebugData struct {
	CPU           *CPUState
	PPU           *video.State
	OAM           *OAMData
	Memory        *MemorySnapshot
	DebuggerState DebuggerState
}

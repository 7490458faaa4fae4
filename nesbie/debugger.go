package nesbie

import (
	"log/slog"

	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/input"
	"github.com/valerio/go-nesbie/nesbie/input/action"
)

// disassembly window around PC captured for debug panels
const (
	memoryWindowBefore = 0x20
	memoryWindowAfter  = 0x40
)

// TraceLine formats the CPU state before the next instruction, nestest style.
func (c *Console) TraceLine() string {
	return debug.TraceLine(c.cpu.Registers(), c.cpu.GetCycles(), c.ppu.State(), c.bus)
}

// HandleAction applies controller 1 buttons; other actions belong to the runner.
func (c *Console) HandleAction(act action.Action, pressed bool) {
	button, ok := input.JoypadButton(act)
	if !ok {
		if act == action.EmulatorReset && pressed {
			slog.Info("Reset requested")
			c.Reset()
		}
		return
	}

	if pressed {
		c.bus.Joypad1.Press(button)
	} else {
		c.bus.Joypad1.Release(button)
	}
}

// ExtractDebugData snapshots CPU, PPU and the memory around PC.
func (c *Console) ExtractDebugData() *debug.CompleteDebugData {
	pc := c.cpu.GetPC()
	start := pc - memoryWindowBefore
	if pc < memoryWindowBefore {
		start = 0
	}

	snapshot := &debug.MemorySnapshot{StartAddr: start}
	for address := uint32(start); address < uint32(pc)+memoryWindowAfter && address <= 0xFFFF; address++ {
		snapshot.Bytes = append(snapshot.Bytes, c.bus.Peek(uint16(address)))
	}

	ppuState := c.ppu.State()
	return &debug.CompleteDebugData{
		CPU:    debug.NewCPUState(c.cpu),
		PPU:    &ppuState,
		OAM:    debug.ExtractOAMData(c.ppu.OAM(), ppuState.Scanline, c.ppu.SpriteHeight()),
		Memory: snapshot,
	}
}

package cpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/valerio/go-nesbie/nesbie/addr"
	"github.com/valerio/go-nesbie/nesbie/bit"
)

// ErrHalted is reported once the CPU has fetched an opcode with no defined
// behaviour. Only a reset brings the CPU back.
var ErrHalted = errors.New("cpu halted on illegal opcode")

// Bus provides the interface for component communication
type Bus interface {
	Read(address uint16) byte
	Write(address uint16, value byte)
}

// Flag is one of the bits in the processor status register (P).
type Flag uint8

const (
	carryFlag     Flag = 0x01
	zeroFlag      Flag = 0x02
	interruptFlag Flag = 0x04
	decimalFlag   Flag = 0x08
	breakFlag     Flag = 0x10
	unusedFlag    Flag = 0x20
	overflowFlag  Flag = 0x40
	negativeFlag  Flag = 0x80
)

const (
	powerUpStatus uint8 = 0x24
	interruptCost       = 7
)

// CPU is the main struct holding the 2A03 (6502 without decimal mode) state
type CPU struct {
	// registers
	a  uint8
	x  uint8
	y  uint8
	sp uint8
	p  uint8
	pc uint16

	// metadata
	currentOpcode uint8
	cycles        uint64
	halted        bool

	bus Bus
}

// Registers is a copy of the programmer visible registers.
type Registers struct {
	A, X, Y, SP, P uint8
	PC             uint16
}

func (r Registers) String() string {
	return fmt.Sprintf("A:%02X X:%02X Y:%02X P:%02X SP:%02X", r.A, r.X, r.Y, r.P, r.SP)
}

// New returns a CPU in its power-up state. The program counter is only
// loaded from the reset vector by Reset.
func New(bus Bus) *CPU {
	return &CPU{
		bus: bus,
		p:   powerUpStatus,
		sp:  0x00,
	}
}

// Reset runs the reset sequence: three suppressed stack pushes, interrupts
// disabled and PC loaded from the reset vector.
func (c *CPU) Reset() {
	c.sp -= 3
	c.setFlag(interruptFlag)
	c.pc = c.read16(uint16(addr.ResetVector))
	c.halted = false
	c.cycles += interruptCost
}

// Exec executes a single CPU instruction.
// Returns the amount of cycles that execution has taken, 0 if the CPU is halted.
func (c *CPU) Exec() int {
	if c.halted {
		return 0
	}

	opcode := c.bus.Read(c.pc)
	c.currentOpcode = opcode
	instruction := &instructions[opcode]

	if instruction.exec == nil {
		c.halted = true
		slog.Error("CPU halted", "opcode", fmt.Sprintf("0x%02X", opcode), "pc", fmt.Sprintf("0x%04X", c.pc))
		return 0
	}

	operand, pageCrossed := c.resolve(instruction.Mode)
	c.pc += uint16(instruction.Mode.Size())

	cycles := int(instruction.Cycles)
	if pageCrossed {
		cycles += int(instruction.PageCycles)
	}
	cycles += instruction.exec(c, operand)

	c.cycles += uint64(cycles)
	return cycles
}

// NMI runs the non-maskable interrupt entry sequence.
func (c *CPU) NMI() int {
	return c.interrupt(addr.NMIVector, c.p)
}

// IRQ runs the maskable interrupt entry sequence unconditionally. Callers
// are responsible for honoring the interrupt disable flag, see InterruptsDisabled.
func (c *CPU) IRQ() int {
	return c.interrupt(addr.IRQVector, c.p)
}

func (c *CPU) interrupt(vector addr.Vector, status uint8) int {
	c.push16(c.pc)
	c.push((status | uint8(unusedFlag)) &^ uint8(breakFlag))
	c.setFlag(interruptFlag)
	c.pc = c.read16(uint16(vector))
	c.cycles += interruptCost
	return interruptCost
}

func (c *CPU) read16(address uint16) uint16 {
	low := c.bus.Read(address)
	high := c.bus.Read(address + 1)
	return bit.Combine(high, low)
}

// read16Wrapped reads a little endian word whose high byte is fetched from the
// same page as the low byte, reproducing the indirect JMP and zero page pointer wrap.
func (c *CPU) read16Wrapped(address uint16) uint16 {
	low := c.bus.Read(address)
	high := c.bus.Read((address & 0xFF00) | uint16(uint8(address)+1))
	return bit.Combine(high, low)
}

func (c *CPU) push(value uint8) {
	if c.sp == 0x00 {
		slog.Debug("Stack pointer wrapped on push", "pc", fmt.Sprintf("0x%04X", c.pc))
	}
	c.bus.Write(addr.StackBase|uint16(c.sp), value)
	c.sp--
}

func (c *CPU) pull() uint8 {
	if c.sp == 0xFF {
		slog.Debug("Stack pointer wrapped on pull", "pc", fmt.Sprintf("0x%04X", c.pc))
	}
	c.sp++
	return c.bus.Read(addr.StackBase | uint16(c.sp))
}

func (c *CPU) push16(value uint16) {
	c.push(bit.High(value))
	c.push(bit.Low(value))
}

func (c *CPU) pull16() uint16 {
	low := c.pull()
	high := c.pull()
	return bit.Combine(high, low)
}

func (c *CPU) setFlag(flag Flag) {
	c.p |= uint8(flag)
}

func (c *CPU) resetFlag(flag Flag) {
	c.p &= uint8(flag ^ 0xFF)
}

func (c CPU) isSetFlag(flag Flag) bool {
	return c.p&uint8(flag) != 0
}

// flagToBit will return 1 if the passed flag is set, 0 otherwise
func (c CPU) flagToBit(flag Flag) uint8 {
	if c.isSetFlag(flag) {
		return 1
	}

	return 0
}

func (c *CPU) setFlagToCondition(flag Flag, condition bool) {
	if !condition {
		c.resetFlag(flag)
		return
	}

	c.setFlag(flag)
}

// setZN sets the zero and negative flags from a result value.
func (c *CPU) setZN(value uint8) {
	c.setFlagToCondition(zeroFlag, value == 0)
	c.setFlagToCondition(negativeFlag, value&0x80 != 0)
}

// Status returns the P register as software would observe it, bit 5 always set.
func (c *CPU) Status() uint8 { return c.p | uint8(unusedFlag) }

// SetStatus loads P, keeping bit 5 set and discarding the break bit.
func (c *CPU) SetStatus(value uint8) {
	c.p = (value | uint8(unusedFlag)) &^ uint8(breakFlag)
}

// Registers returns a copy of the current register file.
func (c *CPU) Registers() Registers {
	return Registers{A: c.a, X: c.x, Y: c.y, SP: c.sp, P: c.Status(), PC: c.pc}
}

func (c *CPU) GetPC() uint16       { return c.pc }
func (c *CPU) SetPC(pc uint16)     { c.pc = pc }
func (c *CPU) GetCycles() uint64   { return c.cycles }
func (c *CPU) IsHalted() bool      { return c.halted }
func (c *CPU) CurrentOpcode() byte { return c.currentOpcode }

// InterruptsDisabled reports whether the I flag is set, masking IRQs.
func (c *CPU) InterruptsDisabled() bool { return c.isSetFlag(interruptFlag) }

// GetFlagString returns a human-readable representation of the status register
func (c *CPU) GetFlagString() string {
	const names = "NV-BDIZC"
	flags := make([]byte, 8)
	status := c.Status()
	for i := 0; i < 8; i++ {
		if bit.IsSet(uint8(7-i), status) {
			flags[i] = names[i]
		} else {
			flags[i] = '-'
		}
	}
	return string(flags)
}

package nesbie

import (
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/valerio/go-nesbie/nesbie/audio"
	"github.com/valerio/go-nesbie/nesbie/cpu"
	"github.com/valerio/go-nesbie/nesbie/memory"
	"github.com/valerio/go-nesbie/nesbie/video"
)

// ErrCPUHalted is returned once the CPU has locked up on an illegal opcode.
// Only Reset recovers from it.
var ErrCPUHalted = fmt.Errorf("console halted: %w", cpu.ErrHalted)

// ErrStopped is returned after Stop has been called.
var ErrStopped = errors.New("console stopped")

const (
	dotsPerCycle    = 3
	lastVisibleLine = 239
)

// Console wires the CPU, PPU, APU and cartridge together and drives them at
// the NTSC clock ratio.
type Console struct {
	cpu    *cpu.CPU
	ppu    *video.PPU
	apu    *audio.APU
	bus    *memory.Bus
	mapper memory.Mapper
	ticker memory.ScanlineTicker // nil when the board has no scanline counter

	dma       dma
	mapperIRQ bool
	cycles    uint64

	stopped atomic.Bool
}

// New builds a console around a cartridge and runs the reset sequence.
func New(cart *memory.Cartridge) (*Console, error) {
	mapper, err := memory.NewMapper(cart)
	if err != nil {
		return nil, fmt.Errorf("failed to create mapper: %w", err)
	}

	c := &Console{
		ppu:    video.New(mapper),
		apu:    audio.New(),
		mapper: mapper,
	}
	c.ticker, _ = mapper.(memory.ScanlineTicker)
	c.bus = memory.NewBus(c.ppu, c.apu, mapper)
	c.bus.OnOAMDMA(c.dma.request)
	c.cpu = cpu.New(c.bus)

	c.Reset()
	return c, nil
}

// NewWithFile loads an iNES file and builds a console for it.
func NewWithFile(path string) (*Console, error) {
	cart, err := memory.LoadCartridgeFile(path)
	if err != nil {
		return nil, err
	}

	slog.Info("Loaded cartridge", "path", path, "mapper", cart.MapperID,
		"prg", len(cart.PRG), "chr", len(cart.CHR), "mirroring", cart.Mirroring.String())
	return New(cart)
}

// NewIdle builds a console around an empty cartridge that spins on a JMP
// at $8000, for test patterns and backend checks without a ROM.
func NewIdle() (*Console, error) {
	prg := make([]uint8, 0x4000)
	copy(prg, []uint8{0x4C, 0x00, 0x80})
	prg[0x3FFC], prg[0x3FFD] = 0x00, 0x80
	return New(memory.NewCartridge(prg, nil, 0, memory.MirrorHorizontal))
}

// Reset runs the CPU reset sequence. The PPU keeps running through it, so
// the 7 reset cycles also advance the raster by 21 dots.
func (c *Console) Reset() {
	before := c.cpu.GetCycles()
	c.cpu.Reset()
	c.dma = dma{}
	c.mapperIRQ = false
	c.clock(int(c.cpu.GetCycles() - before))
	slog.Debug("Console reset", "pc", fmt.Sprintf("0x%04X", c.cpu.GetPC()))
}

// Step runs one scheduler iteration: a CPU instruction, or a single cycle
// stolen by OAM DMA, followed by interrupt delivery at the instruction
// boundary and the matching PPU and APU clocks. Returns the CPU cycles spent.
func (c *Console) Step() (int, error) {
	if c.stopped.Load() {
		return 0, ErrStopped
	}

	c.dma.start(c.cycles)

	var cycles int
	if c.dma.active {
		cycles = 1
	} else {
		cycles = c.cpu.Exec()
		if c.cpu.IsHalted() {
			return 0, ErrCPUHalted
		}
	}
	cycles += c.serviceInterrupts()

	c.clock(cycles)
	return cycles, nil
}

// serviceInterrupts runs at most one interrupt entry. NMI wins over IRQ, and
// IRQ is held off while the I flag is set.
func (c *Console) serviceInterrupts() int {
	if c.mapper.PollIRQ() {
		c.mapperIRQ = true
	}

	if c.ppu.PollNMI() {
		return c.cpu.NMI()
	}

	if (c.mapperIRQ || c.apu.PollIRQ()) && !c.cpu.InterruptsDisabled() {
		c.mapperIRQ = false
		return c.cpu.IRQ()
	}
	return 0
}

// clock advances everything but the CPU by the given number of CPU cycles.
func (c *Console) clock(cycles int) {
	for i := 0; i < cycles; i++ {
		if c.dma.active {
			c.dma.transfer(c.bus)
		}
		for d := 0; d < dotsPerCycle; d++ {
			c.tickScanline()
			c.ppu.Step()
		}
		c.apu.TickClock()
		c.cycles++
	}
}

// tickScanline clocks the mapper's scanline counter when the PPU is about to
// process the dot the mapper watches, on rendering lines only.
func (c *Console) tickScanline() {
	if c.ticker == nil || !c.ppu.RenderingEnabled() {
		return
	}
	scanline, dot := c.ppu.Position()
	// visible lines plus the pre-render line (-1), as the MMC3 counter sees
	// A12 rise on every rendering line
	if scanline <= lastVisibleLine && dot == c.ticker.ScanlineDot() {
		c.ticker.TickScanline()
	}
}

// RunFrame steps until the PPU starts its next VBlank.
func (c *Console) RunFrame() error {
	frame := c.ppu.Frame()
	for c.ppu.Frame() == frame {
		if _, err := c.Step(); err != nil {
			return err
		}
	}
	return nil
}

// RunUntilFrame is RunFrame under the name the backends use.
func (c *Console) RunUntilFrame() error {
	return c.RunFrame()
}

// Stop makes the next Step return ErrStopped. Safe to call from any goroutine.
func (c *Console) Stop() {
	c.stopped.Store(true)
}

// Stopped reports whether Stop has been called.
func (c *Console) Stopped() bool {
	return c.stopped.Load()
}

// Cycles returns the number of CPU cycles elapsed since power-up.
func (c *Console) Cycles() uint64 { return c.cycles }

// Frame returns the number of frames completed.
func (c *Console) Frame() uint64 { return c.ppu.Frame() }

// CPU exposes the processor, for tracing and tests.
func (c *Console) CPU() *cpu.CPU { return c.cpu }

// PPU exposes the picture unit.
func (c *Console) PPU() *video.PPU { return c.ppu }

// Bus exposes the CPU address space.
func (c *Console) Bus() *memory.Bus { return c.bus }

// Audio exposes the APU sample stream.
func (c *Console) Audio() audio.Provider { return c.apu }

// GetCurrentFrame returns the double buffered output frame.
func (c *Console) GetCurrentFrame() *video.FrameBuffer { return c.ppu.FrameBuffer() }

// Joypad returns controller 1 or 2.
func (c *Console) Joypad(port int) *memory.Joypad {
	if port == 2 {
		return c.bus.Joypad2
	}
	return c.bus.Joypad1
}

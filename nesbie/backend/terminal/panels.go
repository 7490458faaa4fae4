package terminal

import (
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"

	"github.com/valerio/go-nesbie/nesbie/backend/terminal/render"
	"github.com/valerio/go-nesbie/nesbie/debug"
	"github.com/valerio/go-nesbie/nesbie/disasm"
	"github.com/valerio/go-nesbie/nesbie/video"
)

var (
	borderStyle  = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	titleStyle   = tcell.StyleDefault.Foreground(tcell.ColorYellow)
	regStyle     = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	disasmStyle  = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	currentStyle = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

func (t *Backend) render(frame *video.FrameBuffer) {
	termWidth, termHeight := t.screen.Size()
	cols, rows := render.CellSize(t.scale)

	t.screen.Clear()
	if termWidth < cols+2 || termHeight < rows+2 {
		msg := fmt.Sprintf("Terminal too small! Need at least %dx%d", cols+2, rows+2)
		t.drawText(0, termHeight/2, termWidth, msg, tcell.StyleDefault.Foreground(tcell.ColorRed))
		return
	}

	dividerX := cols + 1
	panelX := dividerX + 2
	panelWidth := termWidth - panelX

	t.drawBorders(termWidth, termHeight, dividerX)
	t.drawFrame(frame, cols, rows)

	logsY := 1
	if t.config.ShowDebug && t.debugProvider != nil && panelWidth >= panelMinWidth {
		if data := t.debugProvider.ExtractDebugData(); data != nil {
			t.drawRegisters(data, panelX, 1, panelWidth)
			t.drawDisassembly(data, panelX, registerHeight+2, panelWidth)
			logsY = registerHeight + disasmHeight + 3
		}
	}
	t.drawLogs(panelX, logsY, panelWidth, termHeight-1)
}

func (t *Backend) drawBorders(termWidth, termHeight, dividerX int) {
	for y := 0; y < termHeight-1; y++ {
		t.screen.SetContent(dividerX, y, '│', nil, borderStyle)
	}

	title := " " + t.config.Title + " "
	if t.config.TestPattern {
		title = " Test Pattern: Palette "
	}
	t.drawText(1, 0, dividerX-1, title, titleStyle)

	help := " Space=pause F=frame N=step R=reset F9=snapshot F10=debug +/- logs Q=quit "
	t.drawText(0, termHeight-1, termWidth, help, borderStyle)
}

// drawFrame packs two pixel rows per cell with the upper half block glyph,
// using the frame's own RGB colors.
func (t *Backend) drawFrame(frame *video.FrameBuffer, cols, rows int) {
	pixels := frame.ToSlice()
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			top, bottom := render.CellPixels(pixels, col, row, t.scale)
			style := tcell.StyleDefault.Foreground(tcellColor(top)).Background(tcellColor(bottom))
			t.screen.SetContent(col, row+1, render.HalfBlock(top, bottom), nil, style)
		}
	}
}

func tcellColor(c video.Color) tcell.Color {
	r, g, b := c.RGB()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

func (t *Backend) drawRegisters(data *debug.CompleteDebugData, x, y, width int) {
	if data.CPU == nil {
		return
	}
	cpu := data.CPU

	lines := []string{
		fmt.Sprintf("Status: %s", data.DebuggerState),
		fmt.Sprintf("A:%02X X:%02X Y:%02X SP:%02X", cpu.A, cpu.X, cpu.Y, cpu.SP),
		fmt.Sprintf("PC:%04X P:%02X [%s]", cpu.PC, cpu.P, cpu.Flags),
		fmt.Sprintf("Cycles: %d", cpu.Cycles),
	}
	if cpu.Halted {
		lines = append(lines, fmt.Sprintf("CPU HALTED on opcode %02X", cpu.Opcode))
	}

	if ppu := data.PPU; ppu != nil {
		lines = append(lines,
			"",
			fmt.Sprintf("Frame: %d  Line: %d  Dot: %d", ppu.Frame, ppu.Scanline, ppu.Dot),
			fmt.Sprintf("CTRL:%02X MASK:%02X STATUS:%02X", ppu.Ctrl, ppu.Mask, ppu.Status),
			fmt.Sprintf("v:%04X t:%04X x:%d w:%t", ppu.V, ppu.T, ppu.FineX, ppu.WriteToggle),
		)
	}

	if oam := data.OAM; oam != nil {
		lines = append(lines, fmt.Sprintf("Sprites on line: %d (%dpx)", oam.ActiveSprites, oam.SpriteHeight))
		for i := range oam.Sprites {
			if len(lines) >= registerHeight {
				break
			}
			if oam.Sprites[i].IsVisible {
				lines = append(lines, oam.Sprites[i].String())
			}
		}
	}

	for i, line := range lines {
		if i >= registerHeight {
			break
		}
		t.drawText(x, y+i, width, line, regStyle)
	}
}

func (t *Backend) drawDisassembly(data *debug.CompleteDebugData, x, y, width int) {
	if data.CPU == nil || data.Memory == nil {
		return
	}

	t.drawText(x, y-1, width, " Disassembly ", titleStyle)
	pc := data.CPU.PC
	for i, line := range disassemblyAround(data.Memory, pc, disasmHeight) {
		prefix := "  "
		style := disasmStyle
		if line.Address == pc {
			prefix = "→ "
			style = currentStyle
		}
		text := fmt.Sprintf("%s%04X  %-8s  %s", prefix, line.Address, line.HexBytes(), line.Instruction)
		t.drawText(x, y+i, width, text, style)
	}
}

// disassemblyAround returns count lines with pc near the middle. Decoding
// starts at the beginning of the snapshot, which may not be an instruction
// boundary; when that never lines up with pc, lines start at pc instead.
func disassemblyAround(mem *debug.MemorySnapshot, pc uint16, count int) []disasm.DisassemblyLine {
	end := uint32(mem.StartAddr) + uint32(len(mem.Bytes))

	var lines []disasm.DisassemblyLine
	pcIndex := -1
	for address := uint32(mem.StartAddr); address < end; {
		line := disasm.DisassembleAt(uint16(address), mem)
		if line.Address == pc {
			pcIndex = len(lines)
		}
		lines = append(lines, line)
		address += uint32(line.Length)

		if pcIndex >= 0 && len(lines)-pcIndex > count {
			break
		}
	}

	if pcIndex < 0 {
		return disasm.Range(pc, count, mem)
	}

	start := pcIndex - count/2
	if start < 0 {
		start = 0
	}
	stop := start + count
	if stop > len(lines) {
		stop = len(lines)
	}
	return lines[start:stop]
}

func (t *Backend) drawLogs(x, y, width, bottom int) {
	height := bottom - y - 1
	if width <= 0 || height <= 0 {
		return
	}

	t.drawText(x, y, width, fmt.Sprintf(" Logs [%s] ", t.logLevel), titleStyle)

	shown := 0
	for _, entry := range t.logBuffer.GetRecent(logCapacity) {
		if shown >= height {
			break
		}
		if entry.Level < t.logLevel {
			continue
		}

		style := tcell.StyleDefault.Foreground(tcell.ColorBlue)
		switch {
		case entry.Level >= slog.LevelError:
			style = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
		case entry.Level >= slog.LevelWarn:
			style = tcell.StyleDefault.Foreground(tcell.ColorYellow)
		case entry.Level < slog.LevelInfo:
			style = tcell.StyleDefault.Foreground(tcell.ColorGray)
		}

		text := render.FormatLogEntry(entry)
		if len(text) > width && width > 3 {
			text = text[:width-3] + "..."
		}
		t.drawText(x, y+1+shown, width, text, style)
		shown++
	}
}

// drawText writes a single line clipped to width cells.
func (t *Backend) drawText(x, y, width int, text string, style tcell.Style) {
	i := 0
	for _, ch := range text {
		if i >= width {
			return
		}
		t.screen.SetContent(x+i, y, ch, nil, style)
		i++
	}
}

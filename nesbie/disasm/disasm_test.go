package disasm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type flatMemory map[uint16]uint8

func (m flatMemory) Peek(address uint16) uint8 { return m[address] }

func program(start uint16, bytes ...uint8) flatMemory {
	mem := flatMemory{}
	for i, b := range bytes {
		mem[start+uint16(i)] = b
	}
	return mem
}

func TestDisassembleAt(t *testing.T) {
	testCases := []struct {
		desc   string
		bytes  []uint8
		want   string
		length int
	}{
		{desc: "implied", bytes: []uint8{0xEA}, want: "NOP", length: 1},
		{desc: "accumulator", bytes: []uint8{0x4A}, want: "LSR A", length: 1},
		{desc: "immediate", bytes: []uint8{0xA9, 0x10}, want: "LDA #$10", length: 2},
		{desc: "zero page", bytes: []uint8{0x85, 0x20}, want: "STA $20", length: 2},
		{desc: "zero page x", bytes: []uint8{0xB5, 0x20}, want: "LDA $20,X", length: 2},
		{desc: "zero page y", bytes: []uint8{0xB6, 0x20}, want: "LDX $20,Y", length: 2},
		{desc: "absolute", bytes: []uint8{0x4C, 0xF5, 0xC5}, want: "JMP $C5F5", length: 3},
		{desc: "absolute x", bytes: []uint8{0xBD, 0x00, 0x02}, want: "LDA $0200,X", length: 3},
		{desc: "absolute y", bytes: []uint8{0xB9, 0x00, 0x02}, want: "LDA $0200,Y", length: 3},
		{desc: "indirect", bytes: []uint8{0x6C, 0xFF, 0x30}, want: "JMP ($30FF)", length: 3},
		{desc: "indexed indirect", bytes: []uint8{0xA1, 0x80}, want: "LDA ($80,X)", length: 2},
		{desc: "indirect indexed", bytes: []uint8{0xB1, 0x89}, want: "LDA ($89),Y", length: 2},
		{desc: "branch forward", bytes: []uint8{0xB0, 0x04}, want: "BCS $C006", length: 2},
		{desc: "branch backward", bytes: []uint8{0xD0, 0xFE}, want: "BNE $C000", length: 2},
		{desc: "unofficial", bytes: []uint8{0xA7, 0x10}, want: "LAX $10", length: 2},
		{desc: "halt", bytes: []uint8{0x02}, want: "KIL", length: 1},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			line := DisassembleAt(0xC000, program(0xC000, tC.bytes...))
			assert.Equal(t, tC.want, line.Instruction)
			assert.Equal(t, tC.length, line.Length)
			assert.Equal(t, tC.bytes, line.Bytes)
		})
	}
}

func TestAnnotate(t *testing.T) {
	testCases := []struct {
		desc string
		mem  flatMemory
		x, y uint8
		want string
	}{
		{
			desc: "zero page value",
			mem:  flatMemory{0xC000: 0x85, 0xC001: 0x00, 0x0000: 0x33},
			want: "STA $00 = 33",
		},
		{
			desc: "zero page x wraps",
			mem:  flatMemory{0xC000: 0xB5, 0xC001: 0xFF, 0x0001: 0x44},
			x:    2,
			want: "LDA $FF,X @ 01 = 44",
		},
		{
			desc: "jump has no value",
			mem:  flatMemory{0xC000: 0x20, 0xC001: 0x00, 0xC002: 0x80},
			want: "JSR $8000",
		},
		{
			desc: "absolute value",
			mem:  flatMemory{0xC000: 0xAD, 0xC001: 0x00, 0xC002: 0x06, 0x0600: 0x7F},
			want: "LDA $0600 = 7F",
		},
		{
			desc: "absolute y",
			mem:  flatMemory{0xC000: 0xB9, 0xC001: 0xFF, 0xC002: 0x06, 0x0700: 0x01},
			y:    1,
			want: "LDA $06FF,Y @ 0700 = 01",
		},
		{
			desc: "indirect jump wraps in page",
			mem:  flatMemory{0xC000: 0x6C, 0xC001: 0xFF, 0xC002: 0x02, 0x02FF: 0x80, 0x0200: 0x50},
			want: "JMP ($02FF) = 5080",
		},
		{
			desc: "indexed indirect",
			mem:  flatMemory{0xC000: 0xA1, 0xC001: 0x80, 0x0082: 0x00, 0x0083: 0x02, 0x0200: 0x5A},
			x:    2,
			want: "LDA ($80,X) @ 82 = 0200 = 5A",
		},
		{
			desc: "indirect indexed",
			mem:  flatMemory{0xC000: 0xB1, 0xC001: 0x89, 0x0089: 0x00, 0x008A: 0x03, 0x0310: 0x89},
			y:    0x10,
			want: "LDA ($89),Y = 0300 @ 0310 = 89",
		},
	}
	for _, tC := range testCases {
		t.Run(tC.desc, func(t *testing.T) {
			line := Annotate(0xC000, tC.mem, tC.x, tC.y)
			assert.Equal(t, tC.want, line.Instruction)
		})
	}
}

func TestDisassembleBytes(t *testing.T) {
	data := []uint8{0xA9, 0x01, 0x8D, 0x00}
	text, length := DisassembleBytes(data, 0)
	assert.Equal(t, "LDA #$01", text)
	assert.Equal(t, 2, length)

	text, length = DisassembleBytes(data, 2)
	assert.Equal(t, "STA $0000", text, "truncated operand reads as zero")
	assert.Equal(t, 3, length)
}

func TestRangeAndHexBytes(t *testing.T) {
	mem := program(0x8000, 0xA2, 0x05, 0xCA, 0xD0, 0xFD)
	lines := Range(0x8000, 3, mem)

	assert.Len(t, lines, 3)
	assert.Equal(t, uint16(0x8002), lines[1].Address)
	assert.Equal(t, "DEX", lines[1].Instruction)
	assert.Equal(t, "BNE $8002", lines[2].Instruction)
	assert.Equal(t, "D0 FD", lines[2].HexBytes())
}

package cpu

// Instruction describes one entry of the opcode table.
type Instruction struct {
	Name       string
	Mode       Mode
	Cycles     uint8
	PageCycles uint8 // added when an indexed address crosses a page
	Unofficial bool

	exec func(*CPU, Operand) int
}

// Size is the encoded length of the instruction.
func (i Instruction) Size() int { return i.Mode.Size() }

// Defined reports whether executing the opcode does anything but halt the CPU.
func (i Instruction) Defined() bool { return i.exec != nil }

// Lookup returns the table entry for an opcode.
func Lookup(opcode byte) Instruction {
	return instructions[opcode]
}

func official(name string, mode Mode, cycles, page uint8, exec func(*CPU, Operand) int) Instruction {
	return Instruction{Name: name, Mode: mode, Cycles: cycles, PageCycles: page, exec: exec}
}

func unofficial(name string, mode Mode, cycles, page uint8, exec func(*CPU, Operand) int) Instruction {
	return Instruction{Name: name, Mode: mode, Cycles: cycles, PageCycles: page, Unofficial: true, exec: exec}
}

// kil opcodes lock up the processor.
var kil = Instruction{Name: "KIL", Mode: Implied, Unofficial: true}

var instructions = [256]Instruction{
	0x00: official("BRK", Implied, 7, 0, opBRK),
	0x01: official("ORA", IndexedIndirect, 6, 0, opORA),
	0x02: kil,
	0x03: unofficial("SLO", IndexedIndirect, 8, 0, opSLO),
	0x04: unofficial("NOP", ZeroPage, 3, 0, opNOP),
	0x05: official("ORA", ZeroPage, 3, 0, opORA),
	0x06: official("ASL", ZeroPage, 5, 0, opASL),
	0x07: unofficial("SLO", ZeroPage, 5, 0, opSLO),
	0x08: official("PHP", Implied, 3, 0, opPHP),
	0x09: official("ORA", Immediate, 2, 0, opORA),
	0x0A: official("ASL", Accumulator, 2, 0, opASL),
	0x0B: unofficial("ANC", Immediate, 2, 0, opANC),
	0x0C: unofficial("NOP", Absolute, 4, 0, opNOP),
	0x0D: official("ORA", Absolute, 4, 0, opORA),
	0x0E: official("ASL", Absolute, 6, 0, opASL),
	0x0F: unofficial("SLO", Absolute, 6, 0, opSLO),

	0x10: official("BPL", Relative, 2, 0, opBPL),
	0x11: official("ORA", IndirectIndexed, 5, 1, opORA),
	0x12: kil,
	0x13: unofficial("SLO", IndirectIndexed, 8, 0, opSLO),
	0x14: unofficial("NOP", ZeroPageX, 4, 0, opNOP),
	0x15: official("ORA", ZeroPageX, 4, 0, opORA),
	0x16: official("ASL", ZeroPageX, 6, 0, opASL),
	0x17: unofficial("SLO", ZeroPageX, 6, 0, opSLO),
	0x18: official("CLC", Implied, 2, 0, opCLC),
	0x19: official("ORA", AbsoluteY, 4, 1, opORA),
	0x1A: unofficial("NOP", Implied, 2, 0, opNOP),
	0x1B: unofficial("SLO", AbsoluteY, 7, 0, opSLO),
	0x1C: unofficial("NOP", AbsoluteX, 4, 1, opNOP),
	0x1D: official("ORA", AbsoluteX, 4, 1, opORA),
	0x1E: official("ASL", AbsoluteX, 7, 0, opASL),
	0x1F: unofficial("SLO", AbsoluteX, 7, 0, opSLO),

	0x20: official("JSR", Absolute, 6, 0, opJSR),
	0x21: official("AND", IndexedIndirect, 6, 0, opAND),
	0x22: kil,
	0x23: unofficial("RLA", IndexedIndirect, 8, 0, opRLA),
	0x24: official("BIT", ZeroPage, 3, 0, opBIT),
	0x25: official("AND", ZeroPage, 3, 0, opAND),
	0x26: official("ROL", ZeroPage, 5, 0, opROL),
	0x27: unofficial("RLA", ZeroPage, 5, 0, opRLA),
	0x28: official("PLP", Implied, 4, 0, opPLP),
	0x29: official("AND", Immediate, 2, 0, opAND),
	0x2A: official("ROL", Accumulator, 2, 0, opROL),
	0x2B: unofficial("ANC", Immediate, 2, 0, opANC),
	0x2C: official("BIT", Absolute, 4, 0, opBIT),
	0x2D: official("AND", Absolute, 4, 0, opAND),
	0x2E: official("ROL", Absolute, 6, 0, opROL),
	0x2F: unofficial("RLA", Absolute, 6, 0, opRLA),

	0x30: official("BMI", Relative, 2, 0, opBMI),
	0x31: official("AND", IndirectIndexed, 5, 1, opAND),
	0x32: kil,
	0x33: unofficial("RLA", IndirectIndexed, 8, 0, opRLA),
	0x34: unofficial("NOP", ZeroPageX, 4, 0, opNOP),
	0x35: official("AND", ZeroPageX, 4, 0, opAND),
	0x36: official("ROL", ZeroPageX, 6, 0, opROL),
	0x37: unofficial("RLA", ZeroPageX, 6, 0, opRLA),
	0x38: official("SEC", Implied, 2, 0, opSEC),
	0x39: official("AND", AbsoluteY, 4, 1, opAND),
	0x3A: unofficial("NOP", Implied, 2, 0, opNOP),
	0x3B: unofficial("RLA", AbsoluteY, 7, 0, opRLA),
	0x3C: unofficial("NOP", AbsoluteX, 4, 1, opNOP),
	0x3D: official("AND", AbsoluteX, 4, 1, opAND),
	0x3E: official("ROL", AbsoluteX, 7, 0, opROL),
	0x3F: unofficial("RLA", AbsoluteX, 7, 0, opRLA),

	0x40: official("RTI", Implied, 6, 0, opRTI),
	0x41: official("EOR", IndexedIndirect, 6, 0, opEOR),
	0x42: kil,
	0x43: unofficial("SRE", IndexedIndirect, 8, 0, opSRE),
	0x44: unofficial("NOP", ZeroPage, 3, 0, opNOP),
	0x45: official("EOR", ZeroPage, 3, 0, opEOR),
	0x46: official("LSR", ZeroPage, 5, 0, opLSR),
	0x47: unofficial("SRE", ZeroPage, 5, 0, opSRE),
	0x48: official("PHA", Implied, 3, 0, opPHA),
	0x49: official("EOR", Immediate, 2, 0, opEOR),
	0x4A: official("LSR", Accumulator, 2, 0, opLSR),
	0x4B: unofficial("ALR", Immediate, 2, 0, opALR),
	0x4C: official("JMP", Absolute, 3, 0, opJMP),
	0x4D: official("EOR", Absolute, 4, 0, opEOR),
	0x4E: official("LSR", Absolute, 6, 0, opLSR),
	0x4F: unofficial("SRE", Absolute, 6, 0, opSRE),

	0x50: official("BVC", Relative, 2, 0, opBVC),
	0x51: official("EOR", IndirectIndexed, 5, 1, opEOR),
	0x52: kil,
	0x53: unofficial("SRE", IndirectIndexed, 8, 0, opSRE),
	0x54: unofficial("NOP", ZeroPageX, 4, 0, opNOP),
	0x55: official("EOR", ZeroPageX, 4, 0, opEOR),
	0x56: official("LSR", ZeroPageX, 6, 0, opLSR),
	0x57: unofficial("SRE", ZeroPageX, 6, 0, opSRE),
	0x58: official("CLI", Implied, 2, 0, opCLI),
	0x59: official("EOR", AbsoluteY, 4, 1, opEOR),
	0x5A: unofficial("NOP", Implied, 2, 0, opNOP),
	0x5B: unofficial("SRE", AbsoluteY, 7, 0, opSRE),
	0x5C: unofficial("NOP", AbsoluteX, 4, 1, opNOP),
	0x5D: official("EOR", AbsoluteX, 4, 1, opEOR),
	0x5E: official("LSR", AbsoluteX, 7, 0, opLSR),
	0x5F: unofficial("SRE", AbsoluteX, 7, 0, opSRE),

	0x60: official("RTS", Implied, 6, 0, opRTS),
	0x61: official("ADC", IndexedIndirect, 6, 0, opADC),
	0x62: kil,
	0x63: unofficial("RRA", IndexedIndirect, 8, 0, opRRA),
	0x64: unofficial("NOP", ZeroPage, 3, 0, opNOP),
	0x65: official("ADC", ZeroPage, 3, 0, opADC),
	0x66: official("ROR", ZeroPage, 5, 0, opROR),
	0x67: unofficial("RRA", ZeroPage, 5, 0, opRRA),
	0x68: official("PLA", Implied, 4, 0, opPLA),
	0x69: official("ADC", Immediate, 2, 0, opADC),
	0x6A: official("ROR", Accumulator, 2, 0, opROR),
	0x6B: unofficial("ARR", Immediate, 2, 0, opARR),
	0x6C: official("JMP", Indirect, 5, 0, opJMP),
	0x6D: official("ADC", Absolute, 4, 0, opADC),
	0x6E: official("ROR", Absolute, 6, 0, opROR),
	0x6F: unofficial("RRA", Absolute, 6, 0, opRRA),

	0x70: official("BVS", Relative, 2, 0, opBVS),
	0x71: official("ADC", IndirectIndexed, 5, 1, opADC),
	0x72: kil,
	0x73: unofficial("RRA", IndirectIndexed, 8, 0, opRRA),
	0x74: unofficial("NOP", ZeroPageX, 4, 0, opNOP),
	0x75: official("ADC", ZeroPageX, 4, 0, opADC),
	0x76: official("ROR", ZeroPageX, 6, 0, opROR),
	0x77: unofficial("RRA", ZeroPageX, 6, 0, opRRA),
	0x78: official("SEI", Implied, 2, 0, opSEI),
	0x79: official("ADC", AbsoluteY, 4, 1, opADC),
	0x7A: unofficial("NOP", Implied, 2, 0, opNOP),
	0x7B: unofficial("RRA", AbsoluteY, 7, 0, opRRA),
	0x7C: unofficial("NOP", AbsoluteX, 4, 1, opNOP),
	0x7D: official("ADC", AbsoluteX, 4, 1, opADC),
	0x7E: official("ROR", AbsoluteX, 7, 0, opROR),
	0x7F: unofficial("RRA", AbsoluteX, 7, 0, opRRA),

	0x80: unofficial("NOP", Immediate, 2, 0, opNOP),
	0x81: official("STA", IndexedIndirect, 6, 0, opSTA),
	0x82: unofficial("NOP", Immediate, 2, 0, opNOP),
	0x83: unofficial("SAX", IndexedIndirect, 6, 0, opSAX),
	0x84: official("STY", ZeroPage, 3, 0, opSTY),
	0x85: official("STA", ZeroPage, 3, 0, opSTA),
	0x86: official("STX", ZeroPage, 3, 0, opSTX),
	0x87: unofficial("SAX", ZeroPage, 3, 0, opSAX),
	0x88: official("DEY", Implied, 2, 0, opDEY),
	0x89: unofficial("NOP", Immediate, 2, 0, opNOP),
	0x8A: official("TXA", Implied, 2, 0, opTXA),
	0x8B: unofficial("XAA", Immediate, 2, 0, opXAA),
	0x8C: official("STY", Absolute, 4, 0, opSTY),
	0x8D: official("STA", Absolute, 4, 0, opSTA),
	0x8E: official("STX", Absolute, 4, 0, opSTX),
	0x8F: unofficial("SAX", Absolute, 4, 0, opSAX),

	0x90: official("BCC", Relative, 2, 0, opBCC),
	0x91: official("STA", IndirectIndexed, 6, 0, opSTA),
	0x92: kil,
	0x93: unofficial("AHX", IndirectIndexed, 6, 0, opAHX),
	0x94: official("STY", ZeroPageX, 4, 0, opSTY),
	0x95: official("STA", ZeroPageX, 4, 0, opSTA),
	0x96: official("STX", ZeroPageY, 4, 0, opSTX),
	0x97: unofficial("SAX", ZeroPageY, 4, 0, opSAX),
	0x98: official("TYA", Implied, 2, 0, opTYA),
	0x99: official("STA", AbsoluteY, 5, 0, opSTA),
	0x9A: official("TXS", Implied, 2, 0, opTXS),
	0x9B: unofficial("TAS", AbsoluteY, 5, 0, opTAS),
	0x9C: unofficial("SHY", AbsoluteX, 5, 0, opSHY),
	0x9D: official("STA", AbsoluteX, 5, 0, opSTA),
	0x9E: unofficial("SHX", AbsoluteY, 5, 0, opSHX),
	0x9F: unofficial("AHX", AbsoluteY, 5, 0, opAHX),

	0xA0: official("LDY", Immediate, 2, 0, opLDY),
	0xA1: official("LDA", IndexedIndirect, 6, 0, opLDA),
	0xA2: official("LDX", Immediate, 2, 0, opLDX),
	0xA3: unofficial("LAX", IndexedIndirect, 6, 0, opLAX),
	0xA4: official("LDY", ZeroPage, 3, 0, opLDY),
	0xA5: official("LDA", ZeroPage, 3, 0, opLDA),
	0xA6: official("LDX", ZeroPage, 3, 0, opLDX),
	0xA7: unofficial("LAX", ZeroPage, 3, 0, opLAX),
	0xA8: official("TAY", Implied, 2, 0, opTAY),
	0xA9: official("LDA", Immediate, 2, 0, opLDA),
	0xAA: official("TAX", Implied, 2, 0, opTAX),
	0xAB: unofficial("LAX", Immediate, 2, 0, opLXA),
	0xAC: official("LDY", Absolute, 4, 0, opLDY),
	0xAD: official("LDA", Absolute, 4, 0, opLDA),
	0xAE: official("LDX", Absolute, 4, 0, opLDX),
	0xAF: unofficial("LAX", Absolute, 4, 0, opLAX),

	0xB0: official("BCS", Relative, 2, 0, opBCS),
	0xB1: official("LDA", IndirectIndexed, 5, 1, opLDA),
	0xB2: kil,
	0xB3: unofficial("LAX", IndirectIndexed, 5, 1, opLAX),
	0xB4: official("LDY", ZeroPageX, 4, 0, opLDY),
	0xB5: official("LDA", ZeroPageX, 4, 0, opLDA),
	0xB6: official("LDX", ZeroPageY, 4, 0, opLDX),
	0xB7: unofficial("LAX", ZeroPageY, 4, 0, opLAX),
	0xB8: official("CLV", Implied, 2, 0, opCLV),
	0xB9: official("LDA", AbsoluteY, 4, 1, opLDA),
	0xBA: official("TSX", Implied, 2, 0, opTSX),
	0xBB: unofficial("LAS", AbsoluteY, 4, 1, opLAS),
	0xBC: official("LDY", AbsoluteX, 4, 1, opLDY),
	0xBD: official("LDA", AbsoluteX, 4, 1, opLDA),
	0xBE: official("LDX", AbsoluteY, 4, 1, opLDX),
	0xBF: unofficial("LAX", AbsoluteY, 4, 1, opLAX),

	0xC0: official("CPY", Immediate, 2, 0, opCPY),
	0xC1: official("CMP", IndexedIndirect, 6, 0, opCMP),
	0xC2: unofficial("NOP", Immediate, 2, 0, opNOP),
	0xC3: unofficial("DCP", IndexedIndirect, 8, 0, opDCP),
	0xC4: official("CPY", ZeroPage, 3, 0, opCPY),
	0xC5: official("CMP", ZeroPage, 3, 0, opCMP),
	0xC6: official("DEC", ZeroPage, 5, 0, opDEC),
	0xC7: unofficial("DCP", ZeroPage, 5, 0, opDCP),
	0xC8: official("INY", Implied, 2, 0, opINY),
	0xC9: official("CMP", Immediate, 2, 0, opCMP),
	0xCA: official("DEX", Implied, 2, 0, opDEX),
	0xCB: unofficial("AXS", Immediate, 2, 0, opAXS),
	0xCC: official("CPY", Absolute, 4, 0, opCPY),
	0xCD: official("CMP", Absolute, 4, 0, opCMP),
	0xCE: official("DEC", Absolute, 6, 0, opDEC),
	0xCF: unofficial("DCP", Absolute, 6, 0, opDCP),

	0xD0: official("BNE", Relative, 2, 0, opBNE),
	0xD1: official("CMP", IndirectIndexed, 5, 1, opCMP),
	0xD2: kil,
	0xD3: unofficial("DCP", IndirectIndexed, 8, 0, opDCP),
	0xD4: unofficial("NOP", ZeroPageX, 4, 0, opNOP),
	0xD5: official("CMP", ZeroPageX, 4, 0, opCMP),
	0xD6: official("DEC", ZeroPageX, 6, 0, opDEC),
	0xD7: unofficial("DCP", ZeroPageX, 6, 0, opDCP),
	0xD8: official("CLD", Implied, 2, 0, opCLD),
	0xD9: official("CMP", AbsoluteY, 4, 1, opCMP),
	0xDA: unofficial("NOP", Implied, 2, 0, opNOP),
	0xDB: unofficial("DCP", AbsoluteY, 7, 0, opDCP),
	0xDC: unofficial("NOP", AbsoluteX, 4, 1, opNOP),
	0xDD: official("CMP", AbsoluteX, 4, 1, opCMP),
	0xDE: official("DEC", AbsoluteX, 7, 0, opDEC),
	0xDF: unofficial("DCP", AbsoluteX, 7, 0, opDCP),

	0xE0: official("CPX", Immediate, 2, 0, opCPX),
	0xE1: official("SBC", IndexedIndirect, 6, 0, opSBC),
	0xE2: unofficial("NOP", Immediate, 2, 0, opNOP),
	0xE3: unofficial("ISC", IndexedIndirect, 8, 0, opISC),
	0xE4: official("CPX", ZeroPage, 3, 0, opCPX),
	0xE5: official("SBC", ZeroPage, 3, 0, opSBC),
	0xE6: official("INC", ZeroPage, 5, 0, opINC),
	0xE7: unofficial("ISC", ZeroPage, 5, 0, opISC),
	0xE8: official("INX", Implied, 2, 0, opINX),
	0xE9: official("SBC", Immediate, 2, 0, opSBC),
	0xEA: official("NOP", Implied, 2, 0, opNOP),
	0xEB: unofficial("SBC", Immediate, 2, 0, opSBC),
	0xEC: official("CPX", Absolute, 4, 0, opCPX),
	0xED: official("SBC", Absolute, 4, 0, opSBC),
	0xEE: official("INC", Absolute, 6, 0, opINC),
	0xEF: unofficial("ISC", Absolute, 6, 0, opISC),

	0xF0: official("BEQ", Relative, 2, 0, opBEQ),
	0xF1: official("SBC", IndirectIndexed, 5, 1, opSBC),
	0xF2: kil,
	0xF3: unofficial("ISC", IndirectIndexed, 8, 0, opISC),
	0xF4: unofficial("NOP", ZeroPageX, 4, 0, opNOP),
	0xF5: official("SBC", ZeroPageX, 4, 0, opSBC),
	0xF6: official("INC", ZeroPageX, 6, 0, opINC),
	0xF7: unofficial("ISC", ZeroPageX, 6, 0, opISC),
	0xF8: official("SED", Implied, 2, 0, opSED),
	0xF9: official("SBC", AbsoluteY, 4, 1, opSBC),
	0xFA: unofficial("NOP", Implied, 2, 0, opNOP),
	0xFB: unofficial("ISC", AbsoluteY, 7, 0, opISC),
	0xFC: unofficial("NOP", AbsoluteX, 4, 1, opNOP),
	0xFD: official("SBC", AbsoluteX, 4, 1, opSBC),
	0xFE: official("INC", AbsoluteX, 7, 0, opINC),
	0xFF: unofficial("ISC", AbsoluteX, 7, 0, opISC),
}

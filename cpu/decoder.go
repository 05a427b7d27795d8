package cpu

// AddressingMode enumerates the W65C02S addressing modes (spec §4.3).
type AddressingMode int

const (
	ModeImplicit AddressingMode = iota
	ModeAccumulator
	ModeImmediate
	ModeZeroPage
	ModeZeroPageX
	ModeZeroPageY
	ModeAbsolute
	ModeAbsoluteX
	ModeAbsoluteY
	ModeIndirect     // (a) - JMP only
	ModeIndirectX    // (d,X)
	ModeIndirectY    // (d),Y
	ModeIndirectZP   // (d) - W65C02S-only, no index
	ModeIndirectAbsX // (a,X) - W65C02S-only, JMP only
	ModeRelative     // branches
	ModeStack        // PHx/PLx/PHP/PLP/BRK/RTI/RTS operand-free stack ops
	ModeZPRelative   // BBR/BBS: zero page operand then relative offset
)

// InstructionInfo is the immutable, opcode-keyed descriptor the Decoder
// returns: mnemonic, addressing mode, base cycle count, and the
// instruction's total length in bytes (opcode included).
type InstructionInfo struct {
	Opcode   uint8
	Mnemonic string
	Mode     AddressingMode
	Cycles   int
	Length   int
	// CrossPenalty is true for the handful of read-class instructions
	// whose indexed/indirect-Y addressing costs one extra cycle when the
	// index addition crosses a page boundary (spec §4.3 Addressing Unit,
	// §9 resolved Open Question: no penalty on write-mode Absolute,X/Y or
	// RMW, which already cost the worst case unconditionally).
	CrossPenalty bool
}

var opcodeTable [256]InstructionInfo

func reg(op uint8, mnemonic string, mode AddressingMode, cycles, length int, crossPenalty bool) {
	opcodeTable[op] = InstructionInfo{Opcode: op, Mnemonic: mnemonic, Mode: mode, Cycles: cycles, Length: length, CrossPenalty: crossPenalty}
}

func init() {
	for i := range opcodeTable {
		// Every undefined opcode position is a documented 1-byte/1-cycle
		// NOP on W65C02S (spec §1, §4.3 Decoder) -- never an error.
		opcodeTable[i] = InstructionInfo{Opcode: uint8(i), Mnemonic: "NOP", Mode: ModeImplicit, Cycles: 1, Length: 1}
	}

	type group struct {
		mnemonic                                       string
		imm, zp, zpx, zpy, abs, absx, absy, indx, indy uint8
		hasImm, hasZpy, hasAbsy, crossOnIndexed         bool
	}
	// ALU-class: ADC/AND/CMP/EOR/LDA/ORA/SBC share the classic 8-addressing-mode layout.
	alu := []group{
		{mnemonic: "ORA", imm: 0x09, zp: 0x05, zpx: 0x15, abs: 0x0D, absx: 0x1D, absy: 0x19, indx: 0x01, indy: 0x11, hasImm: true, hasAbsy: true, crossOnIndexed: true},
		{mnemonic: "AND", imm: 0x29, zp: 0x25, zpx: 0x35, abs: 0x2D, absx: 0x3D, absy: 0x39, indx: 0x21, indy: 0x31, hasImm: true, hasAbsy: true, crossOnIndexed: true},
		{mnemonic: "EOR", imm: 0x49, zp: 0x45, zpx: 0x55, abs: 0x4D, absx: 0x5D, absy: 0x59, indx: 0x41, indy: 0x51, hasImm: true, hasAbsy: true, crossOnIndexed: true},
		{mnemonic: "ADC", imm: 0x69, zp: 0x65, zpx: 0x75, abs: 0x6D, absx: 0x7D, absy: 0x79, indx: 0x61, indy: 0x71, hasImm: true, hasAbsy: true, crossOnIndexed: true},
		{mnemonic: "LDA", imm: 0xA9, zp: 0xA5, zpx: 0xB5, abs: 0xAD, absx: 0xBD, absy: 0xB9, indx: 0xA1, indy: 0xB1, hasImm: true, hasAbsy: true, crossOnIndexed: true},
		{mnemonic: "CMP", imm: 0xC9, zp: 0xC5, zpx: 0xD5, abs: 0xCD, absx: 0xDD, absy: 0xD9, indx: 0xC1, indy: 0xD1, hasImm: true, hasAbsy: true, crossOnIndexed: true},
		{mnemonic: "SBC", imm: 0xE9, zp: 0xE5, zpx: 0xF5, abs: 0xED, absx: 0xFD, absy: 0xF9, indx: 0xE1, indy: 0xF1, hasImm: true, hasAbsy: true, crossOnIndexed: true},
	}
	// (zp) indirect-without-index, W65C02S-only addition for the same seven plus STA.
	aluIndZP := map[string]uint8{"ORA": 0x12, "AND": 0x32, "EOR": 0x52, "ADC": 0x72, "STA": 0x92, "LDA": 0xB2, "CMP": 0xD2, "SBC": 0xF2}

	for _, g := range alu {
		if g.hasImm {
			reg(g.imm, g.mnemonic, ModeImmediate, 2, 2, false)
		}
		reg(g.zp, g.mnemonic, ModeZeroPage, 3, 2, false)
		reg(g.zpx, g.mnemonic, ModeZeroPageX, 4, 2, false)
		reg(g.abs, g.mnemonic, ModeAbsolute, 4, 3, false)
		reg(g.absx, g.mnemonic, ModeAbsoluteX, 4, 3, g.crossOnIndexed)
		if g.hasAbsy {
			reg(g.absy, g.mnemonic, ModeAbsoluteY, 4, 3, g.crossOnIndexed)
		}
		reg(g.indx, g.mnemonic, ModeIndirectX, 6, 2, false)
		reg(g.indy, g.mnemonic, ModeIndirectY, 5, 2, g.crossOnIndexed)
	}
	for mnemonic, op := range aluIndZP {
		reg(op, mnemonic, ModeIndirectZP, 5, 2, false)
	}

	// STA: no immediate, no page-cross penalty ever (store always pays worst case).
	reg(0x85, "STA", ModeZeroPage, 3, 2, false)
	reg(0x95, "STA", ModeZeroPageX, 4, 2, false)
	reg(0x8D, "STA", ModeAbsolute, 4, 3, false)
	reg(0x9D, "STA", ModeAbsoluteX, 5, 3, false)
	reg(0x99, "STA", ModeAbsoluteY, 5, 3, false)
	reg(0x81, "STA", ModeIndirectX, 6, 2, false)
	reg(0x91, "STA", ModeIndirectY, 6, 2, false)

	// STX/STY/LDX/LDY.
	reg(0x86, "STX", ModeZeroPage, 3, 2, false)
	reg(0x96, "STX", ModeZeroPageY, 4, 2, false)
	reg(0x8E, "STX", ModeAbsolute, 4, 3, false)
	reg(0x84, "STY", ModeZeroPage, 3, 2, false)
	reg(0x94, "STY", ModeZeroPageX, 4, 2, false)
	reg(0x8C, "STY", ModeAbsolute, 4, 3, false)
	reg(0xA2, "LDX", ModeImmediate, 2, 2, false)
	reg(0xA6, "LDX", ModeZeroPage, 3, 2, false)
	reg(0xB6, "LDX", ModeZeroPageY, 4, 2, false)
	reg(0xAE, "LDX", ModeAbsolute, 4, 3, false)
	reg(0xBE, "LDX", ModeAbsoluteY, 4, 3, true)
	reg(0xA0, "LDY", ModeImmediate, 2, 2, false)
	reg(0xA4, "LDY", ModeZeroPage, 3, 2, false)
	reg(0xB4, "LDY", ModeZeroPageX, 4, 2, false)
	reg(0xAC, "LDY", ModeAbsolute, 4, 3, false)
	reg(0xBC, "LDY", ModeAbsoluteX, 4, 3, true)

	// STZ (W65C02S).
	reg(0x64, "STZ", ModeZeroPage, 3, 2, false)
	reg(0x74, "STZ", ModeZeroPageX, 4, 2, false)
	reg(0x9C, "STZ", ModeAbsolute, 4, 3, false)
	reg(0x9E, "STZ", ModeAbsoluteX, 5, 3, false)

	// Shift/rotate: ASL/LSR/ROL/ROR, accumulator + memory.
	type shiftGroup struct {
		mnemonic                      string
		acc, zp, zpx, abs, absx uint8
	}
	shifts := []shiftGroup{
		{"ASL", 0x0A, 0x06, 0x16, 0x0E, 0x1E},
		{"ROL", 0x2A, 0x26, 0x36, 0x2E, 0x3E},
		{"LSR", 0x4A, 0x46, 0x56, 0x4E, 0x5E},
		{"ROR", 0x6A, 0x66, 0x76, 0x6E, 0x7E},
	}
	for _, s := range shifts {
		reg(s.acc, s.mnemonic, ModeAccumulator, 2, 1, false)
		reg(s.zp, s.mnemonic, ModeZeroPage, 5, 2, false)
		reg(s.zpx, s.mnemonic, ModeZeroPageX, 6, 2, false)
		reg(s.abs, s.mnemonic, ModeAbsolute, 6, 3, false)
		reg(s.absx, s.mnemonic, ModeAbsoluteX, 7, 3, false)
	}

	// INC/DEC, including W65C02S accumulator forms.
	reg(0x1A, "INC", ModeAccumulator, 2, 1, false)
	reg(0xE6, "INC", ModeZeroPage, 5, 2, false)
	reg(0xF6, "INC", ModeZeroPageX, 6, 2, false)
	reg(0xEE, "INC", ModeAbsolute, 6, 3, false)
	reg(0xFE, "INC", ModeAbsoluteX, 7, 3, false)
	reg(0x3A, "DEC", ModeAccumulator, 2, 1, false)
	reg(0xC6, "DEC", ModeZeroPage, 5, 2, false)
	reg(0xD6, "DEC", ModeZeroPageX, 6, 2, false)
	reg(0xCE, "DEC", ModeAbsolute, 6, 3, false)
	reg(0xDE, "DEC", ModeAbsoluteX, 7, 3, false)
	reg(0xE8, "INX", ModeImplicit, 2, 1, false)
	reg(0xC8, "INY", ModeImplicit, 2, 1, false)
	reg(0xCA, "DEX", ModeImplicit, 2, 1, false)
	reg(0x88, "DEY", ModeImplicit, 2, 1, false)

	// BIT, including W65C02S immediate/indexed additions.
	reg(0x89, "BIT", ModeImmediate, 2, 2, false)
	reg(0x24, "BIT", ModeZeroPage, 3, 2, false)
	reg(0x34, "BIT", ModeZeroPageX, 4, 2, false)
	reg(0x2C, "BIT", ModeAbsolute, 4, 3, false)
	reg(0x3C, "BIT", ModeAbsoluteX, 4, 3, true)

	// TRB/TSB (W65C02S).
	reg(0x14, "TRB", ModeZeroPage, 5, 2, false)
	reg(0x1C, "TRB", ModeAbsolute, 6, 3, false)
	reg(0x04, "TSB", ModeZeroPage, 5, 2, false)
	reg(0x0C, "TSB", ModeAbsolute, 6, 3, false)

	// CPX/CPY.
	reg(0xE0, "CPX", ModeImmediate, 2, 2, false)
	reg(0xE4, "CPX", ModeZeroPage, 3, 2, false)
	reg(0xEC, "CPX", ModeAbsolute, 4, 3, false)
	reg(0xC0, "CPY", ModeImmediate, 2, 2, false)
	reg(0xC4, "CPY", ModeZeroPage, 3, 2, false)
	reg(0xCC, "CPY", ModeAbsolute, 4, 3, false)

	// Branches (relative) + BRA (W65C02S, unconditional).
	for op, mnemonic := range map[uint8]string{
		0x90: "BCC", 0xB0: "BCS", 0xF0: "BEQ", 0x30: "BMI",
		0xD0: "BNE", 0x10: "BPL", 0x50: "BVC", 0x70: "BVS",
	} {
		reg(op, mnemonic, ModeRelative, 2, 2, false)
	}
	reg(0x80, "BRA", ModeRelative, 2, 2, false)

	// Jumps/calls/returns.
	reg(0x4C, "JMP", ModeAbsolute, 3, 3, false)
	reg(0x6C, "JMP", ModeIndirect, 5, 3, false)
	reg(0x7C, "JMP", ModeIndirectAbsX, 6, 3, false) // W65C02S-only
	reg(0x20, "JSR", ModeAbsolute, 6, 3, false)
	reg(0x40, "RTI", ModeStack, 6, 1, false)
	reg(0x60, "RTS", ModeStack, 6, 1, false)

	// Stack ops.
	reg(0x48, "PHA", ModeStack, 3, 1, false)
	reg(0x08, "PHP", ModeStack, 3, 1, false)
	reg(0x68, "PLA", ModeStack, 4, 1, false)
	reg(0x28, "PLP", ModeStack, 4, 1, false)
	reg(0xDA, "PHX", ModeStack, 3, 1, false)
	reg(0xFA, "PLX", ModeStack, 4, 1, false)
	reg(0x5A, "PHY", ModeStack, 3, 1, false)
	reg(0x7A, "PLY", ModeStack, 4, 1, false)

	// Transfers.
	reg(0xAA, "TAX", ModeImplicit, 2, 1, false)
	reg(0xA8, "TAY", ModeImplicit, 2, 1, false)
	reg(0xBA, "TSX", ModeImplicit, 2, 1, false)
	reg(0x8A, "TXA", ModeImplicit, 2, 1, false)
	reg(0x9A, "TXS", ModeImplicit, 2, 1, false)
	reg(0x98, "TYA", ModeImplicit, 2, 1, false)

	// Flag ops.
	reg(0x18, "CLC", ModeImplicit, 2, 1, false)
	reg(0xD8, "CLD", ModeImplicit, 2, 1, false)
	reg(0x58, "CLI", ModeImplicit, 2, 1, false)
	reg(0xB8, "CLV", ModeImplicit, 2, 1, false)
	reg(0x38, "SEC", ModeImplicit, 2, 1, false)
	reg(0xF8, "SED", ModeImplicit, 2, 1, false)
	reg(0x78, "SEI", ModeImplicit, 2, 1, false)

	// BRK, NOP, WAI, STP.
	reg(0x00, "BRK", ModeStack, 7, 2, false)
	reg(0xEA, "NOP", ModeImplicit, 2, 1, false)
	reg(0xCB, "WAI", ModeImplicit, 3, 1, false)
	reg(0xDB, "STP", ModeImplicit, 3, 1, false)

	// BBR0-7/BBS0-7 (zero page, then relative) and RMB0-7/SMB0-7 (zero page).
	for n := uint8(0); n < 8; n++ {
		reg(0x0F+n*0x10, fmt_BBR(n), ModeZPRelative, 5, 3, false)
		reg(0x8F+n*0x10, fmt_BBS(n), ModeZPRelative, 5, 3, false)
		reg(0x07+n*0x10, fmt_RMB(n), ModeZeroPage, 5, 2, false)
		reg(0x87+n*0x10, fmt_SMB(n), ModeZeroPage, 5, 2, false)
	}
}

func fmt_BBR(n uint8) string { return "BBR" + string(rune('0'+n)) }
func fmt_BBS(n uint8) string { return "BBS" + string(rune('0'+n)) }
func fmt_RMB(n uint8) string { return "RMB" + string(rune('0'+n)) }
func fmt_SMB(n uint8) string { return "SMB" + string(rune('0'+n)) }

// Decode returns the InstructionInfo for opcode. Every one of the 256
// positions returns a valid entry; positions with no documented
// instruction decode as a 1-byte/1-cycle NOP (spec §4.3 Decoder never
// raises on an unknown opcode).
func Decode(opcode uint8) InstructionInfo {
	return opcodeTable[opcode]
}

// BitNumber extracts the n in BBRn/BBSn/RMBn/SMBn from the mnemonic; used
// by the executor to index the target bit. Panics if mnemonic isn't one
// of those four families, which cannot happen for any opcode this
// Decoder emits.
func BitNumber(mnemonic string) uint {
	return uint(mnemonic[3] - '0')
}

package cpu

// resolved is the outcome of resolving an instruction's addressing mode:
// the effective address (meaningless for Implicit/Accumulator; for
// Immediate it is the address of the operand byte), whether the operand
// is the accumulator, and whether an indexed effective-address
// computation crossed a page boundary.
type resolved struct {
	addr        uint16
	isAcc       bool
	pageCrossed bool
}

// resolveAddress reads whatever operand bytes info.Mode requires from
// immediately after the opcode byte (c.PC+1) and computes the effective
// address. It performs no side effects beyond bus reads of operand bytes
// (never reads the target operand itself -- that is the executor's job).
func (c *Chip) resolveAddress(info InstructionInfo) resolved {
	operand := c.PC + 1
	switch info.Mode {
	case ModeImplicit, ModeStack:
		return resolved{}
	case ModeAccumulator:
		return resolved{isAcc: true}
	case ModeImmediate:
		return resolved{addr: operand}
	case ModeZeroPage:
		return resolved{addr: uint16(c.bus.Read(operand))}
	case ModeZeroPageX:
		return resolved{addr: uint16(uint8(c.bus.Read(operand)) + c.X)}
	case ModeZeroPageY:
		return resolved{addr: uint16(uint8(c.bus.Read(operand)) + c.Y)}
	case ModeAbsolute:
		return resolved{addr: c.bus.ReadWord(operand)}
	case ModeAbsoluteX:
		base := c.bus.ReadWord(operand)
		eff := base + uint16(c.X)
		return resolved{addr: eff, pageCrossed: (base & 0xFF00) != (eff & 0xFF00)}
	case ModeAbsoluteY:
		base := c.bus.ReadWord(operand)
		eff := base + uint16(c.Y)
		return resolved{addr: eff, pageCrossed: (base & 0xFF00) != (eff & 0xFF00)}
	case ModeIndirect:
		ptr := c.bus.ReadWord(operand)
		return resolved{addr: c.bus.ReadWord(ptr)}
	case ModeIndirectAbsX:
		ptr := c.bus.ReadWord(operand) + uint16(c.X)
		return resolved{addr: c.bus.ReadWord(ptr)}
	case ModeIndirectX:
		zp := uint8(c.bus.Read(operand)) + c.X
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16(zp + 1))
		return resolved{addr: uint16(hi)<<8 | uint16(lo)}
	case ModeIndirectY:
		zp := c.bus.Read(operand)
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16(zp + 1))
		base := uint16(hi)<<8 | uint16(lo)
		eff := base + uint16(c.Y)
		return resolved{addr: eff, pageCrossed: (base & 0xFF00) != (eff & 0xFF00)}
	case ModeIndirectZP:
		zp := c.bus.Read(operand)
		lo := c.bus.Read(uint16(zp))
		hi := c.bus.Read(uint16(zp + 1))
		return resolved{addr: uint16(hi)<<8 | uint16(lo)}
	case ModeRelative:
		return resolved{addr: operand}
	case ModeZPRelative:
		return resolved{addr: uint16(c.bus.Read(operand))}
	default:
		return resolved{}
	}
}

// branchTarget computes the destination PC for a relative-mode operand
// byte at addr, given the instruction's total length (PC has not yet
// advanced past the instruction when this is called).
func (c *Chip) branchTarget(info InstructionInfo, operandAddr uint16) uint16 {
	offset := int8(c.bus.Read(operandAddr))
	base := c.PC + uint16(info.Length)
	return uint16(int32(base) + int32(offset))
}

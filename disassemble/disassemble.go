// Package disassemble renders one decoded instruction at a time as
// text, adapted from the teacher's standalone opcode-to-mnemonic switch
// to instead reuse cpu.Decode's opcode table: no duplicated mnemonic
// list, no file-serialization format, and no interactive shell -- those
// remain a debugger tool's responsibility (spec.md §1 Non-goals).
package disassemble

import (
	"fmt"

	"github.com/siska-tech/w65c02emu/cpu"
	"github.com/siska-tech/w65c02emu/memory"
)

// Step disassembles the instruction at pc and returns its text plus the
// number of bytes the PC should advance to reach the next instruction.
// Reads bytes past pc up to the instruction's length (never past it), so
// Step never over-reads relative to what Decode reports.
func Step(pc uint16, bus *memory.Bus) (string, int) {
	opcode := bus.Read(pc)
	info := cpu.Decode(opcode)

	operands := make([]uint8, info.Length-1)
	for i := range operands {
		operands[i] = bus.Read(pc + 1 + uint16(i))
	}

	return fmt.Sprintf("%.4X %.2X %s %s", pc, opcode, info.Mnemonic, operandText(info, operands, pc)), info.Length
}

func operandText(info cpu.InstructionInfo, operands []uint8, pc uint16) string {
	switch info.Mode {
	case cpu.ModeImplicit, cpu.ModeStack:
		return ""
	case cpu.ModeAccumulator:
		return "A"
	case cpu.ModeImmediate:
		return fmt.Sprintf("#$%.2X", operands[0])
	case cpu.ModeZeroPage:
		return fmt.Sprintf("$%.2X", operands[0])
	case cpu.ModeZeroPageX:
		return fmt.Sprintf("$%.2X,X", operands[0])
	case cpu.ModeZeroPageY:
		return fmt.Sprintf("$%.2X,Y", operands[0])
	case cpu.ModeAbsolute:
		return fmt.Sprintf("$%.2X%.2X", operands[1], operands[0])
	case cpu.ModeAbsoluteX:
		return fmt.Sprintf("$%.2X%.2X,X", operands[1], operands[0])
	case cpu.ModeAbsoluteY:
		return fmt.Sprintf("$%.2X%.2X,Y", operands[1], operands[0])
	case cpu.ModeIndirect:
		return fmt.Sprintf("($%.2X%.2X)", operands[1], operands[0])
	case cpu.ModeIndirectAbsX:
		return fmt.Sprintf("($%.2X%.2X,X)", operands[1], operands[0])
	case cpu.ModeIndirectX:
		return fmt.Sprintf("($%.2X,X)", operands[0])
	case cpu.ModeIndirectY:
		return fmt.Sprintf("($%.2X),Y", operands[0])
	case cpu.ModeIndirectZP:
		return fmt.Sprintf("($%.2X)", operands[0])
	case cpu.ModeRelative:
		target := uint16(int32(pc) + int32(info.Length) + int32(int8(operands[0])))
		return fmt.Sprintf("$%.2X (%.4X)", operands[0], target)
	case cpu.ModeZPRelative:
		target := uint16(int32(pc) + int32(info.Length) + int32(int8(operands[1])))
		return fmt.Sprintf("$%.2X,$%.2X (%.4X)", operands[0], operands[1], target)
	default:
		return ""
	}
}

// Package cpu implements the W65C02S instruction-accurate core: opcode
// decoder, addressing-mode evaluator, per-instruction executor and the
// RESET/NMI/IRQ/BRK interrupt sequencer. The CPU never touches memory
// directly; every access goes through a memory.Bus handle passed in at
// construction, and every pending-interrupt question goes through an
// irq.Controller handle.
package cpu

import (
	"fmt"

	"github.com/siska-tech/w65c02emu/irq"
	"github.com/siska-tech/w65c02emu/memory"
)

// Status register bits. Bit 5 (PS1) always reads as 1.
const (
	PNegative  = uint8(0x80)
	POverflow  = uint8(0x40)
	PS1        = uint8(0x20) // Always 1.
	PBreak     = uint8(0x10) // Set in the pushed copy of P on BRK, clear for hardware interrupts.
	PDecimal   = uint8(0x08)
	PInterrupt = uint8(0x04)
	PZero      = uint8(0x02)
	PCarry     = uint8(0x01)
)

// Vector addresses, little-endian words.
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// State is the CPU's run state per spec §4.3's InterruptSequencer state
// machine.
type State int

const (
	// Running is the normal fetch/decode/execute state.
	Running State = iota
	// Waiting is entered by WAI: the CPU consumes cycles without
	// advancing PC until any interrupt becomes pending.
	Waiting
	// Stopped is entered by STP: the CPU consumes cycles indefinitely
	// until an external RESET.
	Stopped
)

// InvalidStateError describes an invalid CPU state at construction/restore
// boundaries (spec §7); no function in this package returns it, and the
// executor itself never produces runtime errors since the W65C02S cannot
// fault.
type InvalidStateError struct {
	Reason string
}

func (e InvalidStateError) Error() string {
	return fmt.Sprintf("invalid CPU state: %s", e.Reason)
}

// Chip is a W65C02S. All mutable state is owned by this struct; there is
// exactly one mutator at a time (the Scheduler driving Tick), per spec §5.
type Chip struct {
	A  uint8
	X  uint8
	Y  uint8
	S  uint8
	P  uint8
	PC uint16

	Cycles uint64 // Monotonically increasing master-cycle count since reset.

	state State

	bus         *memory.Bus
	interrupts  *irq.Controller
	pendingLeft int // Master cycles remaining in the instruction/interrupt-entry currently "in flight".

	breakpoints map[uint16]BreakpointFunc
}

// BreakpointFunc is an opaque, caller-supplied predicate evaluated against
// a Chip by BreakpointHit. The condition language itself is out of scope
// (spec §4.5) — the debugger tool compiles/sandboxes it and hands the core
// only this callable.
type BreakpointFunc func(c *Chip) bool

// New creates a Chip wired to bus and interrupts, powered on. bus and
// interrupts must be non-nil and outlive the Chip.
func New(bus *memory.Bus, interrupts *irq.Controller) *Chip {
	c := &Chip{bus: bus, interrupts: interrupts, breakpoints: make(map[uint16]BreakpointFunc)}
	c.PowerOn()
	return c
}

// PowerOn resets all registers to their documented post-power-on state and
// asserts+services a RESET immediately, leaving PC loaded from the reset
// vector. Unlike real silicon (whose register contents are indeterminate
// at power-on), this zeroes A/X/Y and sets S to 0xFD for deterministic
// test fixtures.
func (c *Chip) PowerOn() {
	c.A, c.X, c.Y = 0, 0, 0
	c.S = 0xFD
	c.P = PS1 | PInterrupt
	c.Cycles = 0
	c.state = Running
	c.pendingLeft = 0
	c.interrupts.AssertReset()
	for c.pendingLeft > 0 || c.interrupts.HighestPriorityPending(c.flagI()) == irq.Reset {
		c.Tick()
	}
}

// State reports the CPU's current Running/Waiting/Stopped state.
func (c *Chip) State() State {
	return c.state
}

// IsBusy reports whether the current instruction (or interrupt entry) has
// outstanding cycles; the Scheduler uses it to find instruction boundaries
// (StepInstruction), while Tick is always safe to call once per master
// cycle regardless.
func (c *Chip) IsBusy() bool {
	return c.pendingLeft > 0
}

func (c *Chip) flagI() bool {
	return c.P&PInterrupt != 0
}

// SetBreakpoint installs cond to be evaluated by BreakpointHit whenever
// PC == addr; Tick itself does not consult breakpoints. A nil cond simply
// marks the address as a breakpoint that always triggers.
func (c *Chip) SetBreakpoint(addr uint16, cond BreakpointFunc) {
	if cond == nil {
		cond = func(*Chip) bool { return true }
	}
	c.breakpoints[addr] = cond
}

// ClearBreakpoint removes any breakpoint installed at addr.
func (c *Chip) ClearBreakpoint(addr uint16) {
	delete(c.breakpoints, addr)
}

// BreakpointHit reports whether a breakpoint at the current PC fires,
// without advancing any state. Intended to be polled by a driver loop
// between Tick-complete boundaries (i.e. when !IsBusy()).
func (c *Chip) BreakpointHit() bool {
	fn, ok := c.breakpoints[c.PC]
	return ok && fn(c)
}

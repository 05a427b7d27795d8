// Package inspector provides the read-only state surface spec.md §4.5
// reserves for external tooling (debuggers, disassemblers, trace
// viewers): register/flag snapshots, memory peeks, per-device Tick
// counters are not exposed (Device is opaque beyond Read/Write), and a
// bounded interrupt trace built from irq.Controller's observer hooks.
package inspector

import (
	"fmt"

	"github.com/siska-tech/w65c02emu/cpu"
	"github.com/siska-tech/w65c02emu/irq"
	"github.com/siska-tech/w65c02emu/memory"
)

// RegisterSnapshot is an immutable copy of the CPU's architectural state
// at the moment Snapshot was called.
type RegisterSnapshot struct {
	A, X, Y, S uint8
	P          uint8
	PC         uint16
	Cycles     uint64
	State      cpu.State
}

// FlagView decodes RegisterSnapshot.P into named booleans for display.
type FlagView struct {
	Negative, Overflow, Break, Decimal, Interrupt, Zero, Carry bool
}

// Flags decodes the snapshot's P register.
func (r RegisterSnapshot) Flags() FlagView {
	return FlagView{
		Negative:  r.P&cpu.PNegative != 0,
		Overflow:  r.P&cpu.POverflow != 0,
		Break:     r.P&cpu.PBreak != 0,
		Decimal:   r.P&cpu.PDecimal != 0,
		Interrupt: r.P&cpu.PInterrupt != 0,
		Zero:      r.P&cpu.PZero != 0,
		Carry:     r.P&cpu.PCarry != 0,
	}
}

// InterruptEvent is one entry of the bounded trace Inspector keeps via
// irq.Controller's OnAssert/OnAcknowledge hooks -- adapted from the
// original reference implementation's InterruptController._interrupt_history
// ring buffer (spec.md §12 supplemented feature), at a fixed capacity
// rather than the Python version's configurable one.
type InterruptEvent struct {
	Kind        irq.Kind
	Source      string
	Acknowledge bool
}

const maxInterruptTrace = 64

// Inspector wraps a Chip/Bus/Controller trio with a read-only view and a
// bounded interrupt trace. It never mutates CPU or bus state except for
// the breakpoint map Chip already exposes.
type Inspector struct {
	chip  *cpu.Chip
	bus   *memory.Bus
	ctrl  *irq.Controller
	trace []InterruptEvent
}

// New wraps chip/bus/ctrl and registers trace-collecting hooks on ctrl.
// Any hooks ctrl already had installed are replaced.
func New(chip *cpu.Chip, bus *memory.Bus, ctrl *irq.Controller) *Inspector {
	insp := &Inspector{chip: chip, bus: bus, ctrl: ctrl}
	ctrl.OnAssert(func(kind irq.Kind, source string) {
		insp.record(InterruptEvent{Kind: kind, Source: source})
	})
	ctrl.OnAcknowledge(func(kind irq.Kind) {
		insp.record(InterruptEvent{Kind: kind, Acknowledge: true})
	})
	return insp
}

func (insp *Inspector) record(ev InterruptEvent) {
	insp.trace = append(insp.trace, ev)
	if len(insp.trace) > maxInterruptTrace {
		insp.trace = insp.trace[len(insp.trace)-maxInterruptTrace:]
	}
}

// Snapshot returns the CPU's current architectural state.
func (insp *Inspector) Snapshot() RegisterSnapshot {
	return RegisterSnapshot{
		A: insp.chip.A, X: insp.chip.X, Y: insp.chip.Y, S: insp.chip.S,
		P: insp.chip.P, PC: insp.chip.PC, Cycles: insp.chip.Cycles,
		State: insp.chip.State(),
	}
}

// PeekMemory returns addr's current value without any bus side effects
// beyond what a normal Read would do (open-bus/device reads may still
// have device-visible side effects; the Bus contract makes no read
// free-of-side-effects guarantee, matching spec.md §6).
func (insp *Inspector) PeekMemory(addr uint16) uint8 {
	return insp.bus.Read(addr)
}

// PeekRange returns a copy of [addr, addr+length) for a debugger's memory
// dump view.
func (insp *Inspector) PeekRange(addr uint16, length int) []uint8 {
	out := make([]uint8, length)
	for i := range out {
		out[i] = insp.bus.Read(addr + uint16(i))
	}
	return out
}

// InterruptStats returns the Controller's acknowledge counters.
func (insp *Inspector) InterruptStats() irq.Stats {
	return insp.ctrl.Stats()
}

// InterruptTrace returns a copy of the bounded recent-interrupt-events
// ring, oldest first.
func (insp *Inspector) InterruptTrace() []InterruptEvent {
	out := make([]InterruptEvent, len(insp.trace))
	copy(out, insp.trace)
	return out
}

// SetBreakpoint/ClearBreakpoint/BreakpointHit delegate straight to the
// wrapped Chip; Inspector exists to give external tooling one import
// instead of needing both cpu and memory handles.
func (insp *Inspector) SetBreakpoint(addr uint16, cond cpu.BreakpointFunc) {
	insp.chip.SetBreakpoint(addr, cond)
}

func (insp *Inspector) ClearBreakpoint(addr uint16) {
	insp.chip.ClearBreakpoint(addr)
}

func (insp *Inspector) BreakpointHit() bool {
	return insp.chip.BreakpointHit()
}

// String renders a one-line disassembler-adjacent status line, in the
// spirit of pia6532.Chip.Debug()'s terse debug format.
func (insp *Inspector) String() string {
	s := insp.Snapshot()
	return fmt.Sprintf("PC=%.4X A=%.2X X=%.2X Y=%.2X S=%.2X P=%.2X CYC=%d",
		s.PC, s.A, s.X, s.Y, s.S, s.P, s.Cycles)
}

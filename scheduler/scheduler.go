// Package scheduler drives the master-cycle tick loop: the CPU always
// ticks first within a cycle, then every mapped device ticks in ascending
// Priority order, matching the one-cycle interrupt-propagation guarantee
// spec.md §4.4 requires (an interrupt asserted during cycle k is first
// observable to the CPU no earlier than cycle k+1).
package scheduler

import "github.com/siska-tech/w65c02emu/memory"

// Chip is the subset of cpu.Chip the TickEngine depends on. Declaring it
// here (rather than importing the cpu package directly) keeps scheduler
// free of a cpu dependency, mirroring how the teacher's chip packages
// never import their own drivers.
type Chip interface {
	Tick()
	IsBusy() bool
}

// TickEngine owns the run loop: CPU.Tick(), then Bus.Tick(cycle), once
// per master cycle, for as long as RunUntil/RunCycles says to continue.
type TickEngine struct {
	cpu    Chip
	bus    *memory.Bus
	cycle  uint64
	cancel bool
}

// New creates a TickEngine driving cpu and bus.
func New(cpu Chip, bus *memory.Bus) *TickEngine {
	return &TickEngine{cpu: cpu, bus: bus}
}

// Cycle reports the total number of master cycles this engine has run.
func (e *TickEngine) Cycle() uint64 {
	return e.cycle
}

// Cancel requests that any in-progress RunUntil/RunCycles stop at the next
// cycle boundary. The flag is not synchronized: calling Cancel from
// another goroutine while a run is in progress is a data race unless the
// caller serializes access, since this package assumes a single driving
// goroutine (spec.md §5).
func (e *TickEngine) Cancel() {
	e.cancel = true
}

// StepCycle runs exactly one master cycle: the CPU ticks, then every
// mapped device ticks in Priority order.
func (e *TickEngine) StepCycle() {
	e.cpu.Tick()
	e.cycle++
	e.bus.Tick(e.cycle)
}

// StepInstruction runs StepCycle until the CPU reports it is no longer
// mid-instruction (IsBusy() false), i.e. one full instruction or
// interrupt-entry sequence.
func (e *TickEngine) StepInstruction() {
	e.StepCycle()
	for e.cpu.IsBusy() {
		e.StepCycle()
	}
}

// RunCycles runs exactly n master cycles (Continuous/Targeted execution
// modes per spec.md §6), or fewer if Cancel is called mid-run.
func (e *TickEngine) RunCycles(n uint64) {
	for i := uint64(0); i < n && !e.cancel; i++ {
		e.StepCycle()
	}
	e.cancel = false
}

// RunUntil runs whole instructions (never stopping mid-instruction) until
// stop returns true or Cancel is called. stop is evaluated only at
// instruction boundaries, consistent with breakpoints and the Step
// execution mode only ever pausing between instructions.
func (e *TickEngine) RunUntil(stop func() bool) {
	for !e.cancel && !stop() {
		e.StepInstruction()
	}
	e.cancel = false
}

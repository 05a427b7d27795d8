// Package system assembles a cpu.Chip, memory.Bus, irq.Controller and
// scheduler.TickEngine from a Config into a single runnable unit. Reading
// Config from a file or CLI flags is explicitly a cmd/ concern (spec.md
// §1 Non-goals exclude config loading/serialization from the core); this
// package only defines the struct shape and the wiring that consumes it.
package system

import "github.com/siska-tech/w65c02emu/memory"

// ExecutionMode selects how System.Run drives its TickEngine.
type ExecutionMode int

const (
	// Continuous runs forever until Stop is called or the CPU enters
	// Stopped state (STP).
	Continuous ExecutionMode = iota
	// Step runs exactly one instruction per Run call.
	Step
	// Targeted runs a fixed number of master cycles per Run call.
	Targeted
)

// DeviceDescriptor names one entry of a system's device table, taken
// directly from the original reference implementation's system_config.py
// DeviceConfig dataclass shape (name, address range, read-only flag,
// tick priority) rather than re-deriving a new schema.
type DeviceDescriptor struct {
	Name     string
	Device   memory.Device
	Start    uint16
	End      uint16
	Offset   uint16
	ReadOnly bool
	Priority memory.Priority
}

// Config is the sole configuration surface the core defines.
type Config struct {
	MasterFrequencyHz uint64
	Mode              ExecutionMode
	// TargetCycles is only consulted when Mode == Targeted.
	TargetCycles uint64
	Devices      []DeviceDescriptor
	ResetVector  uint16
	HasResetVector bool
}

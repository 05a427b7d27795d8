package memory

import "fmt"

// ConfigError is raised by Map/Unmap when a mapping request is invalid.
// It is always a configuration-time error; Map/Unmap are never called
// while a Scheduler is driving step_cycle.
type ConfigError struct {
	Reason string
}

func (e ConfigError) Error() string {
	return fmt.Sprintf("bus config error: %s", e.Reason)
}

// BusErrorKind distinguishes the runtime bus faults a Bus can raise.
type BusErrorKind int

const (
	// ErrWriteToReadOnly is raised when a write targets a mapping marked
	// ReadOnly. It exists solely to catch host-program bugs; real
	// W65C02S silicon has no concept of a bus fault.
	ErrWriteToReadOnly BusErrorKind = iota
)

// BusError is returned synchronously by Bus.Write and Bus.WriteWord. The
// CPU executor does not check that return value: a CPU write to a
// read-only mapping is dropped, and nothing is reported to the caller of
// Chip.Tick. There is no CPU-visible fault and no recovery inside the CPU
// model.
type BusError struct {
	Kind BusErrorKind
	Addr uint16
	Name string
}

func (e BusError) Error() string {
	switch e.Kind {
	case ErrWriteToReadOnly:
		return fmt.Sprintf("bus fault: write to read-only mapping %q at $%04X", e.Name, e.Addr)
	default:
		return fmt.Sprintf("bus fault: unknown kind %d at $%04X", e.Kind, e.Addr)
	}
}

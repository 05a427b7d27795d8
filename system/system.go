package system

import (
	"fmt"

	"github.com/siska-tech/w65c02emu/cpu"
	"github.com/siska-tech/w65c02emu/irq"
	"github.com/siska-tech/w65c02emu/memory"
	"github.com/siska-tech/w65c02emu/scheduler"
)

// System owns one Bus, one irq.Controller, one cpu.Chip and the
// TickEngine driving them, assembled from a Config.
type System struct {
	Bus         *memory.Bus
	Interrupts  *irq.Controller
	Chip        *cpu.Chip
	Engine      *scheduler.TickEngine
	cfg         Config
	irqDevices  []memory.Device
}

// New assembles a System from cfg: maps every DeviceDescriptor onto a
// fresh Bus, creates the InterruptController and Chip, and wires the
// TickEngine. Returns the memory.ConfigError from memory.Bus.Map if any
// descriptor is malformed, overlapping, or duplicate-named.
func New(cfg Config) (*System, error) {
	bus := memory.NewBus()
	for _, d := range cfg.Devices {
		if err := bus.Map(memory.Mapping{
			Name: d.Name, Device: d.Device, Start: d.Start, End: d.End,
			Offset: d.Offset, ReadOnly: d.ReadOnly, Priority: d.Priority,
		}); err != nil {
			return nil, err
		}
	}
	if cfg.HasResetVector {
		if err := bus.WriteWord(cpu.ResetVector, cfg.ResetVector); err != nil {
			return nil, err
		}
	}

	ctrl := irq.NewController()
	chip := cpu.New(bus, ctrl)
	engine := scheduler.New(chip, bus)

	s := &System{Bus: bus, Interrupts: ctrl, Chip: chip, Engine: engine, cfg: cfg}
	for _, d := range cfg.Devices {
		if _, ok := d.Device.(memory.IRQLiner); ok {
			s.irqDevices = append(s.irqDevices, d.Device)
		}
	}
	return s, nil
}

// SampleDeviceIRQs polls every mapped device that implements
// memory.IRQLiner and asserts/deasserts its IRQ source with the
// Controller accordingly. Run calls this after every master cycle in
// Targeted mode and after every instruction in Step and Continuous modes
// (spec.md §4.4: interrupt sampling happens after the CPU and all devices
// have ticked for the cycle).
func (s *System) SampleDeviceIRQs() {
	for i, d := range s.irqDevices {
		liner := d.(memory.IRQLiner)
		id := fmt.Sprintf("device[%d]", i)
		if liner.IRQLine() {
			s.Interrupts.AssertIRQ(id)
		} else {
			s.Interrupts.DeassertIRQ(id)
		}
	}
}

// Run drives the TickEngine according to cfg.Mode: Continuous runs until
// the CPU enters Stopped state, Step runs exactly one instruction,
// Targeted runs cfg.TargetCycles master cycles.
func (s *System) Run() {
	switch s.cfg.Mode {
	case Step:
		s.Engine.StepInstruction()
		s.SampleDeviceIRQs()
	case Targeted:
		remaining := s.cfg.TargetCycles
		for remaining > 0 {
			s.Engine.StepCycle()
			s.SampleDeviceIRQs()
			remaining--
		}
	default: // Continuous
		s.Engine.RunUntil(func() bool {
			s.SampleDeviceIRQs()
			return s.Chip.State() == cpu.Stopped
		})
	}
}

// Stop requests the in-progress Run (Continuous mode) halt at the next
// instruction boundary.
func (s *System) Stop() {
	s.Engine.Cancel()
}

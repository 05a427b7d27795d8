package system

import (
	"testing"

	"github.com/go-test/deep"

	"github.com/siska-tech/w65c02emu/devices"
	"github.com/siska-tech/w65c02emu/memory"
)

func TestSystemRunsStepMode(t *testing.T) {
	rom := memory.NewROM([]byte{0xA9, 0x2A}) // LDA #$2A
	ram, _ := memory.NewRAM(256)
	cfg := Config{
		Mode: Step,
		Devices: []DeviceDescriptor{
			{Name: "rom", Device: rom, Start: 0x8000, End: 0x8001, ReadOnly: true},
			{Name: "ram", Device: ram, Start: 0x0000, End: 0x00FF},
		},
		ResetVector: 0x8000, HasResetVector: true,
	}
	sys, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sys.Run()
	if sys.Chip.A != 0x2A {
		t.Fatalf("got A=%.2X want 0x2A", sys.Chip.A)
	}
}

func TestSystemRejectsOverlappingDevices(t *testing.T) {
	r1, _ := memory.NewRAM(256)
	r2, _ := memory.NewRAM(256)
	_, err := New(Config{Devices: []DeviceDescriptor{
		{Name: "a", Device: r1, Start: 0x0000, End: 0x00FF},
		{Name: "b", Device: r2, Start: 0x0080, End: 0x017F},
	}})
	if err == nil {
		t.Fatal("expected overlapping device mapping to fail")
	}
}

func TestSystemTimerDrivesIRQ(t *testing.T) {
	prog, _ := memory.NewRAM(256)
	for i := uint16(0); i < 16; i++ {
		prog.Write(i, 0xEA) // NOP
	}

	tm := devices.NewTimer(2)

	cfg := Config{
		Mode: Targeted, TargetCycles: 40,
		Devices: []DeviceDescriptor{
			{Name: "prog", Device: prog, Start: 0x0200, End: 0x02FF},
			{Name: "timer", Device: tm, Start: 0x9000, End: 0x9003},
		},
		ResetVector: 0x0200, HasResetVector: true,
	}
	// The IRQ vector is left unset; this smoke test only asserts the
	// timer's IRQLine latches and the controller observes it.
	sys, err := New(cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := sys.Bus.Write(0x9002, 0x03); err != nil { // enable running+irq
		t.Fatalf("arm timer: %v", err)
	}

	sawIRQPending := false
	for i := 0; i < 40 && !sawIRQPending; i++ {
		sys.Engine.StepCycle()
		sys.SampleDeviceIRQs()
		if sys.Interrupts.HighestPriorityPending(false).String() == "IRQ" {
			sawIRQPending = true
		}
	}
	if !sawIRQPending {
		t.Fatal("expected timer expiry to eventually assert a pending IRQ")
	}
	if diff := deep.Equal(tm.(interface{ IRQLine() bool }).IRQLine(), true); diff != nil {
		t.Errorf("unexpected diff: %v", diff)
	}
}

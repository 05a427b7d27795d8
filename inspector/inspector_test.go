package inspector

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/siska-tech/w65c02emu/cpu"
	"github.com/siska-tech/w65c02emu/irq"
	"github.com/siska-tech/w65c02emu/memory"
)

func TestSnapshotAndFlags(t *testing.T) {
	bus := memory.NewBus()
	bus.WriteWord(cpu.ResetVector, 0x0200)
	ctrl := irq.NewController()
	chip := cpu.New(bus, ctrl)
	insp := New(chip, bus, ctrl)

	snap := insp.Snapshot()
	assert.Equal(t, uint16(0x0200), snap.PC)
	assert.True(t, snap.Flags().Interrupt, "power-on should leave I set")
}

func TestPeekRange(t *testing.T) {
	bus := memory.NewBus()
	bus.WriteWord(cpu.ResetVector, 0x0200)
	ctrl := irq.NewController()
	chip := cpu.New(bus, ctrl)
	insp := New(chip, bus, ctrl)

	bus.Write(0x10, 0xAA)
	bus.Write(0x11, 0xBB)
	got := insp.PeekRange(0x10, 2)
	assert.Equal(t, []uint8{0xAA, 0xBB}, got)
}

func TestInterruptTraceAndStats(t *testing.T) {
	bus := memory.NewBus()
	bus.WriteWord(cpu.ResetVector, 0x0200)
	bus.WriteWord(cpu.IRQVector, 0x0300)
	ctrl := irq.NewController()
	chip := cpu.New(bus, ctrl)
	insp := New(chip, bus, ctrl)
	chip.SetBreakpoint(0x0200, nil)

	assert.True(t, chip.BreakpointHit())
	insp.ClearBreakpoint(0x0200)
	assert.False(t, chip.BreakpointHit())

	ctrl.AssertIRQ("dev")
	trace := insp.InterruptTrace()
	if assert.Len(t, trace, 1) {
		assert.Equal(t, irq.IRQ, trace[0].Kind)
		assert.False(t, trace[0].Acknowledge)
	}

	stats := insp.InterruptStats()
	assert.Equal(t, uint64(0), stats.IRQCount)
}

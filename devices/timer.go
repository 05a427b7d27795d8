// Package devices collects small memory.Device implementations usable as
// DeviceDescriptor targets in a system.Config: a countdown Timer and a
// read-only InputPort. RAM and ROM devices come from memory.NewRAM and
// memory.NewROM; this package does not wrap them.
package devices

import "github.com/siska-tech/w65c02emu/memory"

// Timer register offsets, relative to the mapping's Start address.
const (
	RegCounterLo = uint16(0x00)
	RegCounterHi = uint16(0x01)
	RegControl   = uint16(0x02) // bit0: running, bit1: interrupt-enabled, bit2: write-1-to-clear pending
	RegStatus    = uint16(0x03) // bit0: expired/pending (read-only)
)

const (
	ctrlRunning = uint8(0x01)
	ctrlIRQEn   = uint8(0x02)
	ctrlAckBit  = uint8(0x04)

	statusPending = uint8(0x01)
)

// Timer is a free-running 16-bit down-counter adapted from the 6532 PIA's
// timer/interrupt logic (pia6532.Chip.timer/timerExpired/interrupt): it
// decrements once per Tick while running; a Tick that finds the counter
// at zero latches a pending interrupt and reloads it, and counting goes
// on while the pending flag stays latched until acknowledged, the same
// "expire once, then keep counting" behavior the PIA's TickDone
// implements.
type Timer struct {
	counter uint16
	reload  uint16
	running bool
	irqEn   bool
	pending bool
}

// NewTimer creates a Timer with its reload value preset to initial;
// writing RegCounterLo/Hi reloads it without starting it.
func NewTimer(initial uint16) memory.Device {
	return &Timer{counter: initial, reload: initial}
}

func (tm *Timer) Read(addr uint16) uint8 {
	switch addr {
	case RegCounterLo:
		return uint8(tm.counter)
	case RegCounterHi:
		return uint8(tm.counter >> 8)
	case RegControl:
		v := uint8(0)
		if tm.running {
			v |= ctrlRunning
		}
		if tm.irqEn {
			v |= ctrlIRQEn
		}
		return v
	case RegStatus:
		if tm.pending {
			return statusPending
		}
		return 0
	default:
		return 0xFF
	}
}

func (tm *Timer) Write(addr uint16, val uint8) {
	switch addr {
	case RegCounterLo:
		tm.reload = (tm.reload &^ 0x00FF) | uint16(val)
	case RegCounterHi:
		tm.reload = (tm.reload &^ 0xFF00) | uint16(val)<<8
		tm.counter = tm.reload
	case RegControl:
		tm.running = val&ctrlRunning != 0
		tm.irqEn = val&ctrlIRQEn != 0
		if val&ctrlAckBit != 0 {
			tm.pending = false
		}
	}
}

// Tick decrements the counter by one if running. A Tick that finds the
// counter already at zero latches a pending interrupt and reloads from
// the last-programmed reload value instead of decrementing,
// mirroring the PIA timer's expire-then-free-run behavior without the
// PIA's prescaler (a system.Config device descriptor can emulate a slower
// tick rate by mapping several Timer instances at different reload
// values instead).
func (tm *Timer) Tick(uint64) {
	if !tm.running {
		return
	}
	if tm.counter == 0 {
		tm.pending = true
		tm.counter = tm.reload
		return
	}
	tm.counter--
}

func (tm *Timer) Reset() {
	tm.counter = tm.reload
	tm.running = false
	tm.irqEn = false
	tm.pending = false
}

// IRQLine implements memory.IRQLiner: the timer asserts its IRQ line
// whenever it has a latched expiry pending and interrupts are enabled.
func (tm *Timer) IRQLine() bool {
	return tm.pending && tm.irqEn
}

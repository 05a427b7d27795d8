// Package memory defines the bus that routes the W65C02S's 16-bit address
// space to RAM, ROM and memory-mapped devices, and the Device contract that
// peripherals implement to be mapped onto it.
package memory

import "fmt"

// Device is the contract a memory-mapped peripheral must satisfy to be
// mapped onto a Bus. addr is 0-based within the mapping, not the full
// 16-bit bus address.
type Device interface {
	// Read returns the data byte stored at addr.
	Read(addr uint16) uint8
	// Write updates addr with val. Implementations backing a ROM mapping
	// simply ignore writes (the Bus itself also rejects writes to mappings
	// marked ReadOnly before they ever reach the device).
	Write(addr uint16, val uint8)
	// Tick is called once per master clock cycle, in scheduler priority
	// order, regardless of whether this cycle's bus access touched the
	// device.
	Tick(cycle uint64)
	// Reset is called when a RESET is acknowledged by the CPU.
	Reset()
}

// IRQLiner is optionally implemented by a Device that can assert IRQ. A
// caller polls IRQLine() and forwards true/false transitions
// into an irq.Controller via AssertIRQ/DeassertIRQ(name).
type IRQLiner interface {
	IRQLine() bool
}

// ram implements Device as a flat, fully read/write backing store. It is
// a standalone RAM device; the Bus's own store for addresses with no
// mapping covering them is a separate plain slice, not a ram.
type ram struct {
	cells      []uint8
	databusVal uint8
}

// NewRAM creates a R/W RAM device of the given size. size must be a power
// of two no larger than 64KiB; addresses are masked (aliased) to fit.
func NewRAM(size int) (Device, error) {
	if size <= 0 || size&(size-1) != 0 {
		return nil, fmt.Errorf("invalid RAM size: %d must be a power of 2", size)
	}
	if size > 1<<16 {
		return nil, fmt.Errorf("invalid RAM size: %d is bigger than 64k", size)
	}
	return &ram{cells: make([]uint8, size)}, nil
}

func (r *ram) Read(addr uint16) uint8 {
	addr &= uint16(len(r.cells) - 1)
	r.databusVal = r.cells[addr]
	return r.databusVal
}

func (r *ram) Write(addr uint16, val uint8) {
	addr &= uint16(len(r.cells) - 1)
	r.databusVal = val
	r.cells[addr] = val
}

func (r *ram) Tick(uint64) {}

// Reset clears RAM contents to zero. Real hardware powers on with
// indeterminate RAM; zeroing keeps test fixtures deterministic.
func (r *ram) Reset() {
	for i := range r.cells {
		r.cells[i] = 0
	}
}

// DatabusVal returns the last value to cross this device's data bus, for
// callers that depend on open-bus/databus-retention behavior.
func (r *ram) DatabusVal() uint8 {
	return r.databusVal
}

// rom implements Device as a read-only backing store. Writes are silently
// discarded, matching real ROM/flash behavior; the Bus additionally refuses
// writes to mappings marked ReadOnly before they ever reach here.
type rom struct {
	cells []uint8
}

// NewROM creates a read-only device preloaded with image. Reads beyond
// len(image) within the mapped range return 0xFF (unprogrammed/open bus).
func NewROM(image []byte) Device {
	cells := make([]uint8, len(image))
	copy(cells, image)
	return &rom{cells: cells}
}

func (r *rom) Read(addr uint16) uint8 {
	if int(addr) >= len(r.cells) {
		return 0xFF
	}
	return r.cells[addr]
}

func (r *rom) Write(uint16, uint8) {}
func (r *rom) Tick(uint64)         {}
func (r *rom) Reset()              {}

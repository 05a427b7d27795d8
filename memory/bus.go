package memory

import "sort"

// Priority controls the order the Scheduler ticks mapped devices within a
// single master cycle: CRITICAL devices tick before HIGH, before NORMAL,
// before LOW. CPU.Tick always runs before any device regardless of
// priority (spec §4.4's ordering guarantee).
type Priority int

const (
	PriorityCritical Priority = iota
	PriorityHigh
	PriorityNormal
	PriorityLow
)

// Mapping routes addresses in [Start,End] to Device, translating through
// Offset. A Mapping is created at configuration time (Bus.Map) and
// destroyed at shutdown or Bus.Unmap; it is otherwise immutable during
// execution.
type Mapping struct {
	Name     string
	Device   Device
	Start    uint16
	End      uint16
	Offset   uint16
	ReadOnly bool
	Priority Priority
}

func (m Mapping) covers(addr uint16) bool {
	return addr >= m.Start && addr <= m.End
}

// Bus is the single chokepoint for all reads and writes by the CPU and any
// bus-mastering device. It holds a sorted routing table of Mappings plus a
// flat backing store for any address no Mapping covers.
type Bus struct {
	mappings []Mapping // sorted by Start
	backing  []uint8   // 64KiB default RAM for unmapped space
	openBus  uint8

	lastHit    int // index into mappings of the last successful lookup, -1 if none
	lastLow    uint16
	lastHigh   uint16
	lastInBack bool
}

// NewBus creates an empty Bus. Until Map is called, every address reads
// and writes through the internal 64KiB backing store (so a caller can
// treat an unconfigured Bus as plain flat RAM for quick tests).
func NewBus() *Bus {
	return &Bus{
		backing: make([]uint8, 1<<16),
		openBus: 0xFF,
		lastHit: -1,
	}
}

// SetOpenBusValue overrides the Bus's stored open-bus value (default
// 0xFF). Read does not return it: the Bus always has a full 64KiB backing
// store, and every address no Mapping covers is read from that store.
func (b *Bus) SetOpenBusValue(v uint8) {
	b.openBus = v
}

// Map installs a new routing entry. It fails with ConfigError if the
// mapping's address range is invalid, overlaps an existing mapping, or
// reuses an existing mapping's name. Map must not be called while a
// Scheduler is mid step_cycle.
func (b *Bus) Map(m Mapping) error {
	if m.Start > m.End {
		return ConfigError{Reason: "start must be <= end"}
	}
	for _, existing := range b.mappings {
		if existing.Name == m.Name {
			return ConfigError{Reason: "duplicate mapping name " + m.Name}
		}
		if m.Start <= existing.End && existing.Start <= m.End {
			return ConfigError{Reason: "mapping " + m.Name + " overlaps " + existing.Name}
		}
	}
	b.mappings = append(b.mappings, m)
	sort.Slice(b.mappings, func(i, j int) bool { return b.mappings[i].Start < b.mappings[j].Start })
	b.invalidateCache()
	return nil
}

// Unmap removes the mapping with the given name. Returns ConfigError if no
// such mapping exists.
func (b *Bus) Unmap(name string) error {
	for i, m := range b.mappings {
		if m.Name == name {
			b.mappings = append(b.mappings[:i], b.mappings[i+1:]...)
			b.invalidateCache()
			return nil
		}
	}
	return ConfigError{Reason: "no such mapping " + name}
}

// Mappings returns the current routing table in start-address order. The
// returned slice is owned by the caller (a defensive copy).
func (b *Bus) Mappings() []Mapping {
	out := make([]Mapping, len(b.mappings))
	copy(out, b.mappings)
	return out
}

func (b *Bus) invalidateCache() {
	b.lastHit = -1
}

// find returns the index of the mapping covering addr, or -1 if none does.
// Binary search on the start-sorted slice with a one-entry last-hit cache
// to short-circuit sequential accesses inside one mapping (the common case
// for instruction fetch).
func (b *Bus) find(addr uint16) int {
	if b.lastHit >= 0 && addr >= b.lastLow && addr <= b.lastHigh {
		return b.lastHit
	}
	lo, hi := 0, len(b.mappings)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		m := b.mappings[mid]
		switch {
		case addr < m.Start:
			hi = mid - 1
		case addr > m.End:
			lo = mid + 1
		default:
			b.lastHit, b.lastLow, b.lastHigh = mid, m.Start, m.End
			return mid
		}
	}
	return -1
}

// Read routes addr to its covering Mapping (translating through Offset) or
// to the backing store. Never fails for in-range (all 65536) addresses.
func (b *Bus) Read(addr uint16) uint8 {
	if i := b.find(addr); i >= 0 {
		m := b.mappings[i]
		return m.Device.Read(addr - m.Start + m.Offset)
	}
	return b.backing[addr]
}

// Write routes addr the same way Read does. Writing to a mapping marked
// ReadOnly returns BusError{ErrWriteToReadOnly} without touching the
// device. Writing to an address with no mapping stores val in the backing
// store, where a later Read of that address returns it.
func (b *Bus) Write(addr uint16, val uint8) error {
	if i := b.find(addr); i >= 0 {
		m := b.mappings[i]
		if m.ReadOnly {
			return BusError{Kind: ErrWriteToReadOnly, Addr: addr, Name: m.Name}
		}
		m.Device.Write(addr-m.Start+m.Offset, val)
		return nil
	}
	b.backing[addr] = val
	return nil
}

// ReadWord reads two bytes at addr, addr+1 in little-endian order. The
// high byte address wraps at 0xFFFF+1 -> 0x0000.
func (b *Bus) ReadWord(addr uint16) uint16 {
	lo := b.Read(addr)
	hi := b.Read(addr + 1)
	return uint16(hi)<<8 | uint16(lo)
}

// WriteWord writes val as two bytes at addr, addr+1 in little-endian
// order. The high byte address wraps at 0xFFFF+1 -> 0x0000. Returns the
// first BusError encountered, if any (the low byte is always attempted).
func (b *Bus) WriteWord(addr uint16, val uint16) error {
	err := b.Write(addr, uint8(val&0xFF))
	if werr := b.Write(addr+1, uint8(val>>8)); werr != nil && err == nil {
		err = werr
	}
	return err
}

// Tick drives every mapped device's Tick(cycle) call in ascending Priority
// order (CRITICAL, HIGH, NORMAL, LOW), stable within a priority band by
// mapping Start address. The Scheduler calls this once per master cycle
// after the CPU has ticked.
func (b *Bus) Tick(cycle uint64) {
	order := make([]Mapping, len(b.mappings))
	copy(order, b.mappings)
	sort.SliceStable(order, func(i, j int) bool { return order[i].Priority < order[j].Priority })
	for _, m := range order {
		m.Device.Tick(cycle)
	}
}

// ResetDevices calls Reset on every mapped device. Called by the CPU's
// InterruptSequencer when a RESET is acknowledged.
func (b *Bus) ResetDevices() {
	for _, m := range b.mappings {
		m.Device.Reset()
	}
}

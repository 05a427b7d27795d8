package cpu

import "github.com/siska-tech/w65c02emu/irq"

// enterInterrupt performs the common push-PC/push-P/set-I/load-vector
// sequence shared by BRK, NMI and IRQ entry. isBRK selects the pushed B
// flag: 1 for software BRK, 0 for hardware NMI/IRQ, per the documented
// W65C02S B-flag discipline. Entry also clears D -- the 65C02's one
// deviation from the NMOS 6502, which leaves D untouched on interrupt.
func (c *Chip) enterInterrupt(vector uint16, returnPC uint16, isBRK bool) int {
	c.pushWord(returnPC)
	flags := c.P | PS1
	if isBRK {
		flags |= PBreak
	} else {
		flags &^= PBreak
	}
	c.push(flags)
	c.setFlag(PInterrupt, true)
	c.setFlag(PDecimal, false)
	c.PC = c.bus.ReadWord(vector)
	return 0
}

// enterReset performs RESET entry per the documented state machine: S is
// forced to 0xFD (the three dummy stack decrements real hardware performs
// without ever writing), I and the unused bit are forced high, D is
// forced low, PC loads from the vector, and every mapped device observes
// the RESET via ResetDevices.
func (c *Chip) enterReset(vector uint16) {
	c.S = 0xFD
	c.P |= PS1 | PInterrupt
	c.P &^= PDecimal
	c.PC = c.bus.ReadWord(vector)
	c.bus.ResetDevices()
}

// Tick advances the CPU by exactly one master cycle (spec §5 Scheduler
// contract). Because Acknowledge is only consulted once pendingLeft has
// drained to zero -- i.e. at an instruction boundary -- an interrupt
// line asserted during cycle k is never observed before cycle k+1, which
// preserves the one-cycle propagation delay the scheduler guarantees.
func (c *Chip) Tick() {
	c.Cycles++

	if c.pendingLeft > 0 {
		c.pendingLeft--
		return
	}

	// STP halts the CPU indefinitely, but RESET is unmaskable and
	// highest priority: it is the only line that can pull the CPU back
	// out of Stopped. NMI/IRQ pending while Stopped stay pending but do
	// not wake the CPU, matching real silicon.
	if c.state == Stopped && c.interrupts.HighestPriorityPending(c.flagI()) != irq.Reset {
		return
	}

	if vi, ok := c.interrupts.Acknowledge(c.flagI()); ok {
		c.state = Running
		if vi.Kind == irq.Reset {
			c.enterReset(vi.Vector)
		} else {
			c.enterInterrupt(vi.Vector, c.PC, false)
		}
		c.pendingLeft = vi.BaseCycles - 1
		return
	}

	if c.state == Waiting {
		return
	}

	opcode := c.bus.Read(c.PC)
	info := Decode(opcode)
	r := c.resolveAddress(info)
	extra := c.execute(info, r)
	c.pendingLeft = info.Cycles + extra - 1
}

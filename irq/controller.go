package irq

// Kind identifies which of the three interrupt lines a Controller serviced.
type Kind int

const (
	// None indicates no interrupt is pending/was acknowledged.
	None Kind = iota
	// Reset is the level, highest-priority, unmaskable line.
	Reset
	// NMI is the edge-triggered, unmaskable line.
	NMI
	// IRQ is the level, maskable-by-P.I line.
	IRQ
)

func (k Kind) String() string {
	switch k {
	case Reset:
		return "RESET"
	case NMI:
		return "NMI"
	case IRQ:
		return "IRQ"
	default:
		return "NONE"
	}
}

// VectorInfo describes the interrupt the CPU is about to service, returned
// by Acknowledge.
type VectorInfo struct {
	Vector     uint16
	Kind       Kind
	BaseCycles int
}

// Stats accumulates acknowledge counts per Kind, exposed read-only for
// tooling (debugger status lines, inspector views). It carries forward the
// bookkeeping the Python reference implementation kept in
// InterruptController._interrupt_count.
type Stats struct {
	ResetCount uint64
	NMICount   uint64
	IRQCount   uint64
}

// Controller aggregates pending interrupt state from arbitrary external
// sources and arbitrates RESET > NMI > IRQ priority for the CPU.
//
// NOTE: Acknowledge clears all IRQ sources atomically on take, rather than
// leaving each source individually asserted (unlike real hardware, where
// sources remain asserted until their owning device explicitly
// deasserts). This mirrors the source system being reimplemented: it is
// simpler and, because IRQ is level-triggered, equivalent in practice — a
// source that still wants service after RTI must keep driving the line,
// which produces a fresh pending request.
type Controller struct {
	irqSources map[string]bool
	nmiPending bool
	nmiHigh    bool
	resetPend  bool

	servicing Kind // informational only; not used for masking.
	stats     Stats

	onAssert      func(kind Kind, source string)
	onAcknowledge func(kind Kind)
}

// NewController creates an empty Controller with no lines asserted.
func NewController() *Controller {
	return &Controller{irqSources: make(map[string]bool)}
}

// OnAssert registers a hook invoked whenever a new interrupt request
// transitions from not-pending to pending (an IRQ source list going from
// empty to non-empty, an NMI edge, or RESET asserting). Intended for
// debugger/trace tooling; optional, and a no-op until set.
func (c *Controller) OnAssert(fn func(kind Kind, source string)) {
	c.onAssert = fn
}

// OnAcknowledge registers a hook invoked every time Acknowledge returns a
// non-None VectorInfo. Optional, and a no-op until set.
func (c *Controller) OnAcknowledge(fn func(kind Kind)) {
	c.onAcknowledge = fn
}

// AssertIRQ raises the IRQ line on behalf of sourceID. IRQ is level-driven:
// it reads as pending for as long as any source holds it.
func (c *Controller) AssertIRQ(sourceID string) {
	wasPending := len(c.irqSources) > 0
	c.irqSources[sourceID] = true
	if !wasPending && c.onAssert != nil {
		c.onAssert(IRQ, sourceID)
	}
}

// DeassertIRQ lowers sourceID's hold on the IRQ line. IRQ remains pending
// if any other source still holds it.
func (c *Controller) DeassertIRQ(sourceID string) {
	delete(c.irqSources, sourceID)
}

// AssertNMI signals a rising edge on the abstract NMI input. Per spec, NMI
// latches as pending only on a low->high transition; calling this again
// without an intervening DeassertNMI is suppressed (the line is already
// high, so there is no edge to observe).
func (c *Controller) AssertNMI() {
	if !c.nmiHigh {
		c.nmiPending = true
		c.nmiHigh = true
		if c.onAssert != nil {
			c.onAssert(NMI, "nmi")
		}
		return
	}
	c.nmiHigh = true
}

// DeassertNMI lowers the raw NMI signal so a subsequent AssertNMI can be
// observed as a new edge. It does not clear an already-latched pending
// NMI request.
func (c *Controller) DeassertNMI() {
	c.nmiHigh = false
}

// AssertReset raises the level-triggered, unmaskable RESET line.
func (c *Controller) AssertReset() {
	was := c.resetPend
	c.resetPend = true
	if !was && c.onAssert != nil {
		c.onAssert(Reset, "reset")
	}
}

// DeassertReset lowers the RESET line.
func (c *Controller) DeassertReset() {
	c.resetPend = false
}

// HighestPriorityPending reports, without mutating any state, which
// interrupt would be serviced next: Reset > NMI > (IRQ if pFlagI is
// false) > None. pFlagI is the CPU's current P.I flag.
func (c *Controller) HighestPriorityPending(pFlagI bool) Kind {
	switch {
	case c.resetPend:
		return Reset
	case c.nmiPending:
		return NMI
	case len(c.irqSources) > 0 && !pFlagI:
		return IRQ
	default:
		return None
	}
}

// Acknowledge selects the same interrupt HighestPriorityPending would and,
// unless it is None, atomically clears the corresponding request state
// (RESET pending, latched NMI, or every IRQ source) and returns its vector
// and entry-sequence cycle cost. Returns (VectorInfo{}, false) if nothing
// is acknowledged (including when IRQ is pending but masked by pFlagI).
func (c *Controller) Acknowledge(pFlagI bool) (VectorInfo, bool) {
	kind := c.HighestPriorityPending(pFlagI)
	if kind == None {
		return VectorInfo{}, false
	}
	switch kind {
	case Reset:
		c.resetPend = false
		c.stats.ResetCount++
	case NMI:
		c.nmiPending = false
		c.stats.NMICount++
	case IRQ:
		for s := range c.irqSources {
			delete(c.irqSources, s)
		}
		c.stats.IRQCount++
	}
	c.servicing = kind
	if c.onAcknowledge != nil {
		c.onAcknowledge(kind)
	}
	return vectorFor(kind), true
}

// AcknowledgeReturn (RTI) clears the informational "currently servicing"
// marker. It has no effect on pending-interrupt arbitration: masking is
// entirely governed by P.I and the per-line state above.
func (c *Controller) AcknowledgeReturn() {
	c.servicing = None
}

// Servicing reports which interrupt the CPU most recently entered and has
// not yet RTI'd from. Informational only.
func (c *Controller) Servicing() Kind {
	return c.servicing
}

// Stats returns a snapshot of acknowledge counters.
func (c *Controller) Stats() Stats {
	return c.stats
}

func vectorFor(kind Kind) VectorInfo {
	switch kind {
	case Reset:
		return VectorInfo{Vector: 0xFFFC, Kind: Reset, BaseCycles: 7}
	case NMI:
		return VectorInfo{Vector: 0xFFFA, Kind: NMI, BaseCycles: 7}
	case IRQ:
		return VectorInfo{Vector: 0xFFFE, Kind: IRQ, BaseCycles: 7}
	default:
		return VectorInfo{}
	}
}

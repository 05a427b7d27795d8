package devices

import "github.com/siska-tech/w65c02emu/io"

// InputPort is a read-only memory.Device wrapping an io.Port8: reads
// return the port's current Input() value at every address in the
// mapping, writes are discarded. Adapted from the atari2600 package's
// portA/portB pattern (jmchacon/6502/atari2600/inputs.go), generalized
// from joystick-specific bit packing to an arbitrary caller-supplied
// io.Port8.
type InputPort struct {
	port io.Port8
}

// NewInputPort wraps port as a memory.Device.
func NewInputPort(port io.Port8) *InputPort {
	return &InputPort{port: port}
}

func (p *InputPort) Read(uint16) uint8   { return p.port.Input() }
func (p *InputPort) Write(uint16, uint8) {}
func (p *InputPort) Tick(uint64)         {}
func (p *InputPort) Reset()              {}

package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTimerCountsDownAndExpires(t *testing.T) {
	tm := NewTimer(2).(*Timer)
	tm.Write(RegControl, ctrlRunning|ctrlIRQEn)

	tm.Tick(1)
	assert.Equal(t, uint16(1), tm.counter)
	assert.False(t, tm.IRQLine())

	tm.Tick(2)
	assert.Equal(t, uint16(0), tm.counter)
	assert.False(t, tm.IRQLine())

	tm.Tick(3)
	assert.True(t, tm.IRQLine(), "timer should latch pending+irqEn on reaching zero")
	assert.Equal(t, uint16(2), tm.counter, "should reload from reload value")
}

func TestTimerAcknowledgeClearsPending(t *testing.T) {
	tm := NewTimer(0).(*Timer)
	tm.Write(RegControl, ctrlRunning|ctrlIRQEn)
	tm.Tick(1)
	assert.True(t, tm.IRQLine())

	tm.Write(RegControl, ctrlRunning|ctrlIRQEn|ctrlAckBit)
	assert.False(t, tm.IRQLine())
}

func TestTimerStoppedDoesNotCountDown(t *testing.T) {
	tm := NewTimer(5).(*Timer)
	tm.Tick(1)
	tm.Tick(2)
	assert.Equal(t, uint16(5), tm.counter)
}

func TestInputPortReflectsSource(t *testing.T) {
	src := fakePort{val: 0x42}
	p := NewInputPort(&src)
	assert.Equal(t, uint8(0x42), p.Read(0))
	p.Write(0, 0xFF) // discarded
	assert.Equal(t, uint8(0x42), p.Read(0))
	src.val = 0x01
	assert.Equal(t, uint8(0x01), p.Read(0))
}

type fakePort struct{ val uint8 }

func (f *fakePort) Input() uint8 { return f.val }

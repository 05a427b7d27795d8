package memory

import "testing"

func TestRAMAliasing(t *testing.T) {
	r, err := NewRAM(256)
	if err != nil {
		t.Fatalf("NewRAM: %v", err)
	}
	r.Write(0x00, 0x42)
	if got, want := r.Read(0x100), uint8(0x42); got != want {
		t.Errorf("aliased read got %.2X want %.2X", got, want)
	}
}

func TestRAMInvalidSize(t *testing.T) {
	if _, err := NewRAM(0); err == nil {
		t.Error("NewRAM(0) should have errored")
	}
	if _, err := NewRAM(100); err == nil {
		t.Error("NewRAM(100) (not power of 2) should have errored")
	}
	if _, err := NewRAM(1 << 17); err == nil {
		t.Error("NewRAM(1<<17) (bigger than 64k) should have errored")
	}
}

func TestROMReadOnly(t *testing.T) {
	rom := NewROM([]byte{0xDE, 0xAD})
	rom.Write(0x00, 0xFF)
	if got, want := rom.Read(0x00), uint8(0xDE); got != want {
		t.Errorf("ROM write should be a no-op, got %.2X want %.2X", got, want)
	}
	if got, want := rom.Read(0x02), uint8(0xFF); got != want {
		t.Errorf("ROM read past image should be open bus 0xFF, got %.2X want %.2X", got, want)
	}
}

package memory

import "testing"

func TestBusReadWriteBacking(t *testing.T) {
	b := NewBus()
	if err := b.Write(0x1234, 0x42); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := b.Read(0x1234), uint8(0x42); got != want {
		t.Errorf("Read after Write got %.2X want %.2X", got, want)
	}
}

func TestBusOpenBusIsNotAnError(t *testing.T) {
	b := NewBus()
	b.backing = nil // simulate a bus with no universal backing store
	// Read of any address on a nil backing store would panic; guard by
	// re-creating a zero-length window instead to exercise Map's routing.
	b.backing = make([]uint8, 1<<16)
	dev := NewROM([]byte{0x11})
	if err := b.Map(Mapping{Name: "rom", Device: dev, Start: 0x8000, End: 0x8000}); err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got, want := b.Read(0x9000), b.openBus; got != want {
		t.Errorf("unmapped read got %.2X want open bus %.2X", got, want)
	}
}

func TestBusWordWrapAndEndian(t *testing.T) {
	b := NewBus()
	if err := b.WriteWord(0xFFFF, 0xABCD); err != nil {
		t.Fatalf("WriteWord: %v", err)
	}
	if got, want := b.Read(0xFFFF), uint8(0xCD); got != want {
		t.Errorf("low byte got %.2X want %.2X", got, want)
	}
	if got, want := b.Read(0x0000), uint8(0xAB); got != want {
		t.Errorf("high byte should wrap to 0x0000, got %.2X want %.2X", got, want)
	}
	if got, want := b.ReadWord(0xFFFF), uint16(0xABCD); got != want {
		t.Errorf("ReadWord wraparound got %.4X want %.4X", got, want)
	}
}

func TestBusMapOverlapRejected(t *testing.T) {
	b := NewBus()
	r1, _ := NewRAM(256)
	r2, _ := NewRAM(256)
	if err := b.Map(Mapping{Name: "a", Device: r1, Start: 0x2000, End: 0x20FF}); err != nil {
		t.Fatalf("first Map: %v", err)
	}
	if err := b.Map(Mapping{Name: "b", Device: r2, Start: 0x20FF, End: 0x21FF}); err == nil {
		t.Error("overlapping Map should have failed")
	}
	if err := b.Map(Mapping{Name: "a", Device: r2, Start: 0x3000, End: 0x30FF}); err == nil {
		t.Error("duplicate-name Map should have failed")
	}
}

func TestBusWriteReadOnlyFault(t *testing.T) {
	b := NewBus()
	rom := NewROM([]byte{0x01, 0x02})
	if err := b.Map(Mapping{Name: "rom", Device: rom, Start: 0x8000, End: 0x8001, ReadOnly: true}); err != nil {
		t.Fatalf("Map: %v", err)
	}
	err := b.Write(0x8000, 0xFF)
	if err == nil {
		t.Fatal("write to read-only mapping should fault")
	}
	be, ok := err.(BusError)
	if !ok || be.Kind != ErrWriteToReadOnly {
		t.Errorf("got error %v, want BusError{ErrWriteToReadOnly}", err)
	}
}

func TestBusMappingRoutesThroughOffset(t *testing.T) {
	b := NewBus()
	dev, _ := NewRAM(16)
	dev.Write(0x05, 0x99)
	if err := b.Map(Mapping{Name: "dev", Device: dev, Start: 0x4000, End: 0x400F, Offset: 0}); err != nil {
		t.Fatalf("Map: %v", err)
	}
	if got, want := b.Read(0x4005), uint8(0x99); got != want {
		t.Errorf("offset-routed read got %.2X want %.2X", got, want)
	}
}

func TestBusLastHitCacheInvalidatedOnUnmap(t *testing.T) {
	b := NewBus()
	dev, _ := NewRAM(16)
	if err := b.Map(Mapping{Name: "dev", Device: dev, Start: 0x4000, End: 0x400F}); err != nil {
		t.Fatalf("Map: %v", err)
	}
	_ = b.Read(0x4000) // warm the cache
	if err := b.Unmap("dev"); err != nil {
		t.Fatalf("Unmap: %v", err)
	}
	// Now 0x4000 should fall through to the backing store, not the stale cache.
	if err := b.Write(0x4000, 0x77); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got, want := b.Read(0x4000), uint8(0x77); got != want {
		t.Errorf("post-unmap read got %.2X want %.2X", got, want)
	}
}

func TestBusTickPriorityOrder(t *testing.T) {
	b := NewBus()
	var order []string
	mk := func(name string) Device { return &tickRecorder{name: name, log: &order} }
	if err := b.Map(Mapping{Name: "low", Device: mk("low"), Start: 0x00, End: 0x00, Priority: PriorityLow}); err != nil {
		t.Fatal(err)
	}
	if err := b.Map(Mapping{Name: "crit", Device: mk("crit"), Start: 0x01, End: 0x01, Priority: PriorityCritical}); err != nil {
		t.Fatal(err)
	}
	if err := b.Map(Mapping{Name: "normal", Device: mk("normal"), Start: 0x02, End: 0x02, Priority: PriorityNormal}); err != nil {
		t.Fatal(err)
	}
	b.Tick(1)
	want := []string{"crit", "normal", "low"}
	if len(order) != len(want) {
		t.Fatalf("got %v want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Errorf("tick order[%d] got %s want %s (full: %v)", i, order[i], want[i], order)
		}
	}
}

type tickRecorder struct {
	name string
	log  *[]string
}

func (t *tickRecorder) Read(uint16) uint8     { return 0 }
func (t *tickRecorder) Write(uint16, uint8)   {}
func (t *tickRecorder) Reset()                {}
func (t *tickRecorder) Tick(cycle uint64)     { *t.log = append(*t.log, t.name) }

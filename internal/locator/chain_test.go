package locator

import "testing"

func TestFindAndLockItemSkipsTooSmallAndLocked(t *testing.T) {
	backing := make([]byte, HeaderLength)
	h := headerAt(uintptrOf(backing))
	initialize(h, uintptrOf(backing), HeaderLength, 1)

	tooSmall := h.appendItem(newItem(0x10000, 8))
	tooSmall.Release()

	locked := h.appendItem(newItem(0x20000, 4096))
	locked.it.tryLock() // simulate another writer already holding it

	usable := h.appendItem(newItem(0x30000, 4096))
	usable.Release()

	got, ok := findAndLockItem(h, SearchSettings{Size: 64, MinAddress: 0, MaxAddress: 0xffffffff})
	if !ok {
		t.Fatal("expected a usable item to be found")
	}

	if got.BaseAddress() != 0x30000 {
		t.Errorf("BaseAddress = %#x, want %#x", got.BaseAddress(), uintptr(0x30000))
	}
}

func TestFindAndLockItemReportsNoneWhenAllLocked(t *testing.T) {
	backing := make([]byte, HeaderLength)
	h := headerAt(uintptrOf(backing))
	initialize(h, uintptrOf(backing), HeaderLength, 1)

	h.appendItem(newItem(0x10000, 4096)).it.tryLock()

	if _, ok := findAndLockItem(h, SearchSettings{Size: 64, MinAddress: 0, MaxAddress: 0xffffffff}); ok {
		t.Fatal("expected no item to be available while the only candidate is locked")
	}
}

func TestGetBufferReturnsExistingItemWithoutGrowing(t *testing.T) {
	backing := make([]byte, HeaderLength)
	h := headerAt(uintptrOf(backing))
	initialize(h, uintptrOf(backing), HeaderLength, 1)

	h.appendItem(newItem(0x40000, 4096)).Release()

	handle, err := GetBuffer(h, SearchSettings{Size: 128, MinAddress: 0, MaxAddress: 0xffffffff})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if handle.BaseAddress() != 0x40000 {
		t.Errorf("BaseAddress = %#x, want %#x", handle.BaseAddress(), uintptr(0x40000))
	}
}

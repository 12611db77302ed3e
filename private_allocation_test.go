package membuffers

import (
	"testing"

	"github.com/orizon-lang/membuffers/internal/bufalloc"
)

func TestPrivateAllocationReleaseIsIdempotent(t *testing.T) {
	backing := make([]byte, 4096)
	p := &PrivateAllocation{alloc: bufalloc.Allocation{BaseAddress: uintptrOfBytes(backing), Size: 4096}}

	p.Release()

	if err := p.Release(); err != nil {
		t.Errorf("second Release should be a no-op, got error: %v", err)
	}
}

func TestPrivateAllocationAccessors(t *testing.T) {
	p := &PrivateAllocation{alloc: bufalloc.Allocation{BaseAddress: 0x123000, Size: 4096}}

	if p.BaseAddress() != 0x123000 {
		t.Errorf("BaseAddress = %#x, want %#x", p.BaseAddress(), uintptr(0x123000))
	}

	if p.Size() != 4096 {
		t.Errorf("Size = %d, want 4096", p.Size())
	}
}

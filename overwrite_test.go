package membuffers

import (
	"testing"

	"github.com/orizon-lang/membuffers/internal/platform"
)

type fakePatcher struct {
	toggleCalls int
	flushCalls  int
}

func (f *fakePatcher) ToggleWrite(addr, n uintptr, writable bool) error {
	f.toggleCalls++
	return nil
}

func (f *fakePatcher) FlushInstructionCache(addr, n uintptr) {
	f.flushCalls++
}

func TestOverwriteAllocatedCodeExFollowsTheFourStepContract(t *testing.T) {
	prior := platform.Default
	fake := &fakePatcher{}
	platform.SetDefault(fake)

	t.Cleanup(func() { platform.SetDefault(prior) })

	dst := make([]byte, 8)
	called := false

	err := OverwriteAllocatedCodeEx([]byte{1, 2, 3, 4}, uintptrOfBytes(dst), func() { called = true })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if fake.toggleCalls != 2 {
		t.Errorf("ToggleWrite calls = %d, want 2 (on then off)", fake.toggleCalls)
	}

	if fake.flushCalls != 1 {
		t.Errorf("FlushInstructionCache calls = %d, want 1", fake.flushCalls)
	}

	if !called {
		t.Error("expected the callback to run")
	}

	if dst[0] != 1 || dst[3] != 4 {
		t.Errorf("bytes were not copied into dst: %v", dst[:4])
	}
}

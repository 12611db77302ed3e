package platform

import "testing"

type fakePatcher struct {
	toggled int
	flushed int
}

func (f *fakePatcher) ToggleWrite(addr uintptr, n uintptr, writable bool) error {
	f.toggled++
	return nil
}

func (f *fakePatcher) FlushInstructionCache(addr uintptr, n uintptr) {
	f.flushed++
}

func TestSetDefaultOverridesCodePatcher(t *testing.T) {
	original := Default
	defer SetDefault(original)

	fake := &fakePatcher{}
	SetDefault(fake)

	if err := Default.ToggleWrite(0, 0, true); err != nil {
		t.Fatalf("ToggleWrite: %v", err)
	}

	Default.FlushInstructionCache(0, 0)

	if fake.toggled != 1 || fake.flushed != 1 {
		t.Errorf("expected fake patcher to be invoked once each, got toggled=%d flushed=%d", fake.toggled, fake.flushed)
	}
}

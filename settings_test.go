package membuffers

import "testing"

func TestBufferSearchSettingsFromProximity(t *testing.T) {
	t.Run("WindowCentersOnTarget", func(t *testing.T) {
		s := BufferSearchSettingsFromProximity(0x1000, 0x500000, 4096)

		if s.MinAddress != 0x500000-0x1000 {
			t.Errorf("MinAddress = %#x, want %#x", s.MinAddress, uintptr(0x500000-0x1000))
		}

		if s.MaxAddress != 0x500000+0x1000 {
			t.Errorf("MaxAddress = %#x, want %#x", s.MaxAddress, uintptr(0x500000+0x1000))
		}

		if s.Size != 4096 {
			t.Errorf("Size = %d, want 4096", s.Size)
		}
	})

	t.Run("SaturatesAtZeroNearTheOrigin", func(t *testing.T) {
		s := BufferSearchSettingsFromProximity(0x1000, 0x10, 4096)

		if s.MinAddress != 0 {
			t.Errorf("MinAddress = %#x, want 0", s.MinAddress)
		}
	})
}

func TestBufferAllocatorSettingsFromProximity(t *testing.T) {
	s := BufferAllocatorSettingsFromProximity(0x2000, 0x500000, 4096, 42, 3, true)

	if s.TargetProcessID != 42 {
		t.Errorf("TargetProcessID = %d, want 42", s.TargetProcessID)
	}

	if s.RetryCount != 3 {
		t.Errorf("RetryCount = %d, want 3", s.RetryCount)
	}

	if !s.BruteForce {
		t.Error("expected BruteForce to be carried through")
	}

	if s.MaxAddress-s.MinAddress != 0x4000 {
		t.Errorf("window width = %#x, want %#x", s.MaxAddress-s.MinAddress, uintptr(0x4000))
	}
}

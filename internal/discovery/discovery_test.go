package discovery

import "testing"

func TestObjectName(t *testing.T) {
	got := objectName(1234)
	want := "Reloaded.Memory.Buffers.MemoryBuffer, PID 1234"

	if got != want {
		t.Errorf("objectName(1234) = %q, want %q", got, want)
	}
}

func TestSanitizeFileName(t *testing.T) {
	got := sanitizeFileName("Reloaded.Memory.Buffers.MemoryBuffer, PID 1234")
	want := "Reloaded.Memory.Buffers.MemoryBuffer,_PID_1234"

	if got != want {
		t.Errorf("sanitizeFileName = %q, want %q", got, want)
	}
}

func TestPidFromFileName(t *testing.T) {
	t.Run("ValidName", func(t *testing.T) {
		pid, ok := pidFromFileName(sanitizeFileName(objectName(4321)))
		if !ok {
			t.Fatal("expected pid to parse")
		}

		if pid != 4321 {
			t.Errorf("pid = %d, want 4321", pid)
		}
	})

	t.Run("NameWithoutPidMarker", func(t *testing.T) {
		if _, ok := pidFromFileName("not-a-locator-object"); ok {
			t.Error("expected no pid to be found")
		}
	})
}

func TestCheckVersion(t *testing.T) {
	t.Run("CurrentVersionIsSupported", func(t *testing.T) {
		if err := checkVersion(1); err != nil {
			t.Errorf("unexpected error for the module's own version: %v", err)
		}
	})

	t.Run("FutureMajorVersionIsRejected", func(t *testing.T) {
		if err := checkVersion(7); err == nil {
			t.Error("expected an error for an unsupported future version")
		}
	})
}

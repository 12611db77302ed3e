//go:build windows

package platform

import "golang.org/x/sys/windows"

// Dynamically linked so this package does not need a newer x/sys/windows
// than whatever wraps VirtualProtect; FlushInstructionCache in particular
// is not always exposed as a typed wrapper, so it is resolved via a
// lazy-loaded system DLL proc instead.
var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procFlushInstructionCache = kernel32.NewProc("FlushInstructionCache")
)

type windowsPatcher struct{}

func newDefault() CodePatcher { return windowsPatcher{} }

// ToggleWrite flips [addr, addr+n) between PAGE_EXECUTE_READWRITE (for the
// patch) and PAGE_EXECUTE_READ (restored afterwards).
func (windowsPatcher) ToggleWrite(addr uintptr, n uintptr, writable bool) error {
	protect := uint32(windows.PAGE_EXECUTE_READ)
	if writable {
		protect = windows.PAGE_EXECUTE_READWRITE
	}

	var old uint32

	return windows.VirtualProtect(addr, n, protect, &old)
}

// FlushInstructionCache calls the Win32 FlushInstructionCache API, which is
// a real no-op on x86/x86_64 but matters on Windows-on-ARM.
func (windowsPatcher) FlushInstructionCache(addr uintptr, n uintptr) {
	currentProcess := windows.CurrentProcess()

	_, _, _ = procFlushInstructionCache.Call(uintptr(currentProcess), addr, n)
}

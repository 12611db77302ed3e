package membuffers

import (
	"unsafe"

	"github.com/orizon-lang/membuffers/internal/platform"
)

// OverwriteAllocatedCode mutates n bytes starting at dst, an address
// previously returned by AppendBytes/AppendCode, following 's
// four-step contract: toggle off W^X if the platform enforces it, copy,
// toggle X back on, then flush the instruction cache.
func OverwriteAllocatedCode(src []byte, dst uintptr) error {
	return OverwriteAllocatedCodeEx(src, dst, nil)
}

// OverwriteAllocatedCodeEx is OverwriteAllocatedCode with an optional
// callback run between the write becoming visible and the cache flush,
// for callers that need to do something else (e.g. notify a debugger)
// before the freshly written bytes are considered executable.
func OverwriteAllocatedCodeEx(src []byte, dst uintptr, callback func()) error {
	n := uintptr(len(src))

	if err := platform.Default.ToggleWrite(dst, n, true); err != nil {
		return err
	}

	copy(unsafe.Slice((*byte)(unsafe.Pointer(dst)), n), src)

	if err := platform.Default.ToggleWrite(dst, n, false); err != nil {
		return err
	}

	if callback != nil {
		callback()
	}

	platform.Default.FlushInstructionCache(dst, n)

	return nil
}

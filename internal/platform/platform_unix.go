//go:build unix

package platform

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

type unixPatcher struct{}

func newDefault() CodePatcher { return unixPatcher{} }

// ToggleWrite sets the protection of the pages covering [addr, addr+n) to
// RWX (writable=true, for the patch) or RX (writable=false, restored
// afterwards). Buffers are reserved RWX, so after the restore step those
// pages are RX rather than RWX. It exists so a future W^X-enforcing
// backend only needs a different CodePatcher, not a different call site.
func (unixPatcher) ToggleWrite(addr uintptr, n uintptr, writable bool) error {
	prot := unix.PROT_READ | unix.PROT_EXEC
	if writable {
		prot |= unix.PROT_WRITE
	}

	// mprotect works on whole pages, so start at the page containing addr.
	start := addr &^ (uintptr(unix.Getpagesize()) - 1)

	b := unsafe.Slice((*byte)(unsafe.Pointer(start)), n+(addr-start))

	return unix.Mprotect(b, prot)
}

// FlushInstructionCache is a no-op on the x86/x86_64 family (unified I/D
// cache). On non-unified-cache ISAs (arm, arm64 on some cores) a real
// implementation would issue the architecture's cache-flush syscall; this
// module does not target those backends directly, so the hook is left as
// an explicit no-op.8's "no-op on x86 family" carve-out.
func (unixPatcher) FlushInstructionCache(addr uintptr, n uintptr) {}

//go:build linux

package bufalloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// reserveFixed requests size bytes of RWX memory at the exact address addr
// using MAP_FIXED_NOREPLACE (Linux >= 4.17), which refuses to relocate the
// mapping the way plain MAP_FIXED would. unix.Mmap does not expose a
// requested-address parameter, so the mmap(2) syscall is invoked directly.
func reserveFixed(addr uintptr, size uint32) (uintptr, error) {
	const prot = unix.PROT_READ | unix.PROT_WRITE | unix.PROT_EXEC
	const flags = unix.MAP_PRIVATE | unix.MAP_ANONYMOUS | unix.MAP_FIXED_NOREPLACE

	got, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, uintptr(size), uintptr(prot), uintptr(flags), ^uintptr(0), 0)
	if errno != 0 {
		return 0, fmt.Errorf("bufalloc: mmap(%#x, %d): %w", addr, size, errno)
	}

	return got, nil
}

func releaseReservation(addr uintptr, size uint32) error {
	return unix.Munmap(unsafeByteSlice(addr, size))
}

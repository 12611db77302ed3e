//go:build !linux && !windows

package bufalloc

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// reserveFixed requests size bytes of RWX memory at the exact address addr.
// Darwin and the BSDs don't have Linux's MAP_FIXED_NOREPLACE, and plain
// MAP_FIXED would silently replace an existing mapping, so addr is passed
// as a placement hint without MAP_FIXED: the kernel uses addr when that
// range is free and otherwise picks another address, which tryReserve then
// releases as a mismatch.
func reserveFixed(addr uintptr, size uint32) (uintptr, error) {
	const prot = unix.PROT_READ | unix.PROT_WRITE | unix.PROT_EXEC
	const flags = unix.MAP_PRIVATE | unix.MAP_ANON

	got, _, errno := unix.Syscall6(unix.SYS_MMAP, addr, uintptr(size), uintptr(prot), uintptr(flags), ^uintptr(0), 0)
	if errno != 0 {
		return 0, fmt.Errorf("bufalloc: mmap(%#x, %d): %w", addr, size, errno)
	}

	return got, nil
}

func releaseReservation(addr uintptr, size uint32) error {
	return unix.Munmap(unsafeByteSlice(addr, size))
}

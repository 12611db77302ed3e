//go:build windows

package bufalloc

import "golang.org/x/sys/windows"

// reserveFixed requests size bytes of RWX memory at the exact address addr.
// VirtualAlloc with an explicit lpAddress never relocates: it either
// reserves exactly there or returns NULL, so no separate "NOREPLACE" flag
// is needed here.
func reserveFixed(addr uintptr, size uint32) (uintptr, error) {
	got, err := windows.VirtualAlloc(addr, uintptr(size), windows.MEM_RESERVE|windows.MEM_COMMIT, windows.PAGE_EXECUTE_READWRITE)
	if err != nil {
		return 0, err
	}

	return got, nil
}

func releaseReservation(addr uintptr, size uint32) error {
	return windows.VirtualFree(addr, 0, windows.MEM_RELEASE)
}

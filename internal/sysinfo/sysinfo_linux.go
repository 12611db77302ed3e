//go:build linux

package sysinfo

import "golang.org/x/sys/unix"

// query populates Info on Linux. The kernel does not expose a single
// syscall for "maximum user-space address" the way Windows does, so we fall
// back to the documented conservative value; page size comes from the
// actual getpagesize(2) syscall, and allocation granularity on Linux is the
// page size itself (there is no separate 64KiB-style granularity as on
// Windows).
func query() Info {
	pageSize := uint32(unix.Getpagesize())

	maxAddr := conservativeMaxAddress64
	if is32Bit {
		maxAddr = conservativeMaxAddress32
	}

	return Info{
		MaxAddress:            maxAddr,
		AllocationGranularity: pageSize,
		PageSize:              pageSize,
		ThisProcessID:         defaultProcessID(),
	}
}

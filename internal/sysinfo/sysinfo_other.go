//go:build !linux && !windows

package sysinfo

import "syscall"

// query populates Info on platforms without a dedicated fast path (darwin,
// the BSDs): page size from the generic mapping API, allocation granularity
// clamped to at least the page size, max address from the documented
// conservative constant.1.
func query() Info {
	pageSize := uint32(syscall.Getpagesize())

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

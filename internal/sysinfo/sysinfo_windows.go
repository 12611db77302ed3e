//go:build windows

package sysinfo

import "golang.org/x/sys/windows"

// query populates Info on Windows via GetSystemInfo, which is the one OS
// family that exposes all three facts (max application address,
// allocation granularity, page size) through a single syscall.
func query() Info {
	var si windows.SystemInfo

	windows.GetSystemInfo(&si)

	return Info{
		MaxAddress:            si.MaximumApplicationAddress,
		AllocationGranularity: si.AllocationGranularity,
		PageSize:              si.PageSize,
		ThisProcessID:         defaultProcessID(),
	}
}

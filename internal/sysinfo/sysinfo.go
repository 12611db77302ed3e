// Package sysinfo caches the handful of OS facts the allocator needs: the
// maximum user-space address, the allocation granularity, the page size and
// the current process id. All of it is read once and treated as immutable
// for the remainder of the process's life.
package sysinfo

import (
	"os"
	"sync"
	"unsafe"
)

// is32Bit is true when uintptr is 32 bits wide on this architecture.
const is32Bit = unsafe.Sizeof(uintptr(0)) == 4

// Info holds the process-wide, immutable-after-first-read system facts.
type Info struct {
	MaxAddress            uintptr
	AllocationGranularity uint32
	PageSize              uint32
	ThisProcessID         int
}

var (
	once   sync.Once
	cached Info
)

// Get returns the process-wide Info, populating it on first call.
func Get() Info {
	once.Do(func() {
		cached = query()
	})

	return cached
}

// conservativeMaxAddress64 is the documented fallback for 64-bit
// architectures lacking a direct "max application address" query: half of
// the 48-bit canonical user address space, matching the Rust reference's
// fallback constant.
const conservativeMaxAddress64 uintptr = 0x7FFF_FFFF_FFFF

// conservativeMaxAddress32 is the fallback for 32-bit architectures.
const conservativeMaxAddress32 uintptr = 0xFFFF_FFFF

func defaultProcessID() int {
	return os.Getpid()
}

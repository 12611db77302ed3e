package membuffers

import "github.com/orizon-lang/membuffers/internal/addrrange"

// BufferSearchSettings narrows a GetBuffer/GetBufferAligned search to an
// address window and a size.
type BufferSearchSettings struct {
	MinAddress uintptr
	MaxAddress uintptr
	Size       uint32
}

// BufferAllocatorSettings configures AllocatePrivateMemory.
type BufferAllocatorSettings struct {
	MinAddress      uintptr
	MaxAddress      uintptr
	Size            uint32
	TargetProcessID int
	RetryCount      int
	BruteForce      bool
}

// BufferSearchSettingsFromProximity builds a window of [target-proximity,
// target+proximity], saturating at the address space's edges, as an
// ergonomic constructor for proximity-based searches.
func BufferSearchSettingsFromProximity(proximity uint, target uintptr, size uint32) BufferSearchSettings {
	min, max := proximityWindow(proximity, target)

	return BufferSearchSettings{MinAddress: min, MaxAddress: max, Size: size}
}

// BufferAllocatorSettingsFromProximity is BufferSearchSettingsFromProximity
// for AllocatePrivateMemory, additionally carrying the target process id,
// retry count and brute-force flag every direct allocation needs.
func BufferAllocatorSettingsFromProximity(proximity uint, target uintptr, size uint32, targetPID int, retries int, bruteForce bool) BufferAllocatorSettings {
	min, max := proximityWindow(proximity, target)

	return BufferAllocatorSettings{
		MinAddress:      min,
		MaxAddress:      max,
		Size:            size,
		TargetProcessID: targetPID,
		RetryCount:      retries,
		BruteForce:      bruteForce,
	}
}

func proximityWindow(proximity uint, target uintptr) (uintptr, uintptr) {
	delta := uintptr(proximity)

	return addrrange.SubSat(target, delta), addrrange.AddSat(target, delta)
}

// Package bufalloc implements the proximity-constrained buffer allocator
//: given a [min, max] address window and a size, it walks
// free regions, generates candidate addresses, and asks the OS for a
// fixed-address, non-replacing RWX reservation at each one until it finds
// one that succeeds.
package bufalloc

import (
	"github.com/orizon-lang/membuffers/internal/addrrange"
	"github.com/orizon-lang/membuffers/internal/candidate"
	"github.com/orizon-lang/membuffers/internal/errs"
	"github.com/orizon-lang/membuffers/internal/freeregion"
	"github.com/orizon-lang/membuffers/internal/sysinfo"
)

// Settings configures a single allocation attempt.
type Settings struct {
	MinAddress      uintptr
	MaxAddress      uintptr
	Size            uint32
	TargetProcessID int
	RetryCount      int
	BruteForce      bool
}

// Allocation describes a successful fixed-address RWX reservation.
type Allocation struct {
	BaseAddress uintptr
	Size        uint32
}

// AllocationError is returned when no window/page combination yields a
// reservation within RetryCount attempts (and brute force, if enabled,
// also fails). It carries the settings that were attempted so a caller can
// log or retry with a relaxed window.
type AllocationError struct {
	errs.Base

	Settings Settings
}

func (e *AllocationError) Error() string { return e.Base.String() }

func newAllocationError(settings Settings, cause errs.Cause, message string) *AllocationError {
	return &AllocationError{Base: errs.NewBase(errs.CategoryAllocation, cause, message), Settings: settings}
}

// sanitize clamps and rounds settings in place.5: min
// address is bumped up to at least one allocation granularity (address 0
// is a common "any address" sentinel we must not actually try to reserve),
// and size is rounded up to a granularity multiple and floored at 1.
func (s *Settings) sanitize(info sysinfo.Info) {
	granularity := uintptr(info.AllocationGranularity)

	if s.MinAddress < granularity {
		s.MinAddress = granularity
	}

	if s.Size == 0 {
		s.Size = 1
	}

	s.Size = uint32(addrrange.RoundUp(uintptr(s.Size), granularity))
}

// Allocate runs the search described in : enumerate free
// regions, generate candidates per region, attempt a fixed-address RWX
// reservation at each; retry the whole pass up to RetryCount times, and
// fall back to brute-force probing if requested and still unsuccessful.
func Allocate(settings Settings) (Allocation, error) {
	info := sysinfo.Get()
	settings.sanitize(info)

	granularity := uintptr(info.AllocationGranularity)

	for attempt := 0; attempt < settings.RetryCount; attempt++ {
		regions, err := freeregion.Enumerate(settings.TargetProcessID, settings.MaxAddress)
		if err != nil {
			return Allocation{}, newAllocationError(settings, errs.CauseOSReservationFailed, err.Error())
		}

		for _, region := range regions {
			if region.Start > settings.MaxAddress {
				break
			}

			for _, addr := range candidate.Generate(settings.MinAddress, settings.MaxAddress, region.Start, region.End, uintptr(settings.Size), granularity) {
				if alloc, ok := tryReserve(addr, settings.Size); ok {
					return alloc, nil
				}
			}
		}
	}

	if settings.BruteForce {
		if alloc, ok := bruteForce(settings, granularity); ok {
			return alloc, nil
		}

		return Allocation{}, newAllocationError(settings, errs.CauseBruteForceExhausted, "brute-force probing covered the window without success")
	}

	return Allocation{}, newAllocationError(settings, errs.CauseRetriesExhausted, "no free region yielded a usable candidate address")
}

// tryReserve attempts a fixed-address, non-replacing RWX reservation at
// addr and verifies the OS honoured the exact address, releasing and
// reporting failure on mismatch.
func tryReserve(addr uintptr, size uint32) (Allocation, bool) {
	got, err := reserveFixed(addr, size)
	if err != nil {
		return Allocation{}, false
	}

	if got != addr {
		releaseReservation(got, size)
		return Allocation{}, false
	}

	return Allocation{BaseAddress: got, Size: size}, true
}

// bruteForce walks the window in granularity-sized steps, probing a fixed
// reservation at every page. It is a rare-case workaround for hostile
// environments where candidate generation keeps failing, bounded only by
// MaxAddress, with no separate termination guard.
func bruteForce(settings Settings, granularity uintptr) (Allocation, bool) {
	for addr := addrrange.RoundUp(settings.MinAddress, granularity); addr+uintptr(settings.Size) <= settings.MaxAddress; addr += granularity {
		if alloc, ok := tryReserve(addr, settings.Size); ok {
			return alloc, true
		}
	}

	return Allocation{}, false
}

// Release returns a reservation made by Allocate to the OS. Used by
// PrivateAllocation's teardown path; tryReserve's address-mismatch
// recovery calls releaseReservation directly.
func Release(alloc Allocation) error {
	return releaseReservation(alloc.BaseAddress, alloc.Size)
}

// Package discovery implements the locator-discovery routine: finding, or
// lazily creating, the first LocatorHeader for a given process id via a
// named, file-backed shared-memory object at a deterministic per-user
// directory.
package discovery

import (
	"fmt"
	"sync"

	"github.com/orizon-lang/membuffers/internal/errs"
	"github.com/orizon-lang/membuffers/internal/locator"
	"github.com/orizon-lang/membuffers/internal/sysinfo"
)

// Info describes the outcome of a Find call.
type Info struct {
	// Address is the creator's this_address, valid as a dereferenceable
	// pointer only when Header is non-nil.
	Address uintptr

	// Header is the locator chain's head, usable with locator.GetBuffer.
	// It is nil when Address was learned from another process's named
	// object: that address lives in a foreign address space, and
	// cross-process access beyond discovery itself is out of scope, so
	// this package never dereferences it.
	Header *Header

	// Created reports whether this call created the named object (true)
	// or attached to one that already existed (false).
	Created bool
}

// Header is a local alias so callers of this package don't need a second
// import just to name the type Info.Header returns.
type Header = locator.Header

// DiscoveryError is returned when the named shared-memory object cannot be
// opened, created, or read.
type DiscoveryError struct {
	errs.Base

	ProcessID int
}

func (e *DiscoveryError) Error() string { return e.Base.String() }

func newDiscoveryError(pid int, cause errs.Cause, message string) *DiscoveryError {
	return &DiscoveryError{Base: errs.NewBase(errs.CategoryStructural, cause, message), ProcessID: pid}
}

var (
	mu     sync.Mutex
	cached = make(map[int]*Info)
)

// Find locates (or, on the first call for pid, creates) the head of the
// locator chain owned by process pid, following the seven-step
// algorithm. Subsequent calls for the same pid in this process return the
// cached result, matching the testable property that repeated find() calls
// return the same head pointer.
func Find(pid int) (*Info, error) {
	mu.Lock()
	defer mu.Unlock()

	if info, ok := cached[pid]; ok {
		return info, nil
	}

	cleanStaleOnce()

	info, err := find(pid)
	if err != nil {
		return nil, err
	}

	cached[pid] = info

	return info, nil
}

func find(pid int) (*Info, error) {
	name := objectName(pid)
	granularity := sysinfo.Get().AllocationGranularity

	mem, created, err := openOrCreate(name, granularity)
	if err != nil {
		return nil, newDiscoveryError(pid, errs.CauseOSReservationFailed, err.Error())
	}

	if created {
		addr := addressOf(mem)
		h := locator.Initialize(addr, granularity, locator.CurrentVersion)

		return &Info{Address: addr, Header: h, Created: true}, nil
	}

	view := locator.HeaderAt(addressOf(mem))
	addr := view.ThisAddress()
	version := view.Version()

	closeMapping(mem)

	if err := checkVersion(version); err != nil {
		return nil, newDiscoveryError(pid, errs.CauseStructuralVersionMismatch, err.Error())
	}

	info := &Info{Address: addr, Created: false}

	if pid == sysinfo.Get().ThisProcessID {
		info.Header = locator.HeaderAt(addr)
	}

	return info, nil
}

// objectName builds the platform-neutral identifier string, which also
// doubles as the persisted path's suffix.
func objectName(pid int) string {
	return fmt.Sprintf("Reloaded.Memory.Buffers.MemoryBuffer, PID %d", pid)
}

package locator

import (
	"unsafe"

	"github.com/orizon-lang/membuffers/internal/bufalloc"
	"github.com/orizon-lang/membuffers/internal/errs"
)

// SearchSettings narrows a GetBuffer search to a proximity window and an
// owning process, mirroring the BufferSearchSettings.
type SearchSettings struct {
	Size            uint32
	MinAddress      uintptr
	MaxAddress      uintptr
	TargetProcessID int
}

// SearchError is returned when a chain cannot produce a usable item: every
// existing item is either too small, out of window or locked by another
// writer, and growing the chain (allocating a fresh backing region) also
// failed.
type SearchError struct {
	errs.Base

	Settings SearchSettings
}

func (e *SearchError) Error() string { return e.Base.String() }

func newSearchError(settings SearchSettings, cause errs.Cause, message string) *SearchError {
	return &SearchError{Base: errs.NewBase(errs.CategorySearch, cause, message), Settings: settings}
}

// headerAt reinterprets addr as a Header. The addresses that reach it are
// the return value of Allocate (a just-reserved, still uninitialized
// region), a NextLocatorPtr read from a header already proven valid, or an
// address handed to Initialize or HeaderAt by their callers.
func headerAt(addr uintptr) *Header {
	return (*Header)(unsafe.Pointer(addr))
}

// Initialize lays out a freshly reserved region at base as the first
// header of a brand-new chain.
func Initialize(base uintptr, length uint32, version int) *Header {
	h := headerAt(base)
	initialize(h, base, length, version)

	return h
}

// HeaderAt reinterprets an address already known to hold a valid Header
// (typically ThisAddress read back from a discovery object within the same
// process) as a *Header. Exported for internal/discovery, which is the
// only caller outside this package expected to ever legitimately own such
// an address.
func HeaderAt(addr uintptr) *Header {
	return headerAt(addr)
}

// CurrentVersion is the locator format version this package writes into
// every header it initializes.
const CurrentVersion = currentVersion

// GetBuffer walks the chain starting at head looking for an item with
// enough remaining capacity inside the requested window, locking and
// returning the first one it finds.
// Failing that, it grows the chain: first by allocating a new item inside
// an existing non-full header, and only once every header in the chain is
// full by allocating an entirely new header.
func GetBuffer(head *Header, settings SearchSettings) (*ItemHandle, error) {
	for h := head; ; {
		if handle, ok := findAndLockItem(h, settings); ok {
			return handle, nil
		}

		if h.HasNext() {
			h = headerAt(h.NextLocatorPtr())
			continue
		}

		next, handle, err := growChain(h, settings)
		if err != nil {
			return nil, err
		}

		if handle != nil {
			return handle, nil
		}

		h = next
	}
}

// GetBufferFresh behaves like GetBuffer but never reuses an existing item,
// always growing the chain for a dedicated new one. GetBufferAligned uses
// this: AlignUpward mutates an item's base address and size in place, which
// is only sound against an item nobody has appended to yet, so the aligned
// path cannot risk handing back one of find_and_lock_item's reused slots.
func GetBufferFresh(head *Header, settings SearchSettings) (*ItemHandle, error) {
	for h := head; ; {
		next, handle, err := growChain(h, settings)
		if err != nil {
			return nil, err
		}

		if handle != nil {
			return handle, nil
		}

		h = next
	}
}

// findAndLockItem scans one header's inline items for the first that can
// satisfy settings, locking it before returning. No header-wide lock is
// taken: concurrent scanners may race on the same item, but only one wins
// the CAS in item.tryLock.
func findAndLockItem(h *Header, settings SearchSettings) (*ItemHandle, bool) {
	for i := 0; i < h.NumItems(); i++ {
		it := h.itemAt(i)
		if it.canUse(settings.Size, settings.MinAddress, settings.MaxAddress) && it.tryLock() {
			return newItemHandle(it), true
		}
	}

	return nil, false
}

// growChain extends the chain rooted at h: first it tries to carve a fresh
// item out of h itself (try_allocate_item in ), and only if h
// is already full does it allocate a whole new header and link it on
// (next_or_grow). When it allocates a new item it returns that item still
// locked, alongside h itself, so a caller that only wanted h to grow (not
// the item in particular) can Release it straight away; GetBufferFresh
// instead keeps it.
func growChain(h *Header, settings SearchSettings) (*Header, *ItemHandle, error) {
	h.lock()
	defer h.unlock()

	// Re-check under the lock: another writer may have grown this header,
	// or linked a successor, while we were racing to acquire it.
	if h.HasNext() {
		return headerAt(h.NextLocatorPtr()), nil, nil
	}

	if !h.IsFull() {
		handle, err := tryAllocateItem(h, settings)
		if err != nil {
			return nil, nil, err
		}

		return h, handle, nil
	}

	next, err := allocateHeader(settings)
	if err != nil {
		return nil, nil, err
	}

	h.setNext(next.thisAddress)

	return next, nil, nil
}

// tryAllocateItem reserves a fresh OS-backed buffer sized to whichever is
// larger of the requested size and PreallocatedChunkSize, and appends it
// to h as a new item, still locked so the caller that triggered the growth
// gets first use of it.
func tryAllocateItem(h *Header, settings SearchSettings) (*ItemHandle, error) {
	size := settings.Size
	if size < PreallocatedChunkSize {
		size = PreallocatedChunkSize
	}

	alloc, err := bufalloc.Allocate(bufalloc.Settings{
		MinAddress:      settings.MinAddress,
		MaxAddress:      settings.MaxAddress,
		Size:            size,
		TargetProcessID: settings.TargetProcessID,
		RetryCount:      1,
	})
	if err != nil {
		return nil, newSearchError(settings, errs.CauseCannotAllocateMemory, err.Error())
	}

	it := newItem(alloc.BaseAddress, alloc.Size)
	handle := h.appendItem(it)

	if !handle.it.tryLock() {
		// Freshly appended items start unlocked; a concurrent scanner
		// cannot have observed this slot yet because numItems was only
		// just published, but try anyway rather than assume.
		return nil, newSearchError(settings, errs.CauseNoSpaceInHeader, "newly allocated item was unexpectedly already locked")
	}

	return handle, nil
}

// allocateHeader reserves a brand-new region large enough to hold one
// Header plus at least one PreallocatedChunkSize item, and initializes it
// as the next link in the chain.
func allocateHeader(settings SearchSettings) (*Header, error) {
	length := uint32(unsafe.Sizeof(Header{})) + PreallocatedChunkSize

	alloc, err := bufalloc.Allocate(bufalloc.Settings{
		MinAddress:      settings.MinAddress,
		MaxAddress:      settings.MaxAddress,
		Size:            length,
		TargetProcessID: settings.TargetProcessID,
		RetryCount:      1,
	})
	if err != nil {
		return nil, newSearchError(settings, errs.CauseCannotAllocateMemory, err.Error())
	}

	return Initialize(alloc.BaseAddress, alloc.Size, currentVersion), nil
}

// currentVersion is the locator format version this package writes into
// every header it initializes.
const currentVersion = 1

package locator

import (
	"runtime"
	"sync/atomic"
	"unsafe"
)

// HeaderLength is the total byte footprint of one locator header,
// including its inline items. Items beyond what fits in
// this footprint live in headers chained off NextLocatorPtr.
const HeaderLength = 4096

// PreallocatedChunkSize is the largest single item carved out of a newly
// initialized region during partitioning.
const PreallocatedChunkSize uint32 = 16384

// headerPrefix holds every header field that is not part of the items
// array. flags and numItems are kept as 32-bit words rather than the design's
// single packed byte each, so both can be read and written with
// sync/atomic instead of requiring manual sub-word atomics Go's standard
// library does not provide; see DESIGN.md.
type headerPrefix struct {
	thisAddress    uintptr
	nextLocatorPtr uintptr
	isLocked       int32
	flags          int32
	numItems       int32
}

// MaxItemCount is how many item slots fit inline in one header after its
// prefix, derived from the actual Go struct sizes rather than assumed from
// the byte-packed layout description.
const MaxItemCount = (HeaderLength - int(unsafe.Sizeof(headerPrefix{}))) / int(unsafe.Sizeof(item{}))

const reservedTailSize = HeaderLength - int(unsafe.Sizeof(headerPrefix{})) - MaxItemCount*int(unsafe.Sizeof(item{}))

// Header is the fixed-layout, fixed-size record describing one contiguous
// region of reservable memory plus its inline items. Every Header in a
// chain is exactly HeaderLength bytes so walking the chain never needs to
// consult anything but NextLocatorPtr.
type Header struct {
	headerPrefix
	items [MaxItemCount]item
	_     [reservedTailSize]byte
}

// versionFlagBits is the width of the version nibble packed into flags,
// mirroring the Rust reference's three-bit version field.
const versionFlagBits = 3

const versionFlagMask = (1 << versionFlagBits) - 1

// initialize lays out a freshly reserved region as a single locator
// header: thisAddress identifies the header itself (also its own base
// address, since the header lives at the front of the region it
// describes), and the remainder of length is partitioned into
// pre-allocated items of at most PreallocatedChunkSize each.
func initialize(h *Header, thisAddress uintptr, length uint32, version int) {
	h.thisAddress = thisAddress
	h.nextLocatorPtr = 0
	h.isLocked = 0
	h.flags = int32(version & versionFlagMask)
	h.numItems = 0

	remaining := length - uint32(unsafe.Sizeof(Header{}))
	cursor := thisAddress + unsafe.Sizeof(Header{})

	for remaining > 0 && int(h.numItems) < MaxItemCount {
		chunk := remaining
		if chunk > PreallocatedChunkSize {
			chunk = PreallocatedChunkSize
		}

		h.items[h.numItems] = newItem(cursor, chunk)
		h.numItems++

		cursor += uintptr(chunk)
		remaining -= chunk
	}
}

// Version reports the 3-bit version nibble this header was initialized
// with.
func (h *Header) Version() int {
	return int(atomic.LoadInt32(&h.flags)) & versionFlagMask
}

// ThisAddress is the address of the header itself, used as its identity
// when chaining and read back by discovery as the creator's head address
// when it attaches to an existing named object.
func (h *Header) ThisAddress() uintptr { return h.thisAddress }

// NumItems is the number of populated item slots, loaded with acquire
// semantics so a lock-free scanner never observes a slot index before the
// write that populated it.
func (h *Header) NumItems() int {
	return int(atomic.LoadInt32(&h.numItems))
}

// IsFull reports whether every inline slot is populated and this header
// therefore needs a successor to grow.
func (h *Header) IsFull() bool {
	return h.NumItems() >= MaxItemCount
}

// HasNext reports whether this header already chains to a successor.
func (h *Header) HasNext() bool {
	return atomic.LoadUintptr((*uintptr)(unsafe.Pointer(&h.nextLocatorPtr))) != 0
}

// NextLocatorPtr is the address of this header's successor, or 0 if none.
func (h *Header) NextLocatorPtr() uintptr {
	return atomic.LoadUintptr((*uintptr)(unsafe.Pointer(&h.nextLocatorPtr)))
}

// setNext publishes addr as this header's successor. Callers must hold
// this header's lock.
func (h *Header) setNext(addr uintptr) {
	atomic.StoreUintptr((*uintptr)(unsafe.Pointer(&h.nextLocatorPtr)), addr)
}

// tryLock attempts to acquire the header's spin lock, guarding num_items
// and next_locator_ptr mutation.
func (h *Header) tryLock() bool {
	return atomic.CompareAndSwapInt32(&h.isLocked, 0, 1)
}

// lock spins until the header's lock is acquired, yielding the processor
// between attempts the way the reference implementation's region allocator spins on its
// own header lock.
func (h *Header) lock() {
	for !h.tryLock() {
		runtime.Gosched()
	}
}

// unlock releases the header's lock.
func (h *Header) unlock() {
	old := atomic.SwapInt32(&h.isLocked, 0)
	if AssertionsEnabled && old == 0 {
		panic("locator: unlock of a header that was not locked")
	}
}

// item at index i, for callers that have already bounds-checked i against
// NumItems.
func (h *Header) itemAt(i int) *item {
	return &h.items[i]
}

// appendItem adds a freshly allocated item to this header's inline array.
// The caller must hold this header's lock and must have already confirmed
// !IsFull().
func (h *Header) appendItem(it item) *ItemHandle {
	idx := h.numItems
	h.items[idx] = it
	atomic.StoreInt32(&h.numItems, idx+1)

	return newItemHandle(&h.items[idx])
}

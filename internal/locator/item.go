// Package locator implements the shared locator: the header/item data
// model, its chain growth, its fine-grained locking discipline and its
// search algorithm. Its packed-struct-plus-atomics style is generalised
// to the cross-process append-only semantics this module actually
// requires; see DESIGN.md.
package locator

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"

	"github.com/orizon-lang/membuffers/internal/addrrange"
)

// item is the in-memory layout of a single reservation record. size,
// position, and isTaken are plain 32-bit words; position and isTaken are
// always accessed via sync/atomic, size only in canUse; baseAddress is kept as a full, natively-aligned uintptr
// rather than a packed "unaligned machine word" because this module's
// locator is only ever read by other
// instances of this same Go binary (never by a different language or
// architecture), so natural alignment is strictly an improvement: it lets
// is_taken participate in sync/atomic without manual alignment tricks. See
// DESIGN.md for the full rationale.
type item struct {
	baseAddress uintptr
	size        uint32
	position    uint32
	isTaken     int32
}

func newItem(base uintptr, size uint32) item {
	return item{baseAddress: base, size: size}
}

// isAllocated reports whether this slot has ever been populated. Index
// positions at or past a header's num_items are left zero-valued, and a
// zero base address can never be a valid reservation (mmap/VirtualAlloc
// never hand out the zero page), so this doubles as the "allocated" check
// the Rust reference calls is_allocated.
func (it *item) isAllocated() bool {
	return atomic.LoadUintptr((*uintptr)(unsafe.Pointer(&it.baseAddress))) != 0
}

// canUse reports whether this item has at least size free bytes within
// [minAddr, maxAddr].6's find_and_lock_item predicate.
func (it *item) canUse(size uint32, minAddr, maxAddr uintptr) bool {
	if !it.isAllocated() {
		return false
	}

	pos := atomic.LoadUint32(&it.position)
	total := atomic.LoadUint32((*uint32)(unsafe.Pointer(&it.size)))

	if total-pos < size {
		return false
	}

	if it.baseAddress+uintptr(pos) < minAddr {
		return false
	}

	if it.baseAddress+uintptr(total) > maxAddr {
		return false
	}

	return true
}

// tryLock attempts to acquire this item's write lock via CAS on is_taken.
func (it *item) tryLock() bool {
	return atomic.CompareAndSwapInt32(&it.isTaken, 0, 1)
}

// unlock releases this item's write lock. Unlocking an item that was not
// locked is a contract violation; AssertionsEnabled gates the panic the
// way the Rust reference's debug_assert does.
func (it *item) unlock() {
	old := atomic.SwapInt32(&it.isTaken, 0)
	if AssertionsEnabled && old == 0 {
		panic("locator: unlock of an item that was not locked")
	}
}

// appendBytes copies data into this item's buffer at the current position
// and advances position.8. The caller must hold this
// item's lock.
func (it *item) appendBytes(data []byte) (uintptr, error) {
	pos := atomic.LoadUint32(&it.position)
	total := it.size

	if uint32(len(data)) > total-pos {
		return 0, fmt.Errorf("locator: append of %d bytes exceeds remaining capacity %d", len(data), total-pos)
	}

	addr := it.baseAddress + uintptr(pos)

	dst := unsafe.Slice((*byte)(unsafe.Pointer(addr)), len(data))
	copy(dst, data)

	atomic.StoreUint32(&it.position, pos+uint32(len(data)))

	return addr, nil
}

// ItemHandle owns one item's write lock, releasing it exactly once via
// Release. The bytes it wraps outlive the handle; only the lock is owned,
//.
type ItemHandle struct {
	it   *item
	once sync.Once
}

func newItemHandle(it *item) *ItemHandle {
	return &ItemHandle{it: it}
}

// BaseAddress is the start of the reservation this handle's item describes.
func (h *ItemHandle) BaseAddress() uintptr { return h.it.baseAddress }

// Size is the total capacity of the reservation.
func (h *ItemHandle) Size() uint32 { return h.it.size }

// Position is the number of bytes already appended.
func (h *ItemHandle) Position() uint32 { return atomic.LoadUint32(&h.it.position) }

// AppendBytes copies data into the item and advances its position.
func (h *ItemHandle) AppendBytes(data []byte) (uintptr, error) {
	return h.it.appendBytes(data)
}

// Release unlocks the underlying item. Safe to call more than once; only
// the first call has an effect.
func (h *ItemHandle) Release() {
	h.once.Do(h.it.unlock)
}

// AlignUpward shrinks this item in place so its base address becomes a
// multiple of alignment.6's aligned variant: the backing
// buffer was deliberately over-allocated by alignment bytes, so moving the
// visible base forward and shrinking size by the same delta never runs
// past the real reservation. The caller must hold this item's lock and
// must call this before any AppendBytes, since it is only meaningful
// against position 0.
func (h *ItemHandle) AlignUpward(alignment uint32) uintptr {
	if alignment == 0 {
		return h.it.baseAddress
	}

	aligned := addrrange.RoundUp(h.it.baseAddress, uintptr(alignment))
	delta := uint32(aligned - h.it.baseAddress)

	if delta > 0 {
		h.it.baseAddress = aligned
		h.it.size -= delta
	}

	return aligned
}

// AssertionsEnabled gates the contract-violation panics (double-unlock of
// an item or header) the Rust reference implementation only enables in
// debug builds. It defaults to true; production embedders may turn it off
// for a release build by setting it to false during init.
var AssertionsEnabled = true

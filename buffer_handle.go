package membuffers

import (
	"github.com/orizon-lang/membuffers/internal/locator"
	"github.com/orizon-lang/membuffers/internal/platform"
)

// BufferHandle wraps a reservation owned by this process's locator chain.
// Dropping a BufferHandle (calling Release) releases only the item's write
// lock; the bytes themselves outlive the handle and remain part of the
// chain for process lifetime.
type BufferHandle struct {
	item *locator.ItemHandle
}

// BaseAddress is the start of the window this handle can append into.
func (h *BufferHandle) BaseAddress() uintptr { return h.item.BaseAddress() }

// Size is the total capacity of the window.
func (h *BufferHandle) Size() uint32 { return h.item.Size() }

// Position is how many bytes have already been appended.
func (h *BufferHandle) Position() uint32 { return h.item.Position() }

// AppendBytes copies data into the buffer at the current position and
// advances it, returning the address the data now lives at.
func (h *BufferHandle) AppendBytes(data []byte) (uintptr, error) {
	return h.item.AppendBytes(data)
}

// AppendCode is identical to AppendBytes but additionally flushes the
// instruction cache for the bytes just written, required before any
// caller jumps into them on ISAs that do not unify the instruction and
// data caches.
func (h *BufferHandle) AppendCode(data []byte) (uintptr, error) {
	addr, err := h.item.AppendBytes(data)
	if err != nil {
		return 0, err
	}

	platform.Default.FlushInstructionCache(addr, uintptr(len(data)))

	return addr, nil
}

// AppendCopy writes the first size bytes of value's in-memory
// representation into the buffer. Go generics give no sizeof operator, so
// the caller states size explicitly, the same way AppendBytes already
// requires a length.
func (h *BufferHandle) AppendCopy(value any, size uintptr) (uintptr, error) {
	data := bytesOf(value, size)
	return h.AppendBytes(data)
}

// Release unlocks the underlying item, making it eligible for reuse by a
// future GetBuffer call. It never frees or shrinks the item itself; freeing
// individual sub-allocations is out of scope.
func (h *BufferHandle) Release() {
	h.item.Release()
}

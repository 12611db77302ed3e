//go:build unix

package bufalloc

import "unsafe"

// unsafeByteSlice builds the []byte Munmap expects from a raw address and
// length, without copying or re-reading the memory.
func unsafeByteSlice(addr uintptr, size uint32) []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)
}

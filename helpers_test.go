package membuffers

import "unsafe"

// uintptrOfBytes returns the address of a slice's backing array, for tests
// that need a real, dereferenceable address without going through a real
// OS reservation.
func uintptrOfBytes(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

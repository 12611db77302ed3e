package locator

import "unsafe"

// uintptrOf returns the address of a slice's backing array, for tests that
// need a real, dereferenceable address to exercise appendBytes against
// ordinary Go-heap memory instead of a raw OS reservation.
func uintptrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

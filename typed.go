package membuffers

import (
	"reflect"
	"unsafe"
)

// bytesOf copies value into freshly allocated storage matching its
// concrete type, then reads back its first size bytes. This stands in for
// Rust's generic append_copy<T>, which reads sizeof(T) bytes directly off
// the caller's stack value; Go gives no sizeof operator over a type
// parameter, so AppendCopy's caller states size explicitly and this
// function only needs an addressable copy of value to read from.
func bytesOf(value any, size uintptr) []byte {
	v := reflect.ValueOf(value)

	boxed := reflect.New(v.Type())
	boxed.Elem().Set(v)

	return unsafe.Slice((*byte)(unsafe.Pointer(boxed.Pointer())), size)
}

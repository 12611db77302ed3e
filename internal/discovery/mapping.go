package discovery

import (
	"strings"
	"unsafe"
)

// addressOf returns the address of a mapping's first byte, the same way
// locator's own tests turn a []byte into a dereferenceable uintptr.
func addressOf(mem []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(mem)))
}

// sanitizeFileName turns an object name into a file name by replacing path
// separators ("/" and "\") and spaces with underscores.
func sanitizeFileName(name string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", " ", "_")
	return r.Replace(name)
}


// Package platform defines the interface contracts for two primitives
// treated as external collaborators: the per-write W^X toggle and the
// instruction-cache flush. A concrete implementation is
// still provided per OS (this module has to be usable standalone), but
// every call site in this module depends only on the CodePatcher
// interface, so a stricter W^X-enforcing backend can be substituted without
// touching append_bytes, append_code or overwrite_allocated_code.
package platform

// CodePatcher toggles write protection on an allocator-owned buffer and
// flushes the instruction cache after code is written into it.
type CodePatcher interface {
	// ToggleWrite makes [addr, addr+n) writable (writable=true) before a
	// code patch, or restores it to read+execute (writable=false) after.
	// The default unix and windows implementations change the page
	// protection on every call.
	ToggleWrite(addr uintptr, n uintptr, writable bool) error

	// FlushInstructionCache flushes [addr, addr+n) on ISAs that do not
	// unify instruction and data caches. No-op on the x86 family.
	FlushInstructionCache(addr uintptr, n uintptr)
}

// Default is the CodePatcher used by this module's public API unless a
// caller substitutes one via SetDefault.
var Default CodePatcher = newDefault()

// SetDefault overrides the package-level CodePatcher, for tests and for
// embedders that need a stricter or instrumented implementation.
func SetDefault(p CodePatcher) { Default = p }

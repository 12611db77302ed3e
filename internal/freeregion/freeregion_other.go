//go:build !linux && !windows

package freeregion

import "github.com/orizon-lang/membuffers/internal/addrrange"

// enumerate has no per-OS descriptor API on this build target (darwin and
// the BSDs don't get a dedicated fast path in this module), so it reports
// the whole range [0, maxAddress] as one free gap and lets the
// allocator's own fixed-address, non-replacing reservation calls reject
// addresses that turn out to be occupied. This trades precision for
// portability on otherwise-unsupported OSes.
func enumerate(pid int, maxAddress uintptr) ([]addrrange.Range, error) {
	return []addrrange.Range{addrrange.New(0, maxAddress)}, nil
}

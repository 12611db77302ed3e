// Package freeregion enumerates the gaps between committed virtual-memory
// regions in a target process, normalised to a sequence of addrrange.Range
// values representing unused address space.
package freeregion

import "github.com/orizon-lang/membuffers/internal/addrrange"

// Enumerate lists the free address ranges in the process identified by pid,
// stopping once a region's start address exceeds maxAddress and treating
// the tail after the last reported region as free up to maxAddress.
func Enumerate(pid int, maxAddress uintptr) ([]addrrange.Range, error) {
	return enumerate(pid, maxAddress)
}

// buildGaps turns a sorted, non-overlapping list of committed [start,end)
// regions into the complementary list of free ranges up to maxAddress. It
// is shared by every per-OS backend so the "stop past maxAddress" and
// "tail is free" rules are implemented exactly once.
func buildGaps(committed []addrrange.Range, maxAddress uintptr) []addrrange.Range {
	var gaps []addrrange.Range

	cursor := uintptr(0)

	for _, region := range committed {
		if region.Start > maxAddress {
			break
		}

		if region.Start > cursor {
			gaps = append(gaps, addrrange.New(cursor, region.Start))
		}

		if region.End > cursor {
			cursor = region.End
		}
	}

	if cursor < maxAddress {
		gaps = append(gaps, addrrange.New(cursor, maxAddress))
	}

	return gaps
}

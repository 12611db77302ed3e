// Package candidate generates the up-to-four aligned candidate addresses
// the buffer allocator probes for a given free region, window and buffer
// size: page-anchored low/high and window-anchored low/high.
package candidate

import "github.com/orizon-lang/membuffers/internal/addrrange"

// MaxCandidates bounds the result of Generate: page-anchored low/high and
// window-anchored low/high.
const MaxCandidates = 4

// Generate returns up to MaxCandidates candidate base addresses for a
// buffer of size bufSize, aligned to granularity, that fit inside both the
// window [minPtr, maxPtr] and the free page [pageStart, pageEnd]. An empty
// slice means no candidate exists in this page for this window.
func Generate(minPtr, maxPtr, pageStart, pageEnd uintptr, bufSize uintptr, granularity uintptr) []uintptr {
	window := addrrange.New(minPtr, maxPtr)
	page := addrrange.New(pageStart, pageEnd)

	if !page.Overlaps(window) {
		return nil
	}

	if bufSize > page.Size() {
		return nil
	}

	results := make([]uintptr, 0, MaxCandidates)

	// 1. Page-anchored low: round up from the start of the free page.
	if placed, ok := place(addrrange.RoundUp(page.Start, granularity), bufSize, page, window); ok {
		results = append(results, placed)
	}

	// 2. Page-anchored high: round down from the end of the free page.
	if placed, ok := place(addrrange.RoundDown(addrrange.SubSat(page.End, bufSize), granularity), bufSize, page, window); ok {
		results = append(results, placed)
	}

	// 3. Window-anchored low: round up from the minimum requested address.
	if placed, ok := place(addrrange.RoundUp(minPtr, granularity), bufSize, page, window); ok {
		results = append(results, placed)
	}

	// 4. Window-anchored high: round down from the maximum requested address.
	if placed, ok := place(addrrange.RoundDown(addrrange.SubSat(maxPtr, bufSize), granularity), bufSize, page, window); ok {
		results = append(results, placed)
	}

	return results
}

// place builds the candidate range [start, start+bufSize) and reports
// whether it is a subset of both the page and the window.
func place(start uintptr, bufSize uintptr, page, window addrrange.Range) (uintptr, bool) {
	candidate := addrrange.New(start, addrrange.AddSat(start, bufSize))

	if page.Contains(candidate) && window.Contains(candidate) {
		return start, true
	}

	return 0, false
}

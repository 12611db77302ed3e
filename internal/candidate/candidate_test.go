package candidate

import (
	"testing"

	"github.com/orizon-lang/membuffers/internal/addrrange"
)

const allocationGranularity = 65536

func TestGenerate(t *testing.T) {
	t.Run("PageDoesNotOverlapWithMinMax", func(t *testing.T) {
		minPtr, maxPtr := uintptr(100000), uintptr(200000)
		pageSize := uintptr(50000)
		bufSize := uintptr(30000)

		pageStart := maxPtr + 1
		pageEnd := pageStart + pageSize

		got := Generate(minPtr, maxPtr, pageStart, pageEnd, bufSize, allocationGranularity)
		if len(got) != 0 {
			t.Errorf("expected no candidates, got %v", got)
		}
	})

	t.Run("BufferSizeGreaterThanPage", func(t *testing.T) {
		minPtr, maxPtr := uintptr(100000), uintptr(200000)
		pageSize := uintptr(30000)
		bufSize := uintptr(50000)

		pageStart := minPtr
		pageEnd := pageStart + pageSize

		got := Generate(minPtr, maxPtr, pageStart, pageEnd, bufSize, allocationGranularity)
		if len(got) != 0 {
			t.Errorf("expected no candidates, got %v", got)
		}
	})

	t.Run("RoundUpFromPtrMin", func(t *testing.T) {
		minPtr, maxPtr := uintptr(100000), uintptr(200000)
		pageSize := uintptr(200000)
		bufSize := uintptr(30000)

		pageStart := minPtr - 50000
		pageEnd := pageStart + pageSize

		got := Generate(minPtr, maxPtr, pageStart, pageEnd, bufSize, allocationGranularity)
		if len(got) == 0 || got[0] == 0 {
			t.Fatalf("expected a non-zero first candidate, got %v", got)
		}
	})

	t.Run("RoundUpFromPageMin", func(t *testing.T) {
		minPtr, maxPtr := uintptr(1), uintptr(200000)
		pageSize := uintptr(100000)
		bufSize := uintptr(30000)

		pageStart := minPtr + 5000
		pageEnd := pageStart + pageSize

		got := Generate(minPtr, maxPtr, pageStart, pageEnd, bufSize, allocationGranularity)
		if len(got) == 0 {
			t.Fatal("expected at least one candidate")
		}

		want := addrrange.RoundUp(pageStart, allocationGranularity)
		if got[0] != want {
			t.Errorf("got %d, want %d", got[0], want)
		}
	})

	t.Run("RoundDownFromPtrMax", func(t *testing.T) {
		minPtr := uintptr(10000)
		maxPtr := uintptr(200000) - 5000
		pageSize := uintptr(1000000)
		bufSize := uintptr(30000)

		pageStart := uintptr(80000)
		pageEnd := pageStart + pageSize

		got := Generate(minPtr, maxPtr, pageStart, pageEnd, bufSize, allocationGranularity)
		if len(got) == 0 {
			t.Fatal("expected at least one candidate")
		}

		want := addrrange.RoundDown(maxPtr-bufSize, allocationGranularity)

		found := false

		for _, c := range got {
			if c == want {
				found = true
			}
		}

		if !found {
			t.Errorf("expected %d among %v", want, got)
		}
	})

	t.Run("RoundDownFromPageMax", func(t *testing.T) {
		minPtr, maxPtr := uintptr(1), uintptr(200000)
		pageSize := uintptr(120000)
		bufSize := uintptr(30000)

		pageStart := minPtr
		pageEnd := pageStart + pageSize - 5000

		got := Generate(minPtr, maxPtr, pageStart, pageEnd, bufSize, allocationGranularity)
		if len(got) == 0 {
			t.Fatal("expected at least one candidate")
		}

		want := addrrange.RoundDown(pageEnd-bufSize, allocationGranularity)

		found := false

		for _, c := range got {
			if c == want {
				found = true
			}
		}

		if !found {
			t.Errorf("expected %d among %v", want, got)
		}
	})
}

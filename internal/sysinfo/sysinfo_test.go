package sysinfo

import "testing"

func TestGetIsStable(t *testing.T) {
	first := Get()
	second := Get()

	if first != second {
		t.Errorf("Get() returned different values across calls: %+v vs %+v", first, second)
	}

	if first.PageSize == 0 {
		t.Error("PageSize should never be zero")
	}

	if first.AllocationGranularity < first.PageSize {
		t.Errorf("AllocationGranularity (%d) should be >= PageSize (%d)", first.AllocationGranularity, first.PageSize)
	}

	if first.ThisProcessID <= 0 {
		t.Errorf("ThisProcessID = %d, want positive pid", first.ThisProcessID)
	}
}

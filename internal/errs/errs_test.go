package errs

import (
	"errors"
	"testing"
)

func TestCauseIsComparable(t *testing.T) {
	base := NewBase(CategoryStructural, CauseNoSpaceInHeader, "header full")

	if !errors.Is(base, CauseNoSpaceInHeader) {
		t.Error("errors.Is should match the wrapped Cause")
	}

	if errors.Is(base, CauseCannotAllocateMemory) {
		t.Error("errors.Is should not match an unrelated Cause")
	}
}

func TestBaseStringIncludesCause(t *testing.T) {
	base := NewBase(CategoryAllocation, CauseRetriesExhausted, "ran out of retries")
	if got := base.String(); got == "" {
		t.Error("String() should not be empty")
	}
}

// Package membuffers provides a process-wide, cross-process-discoverable
// registry of executable memory buffers whose addresses satisfy
// caller-supplied numeric-range constraints. It exists for runtime
// code-patching tools (function hookers, trampoline allocators, and
// just-in-time assemblers) that need small amounts of writable-then-
// executable memory located near a target address so short relative
// branches stay reachable.
package membuffers

import (
	"os"

	"github.com/orizon-lang/membuffers/internal/discovery"
	"github.com/orizon-lang/membuffers/internal/errs"
	"github.com/orizon-lang/membuffers/internal/locator"
)

// GetBuffer returns a handle to a slice of shared, writable-then-
// executable memory satisfying settings, creating or growing this
// process's locator chain as needed.
func GetBuffer(settings BufferSearchSettings) (*BufferHandle, error) {
	head, err := ownHead()
	if err != nil {
		return nil, err
	}

	handle, err := locator.GetBuffer(head, searchSettings(settings))
	if err != nil {
		return nil, err
	}

	return &BufferHandle{item: handle}, nil
}

// GetBufferAligned behaves like GetBuffer but guarantees the returned
// handle's base address is a multiple of alignment: it over-allocates by alignment bytes from a dedicated
// fresh item, then shifts the visible window up to the next boundary.
func GetBufferAligned(settings BufferSearchSettings, alignment uint32) (*BufferHandle, error) {
	head, err := ownHead()
	if err != nil {
		return nil, err
	}

	padded := searchSettings(settings)
	padded.Size += alignment

	handle, err := locator.GetBufferFresh(head, padded)
	if err != nil {
		return nil, err
	}

	handle.AlignUpward(alignment)

	return &BufferHandle{item: handle}, nil
}

func ownHead() (*locator.Header, error) {
	pid := os.Getpid()

	info, err := discovery.Find(pid)
	if err != nil {
		return nil, err
	}

	if info.Header == nil {
		return nil, &discoveryUnavailableError{Base: errs.NewBase(errs.CategoryStructural, errs.CauseCannotAllocateMemory, "discovery did not produce a locally usable locator header for this process")}
	}

	return info.Header, nil
}

type discoveryUnavailableError struct {
	errs.Base
}

func (e *discoveryUnavailableError) Error() string { return e.Base.String() }

func searchSettings(s BufferSearchSettings) locator.SearchSettings {
	return locator.SearchSettings{
		Size:            s.Size,
		MinAddress:      s.MinAddress,
		MaxAddress:      s.MaxAddress,
		TargetProcessID: os.Getpid(),
	}
}

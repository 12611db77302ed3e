package membuffers

import "github.com/orizon-lang/membuffers/internal/bufalloc"

// PrivateAllocation is a standalone OS reservation that bypasses the
// shared locator entirely: no other process, and no other caller in this
// process, will ever see it indexed anywhere. It owns its reservation and
// releases it when Release is called.
type PrivateAllocation struct {
	alloc    bufalloc.Allocation
	released bool
}

// AllocatePrivateMemory reserves size bytes of RWX memory inside
// settings's window without publishing it to the locator chain.
func AllocatePrivateMemory(settings BufferAllocatorSettings) (*PrivateAllocation, error) {
	alloc, err := bufalloc.Allocate(bufalloc.Settings{
		MinAddress:      settings.MinAddress,
		MaxAddress:      settings.MaxAddress,
		Size:            settings.Size,
		TargetProcessID: settings.TargetProcessID,
		RetryCount:      settings.RetryCount,
		BruteForce:      settings.BruteForce,
	})
	if err != nil {
		return nil, err
	}

	return &PrivateAllocation{alloc: alloc}, nil
}

// BaseAddress is the start of this reservation.
func (p *PrivateAllocation) BaseAddress() uintptr { return p.alloc.BaseAddress }

// Size is the total size of this reservation.
func (p *PrivateAllocation) Size() uint32 { return p.alloc.Size }

// Release returns this reservation to the OS. Safe to call more than
// once; only the first call has an effect.
func (p *PrivateAllocation) Release() error {
	if p.released {
		return nil
	}

	p.released = true

	return bufalloc.Release(p.alloc)
}

//go:build windows

package freeregion

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/orizon-lang/membuffers/internal/addrrange"
)

// enumerate walks the process's address space with VirtualQueryEx, which is
// Windows's virtual-memory descriptor API, collecting every committed or
// reserved region so the gaps between them (the MEM_FREE regions) can be
// derived by buildGaps.
func enumerate(pid int, maxAddress uintptr) ([]addrrange.Range, error) {
	handle, err := windows.OpenProcess(windows.PROCESS_QUERY_INFORMATION|windows.PROCESS_VM_READ, false, uint32(pid))
	if err != nil {
		return nil, fmt.Errorf("freeregion: OpenProcess: %w", err)
	}
	defer windows.CloseHandle(handle)

	var committed []addrrange.Range

	var addr uintptr

	for addr <= maxAddress {
		var mbi windows.MemoryBasicInformation

		err := windows.VirtualQueryEx(handle, addr, &mbi, unsafe.Sizeof(mbi))
		if err != nil {
			break
		}

		if mbi.RegionSize == 0 {
			break
		}

		if mbi.State != windows.MEM_FREE {
			committed = append(committed, addrrange.New(addr, addr+uintptr(mbi.RegionSize)))
		}

		next := addr + uintptr(mbi.RegionSize)
		if next <= addr {
			break
		}

		addr = next
	}

	return buildGaps(committed, maxAddress), nil
}

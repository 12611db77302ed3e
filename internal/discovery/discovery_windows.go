//go:build windows

package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"unsafe"

	"golang.org/x/sys/windows"
)

// openOrCreate opens, or creates, a named, pagefile-backed shared-memory
// section. CreateFileMapping with
// INVALID_HANDLE_VALUE as the backing file is the standard Win32 idiom for
// named shared memory with no disk file involved; Windows distinguishes
// "already existed" from "just created" via GetLastError returning
// ERROR_ALREADY_EXISTS even on a successful CreateFileMapping call.
func openOrCreate(name string, size uint32) ([]byte, bool, error) {
	namePtr, err := windows.UTF16PtrFromString(`Global\` + name)
	if err != nil {
		return nil, false, err
	}

	handle, err := windows.CreateFileMapping(windows.InvalidHandle, nil, windows.PAGE_READWRITE, 0, size, namePtr)
	if err != nil {
		return nil, false, fmt.Errorf("discovery: CreateFileMapping %s: %w", name, err)
	}

	created := windows.GetLastError() != windows.ERROR_ALREADY_EXISTS

	addr, err := windows.MapViewOfFile(handle, windows.FILE_MAP_READ|windows.FILE_MAP_WRITE, 0, 0, uintptr(size))
	if err != nil {
		windows.CloseHandle(handle)
		return nil, false, fmt.Errorf("discovery: MapViewOfFile %s: %w", name, err)
	}

	mem := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	touchMarker(name)

	return mem, created, nil
}

// touchMarker records name as an empty file under baseDir so CleanStale
// has a filesystem entry to sweep; the real named object is a pagefile
// section with no path of its own.
func touchMarker(name string) {
	if err := os.MkdirAll(baseDir(), 0o700); err != nil {
		return
	}

	path := filepath.Join(baseDir(), sanitizeFileName(name))
	if f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL, 0o600); err == nil {
		f.Close()
	}
}

func closeMapping(mem []byte) {
	_ = windows.UnmapViewOfFile(uintptr(unsafe.Pointer(unsafe.SliceData(mem))))
}

// baseDir is the deterministic per-user directory named objects are
// recorded in so CleanStale has something to sweep; the shared-memory
// section itself has no path (it is a pagefile-backed section in the
// Global namespace), so this directory only holds empty marker files.
func baseDir() string {
	if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
		return filepath.Join(dir, "reloaded-memory-buffers")
	}

	return filepath.Join(os.TempDir(), "reloaded-memory-buffers")
}

// isProcessAlive reports whether pid can still be opened, the Windows
// equivalent of the POSIX null-signal liveness check.
func isProcessAlive(pid int) bool {
	h, err := windows.OpenProcess(windows.PROCESS_QUERY_LIMITED_INFORMATION, false, uint32(pid))
	if err != nil {
		return false
	}

	windows.CloseHandle(h)

	return true
}

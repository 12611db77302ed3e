//go:build linux

package discovery

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// baseDir is the deterministic per-user directory named objects live in.
// XDG_RUNTIME_DIR is preferred when set (it is per-user, tmpfs-backed and
// already scoped the way this object wants); os.TempDir() is the portable
// fallback.
func baseDir() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "reloaded-memory-buffers")
	}

	return filepath.Join(os.TempDir(), "reloaded-memory-buffers")
}

// openOrCreate opens, or creates, the named shared-memory object described
// by name, sized to exactly one allocation granularity. O_EXCL is how this
// distinguishes "we created it" from "it already existed" without a race.
func openOrCreate(name string, size uint32) ([]byte, bool, error) {
	dir := baseDir()
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, false, fmt.Errorf("discovery: mkdir %s: %w", dir, err)
	}

	path := filepath.Join(dir, sanitizeFileName(name))

	created := true

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_EXCL, 0o600)
	if os.IsExist(err) {
		created = false

		f, err = os.OpenFile(path, os.O_RDWR, 0o600)
	}

	if err != nil {
		return nil, false, fmt.Errorf("discovery: open %s: %w", path, err)
	}

	defer f.Close()

	if created {
		if err := f.Truncate(int64(size)); err != nil {
			return nil, false, fmt.Errorf("discovery: truncate %s: %w", path, err)
		}
	}

	mem, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, false, fmt.Errorf("discovery: mmap %s: %w", path, err)
	}

	return mem, created, nil
}

func closeMapping(mem []byte) {
	_ = unix.Munmap(mem)
}

// isProcessAlive sends the null signal, the standard POSIX liveness probe:
// it performs no action but still fails with ESRCH if pid does not exist.
func isProcessAlive(pid int) bool {
	return unix.Kill(pid, 0) == nil
}

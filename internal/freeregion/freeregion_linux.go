//go:build linux

package freeregion

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/orizon-lang/membuffers/internal/addrrange"
)

// enumerate parses /proc/<pid>/maps, which is Linux's virtual-memory
// descriptor API, and returns the
// gaps between the committed regions it lists. Permission-restricted
// regions still appear as lines in maps (their perms column just lacks
// r/w/x), so they are naturally treated as "not free" without special
// casing.
func enumerate(pid int, maxAddress uintptr) ([]addrrange.Range, error) {
	path := fmt.Sprintf("/proc/%d/maps", pid)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("freeregion: opening %s: %w", path, err)
	}
	defer f.Close()

	var committed []addrrange.Range

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		region, ok := parseMapsLine(scanner.Text())
		if !ok {
			continue
		}

		committed = append(committed, region)

		if region.Start > maxAddress {
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("freeregion: reading %s: %w", path, err)
	}

	return buildGaps(committed, maxAddress), nil
}

// parseMapsLine parses a single /proc/pid/maps line of the form
// "start-end perms offset dev inode [pathname]" and returns its address
// range.
func parseMapsLine(line string) (addrrange.Range, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return addrrange.Range{}, false
	}

	bounds := strings.SplitN(fields[0], "-", 2)
	if len(bounds) != 2 {
		return addrrange.Range{}, false
	}

	start, err := strconv.ParseUint(bounds[0], 16, 64)
	if err != nil {
		return addrrange.Range{}, false
	}

	end, err := strconv.ParseUint(bounds[1], 16, 64)
	if err != nil {
		return addrrange.Range{}, false
	}

	return addrrange.New(uintptr(start), uintptr(end)), true
}

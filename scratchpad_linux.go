//go:build linux

package cryptonight

import (
	"golang.org/x/sys/unix"
)

// hugePageSize x86-64 and arm64 both default to 2 MiB huge pages
const hugePageSize = 2 * 1024 * 1024

// mapScratchpad backs a scratchpad with huge pages. size must be a
// multiple of hugePageSize, which Parameters.Verify guarantees for any
// page of at least that size.
func mapScratchpad(size uint32) ([]byte, error) {
	return unix.Mmap(-1, 0, int(size),
		unix.PROT_READ|unix.PROT_WRITE,
		unix.MAP_PRIVATE|unix.MAP_ANONYMOUS|unix.MAP_HUGETLB)
}

func unmapScratchpad(buf []byte) error {
	return unix.Munmap(buf)
}

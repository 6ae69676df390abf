//go:build !linux

package cryptonight

import "errors"

const hugePageSize = 2 * 1024 * 1024

var errNoHugePages = errors.New("huge pages not supported on this platform")

func mapScratchpad(size uint32) ([]byte, error) {
	return nil, errNoHugePages
}

func unmapScratchpad(buf []byte) error {
	return nil
}

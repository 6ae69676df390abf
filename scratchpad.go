package cryptonight

import (
	"sync"
	"unsafe"

	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
	"github.com/floatdrop/lru"
)

// scratchpad memory backing one State. words is the aligned view the hash
// loops index, mapped is non-nil when the memory came from a huge page
// mapping and must go back through munmap.
type scratchpad struct {
	words  []uint64
	mapped []byte
}

// scratchpadCacheSize bounds how many released pads stay resident per size
const scratchpadCacheSize = 4

var scratchpadLock sync.Mutex
var scratchpadCache = lru.New[uint32, scratchpad](scratchpadCacheSize)

func acquireScratchpad(size uint32) scratchpad {
	scratchpadLock.Lock()
	pad := scratchpadCache.Remove(size)
	scratchpadLock.Unlock()
	if pad != nil {
		return *pad
	}
	return allocScratchpad(size)
}

func releaseScratchpad(size uint32, pad scratchpad) {
	scratchpadLock.Lock()
	evicted := scratchpadCache.Set(size, pad)
	scratchpadLock.Unlock()
	if evicted != nil {
		freeScratchpad(evicted.Value)
	}
}

func allocScratchpad(size uint32) scratchpad {
	if size >= hugePageSize {
		if buf, err := mapScratchpad(size); err == nil {
			// #nosec G103 -- same backing memory, held alive by mapped
			words := unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(buf))), size/8)
			return scratchpad{words: words, mapped: buf}
		} else {
			utils.Debugf("cryptonight", "huge page mapping failed, using heap scratchpad: %s", err)
		}
	}

	// spare word so the start can move up to a 16-byte boundary
	buf := make([]uint64, size/8+1)
	// #nosec G103 -- alignment probe only
	if uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%16 != 0 {
		buf = buf[1:]
	} else {
		buf = buf[:size/8]
	}
	return scratchpad{words: buf}
}

func freeScratchpad(pad scratchpad) {
	if pad.mapped != nil {
		if err := unmapScratchpad(pad.mapped); err != nil {
			utils.Errorf("cryptonight", "scratchpad munmap failed: %s", err)
		}
	}
}

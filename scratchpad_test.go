package cryptonight

import (
	"testing"
	"unsafe"

	"github.com/sclevine/spec"
	"github.com/sclevine/spec/report"
)

// The suite runs sequentially, every block shares the package level cache.
func TestScratchpad(t *testing.T) {
	spec.Run(t, "Allocator", func(t *testing.T, when spec.G, it spec.S) {
		it("sizes the word view to the page", func() {
			pad := acquireScratchpad(1 << 13)
			defer releaseScratchpad(1<<13, pad)

			assertEqual(t, len(pad.words), 1<<13/8)
		})

		it("aligns the pad for 16 byte loads", func() {
			pad := acquireScratchpad(1 << 14)
			defer releaseScratchpad(1<<14, pad)

			assertEqual(t, uintptr(unsafe.Pointer(unsafe.SliceData(pad.words)))%16, uintptr(0))
		})

		it("hands a released pad back out", func() {
			pad := acquireScratchpad(1 << 15)
			base := unsafe.SliceData(pad.words)
			releaseScratchpad(1<<15, pad)

			again := acquireScratchpad(1 << 15)
			defer releaseScratchpad(1<<15, again)

			assertEqual(t, unsafe.SliceData(again.words) == base, true)
		})

		it("keeps the newest pad when a size is released twice", func() {
			first := allocScratchpad(1 << 20)
			second := allocScratchpad(1 << 20)
			base := unsafe.SliceData(second.words)

			releaseScratchpad(1<<20, first)
			releaseScratchpad(1<<20, second)

			again := acquireScratchpad(1 << 20)
			defer releaseScratchpad(1<<20, again)

			assertEqual(t, unsafe.SliceData(again.words) == base, true)
		})

		it("keys the cache by size", func() {
			pad := acquireScratchpad(1 << 16)
			releaseScratchpad(1<<16, pad)

			other := acquireScratchpad(1 << 12)
			defer releaseScratchpad(1<<12, other)

			assertEqual(t, len(other.words), 1<<12/8)
		})

		it("evicts the stalest size when full", func() {
			sizes := []uint32{1 << 7, 1 << 8, 1 << 9, 1 << 10, 1 << 11}
			for _, size := range sizes {
				releaseScratchpad(size, allocScratchpad(size))
			}

			scratchpadLock.Lock()
			pad := scratchpadCache.Remove(sizes[0])
			scratchpadLock.Unlock()
			assertEqual(t, pad == nil, true)
		})

		when("a State closes", func() {
			params := Parameters{PageSize: 1 << 17, InitSize: 128, Iterations: 2}

			it("returns the pad to the cache", func() {
				state, err := NewState(params)
				assertNoError(t, err)
				base := unsafe.SliceData(state.scratchpad)
				state.Close()

				again, err := NewState(params)
				assertNoError(t, err)
				defer again.Close()

				assertEqual(t, unsafe.SliceData(again.scratchpad) == base, true)
			})

			it("tolerates a second Close", func() {
				state, err := NewState(params)
				assertNoError(t, err)
				state.Close()
				state.Close()
			})

			it("panics when hashing afterwards", func() {
				state, err := NewState(params)
				assertNoError(t, err)
				state.Close()

				defer func() {
					assertEqual(t, recover() != nil, true)
				}()
				_, _ = state.Sum([]byte("test"), V0, 0)
			})
		})
	}, spec.Report(report.Terminal{}), spec.Random())
}

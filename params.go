package cryptonight

import (
	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
)

// ScratchpadSize 2 MiB scratchpad for memhard loop under standard parameters
const ScratchpadSize = 2 * 1024 * 1024

// StandardIterations total scratchpad touches under standard parameters.
// The mixing loop runs half as many rounds.
const StandardIterations = 1 << 20

// Parameters sizes the scratchpad construction and the memory-hard loop.
// The zero value is not usable, start from StandardParameters or
// LiteParameters.
type Parameters struct {
	// PageSize scratchpad allocation in bytes
	PageSize uint32
	// InitSize bytes written per fill pass and re-mixed per finalize pass
	InitSize uint32
	// Iterations total scratchpad touches of the mixing loop
	Iterations uint32
	// Light halves the addressable range of the scratchpad
	Light bool
}

// StandardParameters the CNS008 tuning used by Monero mainline variants.
var StandardParameters = Parameters{
	PageSize:   ScratchpadSize,
	InitSize:   ScratchpadSize,
	Iterations: StandardIterations,
}

// LiteParameters halves the addressable pad, the fill and the loop length.
var LiteParameters = Parameters{
	PageSize:   ScratchpadSize,
	InitSize:   ScratchpadSize / 2,
	Iterations: StandardIterations / 2,
	Light:      true,
}

// Verify reports whether the combination can address the scratchpad
// soundly. It runs before any allocation.
func (p Parameters) Verify() error {
	if p.PageSize < 128 || uint64(p.PageSize) != uint64(utils.PreviousPowerOfTwo(uint64(p.PageSize))) {
		return ErrPageSize
	}
	if p.InitSize == 0 || p.InitSize%128 != 0 || p.InitSize > p.PageSize {
		return ErrInitSize
	}
	if p.Iterations == 0 || p.Iterations%2 != 0 {
		return ErrIterations
	}
	return nil
}

// totalWords scratchpad length in uint64 words
func (p Parameters) totalWords() int {
	return int(p.PageSize / 8)
}

// initWords words written by each fill and finalize pass
func (p Parameters) initWords() int {
	return int(p.InitSize / 8)
}

// addressableWords words reachable by the mixing loop addressing
func (p Parameters) addressableWords() int {
	if p.Light {
		return int(p.PageSize / 16)
	}
	return int(p.PageSize / 8)
}

// addrMask masks a 64-bit register into a 16-byte aligned byte offset
// within the addressable range
func (p Parameters) addrMask() uint64 {
	size := p.PageSize
	if p.Light {
		size /= 2
	}
	return uint64(size - 16)
}

// loopRounds mixing rounds, two scratchpad touches each
func (p Parameters) loopRounds() int {
	return int(p.Iterations / 2)
}

// Package cryptonight implements the CryptoNight family of memory-hard
// proof of work hashes: the classic CNS008 algorithm, the variant 1 and 2
// tweaks, the height-seeded random math variant R, and light/tunable
// scratchpad parameterizations of all of them.
package cryptonight

import (
	"git.gammaspectra.live/P2Pool/go-cryptonight/types"
)

// NewState creates a State sized by p, drawing the scratchpad from the
// allocator cache. Call Close to hand the memory back when done.
func NewState(p Parameters) (*State, error) {
	if err := p.Verify(); err != nil {
		return nil, err
	}
	pad := acquireScratchpad(p.PageSize)
	return &State{
		scratchpad: pad.words,
		mapped:     pad.mapped,
		params:     p,
	}, nil
}

// Close releases the scratchpad back to the allocator cache. The State
// must not hash again afterwards. Close is idempotent.
func (cn *State) Close() {
	if cn.scratchpad == nil {
		return
	}
	releaseScratchpad(cn.params.PageSize, scratchpad{words: cn.scratchpad, mapped: cn.mapped})
	cn.scratchpad = nil
	cn.mapped = nil
}

// Sum computes the CryptoNight hash of data. The hash operates by first
// using Keccak 1600, the 1600 bit variant of the Keccak hash used in
// SHA-3, to create a 200 byte buffer of pseudorandom data by hashing the
// supplied data. It then uses this random data to fill a large buffer
// with pseudorandom data by iteratively encrypting it using 10 rounds of
// AES per entry. After this initialization, it executes Iterations/2
// rounds of mixing through the random buffer using AES (typically
// provided in hardware on modern CPUs) and a 64 bit multiply. Finally,
// it re-mixes this large buffer back into the 200 byte "text" buffer,
// and then hashes this buffer using one of four pseudorandomly selected
// hash functions (Blake, Groestl, JH, or Skein) to populate the output.
//
// The large buffer and choice of functions for mixing are designed to
// make the algorithm "CPU-friendly" (and thus, reduce the advantage of
// GPU, FPGA, or ASIC-based implementations): the functions used are fast
// on modern CPUs, and the standard 2MB size matches the typical amount of
// L3 cache available per core on 2013-era CPUs. When available, this
// implementation will use hardware AES support on x86 CPUs.
//
// A diagram of the inner loop of this function can be found at
// https://www.cs.cmu.edu/~dga/crypto/xmr/cryptonight.png
//
// height seeds the random math program of variant R and is ignored by
// every other variant.
func (cn *State) Sum(data []byte, variant Variant, height uint64) (types.Hash, error) {
	if cn.scratchpad == nil {
		panic("cryptonight: use of closed State")
	}
	switch variant {
	case V0:
		return cn.sum_v0_v1(data, variant, false), nil
	case V1:
		if len(data) < 43 {
			return types.ZeroHash, ErrShortInput
		}
		return cn.sum_v0_v1(data, variant, false), nil
	case V2, V3:
		return cn.sum_v2_r(data, variant, 0, false), nil
	case R:
		return cn.sum_v2_r(data, variant, height, false), nil
	default:
		return types.ZeroHash, ErrUnknownVariant
	}
}

// SumPrehashed computes the CryptoNight hash from a sponge state the
// caller already absorbed, skipping the initial Keccak 1600 pass. state
// carries at least the 200 bytes of keccak-f[1600] output; the variant 1
// tweak window still reads bytes [35,43) of it.
func (cn *State) SumPrehashed(state []byte, variant Variant, height uint64) (types.Hash, error) {
	if cn.scratchpad == nil {
		panic("cryptonight: use of closed State")
	}
	if len(state) < len(cn.keccakState)*8 {
		return types.ZeroHash, ErrShortState
	}
	switch variant {
	case V0, V1:
		return cn.sum_v0_v1(state, variant, true), nil
	case V2, V3:
		return cn.sum_v2_r(state, variant, 0, true), nil
	case R:
		return cn.sum_v2_r(state, variant, height, true), nil
	default:
		return types.ZeroHash, ErrUnknownVariant
	}
}

// Sum computes the CryptoNight hash of data under StandardParameters
// using a pooled State.
func Sum(data []byte, variant Variant, height uint64) (types.Hash, error) {
	cn := GetState()
	defer PutState(cn)
	return cn.Sum(data, variant, height)
}

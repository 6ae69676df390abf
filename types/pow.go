package types

import (
	"encoding/binary"
	"math/big"
	"math/bits"

	"lukechampine.com/uint128"
)

// base 2^256 - 1, the highest possible proof of work target
var powBase = func() *big.Int {
	i := new(big.Int).Lsh(big.NewInt(1), 256)
	return i.Sub(i, big.NewInt(1))
}()

// DifficultyFromPoW Gets the maximum difficulty a PoW hash passes.
// The hash is interpreted as a little endian 256-bit integer.
// Saturates at MaxDifficulty for hashes below 2^128.
func DifficultyFromPoW(powHash Hash) Difficulty {
	if powHash == ZeroHash {
		return ZeroDifficulty
	}

	//swap endianness
	var buf [HashSize]byte
	for i := range buf {
		buf[i] = powHash[HashSize-i-1]
	}

	d := new(big.Int).Div(powBase, new(big.Int).SetBytes(buf[:]))
	if d.BitLen() > DifficultySize*8 {
		return MaxDifficulty
	}
	return Difficulty(uint128.FromBig(d))
}

// mul128 multiplies two 128-bit integers into a full 256-bit result
func mul128(a, b uint128.Uint128) (hi, lo uint128.Uint128) {
	// a*b = aHi*bHi*2^128 + (aHi*bLo + aLo*bHi)*2^64 + aLo*bLo
	ll := uint128.From64(a.Lo).Mul64(b.Lo)
	lh := uint128.From64(a.Lo).Mul64(b.Hi)
	hl := uint128.From64(a.Hi).Mul64(b.Lo)
	hh := uint128.From64(a.Hi).Mul64(b.Hi)

	mid := lh.AddWrap(hl)
	var midCarry uint64
	if mid.Cmp(lh) < 0 {
		midCarry = 1
	}

	lo = ll.AddWrap(uint128.New(0, mid.Lo))
	var loCarry uint64
	if lo.Cmp(ll) < 0 {
		loCarry = 1
	}

	// cannot overflow, a*b < 2^256
	hi = hh.AddWrap(uint128.New(mid.Hi, midCarry)).AddWrap64(loCarry)
	return hi, lo
}

// CheckPoW Verifies a PoW hash passes this difficulty.
// A hash passes when hash * difficulty does not overflow 2^256.
func (d Difficulty) CheckPoW(powHash Hash) bool {
	hashLo := uint128.FromBytes(powHash[:DifficultySize])
	hashHi := uint128.FromBytes(powHash[DifficultySize:])

	// product = hashHi*d*2^128 + hashLo*d
	hiHi, hiLo := mul128(hashHi, uint128.Uint128(d))
	if !hiHi.IsZero() {
		return false
	}
	loHi, _ := mul128(hashLo, uint128.Uint128(d))

	// the two middle halves overlap at 2^128; any carry overflows 2^256
	mid := hiLo.AddWrap(loHi)
	return mid.Cmp(hiLo) >= 0
}

// CheckPoW_Native Same as CheckPoW without allocations or 128-bit emulation,
// via 64-bit limb schoolbook multiplication.
func (d Difficulty) CheckPoW_Native(powHash Hash) bool {
	var h [4]uint64
	h[0] = binary.LittleEndian.Uint64(powHash[:])
	h[1] = binary.LittleEndian.Uint64(powHash[8:])
	h[2] = binary.LittleEndian.Uint64(powHash[16:])
	h[3] = binary.LittleEndian.Uint64(powHash[24:])

	dl := [2]uint64{d.Lo, d.Hi}

	var product [6]uint64
	for i := range h {
		var carry uint64
		for j := range dl {
			hi, lo := bits.Mul64(h[i], dl[j])
			var c uint64
			lo, c = bits.Add64(lo, carry, 0)
			hi += c
			product[i+j], c = bits.Add64(product[i+j], lo, 0)
			carry = hi + c
		}

		var c uint64
		product[i+2], c = bits.Add64(product[i+2], carry, 0)
		for k := i + 3; c != 0 && k < len(product); k++ {
			product[k], c = bits.Add64(product[k], 0, c)
		}
	}

	return product[4] == 0 && product[5] == 0
}

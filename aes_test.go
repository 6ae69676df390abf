package cryptonight

import (
	"encoding/binary"
	"testing"
)

// TestAESBackends compares whatever backend the build dispatches to against
// the table-driven path on a spread of inputs. On generic builds both sides
// take the same path and the check is a no-op.
func TestAESBackends(t *testing.T) {
	fill := func(seed uint64, buf []byte) {
		x := seed
		for i := 0; i+8 <= len(buf); i += 8 {
			x ^= x << 13
			x ^= x >> 7
			x ^= x << 17
			binary.LittleEndian.PutUint64(buf[i:], x)
		}
	}

	for seed := uint64(1); seed <= 64; seed++ {
		var key [32]byte
		fill(seed, key[:])
		var roundKeys [aesRounds * 4]uint32
		aes_expand_key([]uint64{
			binary.LittleEndian.Uint64(key[0:]),
			binary.LittleEndian.Uint64(key[8:]),
			binary.LittleEndian.Uint64(key[16:]),
			binary.LittleEndian.Uint64(key[24:]),
		}, &roundKeys)

		var blocks, blocksSoft [16]uint64
		var raw [16 * 8]byte
		fill(seed+1000, raw[:])
		for i := range blocks {
			blocks[i] = binary.LittleEndian.Uint64(raw[i*8:])
		}
		blocksSoft = blocks

		aes_rounds(&blocks, &roundKeys)
		aes_rounds_generic(&blocksSoft, &roundKeys)
		if blocks != blocksSoft {
			t.Fatalf("seed %d: aes_rounds = %x, soft path %x", seed, blocks, blocksSoft)
		}

		var src, round [2]uint64
		src[0] = blocks[0]
		src[1] = blocks[1]
		round[0] = blocks[2]
		round[1] = blocks[3]

		var dst, dstSoft [2]uint64
		aes_single_round(&dst, &src, &round)
		aes_single_round_generic(&dstSoft, &src, &round)
		if dst != dstSoft {
			t.Fatalf("seed %d: aes_single_round = %x, soft path %x", seed, dst, dstSoft)
		}
	}
}

// Copyright (c) 2016 Andreas Auernhammer. All rights reserved.
// Use of this source code is governed by a license that can be
// found in the LICENSE file.

package threefish

import "math/bits"

// The round constants and word permutation of Threefish-512.
// Each MIX layer operates on the word pairs listed in mixPairs512;
// four layers apply the permutation once, so after eight rounds the
// words return to their starting positions and the subkey schedule
// can run on the registers directly.
var (
	rot512Even = [4][4]uint{
		{46, 36, 19, 37},
		{33, 27, 14, 42},
		{17, 49, 36, 39},
		{44, 9, 54, 56},
	}
	rot512Odd = [4][4]uint{
		{39, 30, 34, 24},
		{13, 50, 10, 17},
		{25, 29, 39, 43},
		{8, 35, 56, 22},
	}
	mixPairs512 = [4][4][2]int{
		{{0, 1}, {2, 3}, {4, 5}, {6, 7}},
		{{2, 1}, {4, 7}, {6, 5}, {0, 3}},
		{{4, 1}, {6, 3}, {0, 5}, {2, 7}},
		{{6, 1}, {0, 7}, {2, 5}, {4, 3}},
	}
)

func newCipher512(tweak *[TweakSize]byte, key []byte) *threefish512 {
	c := new(threefish512)

	c.tweak[0] = uint64(tweak[0]) | uint64(tweak[1])<<8 | uint64(tweak[2])<<16 | uint64(tweak[3])<<24 |
		uint64(tweak[4])<<32 | uint64(tweak[5])<<40 | uint64(tweak[6])<<48 | uint64(tweak[7])<<56
	c.tweak[1] = uint64(tweak[8]) | uint64(tweak[9])<<8 | uint64(tweak[10])<<16 | uint64(tweak[11])<<24 |
		uint64(tweak[12])<<32 | uint64(tweak[13])<<40 | uint64(tweak[14])<<48 | uint64(tweak[15])<<56
	c.tweak[2] = c.tweak[0] ^ c.tweak[1]

	for i := range c.keys[:8] {
		j := i * 8
		c.keys[i] = uint64(key[j]) | uint64(key[j+1])<<8 | uint64(key[j+2])<<16 | uint64(key[j+3])<<24 |
			uint64(key[j+4])<<32 | uint64(key[j+5])<<40 | uint64(key[j+6])<<48 | uint64(key[j+7])<<56
	}
	c.keys[8] = C240 ^ c.keys[0] ^ c.keys[1] ^ c.keys[2] ^ c.keys[3] ^ c.keys[4] ^ c.keys[5] ^ c.keys[6] ^ c.keys[7]

	return c
}

func (t *threefish512) Encrypt(dst, src []byte) {
	var block [8]uint64

	bytesToBlock512(&block, src)
	Encrypt512(&t.keys, &t.tweak, &block)
	block512ToBytes(dst, &block)
}

func (t *threefish512) Decrypt(dst, src []byte) {
	var block [8]uint64

	bytesToBlock512(&block, src)
	Decrypt512(&t.keys, &t.tweak, &block)
	block512ToBytes(dst, &block)
}

func addSubKey512(block *[8]uint64, keys *[9]uint64, tweak *[3]uint64, s uint64) {
	for i := range block {
		block[i] += keys[(s+uint64(i))%9]
	}
	block[5] += tweak[s%3]
	block[6] += tweak[(s+1)%3]
	block[7] += s
}

func subSubKey512(block *[8]uint64, keys *[9]uint64, tweak *[3]uint64, s uint64) {
	for i := range block {
		block[i] -= keys[(s+uint64(i))%9]
	}
	block[5] -= tweak[s%3]
	block[6] -= tweak[(s+1)%3]
	block[7] -= s
}

// Encrypt512 encrypts the 8 words of block using the expanded 512 bit key and
// the 128 bit tweak. The keys[8] must be keys[0] xor ... keys[7] xor C240.
// The tweak[2] must be tweak[0] xor tweak[1].
func Encrypt512(keys *[9]uint64, tweak *[3]uint64, block *[8]uint64) {
	for r := uint64(0); r < 9; r++ {
		addSubKey512(block, keys, tweak, 2*r)
		for layer := range mixPairs512 {
			for k, p := range mixPairs512[layer] {
				block[p[0]] += block[p[1]]
				block[p[1]] = bits.RotateLeft64(block[p[1]], int(rot512Even[layer][k])) ^ block[p[0]]
			}
		}
		addSubKey512(block, keys, tweak, 2*r+1)
		for layer := range mixPairs512 {
			for k, p := range mixPairs512[layer] {
				block[p[0]] += block[p[1]]
				block[p[1]] = bits.RotateLeft64(block[p[1]], int(rot512Odd[layer][k])) ^ block[p[0]]
			}
		}
	}
	addSubKey512(block, keys, tweak, 18)
}

// Decrypt512 decrypts the 8 words of block using the expanded 512 bit key and
// the 128 bit tweak. The keys[8] must be keys[0] xor ... keys[7] xor C240.
// The tweak[2] must be tweak[0] xor tweak[1].
func Decrypt512(keys *[9]uint64, tweak *[3]uint64, block *[8]uint64) {
	subSubKey512(block, keys, tweak, 18)
	for r := uint64(9); r > 0; r-- {
		for layer := len(mixPairs512) - 1; layer >= 0; layer-- {
			for k := len(mixPairs512[layer]) - 1; k >= 0; k-- {
				p := mixPairs512[layer][k]
				block[p[1]] = bits.RotateLeft64(block[p[1]]^block[p[0]], -int(rot512Odd[layer][k]))
				block[p[0]] -= block[p[1]]
			}
		}
		subSubKey512(block, keys, tweak, 2*r-1)
		for layer := len(mixPairs512) - 1; layer >= 0; layer-- {
			for k := len(mixPairs512[layer]) - 1; k >= 0; k-- {
				p := mixPairs512[layer][k]
				block[p[1]] = bits.RotateLeft64(block[p[1]]^block[p[0]], -int(rot512Even[layer][k]))
				block[p[0]] -= block[p[1]]
			}
		}
		subSubKey512(block, keys, tweak, 2*r-2)
	}
}

// UBI512 does a Threefish512 encryption of the message block using
// the chain values hVal and the tweak.
// The chain values are updated through hVal[i] = block[i] xor msg[i]
func UBI512(block *[8]uint64, hVal *[9]uint64, tweak *[3]uint64) {
	var message [8]uint64
	copy(message[:], block[:])

	hVal[8] = C240 ^ hVal[0] ^ hVal[1] ^ hVal[2] ^ hVal[3] ^ hVal[4] ^ hVal[5] ^ hVal[6] ^ hVal[7]
	tweak[2] = tweak[0] ^ tweak[1]

	Encrypt512(hVal, tweak, block)

	for i := range block {
		hVal[i] = block[i] ^ message[i]
	}
}

// Written in 2011-2012 by Dmitry Chestnykh.
//
// To the extent possible under law, the author have dedicated all copyright
// and related and neighboring rights to this software to the public domain
// worldwide. This software is distributed without any warranty.
// http://creativecommons.org/publicdomain/zero/1.0/

package blake256

import "math/bits"

// Constants from the first digits of pi.
var u256 = [16]uint32{
	0x243f6a88, 0x85a308d3, 0x13198a2e, 0x03707344,
	0xa4093822, 0x299f31d0, 0x082efa98, 0xec4e6c89,
	0x452821e6, 0x38d01377, 0xbe5466cf, 0x34e90c6c,
	0xc0ac29b7, 0xc97c50dd, 0x3f84d5b5, 0xb5470917,
}

// Message word permutation schedule, repeating after round 10.
var sigma = [10][16]uint8{
	{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15},
	{14, 10, 4, 8, 9, 15, 13, 6, 1, 12, 0, 2, 11, 7, 5, 3},
	{11, 8, 12, 0, 5, 2, 15, 13, 10, 14, 3, 6, 7, 1, 9, 4},
	{7, 9, 3, 1, 13, 12, 11, 14, 2, 6, 5, 10, 4, 0, 15, 8},
	{9, 0, 5, 7, 2, 4, 10, 15, 14, 1, 11, 12, 6, 8, 3, 13},
	{2, 12, 6, 10, 0, 11, 8, 3, 4, 13, 7, 5, 15, 14, 1, 9},
	{12, 5, 1, 15, 14, 13, 4, 10, 0, 7, 6, 3, 9, 2, 8, 11},
	{13, 11, 7, 14, 12, 1, 3, 9, 5, 0, 15, 4, 8, 6, 2, 10},
	{6, 15, 14, 9, 11, 3, 0, 8, 12, 2, 13, 7, 1, 4, 10, 5},
	{10, 2, 8, 4, 7, 6, 1, 5, 15, 11, 9, 14, 3, 12, 13, 0},
}

func block(d *Digest, p []byte) {
	var m [16]uint32
	var v [16]uint32

	for len(p) >= BlockSize {
		d.t += 512

		for i := range m {
			j := i * 4
			m[i] = uint32(p[j])<<24 | uint32(p[j+1])<<16 | uint32(p[j+2])<<8 | uint32(p[j+3])
		}

		copy(v[:8], d.h[:])
		v[8] = d.s[0] ^ u256[0]
		v[9] = d.s[1] ^ u256[1]
		v[10] = d.s[2] ^ u256[2]
		v[11] = d.s[3] ^ u256[3]
		v[12] = u256[4]
		v[13] = u256[5]
		v[14] = u256[6]
		v[15] = u256[7]
		if !d.nullt {
			v[12] ^= uint32(d.t)
			v[13] ^= uint32(d.t)
			v[14] ^= uint32(d.t >> 32)
			v[15] ^= uint32(d.t >> 32)
		}

		g := func(a, b, c, e, i int, si *[16]uint8) {
			v[a] += v[b] + (m[si[2*i]] ^ u256[si[2*i+1]])
			v[e] = bits.RotateLeft32(v[e]^v[a], -16)
			v[c] += v[e]
			v[b] = bits.RotateLeft32(v[b]^v[c], -12)
			v[a] += v[b] + (m[si[2*i+1]] ^ u256[si[2*i]])
			v[e] = bits.RotateLeft32(v[e]^v[a], -8)
			v[c] += v[e]
			v[b] = bits.RotateLeft32(v[b]^v[c], -7)
		}

		for round := 0; round < 14; round++ {
			si := &sigma[round%10]
			g(0, 4, 8, 12, 0, si)
			g(1, 5, 9, 13, 1, si)
			g(2, 6, 10, 14, 2, si)
			g(3, 7, 11, 15, 3, si)
			g(0, 5, 10, 15, 4, si)
			g(1, 6, 11, 12, 5, si)
			g(2, 7, 8, 13, 6, si)
			g(3, 4, 9, 14, 7, si)
		}

		for i := range d.h {
			d.h[i] ^= d.s[i%4] ^ v[i] ^ v[i+8]
		}

		p = p[BlockSize:]
	}
}

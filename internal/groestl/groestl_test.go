package groestl

import (
	"fmt"
	"testing"

	fasthex "github.com/tmthrgd/go-hex"
)

func rampInput() []byte {
	buf := make([]byte, 200)
	for i := range buf {
		buf[i] = byte(3 + i*7)
	}
	return buf
}

var testVectors = []struct {
	Input  []byte
	Output string
}{
	{[]byte(""), "1a52d11d550039be16107f9c58db9ebcc417f16f736adb2502567119f0083467"},
	{[]byte("a"), "3645c245bb31223ad93c80885b719aa40b4bed0a9d9d6e7c11fe99e59ca350b5"},
	{[]byte("abc"), "f3c1bb19c048801326a7efbcf16e3d7887446249829c379e1840d1a3a1e7d4d2"},
	{[]byte("The quick brown fox jumps over the lazy dog"), "8c7ad62eb26a21297bc39c2d7293b4bd4d3399fa8afab29e970471739e28b301"},
	{rampInput(), "52f23553e2f3959d2f6aba6f678c43bf302a52f2cb7baa59b7a7e085b6531843"},
}

func TestSum256(t *testing.T) {
	for _, v := range testVectors {
		t.Run(fmt.Sprintf("%d_bytes", len(v.Input)), func(t *testing.T) {
			var digest Digest
			digest.HashBitLen = 256
			digest.Reset()
			_, _ = digest.Write(v.Input)
			result := digest.Sum(nil)
			if fasthex.EncodeToString(result) != v.Output {
				t.Errorf("Sum() = %x, want %s", result, v.Output)
			}

			if result2 := Sum256(v.Input); fasthex.EncodeToString(result2) != v.Output {
				t.Errorf("Sum256() = %x, want %s", result2, v.Output)
			}
		})
	}
}

func TestSum256Chunked(t *testing.T) {
	input := rampInput()

	digest := New256()
	for i := 0; i < len(input); i += 13 {
		_, _ = digest.Write(input[i:min(i+13, len(input))])
	}
	result := digest.Sum(nil)
	if fasthex.EncodeToString(result) != testVectors[len(testVectors)-1].Output {
		t.Errorf("Sum() = %x, want %s", result, testVectors[len(testVectors)-1].Output)
	}

	// partial buffer, then more than a block in one write
	digest.Reset()
	for _, chunk := range [][2]int{{0, 5}, {5, 69}, {69, 200}} {
		_, _ = digest.Write(input[chunk[0]:chunk[1]])
	}
	result = digest.Sum(nil)
	if fasthex.EncodeToString(result) != testVectors[len(testVectors)-1].Output {
		t.Errorf("Sum() = %x, want %s", result, testVectors[len(testVectors)-1].Output)
	}
}

package jh

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
	{[]byte(""), "46e64619c18bb0a92a5e87185a47eef83ca747b8fcc8e1412921357e326df434"},
	{[]byte("a"), "d52c0c130a1bc0ae5136375637a52773e150c71efe1c968df8956f6745b05386"},
	{[]byte("abc"), "924bc82f24a76d519d4f69493da7fa70dc88bdb6016b6d1cc1dcf7def15e9cdd"},
	{[]byte("The quick brown fox jumps over the lazy dog"), "6a049fed5fc6874acfdc4a08b568a4f8cbac27de933496f031015b38961608a0"},
	{rampInput(), "f7b2428f4579cc3eca83d0b357dd9d277e5b334103722540ee28c3742a33e61e"},
}

func TestSum256(t *testing.T) {
	for _, v := range testVectors {
		t.Run(fmt.Sprintf("%d_bytes", len(v.Input)), func(t *testing.T) {
			digest := State{HashBitLen: 256, X: JH256H0}
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
	digest = New256()
	for _, chunk := range [][2]int{{0, 5}, {5, 69}, {69, 200}} {
		_, _ = digest.Write(input[chunk[0]:chunk[1]])
	}
	result = digest.Sum(nil)
	if fasthex.EncodeToString(result) != testVectors[len(testVectors)-1].Output {
		t.Errorf("Sum() = %x, want %s", result, testVectors[len(testVectors)-1].Output)
	}
}

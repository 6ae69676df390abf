package blake256

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
	{[]byte(""), "716f6e863f744b9ac22c97ec7b76ea5f5908bc5b2f67c61510bfc4751384ea7a"},
	{[]byte("a"), "43234ff894a9c0590d0246cfc574eb781a80958b01d7a2fa1ac73c673ba5e311"},
	{[]byte("abc"), "1833a9fa7cf4086bd5fda73da32e5a1d75b4c3f89d5c436369f9d78bb2da5c28"},
	{[]byte("The quick brown fox jumps over the lazy dog"), "7576698ee9cad30173080678e5965916adbb11cb5245d386bf1ffda1cb26c9d7"},
	{rampInput(), "3a11e576bb5647a2177cea941b246dab1b3fc7f304ced1948e7596eaa9fe1b5d"},
}

func TestSum(t *testing.T) {
	for _, v := range testVectors {
		t.Run(fmt.Sprintf("%d_bytes", len(v.Input)), func(t *testing.T) {
			var digest Digest
			digest.HashSize = Size * 8
			digest.Reset()
			_, _ = digest.Write(v.Input)
			result := digest.Sum(nil)
			if fasthex.EncodeToString(result) != v.Output {
				t.Errorf("Sum() = %x, want %s", result, v.Output)
			}
		})
	}
}

func TestSumChunked(t *testing.T) {
	input := rampInput()

	var digest Digest
	digest.HashSize = Size * 8
	digest.Reset()
	for i := 0; i < len(input); i += 13 {
		_, _ = digest.Write(input[i:min(i+13, len(input))])
	}
	result := digest.Sum(nil)
	if fasthex.EncodeToString(result) != testVectors[len(testVectors)-1].Output {
		t.Errorf("Sum() = %x, want %s", result, testVectors[len(testVectors)-1].Output)
	}
}

package skein

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
	{[]byte(""), "39ccc4554a8b31853b9de7a1fe638a24cce6b35a55f2431009e18780335d2621"},
	{[]byte("a"), "1e62c85f7f6a3810a9ff435323e615b77baf804e1652399c8a60d5972b05a428"},
	{[]byte("abc"), "0977b339c3c85927071805584d5460d8f20da8389bbe97c59b1cfac291fe9527"},
	{[]byte("The quick brown fox jumps over the lazy dog"), "b3250457e05d3060b1a4bbc1428bc75a3f525ca389aeab96cfa34638d96e492a"},
	{rampInput(), "01c487f17a2c72058f93cf590e24272befcdca9ef38fcce35c626c2295cb938a"},
}

func TestSum256(t *testing.T) {
	for _, v := range testVectors {
		t.Run(fmt.Sprintf("%d_bytes", len(v.Input)), func(t *testing.T) {
			var out [32]byte
			Sum256(&out, v.Input, nil)
			if fasthex.EncodeToString(out[:]) != v.Output {
				t.Errorf("Sum256() = %x, want %s", out, v.Output)
			}
		})
	}
}

func TestSum256Chunked(t *testing.T) {
	input := rampInput()

	digest := New256(nil)
	for i := 0; i < len(input); i += 13 {
		_, _ = digest.Write(input[i:min(i+13, len(input))])
	}
	result := digest.Sum(nil)
	if fasthex.EncodeToString(result) != testVectors[len(testVectors)-1].Output {
		t.Errorf("Sum() = %x, want %s", result, testVectors[len(testVectors)-1].Output)
	}
}

package cryptonight

import (
	"testing"

	"git.gammaspectra.live/P2Pool/go-cryptonight/types"
)

// TestFinalHash covers the selector order blake, groestl, jh, skein and
// checks only the low two selector bits pick the function.
func TestFinalHash(t *testing.T) {
	fox := []byte("The quick brown fox jumps over the lazy dog")

	state := make([]byte, 200)
	for i := range state {
		state[i] = byte(3 + i*7)
	}

	for _, v := range []struct {
		Selector uint8
		Input    []byte
		Output   types.Hash
	}{
		{0, fox, types.MustHashFromString("7576698ee9cad30173080678e5965916adbb11cb5245d386bf1ffda1cb26c9d7")},
		{1, fox, types.MustHashFromString("8c7ad62eb26a21297bc39c2d7293b4bd4d3399fa8afab29e970471739e28b301")},
		{2, fox, types.MustHashFromString("6a049fed5fc6874acfdc4a08b568a4f8cbac27de933496f031015b38961608a0")},
		{3, fox, types.MustHashFromString("b3250457e05d3060b1a4bbc1428bc75a3f525ca389aeab96cfa34638d96e492a")},
		{0, state, types.MustHashFromString("3a11e576bb5647a2177cea941b246dab1b3fc7f304ced1948e7596eaa9fe1b5d")},
		{1, state, types.MustHashFromString("52f23553e2f3959d2f6aba6f678c43bf302a52f2cb7baa59b7a7e085b6531843")},
		{2, state, types.MustHashFromString("f7b2428f4579cc3eca83d0b357dd9d277e5b334103722540ee28c3742a33e61e")},
		{3, state, types.MustHashFromString("01c487f17a2c72058f93cf590e24272befcdca9ef38fcce35c626c2295cb938a")},
	} {
		var result types.Hash
		finalHash(v.Selector, v.Input, result[:])
		if result != v.Output {
			t.Errorf("finalHash(%d, %d bytes) = %x, want %x", v.Selector, len(v.Input), result.Slice(), v.Output.Slice())
		}

		finalHash(v.Selector|0xfc, v.Input, result[:])
		if result != v.Output {
			t.Errorf("finalHash(%#x, %d bytes) = %x, want %x", v.Selector|0xfc, len(v.Input), result.Slice(), v.Output.Slice())
		}
	}
}

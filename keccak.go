package cryptonight

import (
	"hash"
	"io"
	"unsafe"

	"git.gammaspectra.live/P2Pool/go-cryptonight/types"
	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
	"golang.org/x/crypto/sha3" //nolint:depguard
)

//go:noescape
//go:linkname keccakF1600 golang.org/x/crypto/sha3.keccakF1600
func keccakF1600(a *[25]uint64)

type genericInterface struct {
	_type uintptr
	data  unsafe.Pointer
}
type keccakState struct {
	a         [1600 / 8]byte
	n, rate   int
	dsbyte    byte
	outputLen int
	state     int
}

func keccakStatePtr(h hash.Hash) *[1600 / 8]byte {
	// extremely unsafe
	// read eface/iface ptr to get underlying state field
	// #nosec 103 -- specifically checked structure
	state := (*keccakState)((*genericInterface)(unsafe.Pointer(&h)).data)
	return &state.a
}

// HashReader both absorbs and squeezes
type HashReader interface {
	hash.Hash
	io.Reader
}

// Keccak1600 absorbs data into a full keccak-f[1600] sponge state, the
// prehashed input format SumPrehashed consumes.
func Keccak1600(data []byte) (state [200]byte) {
	hasher := sha3.NewLegacyKeccak256()
	_, _ = utils.WriteNoEscape(hasher, data)
	// trigger pad and permute
	_, _ = utils.ReadNoEscape(hasher.(io.Reader), nil)
	copy(state[:], keccakStatePtr(hasher)[:])
	return
}

// Keccak256 the legacy pre-NIST Keccak hash of data
func Keccak256[T ~string | ~[]byte](data T) (result types.Hash) {
	hasher := sha3.NewLegacyKeccak256().(HashReader)
	_, _ = utils.WriteNoEscape(hasher, []byte(data))
	_, _ = utils.ReadNoEscape(hasher, result[:types.HashSize])
	return
}

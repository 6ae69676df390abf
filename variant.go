package cryptonight

// Variant selects which tweak revision runs on top of the original
// CryptoNight algorithm.
type Variant int8

const (
	// V0 the original CNS008 algorithm
	V0 = Variant(iota)
	// V1 adds the encrypted byte tweak, requires at least 43 bytes of input
	V1
	// V2 adds the chunk shuffle and division/sqrt integer math steps
	V2
	// V3 identical arithmetic to V2, kept for callers that number hard forks
	V3
	// R replaces the V2 integer math with a random math program seeded by block height
	R
)

package types

import (
	"database/sql/driver"
	"errors"
	"math/big"

	"git.gammaspectra.live/P2Pool/go-cryptonight/utils"
	fasthex "github.com/tmthrgd/go-hex"
	"lukechampine.com/uint128"
)

const DifficultySize = 16

//nolint:recvcheck
type Difficulty uint128.Uint128

var ZeroDifficulty = Difficulty(uint128.Zero)
var MaxDifficulty = Difficulty(uint128.Max)

func NewDifficulty(lo, hi uint64) Difficulty {
	return Difficulty(uint128.New(lo, hi))
}

func DifficultyFrom64(v uint64) Difficulty {
	return Difficulty(uint128.From64(v))
}

func MustDifficultyFromString(s string) Difficulty {
	if d, err := DifficultyFromString(s); err != nil {
		panic(err)
	} else {
		return d
	}
}

func DifficultyFromString(s string) (Difficulty, error) {
	if buf, err := fasthex.DecodeString(s); err != nil {
		return ZeroDifficulty, err
	} else {
		if len(buf) != DifficultySize {
			return ZeroDifficulty, errors.New("wrong size")
		}

		//swap endianness
		for i := 0; i < DifficultySize/2; i++ {
			buf[i], buf[DifficultySize-i-1] = buf[DifficultySize-i-1], buf[i]
		}

		return Difficulty(uint128.FromBytes(buf)), nil
	}
}

func DifficultyFromBytes(buf []byte) (d Difficulty) {
	if len(buf) != DifficultySize {
		return
	}
	return Difficulty(uint128.FromBytes(buf))
}

func (d Difficulty) IsZero() bool {
	return uint128.Uint128(d).IsZero()
}

// Bytes little endian representation of the difficulty
func (d Difficulty) Bytes() []byte {
	buf := make([]byte, DifficultySize)
	uint128.Uint128(d).PutBytes(buf)
	return buf
}

func (d Difficulty) Add(b Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Add(uint128.Uint128(b)))
}

func (d Difficulty) Add64(b uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Add64(b))
}

func (d Difficulty) Sub(b Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Sub(uint128.Uint128(b)))
}

func (d Difficulty) Mul(b Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Mul(uint128.Uint128(b)))
}

func (d Difficulty) Mul64(b uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Mul64(b))
}

func (d Difficulty) Div(b Difficulty) Difficulty {
	return Difficulty(uint128.Uint128(d).Div(uint128.Uint128(b)))
}

func (d Difficulty) Div64(b uint64) Difficulty {
	return Difficulty(uint128.Uint128(d).Div64(b))
}

func (d Difficulty) Cmp(b Difficulty) int {
	return uint128.Uint128(d).Cmp(uint128.Uint128(b))
}

func (d Difficulty) Cmp64(b uint64) int {
	return uint128.Uint128(d).Cmp64(b)
}

func (d Difficulty) Equals(b Difficulty) bool {
	return uint128.Uint128(d).Equals(uint128.Uint128(b))
}

func (d Difficulty) Equals64(b uint64) bool {
	return uint128.Uint128(d).Equals64(b)
}

func (d Difficulty) String() string {
	var buf [DifficultySize]byte
	uint128.Uint128(d).ReverseBytes().PutBytes(buf[:])
	return fasthex.EncodeToString(buf[:])
}

func (d Difficulty) MarshalJSON() ([]byte, error) {
	var buf [DifficultySize*2 + 2]byte
	buf[0] = '"'
	buf[DifficultySize*2+1] = '"'
	var b [DifficultySize]byte
	uint128.Uint128(d).ReverseBytes().PutBytes(b[:])
	fasthex.Encode(buf[1:], b[:])
	return buf[:], nil
}

func (d *Difficulty) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		return errors.New("invalid difficulty")
	}

	if b[0] == '"' {
		if len(b) < 3 || b[len(b)-1] != '"' {
			return errors.New("invalid difficulty")
		}
		b = b[1 : len(b)-1]

		if len(b) > 2 && b[0] == '0' && b[1] == 'x' {
			// hex-prefixed integer of any width up to 128 bits
			b = b[2:]
			if len(b) > DifficultySize*2 {
				return errors.New("wrong size")
			}
			var buf [DifficultySize * 2]byte
			for i := range buf {
				buf[i] = '0'
			}
			copy(buf[DifficultySize*2-len(b):], b)

			if diff, err := DifficultyFromString(string(buf[:])); err != nil {
				return err
			} else {
				*d = diff
				return nil
			}
		}

		if len(b) == DifficultySize*2 {
			if diff, err := DifficultyFromString(string(b)); err != nil {
				return err
			} else {
				*d = diff
				return nil
			}
		}
	}

	// fallback: bare or quoted base 10 integer
	if v, err := utils.ParseUint64(b); err != nil {
		return err
	} else {
		*d = DifficultyFrom64(v)
		return nil
	}
}

func (d *Difficulty) Scan(src any) error {
	if src == nil {
		return nil
	} else if value, ok := src.(int64); ok {
		if value < 0 {
			return errors.New("invalid difficulty")
		}
		*d = DifficultyFrom64(uint64(value))
		return nil
	}
	return errors.New("invalid type")
}

func (d *Difficulty) Value() (driver.Value, error) {
	if d.Hi != 0 || d.Lo >= 1<<63 {
		return nil, errors.New("difficulty overflows int64")
	}
	return int64(d.Lo), nil
}

func (d Difficulty) Big() *big.Int {
	return uint128.Uint128(d).Big()
}
